package encoding

import (
	"fmt"
	"math"

	"github.com/gattkit/gattkit/endian"
	"github.com/gattkit/gattkit/errs"
	"github.com/gattkit/gattkit/internal/pool"
)

// Limits for the widths that do not occupy a full Go integer type.
// Writers reject values outside these bounds with errs.ErrValueOutOfRange;
// the remaining widths are range-checked by Go's type system.
const (
	MaxUint24 = 1<<24 - 1
	MaxUint48 = 1<<48 - 1
	MinSint24 = -(1 << 23)
	MaxSint24 = 1<<23 - 1
	MinSint48 = -(1 << 47)
	MaxSint48 = 1<<47 - 1
)

// Writer appends primitives to a pooled buffer in wire order.
//
// A Writer is created per encode call and must be released with Finish()
// once the encoded bytes have been copied out. Using a Writer after
// Finish() panics, matching the pooled-encoder lifecycle used throughout
// the module.
type Writer struct {
	buf     *pool.ByteBuffer
	engine  endian.EndianEngine
	release func(*pool.ByteBuffer)
}

// NewWriter creates a Writer using the given endian engine.
func NewWriter(engine endian.EndianEngine) *Writer {
	return &Writer{
		engine:  engine,
		buf:     pool.GetValueBuffer(),
		release: pool.PutValueBuffer,
	}
}

// NewLEWriter creates a Writer in the GATT wire order (little-endian).
func NewLEWriter() *Writer {
	return NewWriter(endian.GetLittleEndianEngine())
}

// NewCaptureWriter creates a little-endian Writer backed by the capture
// buffer pool, sized for multi-entry capture payloads rather than single
// characteristic values.
func NewCaptureWriter() *Writer {
	return &Writer{
		engine:  endian.GetLittleEndianEngine(),
		buf:     pool.GetCaptureBuffer(),
		release: pool.PutCaptureBuffer,
	}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	w.check()
	return w.buf.Len()
}

// Bytes returns the encoded bytes. The returned slice references the
// internal pooled buffer and is only valid until Finish() is called; use
// Detach() to obtain an owned copy.
func (w *Writer) Bytes() []byte {
	w.check()
	return w.buf.Bytes()
}

// Detach returns an owned copy of the encoded bytes and releases the
// Writer back to the pool. The Writer is unusable afterwards.
func (w *Writer) Detach() []byte {
	w.check()
	out := make([]byte, w.buf.Len())
	copy(out, w.buf.Bytes())
	w.Finish()

	return out
}

// Finish returns the internal buffer to the pool. The Writer is unusable
// afterwards; any subsequent call panics.
func (w *Writer) Finish() {
	if w.buf != nil {
		w.release(w.buf)
		w.buf = nil
	}
}

func (w *Writer) check() {
	if w.buf == nil {
		panic("writer already finished - cannot use after Finish()")
	}
}

// AppendBytes appends raw bytes as-is.
func (w *Writer) AppendBytes(b []byte) {
	w.check()
	w.buf.MustWrite(b)
}

// AppendUint8 appends an unsigned 8-bit integer.
func (w *Writer) AppendUint8(v uint8) {
	w.check()
	w.buf.MustWrite([]byte{v})
}

// AppendUint16 appends an unsigned 16-bit integer.
func (w *Writer) AppendUint16(v uint16) {
	w.check()
	w.buf.B = w.engine.AppendUint16(w.buf.B, v)
}

// AppendUint24 appends an unsigned 24-bit integer taken from the low bits
// of v. Fails if v exceeds MaxUint24.
func (w *Writer) AppendUint24(v uint32) error {
	w.check()
	if v > MaxUint24 {
		return fmt.Errorf("%w: %#x exceeds 24-bit unsigned maximum", errs.ErrValueOutOfRange, v)
	}

	quad := w.engine.AppendUint32(nil, v)
	if w.engine == endian.GetBigEndianEngine() {
		w.buf.MustWrite(quad[1:])
	} else {
		w.buf.MustWrite(quad[:3])
	}

	return nil
}

// AppendUint32 appends an unsigned 32-bit integer.
func (w *Writer) AppendUint32(v uint32) {
	w.check()
	w.buf.B = w.engine.AppendUint32(w.buf.B, v)
}

// AppendUint48 appends an unsigned 48-bit integer taken from the low bits
// of v. Fails if v exceeds MaxUint48.
func (w *Writer) AppendUint48(v uint64) error {
	w.check()
	if v > MaxUint48 {
		return fmt.Errorf("%w: %#x exceeds 48-bit unsigned maximum", errs.ErrValueOutOfRange, v)
	}

	oct := w.engine.AppendUint64(nil, v)
	if w.engine == endian.GetBigEndianEngine() {
		w.buf.MustWrite(oct[2:])
	} else {
		w.buf.MustWrite(oct[:6])
	}

	return nil
}

// AppendSint8 appends a signed 8-bit integer (two's complement).
func (w *Writer) AppendSint8(v int8) {
	w.AppendUint8(uint8(v))
}

// AppendSint16 appends a signed 16-bit integer (two's complement).
func (w *Writer) AppendSint16(v int16) {
	w.AppendUint16(uint16(v))
}

// AppendSint24 appends a signed 24-bit integer. Fails if v is outside
// [MinSint24, MaxSint24].
func (w *Writer) AppendSint24(v int32) error {
	if v < MinSint24 || v > MaxSint24 {
		return fmt.Errorf("%w: %d outside 24-bit signed range", errs.ErrValueOutOfRange, v)
	}

	return w.AppendUint24(uint32(v) & MaxUint24)
}

// AppendSint32 appends a signed 32-bit integer (two's complement).
func (w *Writer) AppendSint32(v int32) {
	w.AppendUint32(uint32(v))
}

// AppendSint48 appends a signed 48-bit integer. Fails if v is outside
// [MinSint48, MaxSint48].
func (w *Writer) AppendSint48(v int64) error {
	if v < MinSint48 || v > MaxSint48 {
		return fmt.Errorf("%w: %d outside 48-bit signed range", errs.ErrValueOutOfRange, v)
	}

	return w.AppendUint48(uint64(v) & MaxUint48)
}

// AppendFloat32 appends an IEEE-754 single-precision float.
func (w *Writer) AppendFloat32(v float32) {
	w.AppendUint32(math.Float32bits(v))
}

// AppendFloat64 appends an IEEE-754 double-precision float.
func (w *Writer) AppendFloat64(v float64) {
	w.check()
	w.buf.B = w.engine.AppendUint64(w.buf.B, math.Float64bits(v))
}

// AppendSFloat encodes and appends a 16-bit IEEE-11073 SFLOAT.
func (w *Writer) AppendSFloat(m MedFloat) error {
	raw, err := EncodeSFloat(m)
	if err != nil {
		return err
	}

	w.AppendUint16(raw)

	return nil
}

// AppendMFloat encodes and appends a 32-bit IEEE-11073 FLOAT.
func (w *Writer) AppendMFloat(m MedFloat) error {
	raw, err := EncodeMFloat(m)
	if err != nil {
		return err
	}

	w.AppendUint32(raw)

	return nil
}

// AppendDateTime encodes and appends the 7-byte date-time layout.
func (w *Writer) AppendDateTime(dt DateTime) error {
	return encodeDateTime(w, dt)
}
