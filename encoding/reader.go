package encoding

import (
	"fmt"
	"math"

	"github.com/gattkit/gattkit/endian"
	"github.com/gattkit/gattkit/errs"
)

// Reader is a bounds-checked cursor over a characteristic payload.
//
// Every read consumes the primitive's width and advances the cursor; a
// read that would pass the end of the payload fails with
// errs.ErrInsufficientData and leaves the cursor unchanged, so the
// reported offset always points at the field that could not be read.
//
// The Reader borrows the byte slice for the duration of the decode call
// and never retains or mutates it.
type Reader struct {
	data   []byte
	off    int
	engine endian.EndianEngine
}

// NewReader creates a Reader over data using the given endian engine.
func NewReader(data []byte, engine endian.EndianEngine) *Reader {
	return &Reader{data: data, engine: engine}
}

// NewLEReader creates a Reader over data in the GATT wire order
// (little-endian).
func NewLEReader(data []byte) *Reader {
	return NewReader(data, endian.GetLittleEndianEngine())
}

// Offset returns the current cursor position in bytes.
func (r *Reader) Offset() int {
	return r.off
}

// Len returns the total payload length in bytes.
func (r *Reader) Len() int {
	return len(r.data)
}

// Remaining returns the number of unconsumed bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// Rest returns the unconsumed tail of the payload without advancing the
// cursor. Decoders use it to carry trailing reserved bytes through
// untouched for forward compatibility.
func (r *Reader) Rest() []byte {
	return r.data[r.off:]
}

// take returns the next n bytes and advances the cursor, or fails with
// ErrInsufficientData without moving.
func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			errs.ErrInsufficientData, n, r.off, r.Remaining())
	}

	b := r.data[r.off : r.off+n]
	r.off += n

	return b, nil
}

// Skip advances the cursor by n bytes without interpreting them.
func (r *Reader) Skip(n int) error {
	_, err := r.take(n)
	return err
}

// Bytes consumes and returns the next n bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	return r.take(n)
}

// Uint8 reads an unsigned 8-bit integer.
func (r *Reader) Uint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// Uint16 reads an unsigned 16-bit integer.
func (r *Reader) Uint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint16(b), nil
}

// Uint24 reads an unsigned 24-bit integer into the low bits of a uint32.
func (r *Reader) Uint24() (uint32, error) {
	b, err := r.take(3)
	if err != nil {
		return 0, err
	}

	// The engine has no 3-byte primitive; widen to 4 bytes in wire order.
	var quad [4]byte
	if r.engine == endian.GetBigEndianEngine() {
		copy(quad[1:], b)
	} else {
		copy(quad[:3], b)
	}

	return r.engine.Uint32(quad[:]), nil
}

// Uint32 reads an unsigned 32-bit integer.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}

	return r.engine.Uint32(b), nil
}

// Uint48 reads an unsigned 48-bit integer into the low bits of a uint64.
func (r *Reader) Uint48() (uint64, error) {
	b, err := r.take(6)
	if err != nil {
		return 0, err
	}

	var oct [8]byte
	if r.engine == endian.GetBigEndianEngine() {
		copy(oct[2:], b)
	} else {
		copy(oct[:6], b)
	}

	return r.engine.Uint64(oct[:]), nil
}

// Sint8 reads a signed 8-bit integer (two's complement).
func (r *Reader) Sint8() (int8, error) {
	v, err := r.Uint8()
	return int8(v), err
}

// Sint16 reads a signed 16-bit integer (two's complement).
func (r *Reader) Sint16() (int16, error) {
	v, err := r.Uint16()
	return int16(v), err
}

// Sint24 reads a signed 24-bit integer, sign-extending bit 23.
func (r *Reader) Sint24() (int32, error) {
	v, err := r.Uint24()
	if err != nil {
		return 0, err
	}

	return signExtend24(v), nil
}

// Sint32 reads a signed 32-bit integer (two's complement).
func (r *Reader) Sint32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// Sint48 reads a signed 48-bit integer, sign-extending bit 47.
func (r *Reader) Sint48() (int64, error) {
	v, err := r.Uint48()
	if err != nil {
		return 0, err
	}

	return signExtend48(v), nil
}

// Float32 reads an IEEE-754 single-precision float.
func (r *Reader) Float32() (float32, error) {
	v, err := r.Uint32()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(v), nil
}

// Float64 reads an IEEE-754 double-precision float.
func (r *Reader) Float64() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(r.engine.Uint64(b)), nil
}

// SFloat reads a 16-bit IEEE-11073 SFLOAT value.
func (r *Reader) SFloat() (MedFloat, error) {
	v, err := r.Uint16()
	if err != nil {
		return MedFloat{}, err
	}

	return DecodeSFloat(v), nil
}

// MFloat reads a 32-bit IEEE-11073 FLOAT value.
func (r *Reader) MFloat() (MedFloat, error) {
	v, err := r.Uint32()
	if err != nil {
		return MedFloat{}, err
	}

	return DecodeMFloat(v), nil
}

// DateTime reads the 7-byte date-time layout.
func (r *Reader) DateTime() (DateTime, error) {
	return decodeDateTime(r)
}

func signExtend24(v uint32) int32 {
	if v&0x800000 != 0 {
		v |= 0xFF000000
	}

	return int32(v)
}

func signExtend48(v uint64) int64 {
	if v&0x800000000000 != 0 {
		v |= 0xFFFF000000000000
	}

	return int64(v)
}
