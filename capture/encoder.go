// Package capture serializes sessions of received characteristic payloads
// into a compact, compressed log blob and reads them back.
//
// A log is a fixed header followed by a compressed block of entries. Raw
// payloads are stored, not decoded values, so logs survive codec changes
// and can be replayed with sibling context that arrived later.
package capture

import (
	"fmt"
	"math"
	"time"

	"github.com/gattkit/gattkit/characteristic"
	"github.com/gattkit/gattkit/compress"
	"github.com/gattkit/gattkit/encoding"
	"github.com/gattkit/gattkit/errs"
	"github.com/gattkit/gattkit/format"
	"github.com/gattkit/gattkit/internal/options"
)

// Encoder accumulates capture entries and produces the log blob. Create
// one per session; an Encoder is not safe for concurrent use.
type Encoder struct {
	header  Header
	start   time.Time
	payload *encoding.Writer
	count   uint32
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*Encoder]

// WithCompression selects the payload compression. The default is S2,
// the speed-oriented choice for live capture.
func WithCompression(ct format.CompressionType) EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.header.Options = MagicCaptureV1Opt | uint16(ct)&CompressionMask
	})
}

// NewEncoder creates an Encoder for a session starting at startTime.
// Entry timestamps are stored as millisecond offsets from it.
func NewEncoder(startTime time.Time, opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{
		header:  NewHeader(startTime, format.CompressionS2),
		start:   startTime,
		payload: encoding.NewCaptureWriter(),
	}

	if err := options.Apply(e, opts...); err != nil {
		e.payload.Finish()
		return nil, err
	}

	if err := e.header.Validate(); err != nil {
		e.payload.Finish()
		return nil, err
	}

	return e, nil
}

// Add appends one captured payload. Entries must be added in capture
// order; the timestamp must not precede the session start.
func (e *Encoder) Add(at time.Time, t characteristic.Type, raw []byte, ok bool) error {
	offset := at.Sub(e.start).Milliseconds()
	if offset < 0 || offset > math.MaxUint32 {
		return fmt.Errorf("%w: timestamp %v outside session window", errs.ErrInvalidCaptureEntry, at)
	}
	if len(raw) > math.MaxUint16 {
		return fmt.Errorf("%w: %d-byte payload exceeds entry limit", errs.ErrInvalidCaptureEntry, len(raw))
	}

	e.payload.AppendUint32(uint32(offset))
	e.payload.AppendUint16(uint16(t))

	var flags uint32
	if ok {
		flags = encoding.SetBit(flags, entryFlagOK)
	}
	e.payload.AppendUint8(uint8(flags))

	e.payload.AppendUint16(uint16(len(raw)))
	e.payload.AppendBytes(raw)
	e.count++

	return nil
}

// AddOutcome appends a decode outcome's raw payload, recording whether
// the decode was fully clean.
func (e *Encoder) AddOutcome(at time.Time, outcome *characteristic.ParseOutcome) error {
	return e.Add(at, outcome.Type, outcome.Raw, outcome.Success)
}

// Count returns the number of entries added so far.
func (e *Encoder) Count() int {
	return int(e.count)
}

// Finish compresses the accumulated entries and returns the complete log
// blob. The Encoder is unusable afterwards.
func (e *Encoder) Finish() ([]byte, error) {
	defer e.payload.Finish()

	codec, err := compress.GetCodec(e.header.Compression())
	if err != nil {
		return nil, err
	}

	compressed, err := codec.Compress(e.payload.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress capture payload: %w", err)
	}

	e.header.EntryCount = e.count
	e.header.PayloadSize = uint32(len(compressed))

	blob := make([]byte, 0, HeaderSize+len(compressed))
	blob = append(blob, e.header.Bytes()...)
	blob = append(blob, compressed...)

	return blob, nil
}
