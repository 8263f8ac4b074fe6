package capture

import (
	"fmt"
	"time"

	"github.com/gattkit/gattkit/endian"
	"github.com/gattkit/gattkit/errs"
	"github.com/gattkit/gattkit/format"
)

const (
	// HeaderSize is the fixed size of the capture log header in bytes.
	HeaderSize = 20

	// CompressionMask covers the compression type (bits 0-3 of the
	// options word); MagicNumberMask covers the magic (bits 4-15).
	CompressionMask = 0x000F
	MagicNumberMask = 0xFFF0

	// MagicCaptureV1Opt is the version 1 magic number for capture logs,
	// pre-shifted into the magic bits of the options word.
	MagicCaptureV1Opt = 0xCA10
)

// Header is the fixed-size section at the start of a capture log blob.
// The options word carries the magic number and the payload compression
// type; the remaining fields locate and size the entry payload.
type Header struct {
	// StartTime is the session start, unix timestamp in microseconds.
	// Entry timestamps are millisecond offsets from it.
	StartTime int64 // byte offset 4-11
	// EntryCount is the number of entries in the payload.
	EntryCount uint32 // byte offset 12-15
	// PayloadSize is the compressed payload length in bytes.
	PayloadSize uint32 // byte offset 16-19

	// Options is the packed magic/compression word.
	Options uint16 // byte offset 0-1
}

// NewHeader creates a Header for a session starting at the given time.
// The entry count and payload size are filled in by the encoder's Finish.
func NewHeader(startTime time.Time, compression format.CompressionType) Header {
	return Header{
		StartTime: startTime.UnixMicro(),
		Options:   MagicCaptureV1Opt | uint16(compression)&CompressionMask,
	}
}

// Compression returns the payload compression type.
func (h Header) Compression() format.CompressionType {
	return format.CompressionType(h.Options & CompressionMask)
}

// StartTimeAsTime returns the session start as a time.Time.
func (h Header) StartTimeAsTime() time.Time {
	return time.UnixMicro(h.StartTime)
}

// Validate checks the magic number and compression type.
func (h Header) Validate() error {
	if h.Options&MagicNumberMask != MagicCaptureV1Opt {
		return fmt.Errorf("%w: bad magic 0x%04X", errs.ErrInvalidCaptureHeader, h.Options&MagicNumberMask)
	}

	switch h.Compression() {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		return nil
	default:
		return fmt.Errorf("%w: unknown compression 0x%X", errs.ErrInvalidCaptureHeader, uint8(h.Compression()))
	}
}

// Bytes serializes the header.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := endian.GetLittleEndianEngine()

	engine.PutUint16(b[0:2], h.Options)
	// bytes 2-3 reserved
	engine.PutUint64(b[4:12], uint64(h.StartTime))
	engine.PutUint32(b[12:16], h.EntryCount)
	engine.PutUint32(b[16:20], h.PayloadSize)

	return b
}

// ParseHeader parses a capture log header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes, need %d", errs.ErrInvalidCaptureHeader, len(data), HeaderSize)
	}

	engine := endian.GetLittleEndianEngine()
	h := Header{
		Options:     engine.Uint16(data[0:2]),
		StartTime:   int64(engine.Uint64(data[4:12])),
		EntryCount:  engine.Uint32(data[12:16]),
		PayloadSize: engine.Uint32(data[16:20]),
	}

	return h, h.Validate()
}
