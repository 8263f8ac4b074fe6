package capture

import (
	"fmt"
	"iter"
	"time"

	"github.com/gattkit/gattkit/characteristic"
	"github.com/gattkit/gattkit/compress"
	"github.com/gattkit/gattkit/encoding"
	"github.com/gattkit/gattkit/errs"
)

// Decoder reads entries back out of a capture log blob. The payload is
// decompressed once at construction; iteration itself allocates only the
// per-entry raw copies.
type Decoder struct {
	header  Header
	payload []byte
	start   time.Time
	err     error
}

// NewDecoder parses and validates the log header and decompresses the
// entry payload.
func NewDecoder(blob []byte) (*Decoder, error) {
	header, err := ParseHeader(blob)
	if err != nil {
		return nil, err
	}

	body := blob[HeaderSize:]
	if len(body) != int(header.PayloadSize) {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d",
			errs.ErrInvalidCaptureHeader, len(body), header.PayloadSize)
	}

	codec, err := compress.GetCodec(header.Compression())
	if err != nil {
		return nil, err
	}

	payload, err := codec.Decompress(body)
	if err != nil {
		return nil, fmt.Errorf("decompress capture payload: %w", err)
	}

	return &Decoder{
		header:  header,
		payload: payload,
		start:   header.StartTimeAsTime(),
	}, nil
}

// Header returns the parsed log header.
func (d *Decoder) Header() Header {
	return d.header
}

// Count returns the number of entries the header declares.
func (d *Decoder) Count() int {
	return int(d.header.EntryCount)
}

// All iterates the log's entries in capture order. Iteration stops early
// on a malformed entry; check Err afterwards.
func (d *Decoder) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		d.err = nil
		r := encoding.NewLEReader(d.payload)

		for i := uint32(0); i < d.header.EntryCount; i++ {
			entry, err := d.readEntry(r)
			if err != nil {
				d.err = fmt.Errorf("%w: entry %d: %v", errs.ErrInvalidCaptureEntry, i, err)
				return
			}

			if !yield(entry) {
				return
			}
		}
	}
}

// Err reports the malformed-entry error from the last iteration, if any.
func (d *Decoder) Err() error {
	return d.err
}

func (d *Decoder) readEntry(r *encoding.Reader) (Entry, error) {
	offset, err := r.Uint32()
	if err != nil {
		return Entry{}, err
	}
	typ, err := r.Uint16()
	if err != nil {
		return Entry{}, err
	}
	flags, err := r.Uint8()
	if err != nil {
		return Entry{}, err
	}
	length, err := r.Uint16()
	if err != nil {
		return Entry{}, err
	}
	raw, err := r.Bytes(int(length))
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		CapturedAt: d.start.Add(time.Duration(offset) * time.Millisecond),
		Type:       characteristic.Type(typ),
		Raw:        append([]byte(nil), raw...),
		OK:         encoding.TestBit(uint32(flags), entryFlagOK),
	}, nil
}
