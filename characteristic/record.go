package characteristic

import (
	"github.com/gattkit/gattkit/encoding"
	"github.com/gattkit/gattkit/format"
)

// Segmentation header bit layout for record-oriented characteristics.
const (
	segBitFirst    = 0
	segBitLast     = 1
	segBitsCounter = 2
)

// RecordCRCCandidate is the alternative reading of a record segment's
// tail: the last two bytes split off as a CRC-16.
type RecordCRCCandidate struct {
	// Payload is the segment body without the trailing two bytes.
	Payload []byte
	// CRC is the trailing two bytes read little-endian.
	CRC uint16
}

// BloodPressureRecord is one segment of an Enhanced Blood Pressure
// record transfer. Whether the segment tail carries an E2E-CRC cannot be
// determined from the bytes alone; it depends on service-level feature
// negotiation the codec cannot see. The caller states what it knows
// through DecodeParams.RecordCRC:
//
//   - CRCAbsent: the whole remainder is payload; WithCRC is nil.
//   - CRCPresent: the last two bytes are split off; Payload is nil.
//   - CRCUnknown: both readings are returned. Payload carries the full
//     remainder, WithCRC the split alternative, and the caller resolves
//     the ambiguity with context the codec lacks.
type BloodPressureRecord struct {
	// First marks the first segment of a record.
	First bool
	// Last marks the final segment.
	Last bool
	// Counter is the 6-bit rolling segment counter.
	Counter uint8
	// Payload is the segment body with the tail treated as payload.
	Payload []byte
	// WithCRC is the segment body with the tail treated as a CRC.
	WithCRC *RecordCRCCandidate
}

func (BloodPressureRecord) CharacteristicType() Type { return TypeBloodPressureRecord }

type bpRecordCodec struct{}

func (bpRecordCodec) Type() Type { return TypeBloodPressureRecord }

func (bpRecordCodec) Rule() ValidationRule {
	return AtLeast(1, format.KindComposite)
}

func (bpRecordCodec) Decode(r *encoding.Reader, p DecodeParams) (Value, []FieldError, error) {
	header, err := r.Uint8()
	if err != nil {
		return nil, nil, err
	}

	counter, err := encoding.ExtractBits(uint32(header), segBitsCounter, 6)
	if err != nil {
		return nil, nil, err
	}

	m := &BloodPressureRecord{
		First:   encoding.TestBit(uint32(header), segBitFirst),
		Last:    encoding.TestBit(uint32(header), segBitLast),
		Counter: uint8(counter),
	}

	rest := append([]byte(nil), r.Rest()...)
	if err := r.Skip(len(rest)); err != nil {
		return nil, nil, err
	}

	splitTail := func() *RecordCRCCandidate {
		n := len(rest)

		return &RecordCRCCandidate{
			Payload: rest[:n-2],
			CRC:     uint16(rest[n-2]) | uint16(rest[n-1])<<8,
		}
	}

	switch {
	case p.RecordCRC == CRCPresent && len(rest) >= 2:
		m.WithCRC = splitTail()
	case p.RecordCRC == CRCUnknown && len(rest) >= 2:
		m.Payload = rest
		m.WithCRC = splitTail()
	default:
		m.Payload = rest
	}

	return m, nil, nil
}

func (bpRecordCodec) Encode(w *encoding.Writer, v Value) error {
	m, err := valueAs[*BloodPressureRecord](v)
	if err != nil {
		return err
	}

	var header uint32
	if m.First {
		header = encoding.SetBit(header, segBitFirst)
	}
	if m.Last {
		header = encoding.SetBit(header, segBitLast)
	}
	if header, err = encoding.SetBits(header, uint32(m.Counter), segBitsCounter, 6); err != nil {
		return err
	}
	w.AppendUint8(uint8(header))

	// When both readings are populated they describe the same bytes, so
	// the full-remainder form wins; a CRC-only value appends its tail.
	switch {
	case m.Payload != nil:
		w.AppendBytes(m.Payload)
	case m.WithCRC != nil:
		w.AppendBytes(m.WithCRC.Payload)
		w.AppendUint16(m.WithCRC.CRC)
	}

	return nil
}

func (bpRecordCodec) Validate(Value) []FieldError { return nil }
