package characteristic

import (
	"github.com/gattkit/gattkit/encoding"
	"github.com/gattkit/gattkit/format"
)

// CSC Measurement flag bits.
const (
	cscFlagWheel = 0
	cscFlagCrank = 1
)

// WheelRevolutionData is the pair of fields gated by the wheel revolution
// bit: both travel together or not at all.
type WheelRevolutionData struct {
	// Revolutions is the cumulative wheel revolution count.
	Revolutions uint32
	// LastEventTime is the time of the last wheel event in 1/1024s units,
	// free-running with rollover.
	LastEventTime uint16
}

// CrankRevolutionData is the pair of fields gated by the crank revolution
// bit.
type CrankRevolutionData struct {
	Revolutions   uint16
	LastEventTime uint16
}

// CSCMeasurement is the decoded CSC (Cycling Speed and Cadence)
// Measurement characteristic. Each revolution pair is present only when
// its flag bit gates it in; a single bit gates two wire fields at once.
type CSCMeasurement struct {
	Wheel *WheelRevolutionData
	Crank *CrankRevolutionData
}

func (CSCMeasurement) CharacteristicType() Type { return TypeCSCMeasurement }

type cscCodec struct{}

func (cscCodec) Type() Type { return TypeCSCMeasurement }

func (cscCodec) Rule() ValidationRule {
	return AtLeast(1, format.KindComposite)
}

func (cscCodec) fields(m *CSCMeasurement) []GatedField {
	return []GatedField{
		{
			Name: "wheel revolution data",
			Bit:  cscFlagWheel,
			Decode: func(r *encoding.Reader) error {
				revs, err := r.Uint32()
				if err != nil {
					return err
				}
				evt, err := r.Uint16()
				if err != nil {
					return err
				}
				m.Wheel = &WheelRevolutionData{Revolutions: revs, LastEventTime: evt}

				return nil
			},
			Present: func() bool { return m.Wheel != nil },
			Encode: func(w *encoding.Writer) error {
				w.AppendUint32(m.Wheel.Revolutions)
				w.AppendUint16(m.Wheel.LastEventTime)

				return nil
			},
		},
		{
			Name: "crank revolution data",
			Bit:  cscFlagCrank,
			Decode: func(r *encoding.Reader) error {
				revs, err := r.Uint16()
				if err != nil {
					return err
				}
				evt, err := r.Uint16()
				if err != nil {
					return err
				}
				m.Crank = &CrankRevolutionData{Revolutions: revs, LastEventTime: evt}

				return nil
			},
			Present: func() bool { return m.Crank != nil },
			Encode: func(w *encoding.Writer) error {
				w.AppendUint16(m.Crank.Revolutions)
				w.AppendUint16(m.Crank.LastEventTime)

				return nil
			},
		},
	}
}

func (c cscCodec) Decode(r *encoding.Reader, _ DecodeParams) (Value, []FieldError, error) {
	flagByte, err := r.Uint8()
	if err != nil {
		return nil, nil, err
	}

	m := &CSCMeasurement{}
	fieldErrs := WalkDecode(r, uint32(flagByte), c.fields(m))

	return m, fieldErrs, nil
}

func (c cscCodec) Encode(w *encoding.Writer, v Value) error {
	m, err := valueAs[*CSCMeasurement](v)
	if err != nil {
		return err
	}

	fields := c.fields(m)
	w.AppendUint8(uint8(DeriveFlags(0, fields)))

	return WalkEncode(w, fields)
}

func (cscCodec) Validate(Value) []FieldError { return nil }
