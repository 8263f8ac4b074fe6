package characteristic

import (
	"fmt"
	"time"

	"github.com/gattkit/gattkit/encoding"
	"github.com/gattkit/gattkit/errs"
	"github.com/gattkit/gattkit/format"
)

// Heart Rate Measurement flag bits.
const (
	hrFlagFormat16         = 0 // semantic: heart rate value width
	hrFlagContact          = 1
	hrFlagContactSupported = 2
	hrFlagEnergy           = 3
	hrFlagRRIntervals      = 4
)

// HeartRateMeasurement is the decoded Heart Rate Measurement
// characteristic.
type HeartRateMeasurement struct {
	// Rate is the heart rate in beats per minute.
	Rate uint16
	// Wide records whether the sensor sent the rate in the 16-bit format.
	// Preserved so re-encoding reproduces the original bytes.
	Wide bool
	// ContactSupported and ContactDetected mirror the sensor contact
	// status bits.
	ContactSupported bool
	ContactDetected  bool
	// EnergyExpended is the accumulated energy in kilojoules; nil when
	// the sensor did not include it.
	EnergyExpended *uint16
	// RRIntervals holds raw RR interval values in 1/1024s units, in
	// received order.
	RRIntervals []uint16
}

func (HeartRateMeasurement) CharacteristicType() Type { return TypeHeartRateMeasurement }

// RRDurations converts the raw RR intervals to time.Duration.
func (m *HeartRateMeasurement) RRDurations() []time.Duration {
	if len(m.RRIntervals) == 0 {
		return nil
	}

	out := make([]time.Duration, len(m.RRIntervals))
	for i, rr := range m.RRIntervals {
		out[i] = time.Duration(rr) * time.Second / 1024
	}

	return out
}

type heartRateCodec struct{}

func (heartRateCodec) Type() Type { return TypeHeartRateMeasurement }

func (heartRateCodec) Rule() ValidationRule {
	return AtLeast(2, format.KindComposite)
}

func (heartRateCodec) fields(m *HeartRateMeasurement) []GatedField {
	return []GatedField{
		{
			Name: "energy expended",
			Bit:  hrFlagEnergy,
			Decode: func(r *encoding.Reader) error {
				v, err := r.Uint16()
				if err != nil {
					return err
				}
				m.EnergyExpended = &v

				return nil
			},
			Present: func() bool { return m.EnergyExpended != nil },
			Encode: func(w *encoding.Writer) error {
				w.AppendUint16(*m.EnergyExpended)
				return nil
			},
		},
		{
			Name: "rr intervals",
			Bit:  hrFlagRRIntervals,
			Decode: func(r *encoding.Reader) error {
				// RR intervals fill the remainder of the payload; a
				// trailing odd byte is reserved and left unconsumed.
				for r.Remaining() >= 2 {
					rr, err := r.Uint16()
					if err != nil {
						return err
					}
					m.RRIntervals = append(m.RRIntervals, rr)
				}

				return nil
			},
			Present: func() bool { return len(m.RRIntervals) > 0 },
			Encode: func(w *encoding.Writer) error {
				for _, rr := range m.RRIntervals {
					w.AppendUint16(rr)
				}
				return nil
			},
		},
	}
}

func (c heartRateCodec) Decode(r *encoding.Reader, _ DecodeParams) (Value, []FieldError, error) {
	flagByte, err := r.Uint8()
	if err != nil {
		return nil, nil, err
	}
	flags := uint32(flagByte)

	m := &HeartRateMeasurement{
		Wide:             encoding.TestBit(flags, hrFlagFormat16),
		ContactDetected:  encoding.TestBit(flags, hrFlagContact),
		ContactSupported: encoding.TestBit(flags, hrFlagContactSupported),
	}

	if m.Wide {
		m.Rate, err = r.Uint16()
	} else {
		var narrow uint8
		narrow, err = r.Uint8()
		m.Rate = uint16(narrow)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("heart rate value: %w", err)
	}

	fieldErrs := WalkDecode(r, flags, c.fields(m))

	return m, fieldErrs, nil
}

func (c heartRateCodec) Encode(w *encoding.Writer, v Value) error {
	m, err := valueAs[*HeartRateMeasurement](v)
	if err != nil {
		return err
	}

	if !m.Wide && m.Rate > 0xFF {
		return fmt.Errorf("%w: rate %d does not fit 8-bit format", errs.ErrValueOutOfRange, m.Rate)
	}

	fields := c.fields(m)

	base := uint32(0)
	if m.Wide {
		base = encoding.SetBit(base, hrFlagFormat16)
	}
	if m.ContactDetected {
		base = encoding.SetBit(base, hrFlagContact)
	}
	if m.ContactSupported {
		base = encoding.SetBit(base, hrFlagContactSupported)
	}

	w.AppendUint8(uint8(DeriveFlags(base, fields)))

	if m.Wide {
		w.AppendUint16(m.Rate)
	} else {
		w.AppendUint8(uint8(m.Rate))
	}

	return WalkEncode(w, fields)
}

func (heartRateCodec) Validate(Value) []FieldError { return nil }
