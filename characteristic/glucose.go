package characteristic

import (
	"github.com/gattkit/gattkit/encoding"
	"github.com/gattkit/gattkit/format"
)

// Glucose Measurement flag bits. Bit 2 selects the concentration unit and
// carries no field of its own.
const (
	glFlagTimeOffset     = 0
	glFlagConcentration  = 1
	glFlagUnitMolPerL    = 2
	glFlagSensorStatus   = 3
	glFlagContextFollows = 4
)

// GlucoseConcentration groups the fields gated by the concentration bit:
// the SFLOAT value and the packed type / sample-location byte.
type GlucoseConcentration struct {
	// Value is the concentration in kg/L, or mol/L when MolPerL is set on
	// the measurement.
	Value encoding.MedFloat
	// Type is the fluid type nibble (low nibble of the packed byte).
	Type uint8
	// SampleLocation is the sample location nibble (high nibble).
	SampleLocation uint8
}

// GlucoseMeasurement is the decoded Glucose Measurement characteristic.
// The sequence number and base time are mandatory; everything else is
// flag-gated.
type GlucoseMeasurement struct {
	// SequenceNumber orders records within the sensor's database.
	SequenceNumber uint16
	// BaseTime is the measurement timestamp.
	BaseTime encoding.DateTime
	// TimeOffset is the signed offset in minutes from BaseTime, present
	// when the sensor tracks a user-adjusted time.
	TimeOffset *int16
	// Concentration carries the reading and its fluid type / location.
	Concentration *GlucoseConcentration
	// MolPerL selects mol/L as the concentration unit instead of kg/L.
	MolPerL bool
	// SensorStatus is the sensor status annunciation bitmask.
	SensorStatus *uint16
	// ContextFollows signals that a Glucose Measurement Context record
	// with the same sequence number follows this one.
	ContextFollows bool
}

func (GlucoseMeasurement) CharacteristicType() Type { return TypeGlucoseMeasurement }

type glucoseCodec struct{}

func (glucoseCodec) Type() Type { return TypeGlucoseMeasurement }

func (glucoseCodec) Rule() ValidationRule {
	return AtLeast(10, format.KindComposite)
}

func (glucoseCodec) fields(m *GlucoseMeasurement) []GatedField {
	return []GatedField{
		{
			Name: "time offset",
			Bit:  glFlagTimeOffset,
			Decode: func(r *encoding.Reader) error {
				v, err := r.Sint16()
				if err != nil {
					return err
				}
				m.TimeOffset = &v

				return nil
			},
			Present: func() bool { return m.TimeOffset != nil },
			Encode: func(w *encoding.Writer) error {
				w.AppendSint16(*m.TimeOffset)

				return nil
			},
		},
		{
			Name: "glucose concentration",
			Bit:  glFlagConcentration,
			Decode: func(r *encoding.Reader) error {
				val, err := r.SFloat()
				if err != nil {
					return err
				}
				packed, err := r.Uint8()
				if err != nil {
					return err
				}
				m.Concentration = &GlucoseConcentration{
					Value:          val,
					Type:           packed & 0x0F,
					SampleLocation: packed >> 4,
				}

				return nil
			},
			Present: func() bool { return m.Concentration != nil },
			Encode: func(w *encoding.Writer) error {
				if err := w.AppendSFloat(m.Concentration.Value); err != nil {
					return err
				}
				w.AppendUint8(m.Concentration.SampleLocation<<4 | m.Concentration.Type&0x0F)

				return nil
			},
		},
		{
			Name: "sensor status annunciation",
			Bit:  glFlagSensorStatus,
			Decode: func(r *encoding.Reader) error {
				v, err := r.Uint16()
				if err != nil {
					return err
				}
				m.SensorStatus = &v

				return nil
			},
			Present: func() bool { return m.SensorStatus != nil },
			Encode: func(w *encoding.Writer) error {
				w.AppendUint16(*m.SensorStatus)

				return nil
			},
		},
	}
}

func (c glucoseCodec) Decode(r *encoding.Reader, _ DecodeParams) (Value, []FieldError, error) {
	flagByte, err := r.Uint8()
	if err != nil {
		return nil, nil, err
	}
	flags := uint32(flagByte)

	m := &GlucoseMeasurement{
		MolPerL:        encoding.TestBit(flags, glFlagUnitMolPerL),
		ContextFollows: encoding.TestBit(flags, glFlagContextFollows),
	}

	if m.SequenceNumber, err = r.Uint16(); err != nil {
		return nil, nil, err
	}
	if m.BaseTime, err = r.DateTime(); err != nil {
		return nil, nil, err
	}

	fieldErrs := WalkDecode(r, flags, c.fields(m))

	return m, fieldErrs, nil
}

func (c glucoseCodec) Encode(w *encoding.Writer, v Value) error {
	m, err := valueAs[*GlucoseMeasurement](v)
	if err != nil {
		return err
	}

	var base uint32
	if m.MolPerL {
		base = encoding.SetBit(base, glFlagUnitMolPerL)
	}
	if m.ContextFollows {
		base = encoding.SetBit(base, glFlagContextFollows)
	}

	fields := c.fields(m)
	w.AppendUint8(uint8(DeriveFlags(base, fields)))
	w.AppendUint16(m.SequenceNumber)
	if err := w.AppendDateTime(m.BaseTime); err != nil {
		return err
	}

	return WalkEncode(w, fields)
}

func (glucoseCodec) Validate(v Value) []FieldError {
	m, err := valueAs[*GlucoseMeasurement](v)
	if err != nil {
		return nil
	}

	var fieldErrs []FieldError
	if fe := m.BaseTime.Validate(); fe != nil {
		fieldErrs = append(fieldErrs, FieldError{Field: "base time", Reason: fe})
	}

	return fieldErrs
}
