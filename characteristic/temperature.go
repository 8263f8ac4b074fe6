package characteristic

import (
	"fmt"

	"github.com/gattkit/gattkit/encoding"
	"github.com/gattkit/gattkit/format"
)

// Temperature Measurement flag bits.
const (
	tmFlagFahrenheit = 0 // semantic: 0 Celsius, 1 Fahrenheit
	tmFlagTimestamp  = 1
	tmFlagTempType   = 2
)

// TemperatureType identifies the body site of a temperature measurement.
type TemperatureType uint8

const (
	TempTypeArmpit TemperatureType = iota + 1
	TempTypeBody
	TempTypeEar
	TempTypeFinger
	TempTypeGastroIntestinal
	TempTypeMouth
	TempTypeRectum
	TempTypeToe
	TempTypeTympanum
)

func (t TemperatureType) valid() bool {
	return t >= TempTypeArmpit && t <= TempTypeTympanum
}

// TemperatureMeasurement is the decoded Temperature Measurement
// characteristic: a 32-bit medical float plus optional timestamp and
// body-site type.
type TemperatureMeasurement struct {
	// Fahrenheit selects the unit: false is Celsius.
	Fahrenheit bool
	// Temperature is the measured value.
	Temperature encoding.MedFloat
	// Timestamp is the time of measurement, when transmitted.
	Timestamp *encoding.DateTime
	// TempType is the body site, when transmitted.
	TempType *TemperatureType
}

func (TemperatureMeasurement) CharacteristicType() Type { return TypeTemperatureMeasurement }

type temperatureCodec struct{}

func (temperatureCodec) Type() Type { return TypeTemperatureMeasurement }

func (temperatureCodec) Rule() ValidationRule {
	// flags + FLOAT
	return AtLeast(5, format.KindComposite)
}

func (temperatureCodec) fields(m *TemperatureMeasurement) []GatedField {
	return []GatedField{
		{
			Name: "timestamp",
			Bit:  tmFlagTimestamp,
			Decode: func(r *encoding.Reader) error {
				dt, err := r.DateTime()
				if err != nil {
					return err
				}
				m.Timestamp = &dt

				return nil
			},
			Present: func() bool { return m.Timestamp != nil },
			Encode: func(w *encoding.Writer) error {
				return w.AppendDateTime(*m.Timestamp)
			},
		},
		{
			Name: "temperature type",
			Bit:  tmFlagTempType,
			Decode: func(r *encoding.Reader) error {
				b, err := r.Uint8()
				if err != nil {
					return err
				}
				tt := TemperatureType(b)
				m.TempType = &tt

				return nil
			},
			Present: func() bool { return m.TempType != nil },
			Encode: func(w *encoding.Writer) error {
				w.AppendUint8(uint8(*m.TempType))
				return nil
			},
		},
	}
}

func (c temperatureCodec) Decode(r *encoding.Reader, _ DecodeParams) (Value, []FieldError, error) {
	flagByte, err := r.Uint8()
	if err != nil {
		return nil, nil, err
	}
	flags := uint32(flagByte)

	m := &TemperatureMeasurement{
		Fahrenheit: encoding.TestBit(flags, tmFlagFahrenheit),
	}

	if m.Temperature, err = r.MFloat(); err != nil {
		return nil, nil, fmt.Errorf("temperature value: %w", err)
	}

	fieldErrs := WalkDecode(r, flags, c.fields(m))

	return m, fieldErrs, nil
}

func (c temperatureCodec) Encode(w *encoding.Writer, v Value) error {
	m, err := valueAs[*TemperatureMeasurement](v)
	if err != nil {
		return err
	}

	fields := c.fields(m)

	base := uint32(0)
	if m.Fahrenheit {
		base = encoding.SetBit(base, tmFlagFahrenheit)
	}
	w.AppendUint8(uint8(DeriveFlags(base, fields)))

	if err := w.AppendMFloat(m.Temperature); err != nil {
		return fmt.Errorf("temperature value: %w", err)
	}

	return WalkEncode(w, fields)
}

func (temperatureCodec) Validate(v Value) []FieldError {
	m, err := valueAs[*TemperatureMeasurement](v)
	if err != nil {
		return nil
	}

	var fieldErrs []FieldError
	if m.TempType != nil {
		if fe := checkDiscrete("temperature type", uint64(*m.TempType), func(v uint64) bool {
			return TemperatureType(v).valid()
		}); fe != nil {
			fieldErrs = append(fieldErrs, *fe)
		}
	}
	if m.Timestamp != nil {
		if verr := m.Timestamp.Validate(); verr != nil {
			fieldErrs = append(fieldErrs, FieldError{Field: "timestamp", Reason: verr})
		}
	}

	return fieldErrs
}
