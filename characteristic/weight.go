package characteristic

import (
	"github.com/gattkit/gattkit/encoding"
	"github.com/gattkit/gattkit/format"
)

// Weight Measurement flag bits. Bit 0 selects imperial units and carries
// no field of its own.
const (
	wmFlagImperial  = 0
	wmFlagTimestamp = 1
	wmFlagUserID    = 2
	wmFlagBMIHeight = 3
)

// BMIHeight groups the BMI and height fields gated by a single flag bit.
type BMIHeight struct {
	// BMI is the body mass index in units of 0.1 kg/m².
	BMI uint16
	// Height is the raw height count; its resolution comes from the
	// Weight Scale Feature.
	Height uint16
}

// WeightMeasurement is the decoded Weight Measurement characteristic.
// Weight and Height are raw wire counts; the per-count resolution is a
// property of the scale, advertised in its Weight Scale Feature
// characteristic, so Decode resolves it from the sibling context when
// one is supplied and falls back to the finest resolution otherwise.
type WeightMeasurement struct {
	// Weight is the raw weight count.
	Weight uint16
	// Imperial selects lb/in units instead of kg/m.
	Imperial bool
	// Timestamp is the measurement time.
	Timestamp *encoding.DateTime
	// UserID identifies the scale user slot.
	UserID *uint8
	// Body carries the BMI and height pair.
	Body *BMIHeight

	// WeightResolution is the mass per weight count (kg or lb per the
	// Imperial flag), resolved at decode time. Not serialized.
	WeightResolution float64
	// HeightResolution is the length per height count (m or in).
	HeightResolution float64
}

func (WeightMeasurement) CharacteristicType() Type { return TypeWeightMeasurement }

// WeightValue returns the weight in the selected mass unit.
func (m *WeightMeasurement) WeightValue() float64 {
	return float64(m.Weight) * m.WeightResolution
}

// WeightScaleFeature is the decoded Weight Scale Feature characteristic:
// a 32-bit bitmask advertising scale capabilities and measurement
// resolutions.
type WeightScaleFeature struct {
	TimestampSupported bool
	MultiUserSupported bool
	BMISupported       bool
	// WeightResolutionCode is the 4-bit resolution selector (0 means
	// unspecified).
	WeightResolutionCode uint8
	// HeightResolutionCode is the 3-bit resolution selector.
	HeightResolutionCode uint8
}

func (WeightScaleFeature) CharacteristicType() Type { return TypeWeightScaleFeature }

// weightResolutionsSI maps the 4-bit resolution code to kg per count;
// weightResolutionsImperial maps it to lb per count. Code 0 (unspecified)
// falls back to the finest resolution.
var (
	weightResolutionsSI       = []float64{0.005, 0.5, 0.2, 0.1, 0.05, 0.02, 0.01, 0.005}
	weightResolutionsImperial = []float64{0.01, 1, 0.5, 0.2, 0.1, 0.05, 0.02, 0.01}
	heightResolutionsSI       = []float64{0.001, 0.01, 0.005, 0.001}
	heightResolutionsImperial = []float64{0.1, 1, 0.5, 0.1}
)

// WeightResolution returns the mass per weight count for the given unit
// system.
func (f *WeightScaleFeature) WeightResolution(imperial bool) float64 {
	table := weightResolutionsSI
	if imperial {
		table = weightResolutionsImperial
	}
	if int(f.WeightResolutionCode) >= len(table) {
		return table[0]
	}

	return table[f.WeightResolutionCode]
}

// HeightResolution returns the length per height count for the given
// unit system.
func (f *WeightScaleFeature) HeightResolution(imperial bool) float64 {
	table := heightResolutionsSI
	if imperial {
		table = heightResolutionsImperial
	}
	if int(f.HeightResolutionCode) >= len(table) {
		return table[0]
	}

	return table[f.HeightResolutionCode]
}

type weightCodec struct{}

func (weightCodec) Type() Type { return TypeWeightMeasurement }

func (weightCodec) Rule() ValidationRule {
	return AtLeast(3, format.KindComposite)
}

func (weightCodec) fields(m *WeightMeasurement) []GatedField {
	return []GatedField{
		{
			Name: "timestamp",
			Bit:  wmFlagTimestamp,
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
			Name: "user id",
			Bit:  wmFlagUserID,
			Decode: func(r *encoding.Reader) error {
				v, err := r.Uint8()
				if err != nil {
					return err
				}
				m.UserID = &v

				return nil
			},
			Present: func() bool { return m.UserID != nil },
			Encode: func(w *encoding.Writer) error {
				w.AppendUint8(*m.UserID)

				return nil
			},
		},
		{
			Name: "bmi and height",
			Bit:  wmFlagBMIHeight,
			Decode: func(r *encoding.Reader) error {
				bmi, err := r.Uint16()
				if err != nil {
					return err
				}
				height, err := r.Uint16()
				if err != nil {
					return err
				}
				m.Body = &BMIHeight{BMI: bmi, Height: height}

				return nil
			},
			Present: func() bool { return m.Body != nil },
			Encode: func(w *encoding.Writer) error {
				w.AppendUint16(m.Body.BMI)
				w.AppendUint16(m.Body.Height)

				return nil
			},
		},
	}
}

func (c weightCodec) Decode(r *encoding.Reader, p DecodeParams) (Value, []FieldError, error) {
	flagByte, err := r.Uint8()
	if err != nil {
		return nil, nil, err
	}
	flags := uint32(flagByte)

	m := &WeightMeasurement{
		Imperial: encoding.TestBit(flags, wmFlagImperial),
	}
	if m.Weight, err = r.Uint16(); err != nil {
		return nil, nil, err
	}

	m.WeightResolution = weightResolutionsSI[0]
	m.HeightResolution = heightResolutionsSI[0]
	if m.Imperial {
		m.WeightResolution = weightResolutionsImperial[0]
		m.HeightResolution = heightResolutionsImperial[0]
	}
	feature, ok, err := siblingAs[*WeightScaleFeature](p.Context, TypeWeightScaleFeature)
	if err != nil {
		return nil, nil, err
	}
	if ok {
		m.WeightResolution = feature.WeightResolution(m.Imperial)
		m.HeightResolution = feature.HeightResolution(m.Imperial)
	}

	fieldErrs := WalkDecode(r, flags, c.fields(m))

	return m, fieldErrs, nil
}

func (c weightCodec) Encode(w *encoding.Writer, v Value) error {
	m, err := valueAs[*WeightMeasurement](v)
	if err != nil {
		return err
	}

	var base uint32
	if m.Imperial {
		base = encoding.SetBit(base, wmFlagImperial)
	}

	fields := c.fields(m)
	w.AppendUint8(uint8(DeriveFlags(base, fields)))
	w.AppendUint16(m.Weight)

	return WalkEncode(w, fields)
}

func (weightCodec) Validate(v Value) []FieldError {
	m, err := valueAs[*WeightMeasurement](v)
	if err != nil {
		return nil
	}

	var fieldErrs []FieldError
	if m.Timestamp != nil {
		if err := m.Timestamp.Validate(); err != nil {
			fieldErrs = append(fieldErrs, FieldError{Field: "timestamp", Reason: err})
		}
	}

	return fieldErrs
}

const (
	wsfBitTimestamp = 0
	wsfBitMultiUser = 1
	wsfBitBMI       = 2
)

type weightFeatureCodec struct{}

func (weightFeatureCodec) Type() Type { return TypeWeightScaleFeature }

func (weightFeatureCodec) Rule() ValidationRule {
	return Exactly(4, format.KindComposite)
}

func (weightFeatureCodec) Decode(r *encoding.Reader, _ DecodeParams) (Value, []FieldError, error) {
	bits, err := r.Uint32()
	if err != nil {
		return nil, nil, err
	}

	weightRes, err := encoding.ExtractBits(bits, 3, 4)
	if err != nil {
		return nil, nil, err
	}
	heightRes, err := encoding.ExtractBits(bits, 7, 3)
	if err != nil {
		return nil, nil, err
	}

	return &WeightScaleFeature{
		TimestampSupported:   encoding.TestBit(bits, wsfBitTimestamp),
		MultiUserSupported:   encoding.TestBit(bits, wsfBitMultiUser),
		BMISupported:         encoding.TestBit(bits, wsfBitBMI),
		WeightResolutionCode: uint8(weightRes),
		HeightResolutionCode: uint8(heightRes),
	}, nil, nil
}

func (weightFeatureCodec) Encode(w *encoding.Writer, v Value) error {
	f, err := valueAs[*WeightScaleFeature](v)
	if err != nil {
		return err
	}

	var bits uint32
	if f.TimestampSupported {
		bits = encoding.SetBit(bits, wsfBitTimestamp)
	}
	if f.MultiUserSupported {
		bits = encoding.SetBit(bits, wsfBitMultiUser)
	}
	if f.BMISupported {
		bits = encoding.SetBit(bits, wsfBitBMI)
	}
	if bits, err = encoding.SetBits(bits, uint32(f.WeightResolutionCode), 3, 4); err != nil {
		return err
	}
	if bits, err = encoding.SetBits(bits, uint32(f.HeightResolutionCode), 7, 3); err != nil {
		return err
	}
	w.AppendUint32(bits)

	return nil
}

func (weightFeatureCodec) Validate(Value) []FieldError { return nil }
