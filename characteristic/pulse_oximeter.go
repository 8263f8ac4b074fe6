package characteristic

import (
	"github.com/gattkit/gattkit/encoding"
	"github.com/gattkit/gattkit/format"
)

// PLX Continuous Measurement flag bits.
const (
	plxFlagFastPair       = 0
	plxFlagSlowPair       = 1
	plxFlagMeasStatus     = 2
	plxFlagSensorStatus   = 3
	plxFlagPulseAmplitude = 4
)

// SpO2PRPair groups an oxygen saturation reading with its paired pulse
// rate; the two always travel together on the wire.
type SpO2PRPair struct {
	// SpO2 is the oxygen saturation in percent.
	SpO2 encoding.MedFloat
	// PulseRate is the pulse rate in beats per minute.
	PulseRate encoding.MedFloat
}

// PLXContinuousMeasurement is the decoded PLX Continuous Measurement
// characteristic from the Pulse Oximeter Service. The normal SpO2/PR
// pair is mandatory; the fast and slow response pairs and the status
// words are flag-gated.
type PLXContinuousMeasurement struct {
	// Normal is the mandatory normal-response reading pair.
	Normal SpO2PRPair
	// Fast is the fast-response reading pair.
	Fast *SpO2PRPair
	// Slow is the slow-response reading pair.
	Slow *SpO2PRPair
	// MeasurementStatus is the per-measurement status bitmask.
	MeasurementStatus *uint16
	// SensorStatus is the device and sensor status bitmask (24-bit on
	// the wire).
	SensorStatus *uint32
	// PulseAmplitude is the pulse amplitude index in percent.
	PulseAmplitude *encoding.MedFloat
}

func (PLXContinuousMeasurement) CharacteristicType() Type { return TypePLXContinuousMeasurement }

type plxCodec struct{}

func (plxCodec) Type() Type { return TypePLXContinuousMeasurement }

func (plxCodec) Rule() ValidationRule {
	return AtLeast(5, format.KindComposite)
}

func decodePair(r *encoding.Reader) (SpO2PRPair, error) {
	spo2, err := r.SFloat()
	if err != nil {
		return SpO2PRPair{}, err
	}
	rate, err := r.SFloat()
	if err != nil {
		return SpO2PRPair{}, err
	}

	return SpO2PRPair{SpO2: spo2, PulseRate: rate}, nil
}

func encodePair(w *encoding.Writer, p SpO2PRPair) error {
	if err := w.AppendSFloat(p.SpO2); err != nil {
		return err
	}

	return w.AppendSFloat(p.PulseRate)
}

func (plxCodec) fields(m *PLXContinuousMeasurement) []GatedField {
	return []GatedField{
		{
			Name: "fast response pair",
			Bit:  plxFlagFastPair,
			Decode: func(r *encoding.Reader) error {
				p, err := decodePair(r)
				if err != nil {
					return err
				}
				m.Fast = &p

				return nil
			},
			Present: func() bool { return m.Fast != nil },
			Encode:  func(w *encoding.Writer) error { return encodePair(w, *m.Fast) },
		},
		{
			Name: "slow response pair",
			Bit:  plxFlagSlowPair,
			Decode: func(r *encoding.Reader) error {
				p, err := decodePair(r)
				if err != nil {
					return err
				}
				m.Slow = &p

				return nil
			},
			Present: func() bool { return m.Slow != nil },
			Encode:  func(w *encoding.Writer) error { return encodePair(w, *m.Slow) },
		},
		{
			Name: "measurement status",
			Bit:  plxFlagMeasStatus,
			Decode: func(r *encoding.Reader) error {
				v, err := r.Uint16()
				if err != nil {
					return err
				}
				m.MeasurementStatus = &v

				return nil
			},
			Present: func() bool { return m.MeasurementStatus != nil },
			Encode: func(w *encoding.Writer) error {
				w.AppendUint16(*m.MeasurementStatus)

				return nil
			},
		},
		{
			Name: "device and sensor status",
			Bit:  plxFlagSensorStatus,
			Decode: func(r *encoding.Reader) error {
				v, err := r.Uint24()
				if err != nil {
					return err
				}
				m.SensorStatus = &v

				return nil
			},
			Present: func() bool { return m.SensorStatus != nil },
			Encode: func(w *encoding.Writer) error {
				return w.AppendUint24(*m.SensorStatus)
			},
		},
		{
			Name: "pulse amplitude index",
			Bit:  plxFlagPulseAmplitude,
			Decode: func(r *encoding.Reader) error {
				v, err := r.SFloat()
				if err != nil {
					return err
				}
				m.PulseAmplitude = &v

				return nil
			},
			Present: func() bool { return m.PulseAmplitude != nil },
			Encode: func(w *encoding.Writer) error {
				return w.AppendSFloat(*m.PulseAmplitude)
			},
		},
	}
}

func (c plxCodec) Decode(r *encoding.Reader, _ DecodeParams) (Value, []FieldError, error) {
	flagByte, err := r.Uint8()
	if err != nil {
		return nil, nil, err
	}

	m := &PLXContinuousMeasurement{}
	if m.Normal, err = decodePair(r); err != nil {
		return nil, nil, err
	}

	fieldErrs := WalkDecode(r, uint32(flagByte), c.fields(m))

	return m, fieldErrs, nil
}

func (c plxCodec) Encode(w *encoding.Writer, v Value) error {
	m, err := valueAs[*PLXContinuousMeasurement](v)
	if err != nil {
		return err
	}

	fields := c.fields(m)
	w.AppendUint8(uint8(DeriveFlags(0, fields)))
	if err := encodePair(w, m.Normal); err != nil {
		return err
	}

	return WalkEncode(w, fields)
}

func (plxCodec) Validate(v Value) []FieldError {
	m, err := valueAs[*PLXContinuousMeasurement](v)
	if err != nil {
		return nil
	}

	var fieldErrs []FieldError
	if m.Normal.SpO2.State == encoding.StateFinite {
		if fe := checkRange("spo2", m.Normal.SpO2.Value, 0, 100); fe != nil {
			fieldErrs = append(fieldErrs, *fe)
		}
	}

	return fieldErrs
}
