package characteristic

import (
	"fmt"

	"github.com/gattkit/gattkit/encoding"
	"github.com/gattkit/gattkit/format"
)

// Blood Pressure Measurement flag bits.
const (
	bpFlagUnitKPa   = 0 // semantic: 0 mmHg, 1 kPa
	bpFlagTimestamp = 1
	bpFlagPulseRate = 2
	bpFlagUserID    = 3
	bpFlagStatus    = 4
)

// Measurement Status bits of the Blood Pressure Measurement.
const (
	BPStatusBodyMovement uint16 = 1 << iota
	BPStatusCuffTooLoose
	BPStatusIrregularPulse
	bpStatusPulseRateLow // bits 3-4 encode pulse rate range
	bpStatusPulseRateHigh
	BPStatusImproperPosition
)

// BloodPressureMeasurement is the decoded Blood Pressure Measurement
// characteristic. The three compound values are mandatory; everything
// else is flag-gated.
type BloodPressureMeasurement struct {
	// UnitKPa selects the pressure unit: false is mmHg, true is kPa.
	UnitKPa bool
	// Systolic, Diastolic and MeanArterial are the compound pressure
	// values. A sensor that cannot produce one sends the NaN sentinel.
	Systolic     encoding.MedFloat
	Diastolic    encoding.MedFloat
	MeanArterial encoding.MedFloat
	// Timestamp is the time of measurement, when transmitted.
	Timestamp *encoding.DateTime
	// PulseRate in beats per minute, when transmitted.
	PulseRate *encoding.MedFloat
	// UserID identifies the collected user; 255 means unknown.
	UserID *uint8
	// MeasurementStatus carries the BPStatus* bits, when transmitted.
	MeasurementStatus *uint16
}

func (BloodPressureMeasurement) CharacteristicType() Type { return TypeBloodPressureMeasurement }

type bloodPressureCodec struct{}

func (bloodPressureCodec) Type() Type { return TypeBloodPressureMeasurement }

func (bloodPressureCodec) Rule() ValidationRule {
	// flags + three SFLOAT compound values
	return AtLeast(7, format.KindComposite)
}

func (bloodPressureCodec) fields(m *BloodPressureMeasurement) []GatedField {
	return []GatedField{
		{
			Name: "timestamp",
			Bit:  bpFlagTimestamp,
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
			Name: "pulse rate",
			Bit:  bpFlagPulseRate,
			Decode: func(r *encoding.Reader) error {
				pr, err := r.SFloat()
				if err != nil {
					return err
				}
				m.PulseRate = &pr

				return nil
			},
			Present: func() bool { return m.PulseRate != nil },
			Encode: func(w *encoding.Writer) error {
				return w.AppendSFloat(*m.PulseRate)
			},
		},
		{
			Name: "user id",
			Bit:  bpFlagUserID,
			Decode: func(r *encoding.Reader) error {
				id, err := r.Uint8()
				if err != nil {
					return err
				}
				m.UserID = &id

				return nil
			},
			Present: func() bool { return m.UserID != nil },
			Encode: func(w *encoding.Writer) error {
				w.AppendUint8(*m.UserID)
				return nil
			},
		},
		{
			Name: "measurement status",
			Bit:  bpFlagStatus,
			Decode: func(r *encoding.Reader) error {
				st, err := r.Uint16()
				if err != nil {
					return err
				}
				m.MeasurementStatus = &st

				return nil
			},
			Present: func() bool { return m.MeasurementStatus != nil },
			Encode: func(w *encoding.Writer) error {
				w.AppendUint16(*m.MeasurementStatus)
				return nil
			},
		},
	}
}

func (c bloodPressureCodec) Decode(r *encoding.Reader, _ DecodeParams) (Value, []FieldError, error) {
	flagByte, err := r.Uint8()
	if err != nil {
		return nil, nil, err
	}
	flags := uint32(flagByte)

	m := &BloodPressureMeasurement{
		UnitKPa: encoding.TestBit(flags, bpFlagUnitKPa),
	}

	// One logical measurement: systolic, diastolic and MAP travel
	// together unconditionally.
	if m.Systolic, err = r.SFloat(); err != nil {
		return nil, nil, fmt.Errorf("systolic: %w", err)
	}
	if m.Diastolic, err = r.SFloat(); err != nil {
		return nil, nil, fmt.Errorf("diastolic: %w", err)
	}
	if m.MeanArterial, err = r.SFloat(); err != nil {
		return nil, nil, fmt.Errorf("mean arterial pressure: %w", err)
	}

	fieldErrs := WalkDecode(r, flags, c.fields(m))

	return m, fieldErrs, nil
}

func (c bloodPressureCodec) Encode(w *encoding.Writer, v Value) error {
	m, err := valueAs[*BloodPressureMeasurement](v)
	if err != nil {
		return err
	}

	fields := c.fields(m)

	base := uint32(0)
	if m.UnitKPa {
		base = encoding.SetBit(base, bpFlagUnitKPa)
	}
	w.AppendUint8(uint8(DeriveFlags(base, fields)))

	if err := w.AppendSFloat(m.Systolic); err != nil {
		return fmt.Errorf("systolic: %w", err)
	}
	if err := w.AppendSFloat(m.Diastolic); err != nil {
		return fmt.Errorf("diastolic: %w", err)
	}
	if err := w.AppendSFloat(m.MeanArterial); err != nil {
		return fmt.Errorf("mean arterial pressure: %w", err)
	}

	return WalkEncode(w, fields)
}

func (bloodPressureCodec) Validate(v Value) []FieldError {
	m, err := valueAs[*BloodPressureMeasurement](v)
	if err != nil {
		return nil
	}

	var fieldErrs []FieldError
	if m.Timestamp != nil {
		if verr := m.Timestamp.Validate(); verr != nil {
			fieldErrs = append(fieldErrs, FieldError{Field: "timestamp", Reason: verr})
		}
	}

	return fieldErrs
}
