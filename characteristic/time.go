package characteristic

import (
	"github.com/gattkit/gattkit/encoding"
	"github.com/gattkit/gattkit/format"
)

// DateTimeValue is the decoded Date Time characteristic.
type DateTimeValue struct {
	DateTime encoding.DateTime
}

func (DateTimeValue) CharacteristicType() Type { return TypeDateTime }

type dateTimeCodec struct{}

func (dateTimeCodec) Type() Type { return TypeDateTime }

func (dateTimeCodec) Rule() ValidationRule {
	return AtLeast(encoding.DateTimeLength, format.KindComposite)
}

func (dateTimeCodec) Decode(r *encoding.Reader, _ DecodeParams) (Value, []FieldError, error) {
	dt, err := r.DateTime()
	if err != nil {
		return nil, nil, err
	}

	return &DateTimeValue{DateTime: dt}, nil, nil
}

func (dateTimeCodec) Encode(w *encoding.Writer, v Value) error {
	dtv, err := valueAs[*DateTimeValue](v)
	if err != nil {
		return err
	}

	return w.AppendDateTime(dtv.DateTime)
}

func (dateTimeCodec) Validate(v Value) []FieldError {
	dtv, err := valueAs[*DateTimeValue](v)
	if err != nil {
		return nil
	}

	if verr := dtv.DateTime.Validate(); verr != nil {
		return []FieldError{{Field: "date time", Reason: verr}}
	}

	return nil
}

// Adjust-reason bits of the Current Time characteristic.
const (
	AdjustManual uint8 = 1 << iota
	AdjustExternalReference
	AdjustTimeZoneChange
	AdjustDSTChange
)

// CurrentTime is the decoded Current Time characteristic: an exact time
// (date-time plus day of week and 1/256s fractions) and the reason for
// the most recent adjustment.
type CurrentTime struct {
	DateTime     encoding.DateTime
	DayOfWeek    uint8 // 0 unknown, 1 Monday .. 7 Sunday
	Fractions256 uint8
	AdjustReason uint8
}

func (CurrentTime) CharacteristicType() Type { return TypeCurrentTime }

type currentTimeCodec struct{}

func (currentTimeCodec) Type() Type { return TypeCurrentTime }

func (currentTimeCodec) Rule() ValidationRule {
	return AtLeast(encoding.DateTimeLength+3, format.KindComposite)
}

func (currentTimeCodec) Decode(r *encoding.Reader, _ DecodeParams) (Value, []FieldError, error) {
	ct := &CurrentTime{}
	var err error

	if ct.DateTime, err = r.DateTime(); err != nil {
		return nil, nil, err
	}
	if ct.DayOfWeek, err = r.Uint8(); err != nil {
		return nil, nil, err
	}
	if ct.Fractions256, err = r.Uint8(); err != nil {
		return nil, nil, err
	}
	if ct.AdjustReason, err = r.Uint8(); err != nil {
		return nil, nil, err
	}

	return ct, nil, nil
}

func (currentTimeCodec) Encode(w *encoding.Writer, v Value) error {
	ct, err := valueAs[*CurrentTime](v)
	if err != nil {
		return err
	}

	if err := w.AppendDateTime(ct.DateTime); err != nil {
		return err
	}

	w.AppendUint8(ct.DayOfWeek)
	w.AppendUint8(ct.Fractions256)
	w.AppendUint8(ct.AdjustReason)

	return nil
}

func (currentTimeCodec) Validate(v Value) []FieldError {
	ct, err := valueAs[*CurrentTime](v)
	if err != nil {
		return nil
	}

	var fieldErrs []FieldError
	if verr := ct.DateTime.Validate(); verr != nil {
		fieldErrs = append(fieldErrs, FieldError{Field: "date time", Reason: verr})
	}
	if fe := checkRange("day of week", float64(ct.DayOfWeek), 0, 7); fe != nil {
		fieldErrs = append(fieldErrs, *fe)
	}

	return fieldErrs
}
