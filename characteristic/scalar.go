package characteristic

import (
	"github.com/gattkit/gattkit/encoding"
	"github.com/gattkit/gattkit/format"
)

// TxPowerLevel is the decoded Tx Power Level characteristic: the radiated
// transmit power in dBm.
type TxPowerLevel struct {
	DBm int8
}

func (TxPowerLevel) CharacteristicType() Type { return TypeTxPowerLevel }

type txPowerLevelCodec struct{}

func (txPowerLevelCodec) Type() Type { return TypeTxPowerLevel }

func (txPowerLevelCodec) Rule() ValidationRule {
	return AtLeast(1, format.KindNumeric)
}

func (txPowerLevelCodec) Decode(r *encoding.Reader, _ DecodeParams) (Value, []FieldError, error) {
	dbm, err := r.Sint8()
	if err != nil {
		return nil, nil, err
	}

	return &TxPowerLevel{DBm: dbm}, nil, nil
}

func (txPowerLevelCodec) Encode(w *encoding.Writer, v Value) error {
	tp, err := valueAs[*TxPowerLevel](v)
	if err != nil {
		return err
	}

	w.AppendSint8(tp.DBm)

	return nil
}

func (txPowerLevelCodec) Validate(v Value) []FieldError {
	tp, err := valueAs[*TxPowerLevel](v)
	if err != nil {
		return nil
	}

	if fe := checkRange("tx power level", float64(tp.DBm), -100, 20); fe != nil {
		return []FieldError{*fe}
	}

	return nil
}

// Appearance is the decoded Appearance characteristic: the device's
// external appearance category code.
type Appearance struct {
	Category uint16
}

func (Appearance) CharacteristicType() Type { return TypeAppearance }

type appearanceCodec struct{}

func (appearanceCodec) Type() Type { return TypeAppearance }

func (appearanceCodec) Rule() ValidationRule {
	return AtLeast(2, format.KindEnum)
}

func (appearanceCodec) Decode(r *encoding.Reader, _ DecodeParams) (Value, []FieldError, error) {
	category, err := r.Uint16()
	if err != nil {
		return nil, nil, err
	}

	return &Appearance{Category: category}, nil, nil
}

func (appearanceCodec) Encode(w *encoding.Writer, v Value) error {
	a, err := valueAs[*Appearance](v)
	if err != nil {
		return err
	}

	w.AppendUint16(a.Category)

	return nil
}

func (appearanceCodec) Validate(Value) []FieldError { return nil }
