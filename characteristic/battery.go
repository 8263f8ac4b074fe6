package characteristic

import (
	"github.com/gattkit/gattkit/encoding"
	"github.com/gattkit/gattkit/format"
)

// BatteryLevel is the decoded Battery Level characteristic: the remaining
// charge as a percentage.
type BatteryLevel struct {
	Percent uint8
}

func (BatteryLevel) CharacteristicType() Type { return TypeBatteryLevel }

type batteryLevelCodec struct{}

func (batteryLevelCodec) Type() Type { return TypeBatteryLevel }

func (batteryLevelCodec) Rule() ValidationRule {
	return AtLeast(1, format.KindNumeric)
}

func (batteryLevelCodec) Decode(r *encoding.Reader, _ DecodeParams) (Value, []FieldError, error) {
	percent, err := r.Uint8()
	if err != nil {
		return nil, nil, err
	}

	return &BatteryLevel{Percent: percent}, nil, nil
}

func (batteryLevelCodec) Encode(w *encoding.Writer, v Value) error {
	bl, err := valueAs[*BatteryLevel](v)
	if err != nil {
		return err
	}

	w.AppendUint8(bl.Percent)

	return nil
}

func (batteryLevelCodec) Validate(v Value) []FieldError {
	bl, err := valueAs[*BatteryLevel](v)
	if err != nil {
		return nil
	}

	if fe := checkRange("battery level", float64(bl.Percent), 0, 100); fe != nil {
		return []FieldError{*fe}
	}

	return nil
}
