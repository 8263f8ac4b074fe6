package characteristic

import (
	"github.com/gattkit/gattkit/encoding"
	"github.com/gattkit/gattkit/format"
)

// Battery Level Status flag bits.
const (
	blsFlagIdentifier       = 0
	blsFlagBatteryLevel     = 1
	blsFlagAdditionalStatus = 2
)

// PowerState is the unpacked 16-bit power state word of the Battery
// Level Status characteristic. The two-bit selectors use 0 for no/unknown
// per the Battery Service assigned numbers.
type PowerState struct {
	// BatteryPresent reports whether a battery is fitted.
	BatteryPresent bool
	// WiredExternalPower is the wired supply state (0 no, 1 yes,
	// 2 unknown).
	WiredExternalPower uint8
	// WirelessExternalPower is the wireless supply state.
	WirelessExternalPower uint8
	// ChargeState is 0 unknown, 1 charging, 2 discharging active,
	// 3 discharging inactive.
	ChargeState uint8
	// ChargeLevel is 0 unknown, 1 good, 2 low, 3 critical.
	ChargeLevel uint8
	// ChargingType is the 3-bit charging type selector.
	ChargingType uint8
	// ChargingFault is the 3-bit charging fault reason.
	ChargingFault uint8
}

// powerState bit layout within the 16-bit word.
const (
	psBitPresent        = 0
	psBitsWired         = 1
	psBitsWireless      = 3
	psBitsChargeState   = 5
	psBitsChargeLevel   = 7
	psBitsChargingType  = 9
	psBitsChargingFault = 12
)

func unpackPowerState(word uint16) (PowerState, error) {
	bits := uint32(word)

	var ps PowerState
	ps.BatteryPresent = encoding.TestBit(bits, psBitPresent)

	for _, f := range []struct {
		slot  *uint8
		start uint
		width uint
	}{
		{&ps.WiredExternalPower, psBitsWired, 2},
		{&ps.WirelessExternalPower, psBitsWireless, 2},
		{&ps.ChargeState, psBitsChargeState, 2},
		{&ps.ChargeLevel, psBitsChargeLevel, 2},
		{&ps.ChargingType, psBitsChargingType, 3},
		{&ps.ChargingFault, psBitsChargingFault, 3},
	} {
		v, err := encoding.ExtractBits(bits, f.start, f.width)
		if err != nil {
			return PowerState{}, err
		}
		*f.slot = uint8(v)
	}

	return ps, nil
}

func packPowerState(ps PowerState) (uint16, error) {
	var bits uint32
	if ps.BatteryPresent {
		bits = encoding.SetBit(bits, psBitPresent)
	}

	var err error
	for _, f := range []struct {
		value uint8
		start uint
		width uint
	}{
		{ps.WiredExternalPower, psBitsWired, 2},
		{ps.WirelessExternalPower, psBitsWireless, 2},
		{ps.ChargeState, psBitsChargeState, 2},
		{ps.ChargeLevel, psBitsChargeLevel, 2},
		{ps.ChargingType, psBitsChargingType, 3},
		{ps.ChargingFault, psBitsChargingFault, 3},
	} {
		if bits, err = encoding.SetBits(bits, uint32(f.value), f.start, f.width); err != nil {
			return 0, err
		}
	}

	return uint16(bits), nil
}

// BatteryLevelStatus is the decoded Battery Level Status characteristic.
// The power state word is mandatory; the identifier, level, and
// additional status byte are flag-gated.
type BatteryLevelStatus struct {
	Power PowerState
	// Identifier distinguishes batteries on multi-battery devices.
	Identifier *uint16
	// Level is the battery charge in percent.
	Level *uint8
	// AdditionalStatus carries the service-required / fault bits.
	AdditionalStatus *uint8
}

func (BatteryLevelStatus) CharacteristicType() Type { return TypeBatteryLevelStatus }

type batteryStatusCodec struct{}

func (batteryStatusCodec) Type() Type { return TypeBatteryLevelStatus }

func (batteryStatusCodec) Rule() ValidationRule {
	return AtLeast(3, format.KindComposite)
}

func (batteryStatusCodec) fields(m *BatteryLevelStatus) []GatedField {
	return []GatedField{
		gatedUint16("identifier", blsFlagIdentifier, PresentIfSet, &m.Identifier),
		gatedUint8("battery level", blsFlagBatteryLevel, &m.Level),
		gatedUint8("additional status", blsFlagAdditionalStatus, &m.AdditionalStatus),
	}
}

func (c batteryStatusCodec) Decode(r *encoding.Reader, _ DecodeParams) (Value, []FieldError, error) {
	flagByte, err := r.Uint8()
	if err != nil {
		return nil, nil, err
	}

	word, err := r.Uint16()
	if err != nil {
		return nil, nil, err
	}
	ps, err := unpackPowerState(word)
	if err != nil {
		return nil, nil, err
	}

	m := &BatteryLevelStatus{Power: ps}
	fieldErrs := WalkDecode(r, uint32(flagByte), c.fields(m))

	return m, fieldErrs, nil
}

func (c batteryStatusCodec) Encode(w *encoding.Writer, v Value) error {
	m, err := valueAs[*BatteryLevelStatus](v)
	if err != nil {
		return err
	}

	word, err := packPowerState(m.Power)
	if err != nil {
		return err
	}

	fields := c.fields(m)
	w.AppendUint8(uint8(DeriveFlags(0, fields)))
	w.AppendUint16(word)

	return WalkEncode(w, fields)
}

func (batteryStatusCodec) Validate(v Value) []FieldError {
	m, err := valueAs[*BatteryLevelStatus](v)
	if err != nil {
		return nil
	}

	var fieldErrs []FieldError
	if m.Level != nil {
		if fe := checkRange("battery level", float64(*m.Level), 0, 100); fe != nil {
			fieldErrs = append(fieldErrs, *fe)
		}
	}

	return fieldErrs
}
