package encoding

import (
	"fmt"
	"math"

	"github.com/gattkit/gattkit/errs"
)

// MedState identifies the numeric state of an IEEE-11073 medical float.
type MedState uint8

const (
	// StateFinite marks an ordinary numeric value.
	StateFinite MedState = iota
	// StateNaN marks the not-a-number sentinel.
	StateNaN
	// StateNRes marks the "not at this resolution" sentinel.
	StateNRes
	// StatePosInfinity marks the positive infinity sentinel.
	StatePosInfinity
	// StateNegInfinity marks the negative infinity sentinel.
	StateNegInfinity
)

func (s MedState) String() string {
	switch s {
	case StateFinite:
		return "Finite"
	case StateNaN:
		return "NaN"
	case StateNRes:
		return "NRes"
	case StatePosInfinity:
		return "+Inf"
	case StateNegInfinity:
		return "-Inf"
	default:
		return "Unknown"
	}
}

// MedFloat is a decoded IEEE-11073 medical float: either a finite value or
// one of the four reserved sentinel states. The sentinels round-trip to
// their fixed bit patterns; Value is meaningful only when State is
// StateFinite.
type MedFloat struct {
	Value float64
	State MedState
}

// Finite wraps an ordinary numeric value.
func Finite(v float64) MedFloat {
	return MedFloat{Value: v, State: StateFinite}
}

// NaN returns the not-a-number sentinel.
func NaN() MedFloat { return MedFloat{State: StateNaN} }

// NRes returns the "not at this resolution" sentinel.
func NRes() MedFloat { return MedFloat{State: StateNRes} }

// PosInfinity returns the positive infinity sentinel.
func PosInfinity() MedFloat { return MedFloat{State: StatePosInfinity} }

// NegInfinity returns the negative infinity sentinel.
func NegInfinity() MedFloat { return MedFloat{State: StateNegInfinity} }

// IsNumeric reports whether the value carries an ordinary number.
func (m MedFloat) IsNumeric() bool {
	return m.State == StateFinite
}

func (m MedFloat) String() string {
	if m.State == StateFinite {
		return fmt.Sprintf("%g", m.Value)
	}

	return m.State.String()
}

// SFLOAT: 4-bit signed exponent in the high nibble, 12-bit signed mantissa,
// base 10. The four mantissa patterns at the extremes are reserved.
const (
	sfloatNaN    = 0x07FF // mantissa +2047
	sfloatNRes   = 0x0800 // mantissa -2048
	sfloatPosInf = 0x07FE // mantissa +2046
	sfloatNegInf = 0x0802 // mantissa -2046
	sfloatRsvd   = 0x0801 // reserved, decoded as NaN

	sfloatMantissaMax = 0x07FD // +2045, largest usable mantissa
	sfloatExpMax      = 7
	sfloatExpMin      = -8
)

// FLOAT: 8-bit signed exponent in the high byte, 24-bit signed mantissa,
// base 10, with sentinel patterns mirroring SFLOAT.
const (
	mfloatNaN    = 0x7FFFFF
	mfloatNRes   = 0x800000
	mfloatPosInf = 0x7FFFFE
	mfloatNegInf = 0x800002
	mfloatRsvd   = 0x800001

	mfloatMantissaMax = 0x7FFFFD // +8388605
	mfloatExpMax      = 127
	mfloatExpMin      = -128
)

// DecodeSFloat decodes a 16-bit IEEE-11073 SFLOAT. The reserved mantissa
// patterns decode to their sentinel state regardless of exponent.
func DecodeSFloat(raw uint16) MedFloat {
	mantissa := uint32(raw) & 0x0FFF

	switch mantissa {
	case sfloatNaN, sfloatRsvd:
		return NaN()
	case sfloatNRes:
		return NRes()
	case sfloatPosInf:
		return PosInfinity()
	case sfloatNegInf:
		return NegInfinity()
	}

	exponent := signExtendNibble(uint32(raw) >> 12)
	m := signExtend12(mantissa)

	return Finite(scale10(int64(m), exponent))
}

// EncodeSFloat encodes a MedFloat into the 16-bit SFLOAT format. Sentinel
// states map to their fixed bit patterns; finite values are decomposed
// into the closest representable (mantissa, exponent) pair. Fails with
// errs.ErrUnrepresentableValue if the magnitude exceeds the format.
func EncodeSFloat(m MedFloat) (uint16, error) {
	switch m.State {
	case StateNaN:
		return sfloatNaN, nil
	case StateNRes:
		return sfloatNRes, nil
	case StatePosInfinity:
		return sfloatPosInf, nil
	case StateNegInfinity:
		return sfloatNegInf, nil
	}

	mantissa, exponent, err := decompose(m.Value, sfloatMantissaMax, sfloatExpMin, sfloatExpMax)
	if err != nil {
		return 0, fmt.Errorf("sfloat: %w", err)
	}

	return uint16(exponent)&0xF<<12 | uint16(mantissa)&0x0FFF, nil
}

// DecodeMFloat decodes a 32-bit IEEE-11073 FLOAT. The reserved mantissa
// patterns decode to their sentinel state regardless of exponent.
func DecodeMFloat(raw uint32) MedFloat {
	mantissa := raw & 0xFFFFFF

	switch mantissa {
	case mfloatNaN, mfloatRsvd:
		return NaN()
	case mfloatNRes:
		return NRes()
	case mfloatPosInf:
		return PosInfinity()
	case mfloatNegInf:
		return NegInfinity()
	}

	exponent := int(int8(raw >> 24))
	m := signExtend24(mantissa)

	return Finite(scale10(int64(m), exponent))
}

// EncodeMFloat encodes a MedFloat into the 32-bit FLOAT format, following
// the same decomposition rules as EncodeSFloat.
func EncodeMFloat(m MedFloat) (uint32, error) {
	switch m.State {
	case StateNaN:
		return mfloatNaN, nil
	case StateNRes:
		return mfloatNRes, nil
	case StatePosInfinity:
		return mfloatPosInf, nil
	case StateNegInfinity:
		return mfloatNegInf, nil
	}

	mantissa, exponent, err := decompose(m.Value, mfloatMantissaMax, mfloatExpMin, mfloatExpMax)
	if err != nil {
		return 0, fmt.Errorf("float: %w", err)
	}

	return uint32(exponent)&0xFF<<24 | uint32(mantissa)&0xFFFFFF, nil
}

// decompose finds a (mantissa, exponent) pair with |mantissa| <= mantissaMax
// and exponent within [expMin, expMax] such that mantissa*10^exponent is the
// closest representable value to v. The mantissa is scaled up as far as it
// fits to preserve maximal decimal precision.
func decompose(v float64, mantissaMax int64, expMin, expMax int) (int64, int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		// IEEE-754 specials must be carried as sentinel states, not finite values.
		return 0, 0, fmt.Errorf("%w: non-finite float64 %v", errs.ErrUnrepresentableValue, v)
	}

	if v == 0 {
		return 0, 0, nil
	}

	mantissa := v
	exponent := 0

	// Scale up while another decimal digit still fits, to keep as much
	// fractional precision as the mantissa width allows.
	for exponent > expMin && math.Abs(mantissa*10) <= float64(mantissaMax) {
		mantissa *= 10
		exponent--
	}

	// Scale down until the rounded mantissa fits.
	for math.Abs(math.Round(mantissa)) > float64(mantissaMax) {
		if exponent >= expMax {
			return 0, 0, fmt.Errorf("%w: magnitude %v exceeds format", errs.ErrUnrepresentableValue, v)
		}
		mantissa /= 10
		exponent++
	}

	return int64(math.Round(mantissa)), exponent, nil
}

// scale10 computes mantissa*10^exponent with correct rounding: negative
// exponents divide by an exact power of ten so decimal values land on the
// nearest representable float64.
func scale10(mantissa int64, exponent int) float64 {
	if exponent >= 0 {
		return float64(mantissa) * math.Pow10(exponent)
	}

	return float64(mantissa) / math.Pow10(-exponent)
}

func signExtendNibble(v uint32) int {
	if v&0x8 != 0 {
		return int(v) - 16
	}

	return int(v)
}

func signExtend12(v uint32) int32 {
	if v&0x800 != 0 {
		v |= 0xFFFFF000
	}

	return int32(v)
}
