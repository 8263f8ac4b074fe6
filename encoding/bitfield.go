package encoding

import (
	"fmt"

	"github.com/gattkit/gattkit/errs"
)

// Bit-field utilities over a 32-bit container, wide enough for every GATT
// flags word (8, 16 or 24 bits). All functions are pure integer
// transforms with no I/O.

const containerBits = 32

// ExtractBits returns the width-bit field of value starting at startBit
// (bit 0 is the least significant). Fails with errs.ErrInvalidParameter
// if width is zero or startBit+width exceeds the 32-bit container.
func ExtractBits(value uint32, startBit, width uint) (uint32, error) {
	if err := checkBitRange(startBit, width); err != nil {
		return 0, err
	}

	return (value >> startBit) & mask(width), nil
}

// SetBits returns value with the width-bit field at startBit replaced by
// fieldValue. Fails with errs.ErrInvalidParameter if the field bounds are
// invalid, and with errs.ErrValueOutOfRange if fieldValue does not fit in
// width bits.
func SetBits(value, fieldValue uint32, startBit, width uint) (uint32, error) {
	if err := checkBitRange(startBit, width); err != nil {
		return 0, err
	}

	if fieldValue > mask(width) {
		return 0, fmt.Errorf("%w: %#x does not fit in %d bits", errs.ErrValueOutOfRange, fieldValue, width)
	}

	cleared := value &^ (mask(width) << startBit)

	return cleared | fieldValue<<startBit, nil
}

// TestBit reports whether bit pos of value is set. Positions outside the
// container are never set.
func TestBit(value uint32, pos uint) bool {
	if pos >= containerBits {
		return false
	}

	return value&(1<<pos) != 0
}

// SetBit returns value with bit pos set.
func SetBit(value uint32, pos uint) uint32 {
	if pos >= containerBits {
		return value
	}

	return value | 1<<pos
}

// ClearBit returns value with bit pos cleared.
func ClearBit(value uint32, pos uint) uint32 {
	if pos >= containerBits {
		return value
	}

	return value &^ (1 << pos)
}

func checkBitRange(startBit, width uint) error {
	if width == 0 {
		return fmt.Errorf("%w: bit field width must be > 0", errs.ErrInvalidParameter)
	}

	if startBit+width > containerBits {
		return fmt.Errorf("%w: bit field [%d,%d) exceeds %d-bit container",
			errs.ErrInvalidParameter, startBit, startBit+width, containerBits)
	}

	return nil
}

func mask(width uint) uint32 {
	if width >= containerBits {
		return ^uint32(0)
	}

	return 1<<width - 1
}
