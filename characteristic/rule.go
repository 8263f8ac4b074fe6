package characteristic

import (
	"fmt"

	"github.com/gattkit/gattkit/errs"
	"github.com/gattkit/gattkit/format"
)

// ValidationRule is a characteristic's static length and kind declaration,
// applied by the pipeline before the type-specific decode runs. Rules are
// declared once per codec and read-only at decode time.
type ValidationRule struct {
	// MinLength is the smallest valid payload size in bytes.
	MinLength int
	// MaxLength caps the payload size; zero means unbounded. Catalog
	// codecs leave it zero so payloads with trailing reserved bytes from
	// newer spec revisions still decode.
	MaxLength int
	// Kind is the declared logical value category.
	Kind format.ValueKind
}

// AtLeast declares a variable-length rule with a minimum size.
func AtLeast(minLength int, kind format.ValueKind) ValidationRule {
	return ValidationRule{MinLength: minLength, Kind: kind}
}

// Exactly declares a fixed-length rule.
func Exactly(length int, kind format.ValueKind) ValidationRule {
	return ValidationRule{MinLength: length, MaxLength: length, Kind: kind}
}

// CheckLength validates a payload size against the rule.
func (r ValidationRule) CheckLength(n int) error {
	if n < r.MinLength {
		return fmt.Errorf("%w: %d bytes, need at least %d", errs.ErrInvalidLength, n, r.MinLength)
	}

	if r.MaxLength > 0 && n > r.MaxLength {
		return fmt.Errorf("%w: %d bytes, at most %d allowed", errs.ErrInvalidLength, n, r.MaxLength)
	}

	return nil
}

// checkRange produces a field-level error when a decoded numeric value
// falls outside its declared bounds. Used by codec Validate methods.
func checkRange(field string, value, minValue, maxValue float64) *FieldError {
	if value < minValue || value > maxValue {
		return &FieldError{
			Field:  field,
			Reason: fmt.Errorf("%w: %g outside [%g, %g]", errs.ErrValueOutOfRange, value, minValue, maxValue),
		}
	}

	return nil
}

// checkDiscrete produces a field-level error when an enum byte has no
// defined variant.
func checkDiscrete(field string, value uint64, valid func(uint64) bool) *FieldError {
	if !valid(value) {
		return &FieldError{
			Field:  field,
			Reason: fmt.Errorf("%w: %d has no defined variant", errs.ErrInvalidDiscreteValue, value),
		}
	}

	return nil
}
