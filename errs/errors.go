// Package errs defines the sentinel error values shared across the gattkit
// packages.
//
// Call sites wrap these sentinels with fmt.Errorf("...: %w", ...) to add
// field names, byte offsets and other context, so callers can match on the
// category with errors.Is while still seeing a precise message.
package errs

import "errors"

var (
	// ErrInsufficientData indicates fewer bytes remain in the payload than a
	// primitive read or the characteristic's length rule requires.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrValueOutOfRange indicates a decoded or to-be-encoded numeric value
	// falls outside the representable or declared range.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrInvalidParameter indicates an invalid argument to a bit-field or
	// codec operation, such as a zero width or an out-of-bounds bit position.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidDiscreteValue indicates an enum or flag byte that does not
	// correspond to any defined variant.
	ErrInvalidDiscreteValue = errors.New("invalid discrete value")

	// ErrMalformedStructure indicates sub-field bookkeeping would read past
	// the end of the payload.
	ErrMalformedStructure = errors.New("malformed structure")

	// ErrInvalidLength indicates the overall payload length violates the
	// characteristic's declared exact/min/max length rule.
	ErrInvalidLength = errors.New("invalid payload length")

	// ErrUnknownCharacteristic indicates no codec is registered for the
	// requested characteristic type.
	ErrUnknownCharacteristic = errors.New("unknown characteristic type")

	// ErrUnrepresentableValue indicates a real value whose magnitude cannot
	// be expressed as a medical-float mantissa/exponent pair.
	ErrUnrepresentableValue = errors.New("value not representable as medical float")

	// ErrMissingContext indicates a characteristic whose interpretation
	// depends on a sibling characteristic that was not supplied.
	ErrMissingContext = errors.New("missing sibling characteristic context")

	// ErrInvalidValueType indicates an Encode call received a value struct
	// belonging to a different characteristic type.
	ErrInvalidValueType = errors.New("invalid value type for characteristic")

	// ErrInvalidCaptureHeader indicates a capture blob header with a bad
	// magic number, flag word or section offset.
	ErrInvalidCaptureHeader = errors.New("invalid capture header")

	// ErrInvalidCaptureEntry indicates a truncated or inconsistent entry in
	// a capture blob payload.
	ErrInvalidCaptureEntry = errors.New("invalid capture entry")
)
