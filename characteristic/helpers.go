package characteristic

import (
	"fmt"

	"github.com/gattkit/gattkit/errs"
)

// valueAs asserts a Value to its concrete type, turning a mismatch into
// an error instead of a panic. Callers outside the pipeline may hand any
// Value implementation to Encode.
func valueAs[T Value](v Value) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: got %T", errs.ErrInvalidValueType, v)
	}

	return t, nil
}

// siblingAs looks up the decoded sibling characteristic of type t in the
// caller-supplied context. Absent context is not an error (codecs fall
// back to their documented defaults), but a sibling of the wrong concrete
// type means the caller wired the context map incorrectly and fails with
// errs.ErrMissingContext rather than silently ignoring the entry.
func siblingAs[T Value](ctx Context, t Type) (T, bool, error) {
	var zero T

	v, ok := ctx.Value(t)
	if !ok {
		return zero, false, nil
	}

	s, ok := v.(T)
	if !ok {
		return zero, false, fmt.Errorf("%w: %v supplied as %T", errs.ErrMissingContext, t, v)
	}

	return s, true, nil
}
