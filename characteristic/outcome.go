package characteristic

import "fmt"

// FieldError reports one failed field inside a decode: the field name, the
// byte offset where the field starts, the raw offending slice, and the
// underlying reason. Field errors are collected in the ParseOutcome
// instead of aborting the decode, so one bad optional field does not
// discard the rest of the record.
type FieldError struct {
	Field  string
	Offset int
	Raw    []byte
	Reason error
}

func (e *FieldError) Error() string {
	if len(e.Raw) > 0 {
		return fmt.Sprintf("field %q at offset %d (% X): %v", e.Field, e.Offset, e.Raw, e.Reason)
	}

	return fmt.Sprintf("field %q: %v", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return e.Reason
}

// ParseOutcome is the result of one Decode call. It is created once per
// call, never mutated afterwards, and owned by the caller.
//
// Success is true only when decoding completed and every declared range
// check passed. A partially decoded Value may still be populated when
// Success is false, so stream consumers can inspect what was readable.
type ParseOutcome struct {
	// Type is the characteristic the payload was decoded as.
	Type Type
	// Raw is an owned copy of the input payload.
	Raw []byte
	// Value is the decoded value; may be non-nil even on failure when the
	// mandatory prefix decoded cleanly.
	Value Value
	// FieldErrors lists per-field failures (bad optional fields, range
	// violations). Non-empty FieldErrors force Success to false.
	FieldErrors []FieldError
	// Err is a hard failure that prevented decoding altogether: unknown
	// type, length rule violation, or a mandatory field that did not fit.
	Err error
	// Trace carries human-readable pipeline steps when tracing was
	// requested, nil otherwise.
	Trace []string
	// Success reports a fully clean decode.
	Success bool
}

// FirstError returns the most significant error of the outcome: Err when
// set, otherwise the first field error, otherwise nil.
func (o *ParseOutcome) FirstError() error {
	if o.Err != nil {
		return o.Err
	}

	if len(o.FieldErrors) > 0 {
		return &o.FieldErrors[0]
	}

	return nil
}
