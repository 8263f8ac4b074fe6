// Package characteristic implements the per-characteristic codec contract
// and the concrete codec catalog.
//
// Every characteristic type supplies a Codec: a Decode/Encode pair plus a
// static ValidationRule. The shared pipeline in this package wraps those
// with payload length validation, numeric range validation, field-level
// error capture and optional human-readable tracing, and produces an
// immutable ParseOutcome per decode call.
//
// Variable layouts follow the flag-gated walk: a leading flags word is
// read, then each declared bit (with explicit per-bit polarity, since a
// few fitness-machine bits signal presence when clear) gates whether the
// next field group is consumed at the running cursor. Encoding derives
// the flags word back from which optional fields are populated, so a
// field absent on decode re-encodes as absent.
//
// Decoding is forgiving by design: a malformed optional field is reported
// as a FieldError inside the ParseOutcome instead of aborting, and bytes
// trailing beyond all known fields are ignored for forward compatibility.
// Encoding is strict: any unrepresentable value is a hard error, since
// there is no partial-write concept for an outgoing value.
package characteristic
