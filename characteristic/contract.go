package characteristic

import (
	"fmt"

	"github.com/gattkit/gattkit/encoding"
	"github.com/gattkit/gattkit/errs"
	"github.com/gattkit/gattkit/internal/options"
)

// CRCPolicy tells the segmented-record codec whether the trailing two
// bytes of a record are an E2E-CRC. Service-level context is required to
// know for sure; when the caller does not have it, CRCUnknown makes the
// decoder report both candidate readings instead of guessing.
type CRCPolicy uint8

const (
	// CRCUnknown reports both the CRC-split and whole-payload candidates.
	CRCUnknown CRCPolicy = iota
	// CRCPresent treats the trailing two bytes as an E2E-CRC and checks it.
	CRCPresent
	// CRCAbsent treats the whole remainder as payload.
	CRCAbsent
)

// DecodeParams carries the per-call inputs a codec may consult beyond the
// payload itself.
type DecodeParams struct {
	// Context holds already-decoded sibling characteristics.
	Context Context
	// RecordCRC is the trailing-CRC policy for segmented record types.
	RecordCRC CRCPolicy
}

// Codec is implemented once per characteristic type.
//
// Decode returns the decoded value, any soft field-level errors, and a
// hard error only when no value could be produced at all. Encode is the
// inverse and is strict: it fails on the first unrepresentable field.
// Validate applies the characteristic's declared numeric ranges to a
// decoded value.
type Codec interface {
	Type() Type
	Rule() ValidationRule
	Decode(r *encoding.Reader, p DecodeParams) (Value, []FieldError, error)
	Encode(w *encoding.Writer, v Value) error
	Validate(v Value) []FieldError
}

type decodeConfig struct {
	params DecodeParams
	trace  bool
}

// DecodeOption configures a single Decode call.
type DecodeOption = options.Option[*decodeConfig]

// WithContext supplies decoded sibling characteristics for codecs whose
// interpretation depends on a paired Feature characteristic.
func WithContext(ctx Context) DecodeOption {
	return options.NoError(func(cfg *decodeConfig) {
		cfg.params.Context = ctx
	})
}

// WithRecordCRC sets the trailing-CRC policy for segmented record types.
func WithRecordCRC(policy CRCPolicy) DecodeOption {
	return options.NoError(func(cfg *decodeConfig) {
		cfg.params.RecordCRC = policy
	})
}

// WithTrace appends a human-readable trace line per pipeline step to the
// ParseOutcome.
func WithTrace() DecodeOption {
	return options.NoError(func(cfg *decodeConfig) {
		cfg.trace = true
	})
}

// Decode runs the shared pipeline for one payload: resolve the codec,
// validate the length rule, run the characteristic decode, then apply the
// declared range checks. All failure modes are captured in the returned
// ParseOutcome; Decode never panics on malformed input.
//
// The input slice is only borrowed: the outcome carries its own copy.
func Decode(t Type, data []byte, opts ...DecodeOption) *ParseOutcome {
	cfg := decodeConfig{}
	_ = options.Apply(&cfg, opts...)

	outcome := &ParseOutcome{
		Type: t,
		Raw:  append([]byte(nil), data...),
	}

	tracef := func(format string, args ...any) {}
	if cfg.trace {
		tracef = func(format string, args ...any) {
			outcome.Trace = append(outcome.Trace, fmt.Sprintf(format, args...))
		}
	}

	tracef("decode %s: %d bytes", t, len(data))

	codec, ok := Lookup(t)
	if !ok {
		outcome.Err = fmt.Errorf("%w: 0x%04X", errs.ErrUnknownCharacteristic, uint16(t))
		tracef("no codec registered")

		return outcome
	}

	rule := codec.Rule()
	if err := rule.CheckLength(len(data)); err != nil {
		outcome.Err = err
		tracef("length check failed: %v", err)

		return outcome
	}
	tracef("length ok (>= %d)", rule.MinLength)

	r := encoding.NewLEReader(outcome.Raw)
	value, fieldErrs, err := codec.Decode(r, cfg.params)
	outcome.Value = value
	outcome.FieldErrors = fieldErrs
	if err != nil {
		outcome.Err = err
		tracef("decode failed: %v", err)

		return outcome
	}
	tracef("decoded; %d bytes consumed, %d trailing", r.Offset(), r.Remaining())

	if rangeErrs := codec.Validate(value); len(rangeErrs) > 0 {
		outcome.FieldErrors = append(outcome.FieldErrors, rangeErrs...)
		tracef("range check: %d violation(s)", len(rangeErrs))
	}

	outcome.Success = len(outcome.FieldErrors) == 0
	if outcome.Success {
		tracef("ok")
	}

	return outcome
}

// Encode serializes a decoded value back to its wire form. Mismatched
// value types and unrepresentable field values are hard errors; there is
// no partial output.
func Encode(t Type, v Value) ([]byte, error) {
	codec, ok := Lookup(t)
	if !ok {
		return nil, fmt.Errorf("%w: 0x%04X", errs.ErrUnknownCharacteristic, uint16(t))
	}

	if v == nil || v.CharacteristicType() != t {
		return nil, fmt.Errorf("%w: want %s", errs.ErrInvalidValueType, t)
	}

	w := encoding.NewLEWriter()
	if err := codec.Encode(w, v); err != nil {
		w.Finish()
		return nil, fmt.Errorf("encode %s: %w", t, err)
	}

	return w.Detach(), nil
}
