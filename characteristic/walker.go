package characteristic

import (
	"fmt"

	"github.com/gattkit/gattkit/encoding"
)

// Polarity declares how a flag bit signals field presence. The default is
// PresentIfSet; a minority of characteristics (the fitness-machine "More
// Data" bits) invert the meaning, and carry PresentIfClear in their field
// table instead of special-cased code.
type Polarity uint8

const (
	PresentIfSet Polarity = iota
	PresentIfClear
)

// GatedField declares one optional field group gated by a single flag
// bit. A bit may gate several wire fields at once (e.g. CSC wheel
// revolutions: a uint32 count and a uint16 event time); such groups share
// one GatedField whose decode/encode closures consume both.
type GatedField struct {
	// Name is the field name used in error and trace reporting.
	Name string
	// Bit is the flag bit position gating the group.
	Bit uint
	// Polarity declares whether presence is signalled by the bit being
	// set (default) or clear.
	Polarity Polarity
	// Decode consumes the group at the reader cursor into the value
	// under construction.
	Decode func(r *encoding.Reader) error
	// Present reports whether the value carries the group, for deriving
	// the flags word on encode.
	Present func() bool
	// Encode appends the group's bytes. Called only when Present().
	Encode func(w *encoding.Writer) error
}

// gated reports whether the field group is present under the given flags
// word.
func (f *GatedField) gated(flags uint32) bool {
	set := encoding.TestBit(flags, f.Bit)
	if f.Polarity == PresentIfClear {
		return !set
	}

	return set
}

// WalkDecode consumes the declared optional field groups in order,
// honoring each bit's polarity. A group whose decode fails is reported as
// a FieldError and the walk stops, since the cursor can no longer be
// trusted; everything decoded before the failure stays populated.
func WalkDecode(r *encoding.Reader, flags uint32, fields []GatedField) []FieldError {
	for _, f := range fields {
		if !f.gated(flags) {
			continue
		}

		start := r.Offset()
		if err := f.Decode(r); err != nil {
			return []FieldError{{
				Field:  f.Name,
				Offset: start,
				Raw:    r.Rest(),
				Reason: err,
			}}
		}
	}

	return nil
}

// DeriveFlags reconstructs the flags word from field presence: the flags
// are not carried in the value, they are a function of which optional
// fields are populated. base carries the non-presence bits (unit selects,
// format bits) already positioned.
func DeriveFlags(base uint32, fields []GatedField) uint32 {
	flags := base
	for _, f := range fields {
		if f.Present() != (f.Polarity == PresentIfClear) {
			flags = encoding.SetBit(flags, f.Bit)
		}
	}

	return flags
}

// WalkEncode appends every present field group in declared order. Any
// failure is hard: an outgoing value either serializes completely or not
// at all.
func WalkEncode(w *encoding.Writer, fields []GatedField) error {
	for _, f := range fields {
		if !f.Present() {
			continue
		}

		if err := f.Encode(w); err != nil {
			return fmt.Errorf("encode %s: %w", f.Name, err)
		}
	}

	return nil
}
