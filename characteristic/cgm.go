package characteristic

import (
	"fmt"

	"github.com/gattkit/gattkit/encoding"
	"github.com/gattkit/gattkit/errs"
	"github.com/gattkit/gattkit/format"
)

// CGM Measurement flag bits. Bits 5-7 gate the three sensor status
// annunciation octets individually.
const (
	cgmFlagTrend        = 0
	cgmFlagQuality      = 1
	cgmFlagWarningOctet = 5
	cgmFlagCalTempOctet = 6
	cgmFlagStatusOctet  = 7
)

// cgmFeatureE2ECRC is the CGM Feature bit advertising E2E-CRC support.
// When set, every CGM record carries a trailing CRC-16/CCITT.
const cgmFeatureE2ECRC = 12

// CGMFeature is the decoded CGM Feature characteristic: a 24-bit feature
// bitmask plus the sensor's fluid type and sample location nibbles. The
// trailing CRC field is 0xFFFF when the sensor does not support E2E-CRC.
type CGMFeature struct {
	// Features is the 24-bit feature bitmask.
	Features uint32
	// Type is the fluid type nibble.
	Type uint8
	// SampleLocation is the sample location nibble.
	SampleLocation uint8
}

func (CGMFeature) CharacteristicType() Type { return TypeCGMFeature }

// E2ECRCSupported reports whether records from this sensor carry a
// trailing E2E-CRC.
func (f *CGMFeature) E2ECRCSupported() bool {
	return encoding.TestBit(f.Features, cgmFeatureE2ECRC)
}

// CGMMeasurement is the decoded CGM Measurement record. The record is
// self-framing: a leading size byte covers the whole record including
// itself and, when the paired CGM Feature advertises E2E-CRC support,
// a trailing CRC-16.
type CGMMeasurement struct {
	// Concentration is the glucose concentration in mg/dL.
	Concentration encoding.MedFloat
	// TimeOffset is the offset in minutes since the session start time.
	TimeOffset uint16
	// StatusOctet is the low sensor status annunciation octet.
	StatusOctet *uint8
	// CalTempOctet is the calibration/temperature annunciation octet.
	CalTempOctet *uint8
	// WarningOctet is the warning annunciation octet.
	WarningOctet *uint8
	// Trend is the glucose trend in (mg/dL)/min.
	Trend *encoding.MedFloat
	// Quality is the measurement quality in percent.
	Quality *encoding.MedFloat
	// E2ECRC records whether the record carries a trailing CRC, so that
	// re-encoding reproduces the original framing.
	E2ECRC bool
}

func (CGMMeasurement) CharacteristicType() Type { return TypeCGMMeasurement }

type cgmCodec struct{}

func (cgmCodec) Type() Type { return TypeCGMMeasurement }

func (cgmCodec) Rule() ValidationRule {
	return AtLeast(6, format.KindComposite)
}

func (cgmCodec) fields(m *CGMMeasurement) []GatedField {
	return []GatedField{
		gatedUint8("status octet", cgmFlagStatusOctet, &m.StatusOctet),
		gatedUint8("cal/temp octet", cgmFlagCalTempOctet, &m.CalTempOctet),
		gatedUint8("warning octet", cgmFlagWarningOctet, &m.WarningOctet),
		{
			Name: "trend information",
			Bit:  cgmFlagTrend,
			Decode: func(r *encoding.Reader) error {
				v, err := r.SFloat()
				if err != nil {
					return err
				}
				m.Trend = &v

				return nil
			},
			Present: func() bool { return m.Trend != nil },
			Encode: func(w *encoding.Writer) error {
				return w.AppendSFloat(*m.Trend)
			},
		},
		{
			Name: "measurement quality",
			Bit:  cgmFlagQuality,
			Decode: func(r *encoding.Reader) error {
				v, err := r.SFloat()
				if err != nil {
					return err
				}
				m.Quality = &v

				return nil
			},
			Present: func() bool { return m.Quality != nil },
			Encode: func(w *encoding.Writer) error {
				return w.AppendSFloat(*m.Quality)
			},
		},
	}
}

// recordHasCRC resolves whether a CGM record carries a trailing E2E-CRC.
// The paired CGM Feature is authoritative when the caller supplies one;
// otherwise the explicit per-call CRC policy decides, defaulting to
// absent since a bare sensor without the feature bit never emits one.
// A context entry that is not a *CGMFeature fails the decode.
func recordHasCRC(p DecodeParams) (bool, error) {
	feature, ok, err := siblingAs[*CGMFeature](p.Context, TypeCGMFeature)
	if err != nil {
		return false, err
	}
	if ok {
		return feature.E2ECRCSupported(), nil
	}

	return p.RecordCRC == CRCPresent, nil
}

func (c cgmCodec) Decode(r *encoding.Reader, p DecodeParams) (Value, []FieldError, error) {
	record := r.Rest()

	size, err := r.Uint8()
	if err != nil {
		return nil, nil, err
	}
	if int(size) > r.Len() {
		return nil, nil, fmt.Errorf("%w: record size %d exceeds %d-byte payload",
			errs.ErrMalformedStructure, size, r.Len())
	}

	hasCRC, err := recordHasCRC(p)
	if err != nil {
		return nil, nil, err
	}

	m := &CGMMeasurement{E2ECRC: hasCRC}

	var fieldErrs []FieldError
	if m.E2ECRC {
		if int(size) < 8 {
			return nil, nil, fmt.Errorf("%w: record size %d too small for E2E-CRC",
				errs.ErrInvalidLength, size)
		}
		stored := uint16(record[size-2]) | uint16(record[size-1])<<8
		if computed := encoding.CRC16(record[:size-2]); computed != stored {
			fieldErrs = append(fieldErrs, FieldError{
				Field:  "e2e-crc",
				Offset: int(size) - 2,
				Raw:    record[size-2 : size],
				Reason: fmt.Errorf("%w: CRC mismatch, stored 0x%04X computed 0x%04X",
					errs.ErrMalformedStructure, stored, computed),
			})
		}
	}

	flagByte, err := r.Uint8()
	if err != nil {
		return nil, nil, err
	}
	if m.Concentration, err = r.SFloat(); err != nil {
		return nil, nil, err
	}
	if m.TimeOffset, err = r.Uint16(); err != nil {
		return nil, nil, err
	}

	fieldErrs = append(fieldErrs, WalkDecode(r, uint32(flagByte), c.fields(m))...)

	return m, fieldErrs, nil
}

func (c cgmCodec) Encode(w *encoding.Writer, v Value) error {
	m, err := valueAs[*CGMMeasurement](v)
	if err != nil {
		return err
	}

	fields := c.fields(m)

	size := 6
	for _, f := range fields {
		if !f.Present() {
			continue
		}
		switch f.Bit {
		case cgmFlagTrend, cgmFlagQuality:
			size += 2
		default:
			size++
		}
	}
	if m.E2ECRC {
		size += 2
	}

	start := w.Len()
	w.AppendUint8(uint8(size))
	w.AppendUint8(uint8(DeriveFlags(0, fields)))
	if err := w.AppendSFloat(m.Concentration); err != nil {
		return err
	}
	w.AppendUint16(m.TimeOffset)
	if err := WalkEncode(w, fields); err != nil {
		return err
	}

	if m.E2ECRC {
		w.AppendUint16(encoding.CRC16(w.Bytes()[start:]))
	}

	return nil
}

func (cgmCodec) Validate(Value) []FieldError { return nil }

type cgmFeatureCodec struct{}

func (cgmFeatureCodec) Type() Type { return TypeCGMFeature }

func (cgmFeatureCodec) Rule() ValidationRule {
	return Exactly(6, format.KindComposite)
}

func (cgmFeatureCodec) Decode(r *encoding.Reader, _ DecodeParams) (Value, []FieldError, error) {
	raw := r.Rest()

	features, err := r.Uint24()
	if err != nil {
		return nil, nil, err
	}
	packed, err := r.Uint8()
	if err != nil {
		return nil, nil, err
	}
	stored, err := r.Uint16()
	if err != nil {
		return nil, nil, err
	}

	f := &CGMFeature{
		Features:       features,
		Type:           packed & 0x0F,
		SampleLocation: packed >> 4,
	}

	var fieldErrs []FieldError
	if f.E2ECRCSupported() {
		if computed := encoding.CRC16(raw[:4]); computed != stored {
			fieldErrs = append(fieldErrs, FieldError{
				Field:  "e2e-crc",
				Offset: 4,
				Raw:    raw[4:6],
				Reason: fmt.Errorf("%w: CRC mismatch, stored 0x%04X computed 0x%04X",
					errs.ErrMalformedStructure, stored, computed),
			})
		}
	} else if stored != 0xFFFF {
		fieldErrs = append(fieldErrs, FieldError{
			Field:  "e2e-crc",
			Offset: 4,
			Raw:    raw[4:6],
			Reason: fmt.Errorf("%w: expected 0xFFFF placeholder, got 0x%04X",
				errs.ErrInvalidDiscreteValue, stored),
		})
	}

	return f, fieldErrs, nil
}

func (cgmFeatureCodec) Encode(w *encoding.Writer, v Value) error {
	f, err := valueAs[*CGMFeature](v)
	if err != nil {
		return err
	}

	start := w.Len()
	if err := w.AppendUint24(f.Features); err != nil {
		return err
	}
	w.AppendUint8(f.SampleLocation<<4 | f.Type&0x0F)

	if f.E2ECRCSupported() {
		w.AppendUint16(encoding.CRC16(w.Bytes()[start:]))
	} else {
		w.AppendUint16(0xFFFF)
	}

	return nil
}

func (cgmFeatureCodec) Validate(Value) []FieldError { return nil }
