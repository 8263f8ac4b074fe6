package format

type (
	ValueKind       uint8
	CompressionType uint8
)

const (
	KindNumeric   ValueKind = 0x1 // KindNumeric represents a scalar numeric value.
	KindEnum      ValueKind = 0x2 // KindEnum represents a discrete enumerated value.
	KindComposite ValueKind = 0x3 // KindComposite represents a multi-field structure.
	KindUTF8      ValueKind = 0x4 // KindUTF8 represents a UTF-8 string value.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (k ValueKind) String() string {
	switch k {
	case KindNumeric:
		return "Numeric"
	case KindEnum:
		return "Enum"
	case KindComposite:
		return "Composite"
	case KindUTF8:
		return "UTF8"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	}

	return "Unknown"
}
