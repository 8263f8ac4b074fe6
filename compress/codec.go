// Package compress provides the compression codecs used by capture logs.
//
// Captured characteristic payloads are small individually (1-28 bytes) but
// highly repetitive across a session: the same flags words, the same
// slowly-drifting measurement values. Batching entries into a log block
// and compressing the block exploits that redundancy; the codecs here
// implement the block-level stage.
package compress

import (
	"fmt"

	"github.com/gattkit/gattkit/format"
)

// Compressor compresses one capture log block.
type Compressor interface {
	// Compress compresses the input data and returns the compressed
	// result. The returned slice is newly allocated and owned by the
	// caller; the input is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a capture log block to its original bytes.
type Decompressor interface {
	// Decompress decompresses data previously produced by the matching
	// Compressor. It fails when the input is corrupted or was compressed
	// with a different algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. All built-in codecs are stateless and
// safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec creates a Codec for the given compression type. The target
// string names the caller's usage in error messages.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
