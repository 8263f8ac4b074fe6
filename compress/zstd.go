package compress

// ZstdCompressor compresses capture blocks with Zstandard. The best
// choice for archived sessions where ratio matters more than speed.
//
// Two implementations back the same type: a cgo build uses the libzstd
// binding, a pure-Go build falls back to klauspost/compress/zstd. The
// produced frames are interchangeable.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
