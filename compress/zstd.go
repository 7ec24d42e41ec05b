package compress

// ZstdCompressor provides Zstandard compression.
//
// It is the default choice for CSV tables, whose repeated separators and
// digit runs compress well at high speed.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
