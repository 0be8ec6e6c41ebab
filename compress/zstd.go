package compress

// ZstdCompressor reads and writes Zstandard frames (.zst).
//
// The pure Go implementation is used by default; building with cgo and the
// gozstd tag switches to the reference C library.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
