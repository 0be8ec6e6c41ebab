package compress

import (
	"fmt"
	"time"

	"github.com/arloliu/ccp4map/errs"
	"github.com/arloliu/ccp4map/format"
)

// Compressor compresses a complete map file.
//
// The output is a standalone stream in the algorithm's file format, so it can
// be written to disk under the matching extension and opened by other tools.
type Compressor interface {
	// Compress returns the compressed form of data. The returned slice is
	// owned by the caller; data is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a map file compressed by the matching Compressor or
// by any tool producing the same stream format.
type Decompressor interface {
	// Decompress returns the original bytes. The returned slice is owned by
	// the caller; data is not modified.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. Implementations are safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes one compression run.
type CompressionStats struct {
	Algorithm      format.CompressionType
	OriginalSize   int64
	CompressedSize int64
	Elapsed        time.Duration
}

// CompressionRatio returns the compressed size divided by the original size,
// or 0 for empty input.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionGzip: NewGzipCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in codec for a compression type.
//
// Returns:
//   - Codec: shared codec instance
//   - error: ErrInvalidCompression for an unknown type
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
}

// Compress compresses data with the built-in codec for compressionType and
// reports what it did.
func Compress(compressionType format.CompressionType, data []byte) ([]byte, CompressionStats, error) {
	stats := CompressionStats{Algorithm: compressionType, OriginalSize: int64(len(data))}

	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, stats, err
	}

	start := time.Now()
	out, err := codec.Compress(data)
	if err != nil {
		return nil, stats, fmt.Errorf("%s compression failed: %w", compressionType, err)
	}
	stats.Elapsed = time.Since(start)
	stats.CompressedSize = int64(len(out))

	return out, stats, nil
}

// Decompress decompresses data with the built-in codec for compressionType.
func Decompress(compressionType format.CompressionType, data []byte) ([]byte, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	out, err := codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%s decompression failed: %w", compressionType, err)
	}

	return out, nil
}
