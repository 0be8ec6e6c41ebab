// Package compress provides whole-file compression codecs for map archives.
//
// Map files are large and highly compressible, and public archives such as
// EMDB distribute them gzip-compressed. Each codec produces a standalone
// stream in its algorithm's file format:
//
//	Type  | Extension | Format
//	------|-----------|---------------------------------------------
//	None  |           | raw map bytes
//	Gzip  | .gz       | gzip member (klauspost/compress/gzip)
//	Zstd  | .zst      | Zstandard frame (klauspost/compress/zstd, or gozstd)
//	S2    | .sz       | S2 framed stream (klauspost/compress/s2)
//	LZ4   | .lz4      | LZ4 frame (pierrec/lz4/v4)
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionGzip)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(mapBytes)
//
// Compress additionally reports sizes and timing:
//
//	packed, stats, err := compress.Compress(format.CompressionZstd, mapBytes)
//	fmt.Printf("%.1f%% saved\n", stats.SpaceSavings())
//
// # Build tags
//
// Zstd uses the pure Go implementation unless the package is built with cgo
// and the gozstd tag, which selects the reference C library through
// github.com/valyala/gozstd.
//
// All codecs pool their encoders, decoders and buffers and are safe for
// concurrent use.
package compress
