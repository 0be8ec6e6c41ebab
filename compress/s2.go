package compress

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/s2"
)

var s2WriterPool = sync.Pool{
	New: func() any {
		return s2.NewWriter(nil, s2.WriterBetterCompression(), s2.WriterConcurrency(1))
	},
}

var s2ReaderPool = sync.Pool{
	New: func() any {
		return s2.NewReader(nil)
	},
}

// S2Compressor reads and writes S2 framed streams (.sz).
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates an S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress writes data as an S2 stream.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	sw, _ := s2WriterPool.Get().(*s2.Writer)
	defer s2WriterPool.Put(sw)

	return encodeStream(data, func(w io.Writer) io.WriteCloser {
		sw.Reset(w)
		return sw
	})
}

// Decompress reads an S2 (or Snappy framed) stream.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	sr, _ := s2ReaderPool.Get().(*s2.Reader)
	defer s2ReaderPool.Put(sr)
	sr.Reset(bytes.NewReader(data))

	return decodeStream(sr)
}
