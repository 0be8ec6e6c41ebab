package compress

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
)

var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(nil)
	},
}

var gzipReaderPool sync.Pool

// GzipCompressor reads and writes gzip streams, the format EMDB distributes
// maps in (.map.gz).
type GzipCompressor struct{}

var _ Codec = (*GzipCompressor)(nil)

// NewGzipCompressor creates a gzip codec using the default compression level.
func NewGzipCompressor() GzipCompressor {
	return GzipCompressor{}
}

// Compress writes data as a single gzip member.
func (c GzipCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	gw, _ := gzipWriterPool.Get().(*gzip.Writer)
	defer gzipWriterPool.Put(gw)

	return encodeStream(data, func(w io.Writer) io.WriteCloser {
		gw.Reset(w)
		return gw
	})
}

// Decompress reads every gzip member in data.
func (c GzipCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	gr, ok := gzipReaderPool.Get().(*gzip.Reader)
	if ok {
		if err := gr.Reset(bytes.NewReader(data)); err != nil {
			return nil, err
		}
	} else {
		var err error
		if gr, err = gzip.NewReader(bytes.NewReader(data)); err != nil {
			return nil, err
		}
	}
	defer gzipReaderPool.Put(gr)

	out, err := decodeStream(gr)
	if err != nil {
		return nil, err
	}

	return out, gr.Close()
}
