package compress

import (
	"bytes"
	"io"

	"github.com/arloliu/ccp4map/internal/pool"
)

// encodeStream runs data through a stream encoder into a pooled archive
// buffer and returns a copy owned by the caller.
func encodeStream(data []byte, open func(w io.Writer) io.WriteCloser) ([]byte, error) {
	buf := pool.GetArchiveBuffer()
	defer pool.PutArchiveBuffer(buf)

	w := open(buf)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return bytes.Clone(buf.Bytes()), nil
}

// decodeStream drains a stream decoder into a pooled archive buffer and
// returns a copy owned by the caller.
func decodeStream(r io.Reader) ([]byte, error) {
	buf := pool.GetArchiveBuffer()
	defer pool.PutArchiveBuffer(buf)

	if _, err := io.Copy(buf, r); err != nil {
		return nil, err
	}

	return bytes.Clone(buf.Bytes()), nil
}
