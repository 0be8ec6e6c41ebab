package mapfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/ccp4map/endian"
	"github.com/arloliu/ccp4map/errs"
	"github.com/arloliu/ccp4map/format"
	"github.com/arloliu/ccp4map/section"
)

// Handle is an open map file: either a *Reader or a *Writer.
//
// The interface holds what both handles share. Use a type switch to reach
// the read or write operations:
//
//	switch h := h.(type) {
//	case *mapfile.Reader:
//	    ...
//	case *mapfile.Writer:
//	    ...
//	}
type Handle interface {
	Header() section.Header
	Layout() section.Layout
	Name() string
	Cell() [6]float32
	Grid() [3]int32
	Origin() [3]int32
	AxesOrder() [3]int32
	Dims() [3]int32
	Spacegroup() int32
	Contents() section.Contents
	DataMode() format.DataMode
	LocalHeaderSize() int64
	SectionCount() int64
	NumSymops() int64
	Label(i int) (string, bool)
	Labels() []string
	NumLabels() int
	Title() (string, bool)
	Mask() ([9]float32, [3]float32, bool)
	MapStats() (minVal, maxVal float32, mean, rms float64)
	ByteOrder() endian.EndianEngine
	Tell() (int64, error)

	SeekSection(sec int64, whence int) (int64, error)
	SeekRow(row int64, whence int) (int64, error)
	SeekData(items int64, whence int) (int64, error)

	Close() error

	sealed()
}

// OpenFile opens a map file on disk.
//
// A mode including OpenRead returns a *Reader (read-write files are still
// read); otherwise a mode including OpenWrite returns a *Writer. OpenCreate
// and OpenTruncate map onto the matching os flags. OpenAppend continues an
// existing map: its header is read back, the geometry is frozen and new
// sections follow the last complete one. The returned handle owns the file and closes it on Close.
//
// Returns:
//   - Handle: *Reader or *Writer
//   - error: ErrCantOpenFile (wrapping the os error), or open errors of
//     NewReader / NewWriter
func OpenFile(path string, mode format.OpenMode, opts ...Option) (Handle, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	switch {
	case mode.Has(format.OpenRead):
		flag := os.O_RDONLY
		if mode.Has(format.OpenWrite) {
			flag = os.O_RDWR
		}

		f, err := os.OpenFile(path, flag, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrCantOpenFile, err)
		}

		rd, err := newReader(f, path, f, cfg)
		if err != nil {
			return nil, errors.Join(err, f.Close())
		}

		return rd, nil
	case mode.Has(format.OpenWrite):
		appendData := mode.Has(format.OpenAppend)
		flag := os.O_WRONLY
		if appendData {
			flag = os.O_RDWR
		}
		if mode.Has(format.OpenCreate) {
			flag |= os.O_CREATE
		}
		if mode.Has(format.OpenTruncate) && !appendData {
			flag |= os.O_TRUNC
		}

		f, err := os.OpenFile(path, flag, 0o644)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrCantOpenFile, err)
		}

		var wr *Writer
		if appendData {
			wr, err = appendWriter(f, path, f, cfg)
		} else {
			wr, err = newWriter(f, path, f, cfg)
		}
		if err != nil {
			return nil, errors.Join(err, f.Close())
		}

		return wr, nil
	default:
		return nil, fmt.Errorf("%w: mode %s", errs.ErrCantOpenFile, mode)
	}
}

// OpenReader opens path for reading.
func OpenReader(path string, opts ...Option) (*Reader, error) {
	h, err := OpenFile(path, format.OpenRead, opts...)
	if err != nil {
		return nil, err
	}

	return h.(*Reader), nil
}

// CreateWriter creates or truncates path for writing.
func CreateWriter(path string, opts ...Option) (*Writer, error) {
	h, err := OpenFile(path, format.OpenWrite|format.OpenCreate|format.OpenTruncate, opts...)
	if err != nil {
		return nil, err
	}

	return h.(*Writer), nil
}

var (
	_ io.Closer = (*Reader)(nil)
	_ io.Closer = (*Writer)(nil)
)
