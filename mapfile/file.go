package mapfile

import (
	"fmt"
	"io"

	"github.com/arloliu/ccp4map/endian"
	"github.com/arloliu/ccp4map/errs"
	"github.com/arloliu/ccp4map/format"
	"github.com/arloliu/ccp4map/internal/logger"
	"github.com/arloliu/ccp4map/section"
)

// file is the state shared by readers and writers: the decoded header, the
// derived layout and the stream cursor.
type file struct {
	seeker io.Seeker
	closer io.Closer // non-nil when the handle owns the stream
	name   string

	header section.Header
	layout section.Layout
	log    logger.Logger
	closed bool
}

// Header returns a copy of the header as currently known by the handle.
func (f *file) Header() section.Header {
	return f.header
}

// Layout returns the layout descriptor of the data area.
func (f *file) Layout() section.Layout {
	return f.layout
}

// Name returns the file name the handle was opened with, if any.
func (f *file) Name() string {
	return f.name
}

// Cell returns the cell parameters a, b, c, alpha, beta, gamma.
func (f *file) Cell() [6]float32 {
	return f.header.Cell
}

// Grid returns the number of grid samples along each cell edge.
func (f *file) Grid() [3]int32 {
	return f.header.Grid
}

// Origin returns the first grid index along columns, rows and sections.
func (f *file) Origin() [3]int32 {
	return f.header.Origin
}

// AxesOrder returns which cell axis (1=X, 2=Y, 3=Z) runs along columns,
// rows and sections.
func (f *file) AxesOrder() [3]int32 {
	return f.header.AxesOrder
}

// Dims returns the number of columns, rows and sections.
func (f *file) Dims() [3]int32 {
	return f.header.Dims
}

// Spacegroup returns the canonical spacegroup number.
func (f *file) Spacegroup() int32 {
	return f.header.Spacegroup
}

// Contents returns what the map holds.
func (f *file) Contents() section.Contents {
	return f.header.Contents
}

// DataMode returns the item encoding.
func (f *file) DataMode() format.DataMode {
	return f.header.Mode
}

// LocalHeaderSize returns the size of the per-section local header.
func (f *file) LocalHeaderSize() int64 {
	return f.layout.HeaderSize
}

// SectionCount returns the number of sections: the header count for readers,
// the number of complete sections written for writers.
func (f *file) SectionCount() int64 {
	return f.layout.Sections
}

// NumSymops returns the number of symmetry operators.
func (f *file) NumSymops() int64 {
	return f.layout.Symops()
}

// Label returns label i, or false if i is outside [0, NumLabels()).
func (f *file) Label(i int) (string, bool) {
	return f.header.Labels.Get(i)
}

// Labels returns all labels in order.
func (f *file) Labels() []string {
	return f.header.Labels.All()
}

// NumLabels returns the number of labels.
func (f *file) NumLabels() int {
	return f.header.Labels.Len()
}

// Title returns label 0.
func (f *file) Title() (string, bool) {
	return f.header.Labels.Title()
}

// Mask returns the skew rotation in row-major order, the skew translation,
// and whether a skew transform is set.
func (f *file) Mask() ([9]float32, [3]float32, bool) {
	return f.header.Skew.Get()
}

// ByteOrder returns the byte order of numeric header words and data items.
func (f *file) ByteOrder() endian.EndianEngine {
	return f.header.ByteOrder
}

// Tell returns the current stream position in bytes.
func (f *file) Tell() (int64, error) {
	if f.closed {
		return 0, errs.ErrClosed
	}

	return f.seeker.Seek(0, io.SeekCurrent)
}

func (f *file) seek(offset int64, whence int) (int64, error) {
	pos, err := f.seeker.Seek(offset, whence)
	if err != nil {
		return 0, fmt.Errorf("%w: seek %d/%d: %w", errs.ErrParam, offset, whence, err)
	}

	return pos, nil
}

func (f *file) itemSize() int64 {
	return int64(f.header.Mode.ItemSize())
}

func (f *file) release() error {
	if f.closed {
		return errs.ErrClosed
	}
	f.closed = true

	if f.closer != nil {
		return f.closer.Close()
	}

	return nil
}

func (f *file) sealed() {}
