package mapfile

import (
	"fmt"
	"io"

	"github.com/arloliu/ccp4map/errs"
	"github.com/arloliu/ccp4map/section"
)

// Reader reads an existing map file.
//
// The header is decoded once at open; every other call navigates or reads
// through a single stream cursor. A Reader is not safe for concurrent use.
type Reader struct {
	file
	r io.ReadSeeker
}

var _ Handle = (*Reader)(nil)

// NewReader decodes the header of a map stream and positions the cursor at
// the start of the symmetry block.
//
// The stream is not closed by Reader.Close; use OpenFile to let the handle
// own the file.
//
// Parameters:
//   - rs: Seekable source holding a complete map file
//   - opts: Optional configuration; only WithLocalHeader and WithLogger apply
//
// Returns:
//   - *Reader: Reader positioned at byte 1024
//   - error: ErrNoHeader if the stream is too short or lacks the magic
func NewReader(rs io.ReadSeeker, opts ...Option) (*Reader, error) {
	if rs == nil {
		return nil, fmt.Errorf("%w: nil stream", errs.ErrNullBuffer)
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return newReader(rs, "", nil, cfg)
}

func newReader(rs io.ReadSeeker, name string, closer io.Closer, cfg *Config) (*Reader, error) {
	length, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrNoHeader, err)
	}
	if length < section.MinFileSize {
		return nil, fmt.Errorf("%w: file holds %d bytes", errs.ErrNoHeader, length)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, section.HeaderSize)
	if _, err := io.ReadFull(rs, buf); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrNoHeader, err)
	}

	hdr, err := section.ParseHeader(buf)
	if err != nil {
		return nil, err
	}

	log := cfg.Logger
	if name != "" {
		log = log.With("file", name)
	}
	if hdr.StampCorrupted {
		log.Warn("corrupted machine stamp, assuming host byte order", "stamp", fmt.Sprintf("% x", buf[section.StampOffset:section.StampOffset+4]))
	}

	rd := &Reader{
		file: file{
			seeker: rs,
			closer: closer,
			name:   name,
			header: hdr,
			layout: hdr.Layout(cfg.LocalHeaderSize),
			log:    log,
		},
		r: rs,
	}
	if _, err := rd.seek(section.HeaderSize, io.SeekStart); err != nil {
		return nil, err
	}

	log.Debug("opened map for reading",
		"dims", hdr.Dims, "mode", hdr.Mode, "contents", hdr.Contents.String(),
		"symops", rd.layout.Symops(), "length", length)

	return rd, nil
}

// Close releases the handle, closing the underlying file if the handle owns it.
func (rd *Reader) Close() error {
	if err := rd.release(); err != nil {
		return err
	}
	rd.log.Debug("closed map")

	return nil
}

// SectionsFromLength replaces the header section count with the number of
// complete blocks the stream actually holds. The cursor is left unchanged.
//
// Returns:
//   - int64: the new section count
func (rd *Reader) SectionsFromLength() (int64, error) {
	if rd.closed {
		return 0, errs.ErrClosed
	}

	cur, err := rd.r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	length, err := rd.r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := rd.seek(cur, io.SeekStart); err != nil {
		return 0, err
	}

	rd.layout.Sections = rd.layout.SectionsIn(length)
	if n := rd.layout.Sections; n != int64(rd.header.Dims[2]) {
		rd.log.Debug("section count differs from header", "header", rd.header.Dims[2], "file", n)
	}

	return rd.layout.Sections, nil
}

// MapStats returns the statistics stored in the header.
func (rd *Reader) MapStats() (minVal, maxVal float32, mean, rms float64) {
	return rd.header.Min, rd.header.Max, float64(rd.header.Mean), float64(rd.header.RMS)
}

// SeekSection positions the cursor at the start of a section.
//
// whence is io.SeekStart (0 ≤ sec ≤ SectionCount), io.SeekEnd
// (-SectionCount ≤ sec ≤ 0) or io.SeekCurrent (the target must be an
// existing section). Seeking to SectionCount from the start is allowed and
// leaves the cursor at the end of the data.
//
// Returns:
//   - int64: the section index the cursor now lies in
//   - error: ErrParam if the target is out of range
func (rd *Reader) SeekSection(sec int64, whence int) (int64, error) {
	return rd.seekSection(sec, whence, true)
}

// SeekRow positions the cursor at a row of the current section.
//
// Returns:
//   - int64: the row index within the section
//   - error: ErrParam if the target is outside [0, Dims()[1])
func (rd *Reader) SeekRow(row int64, whence int) (int64, error) {
	return rd.seekRow(row, whence)
}

// SeekData moves the cursor by whole items, relative to the start of the
// file, the current position or the end of the file.
//
// Returns:
//   - int64: the new byte offset from the start of the file
func (rd *Reader) SeekData(items int64, whence int) (int64, error) {
	return rd.seekData(items, whence)
}

// ReadSection reads the payload of the section at the cursor into buf.
//
// A cursor inside a section is moved back to its start; a cursor inside a
// local header moves on to the next section. Afterwards the cursor sits at
// the start of that section's local header.
//
// Parameters:
//   - buf: Destination of at least Layout().SectionSize bytes
//
// Returns:
//   - error: io.EOF past the last section, ErrNullBuffer for a short buf,
//     a *errs.TransferError for a truncated file
func (rd *Reader) ReadSection(buf []byte) error {
	if rd.closed {
		return errs.ErrClosed
	}
	size := rd.layout.SectionSize
	if int64(len(buf)) < size {
		return fmt.Errorf("%w: need %d bytes, got %d", errs.ErrNullBuffer, size, len(buf))
	}

	q, err := rd.normalizeSection()
	if err != nil {
		return err
	}
	if q >= rd.layout.Sections {
		return io.EOF
	}

	if err := readFull(rd.r, "read section", buf[:size], int(rd.itemSize())); err != nil {
		rd.log.Warn("short section read", "section", q, "error", err)
		return err
	}

	return nil
}

// ReadRow reads the row at the cursor into buf.
//
// A cursor inside a row snaps back to its start; a cursor past the last row
// of a section moves on to the next section.
//
// Parameters:
//   - buf: Destination of at least Layout().RowSize bytes
//
// Returns:
//   - error: io.EOF past the last section, ErrNullBuffer for a short buf,
//     a *errs.TransferError for a truncated file
func (rd *Reader) ReadRow(buf []byte) error {
	if rd.closed {
		return errs.ErrClosed
	}
	size := rd.layout.RowSize
	if size == 0 {
		return fmt.Errorf("%w: map has no rows", errs.ErrParam)
	}
	if int64(len(buf)) < size {
		return fmt.Errorf("%w: need %d bytes, got %d", errs.ErrNullBuffer, size, len(buf))
	}

	q, err := rd.normalizeRow()
	if err != nil {
		return err
	}
	if q >= rd.layout.Sections {
		return io.EOF
	}

	if err := readFull(rd.r, "read row", buf[:size], int(rd.itemSize())); err != nil {
		rd.log.Warn("short row read", "section", q, "error", err)
		return err
	}

	return nil
}

// ReadSectionHeader reads the local header that follows the payload of the
// section at the cursor.
//
// Returns:
//   - int: number of bytes read, 0 when the map has no local headers
//   - error: io.EOF past the last section, ErrParam before the data area
func (rd *Reader) ReadSectionHeader(buf []byte) (int, error) {
	if rd.closed {
		return 0, errs.ErrClosed
	}
	size := rd.layout.HeaderSize
	if size == 0 {
		return 0, nil
	}
	if int64(len(buf)) < size {
		return 0, fmt.Errorf("%w: need %d bytes, got %d", errs.ErrNullBuffer, size, len(buf))
	}

	cur, err := rd.r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	q, r := rd.layout.Decompose(cur)
	if q < 0 || r < 0 {
		return 0, fmt.Errorf("%w: cursor %d is before the data area", errs.ErrParam, cur)
	}
	if q >= rd.layout.Sections {
		return 0, io.EOF
	}
	if r != rd.layout.SectionSize {
		if _, err := rd.seek(rd.layout.SectionSize-r, io.SeekCurrent); err != nil {
			return 0, err
		}
	}

	n, err := io.ReadFull(rd.r, buf[:size])
	if err != nil {
		return n, errs.ReadFail("read section header", int(size), n, err)
	}

	return n, nil
}

// ReadData reads whole items at the cursor without any navigation.
//
// Returns:
//   - int: number of items read
//   - error: io.EOF at the end of the stream, a *errs.TransferError when
//     fewer than len(buf)/itemSize items were available
func (rd *Reader) ReadData(buf []byte) (int, error) {
	if rd.closed {
		return 0, errs.ErrClosed
	}

	size := int(rd.itemSize())
	items := len(buf) / size
	if items == 0 {
		return 0, nil
	}

	n, err := io.ReadFull(rd.r, buf[:items*size])
	if err != nil {
		if n == 0 && err == io.EOF {
			return 0, io.EOF
		}

		return n / size, errs.ReadFail("read data", items, n/size, err)
	}

	return items, nil
}
