package mapfile

import (
	"fmt"
	"io"

	"github.com/arloliu/ccp4map/encoding"
	"github.com/arloliu/ccp4map/endian"
	"github.com/arloliu/ccp4map/errs"
	"github.com/arloliu/ccp4map/format"
	"github.com/arloliu/ccp4map/internal/pool"
	"github.com/arloliu/ccp4map/section"
	"github.com/arloliu/ccp4map/stats"
)

// Writer creates a map file.
//
// A new map starts with a placeholder header; data is appended section by
// section (or row by row) and the final header is written by Close. The
// geometry (dims, data mode, local header size and symmetry block) can only
// change before the first data byte is written.
type Writer struct {
	file
	w io.WriteSeeker

	acc       stats.Accumulator
	closeMode format.CloseMode
	rows      int64 // rows written into the current, incomplete section
	started   bool  // any data byte has been written
}

var _ Handle = (*Writer)(nil)

// NewWriter writes a placeholder header to ws and positions the cursor at the
// start of the data area.
//
// The stream is not closed by Writer.Close; use OpenFile to let the handle
// own the file.
//
// Parameters:
//   - ws: Seekable destination
//   - opts: Byte order, data mode, local header size, close mode and logger
//
// Returns:
//   - *Writer: Writer positioned at byte 1024
//   - error: option validation or placeholder write errors
func NewWriter(ws io.WriteSeeker, opts ...Option) (*Writer, error) {
	if ws == nil {
		return nil, fmt.Errorf("%w: nil stream", errs.ErrNullBuffer)
	}

	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return newWriter(ws, "", nil, cfg)
}

func newWriter(ws io.WriteSeeker, name string, closer io.Closer, cfg *Config) (*Writer, error) {
	hdr := section.NewHeader()
	hdr.ByteOrder = cfg.ByteOrder
	hdr.Mode = cfg.DataMode

	log := cfg.Logger
	if name != "" {
		log = log.With("file", name)
	}

	wr := &Writer{
		file: file{
			seeker: ws,
			closer: closer,
			name:   name,
			header: *hdr,
			layout: hdr.Layout(cfg.LocalHeaderSize),
			log:    log,
		},
		w:         ws,
		closeMode: cfg.CloseMode,
	}

	if err := wr.writeHeader(); err != nil {
		return nil, err
	}
	if _, err := wr.seek(section.HeaderSize, io.SeekStart); err != nil {
		return nil, err
	}

	log.Debug("opened map for writing",
		"mode", hdr.Mode, "big_endian", endian.IsBigEndian(cfg.ByteOrder), "local_header", cfg.LocalHeaderSize)

	return wr, nil
}

// appendWriter continues an existing map. The header, symmetry block and
// complete sections already in rws are kept; the cursor is placed after the
// last complete section and the geometry is frozen. An empty stream gets a
// fresh placeholder header instead.
func appendWriter(rws io.ReadWriteSeeker, name string, closer io.Closer, cfg *Config) (*Writer, error) {
	length, err := rws.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if length == 0 {
		return newWriter(rws, name, closer, cfg)
	}
	if length < section.HeaderSize {
		return nil, fmt.Errorf("%w: file holds %d bytes", errs.ErrNoHeader, length)
	}

	if _, err := rws.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, section.HeaderSize)
	if _, err := io.ReadFull(rws, buf); err != nil {
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

	layout := hdr.Layout(cfg.LocalHeaderSize)
	layout.Sections = layout.SectionsIn(length)

	wr := &Writer{
		file: file{
			seeker: rws,
			closer: closer,
			name:   name,
			header: hdr,
			layout: layout,
			log:    log,
		},
		w:         rws,
		closeMode: cfg.CloseMode,
		started:   layout.Sections > 0,
	}

	if layout.Sections > 0 {
		items := layout.Sections * int64(hdr.Dims[0]) * int64(hdr.Dims[1])
		if hdr.Mode == format.ModeFloat32 {
			wr.acc.Resume(hdr.Min, hdr.Max, float64(hdr.Mean), float64(hdr.RMS), items)
		} else {
			wr.acc.Set(hdr.Min, hdr.Max, float64(hdr.Mean), float64(hdr.RMS))
		}
	}

	if _, err := wr.seek(layout.FileSize(), io.SeekStart); err != nil {
		return nil, err
	}

	log.Debug("opened map for appending",
		"dims", hdr.Dims, "mode", hdr.Mode, "sections", layout.Sections, "length", length)

	return wr, nil
}

func (wr *Writer) writeHeader() error {
	if _, err := wr.seek(0, io.SeekStart); err != nil {
		return err
	}

	return writeFull(wr.w, "write header", wr.header.Bytes(), 1)
}

// Close finalizes the statistics, writes the final header and releases the
// handle. Dims()[2] is raised to the number of complete sections in the file
// when fewer were declared.
func (wr *Writer) Close() error {
	if wr.closed {
		return errs.ErrClosed
	}

	if wr.header.Mode == format.ModeFloat32 {
		wr.acc.Finalize(wr.closeMode)
	}
	wr.header.Min = wr.acc.Min
	wr.header.Max = wr.acc.Max
	wr.header.Mean = float32(wr.acc.Mean)
	wr.header.RMS = float32(wr.acc.RMS)

	if wr.layout.Sections > int64(wr.header.Dims[2]) {
		wr.header.Dims[2] = int32(wr.layout.Sections)
	}

	herr := wr.writeHeader()
	if rerr := wr.release(); herr == nil {
		herr = rerr
	}
	if herr != nil {
		return herr
	}

	wr.log.Debug("closed map",
		"sections", wr.layout.Sections, "values", wr.acc.Total,
		"min", wr.acc.Min, "max", wr.acc.Max, "mean", wr.acc.Mean, "rms", wr.acc.RMS)

	return nil
}

// Frozen reports whether data has been written, after which the geometry can
// no longer change.
func (wr *Writer) Frozen() bool {
	return wr.started || wr.layout.Sections > 0 || wr.rows > 0
}

func (wr *Writer) checkGeometry(what string) error {
	if wr.closed {
		return errs.ErrClosed
	}
	if wr.Frozen() {
		return fmt.Errorf("%w: %s", errs.ErrGeometryFrozen, what)
	}

	return nil
}

// MapStats returns the statistics Close would write with the current close
// mode.
func (wr *Writer) MapStats() (minVal, maxVal float32, mean, rms float64) {
	if wr.header.Mode != format.ModeFloat32 {
		return wr.acc.Min, wr.acc.Max, wr.acc.Mean, wr.acc.RMS
	}

	return wr.acc.Snapshot(wr.closeMode)
}

// SetMapStats stores explicit statistics. They are written as-is under
// CloseStored; the other close modes recompute mean and rms from the data.
func (wr *Writer) SetMapStats(minVal, maxVal float32, mean, rms float64) {
	wr.acc.Set(minVal, maxVal, mean, rms)
}

// SetCloseMode selects how Close derives the statistics.
func (wr *Writer) SetCloseMode(mode format.CloseMode) error {
	if mode > format.CloseZeroOffset {
		return fmt.Errorf("%w: close mode %d", errs.ErrParam, mode)
	}
	wr.closeMode = mode

	return nil
}

// CloseMode returns the close mode.
func (wr *Writer) CloseMode() format.CloseMode {
	return wr.closeMode
}

// SetCell sets the cell parameters a, b, c, alpha, beta, gamma.
func (wr *Writer) SetCell(cell [6]float32) {
	wr.header.Cell = cell
}

// SetGrid sets the number of grid samples along each cell edge.
func (wr *Writer) SetGrid(grid [3]int32) {
	wr.header.Grid = grid
}

// SetOrigin sets the first grid index along columns, rows and sections.
func (wr *Writer) SetOrigin(origin [3]int32) {
	wr.header.Origin = origin
}

// SetAxesOrder sets which cell axis runs along columns, rows and sections.
func (wr *Writer) SetAxesOrder(order [3]int32) {
	wr.header.AxesOrder = order
}

// SetSpacegroup sets the canonical spacegroup. A volume stack keeps its kind
// and its stored code follows the new spacegroup.
func (wr *Writer) SetSpacegroup(sg int32) {
	wr.header.Spacegroup = sg
	if wr.header.Contents.Kind() == format.VolumeStack {
		wr.header.Contents = section.VolumeStackContents(sg + section.EMSpacegroupBase)
	}
}

// SetContents sets what the map holds. A volume stack also sets the
// canonical spacegroup from its code; images force spacegroup 0.
func (wr *Writer) SetContents(c section.Contents) {
	wr.header.Contents = c
	switch c.Kind() {
	case format.VolumeStack:
		code, _ := c.Code()
		wr.header.Spacegroup = code - section.EMSpacegroupBase
	case format.Image, format.ImageStack:
		wr.header.Spacegroup = 0
	}
}

// SetUserAccess sets the user-access bytes, truncating or zero-padding data.
func (wr *Writer) SetUserAccess(data []byte) {
	clear(wr.header.UserAccess[:])
	copy(wr.header.UserAccess[:], data)
}

// SetDims sets the number of columns, rows and sections.
//
// Returns:
//   - error: ErrGeometryFrozen once data has been written
func (wr *Writer) SetDims(dims [3]int32) error {
	if err := wr.checkGeometry("dims"); err != nil {
		return err
	}
	if dims[0] < 0 || dims[1] < 0 || dims[2] < 0 {
		return fmt.Errorf("%w: dims %v", errs.ErrParam, dims)
	}

	wr.header.Dims = dims
	wr.layout.Resize(dims, wr.header.Mode)

	return nil
}

// SetDataMode sets the item encoding.
//
// Returns:
//   - error: ErrInvalidDataMode for mode 5 or above 6, ErrGeometryFrozen
//     once data has been written
func (wr *Writer) SetDataMode(mode format.DataMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidDataMode, mode)
	}
	if err := wr.checkGeometry("data mode"); err != nil {
		return err
	}

	wr.header.Mode = mode
	wr.layout.Resize(wr.header.Dims, mode)

	return nil
}

// SetLocalHeaderSize sets the size of the local header written after each
// section payload.
//
// Returns:
//   - error: ErrGeometryFrozen once data has been written
func (wr *Writer) SetLocalHeaderSize(size int64) error {
	if size < 0 {
		return fmt.Errorf("%w: local header size %d", errs.ErrParam, size)
	}
	if err := wr.checkGeometry("local header size"); err != nil {
		return err
	}
	wr.layout.SetLocalHeaderSize(size)

	return nil
}

// SetHeader copies the descriptive fields and geometry of hdr: dims, data
// mode, origin, grid, cell, axes order, spacegroup, contents, skew, user
// access and labels. Statistics, symmetry size and byte order are kept.
//
// Returns:
//   - error: ErrInvalidDataMode, ErrParam or ErrGeometryFrozen as for
//     SetDataMode and SetDims
func (wr *Writer) SetHeader(hdr section.Header) error {
	if err := wr.SetDataMode(hdr.Mode); err != nil {
		return err
	}
	if err := wr.SetDims(hdr.Dims); err != nil {
		return err
	}

	wr.header.Origin = hdr.Origin
	wr.header.Grid = hdr.Grid
	wr.header.Cell = hdr.Cell
	wr.header.AxesOrder = hdr.AxesOrder
	wr.header.Spacegroup = hdr.Spacegroup
	wr.header.Contents = hdr.Contents
	wr.header.Skew = hdr.Skew
	wr.header.UserAccess = hdr.UserAccess
	wr.header.Labels = hdr.Labels

	return nil
}

// SetLabel stores text at label position pos, clamped to [0, NumLabels()].
//
// Returns:
//   - int: the slot actually written
func (wr *Writer) SetLabel(text string, pos int) int {
	return wr.header.Labels.Set(text, pos)
}

// DeleteLabel clears label pos and moves the following labels down.
//
// Returns:
//   - int: the slot cleared
func (wr *Writer) DeleteLabel(pos int) int {
	return wr.header.Labels.Delete(pos)
}

// SetTitle sets label 0 and returns 0.
func (wr *Writer) SetTitle(text string) int {
	return wr.header.Labels.Set(text, 0)
}

// SetMask sets the skew transform. rotation is row-major; a nil half is
// zero-filled and both nil clears the transform.
func (wr *Writer) SetMask(rotation *[9]float32, translation *[3]float32) {
	wr.header.Skew.Set(rotation, translation)
}

// SeekSection moves the cursor to the start of a section block without range
// checks.
//
// Returns:
//   - int64: the section index the cursor now lies in
func (wr *Writer) SeekSection(sec int64, whence int) (int64, error) {
	return wr.seekSection(sec, whence, false)
}

// SeekRow moves the cursor to a row of the current section.
//
// Returns:
//   - int64: the row index within the section
//   - error: ErrParam if the row is outside [0, Dims()[1])
func (wr *Writer) SeekRow(row int64, whence int) (int64, error) {
	return wr.seekRow(row, whence)
}

// SeekData moves the cursor by whole items.
//
// Returns:
//   - int64: the new byte offset from the start of the file
func (wr *Writer) SeekData(items int64, whence int) (int64, error) {
	return wr.seekData(items, whence)
}

// WriteSection appends one section payload at the cursor.
//
// Parameters:
//   - buf: At least Layout().SectionSize bytes; extra bytes are ignored
//
// Returns:
//   - error: ErrNullBuffer for a short buf, a *errs.TransferError on a
//     short write
func (wr *Writer) WriteSection(buf []byte) error {
	if wr.closed {
		return errs.ErrClosed
	}
	size := wr.layout.SectionSize
	if size == 0 || int64(len(buf)) < size {
		return fmt.Errorf("%w: need %d bytes, got %d", errs.ErrNullBuffer, size, len(buf))
	}

	wr.started = true
	if err := writeFull(wr.w, "write section", buf[:size], int(wr.itemSize())); err != nil {
		return err
	}
	wr.layout.Sections++
	wr.accumulate(buf[:size])

	return nil
}

// WriteRow appends one row at the cursor. Completing Dims()[1] rows counts
// as one section.
//
// Parameters:
//   - buf: At least Layout().RowSize bytes; extra bytes are ignored
func (wr *Writer) WriteRow(buf []byte) error {
	if wr.closed {
		return errs.ErrClosed
	}
	size := wr.layout.RowSize
	if size == 0 || int64(len(buf)) < size {
		return fmt.Errorf("%w: need %d bytes, got %d", errs.ErrNullBuffer, size, len(buf))
	}

	wr.started = true
	if err := writeFull(wr.w, "write row", buf[:size], int(wr.itemSize())); err != nil {
		return err
	}
	wr.rows++
	if wr.rows == int64(wr.header.Dims[1]) {
		wr.rows = 0
		wr.layout.Sections++
	}
	wr.accumulate(buf[:size])

	return nil
}

// WriteSectionHeader writes the local header of the section just written.
// hdr is truncated or space-padded to LocalHeaderSize().
//
// Returns:
//   - int: bytes written, 0 when the map has no local headers
func (wr *Writer) WriteSectionHeader(hdr []byte) (int, error) {
	if wr.closed {
		return 0, errs.ErrClosed
	}
	size := int(wr.layout.HeaderSize)
	if size == 0 {
		return 0, nil
	}

	buf := section.PadRecord(string(hdr), size)
	wr.started = true
	n, err := wr.w.Write(buf)
	if err != nil || n != size {
		if err == nil {
			err = io.ErrShortWrite
		}

		return n, errs.WriteFail("write section header", size, n, err)
	}

	return n, nil
}

// WriteData appends whole items at the cursor without any navigation.
//
// Returns:
//   - int: number of items written
func (wr *Writer) WriteData(buf []byte) (int, error) {
	if wr.closed {
		return 0, errs.ErrClosed
	}

	size := int(wr.itemSize())
	items := len(buf) / size
	if items == 0 {
		return 0, nil
	}

	wr.started = true
	n, err := wr.w.Write(buf[:items*size])
	if err != nil || n != items*size {
		if err == nil {
			err = io.ErrShortWrite
		}
		wr.accumulate(buf[:(n/size)*size])

		return n / size, errs.WriteFail("write data", items, n/size, err)
	}
	wr.accumulate(buf[:items*size])

	return items, nil
}

func (wr *Writer) accumulate(data []byte) {
	if wr.header.Mode != format.ModeFloat32 || len(data) == 0 {
		return
	}

	values, cleanup := pool.GetFloat32Slice(len(data) / 4)
	defer cleanup()

	encoding.Decode(wr.header.ByteOrder, values, data)
	wr.acc.Update(values)
}
