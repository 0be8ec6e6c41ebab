package mapfile

import (
	"fmt"
	"io"

	"github.com/arloliu/ccp4map/errs"
)

// seekSection moves the cursor to the start of a section block.
//
// bounded applies the read-mode range checks; writers seek unchecked and
// rely on append-only use.
//
// Returns:
//   - int64: the section index the cursor now lies in
//   - error: ErrParam if the index is out of range
func (f *file) seekSection(sec int64, whence int, bounded bool) (int64, error) {
	if f.closed {
		return 0, errs.ErrClosed
	}

	l := f.layout
	var (
		pos int64
		err error
	)

	switch whence {
	case io.SeekStart:
		if bounded && (sec < 0 || sec > l.Sections) {
			return 0, fmt.Errorf("%w: section %d outside [0, %d]", errs.ErrParam, sec, l.Sections)
		}
		pos, err = f.seek(l.SectionOffset(sec), io.SeekStart)
	case io.SeekEnd:
		if bounded && (sec > 0 || -sec > l.Sections) {
			return 0, fmt.Errorf("%w: section %d from end of %d", errs.ErrParam, sec, l.Sections)
		}
		pos, err = f.seek(sec*l.BlockSize, io.SeekEnd)
	case io.SeekCurrent:
		cur, terr := f.seeker.Seek(0, io.SeekCurrent)
		if terr != nil {
			return 0, terr
		}
		q, r := l.Decompose(cur)
		if bounded && (q+sec < 0 || q+sec >= l.Sections) {
			return 0, fmt.Errorf("%w: section %d%+d outside [0, %d)", errs.ErrParam, q, sec, l.Sections)
		}

		pos, err = f.seek(sec*l.BlockSize-r, io.SeekCurrent)
	default:
		return 0, fmt.Errorf("%w: whence %d", errs.ErrParam, whence)
	}
	if err != nil {
		return 0, err
	}

	q, _ := l.Decompose(pos)

	return q, nil
}

// seekRow moves the cursor to a row of the section it currently lies in.
// A cursor before the data area addresses section 0.
//
// Returns:
//   - int64: the row index the cursor now lies in
//   - error: ErrParam if the row is out of range
func (f *file) seekRow(row int64, whence int) (int64, error) {
	if f.closed {
		return 0, errs.ErrClosed
	}

	l := f.layout
	rows := int64(f.header.Dims[1])
	if l.RowSize == 0 || rows <= 0 {
		return 0, fmt.Errorf("%w: map has no rows", errs.ErrParam)
	}

	cur, err := f.seeker.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	q, r := l.Decompose(cur)
	if q < 0 || r < 0 {
		q, r = 0, 0
		if _, err := f.seek(l.DataOffset, io.SeekStart); err != nil {
			return 0, err
		}
	}
	base := l.SectionOffset(q)

	var pos int64
	switch whence {
	case io.SeekStart:
		if row < 0 || row >= rows {
			return 0, fmt.Errorf("%w: row %d outside [0, %d)", errs.ErrParam, row, rows)
		}
		pos, err = f.seek(base+row*l.RowSize, io.SeekStart)
	case io.SeekEnd:
		if row >= 0 || -row > rows {
			return 0, fmt.Errorf("%w: row %d from end of %d", errs.ErrParam, row, rows)
		}
		pos, err = f.seek(base+l.SectionSize+row*l.RowSize, io.SeekStart)
	case io.SeekCurrent:
		rq, rr := r/l.RowSize, r%l.RowSize
		if rq+row < 0 || rq+row >= rows {
			return 0, fmt.Errorf("%w: row %d%+d outside [0, %d)", errs.ErrParam, rq, row, rows)
		}

		pos, err = f.seek(row*l.RowSize-rr, io.SeekCurrent)
	default:
		return 0, fmt.Errorf("%w: whence %d", errs.ErrParam, whence)
	}
	if err != nil {
		return 0, err
	}

	return (pos - base) / l.RowSize, nil
}

// seekData is a raw item-addressed seek relative to the start of the file,
// the current position or the end of the file.
//
// Returns:
//   - int64: the new byte offset from the start of the file
func (f *file) seekData(items int64, whence int) (int64, error) {
	if f.closed {
		return 0, errs.ErrClosed
	}
	if whence != io.SeekStart && whence != io.SeekCurrent && whence != io.SeekEnd {
		return 0, fmt.Errorf("%w: whence %d", errs.ErrParam, whence)
	}

	return f.seek(items*f.itemSize(), whence)
}

// normalizeSection snaps the cursor to the start of the section payload it
// lies in, or to the next block when it lies in a local header.
//
// Returns:
//   - int64: the section index the cursor now addresses
func (f *file) normalizeSection() (int64, error) {
	l := f.layout
	cur, err := f.seeker.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}

	q, r := l.Decompose(cur)
	switch {
	case q < 0 || r < 0:
		_, err = f.seek(l.DataOffset, io.SeekStart)
		q = 0
	case r > 0 && r < l.SectionSize:
		_, err = f.seek(-r, io.SeekCurrent)
	case r > 0 && r >= l.SectionSize:
		_, err = f.seek(l.BlockSize-r, io.SeekCurrent)
		q++
	}

	return q, err
}

// normalizeRow snaps the cursor to the start of the row it lies in, or to the
// next block when it lies past the last row of a section.
//
// Returns:
//   - int64: the section index the cursor now addresses
func (f *file) normalizeRow() (int64, error) {
	l := f.layout
	cur, err := f.seeker.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}

	q, r := l.Decompose(cur)
	switch {
	case q < 0 || r < 0:
		_, err = f.seek(l.DataOffset, io.SeekStart)
		q = 0
	case r/l.RowSize >= int64(f.header.Dims[1]):
		_, err = f.seek(l.BlockSize-r, io.SeekCurrent)
		q++
	case r%l.RowSize != 0:
		_, err = f.seek(-(r % l.RowSize), io.SeekCurrent)
	}

	return q, err
}

// readFull fills buf from the stream.
//
// Returns:
//   - error: io.EOF if nothing could be read at the end of the stream, a
//     *errs.TransferError counting whole items for a short read
func readFull(r io.Reader, op string, buf []byte, itemSize int) error {
	n, err := io.ReadFull(r, buf)
	if err == nil {
		return nil
	}
	if n == 0 && err == io.EOF {
		return io.EOF
	}

	return errs.ReadFail(op, len(buf)/itemSize, n/itemSize, err)
}

// writeFull writes buf to the stream.
//
// Returns:
//   - error: a *errs.TransferError counting whole items for a short write
func writeFull(w io.Writer, op string, buf []byte, itemSize int) error {
	n, err := w.Write(buf)
	if err == nil && n == len(buf) {
		return nil
	}
	if err == nil {
		err = io.ErrShortWrite
	}

	return errs.WriteFail(op, len(buf)/itemSize, n/itemSize, err)
}
