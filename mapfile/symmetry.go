package mapfile

import (
	"fmt"
	"io"

	"github.com/arloliu/ccp4map/errs"
	"github.com/arloliu/ccp4map/section"
)

// SeekSymop positions the cursor at a symmetry operator record.
//
// whence is io.SeekStart (0 ≤ i ≤ NumSymops), io.SeekEnd
// (-NumSymops ≤ i ≤ 0) or io.SeekCurrent, which requires the cursor to lie
// on an existing record and the target to be one too.
//
// Returns:
//   - int64: the record index the cursor now lies at
//   - error: ErrParam if the target is out of range
func (rd *Reader) SeekSymop(i int64, whence int) (int64, error) {
	if rd.closed {
		return 0, errs.ErrClosed
	}

	l := rd.layout
	n := l.Symops()
	var target int64

	switch whence {
	case io.SeekStart:
		if i < 0 || i > n {
			return 0, fmt.Errorf("%w: symop %d outside [0, %d]", errs.ErrParam, i, n)
		}
		target = l.SymopOffset + i*section.SymopSize
	case io.SeekEnd:
		if i > 0 || -i > n {
			return 0, fmt.Errorf("%w: symop %d from end of %d", errs.ErrParam, i, n)
		}
		target = l.DataOffset + i*section.SymopSize
	case io.SeekCurrent:
		cur, err := rd.r.Seek(0, io.SeekCurrent)
		if err != nil {
			return 0, err
		}
		q := (cur - l.SymopOffset) / section.SymopSize
		if cur < l.SymopOffset || q >= n || q+i < 0 || q+i >= n {
			return 0, fmt.Errorf("%w: symop %d%+d outside [0, %d)", errs.ErrParam, q, i, n)
		}
		target = l.SymopOffset + (q+i)*section.SymopSize
	default:
		return 0, fmt.Errorf("%w: whence %d", errs.ErrParam, whence)
	}

	pos, err := rd.seek(target, io.SeekStart)
	if err != nil {
		return 0, err
	}

	return (pos - l.SymopOffset) / section.SymopSize, nil
}

// Symop reads the 80-byte record at the cursor and advances past it. The
// record is returned as stored, padding included. A cursor at the end of
// the block (the start of the data) reports io.EOF without reading.
//
// Returns:
//   - string: the record
//   - error: ErrNoSymmetry for a map without operators, io.EOF at the end of
//     the block, ErrSymmetry when the cursor lies outside the block
func (rd *Reader) Symop() (string, error) {
	if rd.closed {
		return "", errs.ErrClosed
	}

	l := rd.layout
	if l.SymopSize == 0 {
		return "", errs.ErrNoSymmetry
	}

	cur, err := rd.r.Seek(0, io.SeekCurrent)
	if err != nil {
		return "", err
	}
	switch {
	case cur == l.DataOffset:
		return "", io.EOF
	case cur < l.SymopOffset || cur > l.DataOffset:
		return "", fmt.Errorf("%w: cursor at %d, block is [%d, %d)", errs.ErrSymmetry, cur, l.SymopOffset, l.DataOffset)
	}

	var rec [section.SymopSize]byte
	if err := readFull(rd.r, "read symop", rec[:], 1); err != nil {
		return "", err
	}

	return string(rec[:]), nil
}

// Symops returns every symmetry operator record. The cursor is left
// unchanged.
func (rd *Reader) Symops() ([]string, error) {
	if rd.closed {
		return nil, errs.ErrClosed
	}

	n := rd.layout.Symops()
	if n == 0 {
		return nil, nil
	}

	cur, err := rd.r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	if _, err := rd.SeekSymop(0, io.SeekStart); err != nil {
		return nil, err
	}

	ops := make([]string, 0, n)
	for range n {
		op, err := rd.Symop()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	if _, err := rd.seek(cur, io.SeekStart); err != nil {
		return nil, err
	}

	return ops, nil
}

// AppendSymop appends an 80-byte symmetry operator record, truncating or
// space-padding op. The data area moves down by one record.
//
// Returns:
//   - error: ErrGeometryFrozen once data has been written
func (wr *Writer) AppendSymop(op string) error {
	if err := wr.checkGeometry("symmetry block"); err != nil {
		return err
	}

	if _, err := wr.seek(wr.layout.DataOffset, io.SeekStart); err != nil {
		return err
	}
	if err := writeFull(wr.w, "append symop", section.PadRecord(op, section.SymopSize), 1); err != nil {
		return err
	}

	wr.layout.GrowSymmetry(section.SymopSize)
	wr.header.SymopSize += section.SymopSize

	return nil
}
