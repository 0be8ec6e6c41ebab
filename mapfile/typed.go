package mapfile

import (
	"fmt"

	"github.com/arloliu/ccp4map/encoding"
	"github.com/arloliu/ccp4map/errs"
	"github.com/arloliu/ccp4map/format"
	"github.com/arloliu/ccp4map/internal/pool"
)

// ReadSectionOf reads the section at the cursor and decodes it into dst.
//
// T must be the Go type of the map's data mode (see package encoding).
//
// Parameters:
//   - rd: Reader to read from
//   - dst: Destination holding at least Dims()[0]*Dims()[1] items
//
// Returns:
//   - error: ErrDataModeMismatch for a wrong T, otherwise as Reader.ReadSection
func ReadSectionOf[T encoding.Item](rd *Reader, dst []T) error {
	size, err := typedSize[T](rd.DataMode(), rd.layout.SectionSize, len(dst))
	if err != nil {
		return err
	}

	buf := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(buf)
	buf.ExtendOrGrow(size)

	if err := rd.ReadSection(buf.Bytes()); err != nil {
		return err
	}
	encoding.NewItemDecoder[T](rd.ByteOrder()).DecodeAll(dst, buf.Bytes())

	return nil
}

// ReadRowOf reads the row at the cursor and decodes it into dst, which must
// hold at least Dims()[0] items.
func ReadRowOf[T encoding.Item](rd *Reader, dst []T) error {
	size, err := typedSize[T](rd.DataMode(), rd.layout.RowSize, len(dst))
	if err != nil {
		return err
	}

	buf := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(buf)
	buf.ExtendOrGrow(size)

	if err := rd.ReadRow(buf.Bytes()); err != nil {
		return err
	}
	encoding.NewItemDecoder[T](rd.ByteOrder()).DecodeAll(dst, buf.Bytes())

	return nil
}

// WriteSectionOf encodes src in the writer's byte order and appends it as
// one section.
//
// Parameters:
//   - wr: Writer to append to
//   - src: At least Dims()[0]*Dims()[1] items; extra items are ignored
//
// Returns:
//   - error: ErrDataModeMismatch for a wrong T, otherwise as Writer.WriteSection
func WriteSectionOf[T encoding.Item](wr *Writer, src []T) error {
	size, err := typedSize[T](wr.DataMode(), wr.layout.SectionSize, len(src))
	if err != nil {
		return err
	}

	enc := encoding.NewItemEncoder[T](wr.ByteOrder())
	defer enc.Finish()
	enc.WriteSlice(src[:size/enc.ItemSize()])

	return wr.WriteSection(enc.Bytes())
}

// WriteRowOf encodes src in the writer's byte order and appends it as one row.
func WriteRowOf[T encoding.Item](wr *Writer, src []T) error {
	size, err := typedSize[T](wr.DataMode(), wr.layout.RowSize, len(src))
	if err != nil {
		return err
	}

	enc := encoding.NewItemEncoder[T](wr.ByteOrder())
	defer enc.Finish()
	enc.WriteSlice(src[:size/enc.ItemSize()])

	return wr.WriteRow(enc.Bytes())
}

// typedSize checks T against the data mode and n items against a transfer of
// size bytes.
func typedSize[T encoding.Item](mode format.DataMode, size int64, n int) (int, error) {
	if want := encoding.ModeOf[T](); want != mode {
		return 0, fmt.Errorf("%w: %s items for a %s map", errs.ErrDataModeMismatch, want, mode)
	}
	if size == 0 {
		return 0, fmt.Errorf("%w: map has no data dimensions", errs.ErrParam)
	}

	items := size / int64(mode.ItemSize())
	if int64(n) < items {
		return 0, fmt.Errorf("%w: need %d items, got %d", errs.ErrNullBuffer, items, n)
	}

	return int(size), nil
}
