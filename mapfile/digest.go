package mapfile

import (
	"fmt"
	"io"

	"github.com/arloliu/ccp4map/errs"
	"github.com/arloliu/ccp4map/internal/hash"
	"github.com/arloliu/ccp4map/internal/pool"
)

// SectionDigest returns the xxHash64 of section i's payload. The cursor is
// left at the start of the following block.
//
// Returns:
//   - uint64: digest of the payload bytes as stored
//   - error: ErrParam if i is outside [0, SectionCount())
func (rd *Reader) SectionDigest(i int64) (uint64, error) {
	if i < 0 || i >= rd.layout.Sections {
		return 0, fmt.Errorf("%w: section %d outside [0, %d)", errs.ErrParam, i, rd.layout.Sections)
	}
	if _, err := rd.SeekSection(i, io.SeekStart); err != nil {
		return 0, err
	}

	buf := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(buf)
	buf.ExtendOrGrow(int(rd.layout.SectionSize))

	if err := rd.ReadSection(buf.Bytes()); err != nil {
		return 0, err
	}

	return hash.Sum(buf.Bytes()), nil
}

// DataDigest returns the xxHash64 of every section payload in order, local
// headers excluded. Two maps holding the same items in the same byte order
// have equal digests regardless of their symmetry blocks.
//
// The cursor is left after the last section.
func (rd *Reader) DataDigest() (uint64, error) {
	if _, err := rd.SeekSection(0, io.SeekStart); err != nil {
		return 0, err
	}

	buf := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(buf)
	buf.ExtendOrGrow(int(rd.layout.SectionSize))

	d := hash.NewDigest()
	for i := range rd.layout.Sections {
		if err := rd.ReadSection(buf.Bytes()); err != nil {
			return 0, fmt.Errorf("section %d: %w", i, err)
		}
		_, _ = d.Write(buf.Bytes())
	}
	rd.log.Debug("data digest", "sections", rd.layout.Sections, "bytes", d.Len())

	return d.Sum64(), nil
}
