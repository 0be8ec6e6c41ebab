package section

import "github.com/arloliu/ccp4map/format"

// Layout describes where things live past the primary header.
//
// BlockSize is always SectionSize + HeaderSize, and DataOffset is always
// SymopOffset + SymopSize. Every block holds the row payload of one section
// followed by the optional local header.
type Layout struct {
	SymopOffset int64 // start of the symmetry block, always HeaderSize
	SymopSize   int64 // byte size of the symmetry block
	DataOffset  int64 // start of section 0
	RowSize     int64 // bytes per row
	SectionSize int64 // bytes of row payload per section
	HeaderSize  int64 // bytes of local header per section
	BlockSize   int64 // stride between sections
	Sections    int64 // number of sections
}

// Resize recomputes the row, section and block sizes for new dimensions or
// a new data mode.
func (l *Layout) Resize(dims [3]int32, mode format.DataMode) {
	item := int64(mode.ItemSize())
	l.RowSize = max(0, int64(dims[0])) * item
	l.SectionSize = l.RowSize * max(0, int64(dims[1]))
	l.BlockSize = l.SectionSize + l.HeaderSize
	l.DataOffset = l.SymopOffset + l.SymopSize
}

// SetLocalHeaderSize changes the local header size and the block stride.
func (l *Layout) SetLocalHeaderSize(n int64) {
	l.HeaderSize = n
	l.BlockSize = l.SectionSize + l.HeaderSize
}

// GrowSymmetry extends the symmetry block by n bytes and moves the data area.
func (l *Layout) GrowSymmetry(n int64) {
	l.SymopSize += n
	l.DataOffset = l.SymopOffset + l.SymopSize
}

// Symops returns the number of 80-byte symmetry records.
func (l Layout) Symops() int64 {
	return l.SymopSize / SymopSize
}

// Decompose splits a stream position into a section index and the byte
// remainder inside that block. Both use truncating division, so positions
// before DataOffset give a negative index or remainder.
func (l Layout) Decompose(pos int64) (section, rem int64) {
	if l.BlockSize == 0 {
		return 0, pos - l.DataOffset
	}
	rel := pos - l.DataOffset

	return rel / l.BlockSize, rel % l.BlockSize
}

// SectionOffset returns the stream position of section i.
func (l Layout) SectionOffset(i int64) int64 {
	return l.DataOffset + i*l.BlockSize
}

// FileSize returns the size of a file holding Sections complete blocks.
func (l Layout) FileSize() int64 {
	return l.SectionOffset(l.Sections)
}

// SectionsIn returns the number of complete blocks a file of the given length
// holds.
func (l Layout) SectionsIn(length int64) int64 {
	if l.BlockSize <= 0 || length <= l.DataOffset {
		return 0
	}

	return (length - l.DataOffset) / l.BlockSize
}
