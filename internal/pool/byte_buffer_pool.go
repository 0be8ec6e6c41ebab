package pool

import "sync"

// Initial and maximum retained capacities. Section buffers hold one encoded
// section; archive buffers hold a whole map while it is (de)compressed.
const (
	SectionBufferDefaultSize  = 1024 * 16        // 16KiB
	SectionBufferMaxThreshold = 1024 * 1024 * 4  // 4MiB
	ArchiveBufferDefaultSize  = 1024 * 1024      // 1MiB
	ArchiveBufferMaxThreshold = 1024 * 1024 * 64 // 64MiB
)

// ByteBuffer is a reusable byte slice. It implements io.Writer so stream
// codecs can drain into it.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer returns an empty buffer with the given capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the buffered bytes.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer and keeps its memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Slice returns B[start:end]. end may reach past Len() up to the capacity.
func (bb *ByteBuffer) Slice(start, end int) []byte {
	if start < 0 || end < start || end > cap(bb.B) {
		panic("pool: slice bounds out of range")
	}

	return bb.B[start:end]
}

// ExtendOrGrow lengthens the buffer by n bytes, reallocating when the spare
// capacity is too small. The new bytes are not zeroed.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	size := len(bb.B) + n
	if size > cap(bb.B) {
		bb.Grow(n)
	}
	bb.B = bb.B[:size]
}

// Grow makes room for at least n more bytes. Buffers up to four section
// sizes grow by one section size; larger ones grow by a quarter.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	step := SectionBufferDefaultSize
	if cap(bb.B) > 4*SectionBufferDefaultSize {
		step = cap(bb.B) / 4
	}

	grown := make([]byte, len(bb.B), len(bb.B)+max(step, n))
	copy(grown, bb.B)
	bb.B = grown
}

// Write appends data.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ByteBufferPool recycles ByteBuffers. Buffers whose capacity exceeds
// maxThreshold are dropped on Put instead of being kept alive.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int // 0 keeps every buffer
}

// NewByteBufferPool returns a pool whose fresh buffers have capacity
// defaultSize.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get returns an empty buffer.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put resets bb and returns it to the pool. nil is ignored.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	sectionPool = NewByteBufferPool(SectionBufferDefaultSize, SectionBufferMaxThreshold)
	archivePool = NewByteBufferPool(ArchiveBufferDefaultSize, ArchiveBufferMaxThreshold)
)

// GetSectionBuffer returns a buffer sized for one section.
func GetSectionBuffer() *ByteBuffer { return sectionPool.Get() }

// PutSectionBuffer recycles a buffer from GetSectionBuffer.
func PutSectionBuffer(bb *ByteBuffer) { sectionPool.Put(bb) }

// GetArchiveBuffer returns a buffer sized for a whole compressed map.
func GetArchiveBuffer() *ByteBuffer { return archivePool.Get() }

// PutArchiveBuffer recycles a buffer from GetArchiveBuffer.
func PutArchiveBuffer(bb *ByteBuffer) { archivePool.Put(bb) }
