package encoding

import (
	"github.com/arloliu/ccp4map/endian"
	"github.com/arloliu/ccp4map/internal/pool"
)

// ItemEncoder accumulates items of type T in their on-disk representation.
//
// The encoder borrows a pooled buffer sized for a whole section, so a typed
// section write encodes into reused memory. Call Finish to return the buffer.
type ItemEncoder[T Item] struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	size   int
}

// NewItemEncoder creates an encoder writing in engine's byte order.
func NewItemEncoder[T Item](engine endian.EndianEngine) *ItemEncoder[T] {
	return &ItemEncoder[T]{
		engine: engine,
		size:   ModeOf[T]().ItemSize(),
		buf:    pool.GetSectionBuffer(),
	}
}

// WriteSlice encodes a slice of items with a single buffer growth.
//
// Panics if Finish() has been called (nil buffer).
func (e *ItemEncoder[T]) WriteSlice(items []T) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}
	if len(items) == 0 {
		return
	}

	start := e.buf.Len()
	e.buf.ExtendOrGrow(len(items) * e.size)
	Encode(e.engine, e.buf.Slice(start, start+len(items)*e.size), items)
}

// Bytes returns the encoded items. The slice is valid until the next write
// or Finish.
func (e *ItemEncoder[T]) Bytes() []byte {
	if e.buf == nil {
		panic("encoder already finished - cannot access bytes after Finish()")
	}

	return e.buf.Bytes()
}

// ItemSize returns the encoded size of one item.
func (e *ItemEncoder[T]) ItemSize() int {
	return e.size
}

// Finish returns the buffer to the pool. The encoder is unusable afterwards.
func (e *ItemEncoder[T]) Finish() {
	if e.buf != nil {
		pool.PutSectionBuffer(e.buf)
		e.buf = nil
	}
}

// ItemDecoder decodes items of type T from on-disk bytes. It is stateless
// and passed by value.
type ItemDecoder[T Item] struct {
	engine endian.EndianEngine
}

// NewItemDecoder creates a decoder reading engine's byte order.
func NewItemDecoder[T Item](engine endian.EndianEngine) ItemDecoder[T] {
	return ItemDecoder[T]{engine: engine}
}

// DecodeAll decodes data into dst, which must hold len(data)/itemSize items.
//
// Returns:
//   - int: number of items decoded
func (d ItemDecoder[T]) DecodeAll(dst []T, data []byte) int {
	return Decode(d.engine, dst, data)
}
