package encoding

import (
	"testing"

	"github.com/arloliu/ccp4map/endian"
	"github.com/stretchr/testify/require"
)

func TestItemEncoder(t *testing.T) {
	engine := endian.GetBigEndianEngine()

	t.Run("WriteSlice appends", func(t *testing.T) {
		enc := NewItemEncoder[int16](engine)
		defer enc.Finish()

		enc.WriteSlice([]int16{1})
		enc.WriteSlice([]int16{2, 3})
		enc.WriteSlice(nil)

		require.Equal(t, 2, enc.ItemSize())
		require.Equal(t, []byte{0, 1, 0, 2, 0, 3}, enc.Bytes())
	})

	t.Run("Large section", func(t *testing.T) {
		enc := NewItemEncoder[complex64](engine)
		defer enc.Finish()

		values := make([]complex64, 10000)
		for i := range values {
			values[i] = complex(float32(i), -float32(i))
		}
		enc.WriteSlice(values)
		require.Len(t, enc.Bytes(), 80000)

		got := make([]complex64, len(values))
		require.Equal(t, len(values), NewItemDecoder[complex64](engine).DecodeAll(got, enc.Bytes()))
		require.Equal(t, values, got)
	})

	t.Run("Use after Finish panics", func(t *testing.T) {
		enc := NewItemEncoder[int8](engine)
		enc.Finish()
		enc.Finish()

		require.Panics(t, func() { enc.WriteSlice([]int8{1}) })
		require.Panics(t, func() { _ = enc.Bytes() })
	})
}

func TestItemDecoder(t *testing.T) {
	data := []byte{1, 0, 0, 0, 2, 0, 0, 0, 0xff, 0xff, 0xff, 0xff}

	t.Run("Little endian", func(t *testing.T) {
		got := make([]int32, 3)
		n := NewItemDecoder[int32](endian.GetLittleEndianEngine()).DecodeAll(got, data)
		require.Equal(t, 3, n)
		require.Equal(t, []int32{1, 2, -1}, got)
	})

	t.Run("Big endian", func(t *testing.T) {
		got := make([]int32, 3)
		NewItemDecoder[int32](endian.GetBigEndianEngine()).DecodeAll(got, data)
		require.Equal(t, []int32{0x01000000, 0x02000000, -1}, got)
	})
}
