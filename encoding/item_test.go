package encoding

import (
	"slices"
	"testing"

	"github.com/arloliu/ccp4map/endian"
	"github.com/arloliu/ccp4map/format"
	"github.com/stretchr/testify/require"
)

func TestModeOf(t *testing.T) {
	require.Equal(t, format.ModeInt8, ModeOf[int8]())
	require.Equal(t, format.ModeInt16, ModeOf[int16]())
	require.Equal(t, format.ModeFloat32, ModeOf[float32]())
	require.Equal(t, format.ModeComplex16, ModeOf[Complex16]())
	require.Equal(t, format.ModeComplex32, ModeOf[complex64]())
	require.Equal(t, format.ModeInt32, ModeOf[int32]())
}

func TestEncode(t *testing.T) {
	le := endian.GetLittleEndianEngine()
	be := endian.GetBigEndianEngine()

	t.Run("Int16", func(t *testing.T) {
		dst := make([]byte, 4)
		require.Equal(t, 2, Encode(le, dst, []int16{0x0102, -2}))
		require.Equal(t, []byte{0x02, 0x01, 0xfe, 0xff}, dst)

		require.Equal(t, 2, Encode(be, dst, []int16{0x0102, -2}))
		require.Equal(t, []byte{0x01, 0x02, 0xff, 0xfe}, dst)
	})

	t.Run("Float32", func(t *testing.T) {
		dst := make([]byte, 4)
		Encode(be, dst, []float32{1})
		require.Equal(t, []byte{0x3f, 0x80, 0, 0}, dst)
	})

	t.Run("Complex16 real first", func(t *testing.T) {
		dst := make([]byte, 4)
		Encode(le, dst, []Complex16{{Re: 1, Im: 2}})
		require.Equal(t, []byte{1, 0, 2, 0}, dst)
	})

	t.Run("Complex64 real first", func(t *testing.T) {
		dst := make([]byte, 8)
		Encode(be, dst, []complex64{complex(1, -2)})
		require.Equal(t, []byte{0x3f, 0x80, 0, 0, 0xc0, 0, 0, 0}, dst)
	})

	t.Run("Limited by destination", func(t *testing.T) {
		dst := make([]byte, 9)
		require.Equal(t, 2, Encode(le, dst, []int32{1, 2, 3}))
		require.Equal(t, byte(0), dst[8])
	})

	t.Run("Int8", func(t *testing.T) {
		dst := make([]byte, 3)
		require.Equal(t, 3, Encode(le, dst, []int8{-1, 0, 127}))
		require.Equal(t, []byte{0xff, 0, 0x7f}, dst)
	})
}

func TestDecode(t *testing.T) {
	le := endian.GetLittleEndianEngine()

	t.Run("Limited by source", func(t *testing.T) {
		dst := make([]int16, 4)
		require.Equal(t, 2, Decode(le, dst, []byte{1, 0, 2, 0, 3}))
		require.Equal(t, []int16{1, 2, 0, 0}, dst)
	})

	t.Run("Limited by destination", func(t *testing.T) {
		dst := make([]int8, 2)
		require.Equal(t, 2, Decode(le, dst, []byte{0xff, 1, 2}))
		require.Equal(t, []int8{-1, 1}, dst)
	})

	t.Run("Inverse of Encode", func(t *testing.T) {
		for _, engine := range []endian.EndianEngine{le, endian.GetBigEndianEngine()} {
			src := []complex64{complex(0.5, 1), complex(-3, 1e-3)}
			buf := make([]byte, 16)
			Encode(engine, buf, src)

			got := make([]complex64, 2)
			require.Equal(t, 2, Decode(engine, got, buf))
			require.Equal(t, src, got)
		}
	})
}

func TestSwapWords(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wordSize int
		want     []byte
	}{
		{"Bytes unchanged", []byte{1, 2, 3}, 1, []byte{1, 2, 3}},
		{"Half words", []byte{1, 2, 3, 4}, 2, []byte{2, 1, 4, 3}},
		{"Words", []byte{1, 2, 3, 4, 5, 6, 7, 8}, 4, []byte{4, 3, 2, 1, 8, 7, 6, 5}},
		{"Trailing partial word", []byte{1, 2, 3, 4, 5}, 4, []byte{4, 3, 2, 1, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := slices.Clone(tt.data)
			SwapWords(data, tt.wordSize)
			require.Equal(t, tt.want, data)
		})
	}

	t.Run("Converts byte order", func(t *testing.T) {
		values := []float32{1.5, -2, 1e10}
		data := make([]byte, 12)
		Encode(endian.GetLittleEndianEngine(), data, values)

		SwapWords(data, format.ModeFloat32.WordSize())
		got := make([]float32, 3)
		Decode(endian.GetBigEndianEngine(), got, data)
		require.Equal(t, values, got)
	})
}
