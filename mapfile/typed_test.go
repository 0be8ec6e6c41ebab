package mapfile

import (
	"path/filepath"
	"testing"

	"github.com/arloliu/ccp4map/encoding"
	"github.com/arloliu/ccp4map/errs"
	"github.com/arloliu/ccp4map/format"
	"github.com/stretchr/testify/require"
)

func roundTripSection[T encoding.Item](t *testing.T, values []T, opts ...Option) {
	t.Helper()

	dims := [3]int32{int32(len(values)), 1, 1}
	path := filepath.Join(t.TempDir(), "typed.map")

	opts = append(opts, WithDataMode(encoding.ModeOf[T]()))
	wr, err := CreateWriter(path, opts...)
	require.NoError(t, err)
	require.NoError(t, wr.SetDims(dims))
	require.NoError(t, WriteSectionOf(wr, values))
	require.NoError(t, wr.Close())

	rd := openTestMap(t, path)
	require.Equal(t, encoding.ModeOf[T](), rd.DataMode())
	require.Equal(t, int64(len(values)*rd.DataMode().ItemSize()), rd.Layout().SectionSize)

	got := make([]T, len(values))
	require.NoError(t, ReadSectionOf(rd, got))
	require.Equal(t, values, got)
}

func TestTypedSection(t *testing.T) {
	for _, order := range []struct {
		name string
		opt  Option
	}{
		{"Little endian", WithLittleEndian()},
		{"Big endian", WithBigEndian()},
	} {
		t.Run(order.name, func(t *testing.T) {
			t.Run("Int8", func(t *testing.T) {
				roundTripSection(t, []int8{-128, -1, 0, 1, 127}, order.opt)
			})
			t.Run("Int16", func(t *testing.T) {
				roundTripSection(t, []int16{-32768, -2, 0, 300, 32767}, order.opt)
			})
			t.Run("Float32", func(t *testing.T) {
				roundTripSection(t, []float32{-1.5, 0, 3.25, 1e20}, order.opt)
			})
			t.Run("Complex16", func(t *testing.T) {
				roundTripSection(t, []encoding.Complex16{{Re: 1, Im: -1}, {Re: -300, Im: 300}}, order.opt)
			})
			t.Run("Complex64", func(t *testing.T) {
				roundTripSection(t, []complex64{complex(1.5, -2), complex(0, 4)}, order.opt)
			})
			t.Run("Int32", func(t *testing.T) {
				roundTripSection(t, []int32{-1 << 31, -7, 0, 1<<31 - 1}, order.opt)
			})
		})
	}
}

func TestTypedRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.map")
	wr, err := CreateWriter(path, WithDataMode(format.ModeInt16))
	require.NoError(t, err)
	require.NoError(t, wr.SetDims([3]int32{2, 3, 0}))

	for i := range int16(6) {
		require.NoError(t, WriteRowOf(wr, []int16{10 * i, 10*i + 1}))
	}
	require.Equal(t, int64(2), wr.SectionCount())
	require.NoError(t, wr.Close())

	rd := openTestMap(t, path)
	row := make([]int16, 2)
	for i := range int16(6) {
		require.NoError(t, ReadRowOf(rd, row))
		require.Equal(t, []int16{10 * i, 10*i + 1}, row)
	}
}

func TestTyped_Mismatch(t *testing.T) {
	path := writeTestMap(t, [3]int32{2, 2, 1})
	rd := openTestMap(t, path)

	require.ErrorIs(t, ReadSectionOf(rd, make([]int16, 4)), errs.ErrDataModeMismatch)
	require.ErrorIs(t, ReadRowOf(rd, make([]complex64, 2)), errs.ErrDataModeMismatch)

	wr, err := CreateWriter(filepath.Join(t.TempDir(), "mismatch.map"))
	require.NoError(t, err)
	defer wr.Close()

	require.ErrorIs(t, WriteSectionOf(wr, []int32{1, 2, 3, 4}), errs.ErrDataModeMismatch)
	require.ErrorIs(t, WriteSectionOf(wr, []float32{1}), errs.ErrParam)

	require.NoError(t, wr.SetDims([3]int32{2, 2, 0}))
	require.ErrorIs(t, WriteSectionOf(wr, []float32{1, 2, 3}), errs.ErrNullBuffer)
	require.ErrorIs(t, WriteRowOf(wr, []float32{1}), errs.ErrNullBuffer)
	require.False(t, wr.Frozen())
}
