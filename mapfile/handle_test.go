package mapfile

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/arloliu/ccp4map/errs"
	"github.com/arloliu/ccp4map/format"
	"github.com/arloliu/ccp4map/section"
	"github.com/stretchr/testify/require"
)

func TestOpenFile(t *testing.T) {
	existing := writeTestMap(t, [3]int32{2, 2, 2})

	t.Run("Read returns reader", func(t *testing.T) {
		h, err := OpenFile(existing, format.OpenRead)
		require.NoError(t, err)
		defer h.Close()

		_, ok := h.(*Reader)
		require.True(t, ok)
		require.Equal(t, [3]int32{2, 2, 2}, h.Dims())
	})

	t.Run("Read-write returns reader", func(t *testing.T) {
		h, err := OpenFile(existing, format.OpenReadWrite)
		require.NoError(t, err)
		defer h.Close()

		_, ok := h.(*Reader)
		require.True(t, ok)
	})

	t.Run("Write returns writer", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "new.map")
		h, err := OpenFile(path, format.OpenWrite|format.OpenCreate)
		require.NoError(t, err)

		wr, ok := h.(*Writer)
		require.True(t, ok)
		require.NoError(t, wr.Close())
	})

	t.Run("Write without create", func(t *testing.T) {
		_, err := OpenFile(filepath.Join(t.TempDir(), "missing.map"), format.OpenWrite)
		require.ErrorIs(t, err, errs.ErrCantOpenFile)
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := OpenFile(filepath.Join(t.TempDir(), "missing.map"), format.OpenRead)
		require.ErrorIs(t, err, errs.ErrCantOpenFile)
	})

	t.Run("No access mode", func(t *testing.T) {
		_, err := OpenFile(existing, format.OpenCreate)
		require.ErrorIs(t, err, errs.ErrCantOpenFile)
	})

	t.Run("Not a map", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "text.map")
		require.NoError(t, os.WriteFile(path, []byte("not a map"), 0o600))

		_, err := OpenFile(path, format.OpenRead)
		require.ErrorIs(t, err, errs.ErrNoHeader)
	})

	t.Run("Truncate", func(t *testing.T) {
		path := writeTestMap(t, [3]int32{2, 2, 3})
		h, err := OpenFile(path, format.OpenWrite|format.OpenTruncate)
		require.NoError(t, err)
		require.NoError(t, h.Close())

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, int64(section.HeaderSize), info.Size())
	})

	t.Run("Append", func(t *testing.T) {
		dims := [3]int32{2, 2, 3}
		path := writeTestMap(t, dims)
		h, err := OpenFile(path, format.OpenWrite|format.OpenAppend|format.OpenTruncate)
		require.NoError(t, err)

		wr, ok := h.(*Writer)
		require.True(t, ok)
		require.Equal(t, dims, wr.Dims())
		require.Equal(t, int64(3), wr.SectionCount())
		require.True(t, wr.Frozen())
		require.ErrorIs(t, wr.SetDims([3]int32{4, 4, 1}), errs.ErrGeometryFrozen)

		pos, err := wr.Tell()
		require.NoError(t, err)
		require.Equal(t, int64(section.HeaderSize+3*16), pos)

		require.NoError(t, WriteSectionOf(wr, sectionValues(dims, 3)))
		require.NoError(t, wr.Close())

		rd := openTestMap(t, path)
		require.Equal(t, [3]int32{2, 2, 4}, rd.Dims())
		require.Equal(t, [6]float32{40, 50, 60, 90, 90, 120}, rd.Cell())
		require.Equal(t, int64(4), rd.SectionCount())

		got := make([]float32, 4)
		for sec := range 4 {
			require.NoError(t, ReadSectionOf(rd, got))
			require.Equal(t, sectionValues(dims, sec), got)
		}

		minVal, maxVal, mean, rms := rd.MapStats()
		require.Equal(t, float32(0), minVal)
		require.Equal(t, float32(3003), maxVal)
		require.InEpsilon(t, 1501.5, mean, 1e-6)
		require.InEpsilon(t, 1118.034, rms, 1e-4)
	})

	t.Run("Append without writing keeps the map", func(t *testing.T) {
		dims := [3]int32{2, 2, 2}
		path := writeTestMap(t, dims)
		h, err := OpenFile(path, format.OpenWrite|format.OpenAppend)
		require.NoError(t, err)
		require.NoError(t, h.Close())

		rd := openTestMap(t, path)
		require.Equal(t, dims, rd.Dims())
		require.Equal(t, [6]float32{40, 50, 60, 90, 90, 120}, rd.Cell())

		minVal, maxVal, _, _ := rd.MapStats()
		require.Equal(t, float32(0), minVal)
		require.Equal(t, float32(1003), maxVal)
	})

	t.Run("Append creates a new map", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fresh.map")
		h, err := OpenFile(path, format.OpenWrite|format.OpenCreate|format.OpenAppend)
		require.NoError(t, err)

		wr := h.(*Writer)
		require.False(t, wr.Frozen())
		require.NoError(t, wr.SetDims([3]int32{2, 2, 1}))
		require.NoError(t, WriteSectionOf(wr, sectionValues(wr.Dims(), 0)))
		require.NoError(t, wr.Close())

		rd := openTestMap(t, path)
		require.Equal(t, [3]int32{2, 2, 1}, rd.Dims())
	})

	t.Run("Append to a truncated header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "short.map")
		require.NoError(t, os.WriteFile(path, make([]byte, 100), 0o644))

		_, err := OpenFile(path, format.OpenWrite|format.OpenAppend)
		require.ErrorIs(t, err, errs.ErrNoHeader)
	})

	t.Run("Invalid option", func(t *testing.T) {
		_, err := OpenFile(existing, format.OpenRead, WithCloseMode(9))
		require.ErrorIs(t, err, errs.ErrParam)
	})
}

func TestHandle_TypeSwitch(t *testing.T) {
	path := writeTestMap(t, [3]int32{2, 2, 1})

	handles := []Handle{}
	h, err := OpenFile(path, format.OpenRead)
	require.NoError(t, err)
	handles = append(handles, h)

	h, err = OpenFile(filepath.Join(t.TempDir(), "out.map"), format.OpenWrite|format.OpenCreate)
	require.NoError(t, err)
	handles = append(handles, h)

	var readers, writers int
	for _, h := range handles {
		switch h := h.(type) {
		case *Reader:
			readers++
			_, err := h.SeekSection(0, io.SeekStart)
			require.NoError(t, err)
		case *Writer:
			writers++
			require.NoError(t, h.SetDims([3]int32{2, 2, 0}))
		}
		require.NoError(t, h.Close())
	}
	require.Equal(t, 1, readers)
	require.Equal(t, 1, writers)
}
