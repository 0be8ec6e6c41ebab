package ccp4map

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/ccp4map/endian"
	"github.com/arloliu/ccp4map/errs"
	"github.com/arloliu/ccp4map/format"
	"github.com/arloliu/ccp4map/mapfile"
)

var testDims = [3]int32{6, 5, 4}

func testSection(sec int) []float32 {
	values := make([]float32, testDims[0]*testDims[1])
	for i := range values {
		values[i] = float32(sec*100+i) - 50.5
	}

	return values
}

// createTestMap writes a small float32 map with one symmetry operator and a
// title.
func createTestMap(t *testing.T, opts ...Option) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "source.map")
	wr, err := Create(path, opts...)
	require.NoError(t, err)

	require.NoError(t, wr.SetDims(testDims))
	wr.SetCell([6]float32{30, 25, 20, 90, 90, 90})
	wr.SetGrid(testDims)
	wr.SetSpacegroup(1)
	wr.SetTitle("density")
	require.NoError(t, wr.AppendSymop("X,Y,Z"))
	for sec := range int(testDims[2]) {
		require.NoError(t, mapfile.WriteSectionOf(wr, testSection(sec)))
	}
	require.NoError(t, wr.Close())

	return path
}

func requireSections(t *testing.T, rd *Reader) {
	t.Helper()

	require.Equal(t, testDims, rd.Dims())
	_, err := rd.SeekSection(0, io.SeekStart)
	require.NoError(t, err)

	got := make([]float32, testDims[0]*testDims[1])
	for sec := range int(testDims[2]) {
		require.NoError(t, mapfile.ReadSectionOf(rd, got))
		require.Equal(t, testSection(sec), got)
	}
}

func TestOpenAndCreate(t *testing.T) {
	path := createTestMap(t)

	rd, err := Open(path)
	require.NoError(t, err)
	defer rd.Close()

	title, ok := rd.Title()
	require.True(t, ok)
	require.Equal(t, "density", title)
	require.Equal(t, int64(1), rd.NumSymops())
	requireSections(t, rd)
}

func TestOpenFile(t *testing.T) {
	path := createTestMap(t)

	h, err := OpenFile(path, format.OpenRead)
	require.NoError(t, err)
	defer h.Close()

	rd, ok := h.(*Reader)
	require.True(t, ok)
	require.Equal(t, testDims, rd.Dims())

	_, err = OpenFile(filepath.Join(t.TempDir(), "missing.map"), format.OpenRead)
	require.ErrorIs(t, err, errs.ErrCantOpenFile)
}

func TestPackAndOpenArchive(t *testing.T) {
	path := createTestMap(t)
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	tests := []struct {
		name            string
		compressionType format.CompressionType
	}{
		{"Gzip", format.CompressionGzip},
		{"Zstd", format.CompressionZstd},
		{"S2", format.CompressionS2},
		{"LZ4", format.CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archive := filepath.Join(t.TempDir(), "packed.map"+tt.compressionType.Extension())
			stats, err := Pack(path, archive, tt.compressionType)
			require.NoError(t, err)
			require.Equal(t, tt.compressionType, stats.Algorithm)
			require.Equal(t, int64(len(original)), stats.OriginalSize)
			require.Positive(t, stats.CompressedSize)

			rd, err := Open(archive)
			require.NoError(t, err)
			defer rd.Close()
			requireSections(t, rd)

			symops, err := rd.Symops()
			require.NoError(t, err)
			require.Len(t, symops, 1)
			require.Equal(t, "X,Y,Z", strings.TrimSpace(symops[0]))

			unpacked := filepath.Join(t.TempDir(), "unpacked.map")
			require.NoError(t, Unpack(archive, unpacked))
			restored, err := os.ReadFile(unpacked)
			require.NoError(t, err)
			require.Equal(t, original, restored)
		})
	}
}

func TestPack_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("Not a map", func(t *testing.T) {
		src := filepath.Join(dir, "junk.map")
		require.NoError(t, os.WriteFile(src, []byte(strings.Repeat("x", 2048)), 0o644))

		_, err := Pack(src, filepath.Join(dir, "junk.map.gz"), format.CompressionGzip)
		require.ErrorIs(t, err, errs.ErrNoHeader)
	})

	t.Run("Missing source", func(t *testing.T) {
		_, err := Pack(filepath.Join(dir, "missing.map"), filepath.Join(dir, "out.gz"), format.CompressionGzip)
		require.ErrorIs(t, err, errs.ErrCantOpenFile)
	})

	t.Run("Unknown compression", func(t *testing.T) {
		_, err := Pack(createTestMap(t), filepath.Join(dir, "out.bin"), format.CompressionType(0x7f))
		require.ErrorIs(t, err, errs.ErrInvalidCompression)
	})

	t.Run("Unpack without extension", func(t *testing.T) {
		err := Unpack(createTestMap(t), filepath.Join(dir, "out.map"))
		require.ErrorIs(t, err, errs.ErrInvalidCompression)
	})

	t.Run("Corrupt archive", func(t *testing.T) {
		src := filepath.Join(dir, "corrupt.map.gz")
		require.NoError(t, os.WriteFile(src, []byte("not gzip"), 0o644))

		_, err := Open(src)
		require.Error(t, err)
	})
}

func TestConvert(t *testing.T) {
	t.Run("Little to big endian", func(t *testing.T) {
		src := createTestMap(t)
		dst := filepath.Join(t.TempDir(), "big.map")
		require.NoError(t, Convert(src, dst, mapfile.WithBigEndian()))

		orig, err := Open(src)
		require.NoError(t, err)
		defer orig.Close()

		rd, err := Open(dst)
		require.NoError(t, err)
		defer rd.Close()

		require.True(t, endian.IsBigEndian(rd.ByteOrder()))
		require.Equal(t, orig.Cell(), rd.Cell())
		require.Equal(t, orig.Grid(), rd.Grid())
		require.Equal(t, orig.Spacegroup(), rd.Spacegroup())
		require.Equal(t, orig.Labels(), rd.Labels())
		requireSections(t, rd)

		wantSymops, err := orig.Symops()
		require.NoError(t, err)
		gotSymops, err := rd.Symops()
		require.NoError(t, err)
		require.Equal(t, wantSymops, gotSymops)

		minA, maxA, meanA, rmsA := orig.MapStats()
		minB, maxB, meanB, rmsB := rd.MapStats()
		require.Equal(t, minA, minB)
		require.Equal(t, maxA, maxB)
		require.InDelta(t, meanA, meanB, 1e-6)
		require.InDelta(t, rmsA, rmsB, 1e-6)
	})

	t.Run("Round trip is byte identical", func(t *testing.T) {
		src := createTestMap(t)
		big := filepath.Join(t.TempDir(), "big.map")
		back := filepath.Join(t.TempDir(), "back.map")
		require.NoError(t, Convert(src, big, mapfile.WithBigEndian()))
		require.NoError(t, Convert(big, back, mapfile.WithLittleEndian()))

		want, err := os.ReadFile(src)
		require.NoError(t, err)
		got, err := os.ReadFile(back)
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("Int16 with local headers", func(t *testing.T) {
		src := filepath.Join(t.TempDir(), "int16.map")
		wr, err := Create(src, mapfile.WithDataMode(format.ModeInt16), mapfile.WithLocalHeader(8))
		require.NoError(t, err)
		require.NoError(t, wr.SetDims([3]int32{3, 1, 2}))
		require.NoError(t, mapfile.WriteSectionOf(wr, []int16{1, -2, 300}))
		_, err = wr.WriteSectionHeader([]byte("first"))
		require.NoError(t, err)
		require.NoError(t, mapfile.WriteSectionOf(wr, []int16{-400, 5, 6}))
		_, err = wr.WriteSectionHeader([]byte("second"))
		require.NoError(t, err)
		require.NoError(t, wr.Close())

		dst := filepath.Join(t.TempDir(), "int16-big.map")
		require.NoError(t, Convert(src, dst, mapfile.WithBigEndian(), mapfile.WithLocalHeader(8)))

		rd, err := Open(dst, mapfile.WithLocalHeader(8))
		require.NoError(t, err)
		defer rd.Close()

		require.Equal(t, format.ModeInt16, rd.DataMode())
		got := make([]int16, 3)
		local := make([]byte, 8)

		require.NoError(t, mapfile.ReadSectionOf(rd, got))
		require.Equal(t, []int16{1, -2, 300}, got)
		_, err = rd.ReadSectionHeader(local)
		require.NoError(t, err)
		require.Equal(t, "first   ", string(local))

		require.NoError(t, mapfile.ReadSectionOf(rd, got))
		require.Equal(t, []int16{-400, 5, 6}, got)
		_, err = rd.ReadSectionHeader(local)
		require.NoError(t, err)
		require.Equal(t, "second  ", string(local))
	})

	t.Run("Missing source", func(t *testing.T) {
		err := Convert(filepath.Join(t.TempDir(), "missing.map"), filepath.Join(t.TempDir(), "out.map"))
		require.ErrorIs(t, err, errs.ErrCantOpenFile)
	})
}
