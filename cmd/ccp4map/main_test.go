package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/ccp4map"
	"github.com/arloliu/ccp4map/endian"
	"github.com/arloliu/ccp4map/mapfile"
)

func writeMap(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cli.map")
	wr, err := ccp4map.Create(path)
	require.NoError(t, err)

	dims := [3]int32{4, 3, 2}
	require.NoError(t, wr.SetDims(dims))
	wr.SetCell([6]float32{12, 9, 6, 90, 90, 90})
	wr.SetGrid(dims)
	wr.SetSpacegroup(19)
	wr.SetTitle("cli test")
	require.NoError(t, wr.AppendSymop("X,Y,Z"))
	for sec := range int(dims[2]) {
		values := make([]float32, dims[0]*dims[1])
		for i := range values {
			values[i] = float32(sec*10 + i)
		}
		require.NoError(t, mapfile.WriteSectionOf(wr, values))
	}
	require.NoError(t, wr.Close())

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut

	err := app.Run(context.Background(), append([]string{"ccp4map"}, args...))

	return out.String(), err
}

func TestInspect(t *testing.T) {
	path := writeMap(t)

	t.Run("Text", func(t *testing.T) {
		out, err := run(t, "inspect", "-m", path, "--symops")
		require.NoError(t, err)
		require.Contains(t, out, "4 x 3 x 2")
		require.Contains(t, out, "Label 0:")
		require.Contains(t, out, "cli test")
		require.Contains(t, out, "X,Y,Z")
		require.Contains(t, out, "little")
	})

	t.Run("JSON", func(t *testing.T) {
		out, err := run(t, "inspect", "-m", path, "--format", "json", "--symops")
		require.NoError(t, err)

		var got mapSummary
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Equal(t, [3]int32{4, 3, 2}, got.Dims)
		require.Equal(t, int32(19), got.Spacegroup)
		require.Equal(t, []string{"cli test"}, got.Labels)
		require.Equal(t, []string{"X,Y,Z"}, got.Symops)
		require.Equal(t, float32(0), got.Min)
		require.Equal(t, float32(21), got.Max)
		require.Nil(t, got.Skew)
	})

	t.Run("YAML", func(t *testing.T) {
		out, err := run(t, "inspect", "-m", path, "-f", "yaml")
		require.NoError(t, err)

		var got mapSummary
		require.NoError(t, yaml.Unmarshal([]byte(out), &got))
		require.Equal(t, [6]float32{12, 9, 6, 90, 90, 90}, got.Cell)
		require.Equal(t, int64(2), got.Sections)
		require.Empty(t, got.Symops)
	})

	t.Run("Unknown format", func(t *testing.T) {
		_, err := run(t, "inspect", "-m", path, "-f", "xml")
		require.ErrorContains(t, err, "unknown output format")
	})

	t.Run("Missing map flag", func(t *testing.T) {
		_, err := run(t, "inspect")
		require.Error(t, err)
	})
}

func TestDigest(t *testing.T) {
	path := writeMap(t)

	rd, err := ccp4map.Open(path)
	require.NoError(t, err)
	want, err := rd.DataDigest()
	require.NoError(t, err)
	require.NoError(t, rd.Close())

	out, err := run(t, "digest", "-m", path, "--sections")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], fmt.Sprintf("%016x", want)))
	require.Contains(t, lines[2], "section 1")
}

func TestPackUnpack(t *testing.T) {
	path := writeMap(t)
	original, err := os.ReadFile(path)
	require.NoError(t, err)

	out, err := run(t, "pack", "-m", path, "-c", "zstd")
	require.NoError(t, err)
	require.Contains(t, out, path+".zst")

	restored := filepath.Join(t.TempDir(), "restored.map")
	_, err = run(t, "unpack", "-m", path+".zst", "-o", restored)
	require.NoError(t, err)

	got, err := os.ReadFile(restored)
	require.NoError(t, err)
	require.Equal(t, original, got)

	_, err = run(t, "pack", "-m", path, "-c", "brotli")
	require.ErrorContains(t, err, "unknown compression")

	_, err = run(t, "unpack", "-m", path)
	require.ErrorContains(t, err, "not a compressed map")
}

func TestConvert(t *testing.T) {
	path := writeMap(t)
	dst := filepath.Join(t.TempDir(), "big.map")

	_, err := run(t, "convert", "-m", path, "-o", dst, "-b", "big")
	require.NoError(t, err)

	rd, err := ccp4map.Open(dst)
	require.NoError(t, err)
	defer rd.Close()
	require.True(t, endian.IsBigEndian(rd.ByteOrder()))
	require.Equal(t, [3]int32{4, 3, 2}, rd.Dims())

	_, err = run(t, "convert", "-m", path, "-o", dst, "-b", "middle")
	require.ErrorContains(t, err, "unknown byte order")
}

func TestConfigFile(t *testing.T) {
	path := writeMap(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: json\nlog_level: debug\n"), 0o644))

	out, err := run(t, "--config", cfgPath, "inspect", "-m", path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(strings.TrimSpace(out), "{"))

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "inspect", "-m", path)
	require.ErrorContains(t, err, "read config")

	_, err = run(t, "--log-level", "loud", "inspect", "-m", path)
	require.ErrorContains(t, err, "unknown log level")
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, Config{}, cfg)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("local_header: 16\nbyte_order: big\ncompression: lz4\n"), 0o644))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.LocalHeader)
	require.Equal(t, int64(16), *cfg.LocalHeader)
	require.Equal(t, "big", cfg.ByteOrder)
	require.Equal(t, "lz4", cfg.Compression)

	require.NoError(t, os.WriteFile(path, []byte("local_header: [oops"), 0o644))
	_, err = LoadConfig(path)
	require.ErrorContains(t, err, "parse config")
}
