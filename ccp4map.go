// Package ccp4map reads and writes CCP4 / MRC map files: 3-D electron
// density volumes and 2-D image stacks stored behind a fixed 1024-byte
// header, an optional block of symmetry operator records and section-major
// binary data.
//
// # Core Features
//
//   - Header decoding and encoding in either byte order, detected from the
//     machine stamp on read
//   - Section, row and item-level navigation over a single cursor
//   - Typed section and row transfer for every data mode via generics
//   - Min, max, mean and rms accumulated while float32 data is written
//   - Symmetry operator records and per-section local headers
//   - Whole-file archives in gzip, zstd, s2 and lz4 stream formats
//
// # Basic Usage
//
// Writing a map:
//
//	wr, err := ccp4map.Create("out.map")
//	if err != nil {
//	    return err
//	}
//	_ = wr.SetDims([3]int32{nx, ny, nz})
//	wr.SetCell([6]float32{a, b, c, 90, 90, 90})
//	for z := range nz {
//	    _ = mapfile.WriteSectionOf(wr, density[z])
//	}
//	return wr.Close()
//
// Reading it back, compressed or not:
//
//	rd, err := ccp4map.Open("out.map.gz")
//	if err != nil {
//	    return err
//	}
//	defer rd.Close()
//
//	values := make([]float32, nx*ny)
//	err = mapfile.ReadSectionOf(rd, values)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the mapfile and
// compress packages. For navigation and raw transfers use the mapfile
// package directly.
package ccp4map

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/ccp4map/compress"
	"github.com/arloliu/ccp4map/encoding"
	"github.com/arloliu/ccp4map/endian"
	"github.com/arloliu/ccp4map/errs"
	"github.com/arloliu/ccp4map/format"
	"github.com/arloliu/ccp4map/mapfile"
	"github.com/arloliu/ccp4map/section"
)

type (
	// Reader reads an existing map.
	Reader = mapfile.Reader
	// Writer creates a map.
	Writer = mapfile.Writer
	// Handle is either a Reader or a Writer.
	Handle = mapfile.Handle
	// Option configures a Reader or Writer.
	Option = mapfile.Option
)

// Open opens a map for reading. A path ending in .gz, .zst, .s2 or .lz4 is
// decompressed into memory first.
func Open(path string, opts ...Option) (*Reader, error) {
	if format.CompressionFromPath(path) != format.CompressionNone {
		return OpenArchive(path, opts...)
	}

	return mapfile.OpenReader(path, opts...)
}

// Create creates or truncates a map file for writing.
func Create(path string, opts ...Option) (*Writer, error) {
	return mapfile.CreateWriter(path, opts...)
}

// OpenFile opens a map file with explicit open mode flags.
func OpenFile(path string, mode format.OpenMode, opts ...Option) (Handle, error) {
	return mapfile.OpenFile(path, mode, opts...)
}

// OpenArchive reads a compressed map into memory and opens a Reader over the
// decompressed bytes. The compression type is taken from the file extension.
//
// Returns:
//   - *Reader: Reader over the in-memory map
//   - error: ErrInvalidCompression for an uncompressed path, ErrCantOpenFile
//     if the file cannot be read, ErrNoHeader for a bad map
func OpenArchive(path string, opts ...Option) (*Reader, error) {
	data, err := readArchive(path)
	if err != nil {
		return nil, err
	}

	return mapfile.NewReader(bytes.NewReader(data), opts...)
}

// Pack compresses the map at src into dst. src must hold a valid map header.
//
// Returns:
//   - compress.CompressionStats: sizes and elapsed time of the run
//   - error: ErrNoHeader if src is not a map, codec or file errors
func Pack(src, dst string, compressionType format.CompressionType) (compress.CompressionStats, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return compress.CompressionStats{}, fmt.Errorf("%w: %w", errs.ErrCantOpenFile, err)
	}
	if err := checkHeader(data); err != nil {
		return compress.CompressionStats{}, err
	}

	out, stats, err := compress.Compress(compressionType, data)
	if err != nil {
		return stats, err
	}
	if err := os.WriteFile(dst, out, 0o644); err != nil {
		return stats, err
	}

	return stats, nil
}

// Unpack decompresses the archive at src into the map file dst.
func Unpack(src, dst string) error {
	data, err := readArchive(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, 0o644)
}

// Convert copies the map at src into dst, re-encoding the data in the byte
// order selected by opts (little-endian by default). The header fields,
// symmetry operators, section data, local headers and stored statistics are
// copied unchanged.
//
// opts also configure the source reader, so WithLocalHeader must be given
// for a source with local headers.
func Convert(src, dst string, opts ...Option) (err error) {
	rd, err := Open(src, opts...)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, rd.Close()) }()

	wopts := append(append([]Option{}, opts...), mapfile.WithCloseMode(format.CloseStored))
	wr, err := Create(dst, wopts...)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, wr.Close()) }()

	if err := wr.SetHeader(rd.Header()); err != nil {
		return err
	}

	symops, err := rd.Symops()
	if err != nil {
		return err
	}
	for _, op := range symops {
		if err := wr.AppendSymop(op); err != nil {
			return err
		}
	}

	if err := copySections(rd, wr); err != nil {
		return err
	}
	wr.SetMapStats(rd.MapStats())

	return nil
}

func copySections(rd *Reader, wr *Writer) error {
	layout := rd.Layout()
	if layout.SectionSize == 0 {
		return nil
	}

	swap := endian.IsBigEndian(rd.ByteOrder()) != endian.IsBigEndian(wr.ByteOrder())
	wordSize := rd.DataMode().WordSize()

	if _, err := rd.SeekSection(0, io.SeekStart); err != nil {
		return err
	}

	buf := make([]byte, layout.SectionSize)
	local := make([]byte, layout.HeaderSize)
	for range rd.SectionCount() {
		if err := rd.ReadSection(buf); err != nil {
			return err
		}
		if swap {
			encoding.SwapWords(buf, wordSize)
		}
		if err := wr.WriteSection(buf); err != nil {
			return err
		}

		if layout.HeaderSize == 0 {
			continue
		}
		if _, err := rd.ReadSectionHeader(local); err != nil {
			return err
		}
		if _, err := wr.WriteSectionHeader(local); err != nil {
			return err
		}
	}

	return nil
}

func readArchive(path string) ([]byte, error) {
	compressionType := format.CompressionFromPath(path)
	if compressionType == format.CompressionNone {
		return nil, fmt.Errorf("%w: %s has no archive extension", errs.ErrInvalidCompression, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCantOpenFile, err)
	}

	data, err := compress.Decompress(compressionType, raw)
	if err != nil {
		return nil, err
	}
	if err := checkHeader(data); err != nil {
		return nil, err
	}

	return data, nil
}

func checkHeader(data []byte) error {
	if len(data) < section.MinFileSize {
		return fmt.Errorf("%w: file holds %d bytes", errs.ErrNoHeader, len(data))
	}
	_, err := section.ParseHeader(data[:section.HeaderSize])

	return err
}
