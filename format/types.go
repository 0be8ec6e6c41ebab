package format

import (
	"path/filepath"
	"strings"
)

type (
	DataMode        uint8
	ContentsKind    uint8
	CloseMode       uint8
	OpenMode        uint16
	CompressionType uint8
)

// Data modes, as stored in header word 4. Mode 5 is unused by the format.
const (
	ModeInt8      DataMode = 0 // ModeInt8 stores signed bytes.
	ModeInt16     DataMode = 1 // ModeInt16 stores 16-bit integers.
	ModeFloat32   DataMode = 2 // ModeFloat32 stores IEEE 754 single precision reals.
	ModeComplex16 DataMode = 3 // ModeComplex16 stores pairs of 16-bit integers.
	ModeComplex32 DataMode = 4 // ModeComplex32 stores pairs of single precision reals.
	ModeInt32     DataMode = 6 // ModeInt32 stores 32-bit integers.

	// DefaultMode is the data mode of a freshly created map.
	DefaultMode = ModeFloat32
)

var itemSizes = [...]int{1, 2, 4, 4, 8, 0, 4}

// Valid reports whether m is a data mode the codec can transfer.
func (m DataMode) Valid() bool {
	return m <= ModeInt32 && m != 5
}

// ItemSize returns the size in bytes of one stored item, or 0 for an invalid mode.
func (m DataMode) ItemSize() int {
	if !m.Valid() {
		return 0
	}

	return itemSizes[m]
}

// WordSize returns the size of the scalar words making up one item. Complex
// items are byte-swapped per component, so their word size is half the item size.
func (m DataMode) WordSize() int {
	switch m {
	case ModeComplex16, ModeComplex32:
		return m.ItemSize() / 2
	default:
		return m.ItemSize()
	}
}

func (m DataMode) String() string {
	switch m {
	case ModeInt8:
		return "Int8"
	case ModeInt16:
		return "Int16"
	case ModeFloat32:
		return "Float32"
	case ModeComplex16:
		return "Complex16"
	case ModeComplex32:
		return "Complex32"
	case ModeInt32:
		return "Int32"
	default:
		return "Unknown"
	}
}

// Contents kinds derived from the spacegroup convention used by EM maps.
const (
	Volume      ContentsKind = iota // Volume is an ordinary crystallographic volume.
	VolumeStack                     // VolumeStack uses the 400+spacegroup convention.
	Image                           // Image is a single 2-D image (spacegroup 0, one section).
	ImageStack                      // ImageStack is a stack of images (spacegroup 0, many sections).
)

// Tag returns the four-character contents tag used by EM tooling.
func (k ContentsKind) Tag() string {
	switch k {
	case VolumeStack:
		return "VLST"
	case Image:
		return "IMAG"
	case ImageStack:
		return "IMST"
	default:
		return "VOLU"
	}
}

func (k ContentsKind) String() string {
	switch k {
	case Volume:
		return "Volume"
	case VolumeStack:
		return "VolumeStack"
	case Image:
		return "Image"
	case ImageStack:
		return "ImageStack"
	default:
		return "Unknown"
	}
}

// Close modes select how the statistics written at close are derived.
const (
	// CloseCompute derives mean and rms from the accumulated values (default).
	CloseCompute CloseMode = 0
	// CloseStored writes whatever statistics were set explicitly.
	CloseStored CloseMode = 1
	// CloseZeroOffset computes like CloseCompute but drops the pseudo-zero
	// offset before the final mean is reported.
	CloseZeroOffset CloseMode = 2
)

func (c CloseMode) String() string {
	switch c {
	case CloseCompute:
		return "Compute"
	case CloseStored:
		return "Stored"
	case CloseZeroOffset:
		return "ZeroOffset"
	default:
		return "Unknown"
	}
}

// Open mode bits. They combine like POSIX open flags.
const (
	OpenRead     OpenMode = 0x0001 // OpenRead opens the file for reading.
	OpenWrite    OpenMode = 0x0002 // OpenWrite opens the file for writing.
	OpenAppend   OpenMode = 0x0004 // OpenAppend positions writes at the end of the file.
	OpenCreate   OpenMode = 0x0008 // OpenCreate creates the file if it does not exist.
	OpenTruncate OpenMode = 0x0010 // OpenTruncate truncates an existing file.

	OpenReadWrite = OpenRead | OpenWrite
)

// Has reports whether all bits in flag are set.
func (m OpenMode) Has(flag OpenMode) bool {
	return m&flag == flag
}

func (m OpenMode) String() string {
	if m == 0 {
		return "None"
	}

	names := make([]string, 0, 5)
	for _, f := range []struct {
		bit  OpenMode
		name string
	}{
		{OpenRead, "Read"},
		{OpenWrite, "Write"},
		{OpenAppend, "Append"},
		{OpenCreate, "Create"},
		{OpenTruncate, "Truncate"},
	} {
		if m.Has(f.bit) {
			names = append(names, f.name)
		}
	}

	return strings.Join(names, "|")
}

const (
	CompressionNone CompressionType = 0x1 // CompressionNone stores the map as-is.
	CompressionGzip CompressionType = 0x2 // CompressionGzip is the common .map.gz distribution format.
	CompressionZstd CompressionType = 0x3 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x4 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x5 // CompressionLZ4 represents LZ4 frame compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionGzip:
		return "Gzip"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Extension returns the conventional file suffix for the compression type.
func (c CompressionType) Extension() string {
	switch c {
	case CompressionGzip:
		return ".gz"
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".sz"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// CompressionFromPath infers the compression type from a file name suffix.
func CompressionFromPath(path string) CompressionType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	case ".sz", ".s2":
		return CompressionS2
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// ParseCompression parses a compression name as accepted on the command line.
func ParseCompression(name string) (CompressionType, bool) {
	switch strings.ToLower(name) {
	case "", "none":
		return CompressionNone, true
	case "gzip", "gz":
		return CompressionGzip, true
	case "zstd", "zst":
		return CompressionZstd, true
	case "s2", "sz":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
