package section

import (
	"fmt"
	"math"

	"github.com/arloliu/ccp4map/endian"
	"github.com/arloliu/ccp4map/errs"
	"github.com/arloliu/ccp4map/format"
)

// Contents classifies what a map holds. It replaces the spacegroup / EM
// spacegroup / tag triple with a single value: only a VolumeStack carries
// extra data, the original spacegroup code it was read with.
type Contents struct {
	kind format.ContentsKind
	code int32
}

// VolumeContents returns the contents of an ordinary volume.
func VolumeContents() Contents {
	return Contents{kind: format.Volume}
}

// VolumeStackContents returns volume-stack contents carrying the EM
// spacegroup code (canonical spacegroup + 400) written to the header.
func VolumeStackContents(code int32) Contents {
	return Contents{kind: format.VolumeStack, code: code}
}

// ImageContents returns the contents of a single image.
func ImageContents() Contents {
	return Contents{kind: format.Image}
}

// ImageStackContents returns the contents of an image stack.
func ImageStackContents() Contents {
	return Contents{kind: format.ImageStack}
}

// Kind returns the contents kind.
func (c Contents) Kind() format.ContentsKind {
	return c.kind
}

// Code returns the EM spacegroup code of a volume stack.
func (c Contents) Code() (int32, bool) {
	return c.code, c.kind == format.VolumeStack
}

func (c Contents) String() string {
	if c.kind == format.VolumeStack {
		return fmt.Sprintf("%s(%d)", c.kind.Tag(), c.code)
	}

	return c.kind.Tag()
}

// classify derives contents and the canonical spacegroup from a raw header
// spacegroup word.
func classify(spacegroup int32, sections int32) (Contents, int32) {
	switch {
	case spacegroup > EMSpacegroupLow && spacegroup < EMSpacegroupHigh:
		return VolumeStackContents(spacegroup), spacegroup - EMSpacegroupBase
	case spacegroup == 0 && sections == 1:
		return ImageContents(), 0
	case spacegroup == 0 && sections > 1:
		return ImageStackContents(), 0
	default:
		return VolumeContents(), spacegroup
	}
}

// Header is the fixed 1024-byte primary header of a map file.
type Header struct {
	Dims       [3]int32 // columns, rows, sections
	Mode       format.DataMode
	Origin     [3]int32
	Grid       [3]int32
	Cell       [6]float32 // a, b, c, alpha, beta, gamma
	AxesOrder  [3]int32
	Min        float32
	Max        float32
	Mean       float32
	RMS        float32
	Spacegroup int32 // canonical spacegroup
	Contents   Contents
	SymopSize  int32 // byte size of the symmetry block
	Skew       Skew
	UserAccess [UserAccessSize]byte
	Labels     LabelSet

	// ByteOrder is derived from the machine stamp on Parse and used by Bytes.
	ByteOrder endian.EndianEngine
	// StampCorrupted is set by Parse when the machine stamp had a zero nibble
	// and the host byte order was assumed.
	StampCorrupted bool
}

// NewHeader returns the header of a freshly created map: float32 data,
// axes order 1 2 3, a little-endian byte order and no labels.
func NewHeader() *Header {
	return &Header{
		Mode:      format.DefaultMode,
		AxesOrder: [3]int32{1, 2, 3},
		Contents:  VolumeContents(),
		ByteOrder: endian.GetLittleEndianEngine(),
	}
}

// Parse decodes the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (at least 1024 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is short, ErrNoHeader if the magic
//     is missing, ErrUnsupportedMachineStamp for foreign number formats
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: got %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}
	if string(data[MagicOffset:MagicOffset+4]) != Magic {
		return fmt.Errorf("%w: magic %q", errs.ErrNoHeader, data[MagicOffset:MagicOffset+4])
	}

	engine, ok, err := endian.EngineFromStamp(data[StampOffset : StampOffset+endian.StampSize])
	if err != nil {
		return err
	}
	h.ByteOrder = engine
	h.StampCorrupted = !ok

	i32 := func(off int) int32 { return int32(engine.Uint32(data[off:])) }
	f32 := func(off int) float32 { return math.Float32frombits(engine.Uint32(data[off:])) }

	for i := range 3 {
		h.Dims[i] = i32(DimsOffset + 4*i)
		h.Origin[i] = i32(OriginOffset + 4*i)
		h.Grid[i] = i32(GridOffset + 4*i)
		h.AxesOrder[i] = i32(AxesOffset + 4*i)
	}
	for i := range 6 {
		h.Cell[i] = f32(CellOffset + 4*i)
	}

	mode := i32(ModeOffset)
	if mode < 0 || mode > math.MaxUint8 || !format.DataMode(mode).Valid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidDataMode, mode)
	}
	h.Mode = format.DataMode(mode)

	h.Min = f32(MinOffset)
	h.Max = f32(MaxOffset)
	h.Mean = f32(MeanOffset)
	h.RMS = f32(RMSOffset)

	h.Contents, h.Spacegroup = classify(i32(SpacegroupOffset), h.Dims[2])
	h.SymopSize = max(0, i32(SymopSizeOffset))

	h.Skew = Skew{}
	if i32(SkewFlagOffset) != 0 {
		for r := range 3 {
			for c := range 3 {
				h.Skew.rotation[r][c] = f32(SkewMatOffset + 4*(3*r+c))
			}
			h.Skew.translation[r] = f32(SkewTransOffset + 4*r)
		}
	}

	copy(h.UserAccess[:], data[UserAccessOffset:UserAccessOffset+UserAccessSize])
	h.Labels.parse(data[LabelsOffset:HeaderSize], int(i32(LabelCountOffset)))

	return nil
}

// Bytes serializes the header into a new 1024-byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	h.PutBytes(b)

	return b
}

// PutBytes serializes the header into b, which must hold at least 1024 bytes.
func (h *Header) PutBytes(b []byte) {
	engine := h.ByteOrder
	if engine == nil {
		engine = endian.GetLittleEndianEngine()
	}

	putI32 := func(off int, v int32) { engine.PutUint32(b[off:], uint32(v)) }
	putF32 := func(off int, v float32) { engine.PutUint32(b[off:], math.Float32bits(v)) }

	for i := range 3 {
		putI32(DimsOffset+4*i, h.Dims[i])
		putI32(OriginOffset+4*i, h.Origin[i])
		putI32(GridOffset+4*i, h.Grid[i])
		putI32(AxesOffset+4*i, h.AxesOrder[i])
	}
	for i := range 6 {
		putF32(CellOffset+4*i, h.Cell[i])
	}
	putI32(ModeOffset, int32(h.Mode))

	putF32(MinOffset, h.Min)
	putF32(MaxOffset, h.Max)
	putF32(MeanOffset, h.Mean)
	putF32(RMSOffset, h.RMS)

	spacegroup := h.Spacegroup
	if code, ok := h.Contents.Code(); ok {
		spacegroup = code
	}
	putI32(SpacegroupOffset, spacegroup)
	putI32(SymopSizeOffset, h.SymopSize)

	var skewFlag int32
	if h.Skew.IsSet() {
		skewFlag = 1
	}
	putI32(SkewFlagOffset, skewFlag)
	for r := range 3 {
		for c := range 3 {
			putF32(SkewMatOffset+4*(3*r+c), h.Skew.rotation[r][c])
		}
		putF32(SkewTransOffset+4*r, h.Skew.translation[r])
	}
	clear(b[ReservedOffset : ReservedOffset+4*reservedWords])

	copy(b[UserAccessOffset:], h.UserAccess[:])
	copy(b[MagicOffset:], Magic)
	stamp := endian.MachineStamp(engine)
	copy(b[StampOffset:], stamp[:])

	putI32(LabelCountOffset, int32(h.Labels.Len()))
	h.Labels.encode(b[LabelsOffset:HeaderSize])
}

// Layout derives the layout descriptor of the data area from the header.
//
// Parameters:
//   - localHeaderSize: Size of the optional per-section local header in bytes
func (h *Header) Layout(localHeaderSize int64) Layout {
	l := Layout{
		SymopOffset: HeaderSize,
		SymopSize:   int64(h.SymopSize),
		HeaderSize:  localHeaderSize,
		Sections:    max(0, int64(h.Dims[2])),
	}
	l.Resize(h.Dims, h.Mode)

	return l
}

// ParseHeader parses a Header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be at least 1024 bytes)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidHeaderSize, ErrNoHeader or stamp errors
func ParseHeader(data []byte) (Header, error) {
	h := Header{}
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}
