package section

// Fixed sizes of the map file header and its text records.
const (
	HeaderSize     = 1024 // fixed primary header size in bytes
	MinFileSize    = HeaderSize + 1
	LabelSize      = 80 // one label slot
	MaxLabels      = 10 // number of label slots in the header
	SymopSize      = 80 // one symmetry operator record
	UserAccessSize = 28 // user-access bytes
	reservedWords  = 8  // reserved int32 words, written as zero
)

// Magic signature stored at MagicOffset.
const Magic = "MAP "

// Byte offsets of the header fields.
const (
	DimsOffset       = 0   // map dimensions, int32×3
	ModeOffset       = 12  // data mode, int32
	OriginOffset     = 16  // origin, int32×3
	GridOffset       = 28  // cell grid sampling, int32×3
	CellOffset       = 40  // cell parameters, float32×6
	AxesOffset       = 64  // axes order, int32×3
	MinOffset        = 76  // minimum density, float32
	MaxOffset        = 80  // maximum density, float32
	MeanOffset       = 84  // mean density, float32
	SpacegroupOffset = 88  // spacegroup number, int32
	SymopSizeOffset  = 92  // symmetry block byte size, int32
	SkewFlagOffset   = 96  // skew-set flag, int32
	SkewMatOffset    = 100 // skew rotation, float32×9 (transposed)
	SkewTransOffset  = 136 // skew translation, float32×3
	ReservedOffset   = 148 // reserved, int32×8
	UserAccessOffset = 180 // user access bytes
	MagicOffset      = 208 // "MAP "
	StampOffset      = 212 // machine stamp
	RMSOffset        = 216 // rms deviation, float32
	LabelCountOffset = 220 // label count, int32
	LabelsOffset     = 224 // 10 labels × 80 bytes
)

// EM spacegroup convention: codes in (EMSpacegroupLow, EMSpacegroupHigh)
// flag a volume stack whose canonical spacegroup is code-EMSpacegroupBase.
const (
	EMSpacegroupBase = 400
	EMSpacegroupLow  = 400
	EMSpacegroupHigh = 631
)
