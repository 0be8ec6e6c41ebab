// Package section defines the low-level binary structures and constants of
// the CCP4 map file format.
//
// It handles serialization of the fixed primary header, the ten title
// labels and the skew transform, and derives the layout constants that the
// mapfile package uses to navigate sections and rows.
//
// # File Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (1024 bytes, fixed)                              │
//	│  - geometry, data mode, cell, statistics                │
//	│  - spacegroup, symmetry size, skew transform            │
//	│  - "MAP " magic and machine stamp                       │
//	│  - 10 labels × 80 bytes                                 │
//	├─────────────────────────────────────────────────────────┤
//	│ Symmetry block (SymopSize bytes, optional)              │
//	│  - 80-byte operator strings                             │
//	├─────────────────────────────────────────────────────────┤
//	│ Block 0                                                 │
//	│  - Section payload (Dims[1] rows × Dims[0] items)       │
//	│  - Local header (HeaderSize bytes, optional)            │
//	├─────────────────────────────────────────────────────────┤
//	│ Block 1 ... Block N-1                                   │
//	└─────────────────────────────────────────────────────────┘
//
// The total size of a complete file is DataOffset + Sections × BlockSize.
//
// # Header Format
//
//	Bytes    | Field            | Type        | Description
//	---------|------------------|-------------|-------------------------------
//	0-11     | Dims             | int32×3     | columns, rows, sections
//	12-15    | Mode             | int32       | data mode
//	16-27    | Origin           | int32×3     | start of each axis
//	28-39    | Grid             | int32×3     | cell sampling
//	40-63    | Cell             | float32×6   | a, b, c, alpha, beta, gamma
//	64-75    | AxesOrder        | int32×3     | fast, medium, slow axis
//	76-87    | Min, Max, Mean   | float32×3   | density statistics
//	88-91    | Spacegroup       | int32       | 400+ for EM volume stacks
//	92-95    | SymopSize        | int32       | symmetry block bytes
//	96-99    | Skew flag        | int32       | non-zero when skew is set
//	100-135  | Skew rotation    | float32×9   | stored transposed
//	136-147  | Skew translation | float32×3   |
//	148-179  | Reserved         | int32×8     | zero
//	180-207  | User access      | 28 bytes    | passed through untouched
//	208-211  | Magic            | "MAP "      |
//	212-215  | Machine stamp    | 4 bytes     | number formats
//	216-219  | RMS              | float32     |
//	220-223  | Label count      | int32       |
//	224-1023 | Labels           | 10×80 bytes | space padded
//
// # Byte Order
//
// All numeric header words and data items use the byte order named by the
// machine stamp. Parse derives it, Bytes writes whatever Header.ByteOrder holds.
package section
