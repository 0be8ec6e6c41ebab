// Package encoding converts map items between Go values and their on-disk
// byte representation.
//
// Each data mode has exactly one Go item type:
//
//	Mode | Go type    | Bytes | Layout
//	-----|------------|-------|-------------------------------
//	0    | int8       | 1     | signed byte
//	1    | int16      | 2     | one 16-bit word
//	2    | float32    | 4     | IEEE 754 single precision
//	3    | Complex16  | 4     | two 16-bit words, real first
//	4    | complex64  | 8     | two float32 words, real first
//	6    | int32      | 4     | one 32-bit word
//
// The byte order is supplied as an endian.EndianEngine, normally the engine
// named by the machine stamp of the file.
//
// # Usage
//
// Encode a section of float32 values:
//
//	enc := encoding.NewItemEncoder[float32](endian.GetLittleEndianEngine())
//	defer enc.Finish()
//	enc.WriteSlice(values)
//	payload := enc.Bytes()
//
// Decode it back:
//
//	dec := encoding.NewItemDecoder[float32](endian.GetLittleEndianEngine())
//	got := make([]float32, len(values))
//	dec.DecodeAll(got, payload)
package encoding
