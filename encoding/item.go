package encoding

import (
	"math"

	"github.com/arloliu/ccp4map/endian"
	"github.com/arloliu/ccp4map/format"
)

// Complex16 is one item of a ModeComplex16 map: a pair of 16-bit integers.
type Complex16 struct {
	Re int16
	Im int16
}

// Item is the set of Go types that map one-to-one onto a data mode.
type Item interface {
	int8 | int16 | float32 | Complex16 | complex64 | int32
}

// ModeOf returns the data mode whose items decode to T.
func ModeOf[T Item]() format.DataMode {
	var zero T
	switch any(zero).(type) {
	case int8:
		return format.ModeInt8
	case int16:
		return format.ModeInt16
	case Complex16:
		return format.ModeComplex16
	case complex64:
		return format.ModeComplex32
	case int32:
		return format.ModeInt32
	default:
		return format.ModeFloat32
	}
}

// Encode writes items from src into dst using engine's byte order.
//
// Complex items are written as two consecutive words, real part first.
//
// Returns:
//   - int: number of items encoded, limited by the room in dst
func Encode[T Item](engine endian.EndianEngine, dst []byte, src []T) int {
	size := ModeOf[T]().ItemSize()
	n := min(len(src), len(dst)/size)

	switch s := any(src[:n]).(type) {
	case []int8:
		for i, v := range s {
			dst[i] = byte(v)
		}
	case []int16:
		for i, v := range s {
			engine.PutUint16(dst[2*i:], uint16(v))
		}
	case []float32:
		for i, v := range s {
			engine.PutUint32(dst[4*i:], math.Float32bits(v))
		}
	case []Complex16:
		for i, v := range s {
			engine.PutUint16(dst[4*i:], uint16(v.Re))
			engine.PutUint16(dst[4*i+2:], uint16(v.Im))
		}
	case []complex64:
		for i, v := range s {
			engine.PutUint32(dst[8*i:], math.Float32bits(real(v)))
			engine.PutUint32(dst[8*i+4:], math.Float32bits(imag(v)))
		}
	case []int32:
		for i, v := range s {
			engine.PutUint32(dst[4*i:], uint32(v))
		}
	}

	return n
}

// Decode reads items from src into dst using engine's byte order.
//
// Returns:
//   - int: number of items decoded, limited by len(dst) and the complete
//     items available in src
func Decode[T Item](engine endian.EndianEngine, dst []T, src []byte) int {
	size := ModeOf[T]().ItemSize()
	n := min(len(dst), len(src)/size)

	switch d := any(dst[:n]).(type) {
	case []int8:
		for i := range d {
			d[i] = int8(src[i])
		}
	case []int16:
		for i := range d {
			d[i] = int16(engine.Uint16(src[2*i:]))
		}
	case []float32:
		for i := range d {
			d[i] = math.Float32frombits(engine.Uint32(src[4*i:]))
		}
	case []Complex16:
		for i := range d {
			d[i] = Complex16{
				Re: int16(engine.Uint16(src[4*i:])),
				Im: int16(engine.Uint16(src[4*i+2:])),
			}
		}
	case []complex64:
		for i := range d {
			d[i] = complex(
				math.Float32frombits(engine.Uint32(src[8*i:])),
				math.Float32frombits(engine.Uint32(src[8*i+4:])),
			)
		}
	case []int32:
		for i := range d {
			d[i] = int32(engine.Uint32(src[4*i:]))
		}
	}

	return n
}

// SwapWords reverses the byte order of every wordSize-byte word in data in
// place. It converts raw item bytes between little and big endian; complex
// items are swapped per component, so callers pass DataMode.WordSize.
func SwapWords(data []byte, wordSize int) {
	if wordSize <= 1 {
		return
	}

	for off := 0; off+wordSize <= len(data); off += wordSize {
		w := data[off : off+wordSize]
		for i, j := 0, wordSize-1; i < j; i, j = i+1, j-1 {
			w[i], w[j] = w[j], w[i]
		}
	}
}
