// Package endian provides byte order utilities for map file encoding and decoding.
//
// It combines the ByteOrder and AppendByteOrder interfaces of encoding/binary
// into a single EndianEngine, and translates between engines and the 4-byte
// machine stamp that CCP4 map files carry at header offset 212.
//
// # Basic Usage
//
// Writers default to little-endian:
//
//	engine := endian.GetLittleEndianEngine()
//	stamp := endian.MachineStamp(engine) // 0x44 0x41 0x00 0x00
//
// Readers derive the engine from the stamp found in the file:
//
//	engine, ok, err := endian.EngineFromStamp(stamp)
//	if err != nil {
//	    return err
//	}
//	if !ok {
//	    // corrupted stamp, engine is the host byte order
//	}
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/arloliu/ccp4map/errs"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Number format codes stored in the high nibble of machine stamp bytes 0 (reals)
// and 1 (integers).
const (
	FormatBigEndian    = 1 // FormatBigEndian is big-endian IEEE / Motorola byte order.
	FormatVAX          = 2 // FormatVAX is VAX floating point, not supported.
	FormatLittleEndian = 4 // FormatLittleEndian is little-endian IEEE / Intel byte order.
	FormatConvexNative = 5 // FormatConvexNative is Convex native floating point, not supported.
)

// StampSize is the size of the machine stamp in bytes.
const StampSize = 4

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// GetNativeEngine returns the engine matching the host byte order.
func GetNativeEngine() EndianEngine {
	if IsNativeLittleEndian() {
		return binary.LittleEndian
	}

	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsBigEndian reports whether engine is the big-endian engine.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}

// MachineStamp returns the stamp written for files encoded with engine.
//
// Byte 0 carries the real format in both nibbles, byte 1 carries the integer
// format in the high nibble and 1 (character set ASCII) in the low nibble.
func MachineStamp(engine EndianEngine) [StampSize]byte {
	f := byte(FormatLittleEndian)
	if IsBigEndian(engine) {
		f = FormatBigEndian
	}

	return [StampSize]byte{f | f<<4, 1 | f<<4, 0, 0}
}

// EngineFromStamp decodes a machine stamp.
//
// Returns:
//   - EndianEngine: engine to decode numeric header words and data with
//   - bool: false when the stamp is corrupted (a zero nibble) and the host
//     byte order was assumed instead
//   - error: ErrUnsupportedMachineStamp for VAX, Convex or mixed-order stamps
func EngineFromStamp(stamp []byte) (EndianEngine, bool, error) {
	if len(stamp) < StampSize {
		return nil, false, fmt.Errorf("%w: stamp is %d bytes", errs.ErrUnsupportedMachineStamp, len(stamp))
	}

	realFmt := (stamp[0] >> 4) & 0x0f
	intFmt := (stamp[1] >> 4) & 0x0f

	if realFmt == 0 || intFmt == 0 {
		return GetNativeEngine(), false, nil
	}

	switch {
	case realFmt == FormatLittleEndian && intFmt == FormatLittleEndian:
		return GetLittleEndianEngine(), true, nil
	case realFmt == FormatBigEndian && intFmt == FormatBigEndian:
		return GetBigEndianEngine(), true, nil
	default:
		return nil, false, fmt.Errorf("%w: real format %d, integer format %d",
			errs.ErrUnsupportedMachineStamp, realFmt, intFmt)
	}
}
