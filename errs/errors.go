// Package errs defines the sentinel errors returned by the ccp4map packages.
//
// Callers should compare with errors.Is, since most errors are wrapped with
// additional context before being returned.
package errs

import (
	"errors"
	"fmt"
)

// Handle and buffer errors.
var (
	ErrNullBuffer   = errors.New("nil or undersized buffer")
	ErrClosed       = errors.New("map file is closed")
	ErrCantOpenFile = errors.New("cannot open map file")
	ErrAllocFail    = errors.New("allocation failed")
)

// Header errors.
var (
	ErrNoHeader                = errors.New("missing or invalid map header")
	ErrInvalidHeaderSize       = errors.New("invalid header size")
	ErrUnsupportedMachineStamp = errors.New("unsupported machine stamp")
	ErrInvalidDataMode         = errors.New("invalid data mode")
	ErrDataModeMismatch        = errors.New("item type does not match data mode")
	ErrGeometryFrozen          = errors.New("map geometry is frozen once data has been written")
)

// Navigation and transfer errors.
var (
	ErrParam      = errors.New("parameter out of range")
	ErrReadFail   = errors.New("read failed")
	ErrWriteFail  = errors.New("write failed")
	ErrSymmetry   = errors.New("cursor is outside the symmetry block")
	ErrNoSymmetry = errors.New("map has no symmetry operators")
)

// Archive errors.
var (
	ErrInvalidCompression = errors.New("invalid compression type")
)

// TransferError reports a partial transfer. Got is the number of items (or
// bytes, for raw header transfers) actually moved before the failure.
type TransferError struct {
	Op   string
	Want int
	Got  int
	Err  error // ErrReadFail or ErrWriteFail
	Base error // underlying stream error, may be nil
}

func (e *TransferError) Error() string {
	if e.Base != nil {
		return fmt.Sprintf("%s: %v: transferred %d of %d: %v", e.Op, e.Err, e.Got, e.Want, e.Base)
	}

	return fmt.Sprintf("%s: %v: transferred %d of %d", e.Op, e.Err, e.Got, e.Want)
}

// Unwrap exposes both the fail sentinel and the underlying stream error.
func (e *TransferError) Unwrap() []error {
	if e.Base == nil {
		return []error{e.Err}
	}

	return []error{e.Err, e.Base}
}

// ReadFail builds a TransferError for a short read.
func ReadFail(op string, want, got int, base error) error {
	return &TransferError{Op: op, Want: want, Got: got, Err: ErrReadFail, Base: base}
}

// WriteFail builds a TransferError for a short write.
func WriteFail(op string, want, got int, base error) error {
	return &TransferError{Op: op, Want: want, Got: got, Err: ErrWriteFail, Base: base}
}
