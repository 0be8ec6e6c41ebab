// Package hash provides the xxHash64 digests used to fingerprint map data.
package hash

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Sum computes the xxHash64 of data.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Hex formats a digest as 16 lower-case hex digits.
func Hex(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}

// Digest is a streaming xxHash64 that also counts the bytes written to it.
type Digest struct {
	d *xxhash.Digest
	n int64
}

// NewDigest returns an empty streaming digest.
func NewDigest() *Digest {
	return &Digest{d: xxhash.New()}
}

// Write adds p to the digest. It never fails.
func (d *Digest) Write(p []byte) (int, error) {
	d.n += int64(len(p))
	return d.d.Write(p)
}

// Sum64 returns the digest of everything written so far.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}

// Len returns the number of bytes written.
func (d *Digest) Len() int64 {
	return d.n
}

// Reset clears the digest.
func (d *Digest) Reset() {
	d.d.Reset()
	d.n = 0
}
