// Package safeconv provides checked integer narrowing that panics on
// overflow. Use it where out-of-range values are logically impossible,
// so a violation means a bug rather than bad input.
package safeconv

import "math"

// MaxInt is the maximum value for int type (platform-dependent).
const MaxInt = int(^uint(0) >> 1)

// MustUintToInt converts uint to int, panicking on overflow. Byte
// offsets and point coordinates from the parser fit in an int on every
// supported platform.
func MustUintToInt(v uint) int {
	if v > uint(MaxInt) {
		panic("safeconv: uint to int overflow")
	}

	return int(v)
}

// MustIntToUint32 converts int to uint32, panicking out of bounds.
// Editor protocol positions are uint32 and derive from 1-based ints.
func MustIntToUint32(v int) uint32 {
	if v < 0 || v > int(math.MaxUint32) {
		panic("safeconv: int to uint32 out of bounds")
	}

	return uint32(v)
}
