// Package conv provides checked integer conversions.
//
// The functions check bounds before narrowing and panic on overflow, which
// indicates a programming error such as an atom or state id beyond internal
// limits.
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// Uint64ToInt safely converts a uint64 to int.
// Panics if n > math.MaxInt.
func Uint64ToInt(n uint64) int {
	if n > math.MaxInt {
		panic("integer overflow: uint64 value out of int range")
	}
	return int(n)
}

// IntToInt32 safely converts an int to int32.
// Panics if n is outside the int32 range.
func IntToInt32(n int) int32 {
	if n < math.MinInt32 || n > math.MaxInt32 {
		panic("integer overflow: int value out of int32 range")
	}
	return int32(n)
}

// RuneToUint32 converts a non-negative rune to uint32.
// Panics if r < 0.
func RuneToUint32(r rune) uint32 {
	if r < 0 {
		panic("integer overflow: negative rune")
	}
	return uint32(r)
}
