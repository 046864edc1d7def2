// Package simd provides the byte search primitives behind prefix and start
// set skipping: Memchr, Memchr2, Memchr3 and Memmem.
//
// Single-byte search dispatches on CPU features at package initialization.
// Where the CPU has wide vector units the runtime's vectorized IndexByte is
// used, otherwise a SWAR (SIMD Within A Register) loop that inspects eight
// bytes per step. Two and three byte searches always use SWAR.
package simd

import (
	"bytes"
	"encoding/binary"
	"math/bits"

	"golang.org/x/sys/cpu"
)

// hasVector reports whether IndexByte runs on vector instructions.
var hasVector = cpu.X86.HasAVX2 || cpu.X86.HasSSE42 || cpu.ARM64.HasASIMD

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// zeroBytes marks the high bit of every zero byte of x.
func zeroBytes(x uint64) uint64 {
	return (x - lo8) & ^x & hi8
}

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present.
//
// Example:
//
//	pos := simd.Memchr([]byte("hello world"), 'o')
//	// pos == 4
func Memchr(haystack []byte, needle byte) int {
	if hasVector {
		return bytes.IndexByte(haystack, needle)
	}
	return memchrSWAR(haystack, needle)
}

// Memchr2 returns the index of the first byte of haystack equal to needle1
// or needle2, or -1.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	m1, m2 := uint64(needle1)*lo8, uint64(needle2)*lo8
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(chunk^m1) | zeroBytes(chunk^m2); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < len(haystack); i++ {
		if c := haystack[i]; c == needle1 || c == needle2 {
			return i
		}
	}
	return -1
}

// Memchr3 returns the index of the first byte of haystack equal to one of
// the three needles, or -1.
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	m1, m2, m3 := uint64(needle1)*lo8, uint64(needle2)*lo8, uint64(needle3)*lo8
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(chunk^m1) | zeroBytes(chunk^m2) | zeroBytes(chunk^m3); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < len(haystack); i++ {
		if c := haystack[i]; c == needle1 || c == needle2 || c == needle3 {
			return i
		}
	}
	return -1
}

func memchrSWAR(haystack []byte, needle byte) int {
	m := uint64(needle) * lo8
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		if z := zeroBytes(binary.LittleEndian.Uint64(haystack[i:]) ^ m); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < len(haystack); i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}
