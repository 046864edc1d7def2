package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack,
// or -1. An empty needle matches at 0, as with bytes.Index.
//
// Candidates are found with Memchr on the last byte of needle and then
// verified, which is fast for the short literals regex prefixes produce.
//
// Example:
//
//	pos := simd.Memmem([]byte("aaaaaabaaaa"), []byte("aab"))
//	// pos == 5
func Memmem(haystack, needle []byte) int {
	n := len(needle)
	switch {
	case n == 0:
		return 0
	case n > len(haystack):
		return -1
	case n == 1:
		return Memchr(haystack, needle[0])
	}
	last := needle[n-1]
	for from := n - 1; from < len(haystack); {
		p := Memchr(haystack[from:], last)
		if p < 0 {
			return -1
		}
		end := from + p + 1
		if bytes.Equal(haystack[end-n:end], needle) {
			return end - n
		}
		from = end
	}
	return -1
}
