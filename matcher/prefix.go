package matcher

import (
	"unicode/utf8"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/srm/algebra"
	"github.com/coregx/srm/simd"
)

// searcher finds the first candidate position at or after at, or -1.
type searcher interface {
	index(haystack []byte, at int) int
}

// newPrefixSearcher returns a searcher for occurrences of prefix. An
// ignore-case prefix is lower case and folds ASCII letters only.
func newPrefixSearcher(prefix string, ignoreCase bool, maxVariants int) searcher {
	needle := []byte(prefix)
	if !ignoreCase {
		return literalSearcher{needle: needle}
	}
	letters := 0
	for _, c := range needle {
		if isLowerASCII(c) {
			letters++
		}
	}
	if letters < 31 && 1<<letters <= maxVariants {
		builder := ahocorasick.NewBuilder()
		for mask := range 1 << letters {
			builder.AddPattern(caseVariant(needle, mask))
		}
		if auto, err := builder.Build(); err == nil {
			return variantSearcher{auto: auto}
		}
	}
	first := needle[0]
	return foldScanSearcher{needle: needle, lo: first, up: upperASCII(first)}
}

// caseVariant upper-cases the letters of needle selected by the bits of mask.
func caseVariant(needle []byte, mask int) []byte {
	v := make([]byte, len(needle))
	bit := 0
	for i, c := range needle {
		v[i] = c
		if isLowerASCII(c) {
			if mask&(1<<bit) != 0 {
				v[i] = c - 'a' + 'A'
			}
			bit++
		}
	}
	return v
}

func isLowerASCII(c byte) bool { return c >= 'a' && c <= 'z' }

func upperASCII(c byte) byte {
	if isLowerASCII(c) {
		return c - 'a' + 'A'
	}
	return c
}

type literalSearcher struct {
	needle []byte
}

func (s literalSearcher) index(haystack []byte, at int) int {
	if p := simd.Memmem(haystack[at:], s.needle); p >= 0 {
		return at + p
	}
	return -1
}

type variantSearcher struct {
	auto *ahocorasick.Automaton
}

func (s variantSearcher) index(haystack []byte, at int) int {
	if at >= len(haystack) {
		return -1
	}
	if m := s.auto.Find(haystack, at); m != nil {
		return m.Start
	}
	return -1
}

// foldScanSearcher finds candidates by their first byte and verifies the
// rest ASCII case-insensitively.
type foldScanSearcher struct {
	needle []byte
	lo, up byte
}

func (s foldScanSearcher) index(haystack []byte, at int) int {
	n := len(s.needle)
	for at+n <= len(haystack) {
		p := simd.Memchr2(haystack[at:len(haystack)-n+1], s.lo, s.up)
		if p < 0 {
			return -1
		}
		at += p
		if foldEqual(haystack[at:at+n], s.needle) {
			return at
		}
		at++
	}
	return -1
}

// foldEqual compares b to the lower-case needle, folding ASCII letters.
func foldEqual(b, needle []byte) bool {
	for i, c := range needle {
		if b[i] != c && (!isLowerASCII(c) || b[i] != c-'a'+'A') {
			return false
		}
	}
	return true
}

// newStartSetSearcher returns a searcher for characters of a start set.
// chars holds the members when there are at most arrayMax of them.
func newStartSetSearcher(chars []rune, size uint64, arrayMax int, bc *algebra.BooleanClassifier) searcher {
	if size <= uint64(arrayMax) && len(chars) > 0 {
		if len(chars) <= 3 {
			ascii := make([]byte, 0, 3)
			for _, c := range chars {
				if c < utf8.RuneSelf {
					ascii = append(ascii, byte(c))
				}
			}
			if len(ascii) == len(chars) {
				return byteSetSearcher(ascii)
			}
		}
		return runeSetSearcher(chars)
	}
	return classSearcher{bc: bc}
}

// byteSetSearcher searches for up to three ASCII bytes.
type byteSetSearcher []byte

func (s byteSetSearcher) index(haystack []byte, at int) int {
	h := haystack[at:]
	var p int
	switch len(s) {
	case 1:
		p = simd.Memchr(h, s[0])
	case 2:
		p = simd.Memchr2(h, s[0], s[1])
	default:
		p = simd.Memchr3(h, s[0], s[1], s[2])
	}
	if p < 0 {
		return -1
	}
	return at + p
}

type runeSetSearcher []rune

func (s runeSetSearcher) index(haystack []byte, at int) int {
	for at < len(haystack) {
		r, w := utf8.DecodeRune(haystack[at:])
		for _, c := range s {
			if r == c {
				return at
			}
		}
		at += w
	}
	return -1
}

type classSearcher struct {
	bc *algebra.BooleanClassifier
}

func (s classSearcher) index(haystack []byte, at int) int {
	for at < len(haystack) {
		if c := haystack[at]; c < utf8.RuneSelf {
			if s.bc.Contains(rune(c)) {
				return at
			}
			at++
			continue
		}
		r, w := utf8.DecodeRune(haystack[at:])
		if s.bc.Contains(r) {
			return at
		}
		at += w
	}
	return -1
}
