// Package algebra provides the character predicate algebras used by the
// symbolic regex engine.
//
// A predicate denotes a set of code points. Three realizations are provided:
//
//   - CharSetSolver: binary decision diagrams over 21-bit code points. Every
//     character class of a parsed pattern is first expressed here.
//   - BV64Algebra: a 64-bit bitset over at most 64 atoms.
//   - BVAlgebra: an arbitrary-width bitset over any number of atoms.
//
// Atoms (minterms) are the blocks of the coarsest partition of the code point
// domain that is consistent with every predicate of a pattern. Once the atoms
// are known, predicates are re-expressed as sets of atoms, which makes every
// Boolean operation a handful of word operations.
//
// Example:
//
//	solver := algebra.NewCharSetSolver()
//	digits := solver.Range('0', '9')
//	word := solver.Or(digits, solver.Range('a', 'z'))
//	atoms := solver.Minterms([]*algebra.BDD{digits, word})
//	// atoms: [^0-9a-z], [0-9], [a-z]
package algebra

import (
	"fmt"
	"slices"
	"strings"

	"github.com/coregx/srm/internal/textenc"
)

// MaxCodePoint is the largest value of the code point domain.
// The domain is all 21-bit values, which covers unicode.MaxRune.
const MaxCodePoint rune = 1<<21 - 1

// Algebra is a Boolean algebra of character predicates.
//
// The predicate type P must be comparable, and equal predicates must compare
// equal with ==. Every realization in this package guarantees this: BDDs and
// wide bitsets are interned, 64-bit bitsets are plain values.
type Algebra[P comparable] interface {
	// True returns the predicate matching every character.
	True() P

	// False returns the predicate matching no character.
	False() P

	// And returns the intersection of a and b.
	And(a, b P) P

	// Or returns the union of a and b.
	Or(a, b P) P

	// Not returns the complement of a.
	Not(a P) P

	// IsSatisfiable reports whether a matches at least one character.
	IsSatisfiable(a P) bool

	// DomainSize returns the number of characters matched by a.
	DomainSize(a P) uint64

	// Ranges returns the characters matched by a as sorted, disjoint,
	// non-adjacent ranges.
	Ranges(a P) []RuneRange

	// SerializePredicate encodes a as visible ASCII text.
	SerializePredicate(a P) string

	// DeserializePredicate decodes text written by SerializePredicate.
	DeserializePredicate(s string) (P, error)
}

// MintermAlgebra is an algebra whose predicates are sets of atoms.
type MintermAlgebra[P comparable] interface {
	Algebra[P]

	// Atoms returns one predicate per atom, indexed by atom id.
	Atoms() []P

	// AtomCount returns the number of atoms.
	AtomCount() int

	// Classifier maps a character to its atom id.
	Classifier() *Classifier

	// FromCharSet converts a character set to the union of the atoms it
	// contains. The set must be a union of atoms.
	FromCharSet(contains func(r rune) bool) P

	// Serialize encodes the algebra parameters (the atoms).
	Serialize() string
}

// RuneRange is an inclusive range of code points.
type RuneRange struct {
	Lo, Hi rune
}

// Size returns the number of code points in the range.
func (r RuneRange) Size() uint64 {
	return uint64(r.Hi-r.Lo) + 1
}

// String returns "a-z" style notation.
func (r RuneRange) String() string {
	if r.Lo == r.Hi {
		return quoteRune(r.Lo)
	}
	return quoteRune(r.Lo) + "-" + quoteRune(r.Hi)
}

func quoteRune(r rune) string {
	switch {
	case r == '\n':
		return `\n`
	case r == '\t':
		return `\t`
	case r == '\r':
		return `\r`
	case r < ' ':
		return fmt.Sprintf(`\x%02X`, r)
	case r < 0x7F:
		if strings.ContainsRune(`\-[]^.()|*+?{}$#,`, r) {
			return `\` + string(r)
		}
		return string(r)
	case r <= 0xFFFF:
		return fmt.Sprintf(`\u%04X`, r)
	default:
		return fmt.Sprintf(`\U%08X`, r)
	}
}

// FormatRanges renders ranges as a bracketed character class.
// A single character is rendered without brackets.
func FormatRanges(rs []RuneRange) string {
	if len(rs) == 0 {
		return "[]"
	}
	if len(rs) == 1 && rs[0].Lo == rs[0].Hi {
		return quoteRune(rs[0].Lo)
	}
	if len(rs) == 1 && rs[0].Lo == 0 && rs[0].Hi >= MaxCodePoint {
		return "."
	}
	var b strings.Builder
	b.WriteByte('[')
	for _, r := range rs {
		b.WriteString(r.String())
	}
	b.WriteByte(']')
	return b.String()
}

// normalizeRanges sorts rs and merges overlapping or adjacent ranges in place.
func normalizeRanges(rs []RuneRange) []RuneRange {
	if len(rs) < 2 {
		return rs
	}
	slices.SortFunc(rs, func(a, b RuneRange) int { return int(a.Lo - b.Lo) })
	out := rs[:1]
	for _, r := range rs[1:] {
		last := &out[len(out)-1]
		if r.Lo <= last.Hi+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// appendRange appends [lo, hi] to ascending rs, merging with the last range
// when adjacent.
func appendRange(rs []RuneRange, lo, hi rune) []RuneRange {
	if n := len(rs); n > 0 && rs[n-1].Hi+1 == lo {
		rs[n-1].Hi = hi
		return rs
	}
	return append(rs, RuneRange{lo, hi})
}

// rangesContain reports whether sorted rs contains r.
func rangesContain(rs []RuneRange, r rune) bool {
	_, found := slices.BinarySearchFunc(rs, r, func(rr RuneRange, t rune) int {
		switch {
		case rr.Hi < t:
			return -1
		case rr.Lo > t:
			return 1
		}
		return 0
	})
	return found
}

// encodeRanges writes ranges as "lo.hi,lo.hi".
func encodeRanges(rs []RuneRange) string {
	var b []byte
	for i, r := range rs {
		if i > 0 {
			b = append(b, ',')
		}
		b = textenc.AppendUint(b, uint64(r.Lo)) //nolint:gosec // code points are non-negative
		b = append(b, '.')
		b = textenc.AppendUint(b, uint64(r.Hi)) //nolint:gosec // code points are non-negative
	}
	return string(b)
}

// decodeRanges parses text written by encodeRanges.
func decodeRanges(s string) ([]RuneRange, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	rs := make([]RuneRange, 0, len(parts))
	for _, p := range parts {
		lo, hi, ok := strings.Cut(p, ".")
		if !ok {
			return nil, fmt.Errorf("algebra: malformed range %q", p)
		}
		l, err := textenc.DecodeUint(lo)
		if err != nil {
			return nil, err
		}
		h, err := textenc.DecodeUint(hi)
		if err != nil {
			return nil, err
		}
		if l > h || h > uint64(MaxCodePoint) {
			return nil, fmt.Errorf("algebra: invalid range %q", p)
		}
		rs = append(rs, RuneRange{rune(l), rune(h)}) //nolint:gosec // bounded by MaxCodePoint
	}
	return rs, nil
}
