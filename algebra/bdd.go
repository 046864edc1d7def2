package algebra

import (
	"fmt"

	"github.com/coregx/srm/internal/conv"
)

// topBit is the most significant bit of the code point domain.
const topBit = 20

// BDD is a node of a reduced ordered binary decision diagram over the bits of
// a code point, most significant bit first.
//
// BDDs are interned by their CharSetSolver: two BDDs of the same solver
// denote the same set if and only if they are the same pointer.
type BDD struct {
	id   int
	bit  int // -1 for the two terminals
	one  *BDD
	zero *BDD
}

// ID returns the node's index in its solver's unique table.
func (b *BDD) ID() int { return b.id }

// IsLeaf reports whether b is one of the terminals True or False.
func (b *BDD) IsLeaf() bool { return b.bit < 0 }

type bddKey struct {
	bit       int
	one, zero int
}

// CharSetSolver builds and combines BDD predicates.
//
// Nodes live in a unique table keyed by (bit, one-child id, zero-child id),
// so structurally equal diagrams are shared. Results of And, Or and Not are
// memoized. A solver is not safe for concurrent use; it is only used while a
// pattern is being compiled.
type CharSetSolver struct {
	fls, tru *BDD
	nodes    []*BDD
	unique   map[bddKey]*BDD
	andMemo  map[[2]int]*BDD
	orMemo   map[[2]int]*BDD
	notMemo  map[int]*BDD
}

var _ Algebra[*BDD] = (*CharSetSolver)(nil)

// NewCharSetSolver creates an empty solver.
func NewCharSetSolver() *CharSetSolver {
	s := &CharSetSolver{
		unique:  make(map[bddKey]*BDD),
		andMemo: make(map[[2]int]*BDD),
		orMemo:  make(map[[2]int]*BDD),
		notMemo: make(map[int]*BDD),
	}
	s.fls = &BDD{id: 0, bit: -1}
	s.tru = &BDD{id: 1, bit: -1}
	s.nodes = []*BDD{s.fls, s.tru}
	return s
}

// True returns the set of all code points.
func (s *CharSetSolver) True() *BDD { return s.tru }

// False returns the empty set.
func (s *CharSetSolver) False() *BDD { return s.fls }

// NodeCount returns the number of interned nodes, terminals included.
func (s *CharSetSolver) NodeCount() int { return len(s.nodes) }

func (s *CharSetSolver) mk(bit int, one, zero *BDD) *BDD {
	if one == zero {
		return one
	}
	k := bddKey{bit, one.id, zero.id}
	if n, ok := s.unique[k]; ok {
		return n
	}
	n := &BDD{id: len(s.nodes), bit: bit, one: one, zero: zero}
	s.nodes = append(s.nodes, n)
	s.unique[k] = n
	return n
}

// Char returns the set containing only r.
func (s *CharSetSolver) Char(r rune) *BDD {
	return s.Range(r, r)
}

// Range returns the set of code points in [lo, hi].
// Bounds are clamped to the code point domain.
func (s *CharSetSolver) Range(lo, hi rune) *BDD {
	if lo < 0 {
		lo = 0
	}
	if hi > MaxCodePoint {
		hi = MaxCodePoint
	}
	if lo > hi {
		return s.fls
	}
	return s.mkRange(conv.RuneToUint32(lo), conv.RuneToUint32(hi), topBit)
}

// mkRange builds [lo, hi] over bits bit..0.
func (s *CharSetSolver) mkRange(lo, hi uint32, bit int) *BDD {
	if lo > hi {
		return s.fls
	}
	full := uint32(1)<<(bit+1) - 1
	if lo == 0 && hi == full {
		return s.tru
	}
	m := uint32(1) << bit
	switch {
	case hi < m:
		return s.mk(bit, s.fls, s.mkRange(lo, hi, bit-1))
	case lo >= m:
		return s.mk(bit, s.mkRange(lo-m, hi-m, bit-1), s.fls)
	default:
		return s.mk(bit, s.mkRange(0, hi-m, bit-1), s.mkRange(lo, m-1, bit-1))
	}
}

// FromRanges returns the union of rs.
func (s *CharSetSolver) FromRanges(rs []RuneRange) *BDD {
	res := s.fls
	for _, r := range rs {
		res = s.Or(res, s.Range(r.Lo, r.Hi))
	}
	return res
}

// cofactors splits n on bit.
func cofactors(n *BDD, bit int) (one, zero *BDD) {
	if n.bit == bit {
		return n.one, n.zero
	}
	return n, n
}

func pairKey(a, b *BDD) [2]int {
	if a.id > b.id {
		a, b = b, a
	}
	return [2]int{a.id, b.id}
}

// And returns the intersection of a and b.
func (s *CharSetSolver) And(a, b *BDD) *BDD {
	switch {
	case a == s.fls || b == s.fls:
		return s.fls
	case a == s.tru:
		return b
	case b == s.tru || a == b:
		return a
	}
	k := pairKey(a, b)
	if r, ok := s.andMemo[k]; ok {
		return r
	}
	bit := max(a.bit, b.bit)
	a1, a0 := cofactors(a, bit)
	b1, b0 := cofactors(b, bit)
	r := s.mk(bit, s.And(a1, b1), s.And(a0, b0))
	s.andMemo[k] = r
	return r
}

// Or returns the union of a and b.
func (s *CharSetSolver) Or(a, b *BDD) *BDD {
	switch {
	case a == s.tru || b == s.tru:
		return s.tru
	case a == s.fls:
		return b
	case b == s.fls || a == b:
		return a
	}
	k := pairKey(a, b)
	if r, ok := s.orMemo[k]; ok {
		return r
	}
	bit := max(a.bit, b.bit)
	a1, a0 := cofactors(a, bit)
	b1, b0 := cofactors(b, bit)
	r := s.mk(bit, s.Or(a1, b1), s.Or(a0, b0))
	s.orMemo[k] = r
	return r
}

// Not returns the complement of a.
func (s *CharSetSolver) Not(a *BDD) *BDD {
	switch a {
	case s.tru:
		return s.fls
	case s.fls:
		return s.tru
	}
	if r, ok := s.notMemo[a.id]; ok {
		return r
	}
	r := s.mk(a.bit, s.Not(a.one), s.Not(a.zero))
	s.notMemo[a.id] = r
	return r
}

// Diff returns a minus b.
func (s *CharSetSolver) Diff(a, b *BDD) *BDD {
	return s.And(a, s.Not(b))
}

// IsSatisfiable reports whether a is non-empty.
func (s *CharSetSolver) IsSatisfiable(a *BDD) bool {
	return a != s.fls
}

// Contains reports whether r is a member of a.
func (s *CharSetSolver) Contains(a *BDD, r rune) bool {
	if r < 0 || r > MaxCodePoint {
		return false
	}
	for !a.IsLeaf() {
		if r&(1<<a.bit) != 0 {
			a = a.one
		} else {
			a = a.zero
		}
	}
	return a == s.tru
}

// DomainSize returns the number of code points in a.
func (s *CharSetSolver) DomainSize(a *BDD) uint64 {
	return s.count(a, topBit)
}

func (s *CharSetSolver) count(n *BDD, bit int) uint64 {
	switch {
	case n == s.fls:
		return 0
	case n == s.tru:
		return uint64(1) << (bit + 1)
	case n.bit < bit:
		return 2 * s.count(n, bit-1)
	}
	return s.count(n.one, bit-1) + s.count(n.zero, bit-1)
}

// Ranges returns the members of a as sorted, merged ranges.
func (s *CharSetSolver) Ranges(a *BDD) []RuneRange {
	return s.appendRanges(nil, a, topBit, 0)
}

func (s *CharSetSolver) appendRanges(dst []RuneRange, n *BDD, bit int, base rune) []RuneRange {
	switch {
	case n == s.fls:
		return dst
	case n == s.tru:
		return appendRange(dst, base, base+rune(1)<<(bit+1)-1)
	case n.bit < bit:
		dst = s.appendRanges(dst, n, bit-1, base)
		return s.appendRanges(dst, n, bit-1, base|rune(1)<<bit)
	}
	dst = s.appendRanges(dst, n.zero, bit-1, base)
	return s.appendRanges(dst, n.one, bit-1, base|rune(1)<<bit)
}

// Minterms computes the atoms of preds, ordered by their smallest member.
func (s *CharSetSolver) Minterms(preds []*BDD) []*BDD {
	return ComputeMinterms[*BDD](s, preds)
}

// SerializePredicate encodes a as its range list.
func (s *CharSetSolver) SerializePredicate(a *BDD) string {
	return encodeRanges(s.Ranges(a))
}

// DeserializePredicate decodes a range list written by SerializePredicate.
func (s *CharSetSolver) DeserializePredicate(text string) (*BDD, error) {
	rs, err := decodeRanges(text)
	if err != nil {
		return nil, err
	}
	return s.FromRanges(rs), nil
}

// Format renders a as a character class.
func (s *CharSetSolver) Format(a *BDD) string {
	return FormatRanges(s.Ranges(a))
}

// String describes the solver size.
func (s *CharSetSolver) String() string {
	return fmt.Sprintf("CharSetSolver{nodes: %d}", len(s.nodes))
}
