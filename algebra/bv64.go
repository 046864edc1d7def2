package algebra

import (
	"fmt"
	"math/bits"

	"github.com/coregx/srm/internal/textenc"
)

// BV64Algebra represents predicates as 64-bit sets of atom ids.
type BV64Algebra struct {
	atomBase
	all   uint64
	preds []uint64
}

var _ MintermAlgebra[uint64] = (*BV64Algebra)(nil)

// NewBV64Algebra creates the algebra over the given atoms (at most 64).
func NewBV64Algebra(atoms [][]RuneRange) (*BV64Algebra, error) {
	if len(atoms) > 64 {
		return nil, fmt.Errorf("algebra: %d atoms exceed the 64-bit algebra", len(atoms))
	}
	base, err := newAtomBase(atoms)
	if err != nil {
		return nil, err
	}
	a := &BV64Algebra{atomBase: base, all: ^uint64(0) >> (64 - len(atoms))}
	a.preds = make([]uint64, len(atoms))
	for i := range a.preds {
		a.preds[i] = 1 << i
	}
	return a, nil
}

func (a *BV64Algebra) True() uint64 { return a.all }
func (a *BV64Algebra) False() uint64 { return 0 }
func (a *BV64Algebra) And(x, y uint64) uint64 { return x & y }
func (a *BV64Algebra) Or(x, y uint64) uint64 { return x | y }
func (a *BV64Algebra) Not(x uint64) uint64 { return ^x & a.all }
func (a *BV64Algebra) IsSatisfiable(x uint64) bool { return x != 0 }
func (a *BV64Algebra) Atoms() []uint64 { return a.preds }
func (a *BV64Algebra) Serialize() string { return a.serializeAtoms(KindBV64) }
func (a *BV64Algebra) SerializePredicate(x uint64) string { return textenc.EncodeUint(x) }

// DomainSize returns the number of characters in the atoms of x.
func (a *BV64Algebra) DomainSize(x uint64) uint64 {
	var n uint64
	for x != 0 {
		i := bits.TrailingZeros64(x)
		n += a.sizes[i]
		x &= x - 1
	}
	return n
}

// Ranges returns the character ranges of the atoms of x.
func (a *BV64Algebra) Ranges(x uint64) []RuneRange {
	var rs []RuneRange
	for x != 0 {
		i := bits.TrailingZeros64(x)
		rs = append(rs, a.atoms[i]...)
		x &= x - 1
	}
	return normalizeRanges(rs)
}

// FromCharSet returns the set of atoms whose members satisfy contains.
func (a *BV64Algebra) FromCharSet(contains func(r rune) bool) uint64 {
	var x uint64
	for i := range a.atoms {
		if contains(a.representative(i)) {
			x |= 1 << i
		}
	}
	return x
}

// DeserializePredicate decodes a predicate written by SerializePredicate.
func (a *BV64Algebra) DeserializePredicate(s string) (uint64, error) {
	x, err := textenc.DecodeUint(s)
	if err != nil {
		return 0, err
	}
	if x&^a.all != 0 {
		return 0, fmt.Errorf("algebra: predicate %q names atoms beyond %d", s, len(a.atoms))
	}
	return x, nil
}
