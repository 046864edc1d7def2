package algebra

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"strings"
	"sync"

	"github.com/coregx/srm/internal/textenc"
)

// BV is an arbitrary-width set of atom ids. BVs are interned by their
// BVAlgebra, so equal sets are the same pointer.
type BV struct {
	blocks []uint64
}

// Contains reports whether atom i is in the set.
func (v *BV) Contains(i int) bool {
	return v.blocks[i>>6]&(1<<(i&63)) != 0
}

// String renders the set as its atom ids.
func (v *BV) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for w, b := range v.blocks {
		for b != 0 {
			if !first {
				sb.WriteByte(',')
			}
			first = false
			fmt.Fprintf(&sb, "%d", w*64+bits.TrailingZeros64(b))
			b &= b - 1
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

// BVAlgebra represents predicates as interned wide bitsets of atom ids. It is
// used when a pattern has more than 64 atoms.
//
// Interning is guarded by a mutex, so the algebra may be used by concurrent
// matchers.
type BVAlgebra struct {
	atomBase
	words int
	last  uint64 // mask of valid bits in the last block

	mu     sync.Mutex
	intern map[string]*BV

	tru, fls *BV
	preds    []*BV
}

var _ MintermAlgebra[*BV] = (*BVAlgebra)(nil)

// NewBVAlgebra creates the algebra over the given atoms.
func NewBVAlgebra(atoms [][]RuneRange) (*BVAlgebra, error) {
	base, err := newAtomBase(atoms)
	if err != nil {
		return nil, err
	}
	k := len(atoms)
	a := &BVAlgebra{
		atomBase: base,
		words:    (k + 63) / 64,
		intern:   make(map[string]*BV),
	}
	a.last = ^uint64(0) >> ((64 - k%64) % 64)
	a.fls = a.mk(make([]uint64, a.words))
	all := make([]uint64, a.words)
	for i := range all {
		all[i] = ^uint64(0)
	}
	all[a.words-1] = a.last
	a.tru = a.mk(all)
	a.preds = make([]*BV, k)
	for i := range a.preds {
		blocks := make([]uint64, a.words)
		blocks[i>>6] = 1 << (i & 63)
		a.preds[i] = a.mk(blocks)
	}
	return a, nil
}

func (a *BVAlgebra) mk(blocks []uint64) *BV {
	key := make([]byte, 8*len(blocks))
	for i, b := range blocks {
		binary.LittleEndian.PutUint64(key[8*i:], b)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if v, ok := a.intern[string(key)]; ok {
		return v
	}
	v := &BV{blocks: blocks}
	a.intern[string(key)] = v
	return v
}

func (a *BVAlgebra) True() *BV { return a.tru }
func (a *BVAlgebra) False() *BV { return a.fls }
func (a *BVAlgebra) Atoms() []*BV { return a.preds }
func (a *BVAlgebra) Serialize() string { return a.serializeAtoms(KindBV) }

// And returns the intersection of x and y.
func (a *BVAlgebra) And(x, y *BV) *BV {
	if x == y {
		return x
	}
	out := make([]uint64, a.words)
	for i := range out {
		out[i] = x.blocks[i] & y.blocks[i]
	}
	return a.mk(out)
}

// Or returns the union of x and y.
func (a *BVAlgebra) Or(x, y *BV) *BV {
	if x == y {
		return x
	}
	out := make([]uint64, a.words)
	for i := range out {
		out[i] = x.blocks[i] | y.blocks[i]
	}
	return a.mk(out)
}

// Not returns the complement of x.
func (a *BVAlgebra) Not(x *BV) *BV {
	out := make([]uint64, a.words)
	for i := range out {
		out[i] = ^x.blocks[i]
	}
	out[a.words-1] &= a.last
	return a.mk(out)
}

// IsSatisfiable reports whether x names at least one atom.
func (a *BVAlgebra) IsSatisfiable(x *BV) bool {
	return x != a.fls
}

// DomainSize returns the number of characters in the atoms of x.
func (a *BVAlgebra) DomainSize(x *BV) uint64 {
	var n uint64
	for w, b := range x.blocks {
		for b != 0 {
			n += a.sizes[w*64+bits.TrailingZeros64(b)]
			b &= b - 1
		}
	}
	return n
}

// Ranges returns the character ranges of the atoms of x.
func (a *BVAlgebra) Ranges(x *BV) []RuneRange {
	var rs []RuneRange
	for w, b := range x.blocks {
		for b != 0 {
			rs = append(rs, a.atoms[w*64+bits.TrailingZeros64(b)]...)
			b &= b - 1
		}
	}
	return normalizeRanges(rs)
}

// FromCharSet returns the set of atoms whose members satisfy contains.
func (a *BVAlgebra) FromCharSet(contains func(r rune) bool) *BV {
	out := make([]uint64, a.words)
	for i := range a.atoms {
		if contains(a.representative(i)) {
			out[i>>6] |= 1 << (i & 63)
		}
	}
	return a.mk(out)
}

// SerializePredicate encodes x as its blocks joined by '.'.
func (a *BVAlgebra) SerializePredicate(x *BV) string {
	return textenc.EncodeUints(x.blocks, '.')
}

// DeserializePredicate decodes a predicate written by SerializePredicate.
func (a *BVAlgebra) DeserializePredicate(s string) (*BV, error) {
	blocks, err := textenc.DecodeUints(s, '.')
	if err != nil {
		return nil, err
	}
	if len(blocks) != a.words {
		return nil, fmt.Errorf("algebra: predicate %q has %d blocks, want %d", s, len(blocks), a.words)
	}
	if blocks[a.words-1]&^a.last != 0 {
		return nil, fmt.Errorf("algebra: predicate %q names atoms beyond %d", s, len(a.atoms))
	}
	return a.mk(blocks), nil
}
