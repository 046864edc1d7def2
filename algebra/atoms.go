package algebra

import (
	"fmt"
	"strings"
)

// Algebra kind tags used in serialized algebra parameters.
const (
	KindBV64 = "BV64"
	KindBV   = "BV"
)

// atomBase holds what the bitset algebras share: the character ranges of
// every atom, their sizes, and the rune-to-atom classifier.
type atomBase struct {
	atoms      [][]RuneRange
	sizes      []uint64
	classifier *Classifier
}

func newAtomBase(atoms [][]RuneRange) (atomBase, error) {
	if len(atoms) == 0 {
		return atomBase{}, fmt.Errorf("algebra: no atoms")
	}
	c, err := NewClassifier(atoms)
	if err != nil {
		return atomBase{}, err
	}
	sizes := make([]uint64, len(atoms))
	for i, rs := range atoms {
		if len(rs) == 0 {
			return atomBase{}, fmt.Errorf("algebra: atom %d is empty", i)
		}
		for _, r := range rs {
			sizes[i] += r.Size()
		}
	}
	return atomBase{atoms: atoms, sizes: sizes, classifier: c}, nil
}

// AtomCount returns the number of atoms.
func (b *atomBase) AtomCount() int { return len(b.atoms) }

// Classifier returns the rune-to-atom classifier.
func (b *atomBase) Classifier() *Classifier { return b.classifier }

// AtomRanges returns the character ranges of atom i.
func (b *atomBase) AtomRanges(i int) []RuneRange { return b.atoms[i] }

// representative returns the smallest member of atom i.
func (b *atomBase) representative(i int) rune { return b.atoms[i][0].Lo }

func (b *atomBase) serializeAtoms(kind string) string {
	var sb strings.Builder
	sb.WriteString(kind)
	sb.WriteByte(':')
	for i, rs := range b.atoms {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(encodeRanges(rs))
	}
	return sb.String()
}

// AtomRangesFromMinterms converts BDD minterms into per-atom range lists.
func AtomRangesFromMinterms(s *CharSetSolver, minterms []*BDD) [][]RuneRange {
	atoms := make([][]RuneRange, len(minterms))
	for i, m := range minterms {
		atoms[i] = s.Ranges(m)
	}
	return atoms
}

// DecodeAlgebra parses serialized algebra parameters and reports whether they
// describe the wide bitset algebra.
func DecodeAlgebra(text string) (wide bool, atoms [][]RuneRange, err error) {
	kind, body, ok := strings.Cut(text, ":")
	if !ok {
		return false, nil, fmt.Errorf("algebra: missing kind in %q", text)
	}
	switch kind {
	case KindBV64:
	case KindBV:
		wide = true
	default:
		return false, nil, fmt.Errorf("algebra: unknown algebra kind %q", kind)
	}
	for _, part := range strings.Split(body, ";") {
		rs, err := decodeRanges(part)
		if err != nil {
			return false, nil, err
		}
		atoms = append(atoms, rs)
	}
	return wide, atoms, nil
}
