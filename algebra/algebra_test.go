package algebra

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testAtoms returns the atoms of [0-9] and [a-z] plus their solver.
func testAtoms(t *testing.T) (*CharSetSolver, [][]RuneRange) {
	t.Helper()
	s := NewCharSetSolver()
	minterms := s.Minterms([]*BDD{s.Range('0', '9'), s.Range('a', 'z')})
	return s, AtomRangesFromMinterms(s, minterms)
}

func TestBV64Algebra(t *testing.T) {
	s, atoms := testAtoms(t)
	a, err := NewBV64Algebra(atoms)
	if err != nil {
		t.Fatal(err)
	}
	if a.AtomCount() != 3 {
		t.Fatalf("AtomCount = %d, want 3", a.AtomCount())
	}
	digits := a.FromCharSet(func(r rune) bool { return s.Contains(s.Range('0', '9'), r) })
	lower := a.FromCharSet(func(r rune) bool { return r >= 'a' && r <= 'z' })

	if a.DomainSize(digits) != 10 {
		t.Errorf("DomainSize(digits) = %d", a.DomainSize(digits))
	}
	if got := a.Ranges(a.Or(digits, lower)); !cmp.Equal(got, []RuneRange{{'0', '9'}, {'a', 'z'}}) {
		t.Errorf("Ranges(digits|lower) = %v", got)
	}
	if a.IsSatisfiable(a.And(digits, lower)) {
		t.Error("digits and lower overlap")
	}
	if a.Or(a.Not(digits), digits) != a.True() {
		t.Error("x | !x != True")
	}
	if a.DomainSize(a.True()) != 1<<21 {
		t.Errorf("DomainSize(True) = %d", a.DomainSize(a.True()))
	}

	for _, r := range "5xA" {
		id := a.Classifier().Classify(r)
		if !rangesContain(a.AtomRanges(id), r) {
			t.Errorf("Classify(%q) = %d, atom does not contain it", r, id)
		}
	}

	got, err := a.DeserializePredicate(a.SerializePredicate(digits))
	if err != nil || got != digits {
		t.Errorf("predicate round trip = %d, %v", got, err)
	}
	if _, err := a.DeserializePredicate("/"); err == nil {
		t.Error("predicate naming unknown atoms accepted")
	}
}

func TestBV64Algebra_TooManyAtoms(t *testing.T) {
	atoms := make([][]RuneRange, 65)
	for i := range atoms {
		atoms[i] = []RuneRange{{rune(i), rune(i)}}
	}
	atoms[64] = []RuneRange{{64, MaxCodePoint}}
	if _, err := NewBV64Algebra(atoms); err == nil {
		t.Error("65 atoms accepted by the 64-bit algebra")
	}
	if _, err := NewBVAlgebra(atoms); err != nil {
		t.Errorf("NewBVAlgebra: %v", err)
	}
}

func TestBVAlgebra(t *testing.T) {
	atoms := make([][]RuneRange, 100)
	for i := range 99 {
		atoms[i] = []RuneRange{{rune(i), rune(i)}}
	}
	atoms[99] = []RuneRange{{99, MaxCodePoint}}
	a, err := NewBVAlgebra(atoms)
	if err != nil {
		t.Fatal(err)
	}
	low := a.FromCharSet(func(r rune) bool { return r < 70 })
	high := a.FromCharSet(func(r rune) bool { return r >= 60 && r < 99 })

	if a.DomainSize(a.And(low, high)) != 10 {
		t.Errorf("DomainSize(low&high) = %d", a.DomainSize(a.And(low, high)))
	}
	if a.Not(a.Not(low)) != low {
		t.Error("double negation is not interned to the same pointer")
	}
	if a.Or(low, a.Not(low)) != a.True() {
		t.Error("x | !x != True")
	}
	if !a.Atoms()[65].Contains(65) {
		t.Error("atom 65 predicate does not contain bit 65")
	}
	if got := a.Ranges(a.And(low, high)); !cmp.Equal(got, []RuneRange{{60, 69}}) {
		t.Errorf("Ranges = %v", got)
	}
	text := a.SerializePredicate(high)
	got, err := a.DeserializePredicate(text)
	if err != nil || got != high {
		t.Errorf("predicate round trip of %q = %v, %v", text, got, err)
	}
	if _, err := a.DeserializePredicate("1"); err == nil {
		t.Error("predicate with the wrong block count accepted")
	}
}

func TestDecodeAlgebra(t *testing.T) {
	_, atoms := testAtoms(t)
	a, err := NewBV64Algebra(atoms)
	if err != nil {
		t.Fatal(err)
	}
	wide, decoded, err := DecodeAlgebra(a.Serialize())
	if err != nil {
		t.Fatal(err)
	}
	if wide {
		t.Error("BV64 parameters decoded as wide")
	}
	if diff := cmp.Diff(atoms, decoded); diff != "" {
		t.Errorf("atoms mismatch (-want +got):\n%s", diff)
	}

	wa, err := NewBVAlgebra(atoms)
	if err != nil {
		t.Fatal(err)
	}
	if wide, _, err := DecodeAlgebra(wa.Serialize()); err != nil || !wide {
		t.Errorf("BV parameters: wide=%v err=%v", wide, err)
	}

	for _, bad := range []string{"", "XX:0.1", "BV64:0.z!"} {
		if _, _, err := DecodeAlgebra(bad); err == nil {
			t.Errorf("DecodeAlgebra(%q) succeeded", bad)
		}
	}
}
