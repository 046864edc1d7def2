package symbolic

import (
	"testing"
)

func TestSerialize_RoundTrip(t *testing.T) {
	s, b := newTestBuilder(t)
	a := lit(s, b, "a")
	nodes := []*bddNode{
		b.Epsilon(),
		b.Nothing(),
		b.Concat(b.StartAnchor(), lit(s, b, "abc"), b.EndAnchor()),
		b.Loop(b.Or(a, class(s, b, '0', '9')), 2, Unbounded, true),
		b.Concat(b.BOLAnchor(), b.WordBoundary(), b.NonWordBoundary(), b.EOLAnchor()),
		b.Concat(b.StartZAnchor(), a, b.EndZAnchor()),
		b.And(b.Loop(a, 0, 5, false), b.Not(lit(s, b, "aa"))),
		b.IfThenElse(b.WordBoundary(), a, lit(s, b, "b")),
		b.Concat(lit(s, b, "ab"), b.WatchDog(2)),
		b.Or(b.Concat(a, b.WatchDog(1)), lit(s, b, "é")),
	}
	for _, n := range nodes {
		text := b.Serialize(n)
		got, err := b.Deserialize(text)
		if err != nil {
			t.Errorf("Deserialize(%q): %v", text, err)
			continue
		}
		if got != n {
			t.Errorf("round trip of %v gave %v (text %q)", n, got, text)
		}
	}
}

func TestDeserialize_Errors(t *testing.T) {
	_, b := newTestBuilder(t)
	tests := []string{
		"",
		"Q",
		"C(E)",
		"C(E,E",
		"L(E,1,2,7)",
		"L(E,1)",
		"W(x!)",
		"S(zz.1)",
		"EE",
		"I(E,E)",
	}
	for _, text := range tests {
		if _, err := b.Deserialize(text); err == nil {
			t.Errorf("Deserialize(%q) succeeded", text)
		}
	}
}
