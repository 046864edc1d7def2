package symbolic

import (
	"testing"

	"github.com/coregx/srm/algebra"
	"github.com/google/go-cmp/cmp"
)

func TestFixedPrefix(t *testing.T) {
	s, b := newTestBuilder(t)
	fold := func(c rune) *bddNode {
		return b.Singleton(s.Or(s.Char(c), s.Char(c-'a'+'A')))
	}
	tests := []struct {
		name       string
		node       *bddNode
		prefix     string
		ignoreCase bool
	}{
		{"literal", lit(s, b, "abc"), "abc", false},
		{"folded", b.Concat(fold('a'), fold('b'), lit(s, b, "c")), "ab", true},
		{"folded with digit", b.Concat(fold('a'), lit(s, b, "1"), fold('b')), "a1b", true},
		{"exact then folded", b.Concat(lit(s, b, "ab"), fold('c')), "ab", false},
		{"exact loop", b.Concat(b.Loop(lit(s, b, "a"), 3, 3, false), lit(s, b, "b")), "aaab", false},
		{"ranged loop", b.Concat(b.Loop(lit(s, b, "a"), 2, 4, false), lit(s, b, "b")), "aa", false},
		{"class first", b.Concat(class(s, b, 'a', 'b'), lit(s, b, "c")), "", false},
		{"anchored", b.Concat(b.StartAnchor(), lit(s, b, "ab")), "", false},
		{"alternation", b.Or(lit(s, b, "ab"), lit(s, b, "ac")), "", false},
		{"non ascii", lit(s, b, "héllo"), "héllo", false},
		{"watchdog stops", b.Concat(lit(s, b, "ab"), b.WatchDog(2)), "ab", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, ic := b.FixedPrefix(tt.node)
			if prefix != tt.prefix || ic != tt.ignoreCase {
				t.Errorf("FixedPrefix(%v) = (%q, %v), want (%q, %v)", tt.node, prefix, ic, tt.prefix, tt.ignoreCase)
			}
		})
	}
}

func TestStartSet(t *testing.T) {
	s, b := newTestBuilder(t)
	tests := []struct {
		name string
		node *bddNode
		want []algebra.RuneRange
	}{
		{"literal", lit(s, b, "xyz"), []algebra.RuneRange{{'x', 'x'}}},
		{"nullable head", b.Concat(b.Or(lit(s, b, "a"), b.Loop(lit(s, b, "b"), 0, Unbounded, false)), lit(s, b, "c")), []algebra.RuneRange{{'a', 'c'}}},
		{"boundary", b.Concat(b.WordBoundary(), lit(s, b, "x")), []algebra.RuneRange{{'x', 'x'}}},
		{"conjunction", b.And(class(s, b, 'a', 'm'), class(s, b, 'k', 'z')), []algebra.RuneRange{{'k', 'm'}}},
		{"complement", b.Not(lit(s, b, "a")), []algebra.RuneRange{{0, algebra.MaxCodePoint}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, b.StartSetRanges(tt.node)); diff != "" {
				t.Errorf("StartSet(%v) mismatch (-want +got):\n%s", tt.node, diff)
			}
		})
	}
}
