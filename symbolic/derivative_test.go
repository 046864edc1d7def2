package symbolic

import (
	"testing"
)

func TestDerivative_FullMatch(t *testing.T) {
	s, b := newTestBuilder(t)
	a, bc, d := lit(s, b, "a"), b.Or(lit(s, b, "b"), lit(s, b, "c")), lit(s, b, "d")
	lower := b.Loop(class(s, b, 'a', 'z'), 0, Unbounded, false)
	noQ := b.Not(b.Concat(b.DotStar(), lit(s, b, "q"), b.DotStar()))

	tests := []struct {
		name  string
		node  *bddNode
		input string
		want  bool
	}{
		{"concat star", b.Concat(a, b.Loop(bc, 0, Unbounded, false), d), "ad", true},
		{"concat star many", b.Concat(a, b.Loop(bc, 0, Unbounded, false), d), "abcbd", true},
		{"concat star prefix only", b.Concat(a, b.Loop(bc, 0, Unbounded, false), d), "abc", false},
		{"bounded below", b.Loop(a, 2, 3, false), "a", false},
		{"bounded low", b.Loop(a, 2, 3, false), "aa", true},
		{"bounded high", b.Loop(a, 2, 3, false), "aaa", true},
		{"bounded above", b.Loop(a, 2, 3, false), "aaaa", false},
		{"lazy loop same language", b.Loop(a, 2, 3, true), "aaa", true},
		{"word boundaries", b.Concat(b.WordBoundary(), lit(s, b, "ab"), b.WordBoundary()), "ab", true},
		{"non boundary fails", b.Concat(b.NonWordBoundary(), lit(s, b, "ab")), "ab", false},
		{"boundary inside", b.Concat(lit(s, b, "a"), b.WordBoundary(), lit(s, b, " ")), "a ", true},
		{"boundary inside fails", b.Concat(lit(s, b, "a"), b.WordBoundary(), lit(s, b, "b")), "ab", false},
		{"conjunction", b.And(lower, noQ), "abc", true},
		{"conjunction excluded", b.And(lower, noQ), "aqc", false},
		{"start anchor", b.Concat(b.StartAnchor(), a), "a", true},
		{"start anchor late", b.Concat(a, b.StartAnchor(), a), "aa", false},
		{"end anchor", b.Concat(a, b.EndAnchor()), "a", true},
		{"bol after newline", b.Concat(lit(s, b, "\n"), b.BOLAnchor(), a), "\na", true},
		{"eol before newline", b.Concat(a, b.EOLAnchor(), lit(s, b, "\n")), "a\n", true},
		{"eol mid line", b.Concat(a, b.EOLAnchor(), lit(s, b, "b")), "ab", false},
		{"nested loops", b.Loop(b.Loop(a, 2, 2, false), 1, 2, false), "aaaa", true},
		{"nested loops odd", b.Loop(b.Loop(a, 2, 2, false), 1, 2, false), "aaa", false},
		{"astral", b.Concat(class(s, b, 0x1F600, 0x1F64F), a), "\U0001F601a", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fullMatch(s, b, tt.node, tt.input); got != tt.want {
				t.Errorf("fullMatch(%v, %q) = %v, want %v", tt.node, tt.input, got, tt.want)
			}
		})
	}
}

func TestDerivative_Residuals(t *testing.T) {
	s, b := newTestBuilder(t)
	abc := lit(s, b, "abc")
	if got := b.Derivative(abc, s.Char('a'), KindNone, KindNone); got != lit(s, b, "bc") {
		t.Errorf("d_a(abc) = %v, want bc", got)
	}
	if got := b.Derivative(abc, s.Char('x'), KindNone, KindNone); !got.IsNothing() {
		t.Errorf("d_x(abc) = %v, want []", got)
	}
	loop := b.Loop(lit(s, b, "a"), 2, 5, true)
	want := b.Loop(lit(s, b, "a"), 1, 4, true)
	if got := b.Derivative(loop, s.Char('a'), KindNone, KindNone); got != want {
		t.Errorf("d_a(a{2,5}?) = %v, want %v", got, want)
	}
	if got := b.Derivative(b.WatchDog(3), s.Char('a'), KindNone, KindNone); !got.IsNothing() {
		t.Errorf("d_a(watchdog) = %v, want []", got)
	}
}

func TestNullability_Anchors(t *testing.T) {
	_, b := newTestBuilder(t)
	tests := []struct {
		anchor     *bddNode
		prev, next CharKind
		want       bool
	}{
		{b.StartAnchor(), KindStart, KindNone, true},
		{b.StartAnchor(), KindNewline, KindNone, false},
		{b.EndAnchor(), KindNone, KindEnd, true},
		{b.EndAnchor(), KindNone, KindNewlineZ, false},
		{b.BOLAnchor(), KindStart, KindNone, true},
		{b.BOLAnchor(), KindNewline, KindNone, true},
		{b.BOLAnchor(), KindNewlineZ, KindEnd, true},
		{b.BOLAnchor(), KindWordLetter, KindNone, false},
		{b.EOLAnchor(), KindNone, KindEnd, true},
		{b.EOLAnchor(), KindNone, KindNewline, true},
		{b.EOLAnchor(), KindNone, KindNewlineZ, true},
		{b.EOLAnchor(), KindNone, KindWordLetter, false},
		{b.EndZAnchor(), KindNone, KindEnd, true},
		{b.EndZAnchor(), KindNone, KindNewlineZ, true},
		{b.EndZAnchor(), KindNone, KindNewline, false},
		{b.StartZAnchor(), KindStart, KindNone, true},
		{b.StartZAnchor(), KindNewlineZ, KindNone, true},
		{b.StartZAnchor(), KindNewline, KindNone, false},
		{b.WordBoundary(), KindStart, KindWordLetter, true},
		{b.WordBoundary(), KindWordLetter, KindEnd, true},
		{b.WordBoundary(), KindWordLetter, KindWordLetter, false},
		{b.WordBoundary(), KindNone, KindNewline, false},
		{b.NonWordBoundary(), KindWordLetter, KindWordLetter, true},
		{b.NonWordBoundary(), KindStart, KindEnd, true},
		{b.NonWordBoundary(), KindNone, KindWordLetter, false},
	}
	for _, tt := range tests {
		if got := tt.anchor.IsNullableFor(tt.prev, tt.next); got != tt.want {
			t.Errorf("%v.IsNullableFor(%v, %v) = %v, want %v", tt.anchor, tt.prev, tt.next, got, tt.want)
		}
	}
}

func TestNullability_Composite(t *testing.T) {
	s, b := newTestBuilder(t)
	a := lit(s, b, "a")
	ite := b.IfThenElse(b.WordBoundary(), b.Epsilon(), a)
	if !ite.IsNullableFor(KindStart, KindWordLetter) {
		t.Error("ite with satisfied condition should follow then-branch")
	}
	if ite.IsNullableFor(KindNone, KindNone) {
		t.Error("ite with failed condition should follow else-branch")
	}
	not := b.Not(b.EndAnchor())
	if not.IsNullableFor(KindNone, KindEnd) || !not.IsNullableFor(KindNone, KindNone) {
		t.Error("complement of an anchor should negate its nullability")
	}
}
