package convert

import (
	"errors"
	"regexp/syntax"
	"testing"

	"github.com/coregx/srm/algebra"
	"github.com/coregx/srm/symbolic"
)

func convertPattern(t *testing.T, pattern string, flags syntax.Flags, culture string) (*algebra.CharSetSolver, *symbolic.Builder[*algebra.BDD], *Node) {
	t.Helper()
	re, err := syntax.Parse(pattern, flags)
	if err != nil {
		t.Fatalf("syntax.Parse(%q): %v", pattern, err)
	}
	s := algebra.NewCharSetSolver()
	b := symbolic.NewBuilder[*algebra.BDD](s)
	n, err := New(s, b, culture).Convert(re)
	if err != nil {
		t.Fatalf("Convert(%q): %v", pattern, err)
	}
	return s, b, n
}

func TestConvert_String(t *testing.T) {
	tests := []struct {
		pattern string
		flags   syntax.Flags
		want    string
	}{
		{`abc`, syntax.Perl, "abc"},
		{`a(?:b|c)*d`, syntax.Perl, "a[b-c]*d"},
		{`(ab|cd)+?`, syntax.Perl, "(ab|cd)+?"},
		{`x{2,5}`, syntax.Perl, "x{2,5}"},
		{`x{3,}`, syntax.Perl, "x{3,}"},
		{`^a$`, syntax.Perl, `\Aa\Z`},
		{`^a\z`, syntax.Perl, `\Aa\z`},
		{`^a$`, syntax.Perl &^ syntax.OneLine, "^a$"},
		{`\bword\B`, syntax.Perl, `\bword\B`},
		{`[0-9]`, syntax.Perl, "[0-9]"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, _, n := convertPattern(t, tt.pattern, tt.flags, "")
			if got := n.String(); got != tt.want {
				t.Errorf("Convert(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestConvert_Dot(t *testing.T) {
	s, _, n := convertPattern(t, `.`, syntax.Perl, "")
	if s.Contains(n.Pred(), '\n') || !s.Contains(n.Pred(), 'x') {
		t.Error("dot without DotNL should exclude only newline")
	}
	s, _, n = convertPattern(t, `.`, syntax.Perl|syntax.DotNL, "")
	if !s.Contains(n.Pred(), '\n') {
		t.Error("dot with DotNL should include newline")
	}
}

func TestConvert_FoldCase(t *testing.T) {
	tests := []struct {
		name    string
		culture string
		lit     rune
		in      []rune
		out     []rune
	}{
		{"ascii", "", 'a', []rune{'a', 'A'}, []rune{'b'}},
		{"kelvin", "", 'k', []rune{'k', 'K', 'K'}, nil},
		{"invariant i", "", 'i', []rune{'i', 'I'}, []rune{'İ', 'ı'}},
		{"turkish i", "tr-TR", 'i', []rune{'i', 'İ', 'I', 'ı'}, []rune{'j'}},
		{"turkish upper i", "tr", 'I', []rune{'i', 'İ', 'I', 'ı'}, nil},
		{"turkish dotted", "tr", 'İ', []rune{'i', 'İ'}, []rune{'I', 'ı'}},
		{"turkish dotless", "tr", 'ı', []rune{'I', 'ı'}, []rune{'i', 'İ'}},
		{"azeri", "az", 'i', []rune{'İ', 'ı'}, nil},
		{"not turkish", "trx", 'i', []rune{'I'}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, n := convertPattern(t, "(?i)"+string(tt.lit), syntax.Perl, tt.culture)
			if n.Kind() != symbolic.KindSingleton {
				t.Fatalf("got %v, want a singleton", n)
			}
			for _, r := range tt.in {
				if !s.Contains(n.Pred(), r) {
					t.Errorf("fold set of %q lacks %q", tt.lit, r)
				}
			}
			for _, r := range tt.out {
				if s.Contains(n.Pred(), r) {
					t.Errorf("fold set of %q contains %q", tt.lit, r)
				}
			}
		})
	}
}

func TestConvert_Predicates(t *testing.T) {
	s := algebra.NewCharSetSolver()
	c := New(s, symbolic.NewBuilder[*algebra.BDD](s), "")
	w := c.WordLetterPredicate()
	if s.DomainSize(w) != 63 {
		t.Errorf("word letters = %d, want 63", s.DomainSize(w))
	}
	if !s.Contains(w, '_') || s.Contains(w, 'é') {
		t.Error("word letters should be ASCII [0-9A-Za-z_]")
	}
	if s.DomainSize(c.NewlinePredicate()) != 1 {
		t.Error("newline predicate should contain one character")
	}
}

func TestConvert_Unsupported(t *testing.T) {
	s := algebra.NewCharSetSolver()
	c := New(s, symbolic.NewBuilder[*algebra.BDD](s), "")
	_, err := c.Convert(&syntax.Regexp{Op: syntax.Op(200)})
	if !errors.Is(err, ErrUnsupportedOp) {
		t.Errorf("error = %v, want ErrUnsupportedOp", err)
	}
}
