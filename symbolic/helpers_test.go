package symbolic

import (
	"testing"

	"github.com/coregx/srm/algebra"
)

type bddBuilder = Builder[*algebra.BDD]
type bddNode = Node[*algebra.BDD]

func newTestBuilder(t *testing.T) (*algebra.CharSetSolver, *bddBuilder) {
	t.Helper()
	s := algebra.NewCharSetSolver()
	return s, NewBuilder[*algebra.BDD](s)
}

// lit builds the concatenation of the characters of text.
func lit(s *algebra.CharSetSolver, b *bddBuilder, text string) *bddNode {
	var parts []*bddNode
	for _, r := range text {
		parts = append(parts, b.Singleton(s.Char(r)))
	}
	return b.Concat(parts...)
}

func class(s *algebra.CharSetSolver, b *bddBuilder, lo, hi rune) *bddNode {
	return b.Singleton(s.Range(lo, hi))
}

func testKind(r rune, last bool) CharKind {
	switch {
	case r == '\n' && last:
		return KindNewlineZ
	case r == '\n':
		return KindNewline
	case r == '_' || (r >= '0' && r <= '9') || (r|0x20 >= 'a' && r|0x20 <= 'z'):
		return KindWordLetter
	}
	return KindNone
}

// fullMatch reports whether n matches all of input, by repeated derivatives.
func fullMatch(s *algebra.CharSetSolver, b *bddBuilder, n *bddNode, input string) bool {
	runes := []rune(input)
	prev := KindStart
	for i, r := range runes {
		next := testKind(r, i == len(runes)-1)
		n = b.Derivative(n, s.Char(r), prev, next)
		if n.IsNothing() {
			return false
		}
		prev = next
	}
	return n.IsNullableFor(prev, KindEnd)
}
