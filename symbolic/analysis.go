package symbolic

import "github.com/coregx/srm/algebra"

// prefix modes
const (
	prefixOpen = iota
	prefixExact
	prefixFold
)

// FixedPrefix extracts the longest literal that every match of n starts with.
//
// The literal is either exact, or ASCII case-insensitive (ignoreCase is then
// true and the literal is lower-cased). An ignore-case literal may contain
// exact characters that have no ASCII case variant. The walk stops at the
// first element that does not fit the chosen mode, so an anchored or
// class-led expression yields "".
func (b *Builder[P]) FixedPrefix(n *Node[P]) (prefix string, ignoreCase bool) {
	var runes []rune
	mode := prefixOpen
	// add appends c count times; it reports false when c does not fit the mode.
	add := func(pred P, count int) bool {
		c, folded, ok := b.literalChar(pred)
		if !ok {
			return false
		}
		switch {
		case mode == prefixOpen && folded:
			mode = prefixFold
		case mode == prefixOpen:
			mode = prefixExact
		case mode == prefixExact && folded:
			return false
		case mode == prefixFold && !folded && isASCIILetter(c):
			return false
		}
		for range count {
			runes = append(runes, c)
		}
		return true
	}

spine:
	for m := n; m != nil; {
		head := m
		m = nil
		if head.kind == KindConcat {
			head, m = head.left, head.right
		}
		switch head.kind {
		case KindSingleton:
			if !add(head.pred, 1) {
				break spine
			}
		case KindLoop:
			if head.left.kind != KindSingleton || head.lower == 0 {
				break spine
			}
			if !add(head.left.pred, head.lower) || head.lower != head.upper {
				break spine
			}
		default:
			break spine
		}
	}
	return string(runes), mode == prefixFold
}

// literalChar reports the single character of pred, or the lower-case member
// of an ASCII case pair such as [Aa] with folded set.
func (b *Builder[P]) literalChar(pred P) (c rune, folded, ok bool) {
	rs := b.alg.Ranges(pred)
	switch {
	case len(rs) == 1 && rs[0].Lo == rs[0].Hi:
		return rs[0].Lo, false, true
	case len(rs) == 2 && rs[0].Lo == rs[0].Hi && rs[1].Lo == rs[1].Hi &&
		rs[0].Lo >= 'A' && rs[0].Lo <= 'Z' && rs[1].Lo == rs[0].Lo+'a'-'A':
		return rs[1].Lo, true, true
	}
	return 0, false, false
}

func isASCIILetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// StartSet returns a predicate containing every character that can begin a
// match of n. The result over-approximates where the exact set is not
// structurally evident (complements yield True).
func (b *Builder[P]) StartSet(n *Node[P]) P {
	alg := b.alg
	switch n.kind {
	case KindSingleton:
		return n.pred
	case KindConcat:
		s := b.StartSet(n.left)
		if n.left.info.CanBeNullable() {
			s = alg.Or(s, b.StartSet(n.right))
		}
		return s
	case KindLoop:
		return b.StartSet(n.left)
	case KindOr:
		s := alg.False()
		for _, a := range n.alts {
			s = alg.Or(s, b.StartSet(a))
		}
		return s
	case KindAnd:
		s := alg.True()
		for _, a := range n.alts {
			s = alg.And(s, b.StartSet(a))
		}
		return s
	case KindNot:
		return alg.True()
	case KindIfThenElse:
		return alg.Or(b.StartSet(n.right), b.StartSet(n.third))
	}
	return alg.False()
}

// StartSetRanges returns StartSet(n) as rune ranges.
func (b *Builder[P]) StartSetRanges(n *Node[P]) []algebra.RuneRange {
	return b.alg.Ranges(b.StartSet(n))
}
