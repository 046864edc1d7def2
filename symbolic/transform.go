package symbolic

// Reverse returns the node matching the reversal of every string matched by
// n. Concatenations are reversed, \A and \z swap, ^ and $ swap, loops keep
// their bounds and laziness, and watchdogs are dropped.
func (b *Builder[P]) Reverse(n *Node[P]) *Node[P] {
	if r, ok := b.reverseMemo[n]; ok {
		return r
	}
	var r *Node[P]
	switch n.kind {
	case KindConcat:
		var parts []*Node[P]
		for m := n; ; m = m.right {
			if m.kind != KindConcat {
				parts = append(parts, b.Reverse(m))
				break
			}
			parts = append(parts, b.Reverse(m.left))
		}
		for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
			parts[i], parts[j] = parts[j], parts[i]
		}
		r = b.Concat(parts...)
	case KindLoop:
		r = b.Loop(b.Reverse(n.left), n.lower, n.upper, n.lazy)
	case KindOr:
		r = b.Or(b.mapNodes(n.alts, b.Reverse)...)
	case KindAnd:
		r = b.And(b.mapNodes(n.alts, b.Reverse)...)
	case KindNot:
		r = b.Not(b.Reverse(n.left))
	case KindIfThenElse:
		r = b.IfThenElse(b.Reverse(n.left), b.Reverse(n.right), b.Reverse(n.third))
	case KindStartAnchor:
		r = b.endAnchor
	case KindEndAnchor:
		r = b.startAnchor
	case KindBOLAnchor:
		r = b.eolAnchor
	case KindEOLAnchor:
		r = b.bolAnchor
	case KindEndZAnchor:
		r = b.startZAnchor
	case KindStartZAnchor:
		r = b.endZAnchor
	case KindWatchDog:
		r = b.epsilon
	default:
		r = n
	}
	b.reverseMemo[n] = r
	return r
}

// ReplaceStartAnchorByBottom returns n with every \A replaced by Nothing.
// It is applied to nodes reached in a context other than the start of the
// input, where \A can never hold again.
func (b *Builder[P]) ReplaceStartAnchorByBottom(n *Node[P]) *Node[P] {
	if !n.info.ContainsLineAnchor() {
		return n
	}
	if r, ok := b.stripMemo[n]; ok {
		return r
	}
	var r *Node[P]
	switch n.kind {
	case KindStartAnchor:
		r = b.nothing
	case KindConcat:
		r = b.concat2(b.ReplaceStartAnchorByBottom(n.left), b.ReplaceStartAnchorByBottom(n.right))
	case KindLoop:
		r = b.Loop(b.ReplaceStartAnchorByBottom(n.left), n.lower, n.upper, n.lazy)
	case KindOr:
		r = b.Or(b.mapNodes(n.alts, b.ReplaceStartAnchorByBottom)...)
	case KindAnd:
		r = b.And(b.mapNodes(n.alts, b.ReplaceStartAnchorByBottom)...)
	case KindNot:
		r = b.Not(b.ReplaceStartAnchorByBottom(n.left))
	case KindIfThenElse:
		r = b.IfThenElse(b.ReplaceStartAnchorByBottom(n.left),
			b.ReplaceStartAnchorByBottom(n.right), b.ReplaceStartAnchorByBottom(n.third))
	default:
		r = n
	}
	b.stripMemo[n] = r
	return r
}

// WithWatchDog appends WatchDog(k) to n when every match of n has the same
// positive length k. Otherwise n is returned unchanged.
func (b *Builder[P]) WithWatchDog(n *Node[P]) *Node[P] {
	if k := n.FixedLength(); k > 0 {
		return b.Concat(n, b.WatchDog(k))
	}
	return n
}

// DotStarPrefixed returns .*n, the search form of n.
func (b *Builder[P]) DotStarPrefixed(n *Node[P]) *Node[P] {
	return b.Concat(b.dotStar, n)
}

func (b *Builder[P]) mapNodes(ns []*Node[P], f func(*Node[P]) *Node[P]) []*Node[P] {
	out := make([]*Node[P], len(ns))
	for i, n := range ns {
		out[i] = f(n)
	}
	return out
}

// Predicates returns the distinct predicates of the Singleton nodes in n, in
// first-visit order.
func Predicates[P comparable](n *Node[P]) []P {
	var preds []P
	seenPred := make(map[P]struct{})
	seen := make(map[*Node[P]]struct{})
	var walk func(m *Node[P])
	walk = func(m *Node[P]) {
		if m == nil {
			return
		}
		if _, ok := seen[m]; ok {
			return
		}
		seen[m] = struct{}{}
		if m.kind == KindSingleton {
			if _, ok := seenPred[m.pred]; !ok {
				seenPred[m.pred] = struct{}{}
				preds = append(preds, m.pred)
			}
			return
		}
		walk(m.left)
		walk(m.right)
		walk(m.third)
		for _, a := range m.alts {
			walk(a)
		}
	}
	walk(n)
	return preds
}

// Transform rebuilds n in dst, mapping every predicate through f.
func Transform[P, Q comparable](n *Node[P], dst *Builder[Q], f func(P) Q) *Node[Q] {
	memo := make(map[*Node[P]]*Node[Q])
	var tr func(m *Node[P]) *Node[Q]
	trAll := func(ms []*Node[P]) []*Node[Q] {
		out := make([]*Node[Q], len(ms))
		for i, m := range ms {
			out[i] = tr(m)
		}
		return out
	}
	tr = func(m *Node[P]) *Node[Q] {
		if r, ok := memo[m]; ok {
			return r
		}
		var r *Node[Q]
		switch m.kind {
		case KindEpsilon:
			r = dst.epsilon
		case KindNothing:
			r = dst.nothing
		case KindSingleton:
			r = dst.Singleton(f(m.pred))
		case KindWatchDog:
			r = dst.WatchDog(m.lower)
		case KindConcat:
			r = dst.concat2(tr(m.left), tr(m.right))
		case KindLoop:
			r = dst.Loop(tr(m.left), m.lower, m.upper, m.lazy)
		case KindOr:
			r = dst.Or(trAll(m.alts)...)
		case KindAnd:
			r = dst.And(trAll(m.alts)...)
		case KindNot:
			r = dst.Not(tr(m.left))
		case KindIfThenElse:
			r = dst.IfThenElse(tr(m.left), tr(m.right), tr(m.third))
		default:
			r = dst.Anchor(m.kind)
		}
		memo[m] = r
		return r
	}
	return tr(n)
}
