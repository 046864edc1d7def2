package symbolic

// Derivative returns the residual of n after consuming one character of
// atom. prev is the kind of the character before the consumed one and next
// the kind of the consumed character itself; together they decide the
// anchors that sit at the position in front of it.
//
// The rules are the Brzozowski rules lifted to predicates:
//
//	d(p)        = ()      if atom ⊆ p, else []
//	d(R·S)      = d(R)·S | d(S)   when R is nullable here, else d(R)·S
//	d(R{l,u})   = d(R)·R{l-1,u-1}
//	d(R|S)      = d(R) | d(S)
//	d(R&S)      = d(R) & d(S)
//	d(~R)       = ~d(R)
//	d(ite)      = ite(d(C), d(T), d(E))
//
// Anchors, watchdogs and Epsilon derive to Nothing.
func (b *Builder[P]) Derivative(n *Node[P], atom P, prev, next CharKind) *Node[P] {
	d := derivation[P]{b: b, atom: atom, prev: prev, next: next}
	return d.derive(n)
}

type derivation[P comparable] struct {
	b          *Builder[P]
	atom       P
	prev, next CharKind
	memo       map[*Node[P]]*Node[P]
}

func (d *derivation[P]) derive(n *Node[P]) *Node[P] {
	if !n.info.ContainsSomeCharacter() {
		return d.b.nothing
	}
	if r, ok := d.memo[n]; ok {
		return r
	}
	b := d.b
	var r *Node[P]
	switch n.kind {
	case KindSingleton:
		r = b.nothing
		if b.alg.IsSatisfiable(b.alg.And(d.atom, n.pred)) {
			r = b.epsilon
		}
	case KindConcat:
		r = b.concat2(d.derive(n.left), n.right)
		if n.left.IsNullableFor(d.prev, d.next) {
			r = b.Or(r, d.derive(n.right))
		}
	case KindLoop:
		step := d.derive(n.left)
		if step.kind == KindNothing {
			r = b.nothing
			break
		}
		lower := max(n.lower-1, 0)
		if n.left.info.IsAlwaysNullable() {
			lower = 0
		}
		upper := n.upper
		if upper != Unbounded {
			upper--
		}
		r = b.concat2(step, b.Loop(n.left, lower, upper, n.lazy))
	case KindOr:
		alts := make([]*Node[P], len(n.alts))
		for i, a := range n.alts {
			alts[i] = d.derive(a)
		}
		r = b.Or(alts...)
	case KindAnd:
		alts := make([]*Node[P], len(n.alts))
		for i, a := range n.alts {
			alts[i] = d.derive(a)
		}
		r = b.And(alts...)
	case KindNot:
		r = b.Not(d.derive(n.left))
	case KindIfThenElse:
		r = b.IfThenElse(d.derive(n.left), d.derive(n.right), d.derive(n.third))
	default:
		r = b.nothing
	}
	if d.memo == nil {
		d.memo = make(map[*Node[P]]*Node[P])
	}
	d.memo[n] = r
	return r
}
