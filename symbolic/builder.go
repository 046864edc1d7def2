package symbolic

import (
	"strconv"
	"strings"

	"github.com/coregx/srm/algebra"
)

// nodeKey is the canonical tuple a node is interned under.
type nodeKey[P comparable] struct {
	kind    Kind
	a, b, c int
	pred    P
	lo, hi  int
	lazy    bool
	alts    string
}

// Builder creates interned nodes over an algebra.
//
// Every node a Builder returns is in normal form:
//   - concatenations are right-nested and never start with a Concat;
//   - a Nothing member collapses a concatenation to Nothing, and an Epsilon
//     member is elided;
//   - a loop {1,1} is its body, a loop {0,0} is Epsilon;
//   - alternations are flattened, drop Nothing members and duplicates while
//     keeping the declaration order of the rest.
//
// A Builder is not safe for concurrent use. Matchers serialize all access to
// their builder.
type Builder[P comparable] struct {
	alg   algebra.Algebra[P]
	nodes []*Node[P]
	table map[nodeKey[P]]*Node[P]

	epsilon, nothing, dotStar *Node[P]
	startAnchor, endAnchor    *Node[P]
	bolAnchor, eolAnchor      *Node[P]
	endZAnchor, startZAnchor  *Node[P]
	wordBoundary, nonBoundary *Node[P]

	reverseMemo map[*Node[P]]*Node[P]
	stripMemo   map[*Node[P]]*Node[P]
}

// NewBuilder creates a builder over alg.
func NewBuilder[P comparable](alg algebra.Algebra[P]) *Builder[P] {
	b := &Builder[P]{
		alg:         alg,
		table:       make(map[nodeKey[P]]*Node[P]),
		reverseMemo: make(map[*Node[P]]*Node[P]),
		stripMemo:   make(map[*Node[P]]*Node[P]),
	}
	b.epsilon = b.leaf(KindEpsilon, leafInfo(InfoAlwaysNullable))
	b.nothing = b.leaf(KindNothing, leafInfo(0))
	b.startAnchor = b.leaf(KindStartAnchor, leafInfo(InfoCanBeNullable|InfoStartsWithLineAnchor))
	b.endAnchor = b.leaf(KindEndAnchor, leafInfo(InfoCanBeNullable|InfoStartsWithLineAnchor))
	b.bolAnchor = b.leaf(KindBOLAnchor, leafInfo(InfoCanBeNullable|InfoStartsWithLineAnchor))
	b.eolAnchor = b.leaf(KindEOLAnchor, leafInfo(InfoCanBeNullable|InfoStartsWithLineAnchor))
	b.endZAnchor = b.leaf(KindEndZAnchor, leafInfo(InfoCanBeNullable|InfoStartsWithLineAnchor))
	b.startZAnchor = b.leaf(KindStartZAnchor, leafInfo(InfoCanBeNullable|InfoStartsWithLineAnchor))
	b.wordBoundary = b.leaf(KindWordBoundary, leafInfo(InfoCanBeNullable|InfoStartsWithBoundaryAnchor))
	b.nonBoundary = b.leaf(KindNonWordBoundary, leafInfo(InfoCanBeNullable|InfoStartsWithBoundaryAnchor))
	b.dotStar = b.Loop(b.Singleton(alg.True()), 0, Unbounded, false)
	return b
}

// Algebra returns the builder's algebra.
func (b *Builder[P]) Algebra() algebra.Algebra[P] { return b.alg }

// NodeCount returns the number of interned nodes.
func (b *Builder[P]) NodeCount() int { return len(b.nodes) }

// NodeByID returns the node with the given arena index.
func (b *Builder[P]) NodeByID(id int) *Node[P] { return b.nodes[id] }

func (b *Builder[P]) intern(k nodeKey[P], mk func() *Node[P]) *Node[P] {
	if n, ok := b.table[k]; ok {
		return n
	}
	n := mk()
	n.id = len(b.nodes)
	n.builder = b
	b.nodes = append(b.nodes, n)
	b.table[k] = n
	return n
}

func (b *Builder[P]) leaf(kind Kind, info Info) *Node[P] {
	return b.intern(nodeKey[P]{kind: kind, a: -1, b: -1, c: -1}, func() *Node[P] {
		return &Node[P]{kind: kind, info: info}
	})
}

// Epsilon returns the node matching only the empty string.
func (b *Builder[P]) Epsilon() *Node[P] { return b.epsilon }

// Nothing returns the node matching no string.
func (b *Builder[P]) Nothing() *Node[P] { return b.nothing }

// DotStar returns the eager loop over all characters.
func (b *Builder[P]) DotStar() *Node[P] { return b.dotStar }

// StartAnchor returns \A.
func (b *Builder[P]) StartAnchor() *Node[P] { return b.startAnchor }

// EndAnchor returns \z.
func (b *Builder[P]) EndAnchor() *Node[P] { return b.endAnchor }

// BOLAnchor returns the multiline ^.
func (b *Builder[P]) BOLAnchor() *Node[P] { return b.bolAnchor }

// EOLAnchor returns the multiline $.
func (b *Builder[P]) EOLAnchor() *Node[P] { return b.eolAnchor }

// EndZAnchor returns \Z: the end of the input, or the position before a
// final '\n'.
func (b *Builder[P]) EndZAnchor() *Node[P] { return b.endZAnchor }

// StartZAnchor returns the mirror of \Z used by reversed patterns.
func (b *Builder[P]) StartZAnchor() *Node[P] { return b.startZAnchor }

// WordBoundary returns \b.
func (b *Builder[P]) WordBoundary() *Node[P] { return b.wordBoundary }

// NonWordBoundary returns \B.
func (b *Builder[P]) NonWordBoundary() *Node[P] { return b.nonBoundary }

// Anchor returns the anchor node of the given kind.
func (b *Builder[P]) Anchor(kind Kind) *Node[P] {
	switch kind {
	case KindStartAnchor:
		return b.startAnchor
	case KindEndAnchor:
		return b.endAnchor
	case KindBOLAnchor:
		return b.bolAnchor
	case KindEOLAnchor:
		return b.eolAnchor
	case KindEndZAnchor:
		return b.endZAnchor
	case KindStartZAnchor:
		return b.startZAnchor
	case KindWordBoundary:
		return b.wordBoundary
	case KindNonWordBoundary:
		return b.nonBoundary
	}
	panic("symbolic: not an anchor kind: " + kind.String())
}

// Singleton returns the node matching one character satisfying pred.
// An unsatisfiable predicate yields Nothing.
func (b *Builder[P]) Singleton(pred P) *Node[P] {
	if !b.alg.IsSatisfiable(pred) {
		return b.nothing
	}
	return b.intern(nodeKey[P]{kind: KindSingleton, a: -1, b: -1, c: -1, pred: pred}, func() *Node[P] {
		return &Node[P]{kind: KindSingleton, pred: pred, info: leafInfo(InfoContainsSomeCharacter)}
	})
}

// WatchDog returns a marker that is always nullable and records length.
func (b *Builder[P]) WatchDog(length int) *Node[P] {
	return b.intern(nodeKey[P]{kind: KindWatchDog, a: -1, b: -1, c: -1, lo: length}, func() *Node[P] {
		return &Node[P]{kind: KindWatchDog, lower: length, info: leafInfo(InfoAlwaysNullable)}
	})
}

// Concat returns the concatenation of nodes in order.
func (b *Builder[P]) Concat(nodes ...*Node[P]) *Node[P] {
	res := b.epsilon
	for i := len(nodes) - 1; i >= 0; i-- {
		res = b.concat2(nodes[i], res)
	}
	return res
}

func (b *Builder[P]) concat2(x, y *Node[P]) *Node[P] {
	switch {
	case x.kind == KindNothing || y.kind == KindNothing:
		return b.nothing
	case x.kind == KindEpsilon:
		return y
	case y.kind == KindEpsilon:
		return x
	case x.kind == KindConcat:
		return b.concat2(x.left, b.concat2(x.right, y))
	}
	return b.intern(nodeKey[P]{kind: KindConcat, a: x.id, b: y.id, c: -1}, func() *Node[P] {
		return &Node[P]{kind: KindConcat, left: x, right: y, info: concatInfo(x.info, y.info)}
	})
}

// Loop returns body{lower,upper}, where upper may be Unbounded.
func (b *Builder[P]) Loop(body *Node[P], lower, upper int, lazy bool) *Node[P] {
	if lower < 0 {
		lower = 0
	}
	switch {
	case upper != Unbounded && lower > upper:
		return b.nothing
	case upper == 0 || body.kind == KindEpsilon:
		return b.epsilon
	case lower == 1 && upper == 1:
		return body
	case body.kind == KindNothing:
		if lower == 0 {
			return b.epsilon
		}
		return b.nothing
	}
	return b.intern(nodeKey[P]{kind: KindLoop, a: body.id, b: -1, c: -1, lo: lower, hi: upper, lazy: lazy}, func() *Node[P] {
		return &Node[P]{kind: KindLoop, left: body, lower: lower, upper: upper, lazy: lazy, info: loopInfo(body.info, lower, lazy)}
	})
}

// Or returns the ordered alternation of alts. When several alternatives
// match, the earlier one is preferred.
func (b *Builder[P]) Or(alts ...*Node[P]) *Node[P] {
	flat := b.flatten(KindOr, alts)
	switch len(flat) {
	case 0:
		return b.nothing
	case 1:
		return flat[0]
	}
	return b.intern(nodeKey[P]{kind: KindOr, a: -1, b: -1, c: -1, alts: altsKey(flat)}, func() *Node[P] {
		wd := -1
		infos := make([]Info, len(flat))
		for i, a := range flat {
			infos[i] = a.info
			if a.kind == KindWatchDog && (wd < 0 || a.lower < wd) {
				wd = a.lower
			}
		}
		return &Node[P]{kind: KindOr, alts: flat, watchdog: wd, info: orInfo(infos)}
	})
}

// And returns the conjunction of alts.
func (b *Builder[P]) And(alts ...*Node[P]) *Node[P] {
	for _, a := range alts {
		if a.kind == KindNothing {
			return b.nothing
		}
	}
	flat := b.flatten(KindAnd, alts)
	switch len(flat) {
	case 0:
		return b.dotStar
	case 1:
		return flat[0]
	}
	return b.intern(nodeKey[P]{kind: KindAnd, a: -1, b: -1, c: -1, alts: altsKey(flat)}, func() *Node[P] {
		infos := make([]Info, len(flat))
		for i, a := range flat {
			infos[i] = a.info
		}
		return &Node[P]{kind: KindAnd, alts: flat, info: andInfo(infos)}
	})
}

// flatten splices nested members of the same kind, drops Nothing members of
// an Or and removes duplicates, keeping first occurrences in order.
func (b *Builder[P]) flatten(kind Kind, alts []*Node[P]) []*Node[P] {
	out := make([]*Node[P], 0, len(alts))
	seen := make(map[*Node[P]]struct{}, len(alts))
	var add func(n *Node[P])
	add = func(n *Node[P]) {
		if n.kind == kind {
			for _, m := range n.alts {
				add(m)
			}
			return
		}
		if n.kind == KindNothing && kind == KindOr {
			return
		}
		if _, dup := seen[n]; dup {
			return
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	for _, a := range alts {
		add(a)
	}
	return out
}

func altsKey[P comparable](alts []*Node[P]) string {
	var sb strings.Builder
	for i, a := range alts {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(a.id))
	}
	return sb.String()
}

// Not returns the complement of x.
func (b *Builder[P]) Not(x *Node[P]) *Node[P] {
	if x.kind == KindNot {
		return x.left
	}
	return b.intern(nodeKey[P]{kind: KindNot, a: x.id, b: -1, c: -1}, func() *Node[P] {
		return &Node[P]{kind: KindNot, left: x, info: notInfo(x.info)}
	})
}

// IfThenElse returns the conditional node: then where cond matches, els
// elsewhere.
func (b *Builder[P]) IfThenElse(cond, then, els *Node[P]) *Node[P] {
	return b.intern(nodeKey[P]{kind: KindIfThenElse, a: cond.id, b: then.id, c: els.id}, func() *Node[P] {
		return &Node[P]{kind: KindIfThenElse, left: cond, right: then, third: els, info: iteInfo(cond.info, then.info, els.info)}
	})
}

func (b *Builder[P]) format(sb *strings.Builder, n *Node[P]) {
	switch n.kind {
	case KindEpsilon:
		sb.WriteString("()")
	case KindNothing:
		sb.WriteString("[]")
	case KindSingleton:
		sb.WriteString(algebra.FormatRanges(b.alg.Ranges(n.pred)))
	case KindWatchDog:
		sb.WriteString("(?WD:" + strconv.Itoa(n.lower) + ")")
	case KindStartAnchor:
		sb.WriteString(`\A`)
	case KindEndAnchor:
		sb.WriteString(`\z`)
	case KindBOLAnchor:
		sb.WriteString("^")
	case KindEOLAnchor:
		sb.WriteString("$")
	case KindEndZAnchor:
		sb.WriteString(`\Z`)
	case KindStartZAnchor:
		sb.WriteString(`(?r:\Z)`)
	case KindWordBoundary:
		sb.WriteString(`\b`)
	case KindNonWordBoundary:
		sb.WriteString(`\B`)
	case KindConcat:
		for m := n; ; m = m.right {
			if m.kind != KindConcat {
				b.formatGrouped(sb, m)
				break
			}
			b.formatGrouped(sb, m.left)
		}
	case KindLoop:
		if n.left.kind == KindSingleton {
			b.format(sb, n.left)
		} else {
			sb.WriteByte('(')
			b.format(sb, n.left)
			sb.WriteByte(')')
		}
		sb.WriteString(quantifier(n.lower, n.upper))
		if n.lazy {
			sb.WriteByte('?')
		}
	case KindOr, KindAnd:
		sep := "|"
		if n.kind == KindAnd {
			sep = "&"
		}
		for i, a := range n.alts {
			if i > 0 {
				sb.WriteString(sep)
			}
			b.formatGrouped(sb, a)
		}
	case KindNot:
		sb.WriteString("~(")
		b.format(sb, n.left)
		sb.WriteByte(')')
	case KindIfThenElse:
		sb.WriteString("(?(")
		b.format(sb, n.left)
		sb.WriteByte(')')
		b.formatGrouped(sb, n.right)
		sb.WriteByte('|')
		b.formatGrouped(sb, n.third)
		sb.WriteByte(')')
	}
}

func (b *Builder[P]) formatGrouped(sb *strings.Builder, n *Node[P]) {
	if n.kind == KindOr || n.kind == KindAnd {
		sb.WriteByte('(')
		b.format(sb, n)
		sb.WriteByte(')')
		return
	}
	b.format(sb, n)
}

func quantifier(lower, upper int) string {
	switch {
	case lower == 0 && upper == Unbounded:
		return "*"
	case lower == 1 && upper == Unbounded:
		return "+"
	case lower == 0 && upper == 1:
		return "?"
	case upper == Unbounded:
		return "{" + strconv.Itoa(lower) + ",}"
	case lower == upper:
		return "{" + strconv.Itoa(lower) + "}"
	}
	return "{" + strconv.Itoa(lower) + "," + strconv.Itoa(upper) + "}"
}
