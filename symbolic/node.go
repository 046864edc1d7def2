// Package symbolic implements symbolic regular expressions: an immutable,
// hash-consed expression tree whose leaves are character predicates of an
// algebra.Algebra, together with the operations a derivative-based matcher
// needs.
//
// Nodes are created only through a Builder, which interns them so that
// structurally equal subtrees are the same *Node. This makes pointer
// equality a complete equality test and lets the matcher use nodes directly
// as cache keys.
//
// The central operation is the derivative: given a node R and an atom a,
// Derivative returns the node matching exactly the suffixes w such that a·w
// is matched by R. Repeated derivatives realize a DFA without ever
// constructing it in full.
package symbolic

import "strings"

// Kind identifies the variant of a node.
type Kind uint8

// Node kinds.
const (
	KindEpsilon Kind = iota
	KindNothing
	KindSingleton
	KindConcat
	KindLoop
	KindOr
	KindAnd
	KindNot
	KindIfThenElse
	KindWatchDog
	KindStartAnchor     // \A
	KindEndAnchor       // \z
	KindBOLAnchor       // ^ in multiline mode
	KindEOLAnchor       // $ in multiline mode
	KindWordBoundary    // \b
	KindNonWordBoundary // \B
	KindEndZAnchor      // \Z, the single-line $
	KindStartZAnchor    // \Z read backwards
)

var kindStrings = [...]string{
	"Epsilon", "Nothing", "Singleton", "Concat", "Loop", "Or", "And", "Not",
	"IfThenElse", "WatchDog", "StartAnchor", "EndAnchor", "BOLAnchor",
	"EOLAnchor", "WordBoundary", "NonWordBoundary", "EndZAnchor", "StartZAnchor",
}

func (k Kind) String() string {
	if int(k) < len(kindStrings) {
		return kindStrings[k]
	}
	return "Kind(?)"
}

// IsAnchor reports whether k is one of the anchor kinds.
func (k Kind) IsAnchor() bool {
	return k >= KindStartAnchor
}

// Unbounded is the upper bound of a loop without a maximum.
const Unbounded = -1

// Node is an immutable symbolic regular expression.
//
// Field use per kind:
//   - Singleton: pred
//   - Concat: left (never a Concat) and right
//   - Loop: left is the body, lower/upper the bounds, lazy the eagerness
//   - Or, And: alts, in declaration order
//   - Not: left
//   - IfThenElse: left, right, third (condition, then, else)
//   - WatchDog: lower holds the length
type Node[P comparable] struct {
	kind  Kind
	id    int
	info  Info
	pred  P
	left  *Node[P]
	right *Node[P]
	third *Node[P]
	alts  []*Node[P]
	lower int
	upper int
	lazy  bool

	// watchdog is the shortest WatchDog length among the members of an
	// Or, or -1. Unused by other kinds.
	watchdog int

	builder *Builder[P]
}

// ID returns the node's dense index in its builder's arena.
func (n *Node[P]) ID() int { return n.id }

// Kind returns the node kind.
func (n *Node[P]) Kind() Kind { return n.kind }

// Info returns the node's structural facts.
func (n *Node[P]) Info() Info { return n.info }

// Pred returns the predicate of a Singleton.
func (n *Node[P]) Pred() P { return n.pred }

// Left returns the head of a Concat, the body of a Loop, the child of a Not
// or the condition of an IfThenElse.
func (n *Node[P]) Left() *Node[P] { return n.left }

// Right returns the tail of a Concat or the then-branch of an IfThenElse.
func (n *Node[P]) Right() *Node[P] { return n.right }

// Else returns the else-branch of an IfThenElse.
func (n *Node[P]) Else() *Node[P] { return n.third }

// Alts returns the members of an Or or And.
func (n *Node[P]) Alts() []*Node[P] { return n.alts }

// Lower returns the lower bound of a Loop or the length of a WatchDog.
func (n *Node[P]) Lower() int { return n.lower }

// Upper returns the upper bound of a Loop, or Unbounded.
func (n *Node[P]) Upper() int { return n.upper }

// IsLazy reports whether the node prefers the shortest match.
func (n *Node[P]) IsLazy() bool { return n.info.IsLazy() }

// IsNothing reports whether n is the empty-language sentinel.
func (n *Node[P]) IsNothing() bool { return n.kind == KindNothing }

// IsEpsilon reports whether n matches only the empty string.
func (n *Node[P]) IsEpsilon() bool { return n.kind == KindEpsilon }

// CanBeNullable reports whether n accepts the empty string in some context.
func (n *Node[P]) CanBeNullable() bool { return n.info.CanBeNullable() }

// Watchdog returns the watchdog length recorded by n, or -1.
// It is set for a WatchDog node and for an Or having WatchDog members.
func (n *Node[P]) Watchdog() int {
	switch n.kind {
	case KindWatchDog:
		return n.lower
	case KindOr:
		return n.watchdog
	}
	return -1
}

// IsNullableFor reports whether n accepts the empty string at a position
// whose preceding character has kind prev and whose next character has kind
// next.
func (n *Node[P]) IsNullableFor(prev, next CharKind) bool {
	if n.info.IsAlwaysNullable() {
		return true
	}
	if !n.info.CanBeNullable() {
		return false
	}
	switch n.kind {
	case KindEpsilon, KindWatchDog:
		return true
	case KindStartAnchor:
		return prev == KindStart
	case KindEndAnchor:
		return next == KindEnd
	case KindEndZAnchor:
		return next == KindEnd || next == KindNewlineZ
	case KindStartZAnchor:
		return prev == KindStart || prev == KindNewlineZ
	case KindBOLAnchor:
		return prev.startsLine()
	case KindEOLAnchor:
		return next.endsLine()
	case KindWordBoundary:
		return prev.IsWordLetter() != next.IsWordLetter()
	case KindNonWordBoundary:
		return prev.IsWordLetter() == next.IsWordLetter()
	case KindConcat:
		return n.left.IsNullableFor(prev, next) && n.right.IsNullableFor(prev, next)
	case KindLoop:
		return n.lower == 0 || n.left.IsNullableFor(prev, next)
	case KindOr:
		for _, a := range n.alts {
			if a.IsNullableFor(prev, next) {
				return true
			}
		}
		return false
	case KindAnd:
		for _, a := range n.alts {
			if !a.IsNullableFor(prev, next) {
				return false
			}
		}
		return true
	case KindNot:
		return !n.left.IsNullableFor(prev, next)
	case KindIfThenElse:
		if n.left.IsNullableFor(prev, next) {
			return n.right.IsNullableFor(prev, next)
		}
		return n.third.IsNullableFor(prev, next)
	}
	return false
}

// FixedLength returns the length in characters of every string matched by
// n, or -1 when matches can differ in length.
func (n *Node[P]) FixedLength() int {
	switch n.kind {
	case KindEpsilon, KindStartAnchor, KindEndAnchor, KindBOLAnchor,
		KindEOLAnchor, KindWordBoundary, KindNonWordBoundary,
		KindEndZAnchor, KindStartZAnchor:
		return 0
	case KindSingleton:
		return 1
	case KindConcat:
		l, r := n.left.FixedLength(), n.right.FixedLength()
		if l < 0 || r < 0 {
			return -1
		}
		return l + r
	case KindLoop:
		if n.upper != n.lower {
			return -1
		}
		b := n.left.FixedLength()
		if b < 0 {
			return -1
		}
		return b * n.lower
	case KindOr, KindAnd:
		length := -1
		for i, a := range n.alts {
			l := a.FixedLength()
			if l < 0 || (i > 0 && l != length) {
				return -1
			}
			length = l
		}
		return length
	}
	return -1
}

// String renders n in a regex-like notation.
func (n *Node[P]) String() string {
	var sb strings.Builder
	n.builder.format(&sb, n)
	return sb.String()
}

// ContainsKind reports whether some node of n, n included, has kind k.
func (n *Node[P]) ContainsKind(k Kind) bool {
	seen := make(map[*Node[P]]bool)
	var walk func(m *Node[P]) bool
	walk = func(m *Node[P]) bool {
		if m == nil || seen[m] {
			return false
		}
		seen[m] = true
		if m.kind == k {
			return true
		}
		if walk(m.left) || walk(m.right) || walk(m.third) {
			return true
		}
		for _, a := range m.alts {
			if walk(a) {
				return true
			}
		}
		return false
	}
	return walk(n)
}
