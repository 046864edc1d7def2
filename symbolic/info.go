package symbolic

import "strconv"

// Info is a bitset of structural facts about a node, computed bottom-up when
// the node is built. It is a plain value and is never mutated.
type Info uint16

// Info bits.
const (
	// InfoAlwaysNullable: the node accepts the empty string in every context.
	InfoAlwaysNullable Info = 1 << iota
	// InfoStartsWithLineAnchor: a \A, \z, \Z, ^ or $ anchor can be the first element.
	InfoStartsWithLineAnchor
	// InfoLazy: the node prefers the shortest match.
	InfoLazy
	// InfoCanBeNullable: the node accepts the empty string in some context.
	InfoCanBeNullable
	// InfoContainsSomeAnchor: the node contains an anchor of any kind.
	InfoContainsSomeAnchor
	// InfoContainsLineAnchor: the node contains a \A, \z, \Z, ^ or $ anchor.
	InfoContainsLineAnchor
	// InfoContainsSomeCharacter: the node can consume a character.
	InfoContainsSomeCharacter
	// InfoStartsWithBoundaryAnchor: a \b or \B anchor can be the first element.
	InfoStartsWithBoundaryAnchor
	// InfoContainsLazyLoop: the node contains a lazy loop.
	InfoContainsLazyLoop
)

// mkInfo closes bits under the implications between facts. Leaf nodes are
// lazy unless told otherwise, since laziness only matters through loops.
func mkInfo(i Info) Info {
	if i&InfoAlwaysNullable != 0 {
		i |= InfoCanBeNullable
	}
	if i&InfoStartsWithLineAnchor != 0 {
		i |= InfoContainsLineAnchor
	}
	if i&(InfoStartsWithLineAnchor|InfoStartsWithBoundaryAnchor|InfoContainsLineAnchor) != 0 {
		i |= InfoContainsSomeAnchor
	}
	return i
}

func leafInfo(i Info) Info { return mkInfo(i | InfoLazy) }

func (i Info) IsAlwaysNullable() bool         { return i&InfoAlwaysNullable != 0 }
func (i Info) CanBeNullable() bool            { return i&InfoCanBeNullable != 0 }
func (i Info) StartsWithLineAnchor() bool     { return i&InfoStartsWithLineAnchor != 0 }
func (i Info) StartsWithBoundaryAnchor() bool { return i&InfoStartsWithBoundaryAnchor != 0 }
func (i Info) StartsWithSomeAnchor() bool {
	return i&(InfoStartsWithLineAnchor|InfoStartsWithBoundaryAnchor) != 0
}
func (i Info) ContainsSomeAnchor() bool    { return i&InfoContainsSomeAnchor != 0 }
func (i Info) ContainsLineAnchor() bool    { return i&InfoContainsLineAnchor != 0 }
func (i Info) ContainsSomeCharacter() bool { return i&InfoContainsSomeCharacter != 0 }
func (i Info) IsLazy() bool                { return i&InfoLazy != 0 }
func (i Info) ContainsLazyLoop() bool      { return i&InfoContainsLazyLoop != 0 }

// PrefersShortest reports whether a match of the node should end at its
// first accepting position. Leaves are lazy by default, so a node without a
// lazy loop never prefers the shortest match.
func (i Info) PrefersShortest() bool {
	return i&(InfoLazy|InfoContainsLazyLoop) == InfoLazy|InfoContainsLazyLoop
}

// String returns the bits in hex.
func (i Info) String() string { return strconv.FormatUint(uint64(i), 16) }

// orInfo: a disjunction is lazy only if all members are lazy; every other
// fact is disjunctive.
func orInfo(infos []Info) Info {
	lazy := InfoLazy
	var i Info
	for _, x := range infos {
		lazy &= x
		i |= x
	}
	return mkInfo(i&^InfoLazy | lazy)
}

// andInfo: nullability and laziness are conjunctive, the rest disjunctive.
func andInfo(infos []Info) Info {
	lazy := InfoLazy
	nullable := InfoAlwaysNullable | InfoCanBeNullable
	var i Info
	for _, x := range infos {
		lazy &= x
		nullable &= x
		i |= x
	}
	i = i&^InfoLazy | lazy
	i = i&^(InfoAlwaysNullable|InfoCanBeNullable) | nullable
	return mkInfo(i)
}

func concatInfo(left, right Info) Info {
	var i Info
	if left.IsAlwaysNullable() && right.IsAlwaysNullable() {
		i |= InfoAlwaysNullable
	}
	if left.CanBeNullable() && right.CanBeNullable() {
		i |= InfoCanBeNullable
	}
	if left.StartsWithLineAnchor() || (left.CanBeNullable() && right.StartsWithLineAnchor()) {
		i |= InfoStartsWithLineAnchor
	}
	if left.StartsWithBoundaryAnchor() || (left.CanBeNullable() && right.StartsWithBoundaryAnchor()) {
		i |= InfoStartsWithBoundaryAnchor
	}
	i |= (left | right) & (InfoContainsSomeAnchor | InfoContainsLineAnchor | InfoContainsSomeCharacter | InfoContainsLazyLoop)
	if left.IsLazy() && right.IsLazy() {
		i |= InfoLazy
	}
	return mkInfo(i)
}

// loopInfo inherits the body's facts; lower bound 0 makes the loop nullable
// and the loop's own flag decides laziness.
func loopInfo(body Info, lower int, lazy bool) Info {
	i := body
	if lower == 0 {
		i |= InfoAlwaysNullable | InfoCanBeNullable
	}
	if lazy {
		i |= InfoLazy | InfoContainsLazyLoop
	} else {
		i &^= InfoLazy
	}
	return mkInfo(i)
}

// iteInfo takes the union of all facts except nullability, which follows the
// branch selected by the condition's always-nullable fact.
func iteInfo(cond, then, els Info) Info {
	i := (cond | then | els) &^ InfoAlwaysNullable
	selected := els.IsAlwaysNullable()
	if cond.IsAlwaysNullable() {
		selected = then.IsAlwaysNullable()
	}
	if selected {
		i |= InfoAlwaysNullable | InfoCanBeNullable
	}
	return mkInfo(i)
}

// notInfo swaps the two nullability facts of the child. A complement can
// always consume characters.
func notInfo(child Info) Info {
	i := child &^ (InfoAlwaysNullable | InfoCanBeNullable)
	if !child.CanBeNullable() {
		i |= InfoAlwaysNullable
	}
	if !child.IsAlwaysNullable() {
		i |= InfoCanBeNullable
	}
	return mkInfo(i | InfoContainsSomeCharacter)
}
