package srm

import "github.com/coregx/srm/matcher"

// Automaton is an explored view of one of the automata of a Regex, for
// graph export and inspection.
type Automaton = matcher.Automaton

// AutomatonKind selects the automaton to explore.
type AutomatonKind = matcher.AutomatonKind

// Automaton kinds.
const (
	// AutomatonA is the pattern itself.
	AutomatonA = matcher.AutomatonA
	// AutomatonA1 is the pattern prefixed by .*.
	AutomatonA1 = matcher.AutomatonA1
	// AutomatonAr is the reversed pattern.
	AutomatonAr = matcher.AutomatonAr
)

// Explore explores the automaton of the given kind from its initial state,
// visiting at most maxStates states when maxStates is positive.
//
// Explored states and transitions stay in the regex's transition table,
// so exploring also warms it up for later searches.
//
// Example:
//
//	re := srm.MustCompile(`ab|cd`)
//	fmt.Print(re.Explore(srm.AutomatonA, 0).Describe())
func (r *Regex) Explore(kind AutomatonKind, maxStates int) *Automaton {
	return r.engine.Explore(kind, maxStates)
}

// AtomCount returns the number of atoms the pattern splits the character
// space into.
func (r *Regex) AtomCount() int {
	return r.engine.AtomCount()
}
