package matcher

import "github.com/coregx/srm/symbolic"

// State is a DFA state: a symbolic node paired with the kind of the
// character read last. States are created on first use and live as long as
// their matcher.
type State[P comparable] struct {
	id   int
	node *symbolic.Node[P]
	prev symbolic.CharKind

	// initial marks the start states of the search automaton.
	initial  bool
	nothing  bool
	lazy     bool
	watchdog int
	nullable [symbolic.CharKindCount]bool
}

func newState[P comparable](id int, node *symbolic.Node[P], prev symbolic.CharKind) *State[P] {
	s := &State[P]{
		id:       id,
		node:     node,
		prev:     prev,
		nothing:  node.IsNothing(),
		lazy:     node.Info().PrefersShortest(),
		watchdog: node.Watchdog(),
	}
	if node.CanBeNullable() {
		for next := range symbolic.CharKindCount {
			s.nullable[next] = node.IsNullableFor(prev, symbolic.CharKind(next))
		}
	}
	return s
}

// ID returns the index of the state in its matcher.
func (s *State[P]) ID() int { return s.id }

// Node returns the symbolic node of the state.
func (s *State[P]) Node() *symbolic.Node[P] { return s.node }

// PrevKind returns the kind of the character read last.
func (s *State[P]) PrevKind() symbolic.CharKind { return s.prev }

// IsInitial reports whether s is a start state of the search automaton.
func (s *State[P]) IsInitial() bool { return s.initial }

// IsNothing reports whether s is the dead state.
func (s *State[P]) IsNothing() bool { return s.nothing }

// IsNullable reports whether s accepts when the next character has kind next.
func (s *State[P]) IsNullable(next symbolic.CharKind) bool { return s.nullable[next] }

func (s *State[P]) String() string {
	return s.node.String() + "@" + s.prev.String()
}

// stateKey identifies a state by node id and previous character kind.
type stateKey struct {
	node int
	prev symbolic.CharKind
}
