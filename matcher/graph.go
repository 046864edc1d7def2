package matcher

import (
	"fmt"
	"strings"

	"github.com/coregx/srm/algebra"
	"github.com/coregx/srm/internal/conv"
	"github.com/coregx/srm/internal/sparse"
	"github.com/coregx/srm/symbolic"
)

// AutomatonKind selects one of the three automata of a matcher.
type AutomatonKind uint8

const (
	// AutomatonA is the pattern itself.
	AutomatonA AutomatonKind = iota
	// AutomatonA1 is the pattern prefixed by .*, used to find match ends.
	AutomatonA1
	// AutomatonAr is the reversed pattern, used to find match starts.
	AutomatonAr
)

func (k AutomatonKind) String() string {
	switch k {
	case AutomatonA:
		return "A"
	case AutomatonA1:
		return "A1"
	case AutomatonAr:
		return "Ar"
	default:
		return fmt.Sprintf("AutomatonKind(%d)", uint8(k))
	}
}

// Move is a transition of an explored automaton.
type Move struct {
	From, To int
	Atom     int
	Label    string
}

// ExploredState describes one state of an explored automaton.
type ExploredState struct {
	ID    int
	Node  string
	Final bool
}

// Automaton is a snapshot of the part of a matcher's DFA reachable from an
// initial state, built by exploring every atom from every state.
type Automaton struct {
	Kind    AutomatonKind
	Initial int
	States  []ExploredState
	Moves   []Move

	// Alphabet holds one label per atom.
	Alphabet []string

	// Truncated is set when exploration stopped at the state limit.
	Truncated bool
}

// StateCount returns the number of explored states.
func (a *Automaton) StateCount() int { return len(a.States) }

// TransitionCount returns the number of moves.
func (a *Automaton) TransitionCount() int { return len(a.Moves) }

// IsFinal reports whether the state with the given id accepts.
func (a *Automaton) IsFinal(id int) bool {
	for _, s := range a.States {
		if s.ID == id {
			return s.Final
		}
	}
	return false
}

// Describe renders the automaton one state per line with its moves.
func (a *Automaton) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d states, %d moves", a.Kind, len(a.States), len(a.Moves))
	if a.Truncated {
		sb.WriteString(" (truncated)")
	}
	sb.WriteByte('\n')
	moves := make(map[int][]Move, len(a.States))
	for _, mv := range a.Moves {
		moves[mv.From] = append(moves[mv.From], mv)
	}
	for _, s := range a.States {
		mark := " "
		switch {
		case s.ID == a.Initial:
			mark = ">"
		case s.Final:
			mark = "*"
		}
		fmt.Fprintf(&sb, "%s%d %s\n", mark, s.ID, s.Node)
		for _, mv := range moves[s.ID] {
			fmt.Fprintf(&sb, "\t%s -> %d\n", mv.Label, mv.To)
		}
	}
	return sb.String()
}

// Explore builds the automaton of the given kind by breadth-first
// exploration from its initial state at the start of the input. At most
// maxStates states are explored when maxStates is positive. States created
// here are kept by the matcher and reused by later searches.
func (m *Matcher[P]) Explore(kind AutomatonKind, maxStates int) *Automaton {
	prev := symbolic.KindNone
	if m.anchors {
		prev = symbolic.KindStart
	}
	var q0 *State[P]
	switch kind {
	case AutomatonA1:
		q0 = m.a1q0[prev]
	case AutomatonAr:
		q0 = m.arq0[prev]
	default:
		q0 = m.aq0[prev]
	}

	aut := &Automaton{Kind: kind, Initial: q0.id}
	for _, atom := range m.atoms {
		aut.Alphabet = append(aut.Alphabet, algebra.FormatRanges(m.alg.Ranges(atom)))
	}

	found := map[int]*State[P]{q0.id: q0}
	seen := sparse.NewSparseSet(conv.IntToUint32(len(m.atoms) + 1))
	seen.Insert(conv.IntToUint32(q0.id))
	for i := 0; i < seen.Len(); i++ {
		q := found[int(seen.At(i))]
		aut.States = append(aut.States, ExploredState{ID: q.id, Node: q.String(), Final: isFinal(q)})
		if q.nothing {
			continue
		}
		for atom := range m.atoms {
			p := m.table.Load().get(q.id, atom)
			if p == nil {
				p = m.transition(q, atom, atom)
			}
			aut.Moves = append(aut.Moves, Move{From: q.id, To: p.id, Atom: atom, Label: aut.Alphabet[atom]})
			if seen.Contains(conv.IntToUint32(p.id)) {
				continue
			}
			if maxStates > 0 && seen.Len() >= maxStates {
				aut.Truncated = true
				continue
			}
			seen.Insert(conv.IntToUint32(p.id))
			found[p.id] = p
		}
	}
	return aut
}

// isFinal reports whether q accepts before some next character kind.
func isFinal[P comparable](q *State[P]) bool {
	for _, ok := range q.nullable {
		if ok {
			return true
		}
	}
	return false
}
