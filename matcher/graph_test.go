package matcher

import (
	"strings"
	"testing"
)

func TestExplore_Literal(t *testing.T) {
	eng := compileEngine(t, `ab`, None, 0, DefaultConfig())
	aut := eng.Explore(AutomatonA, 0)

	// ab, b, the accepting state and the dead state; three atoms each
	// except for the dead state.
	if got := aut.StateCount(); got != 4 {
		t.Errorf("StateCount() = %d, want 4\n%s", got, aut.Describe())
	}
	if got := aut.TransitionCount(); got != 9 {
		t.Errorf("TransitionCount() = %d, want 9\n%s", got, aut.Describe())
	}
	if len(aut.Alphabet) != eng.AtomCount() {
		t.Errorf("len(Alphabet) = %d, want %d", len(aut.Alphabet), eng.AtomCount())
	}
	finals := 0
	for _, s := range aut.States {
		if s.Final {
			finals++
		}
	}
	if finals != 1 {
		t.Errorf("%d final states, want 1", finals)
	}
	if aut.IsFinal(aut.Initial) {
		t.Error("initial state is final")
	}
	if aut.Truncated {
		t.Error("unbounded exploration truncated")
	}
}

func TestExplore_Truncated(t *testing.T) {
	eng := compileEngine(t, `abcdef`, None, 0, DefaultConfig())
	aut := eng.Explore(AutomatonA, 2)
	if !aut.Truncated {
		t.Error("Truncated = false, want true")
	}
	if got := aut.StateCount(); got != 2 {
		t.Errorf("StateCount() = %d, want 2", got)
	}
}

func TestExplore_Kinds(t *testing.T) {
	eng := compileEngine(t, `a[0-9]+`, None, 0, DefaultConfig())
	for _, kind := range []AutomatonKind{AutomatonA, AutomatonA1, AutomatonAr} {
		t.Run(kind.String(), func(t *testing.T) {
			aut := eng.Explore(kind, 0)
			if aut.Kind != kind {
				t.Errorf("Kind = %v, want %v", aut.Kind, kind)
			}
			if aut.StateCount() < 2 {
				t.Errorf("StateCount() = %d, want >= 2", aut.StateCount())
			}
			if !strings.HasPrefix(aut.Describe(), kind.String()+":") {
				t.Errorf("Describe() = %q", aut.Describe())
			}
		})
	}
}

func TestExplore_WarmsTable(t *testing.T) {
	eng := compileEngine(t, `ab|cd`, None, 0, DefaultConfig())
	eng.Explore(AutomatonA1, 0)
	eng.Explore(AutomatonAr, 0)
	eng.Explore(AutomatonA, 0)
	eng.ResetStats()
	matchAll(t, eng, "xxabxcdx")
	if got := eng.Stats().TransitionsComputed; got != 0 {
		t.Errorf("TransitionsComputed = %d after full exploration, want 0", got)
	}
}
