// Package matcher implements the symbolic regex matcher: a lazily built DFA
// whose states are symbolic regex nodes and whose transitions are
// derivatives over the atoms of a minterm algebra.
//
// Three automata are derived from the pattern A once, at construction:
//
//   - A, the pattern, finds the end of a match from its start.
//   - A1 = .*A finds some position where a match ends.
//   - Ar = reverse(A) walks back from that position to the match start.
//
// States are created on first use and interned. Successors are memoized in
// a dense table indexed by state id and atom id; the table is read without
// locking and written under a single mutex. A Matcher is safe for
// concurrent use.
//
// Example:
//
//	eng, err := matcher.Compile(root, word, newline, matcher.Settings{Config: matcher.DefaultConfig()})
//	m, err := eng.FindMatch([]byte("xaTAG1b"), 0, -1)
//	// m.Index == 1, m.Length == 6
package matcher

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/coregx/srm/algebra"
	"github.com/coregx/srm/symbolic"
)

// Engine is the algebra-independent view of a Matcher.
type Engine interface {
	// FindMatch returns the first match within input[start:end], or NoMatch.
	// A negative end stands for len(input).
	FindMatch(input []byte, start, end int) (Match, error)

	// IsMatch reports whether input[start:end] contains a match.
	IsMatch(input []byte, start, end int) (bool, error)

	// String returns the serialized form.
	String() string

	// Options returns the pattern options.
	Options() Options

	// Culture returns the culture used for case folding.
	Culture() string

	// Timeout returns the search timeout, 0 when none.
	Timeout() time.Duration

	// AtomCount returns the number of atoms of the alphabet.
	AtomCount() int

	// Stats returns a snapshot of the counters.
	Stats() Stats

	// ResetStats zeroes the counters.
	ResetStats()

	// Explore builds an automaton view of A, A1 or Ar.
	Explore(kind AutomatonKind, maxStates int) *Automaton
}

// Match is a match of length Length at byte offset Index.
type Match struct {
	Index  int
	Length int
}

// NoMatch is the result of an unsuccessful search.
var NoMatch = Match{Index: -1}

// Success reports whether m is a match.
func (m Match) Success() bool { return m.Index >= 0 }

// End returns the offset just past the match.
func (m Match) End() int { return m.Index + m.Length }

func (m Match) String() string {
	return "(" + strconv.Itoa(m.Index) + "," + strconv.Itoa(m.Length) + ")"
}

// Settings are the pattern-level parameters of a matcher.
type Settings struct {
	Options Options
	Timeout time.Duration
	Culture string
	Config  Config
}

// Matcher is the symbolic matcher over predicates of type P.
type Matcher[P comparable] struct {
	alg        algebra.MintermAlgebra[P]
	b          *symbolic.Builder[P]
	classifier *algebra.Classifier
	atoms      []P
	settings   Settings

	// character kinds, only meaningful when anchors is set
	anchors     bool
	lineAnchors bool
	wordPred    P
	newlinePred P
	atomKinds   []symbolic.CharKind

	a, a1, ar *symbolic.Node[P]

	aq0, a1q0, arq0 [symbolic.CharKindCount]*State[P]
	a1Skip, arSkip  [symbolic.CharKindCount]atomic.Pointer[State[P]]

	startSet        P
	startSetSize    uint64
	startSetChars   []rune
	startClassifier *algebra.BooleanClassifier
	prefix          string
	ignoreCase      bool
	arPrefix        string

	prefixSearch searcher
	startSearch  searcher

	mu     sync.Mutex
	states []*State[P]
	index  map[stateKey]*State[P]
	table  atomic.Pointer[table[P]]

	stats counters
}

// analysis holds what is derived from A by static analysis. It is either
// computed or read back from serialized text.
type analysis[P comparable] struct {
	startSet        P
	startSetSize    uint64
	startSetChars   []rune
	startClassifier *algebra.BooleanClassifier
	prefix          string
	ignoreCase      bool
	arPrefix        string
}

// New builds a matcher for the pattern a over the builder b, whose algebra
// must be alg. word and newline are the word-letter and newline predicates,
// or alg.False() when the pattern has no boundary respectively line anchor.
func New[P comparable](alg algebra.MintermAlgebra[P], b *symbolic.Builder[P], a *symbolic.Node[P], word, newline P, s Settings) (*Matcher[P], error) {
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}
	if !a.Info().ContainsSomeCharacter() {
		return nil, errorf(UnsupportedOption, nil, "characterless pattern")
	}
	if a.CanBeNullable() {
		return nil, errorf(UnsupportedOption, nil, "pattern allowing 0-length match")
	}
	m := newMatcher(alg, b, a, word, newline, s)
	m.setup(m.analyze())
	return m, nil
}

func newMatcher[P comparable](alg algebra.MintermAlgebra[P], b *symbolic.Builder[P], a *symbolic.Node[P], word, newline P, s Settings) *Matcher[P] {
	m := &Matcher[P]{
		alg:         alg,
		b:           b,
		classifier:  alg.Classifier(),
		atoms:       alg.Atoms(),
		settings:    s,
		anchors:     a.Info().ContainsSomeAnchor(),
		lineAnchors: newline != alg.False(),
		wordPred:    word,
		newlinePred: newline,
		a:           a,
		index:       make(map[stateKey]*State[P]),
	}
	m.a1 = b.DotStarPrefixed(a)
	m.ar = b.Reverse(a)
	m.atomKinds = make([]symbolic.CharKind, len(m.atoms))
	for i, atom := range m.atoms {
		switch {
		case alg.IsSatisfiable(alg.And(atom, newline)):
			m.atomKinds[i] = symbolic.KindNewline
		case alg.IsSatisfiable(alg.And(atom, word)):
			m.atomKinds[i] = symbolic.KindWordLetter
		}
	}
	m.table.Store(newTable[P](s.Config.InitialStateCapacity, len(m.atoms)+1))
	return m
}

func (m *Matcher[P]) analyze() analysis[P] {
	alg := m.alg
	var an analysis[P]
	an.startSet = m.b.StartSet(m.a)
	an.startSetSize = alg.DomainSize(an.startSet)
	ranges := alg.Ranges(an.startSet)
	an.startClassifier = algebra.NewBooleanClassifier(ranges)
	if an.startSetSize <= uint64(m.settings.Config.StartSetArrayMaxSize) {
		an.startSetChars = enumerate(ranges)
	}
	an.prefix, an.ignoreCase = m.b.FixedPrefix(m.a)
	if p, ic := m.b.FixedPrefix(m.ar); !ic {
		an.arPrefix = p
	}
	return an
}

// setup installs the analysis results and creates the initial states.
func (m *Matcher[P]) setup(an analysis[P]) {
	m.startSet = an.startSet
	m.startSetSize = an.startSetSize
	m.startSetChars = an.startSetChars
	m.startClassifier = an.startClassifier
	m.prefix = an.prefix
	m.ignoreCase = an.ignoreCase
	m.arPrefix = an.arPrefix

	cfg := m.settings.Config
	switch {
	case cfg.UsePrefixSearch && m.prefix != "":
		m.prefixSearch = newPrefixSearcher(m.prefix, m.ignoreCase, cfg.MaxPrefixVariants)
	case cfg.UseStartSetSearch && m.startSet != m.alg.True():
		m.startSearch = newStartSetSearcher(m.startSetChars, m.startSetSize, cfg.StartSetArrayMaxSize, m.startClassifier)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range symbolic.CharKindCount {
		kind := symbolic.CharKind(k)
		if !m.anchors && kind != symbolic.KindNone {
			continue
		}
		m.aq0[k] = m.state(m.a, kind)
		m.a1q0[k] = m.state(m.a1, kind)
		m.a1q0[k].initial = true
		m.arq0[k] = m.state(m.ar, kind)
	}
}

// state returns the interned state for node after a character of kind prev.
// The caller holds m.mu.
func (m *Matcher[P]) state(node *symbolic.Node[P], prev symbolic.CharKind) *State[P] {
	if prev != symbolic.KindStart {
		node = m.b.ReplaceStartAnchorByBottom(node)
	}
	key := stateKey{node: node.ID(), prev: prev}
	if s, ok := m.index[key]; ok {
		return s
	}
	s := newState(len(m.states), node, prev)
	m.states = append(m.states, s)
	m.index[key] = s
	if t := m.table.Load(); len(m.states) > t.capacity() {
		m.table.Store(t.grown(len(m.states)))
	}
	m.stats.statesCreated.Add(1)
	return s
}

// StateCount returns the number of states created so far.
func (m *Matcher[P]) StateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.states)
}

// step returns the successor of q on r. last reports whether r is the last
// character of the input, which matters for a final '\n'.
func (m *Matcher[P]) step(q *State[P], r rune, last bool) *State[P] {
	atom := m.classifier.Classify(r)
	col := atom
	if last && r == '\n' && m.lineAnchors {
		col = len(m.atoms)
	}
	if p := m.table.Load().get(q.id, col); p != nil {
		return p
	}
	return m.transition(q, atom, col)
}

// transition computes and records the successor of q on atom in column col.
func (m *Matcher[P]) transition(q *State[P], atom, col int) *State[P] {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p := m.table.Load().get(q.id, col); p != nil {
		return p
	}
	kind := symbolic.KindNone
	if m.anchors {
		kind = m.atomKinds[atom]
		if col == len(m.atoms) {
			kind = symbolic.KindNewlineZ
		}
	}
	next := m.b.Derivative(q.node, m.atoms[atom], q.prev, kind)
	p := m.state(next, kind)
	t := m.table.Load()
	t.cells[q.id*t.width+col].Store(p)
	m.stats.transitionsComputed.Add(1)
	return p
}

// deltaPlus returns the state reached from q by reading s.
func (m *Matcher[P]) deltaPlus(q *State[P], s string) *State[P] {
	for _, r := range s {
		q = m.step(q, r, false)
	}
	return q
}

// a1SkipState returns the A1 state after the prefix, from the initial state
// for prev. The first computed state is kept.
func (m *Matcher[P]) a1SkipState(prev symbolic.CharKind) *State[P] {
	return skipState(&m.a1Skip[prev], func() *State[P] { return m.deltaPlus(m.a1q0[prev], m.prefix) })
}

// arSkipState is a1SkipState for Ar and its prefix.
func (m *Matcher[P]) arSkipState(prev symbolic.CharKind) *State[P] {
	return skipState(&m.arSkip[prev], func() *State[P] { return m.deltaPlus(m.arq0[prev], m.arPrefix) })
}

func skipState[P comparable](slot *atomic.Pointer[State[P]], compute func() *State[P]) *State[P] {
	if s := slot.Load(); s != nil {
		return s
	}
	slot.CompareAndSwap(nil, compute())
	return slot.Load()
}

// kindOf classifies r; last reports whether r ends the input.
func (m *Matcher[P]) kindOf(r rune, last bool) symbolic.CharKind {
	if r == '\n' && m.lineAnchors {
		if last {
			return symbolic.KindNewlineZ
		}
		return symbolic.KindNewline
	}
	return m.atomKinds[m.classifier.Classify(r)]
}

// prevKind is the kind of the character before pos.
func (m *Matcher[P]) prevKind(input []byte, pos int) symbolic.CharKind {
	if !m.anchors {
		return symbolic.KindNone
	}
	if pos == 0 {
		return symbolic.KindStart
	}
	r, _ := utf8.DecodeLastRune(input[:pos])
	return m.kindOf(r, pos == len(input))
}

// nextKind is the kind of the character at pos.
func (m *Matcher[P]) nextKind(input []byte, pos int) symbolic.CharKind {
	if !m.anchors {
		return symbolic.KindNone
	}
	if pos == len(input) {
		return symbolic.KindEnd
	}
	r, w := utf8.DecodeRune(input[pos:])
	return m.kindOf(r, pos+w == len(input))
}

// Ar reads the input backwards, so the right end of the input is its start.

func (m *Matcher[P]) revPrevKind(input []byte, pos int) symbolic.CharKind {
	if m.anchors && pos == len(input) {
		return symbolic.KindStart
	}
	return m.nextKind(input, pos)
}

func (m *Matcher[P]) revNextKind(input []byte, pos int) symbolic.CharKind {
	if m.anchors && pos == 0 {
		return symbolic.KindEnd
	}
	return m.prevKind(input, pos)
}

// Options returns the pattern options.
func (m *Matcher[P]) Options() Options { return m.settings.Options }

// Culture returns the culture used for case folding.
func (m *Matcher[P]) Culture() string { return m.settings.Culture }

// Timeout returns the search timeout, 0 when none.
func (m *Matcher[P]) Timeout() time.Duration { return m.settings.Timeout }

// AtomCount returns the number of atoms.
func (m *Matcher[P]) AtomCount() int { return len(m.atoms) }

// Prefix returns the literal every match starts with and whether it is
// matched ASCII case-insensitively.
func (m *Matcher[P]) Prefix() (string, bool) { return m.prefix, m.ignoreCase }

// Pattern returns A.
func (m *Matcher[P]) Pattern() *symbolic.Node[P] { return m.a }

// Stats returns a snapshot of the counters.
func (m *Matcher[P]) Stats() Stats { return m.stats.snapshot() }

// ResetStats zeroes the counters.
func (m *Matcher[P]) ResetStats() { m.stats.reset() }
