// Package convert turns a parsed regexp/syntax tree into a symbolic regex
// over BDD character predicates.
//
// The converter is the bridge between the host syntax and the symbolic
// engine: it resolves literals (with case folding), character classes and
// the dot to code point sets, maps anchors and word boundaries to anchor
// nodes, and maps repetition operators to bounded or unbounded loops.
// Capture groups are transparent.
//
// Example:
//
//	re, _ := syntax.Parse(`\bha+\b`, syntax.Perl)
//	solver := algebra.NewCharSetSolver()
//	c := convert.New(solver, symbolic.NewBuilder[*algebra.BDD](solver), "")
//	node, err := c.Convert(re)
package convert

import (
	"errors"
	"fmt"
	"regexp/syntax"
	"unicode"

	"github.com/coregx/srm/algebra"
	"github.com/coregx/srm/symbolic"
)

// ErrUnsupportedOp is returned for syntax operators the engine cannot express.
var ErrUnsupportedOp = errors.New("convert: unsupported syntax operator")

// Node is a symbolic node over BDD predicates.
type Node = symbolic.Node[*algebra.BDD]

// Converter converts syntax trees for one compilation. It is not safe for
// concurrent use.
type Converter struct {
	solver  *algebra.CharSetSolver
	builder *symbolic.Builder[*algebra.BDD]
	turkish bool

	anyChar   *algebra.BDD
	notNL     *algebra.BDD
	wordChars *algebra.BDD
}

// New creates a converter. culture selects culture-specific case folding
// of literals; "" is the invariant culture.
func New(solver *algebra.CharSetSolver, builder *symbolic.Builder[*algebra.BDD], culture string) *Converter {
	c := &Converter{
		solver:  solver,
		builder: builder,
		turkish: isTurkic(culture),
		anyChar: solver.Range(0, unicode.MaxRune),
	}
	c.notNL = solver.Diff(c.anyChar, solver.Char('\n'))
	c.wordChars = solver.FromRanges([]algebra.RuneRange{{'0', '9'}, {'A', 'Z'}, {'_', '_'}, {'a', 'z'}})
	return c
}

// WordLetterPredicate returns the characters \w and \b treat as word letters.
func (c *Converter) WordLetterPredicate() *algebra.BDD { return c.wordChars }

// NewlinePredicate returns the set containing '\n'. It tells the final
// '\n' apart for ^, $ and \Z.
func (c *Converter) NewlinePredicate() *algebra.BDD { return c.solver.Char('\n') }

// Convert converts re.
func (c *Converter) Convert(re *syntax.Regexp) (*Node, error) {
	b := c.builder
	switch re.Op {
	case syntax.OpNoMatch:
		return b.Nothing(), nil
	case syntax.OpEmptyMatch:
		return b.Epsilon(), nil
	case syntax.OpLiteral:
		parts := make([]*Node, len(re.Rune))
		for i, r := range re.Rune {
			if re.Flags&syntax.FoldCase != 0 {
				parts[i] = b.Singleton(c.foldSet(r))
			} else {
				parts[i] = b.Singleton(c.solver.Char(r))
			}
		}
		return b.Concat(parts...), nil
	case syntax.OpCharClass:
		set := c.solver.False()
		for i := 0; i+1 < len(re.Rune); i += 2 {
			set = c.solver.Or(set, c.solver.Range(re.Rune[i], re.Rune[i+1]))
		}
		if c.turkish && re.Flags&syntax.FoldCase != 0 {
			set = c.turkicClass(set)
		}
		return b.Singleton(set), nil
	case syntax.OpAnyCharNotNL:
		return b.Singleton(c.notNL), nil
	case syntax.OpAnyChar:
		return b.Singleton(c.anyChar), nil
	case syntax.OpBeginLine:
		return b.BOLAnchor(), nil
	case syntax.OpEndLine:
		return b.EOLAnchor(), nil
	case syntax.OpBeginText:
		return b.StartAnchor(), nil
	case syntax.OpEndText:
		if re.Flags&syntax.WasDollar != 0 {
			return b.EndZAnchor(), nil
		}
		return b.EndAnchor(), nil
	case syntax.OpWordBoundary:
		return b.WordBoundary(), nil
	case syntax.OpNoWordBoundary:
		return b.NonWordBoundary(), nil
	case syntax.OpCapture:
		return c.Convert(re.Sub[0])
	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		body, err := c.Convert(re.Sub[0])
		if err != nil {
			return nil, err
		}
		lower, upper := repeatBounds(re)
		return b.Loop(body, lower, upper, re.Flags&syntax.NonGreedy != 0), nil
	case syntax.OpConcat, syntax.OpAlternate:
		subs := make([]*Node, len(re.Sub))
		for i, sub := range re.Sub {
			n, err := c.Convert(sub)
			if err != nil {
				return nil, err
			}
			subs[i] = n
		}
		if re.Op == syntax.OpConcat {
			return b.Concat(subs...), nil
		}
		return b.Or(subs...), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedOp, re.Op)
}

func repeatBounds(re *syntax.Regexp) (lower, upper int) {
	switch re.Op {
	case syntax.OpStar:
		return 0, symbolic.Unbounded
	case syntax.OpPlus:
		return 1, symbolic.Unbounded
	case syntax.OpQuest:
		return 0, 1
	}
	if re.Max < 0 {
		return re.Min, symbolic.Unbounded
	}
	return re.Min, re.Max
}

// foldSet returns the case-insensitive equivalence class of r.
//
// The parser keeps a case-folded literal as the smallest rune of its fold
// orbit, so under a Turkic culture 'I' stands for both i and I and folds to
// i, İ, I and ı. The dotted and dotless letters have orbits of their own and
// fold to their Turkic pair only.
func (c *Converter) foldSet(r rune) *algebra.BDD {
	if c.turkish {
		switch r {
		case 'I', 'i':
			return c.solver.Or(c.dotted(), c.dotless())
		case 'İ':
			return c.dotted()
		case 'ı':
			return c.dotless()
		}
	}
	set := c.solver.Char(r)
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		set = c.solver.Or(set, c.solver.Char(f))
	}
	return set
}

// turkicClass adds the Turkic case partner of i and I to a case-folded class.
func (c *Converter) turkicClass(set *algebra.BDD) *algebra.BDD {
	s := c.solver
	if s.Contains(set, 'i') || s.Contains(set, 'İ') {
		set = s.Or(set, c.dotted())
	}
	if s.Contains(set, 'I') || s.Contains(set, 'ı') {
		set = s.Or(set, c.dotless())
	}
	return set
}

// dotted is {i, İ}.
func (c *Converter) dotted() *algebra.BDD {
	return c.solver.Or(c.solver.Char('i'), c.solver.Char('İ'))
}

// dotless is {I, ı}.
func (c *Converter) dotless() *algebra.BDD {
	return c.solver.Or(c.solver.Char('I'), c.solver.Char('ı'))
}

func isTurkic(culture string) bool {
	if len(culture) < 2 {
		return false
	}
	lang := culture[:2]
	return (lang == "tr" || lang == "az") && (len(culture) == 2 || culture[2] == '-' || culture[2] == '_')
}
