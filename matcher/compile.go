package matcher

import (
	"github.com/coregx/srm/algebra"
	"github.com/coregx/srm/symbolic"
)

// Compile builds an Engine for root, a pattern over BDD predicates built
// with the solver css.
//
// The atoms are the minterms of every predicate of root plus the word
// letter and newline predicates; the latter only join when the pattern has
// a word boundary respectively an anchor that tells a newline apart. Up to
// 64 atoms select the 64-bit algebra, more select the wide one. When every match of root has
// the same length, a watchdog recording it is appended.
func Compile(css *algebra.CharSetSolver, root *symbolic.Node[*algebra.BDD], word, newline *algebra.BDD, s Settings) (Engine, error) {
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}
	if !root.Info().ContainsSomeCharacter() {
		return nil, errorf(UnsupportedOption, nil, "characterless pattern")
	}
	if root.CanBeNullable() {
		return nil, errorf(UnsupportedOption, nil, "pattern allowing 0-length match")
	}
	if !root.ContainsKind(symbolic.KindWordBoundary) && !root.ContainsKind(symbolic.KindNonWordBoundary) {
		word = css.False()
	}
	if !root.ContainsKind(symbolic.KindBOLAnchor) && !root.ContainsKind(symbolic.KindEOLAnchor) &&
		!root.ContainsKind(symbolic.KindEndZAnchor) {
		newline = css.False()
	}
	preds := append(symbolic.Predicates(root), word, newline)
	atoms := algebra.AtomRangesFromMinterms(css, algebra.ComputeMinterms[*algebra.BDD](css, preds))

	convert := func(bdd *algebra.BDD) func(rune) bool {
		return func(r rune) bool { return css.Contains(bdd, r) }
	}
	if len(atoms) <= 64 {
		alg, err := algebra.NewBV64Algebra(atoms)
		if err != nil {
			return nil, err
		}
		return build(alg, root, s, func(p *algebra.BDD) uint64 { return alg.FromCharSet(convert(p)) }, word, newline)
	}
	alg, err := algebra.NewBVAlgebra(atoms)
	if err != nil {
		return nil, err
	}
	return build(alg, root, s, func(p *algebra.BDD) *algebra.BV { return alg.FromCharSet(convert(p)) }, word, newline)
}

func build[P comparable](alg algebra.MintermAlgebra[P], root *symbolic.Node[*algebra.BDD], s Settings, f func(*algebra.BDD) P, word, newline *algebra.BDD) (Engine, error) {
	b := symbolic.NewBuilder[P](alg)
	a := symbolic.Transform(root, b, f)
	if s.Config.UseWatchdog {
		a = b.WithWatchDog(a)
	}
	m, err := New(alg, b, a, f(word), f(newline), s)
	if err != nil {
		return nil, err
	}
	return m, nil
}
