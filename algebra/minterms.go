package algebra

import "slices"

// ComputeMinterms returns the coarsest partition of the character domain
// such that every predicate in preds is a union of blocks.
//
// Blocks are pairwise disjoint, non-empty and together cover True. The result
// is deterministic: it depends only on the set of predicates, not on their
// order, because blocks are sorted by their smallest member. With no
// non-trivial predicate the result is the single block True.
func ComputeMinterms[P comparable](alg Algebra[P], preds []P) []P {
	blocks := []P{alg.True()}
	seen := make(map[P]struct{}, len(preds))
	for _, p := range preds {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		if p == alg.True() || !alg.IsSatisfiable(p) {
			continue
		}
		notP := alg.Not(p)
		next := make([]P, 0, 2*len(blocks))
		for _, b := range blocks {
			if in := alg.And(b, p); alg.IsSatisfiable(in) {
				next = append(next, in)
			}
			if out := alg.And(b, notP); alg.IsSatisfiable(out) {
				next = append(next, out)
			}
		}
		blocks = next
	}
	keys := make(map[P]rune, len(blocks))
	for _, b := range blocks {
		keys[b] = alg.Ranges(b)[0].Lo
	}
	slices.SortFunc(blocks, func(a, b P) int { return int(keys[a] - keys[b]) })
	return blocks
}
