package kb

import "github.com/BaoNinh2808/semigroups/word"

// ReductionOrder is a total order on words with no infinite descending
// chain, stable under two-sided concatenation (u < v implies a+u+b <
// a+v+b for all a, b). Knuth-Bendix completion terminates only for
// orderings under which the presentation actually admits a finite
// confluent system; the engine behaves identically for any ordering
// satisfying the contract (spec §4.B).
type ReductionOrder interface {
	// Less reports whether u precedes v in the order.
	Less(u, v word.Word) bool
}

// ShortLex is the default reduction order: shorter words precede longer
// ones, and words of equal length are compared lexicographically by letter
// value.
type ShortLex struct{}

// Less implements ReductionOrder.
func (ShortLex) Less(u, v word.Word) bool {
	if len(u) != len(v) {
		return len(u) < len(v)
	}
	for i := range u {
		if u[i] != v[i] {
			return u[i] < v[i]
		}
	}
	return false
}
