package element

import (
	"github.com/BaoNinh2808/semigroups/kb"
	"github.com/BaoNinh2808/semigroups/word"
)

// RWSElement is a word over a shared, already-confluent Knuth-Bendix system,
// kept in normal form. It implements Element[RWSElement] and is the element
// type the congruence dispatcher's KBFP strategy enumerates with: spec
// §4.E's "Knuth-Bendix + Froidure-Pin" runs the FP engine over the normal
// forms of a confluent rewriting system rather than over a bespoke
// algebraic type.
//
// Every RWSElement sharing one *kb.System must only ever be combined with
// others from the same system; Product panics otherwise, since multiplying
// across two independent rewriting systems is meaningless.
type RWSElement struct {
	sys    *kb.System
	nrgens int
	w      word.Word
}

// NewRWSElement returns the normal form of w under sys, naming an element of
// the monoid on nrgens generators presented by sys.
func NewRWSElement(sys *kb.System, nrgens int, w word.Word) RWSElement {
	return RWSElement{sys: sys, nrgens: nrgens, w: sys.Rewrite(w)}
}

// Degree returns the generator count of the presentation.
func (e RWSElement) Degree() int { return e.nrgens }

// One returns the empty word, the monoid identity.
func (e RWSElement) One() RWSElement {
	return RWSElement{sys: e.sys, nrgens: e.nrgens, w: word.Word{}}
}

// Product writes the normal form of e.w followed by other.w into *out.
func (e RWSElement) Product(out *RWSElement, other RWSElement, _ int) {
	if e.sys != other.sys {
		panic("element: RWSElement.Product across independent rewriting systems")
	}
	out.sys = e.sys
	out.nrgens = e.nrgens
	out.w = e.sys.Rewrite(e.w.Append(other.w))
}

// Copy returns an independent copy of e (words are immutable once rewritten,
// so this only needs a defensive slice clone).
func (e RWSElement) Copy() RWSElement {
	return RWSElement{sys: e.sys, nrgens: e.nrgens, w: e.w.Clone()}
}

// Equal compares normal forms.
func (e RWSElement) Equal(other RWSElement) bool { return e.w.Equal(other.w) }

// Less applies the underlying system's reduction order to the two normal
// forms, giving the deterministic enumeration order spec §4.C relies on.
func (e RWSElement) Less(other RWSElement) bool {
	return e.sys.Less(e.w, other.w)
}

// Hash is the FNV-1a hash of the normal form's letters.
func (e RWSElement) Hash() uint64 {
	var h uint64 = 14695981039346656037
	for _, l := range e.w {
		h ^= uint64(l)
		h *= 1099511628211
	}
	return h
}

// Complexity upper-bounds Product's cost by the combined word length, which
// Rewrite scans at least once.
func (e RWSElement) Complexity() int { return len(e.w) + 1 }

// Word returns the element's normal-form word.
func (e RWSElement) Word() word.Word { return e.w }
