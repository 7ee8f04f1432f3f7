// Package element defines the capability trait every algebraic element
// type must satisfy to be enumerated by the fp package (spec §4.A). The
// engines in this module never inspect element internals; they call only
// the methods declared by Element[T].
package element

// Element is the capability set a type T must implement to be enumerated
// by fp.Semigroup[T]. Implementations must guarantee:
//   - Product is associative wherever defined;
//   - Equal and Hash are consistent (a.Equal(b) implies a.Hash() == b.Hash());
//   - Less is a strict total order;
//   - Degree is preserved by Product on composable elements;
//   - Product is safe to call concurrently on calls with distinct out and
//     tid arguments.
type Element[T any] interface {
	// Degree is a dimensional invariant shared by composable elements,
	// e.g. a transformation's domain size or a matrix's row count.
	Degree() int

	// One returns the multiplicative identity at the degree of the
	// receiver.
	One() T

	// Product writes the receiver times other into *out. tid selects
	// per-worker scratch space; implementations that need none may ignore
	// it.
	Product(out *T, other T, tid int)

	// Copy returns an independent copy of the receiver.
	Copy() T

	// Equal reports value equality.
	Equal(other T) bool

	// Less imposes a strict total order, used to produce the
	// deterministic "sorted" iteration order over an enumerated
	// semigroup.
	Less(other T) bool

	// Hash returns a hash consistent with Equal.
	Hash() uint64

	// Complexity upper-bounds the cost of one call to Product; the FP
	// engine uses it to decide whether tracing a Cayley-graph path beats
	// a direct multiplication.
	Complexity() int
}

// IncreaseDegree is implemented optionally by element types that support
// embedding a lower-degree element into a higher one, e.g. padding a
// transformation's image to a larger domain before composing it with one of
// higher degree.
type IncreaseDegree[T any] interface {
	IncreaseDegree(n int) T
}

// ScratchPool holds one pre-allocated T per worker so Product calls never
// allocate on the hot path. This is the concrete shape of the "tid...
// per-worker scratch space" contract in spec §3, grounded on the source's
// pool.hpp (see DESIGN.md).
type ScratchPool[T any] struct {
	buf []T
}

// NewScratchPool returns a pool sized for n workers, each slot initialised
// to a copy of zero.
func NewScratchPool[T any](n int, zero T) *ScratchPool[T] {
	if n < 1 {
		n = 1
	}
	p := &ScratchPool[T]{buf: make([]T, n)}
	for i := range p.buf {
		if c, ok := any(zero).(interface{ Copy() T }); ok {
			p.buf[i] = c.Copy()
		} else {
			p.buf[i] = zero
		}
	}
	return p
}

// Get returns the scratch slot for worker tid, wrapping if tid exceeds the
// pool's capacity (a caller requesting more concurrency than the pool was
// sized for degrades to sharing slots rather than panicking).
func (p *ScratchPool[T]) Get(tid int) *T {
	if len(p.buf) == 0 {
		return nil
	}
	return &p.buf[tid%len(p.buf)]
}

// Len reports how many scratch slots the pool holds.
func (p *ScratchPool[T]) Len() int { return len(p.buf) }
