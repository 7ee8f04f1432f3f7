package fp

import (
	"context"
	"slices"

	"github.com/BaoNinh2808/semigroups/word"
)

// Size fully enumerates the semigroup and returns its order.
func (s *Semigroup[T]) Size(ctx context.Context) int {
	s.runAll(ctx)
	return len(s.elements)
}

// Position incrementally enumerates until x is found or the semigroup is
// fully known, returning its index or Undefined.
func (s *Semigroup[T]) Position(ctx context.Context, x T) int {
	if idx := s.findIndex(x); idx != Undefined {
		return idx
	}
	s.runUntil(ctx, func() bool {
		return s.findIndex(x) != Undefined || s.isFullyEnumerated()
	})
	return s.findIndex(x)
}

// Contains reports whether x belongs to the semigroup.
func (s *Semigroup[T]) Contains(ctx context.Context, x T) bool {
	return s.Position(ctx, x) != Undefined
}

// WordToPos traces w through the right Cayley graph starting at
// letter_to_pos[w[0]], enumerating as needed. Returns Undefined if any step
// is undefined once enumeration is exhausted. The empty word yields the
// position of the identity element when one has been found, and Undefined
// otherwise.
func (s *Semigroup[T]) WordToPos(ctx context.Context, w word.Word) int {
	if len(w) == 0 {
		if s.hasOne {
			return s.posOne
		}
		return Undefined
	}
	pos := int(s.letterToPos[w[0]])
	for _, g := range w[1:] {
		s.ensureRight(ctx, pos, int(g))
		r := s.right[pos][g]
		if r == Undefined {
			return Undefined
		}
		pos = r
	}
	return pos
}

// ensureRight enumerates until right[i][g] is known or the semigroup is
// fully enumerated.
func (s *Semigroup[T]) ensureRight(ctx context.Context, i, g int) {
	s.runUntil(ctx, func() bool {
		return i < len(s.right) && s.right[i][g] != Undefined || s.isFullyEnumerated()
	})
}

// WordToElement returns the canonical element named by w: if WordToPos
// finds it, the stored copy is returned; otherwise it is built by
// multiplying step by step.
func (s *Semigroup[T]) WordToElement(ctx context.Context, w word.Word) T {
	if pos := s.WordToPos(ctx, w); pos != Undefined {
		return s.elements[pos].Copy()
	}
	acc := s.generators[0].One()
	for _, g := range w {
		tmp := acc
		acc.Product(&tmp, s.Generator(g), 0)
		acc = tmp
	}
	return acc
}

// Equal compares u and v via positions when both are known, falling back
// to constructing and comparing elements.
func (s *Semigroup[T]) Equal(ctx context.Context, u, v word.Word) bool {
	pu, pv := s.WordToPos(ctx, u), s.WordToPos(ctx, v)
	if pu != Undefined && pv != Undefined {
		return pu == pv
	}
	return s.WordToElement(ctx, u).Equal(s.WordToElement(ctx, v))
}

// Factorisation follows prefix/final from i back to a generator, producing
// a minimal-length word naming element i. MinimalFactorisation is an alias
// kept for parity with spec naming.
func (s *Semigroup[T]) Factorisation(i int) word.Word {
	var letters []word.Letter
	for i != Undefined {
		letters = append(letters, s.final[i])
		i = s.prefix[i]
	}
	out := make(word.Word, len(letters))
	for k, l := range letters {
		out[len(letters)-1-k] = l
	}
	return out
}

// MinimalFactorisation is an alias for Factorisation.
func (s *Semigroup[T]) MinimalFactorisation(i int) word.Word { return s.Factorisation(i) }

// Right returns right[i][g], enumerating as needed.
func (s *Semigroup[T]) Right(ctx context.Context, i int, g word.Letter) int {
	s.ensureRight(ctx, i, int(g))
	if i >= len(s.right) {
		return Undefined
	}
	return s.right[i][g]
}

// Left returns left[i][g], forcing full enumeration (left entries are only
// fully backfilled once a length bucket completes).
func (s *Semigroup[T]) Left(ctx context.Context, i int, g word.Letter) int {
	s.runAll(ctx)
	if i >= len(s.left) {
		return Undefined
	}
	return s.left[i][g]
}

// RightCayleyGraph forces full enumeration and returns a defensive copy of
// the right Cayley graph, right[i][g] = i*generator(g).
func (s *Semigroup[T]) RightCayleyGraph(ctx context.Context) [][]int {
	s.runAll(ctx)
	return copyTable(s.right)
}

// LeftCayleyGraph forces full enumeration and returns a defensive copy of
// the left Cayley graph, left[i][g] = generator(g)*i.
func (s *Semigroup[T]) LeftCayleyGraph(ctx context.Context) [][]int {
	s.runAll(ctx)
	return copyTable(s.left)
}

func copyTable(t [][]int) [][]int {
	out := make([][]int, len(t))
	for i, row := range t {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// ProductByReduction computes the index of i*j purely by Cayley-graph
// traversal, tracing whichever of i's or j's minimal word is shorter.
func (s *Semigroup[T]) ProductByReduction(ctx context.Context, i, j int) int {
	if s.length[i] <= s.length[j] {
		pos := j
		w := s.Factorisation(i)
		for k := len(w) - 1; k >= 0; k-- {
			pos = s.Left(ctx, pos, w[k])
			if pos == Undefined {
				return Undefined
			}
		}
		return pos
	}
	pos := i
	w := s.Factorisation(j)
	for _, g := range w {
		pos = s.Right(ctx, pos, g)
		if pos == Undefined {
			return Undefined
		}
	}
	return pos
}

// FastProduct computes i*j: if both lengths are large relative to twice the
// complexity of a direct multiplication, it multiplies directly and looks
// the result up; otherwise it falls back to ProductByReduction.
func (s *Semigroup[T]) FastProduct(ctx context.Context, i, j, tid int) int {
	tmp := s.scratch.Get(tid)
	complexity := s.elements[i].Complexity()
	if s.length[i] > 2*complexity && s.length[j] > 2*complexity {
		s.elements[i].Product(tmp, s.elements[j], tid)
		if k := s.findIndex(*tmp); k != Undefined {
			return k
		}
		s.runUntil(ctx, func() bool {
			return s.findIndex(*tmp) != Undefined || s.isFullyEnumerated()
		})
		return s.findIndex(*tmp)
	}
	return s.ProductByReduction(ctx, i, j)
}

// Reserve pre-sizes the internal tables for n elements, avoiding repeated
// slice growth during enumeration of a known-large semigroup.
func (s *Semigroup[T]) Reserve(n int) {
	extra := n - len(s.elements)
	if extra <= 0 {
		return
	}
	s.elements = slices.Grow(s.elements, extra)
	s.first = slices.Grow(s.first, extra)
	s.final = slices.Grow(s.final, extra)
	s.prefix = slices.Grow(s.prefix, extra)
	s.suffix = slices.Grow(s.suffix, extra)
	s.length = slices.Grow(s.length, extra)
	s.reduced = slices.Grow(s.reduced, extra)
	s.right = slices.Grow(s.right, extra)
	s.left = slices.Grow(s.left, extra)
	s.enumerateOrder = slices.Grow(s.enumerateOrder, extra)
}
