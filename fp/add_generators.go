package fp

import (
	"context"

	"github.com/BaoNinh2808/semigroups/errs"
	"github.com/BaoNinh2808/semigroups/word"
)

// MarkImmutable prevents further generators from being added, e.g. once a
// Semigroup has been handed off as the concrete basis of a congruence
// (spec §4.C "forbidden if the FP has been marked immutable").
func (s *Semigroup[T]) MarkImmutable() { s.immutable = true }

// AddGenerator extends the generator set with a single element. See
// AddGenerators for the full algorithm.
func (s *Semigroup[T]) AddGenerator(ctx context.Context, x T) error {
	return s.AddGenerators(ctx, []T{x})
}

// Closure adds only the elements of coll not already present in the
// semigroup.
func (s *Semigroup[T]) Closure(ctx context.Context, coll []T) error {
	var fresh []T
	for _, x := range coll {
		if s.Position(ctx, x) == Undefined {
			fresh = append(fresh, x)
		}
	}
	if len(fresh) == 0 {
		return nil
	}
	return s.AddGenerators(ctx, fresh)
}

// AddGenerators extends the generator set with coll: new generators are
// appended; generators already present as a non-generator element are
// re-tagged as generators (their first/final/prefix/suffix/length are
// reset); generators already present as a generator are recorded as
// duplicates. Enumeration then reruns from the length-1 pass over the
// enlarged generator set and recomputes every (element, generator) image,
// including those already known for the old generators.
func (s *Semigroup[T]) AddGenerators(ctx context.Context, coll []T) error {
	if s.immutable {
		return errs.InvalidState("fp: cannot add generators to an immutable semigroup")
	}
	if len(coll) == 0 {
		return nil
	}
	deg := s.Degree()
	for _, x := range coll {
		if x.Degree() != deg {
			return errs.InvalidArgument("fp: added generator has mismatched degree")
		}
	}

	reenqueued := make(map[int]bool)

	for _, x := range coll {
		if idx := s.findIndex(x); idx != Undefined {
			if s.length[idx] == 1 {
				// Already a generator: record the duplicate. Its contribution
				// to nrRules is folded in below from len(s.duplicateGens),
				// not counted here, since the rebuild resets and recomputes
				// nrRules from scratch.
				s.duplicateGens = append(s.duplicateGens, duplicateGen{
					letter: word.Letter(len(s.letterToPos)),
					pos:    idx,
				})
				s.letterToPos = append(s.letterToPos, idx)
				continue
			}
			// Promote a previously-discovered non-generator element to a
			// generator. Its old factorisation metadata becomes a
			// tombstone (spec §9 open question: UNDEFINED as tombstone,
			// never compared arithmetically before being refilled).
			s.letterToPos = append(s.letterToPos, idx)
			s.first[idx] = word.Letter(len(s.letterToPos) - 1)
			s.final[idx] = word.Letter(len(s.letterToPos) - 1)
			s.prefix[idx] = Undefined
			s.suffix[idx] = Undefined
			s.length[idx] = 1
			reenqueued[idx] = true
			continue
		}
		idx := len(s.elements)
		s.elements = append(s.elements, x.Copy())
		letter := word.Letter(len(s.letterToPos))
		s.letterToPos = append(s.letterToPos, idx)
		s.first = append(s.first, letter)
		s.final = append(s.final, letter)
		s.prefix = append(s.prefix, Undefined)
		s.suffix = append(s.suffix, Undefined)
		s.length = append(s.length, 1)
		s.reduced = append(s.reduced, nil)
		s.right = append(s.right, nil)
		s.left = append(s.left, nil)
		s.recordIndex(s.elements[idx], idx)
		reenqueued[idx] = true
		s.checkIdentity(idx)
	}

	nrgens := len(s.letterToPos)
	s.growColumns(nrgens)

	// Erase enumerate_order past the first length bucket and rebuild it
	// from every length-1 element (old generators, newly added
	// generators, and re-tagged elements), then every remaining
	// previously-discovered element in its old discovery order so the
	// resumed pass revisits it under the enlarged generator set.
	var newOrder []int
	for i := 0; i < len(s.elements); i++ {
		if s.length[i] == 1 {
			newOrder = append(newOrder, i)
		}
	}
	n1 := len(newOrder)
	for _, i := range s.enumerateOrder {
		if s.length[i] != 1 && !reenqueued[i] {
			newOrder = append(newOrder, i)
		}
	}
	for i := range reenqueued {
		if s.length[i] != 1 {
			newOrder = append(newOrder, i)
		}
	}
	s.enumerateOrder = newOrder
	s.lenindex = []int{0, n1}
	s.wordlen = 0
	s.pos = 0
	// nrRules starts from the full duplicate-generator count (every entry
	// ever recorded in s.duplicateGens, old calls included, since those are
	// never replayed below) and is then rebuilt by re-processing the (i,g)
	// grid, which revisits every pair exactly once and so reproduces the
	// same hit count NextRelation would recompute from the final tables.
	s.nrRules = len(s.duplicateGens)

	s.run(ctx, -1)
	return nil
}
