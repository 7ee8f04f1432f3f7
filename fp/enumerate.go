package fp

import (
	"context"

	"github.com/BaoNinh2808/semigroups/word"
)

// init runs spec §4.C's "generator pass", setting up lenindex[0],
// lenindex[1], letter_to_pos, and the length-1 elements. This runs once at
// construction time; run handles the length-1 pass and everything after it.
func (s *Semigroup[T]) init() {
	s.letterToPos = make([]int, 0, len(s.generators))
	// generator pass
	for _, g := range s.generators {
		if idx := s.findIndex(g); idx != Undefined {
			s.duplicateGens = append(s.duplicateGens, duplicateGen{
				letter: word.Letter(len(s.letterToPos)),
				pos:    idx,
			})
			s.nrRules++
			s.letterToPos = append(s.letterToPos, idx)
			continue
		}
		idx := len(s.elements)
		s.elements = append(s.elements, g.Copy())
		s.first = append(s.first, word.Letter(len(s.letterToPos)))
		s.final = append(s.final, word.Letter(len(s.letterToPos)))
		s.prefix = append(s.prefix, Undefined)
		s.suffix = append(s.suffix, Undefined)
		s.length = append(s.length, 1)
		s.reduced = append(s.reduced, make([]bool, 0))
		s.right = append(s.right, nil)
		s.left = append(s.left, nil)
		s.recordIndex(s.elements[idx], idx)
		s.enumerateOrder = append(s.enumerateOrder, idx)
		s.letterToPos = append(s.letterToPos, idx)

		if one := g.One(); !s.hasOne {
			if one.Equal(g) {
				s.posOne = idx
				s.hasOne = true
			}
		}
	}
	nrgens := len(s.letterToPos)
	for i := range s.right {
		s.right[i] = make([]int, nrgens)
		s.left[i] = make([]int, nrgens)
		s.reduced[i] = make([]bool, nrgens)
		for g := 0; g < nrgens; g++ {
			s.right[i][g] = Undefined
			s.left[i][g] = Undefined
		}
	}
	s.lenindex = []int{0, len(s.elements)}
	s.wordlen = 0
}

// growColumns adds columns for newly introduced generators to every
// existing row of right/left/reduced.
func (s *Semigroup[T]) growColumns(nrgens int) {
	for i := range s.right {
		for len(s.right[i]) < nrgens {
			s.right[i] = append(s.right[i], Undefined)
			s.left[i] = append(s.left[i], Undefined)
			s.reduced[i] = append(s.reduced[i], false)
		}
	}
}

// run performs enumeration from the current cursor position until ctx is
// cancelled, until n elements have been found (n < 0 means no bound), or
// until enumeration is exhausted. It implements spec §4.C's length-1 pass
// (the first time it is called) and longer-word pass (every subsequent
// call), including the Cayley-graph shortcut for computing i*g without a
// direct product when the suffix's image under g is already known and not
// reduced.
func (s *Semigroup[T]) run(ctx context.Context, target int) {
	nrgens := len(s.letterToPos)
	tmp := s.scratch.Get(0)

	if s.wordlen == 0 {
		// length-1 pass: apply every generator to every length-1 element.
		// Indexed through enumerateOrder (not raw element positions 0..n1)
		// since AddGenerators can re-tag an element discovered anywhere in
		// s.elements as a generator.
		n1 := s.lenindex[1]
		for p := 0; p < n1; p++ {
			if ctx.Err() != nil {
				return
			}
			i := s.enumerateOrder[p]
			for g := 0; g < nrgens; g++ {
				s.elements[i].Product(tmp, s.elements[s.letterToPos[g]], 0)
				if k := s.findIndex(*tmp); k != Undefined {
					s.right[i][g] = k
					// a pair already marked reduced discovered k itself on an
					// earlier pass; it is not a relation.
					if !s.reduced[i][g] {
						s.nrRules++
					}
					continue
				}
				idx := len(s.elements)
				s.elements = append(s.elements, (*tmp).Copy())
				s.first = append(s.first, s.first[i])
				s.final = append(s.final, word.Letter(g))
				s.prefix = append(s.prefix, i)
				s.suffix = append(s.suffix, int(s.letterToPos[g]))
				s.length = append(s.length, 2)
				s.right[i][g] = idx
				s.reduced[i][g] = true
				s.recordIndex(s.elements[idx], idx)
				s.enumerateOrder = append(s.enumerateOrder, idx)
				s.right = append(s.right, newRow(nrgens))
				s.left = append(s.left, newRow(nrgens))
				s.reduced = append(s.reduced, make([]bool, nrgens))
				s.checkIdentity(idx)
			}
		}
		// backfill left for the generator pass rows using the newly
		// discovered right images.
		for p := 0; p < n1; p++ {
			i := s.enumerateOrder[p]
			for g := 0; g < nrgens; g++ {
				final := s.final[i]
				s.left[i][g] = s.right[s.letterToPos[g]][final]
			}
		}
		s.lenindex = append(s.lenindex, len(s.elements))
		s.wordlen = 1
		if s.ticker != nil {
			s.ticker.Tick(map[string]any{"size": len(s.elements), "wordlen": s.wordlen})
		}
	}

	// Invariant entering each iteration: lenindex has exactly wordlen+2
	// entries (lenindex[0..wordlen+1]); bucketEnd = lenindex[wordlen+1] is
	// fixed before the bucket is processed, since new elements discovered
	// while processing it have length wordlen+2 and are appended past
	// bucketEnd without disturbing it.
	for {
		if target >= 0 && len(s.elements) >= target {
			return
		}
		bucketStart := s.lenindex[s.wordlen]
		bucketEnd := s.lenindex[s.wordlen+1]
		if bucketStart == bucketEnd {
			return // nothing discovered of this length: fully enumerated
		}
		if s.pos < bucketStart {
			s.pos = bucketStart
		}
		for s.pos < bucketEnd {
			if ctx.Err() != nil {
				return
			}
			i := s.enumerateOrder[s.pos]
			b := s.first[i]
			sfx := s.suffix[i]
			for g := 0; g < nrgens; g++ {
				if sfx != Undefined && !s.reduced[sfx][g] {
					r := s.right[sfx][g]
					s.right[i][g] = s.deriveRight(b, r)
					continue
				}
				s.elements[i].Product(tmp, s.elements[s.letterToPos[g]], 0)
				if k := s.findIndex(*tmp); k != Undefined {
					s.right[i][g] = k
					if !s.reduced[i][g] {
						s.nrRules++
					}
					continue
				}
				idx := len(s.elements)
				s.elements = append(s.elements, (*tmp).Copy())
				s.first = append(s.first, b)
				s.final = append(s.final, word.Letter(g))
				s.prefix = append(s.prefix, i)
				rsg := Undefined
				if sfx != Undefined {
					rsg = s.right[sfx][g]
				}
				s.suffix = append(s.suffix, rsg)
				s.length = append(s.length, s.wordlen+2)
				s.right[i][g] = idx
				s.reduced[i][g] = true
				s.recordIndex(s.elements[idx], idx)
				s.enumerateOrder = append(s.enumerateOrder, idx)
				s.right = append(s.right, newRow(nrgens))
				s.left = append(s.left, newRow(nrgens))
				s.reduced = append(s.reduced, make([]bool, nrgens))
				s.checkIdentity(idx)
			}
			s.pos++
			if target >= 0 && len(s.elements) >= target {
				break
			}
		}
		if s.pos < bucketEnd {
			return // stopped mid-bucket for a batch-size target; resume next call
		}
		// backfill left for the bucket just finished.
		for p := bucketStart; p < bucketEnd; p++ {
			i := s.enumerateOrder[p]
			pre := s.prefix[i]
			if pre == Undefined {
				continue
			}
			for g := 0; g < nrgens; g++ {
				s.left[i][g] = s.right[s.left[pre][g]][s.final[i]]
			}
		}
		s.lenindex = append(s.lenindex, len(s.elements))
		s.wordlen++
		if s.ticker != nil {
			s.ticker.Tick(map[string]any{"size": len(s.elements), "wordlen": s.wordlen})
		}
	}
}

// deriveRight implements the three-case Cayley-graph shortcut of spec
// §4.C: given i = b*s (b a generator letter, s = suffix[i]) and r =
// right[s][g] already known with (s, g) not reduced, compute right[i][g] =
// b*r without a direct multiplication.
func (s *Semigroup[T]) deriveRight(b word.Letter, r int) int {
	if s.hasOne && r == s.posOne {
		return s.letterToPos[b]
	}
	if s.length[r] > 1 {
		return s.right[s.left[s.prefix[r]][b]][s.final[r]]
	}
	return s.right[s.letterToPos[b]][s.final[r]]
}

func (s *Semigroup[T]) checkIdentity(idx int) {
	if s.hasOne {
		return
	}
	one := s.elements[idx].One()
	if one.Equal(s.elements[idx]) {
		s.posOne = idx
		s.hasOne = true
	}
}

func newRow(n int) []int {
	r := make([]int, n)
	for i := range r {
		r[i] = Undefined
	}
	return r
}

// runUntil enumerates until pred returns true or enumeration is exhausted
// or ctx is cancelled, in batches of cfg.BatchSize elements (spec §6
// set_batch_size).
func (s *Semigroup[T]) runUntil(ctx context.Context, pred func() bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for !pred() {
		before := len(s.elements)
		s.run(ctx, before+s.cfg.BatchSize)
		if ctx.Err() != nil {
			return
		}
		if len(s.elements) == before {
			return // fully enumerated, no progress possible
		}
	}
}

// runAll forces full enumeration.
func (s *Semigroup[T]) runAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		before := len(s.elements)
		s.run(ctx, -1)
		if ctx.Err() != nil || len(s.elements) == before {
			return
		}
	}
}

// isFullyEnumerated reports whether the last enumeration pass made no
// further progress (the pos cursor has caught up with every discovered
// element and no new bucket was opened).
func (s *Semigroup[T]) isFullyEnumerated() bool {
	if len(s.lenindex) == 0 {
		return false
	}
	return s.pos >= len(s.enumerateOrder) && s.lenindex[len(s.lenindex)-1] == len(s.enumerateOrder)
}
