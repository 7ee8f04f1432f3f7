package cong

import (
	"context"

	"github.com/BaoNinh2808/semigroups/fp"
	"github.com/BaoNinh2808/semigroups/internal/uf"
	"github.com/BaoNinh2808/semigroups/tc"
	"github.com/BaoNinh2808/semigroups/word"
)

// pStrategy implements the "orbit of pairs" congruence strategy of spec
// §4.E: start from the FP positions of each extra pair, union-find them,
// then close the relation under multiplication by every generator on the
// side(s) named by kind, pushing every newly observed pair onto a queue
// until none remain.
type pStrategy struct {
	kind   Kind
	fpsg   ConcreteSemigroup
	nrgens int

	forest *uf.Forest
	queue  [][2]int
	done   bool

	lookup    []int
	nrClasses int
	lookupSet bool
}

// newPStrategy seeds the orbit from extra's FP positions. Pairs naming an
// element outside the currently-known FP (Undefined) are skipped: P only
// ever reasons about positions the FP has already discovered or discovers
// while closing the orbit.
func newPStrategy(ctx context.Context, kind Kind, fpsg ConcreteSemigroup, extra []word.Relation) *pStrategy {
	n := fpsg.Size(ctx)
	s := &pStrategy{kind: kind, fpsg: fpsg, nrgens: fpsg.NrGenerators(), forest: uf.New(n)}
	for _, e := range extra {
		pu := fpsg.WordToPos(ctx, e.Left)
		pv := fpsg.WordToPos(ctx, e.Right)
		s.observe(pu, pv)
	}
	return s
}

func (s *pStrategy) observe(a, b int) {
	if a == fp.Undefined || b == fp.Undefined || a == b {
		return
	}
	n := a + 1
	if b+1 > n {
		n = b + 1
	}
	s.forest.Grow(n)
	if s.forest.Union(a, b) {
		s.queue = append(s.queue, [2]int{a, b})
	}
}

// run drains the pair queue: for each pair, multiply both sides by every
// generator on the side(s) kind names, observing the resulting pair.
// Terminates when no new pair is produced (spec §4.E "P").
func (s *pStrategy) run(ctx context.Context) {
	for len(s.queue) > 0 {
		if ctx.Err() != nil {
			return
		}
		pair := s.queue[0]
		s.queue = s.queue[1:]
		a, b := pair[0], pair[1]
		for g := 0; g < s.nrgens; g++ {
			letter := word.Letter(g)
			if s.kind != Left {
				s.observe(s.fpsg.Right(ctx, a, letter), s.fpsg.Right(ctx, b, letter))
			}
			if s.kind != Right {
				s.observe(s.fpsg.Left(ctx, a, letter), s.fpsg.Left(ctx, b, letter))
			}
		}
	}
	s.done = true
}

func (s *pStrategy) isDone() bool { return s.done }

func (s *pStrategy) ensureLookup() {
	if s.lookupSet {
		return
	}
	s.lookup, s.nrClasses = s.forest.Classes()
	s.lookupSet = true
}

func (s *pStrategy) classIndex(ctx context.Context, w word.Word) int {
	pos := s.fpsg.WordToPos(ctx, w)
	if pos == fp.Undefined {
		return tc.Undefined
	}
	s.forest.Grow(pos + 1)
	s.ensureLookup()
	if pos >= len(s.lookup) {
		return tc.Undefined
	}
	return s.lookup[pos]
}

// knowsEqual is definite as soon as two positions share a union-find root:
// further merges can only coarsen classes, never split them, so an
// already-observed merge is permanent. A non-merge is only definite once
// the orbit closure is done.
func (s *pStrategy) knowsEqual(u, v word.Word) (bool, bool) {
	ctx := context.Background()
	pu, pv := s.fpsg.WordToPos(ctx, u), s.fpsg.WordToPos(ctx, v)
	if pu == fp.Undefined || pv == fp.Undefined {
		return false, false
	}
	if pu < s.forest.Len() && pv < s.forest.Len() && s.forest.Find(pu) == s.forest.Find(pv) {
		return true, true
	}
	if s.done {
		return false, true
	}
	return false, false
}

func (s *pStrategy) nrClasses() (int, error) {
	s.ensureLookup()
	return s.nrClasses, nil
}

// nontrivialClasses reports classes directly from the union-find forest,
// translating each member position to a word via the underlying FP's
// factorisation (spec §4.E: "P and KBP report nontrivial classes
// directly").
func (s *pStrategy) nontrivialClasses(ctx context.Context) ([][]word.Word, error) {
	s.ensureLookup()
	groups := make(map[int][]word.Word)
	var order []int
	for i := 0; i < s.forest.Len(); i++ {
		c := s.lookup[i]
		if _, seen := groups[c]; !seen {
			order = append(order, c)
		}
		groups[c] = append(groups[c], s.fpsg.Factorisation(i))
	}
	var out [][]word.Word
	for _, c := range order {
		if len(groups[c]) >= 2 {
			out = append(out, groups[c])
		}
	}
	return out, nil
}
