package cong

import (
	"context"

	"github.com/BaoNinh2808/semigroups/element"
	"github.com/BaoNinh2808/semigroups/fp"
	"github.com/BaoNinh2808/semigroups/kb"
	"github.com/BaoNinh2808/semigroups/tc"
	"github.com/BaoNinh2808/semigroups/word"
)

// kbfpStrategy completes a rewriting system over relations ∪ extra, then
// runs FP over its normal-form elements: distinct normal forms are distinct
// congruence classes by construction, so the FP's own positions are class
// indices (spec §4.E KBFP).
type kbfpStrategy struct {
	sys  *kb.System
	sg   *fp.Semigroup[element.RWSElement]
	done bool
}

func (s *kbfpStrategy) run(ctx context.Context) {
	s.sys.KnuthBendix(ctx)
	if ctx.Err() != nil || !s.sys.Confluent(ctx) {
		return
	}
	s.sg.Size(ctx)
	if ctx.Err() != nil {
		return
	}
	s.done = true
}

func (s *kbfpStrategy) isDone() bool { return s.done }

func (s *kbfpStrategy) classIndex(ctx context.Context, w word.Word) int {
	elem := element.NewRWSElement(s.sys, s.sg.Degree(), w)
	return s.sg.Position(ctx, elem)
}

func (s *kbfpStrategy) knowsEqual(u, v word.Word) (bool, bool) {
	if !s.done {
		return false, false
	}
	ctx := context.Background()
	return s.classIndex(ctx, u) == s.classIndex(ctx, v), true
}

func (s *kbfpStrategy) nrClasses() (int, error) {
	if !s.done {
		return 0, errNotDone
	}
	return s.sg.CurrentSize(), nil
}

// kbpStrategy completes a rewriting system over relations alone, builds an
// FP over its normal-form elements, then delegates class structure to a
// pStrategy running P with extra over that quotient FP (spec §4.E KBP).
type kbpStrategy struct {
	sys   *kb.System
	sg    *fp.Semigroup[element.RWSElement]
	extra []word.Relation
	kind  Kind

	p *pStrategy
}

func (s *kbpStrategy) run(ctx context.Context) {
	s.sys.KnuthBendix(ctx)
	if ctx.Err() != nil || !s.sys.Confluent(ctx) {
		return
	}
	s.sg.Size(ctx)
	if ctx.Err() != nil {
		return
	}
	if s.p == nil {
		s.p = newPStrategy(ctx, s.kind, s.sg, s.extra)
	}
	s.p.run(ctx)
}

func (s *kbpStrategy) isDone() bool { return s.p != nil && s.p.isDone() }

func (s *kbpStrategy) classIndex(ctx context.Context, w word.Word) int {
	if s.p == nil {
		return tc.Undefined
	}
	elem := element.NewRWSElement(s.sys, s.sg.Degree(), w)
	pos := s.sg.Position(ctx, elem)
	if pos == fp.Undefined {
		return tc.Undefined
	}
	return s.p.classIndex(ctx, s.sg.Factorisation(pos))
}

func (s *kbpStrategy) knowsEqual(u, v word.Word) (bool, bool) {
	if s.p == nil {
		return false, false
	}
	ctx := context.Background()
	eu := element.NewRWSElement(s.sys, s.sg.Degree(), u)
	ev := element.NewRWSElement(s.sys, s.sg.Degree(), v)
	pu, pv := s.sg.Position(ctx, eu), s.sg.Position(ctx, ev)
	if pu == fp.Undefined || pv == fp.Undefined {
		return false, false
	}
	return s.p.knowsEqual(s.sg.Factorisation(pu), s.sg.Factorisation(pv))
}

func (s *kbpStrategy) nrClasses() (int, error) {
	if s.p == nil {
		return 0, errNotDone
	}
	return s.p.nrClasses()
}

func (s *kbpStrategy) nontrivialClasses(ctx context.Context) ([][]word.Word, error) {
	if s.p == nil {
		return nil, errNotDone
	}
	return s.p.nontrivialClasses(ctx)
}

var errNotDone = kbStrategyNotDoneErr{}

type kbStrategyNotDoneErr struct{}

func (kbStrategyNotDoneErr) Error() string { return "cong: strategy has not completed" }
