package cong

import (
	"context"

	"github.com/BaoNinh2808/semigroups/tc"
	"github.com/BaoNinh2808/semigroups/word"
)

// tcStrategy wraps a *tc.TC (plain or prefilled) as a strategy.
type tcStrategy struct {
	t *tc.TC
}

func (s *tcStrategy) run(ctx context.Context) { s.t.Run(ctx) }
func (s *tcStrategy) isDone() bool            { return s.t.IsDone() }

func (s *tcStrategy) classIndex(ctx context.Context, w word.Word) int {
	return s.t.WordToClassIndex(ctx, w)
}

// knowsEqual only gives a definite answer once enumeration has completed:
// mid-enumeration coset identities can still merge further, so an
// "inequality so far" observation is not yet reliable.
func (s *tcStrategy) knowsEqual(u, v word.Word) (bool, bool) {
	if !s.t.IsDone() {
		return false, false
	}
	ctx := context.Background()
	cu, cv := s.t.WordToClassIndex(ctx, u), s.t.WordToClassIndex(ctx, v)
	if cu == tc.Undefined || cv == tc.Undefined {
		return false, false
	}
	return cu == cv, true
}

func (s *tcStrategy) nrClasses() (int, error) { return s.t.NrClasses() }
