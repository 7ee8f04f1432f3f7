package cong

import (
	"context"

	"github.com/BaoNinh2808/semigroups/element"
	"github.com/BaoNinh2808/semigroups/errs"
	"github.com/BaoNinh2808/semigroups/fp"
	"github.com/BaoNinh2808/semigroups/kb"
	"github.com/BaoNinh2808/semigroups/tc"
	"github.com/BaoNinh2808/semigroups/word"
)

// strategy is the common shape every congruence strategy presents to the
// dispatcher (spec §4.E: "each strategy owns a private data structure... and
// produces the same abstract answer").
type strategy interface {
	run(ctx context.Context)
	isDone() bool
	classIndex(ctx context.Context, w word.Word) int
	knowsEqual(u, v word.Word) (equal, known bool)
	nrClasses() (int, error)
}

// directNontrivialReporter is implemented by strategies that track classes
// directly (P, KBP) rather than needing a concrete element sweep (spec
// §4.E: "P and KBP report nontrivial classes directly").
type directNontrivialReporter interface {
	nontrivialClasses(ctx context.Context) ([][]word.Word, error)
}

// deadStrategy stands in for a candidate that failed to construct (e.g. an
// invalid relation set); it never completes, so it only ever loses the race.
type deadStrategy struct{ err error }

func (deadStrategy) run(context.Context)   {}
func (deadStrategy) isDone() bool          { return false }
func (deadStrategy) classIndex(context.Context, word.Word) int { return tc.Undefined }
func (deadStrategy) knowsEqual(word.Word, word.Word) (bool, bool) { return false, false }
func (d deadStrategy) nrClasses() (int, error) { return 0, d.err }

// buildStrategies assembles the candidate set for one ensureSolved race,
// per spec §4.E's dispatcher policy.
func (d *Dispatcher) buildStrategies(ctx context.Context) []strategy {
	if d.forced != noForce {
		return []strategy{d.buildForced(ctx)}
	}
	if d.concrete != nil {
		if d.concrete.Size(ctx) < 1024 {
			return []strategy{d.newTCPrefilled(ctx)}
		}
		out := []strategy{d.newTC(ctx), d.newTCPrefilled(ctx), d.newP(ctx)}
		if d.kind == TwoSided {
			out = append(out, d.newKBFP(ctx))
		}
		return out
	}
	var out []strategy
	out = append(out, d.newKBP(ctx))
	if d.kind == TwoSided {
		out = append(out, d.newKBFP(ctx))
	}
	if !obviouslyInfinite(d.nrgens, d.relations, d.extra) {
		out = append(out, d.newTC(ctx))
	}
	return out
}

func (d *Dispatcher) buildForced(ctx context.Context) strategy {
	switch d.forced {
	case forceTC:
		return d.newTC(ctx)
	case forceTCPrefill:
		return d.newTCPrefilled(ctx)
	case forceP:
		return d.newP(ctx)
	case forceKBFP:
		return d.newKBFP(ctx)
	case forceKBP:
		return d.newKBP(ctx)
	default:
		return deadStrategy{err: errs.InvalidState("cong: no strategy forced")}
	}
}

func (d *Dispatcher) presentationRelations(ctx context.Context) []word.Relation {
	if d.concrete != nil {
		return relationsFromConcrete(ctx, d.concrete)
	}
	return d.relations
}

// newTC builds a plain Todd-Coxeter strategy over the presentation (direct,
// or lazily materialised from a concrete semigroup).
func (d *Dispatcher) newTC(ctx context.Context) strategy {
	rel := d.presentationRelations(ctx)
	t, err := tc.New(d.kind.tcKind(), d.nrgens, rel, d.extra, d.cfg.TC)
	if err != nil {
		return deadStrategy{err: err}
	}
	return &tcStrategy{t: t}
}

// newTCPrefilled builds a Todd-Coxeter strategy seeded with a Cayley graph:
// the caller's SetPrefill table if supplied, else the concrete semigroup's
// own right (or left, for a LEFT congruence) Cayley graph.
func (d *Dispatcher) newTCPrefilled(ctx context.Context) strategy {
	rel := d.presentationRelations(ctx)
	t, err := tc.New(d.kind.tcKind(), d.nrgens, rel, d.extra, d.cfg.TC)
	if err != nil {
		return deadStrategy{err: err}
	}
	switch {
	case d.externalPrefill != nil:
		_ = t.Prefill(d.externalPrefill)
	case d.concrete != nil:
		var graph [][]int
		if d.kind == Left {
			graph = d.concrete.LeftCayleyGraph(ctx)
		} else {
			graph = d.concrete.RightCayleyGraph(ctx)
		}
		_ = t.Prefill(graph)
	}
	return &tcStrategy{t: t}
}

// newP builds the orbit-of-pairs strategy over the dispatcher's concrete
// semigroup; only valid on the concrete path.
func (d *Dispatcher) newP(ctx context.Context) strategy {
	if d.concrete == nil {
		return deadStrategy{err: errs.InvalidState("cong: P strategy requires a concrete semigroup")}
	}
	return newPStrategy(ctx, d.kind, d.concrete, d.extra)
}

// newKBFP builds a confluent rewriting system over relations ∪ extra (the
// full set of defining pairs for the quotient), then an FP over its
// rewriting-system elements — a two-sided-only strategy (spec §4.E KBFP).
func (d *Dispatcher) newKBFP(ctx context.Context) strategy {
	rel := d.presentationRelations(ctx)
	sys := kb.New(kb.ShortLex{}, d.cfg.KB)
	for _, r := range rel {
		sys.AddRule(r.Left, r.Right)
	}
	for _, r := range d.extra {
		sys.AddRule(r.Left, r.Right)
	}
	gens := make([]element.RWSElement, d.nrgens)
	for g := 0; g < d.nrgens; g++ {
		gens[g] = element.NewRWSElement(sys, d.nrgens, word.Word{word.Letter(g)})
	}
	sg, err := fp.New(gens, d.cfg.FP)
	if err != nil {
		return deadStrategy{err: err}
	}
	return &kbfpStrategy{sys: sys, sg: sg}
}

// newKBP builds a confluent rewriting system from relations alone, an FP
// over its rewriting-system elements, then runs P with extra on that FP
// (spec §4.E KBP).
func (d *Dispatcher) newKBP(ctx context.Context) strategy {
	rel := d.relations
	if d.concrete != nil {
		// The concrete path never reaches here today (buildStrategies only
		// offers KBP on the presentation path), but materialising lazily
		// keeps this constructor correct if that changes.
		rel = relationsFromConcrete(ctx, d.concrete)
	}
	sys := kb.New(kb.ShortLex{}, d.cfg.KB)
	for _, r := range rel {
		sys.AddRule(r.Left, r.Right)
	}
	gens := make([]element.RWSElement, d.nrgens)
	for g := 0; g < d.nrgens; g++ {
		gens[g] = element.NewRWSElement(sys, d.nrgens, word.Word{word.Letter(g)})
	}
	sg, err := fp.New(gens, d.cfg.FP)
	if err != nil {
		return deadStrategy{err: err}
	}
	return &kbpStrategy{sys: sys, sg: sg, extra: d.extra, kind: d.kind}
}
