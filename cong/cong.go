// Package cong implements the congruence dispatcher of spec §4.E: given
// either a concrete Froidure-Pin semigroup or a bare presentation, plus a
// set of extra generating pairs, it races several independent strategies
// (Todd-Coxeter, Todd-Coxeter prefilled from a Cayley graph, orbit-of-pairs,
// and two Knuth-Bendix-backed variants) and answers class-index, equality,
// and partition queries from whichever strategy finishes first.
//
// Grounded on libsemigroups' src/cong.{h,cc} and src/cong-pair.{h,cc} (see
// DESIGN.md).
package cong

import (
	"context"
	"sync"

	"github.com/BaoNinh2808/semigroups/errs"
	"github.com/BaoNinh2808/semigroups/fp"
	"github.com/BaoNinh2808/semigroups/internal/report"
	"github.com/BaoNinh2808/semigroups/kb"
	"github.com/BaoNinh2808/semigroups/tc"
	"github.com/BaoNinh2808/semigroups/version"
	"github.com/BaoNinh2808/semigroups/word"
	"golang.org/x/sync/errgroup"
)

// Kind parameterises the congruence's direction, same three values as
// tc.Kind (spec §4.E "Congruence kinds").
type Kind int

const (
	TwoSided Kind = iota
	Left
	Right
)

func (k Kind) tcKind() tc.Kind {
	switch k {
	case Left:
		return tc.Left
	case Right:
		return tc.Right
	default:
		return tc.TwoSided
	}
}

// ConcreteSemigroup is the slice of *fp.Semigroup[T]'s method set the
// dispatcher needs, expressed without T so a Dispatcher can hold a concrete
// semigroup of any element type behind one interface. Every instantiation
// of fp.Semigroup[T] satisfies this automatically, since none of these
// methods mention T in their signature.
type ConcreteSemigroup interface {
	Size(ctx context.Context) int
	NrGenerators() int
	RightCayleyGraph(ctx context.Context) [][]int
	LeftCayleyGraph(ctx context.Context) [][]int
	Right(ctx context.Context, i int, g word.Letter) int
	Left(ctx context.Context, i int, g word.Letter) int
	WordToPos(ctx context.Context, w word.Word) int
	Factorisation(i int) word.Word
	NextRelation(ctx context.Context, cur *fp.RelationCursor) (fp.Relation, bool)
}

// Config bundles every configuration knob named in spec §6 that applies to
// the dispatcher or one of the engines it drives.
type Config struct {
	MaxThreads int
	TC         tc.Config
	KB         kb.Config
	FP         fp.Config
	Reporter   report.Reporter
}

// DefaultConfig returns MaxThreads = 4 plus each sub-engine's own defaults.
func DefaultConfig() Config {
	return Config{
		MaxThreads: 4,
		TC:         tc.DefaultConfig(),
		KB:         kb.DefaultConfig(),
		FP:         fp.DefaultConfig(),
	}
}

type strategyName int

const (
	noForce strategyName = iota
	forceTC
	forceTCPrefill
	forceP
	forceKBFP
	forceKBP
)

// Dispatcher is the congruence engine of spec §4.E. The zero value is not
// usable; construct with NewFromPresentation or NewFromSemigroup.
type Dispatcher struct {
	cfg    Config
	kind   Kind
	nrgens int

	relations []word.Relation
	extra     []word.Relation

	concrete ConcreteSemigroup // nil on the presentation path

	mu              sync.Mutex
	winner          strategy
	partial         []strategy
	forced          strategyName
	externalPrefill [][]int

	ticker *report.Ticker
}

// NewFromPresentation builds a Dispatcher over a bare presentation: nrgens
// generators, defining relations, and the congruence's extra generating
// pairs (spec §4.E "presentation path").
func NewFromPresentation(kind Kind, nrgens int, relations, extra []word.Relation, cfg Config) (*Dispatcher, error) {
	if nrgens <= 0 {
		return nil, errs.InvalidArgument("cong: generator count must be positive")
	}
	d := newDispatcher(kind, nrgens, cfg)
	d.relations = append([]word.Relation(nil), relations...)
	d.extra = append([]word.Relation(nil), extra...)
	return d, nil
}

// NewFromSemigroup builds a Dispatcher over an already (partially)
// enumerated concrete semigroup plus the congruence's extra generating
// pairs (spec §4.E "concrete path").
func NewFromSemigroup(kind Kind, concrete ConcreteSemigroup, extra []word.Relation, cfg Config) (*Dispatcher, error) {
	if concrete == nil {
		return nil, errs.InvalidArgument("cong: concrete semigroup must not be nil")
	}
	d := newDispatcher(kind, concrete.NrGenerators(), cfg)
	d.concrete = concrete
	d.extra = append([]word.Relation(nil), extra...)
	return d, nil
}

func newDispatcher(kind Kind, nrgens int, cfg Config) *Dispatcher {
	if cfg.MaxThreads <= 0 {
		cfg.MaxThreads = DefaultConfig().MaxThreads
	}
	d := &Dispatcher{cfg: cfg, kind: kind, nrgens: nrgens}
	if cfg.Reporter.Enabled() {
		d.ticker = report.NewTicker(cfg.Reporter, "cong.run", 0)
	}
	return d
}

// SetPrefill supplies a pre-computed coset table for the TC-prefilled
// strategy (spec §6 set_prefill), overriding the table it would otherwise
// derive from a concrete semigroup's Cayley graph.
func (d *Dispatcher) SetPrefill(table [][]int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.externalPrefill = table
}

// ForceTC, ForceTCPrefill, ForceP, ForceKBFP, ForceKBP pin the dispatcher to
// a single strategy, discarding any winner or partial progress (spec §6
// force_tc / force_tc_prefill / force_p / force_kbp / force_kbfp).
func (d *Dispatcher) ForceTC() { d.force(forceTC) }
func (d *Dispatcher) ForceTCPrefill() { d.force(forceTCPrefill) }

// ForceP requires a concrete semigroup, since the orbit-of-pairs strategy
// has no presentation-path form.
func (d *Dispatcher) ForceP() error {
	if d.concrete == nil {
		return errs.InvalidState("cong: force_p requires a concrete semigroup")
	}
	d.force(forceP)
	return nil
}

// ForceKBFP requires a two-sided congruence (spec §4.E: KBFP is "two-sided
// only").
func (d *Dispatcher) ForceKBFP() error {
	if d.kind != TwoSided {
		return errs.InvalidState("cong: force_kbfp requires a two-sided congruence")
	}
	d.force(forceKBFP)
	return nil
}
func (d *Dispatcher) ForceKBP() { d.force(forceKBP) }

func (d *Dispatcher) force(name strategyName) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.forced = name
	d.winner = nil
	d.partial = nil
}

// WordToClassIndex delegates to the winning strategy (spec §4.E
// word_to_class_index), enumerating as far as necessary to produce one.
func (d *Dispatcher) WordToClassIndex(ctx context.Context, w word.Word) int {
	d.ensureSolved(ctx, nil)
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.winner == nil {
		return tc.Undefined
	}
	return d.winner.classIndex(ctx, w)
}

// Equal short-circuits on identical words, then races every strategy's
// "do you currently know u == v" goal predicate, accepting the first
// definite answer (spec §4.E equal).
func (d *Dispatcher) Equal(ctx context.Context, u, v word.Word) bool {
	if u.Equal(v) {
		return true
	}
	d.ensureSolved(ctx, func(st strategy) (bool, bool) { return st.knowsEqual(u, v) })
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.winner == nil {
		return false
	}
	if eq, known := d.winner.knowsEqual(u, v); known {
		return eq
	}
	cu, cv := d.winner.classIndex(ctx, u), d.winner.classIndex(ctx, v)
	return cu != tc.Undefined && cu == cv
}

// Less imposes the winning strategy's discovery order on class indices: u <
// v iff u's class was produced before v's during enumeration. Spec §4.E
// describes `less` only by analogy with `equal`; since class indices carry
// no intrinsic order beyond enumeration order, this dispatcher always
// forces a full solve rather than racing a goal predicate (recorded as an
// open-question decision in DESIGN.md).
func (d *Dispatcher) Less(ctx context.Context, u, v word.Word) bool {
	d.ensureSolved(ctx, nil)
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.winner == nil {
		return false
	}
	return d.winner.classIndex(ctx, u) < d.winner.classIndex(ctx, v)
}

// NrClasses forces completion and delegates (spec §4.E nr_classes).
func (d *Dispatcher) NrClasses(ctx context.Context) (int, error) {
	d.ensureSolved(ctx, nil)
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.winner == nil {
		return 0, errs.Cancelled("cong: no strategy completed before cancellation")
	}
	return d.winner.nrClasses()
}

// NontrivialClasses forces completion; P and KBP report their classes
// directly, other strategies require a concrete semigroup to iterate
// element positions and group them by class (spec §4.E nontrivial_classes).
func (d *Dispatcher) NontrivialClasses(ctx context.Context) ([][]word.Word, error) {
	d.ensureSolved(ctx, nil)
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.winner == nil {
		return nil, errs.Cancelled("cong: no strategy completed before cancellation")
	}
	if rep, ok := d.winner.(directNontrivialReporter); ok {
		return rep.nontrivialClasses(ctx)
	}
	if d.concrete == nil {
		return nil, errs.InvalidState("cong: nontrivial_classes requires a concrete semigroup or an orbit-based winning strategy")
	}
	n := d.concrete.Size(ctx)
	groups := make(map[int][]word.Word)
	var order []int
	for i := 0; i < n; i++ {
		w := d.concrete.Factorisation(i)
		c := d.winner.classIndex(ctx, w)
		if c == tc.Undefined {
			continue
		}
		if _, seen := groups[c]; !seen {
			order = append(order, c)
		}
		groups[c] = append(groups[c], w)
	}
	var out [][]word.Word
	for _, c := range order {
		if len(groups[c]) >= 2 {
			out = append(out, groups[c])
		}
	}
	return out, nil
}

// ensureSolved races the candidate strategy set, or resumes a previously
// retained partial set, until one reaches completion or the goal predicate
// (if non-nil) returns a definite answer for some strategy. goal may be
// called concurrently from multiple strategies' goroutines.
func (d *Dispatcher) ensureSolved(ctx context.Context, goal func(strategy) (bool, bool)) {
	d.mu.Lock()
	if d.winner != nil {
		d.mu.Unlock()
		return
	}
	strategies := d.partial
	if strategies == nil {
		strategies = d.buildStrategies(ctx)
	}
	d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var once sync.Once
	var winMu sync.Mutex
	var winner strategy

	g, gctx := errgroup.WithContext(runCtx)
	workers := len(strategies)
	if d.cfg.MaxThreads > 0 && d.cfg.MaxThreads < workers {
		workers = d.cfg.MaxThreads
	}
	sem := make(chan struct{}, workers)
	for _, st := range strategies {
		st := st
		g.Go(func() error {
			sem <- struct{}{}
			defer func() { <-sem }()
			st.run(gctx)
			ok := st.isDone()
			if !ok && goal != nil {
				if _, known := goal(st); known {
					ok = true
				}
			}
			if ok {
				winMu.Lock()
				if winner == nil {
					winner = st
				}
				winMu.Unlock()
				once.Do(cancel)
			}
			return nil
		})
	}
	_ = g.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	if winner != nil {
		d.winner = winner
		d.partial = nil
	} else {
		d.partial = strategies
	}
	if d.ticker != nil {
		d.ticker.Tick(map[string]any{"strategies": len(strategies), "solved": winner != nil, "version": version.String()})
	}
}

// obviouslyInfinite implements spec §4.E's predicate: more generators than
// relations plus extras, or some generator absent from every relation and
// extra pair.
func obviouslyInfinite(nrgens int, relations, extra []word.Relation) bool {
	if nrgens > len(relations)+len(extra) {
		return true
	}
	seen := make([]bool, nrgens)
	for _, set := range [][]word.Relation{relations, extra} {
		for _, r := range set {
			for _, l := range r.Left {
				if int(l) < nrgens {
					seen[l] = true
				}
			}
			for _, l := range r.Right {
				if int(l) < nrgens {
					seen[l] = true
				}
			}
		}
	}
	for _, ok := range seen {
		if !ok {
			return true
		}
	}
	return false
}

// relationsFromConcrete lazily materialises a concrete semigroup's defining
// relations by streaming NextRelation to completion (spec §4.E "Relations
// of a concrete semigroup").
func relationsFromConcrete(ctx context.Context, c ConcreteSemigroup) []word.Relation {
	cur := fp.NewRelationCursor()
	var out []word.Relation
	for {
		r, ok := c.NextRelation(ctx, cur)
		if !ok {
			return out
		}
		out = append(out, word.Relation{Left: r.Left, Right: r.Right})
	}
}
