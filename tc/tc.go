// Package tc implements Todd-Coxeter coset enumeration (spec §4.D):
// building, compressing, and closing a partial action of generators on
// cosets of a congruence on a finitely presented semigroup, with a
// packing/lookahead phase that collapses cosets without creating new ones.
//
// Grounded on libsemigroups' src/cong/tc.{h,cc} (see DESIGN.md).
package tc

import (
	"context"

	"github.com/BaoNinh2808/semigroups/errs"
	"github.com/BaoNinh2808/semigroups/internal/report"
	"github.com/BaoNinh2808/semigroups/word"
)

// Undefined is the "no such coset" sentinel, never compared arithmetically
// (spec §9 open question).
const Undefined = -1

// idCoset is the identity coset, always 0.
const idCoset = 0

// Config bundles the TC-level knobs of spec §6: set_pack plus the shared
// reporter.
type Config struct {
	Pack     int
	Reporter report.Reporter
}

// DefaultConfig returns Pack = 2000, matching a conservative default
// lookahead threshold for small-to-medium presentations.
func DefaultConfig() Config { return Config{Pack: 2000} }

// Table is the coset table described in spec §3 "Coset table (TC
// internal)": forward images, intrusive (index-array) preimage lists, and
// the doubly-linked active coset list. Killed cosets keep a forwarding
// address in bckwd and are not put on a free list.
type Table struct {
	nrgens int

	table     [][]int // table[c][g]
	preimInit [][]int // preimInit[c][g] -> head of preimage list
	preimNext [][]int // preimNext[c][g] -> next preimage, or Undefined

	forwd []int // forward active-list links
	bckwd []int // backward active-list links; negative => forwarding address

	active  int
	defined int
	last    int
}

func newTable(nrgens int) *Table {
	t := &Table{
		nrgens:  nrgens,
		forwd:   []int{Undefined},
		bckwd:   []int{Undefined},
		active:  1,
		defined: 1,
		last:    idCoset,
	}
	t.newRow() // coset 0, the identity coset
	return t
}

func (t *Table) newRow() {
	row := make([]int, t.nrgens)
	pi := make([]int, t.nrgens)
	pn := make([]int, t.nrgens)
	for g := 0; g < t.nrgens; g++ {
		row[g], pi[g], pn[g] = Undefined, Undefined, Undefined
	}
	t.table = append(t.table, row)
	t.preimInit = append(t.preimInit, pi)
	t.preimNext = append(t.preimNext, pn)
}

// Kind parameterises the direction of the congruence (spec §4.E), which
// governs how relations and extra pairs are loaded (spec §4.D
// "Initialisation from a presentation").
type Kind int

const (
	TwoSided Kind = iota
	Left
	Right
)

// TC is the Todd-Coxeter engine over a presentation plus extra generating
// pairs.
type TC struct {
	cfg Config

	kind      Kind
	nrgens    int
	relations []word.Relation
	extra     []word.Relation

	tbl *Table

	lhsStack, rhsStack []int // resumable coincidence stacks

	current      int // main-loop cursor into the active list, resumed across RunSteps calls
	cosetsKilled int

	initDone  bool
	prefilled bool
	tcDone    bool

	ticker *report.Ticker
}

// New builds a TC engine for a presentation of nrgens generators with
// defining relations and extra generating pairs, for the given congruence
// kind. Words are reversed/applied per spec §4.D's "Initialisation from a
// presentation" table.
func New(kind Kind, nrgens int, relations, extra []word.Relation, cfg Config) (*TC, error) {
	if nrgens <= 0 {
		return nil, errs.InvalidArgument("tc: generator count must be positive")
	}
	if cfg.Pack <= 0 {
		cfg.Pack = DefaultConfig().Pack
	}
	for _, set := range [][]word.Relation{relations, extra} {
		for _, r := range set {
			if len(r.Left) == 0 || len(r.Right) == 0 {
				return nil, errs.InvalidArgument("tc: relation words must be non-empty (the empty word is not traceable by this table-driven engine)")
			}
			if !r.Left.InRange(nrgens) || !r.Right.InRange(nrgens) {
				return nil, errs.InvalidArgument("tc: relation contains a letter outside the generator range")
			}
		}
	}
	t := &TC{cfg: cfg, kind: kind, nrgens: nrgens}
	t.relations, t.extra = loadRelations(kind, relations, extra)
	if cfg.Reporter.Enabled() {
		t.ticker = report.NewTicker(cfg.Reporter, "tc.run", 0)
	}
	return t, nil
}

// loadRelations applies spec §4.D's per-kind relation/extra split: for a
// left congruence every word is reversed (the engine always scans
// left-to-right for a right action) and extra is kept separate, applied
// only to the identity coset; for a right congruence extra is applied only
// to the identity, relations to every coset; for two-sided, extra is
// folded into relations and applied to every coset.
func loadRelations(kind Kind, relations, extra []word.Relation) (rel, ext []word.Relation) {
	switch kind {
	case Left:
		rel = reverseAll(relations)
		ext = reverseAll(extra)
		return rel, ext
	case Right:
		return append([]word.Relation(nil), relations...), append([]word.Relation(nil), extra...)
	default: // TwoSided
		rel = append(append([]word.Relation(nil), relations...), extra...)
		return rel, nil
	}
}

func reverseAll(rs []word.Relation) []word.Relation {
	out := make([]word.Relation, len(rs))
	for i, r := range rs {
		out[i] = word.Relation{Left: r.Left.Reversed(), Right: r.Right.Reversed()}
	}
	return out
}

// SetPack sets the active-coset threshold for the packing/lookahead phase.
func (t *TC) SetPack(n int) { t.cfg.Pack = n }

// IsDone reports whether enumeration has completed (current has wrapped
// around the active list without encountering an undefined image).
func (t *TC) IsDone() bool { return t.tcDone }

// NrClasses returns the number of congruence classes, valid once IsDone.
func (t *TC) NrClasses() (int, error) {
	if !t.tcDone {
		return 0, errs.InvalidState("tc: nr_classes requires a completed enumeration")
	}
	return t.tbl.active - 1, nil
}
