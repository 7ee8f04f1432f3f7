package tc

import (
	"context"

	"github.com/BaoNinh2808/semigroups/errs"
	"github.com/BaoNinh2808/semigroups/word"
)

// init lazily builds the coset table the first time Run is called: a
// single identity coset, with extra relations for LEFT/RIGHT congruences
// traced once against the identity coset only (spec §4.D).
func (t *TC) init() {
	if t.initDone {
		return
	}
	if t.tbl == nil {
		t.tbl = newTable(t.nrgens)
	}
	if t.kind != TwoSided {
		for _, e := range t.extra {
			t.trace(idCoset, e, true)
		}
	}
	t.initDone = true
}

// Prefill seeds the coset table from an existing right (or, for a LEFT
// congruence, left) Cayley graph: graph[i][g] gives the index of i*g (or
// g*i) among 0..n-1, which Prefill shifts by 1 so coset 0 can be the
// identity (spec §4.D "Prefill").
func (t *TC) Prefill(graph [][]int) error {
	if t.initDone {
		return errs.InvalidState("tc: cannot prefill after enumeration began")
	}
	n := len(graph)
	tbl := newTable(t.nrgens)
	for i := 0; i < n; i++ {
		tbl.newRow()
		tbl.forwd = append(tbl.forwd, Undefined)
		tbl.bckwd = append(tbl.bckwd, tbl.last)
		tbl.forwd[tbl.last] = i + 1
		tbl.last = i + 1
	}
	tbl.active += n
	tbl.defined += n
	for i := 0; i < n; i++ {
		for g := 0; g < t.nrgens; g++ {
			img := graph[i][g]
			if img == Undefined {
				continue
			}
			c := i + 1
			d := img + 1
			tbl.table[c][g] = d
			tbl.preimNext[c][g] = tbl.preimInit[d][g]
			tbl.preimInit[d][g] = c
		}
	}
	t.tbl = tbl
	t.prefilled = true
	return nil
}

// Run fully enumerates, subject to ctx cancellation.
func (t *TC) Run(ctx context.Context) {
	t.RunSteps(ctx, -1)
}

// RunSteps enumerates for at most steps main-loop iterations (steps < 0
// means unbounded), implementing spec §4.D's main loop: walk the active
// list from `current`, applying every relation; enter a packing phase once
// the active coset count exceeds cfg.Pack. When enumeration completes the
// table is compressed, so class indices lie in [0, NrClasses).
func (t *TC) RunSteps(ctx context.Context, steps int) {
	t.init()
	if t.tcDone {
		return
	}
	for i := 0; steps < 0 || i < steps; i++ {
		if ctx.Err() != nil {
			return
		}
		// current may have been merged away by a coincidence triggered on a
		// previous iteration; resolve it to its surviving representative
		// before tracing from it.
		t.current = t.find(t.current)
		for _, rel := range t.relations {
			t.trace(t.current, rel, true)
		}
		next := t.tbl.forwd[t.current]
		if next != Undefined {
			next = t.find(next)
		}
		if next == Undefined {
			t.tcDone = true
			_ = t.Compress()
			if t.ticker != nil {
				t.ticker.Tick(map[string]any{"active": t.tbl.active, "defined": t.tbl.defined})
			}
			return
		}
		t.current = next

		if t.tbl.active > t.cfg.Pack {
			t.pack(ctx, t.current)
		}
		if t.ticker != nil {
			t.ticker.Tick(map[string]any{"active": t.tbl.active, "defined": t.tbl.defined})
		}
	}
}

// pack scans forward from current through the active list applying
// relations with allowNew = false, collapsing cosets without creating new
// ones (spec §4.D packing phase). It exits once the kill rate per unit of
// work drops, then raises cfg.Pack by 10% to avoid thrashing.
func (t *TC) pack(ctx context.Context, current int) {
	killedBefore := t.cosetsKilled
	scanned := 0
	c := t.find(current)
	for c != Undefined {
		if ctx.Err() != nil {
			return
		}
		for _, rel := range t.relations {
			t.trace(c, rel, false)
		}
		scanned++
		if scanned%64 == 0 {
			killedThisBatch := t.cosetsKilled - killedBefore
			if killedThisBatch*4 < scanned { // fewer than 1 in 4 killed: diminishing returns
				break
			}
		}
		c = t.tbl.forwd[c]
		if c != Undefined {
			c = t.find(c)
		}
	}
	t.cfg.Pack += t.cfg.Pack / 10
}

// WordToClassIndex traces w through table from the identity coset (for a
// LEFT congruence w is read right-to-left, already realised by loadRelations
// reversing the stored words so callers pass w in natural order and we
// reverse it here). Returns the class index (coset-1) or Undefined if w's
// trace runs off the table before enumeration completes.
func (t *TC) WordToClassIndex(ctx context.Context, w word.Word) int {
	t.init()
	if t.kind == Left {
		w = w.Reversed()
	}
	c := idCoset
	for _, g := range w {
		c = t.find(c)
		next := t.tbl.table[c][g]
		if next == Undefined {
			if t.tcDone {
				return Undefined
			}
			t.Run(ctx)
			next = t.tbl.table[t.find(c)][g]
			if next == Undefined {
				return Undefined
			}
		}
		c = t.find(next)
	}
	return c - 1
}

// Compress renumbers active cosets contiguously in [0, nrClasses) by a
// single forward walk of the active list, rewriting table in place. Valid
// only once IsDone.
func (t *TC) Compress() error {
	if !t.tcDone {
		return errs.InvalidState("tc: compress requires a completed enumeration")
	}
	old2new := make(map[int]int, t.tbl.active)
	order := make([]int, 0, t.tbl.active)
	for c := idCoset; c != Undefined; c = t.tbl.forwd[c] {
		old2new[c] = len(order)
		order = append(order, c)
	}

	newTbl := newTable(t.nrgens)
	newTbl.active = len(order)
	newTbl.defined = len(order)
	for i := 1; i < len(order); i++ {
		newTbl.newRow()
		newTbl.forwd = append(newTbl.forwd, Undefined)
		newTbl.bckwd = append(newTbl.bckwd, i-1)
		newTbl.forwd[i-1] = i
	}
	newTbl.last = len(order) - 1

	for newC, oldC := range order {
		for g := 0; g < t.nrgens; g++ {
			oldImg := t.tbl.table[oldC][g]
			if oldImg == Undefined {
				continue
			}
			newImg, ok := old2new[t.find(oldImg)]
			if !ok {
				continue
			}
			newTbl.table[newC][g] = newImg
			newTbl.preimNext[newC][g] = newTbl.preimInit[newImg][g]
			newTbl.preimInit[newImg][g] = newC
		}
	}
	t.tbl = newTbl
	return nil
}
