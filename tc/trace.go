package tc

import "github.com/BaoNinh2808/semigroups/word"

// newCoset allocates a new active coset, appending it to the end of the
// active doubly-linked list. Deactivated cosets are left in place with a
// forwarding address (see identifyCosets) rather than recycled onto a free
// list: compress renumbers everything contiguously once enumeration
// finishes, so recycling ids mid-run would only save memory, not change
// the result.
func (t *TC) newCoset() int {
	c := len(t.tbl.table)
	t.tbl.newRow()
	t.tbl.forwd = append(t.tbl.forwd, Undefined)
	t.tbl.bckwd = append(t.tbl.bckwd, t.tbl.last)
	t.tbl.forwd[t.tbl.last] = c
	t.tbl.last = c
	t.tbl.active++
	t.tbl.defined++
	return c
}

// setImage sets table[c][g] = d and wires d's preimage list to include c,
// the "intrusive linked list" of spec §3 realised as parallel index arrays
// (spec §9 "Intrusive linked lists for preimages").
func (t *TC) setImage(c, g, d int) {
	t.tbl.table[c][g] = d
	t.tbl.preimNext[c][g] = t.tbl.preimInit[d][g]
	t.tbl.preimInit[d][g] = c
}

// trace walks rel.Left and rel.Right from c, creating new cosets at each
// undefined step when allowNew is true, then resolves the final pair of
// images per spec §4.D's four-case table.
func (t *TC) trace(c int, rel word.Relation, allowNew bool) {
	lhs := t.walk(c, rel.Left, allowNew)
	rhs := t.walk(c, rel.Right, allowNew)
	if lhs.last == Undefined || rhs.last == Undefined {
		return // one side ran off the edge of the table in packing mode
	}

	u, a := lhs.beforeLast, rel.Left[len(rel.Left)-1]
	v, b := rhs.beforeLast, rel.Right[len(rel.Right)-1]
	ui := t.tbl.table[u][a]
	vi := t.tbl.table[v][b]

	switch {
	case ui == Undefined && vi == Undefined:
		if !allowNew {
			return
		}
		d := t.newCoset()
		t.setImage(u, a, d)
		if a != b || u != v {
			t.setImage(v, b, d)
		}
	case ui == Undefined:
		t.setImage(u, a, vi)
	case vi == Undefined:
		t.setImage(v, b, ui)
	case ui != vi:
		lo, hi := ui, vi
		if lo > hi {
			lo, hi = hi, lo
		}
		t.lhsStack = append(t.lhsStack, lo)
		t.rhsStack = append(t.rhsStack, hi)
		t.identifyCosets()
	}
}

type walkResult struct {
	last       int // final coset reached (word's full length), or Undefined
	beforeLast int // coset reached after all but the last letter
}

// walk traces w from c through table, letter by letter, creating a new
// coset at each undefined step when allowNew holds. It returns Undefined
// for last if the walk could not be completed (packing phase, no new
// coset allowed).
func (t *TC) walk(c int, w word.Word, allowNew bool) walkResult {
	cur := c
	before := c
	for _, g := range w {
		before = cur
		nxt := t.tbl.table[cur][g]
		if nxt == Undefined {
			if !allowNew {
				return walkResult{Undefined, Undefined}
			}
			nxt = t.newCoset()
			t.setImage(cur, int(g), nxt)
		}
		cur = nxt
	}
	return walkResult{last: cur, beforeLast: before}
}

// identifyCosets drains the coincidence stack: repeatedly pop (lhs, rhs),
// follow forwarding chains, and if they remain distinct, deactivate the
// larger, leave a forwarding address, and merge its preimage lists into
// the survivor's, pushing any new coincidence this merge exposes. The
// stack lives on *TC so cancellation never corrupts state mid-merge (spec
// §4.D "this routine is resumable").
func (t *TC) identifyCosets() {
	for len(t.lhsStack) > 0 {
		lhs := t.lhsStack[len(t.lhsStack)-1]
		rhs := t.rhsStack[len(t.rhsStack)-1]
		t.lhsStack = t.lhsStack[:len(t.lhsStack)-1]
		t.rhsStack = t.rhsStack[:len(t.rhsStack)-1]

		lhs = t.find(lhs)
		rhs = t.find(rhs)
		if lhs == rhs {
			continue
		}
		if lhs > rhs {
			lhs, rhs = rhs, lhs
		}
		// Deactivate rhs, forward it to lhs.
		t.tbl.forwd[t.tbl.bckwd[rhs]] = t.tbl.forwd[rhs]
		if t.tbl.forwd[rhs] != Undefined {
			t.tbl.bckwd[t.tbl.forwd[rhs]] = t.tbl.bckwd[rhs]
		}
		if rhs == t.tbl.last {
			t.tbl.last = t.tbl.bckwd[rhs]
		}
		t.tbl.bckwd[rhs] = -(lhs + 1)
		t.tbl.active--
		t.cosetsKilled++

		for g := 0; g < t.nrgens; g++ {
			// Replace rhs with lhs throughout rhs's preimage list under g.
			p := t.tbl.preimInit[rhs][g]
			for p != Undefined {
				next := t.tbl.preimNext[p][g]
				t.tbl.table[p][g] = lhs
				t.tbl.preimNext[p][g] = t.tbl.preimInit[lhs][g]
				t.tbl.preimInit[lhs][g] = p
				p = next
			}
			// Compare images of rhs and lhs under g.
			rhsImg := t.tbl.table[rhs][g]
			lhsImg := t.tbl.table[lhs][g]
			if rhsImg == Undefined {
				continue
			}
			if lhsImg == Undefined {
				t.setImage(lhs, g, rhsImg)
				continue
			}
			if rhsImg != lhsImg {
				a, b := rhsImg, lhsImg
				if a > b {
					a, b = b, a
				}
				t.lhsStack = append(t.lhsStack, a)
				t.rhsStack = append(t.rhsStack, b)
			}
		}
	}
}

// find follows a coset's forwarding chain (negative bckwd entries) to the
// active coset it now represents.
func (t *TC) find(c int) int {
	for t.tbl.bckwd[c] < 0 && t.isForwarded(c) {
		c = -t.tbl.bckwd[c] - 1
	}
	return c
}

// isForwarded reports whether c has been deactivated (its bckwd entry is a
// forwarding address rather than an active backward link). Active cosets
// always have bckwd >= 0 except coset 0 itself, which we special-case.
func (t *TC) isForwarded(c int) bool {
	return c != idCoset && t.tbl.bckwd[c] < 0
}
