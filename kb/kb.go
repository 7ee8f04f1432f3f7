// Package kb implements Knuth-Bendix completion of a string rewriting
// system into a confluent one (spec §4.B), grounded on libsemigroups'
// src/rws.{h,cc} (see DESIGN.md). It exposes rule addition, in-place word
// rewriting to normal form, completion, confluence testing, and the
// equality/order decisions that follow from a confluent system.
package kb

import (
	"container/list"
	"context"

	"github.com/BaoNinh2808/semigroups/internal/report"
	"github.com/BaoNinh2808/semigroups/word"
)

// Unbounded is the sentinel for "no limit" configuration values (spec §6,
// set_max_overlap's UNBOUNDED sentinel).
const Unbounded = -1

// OverlapMeasure selects how knuth_bendix orders the overlaps it expands,
// per spec §4.B's "by overlap length" variant.
type OverlapMeasure int

const (
	// OverlapAB orders overlaps by the length of the overlapping word AB.
	OverlapAB OverlapMeasure = iota
	// OverlapMaxABBC orders by max(|AB|, |BC|).
	OverlapMaxABBC
	// OverlapABBC orders by |A|+|B|+|C|.
	OverlapABBC
)

// Rule is an oriented pair (Lhs, Rhs) with Lhs > Rhs in the system's
// reduction order.
type Rule struct {
	Lhs, Rhs word.Word
}

// Config bundles the completion knobs from spec §6: set_max_rules,
// set_max_overlap, set_check_confluence_interval, set_overlap_measure,
// set_report / set_report_interval.
type Config struct {
	MaxRules                int
	MaxOverlap               int
	CheckConfluenceInterval int
	OverlapMeasure          OverlapMeasure
	Reporter                report.Reporter
	ReportInterval          int
}

// DefaultConfig returns the knobs' default values: no rule cap, no overlap
// cap, confluence checked every 4096 overlaps, shortlex-AB overlap order.
func DefaultConfig() Config {
	return Config{
		MaxRules:                Unbounded,
		MaxOverlap:               Unbounded,
		CheckConfluenceInterval: 4096,
		OverlapMeasure:          OverlapAB,
	}
}

// System is a dynamic set of active rewriting rules plus the bookkeeping
// completion needs: a pending-rule stack (drained before overlaps resume)
// and a cached confluence verdict invalidated whenever a rule is added.
//
// Active rules live in a container/list.List so that completion's
// interleaved traversal, insertion, and deletion never invalidate an
// in-flight iterator — exactly the "stable iterators" requirement of
// spec §4.B (see DESIGN.md for why this is std-library rather than a
// third-party container).
type System struct {
	order ReductionOrder
	cfg   Config

	active *list.List // of *Rule
	stack  []*Rule    // pending rules, drained FIFO

	confluenceKnown bool
	isConfluent     bool

	ticker *report.Ticker
}

// New returns an empty rewriting system under order (ShortLex{} if nil).
func New(order ReductionOrder, cfg Config) *System {
	if order == nil {
		order = ShortLex{}
	}
	s := &System{order: order, cfg: cfg, active: list.New()}
	if cfg.Reporter.Enabled() {
		s.ticker = report.NewTicker(cfg.Reporter, "kb.knuth_bendix", 0)
	}
	return s
}

// NrActiveRules returns the number of active rules.
func (s *System) NrActiveRules() int { return s.active.Len() }

// Rules enumerates the active rules in insertion order. The returned slice
// is a snapshot; mutating it does not affect the system.
func (s *System) Rules() []Rule {
	out := make([]Rule, 0, s.active.Len())
	for e := s.active.Front(); e != nil; e = e.Next() {
		r := e.Value.(*Rule)
		out = append(out, Rule{Lhs: r.Lhs.Clone(), Rhs: r.Rhs.Clone()})
	}
	return out
}

// AddRule normalises (l, r) so the greater side (under the system's order)
// is the left-hand side and appends it as an active rule. A no-op if
// l.Equal(r). Invalidates the cached confluence verdict.
func (s *System) AddRule(l, r word.Word) {
	if l.Equal(r) {
		return
	}
	lhs, rhs := l.Clone(), r.Clone()
	if s.order.Less(lhs, rhs) {
		lhs, rhs = rhs, lhs
	}
	s.active.PushBack(&Rule{Lhs: lhs, Rhs: rhs})
	s.confluenceKnown = false
}

// pushStack normalises and queues (l, r) for later integration by
// clearStack, rather than activating it immediately; this is how
// completion introduces new rules discovered from overlaps.
func (s *System) pushStack(l, r word.Word) {
	if l.Equal(r) {
		return
	}
	lhs, rhs := l, r
	if s.order.Less(lhs, rhs) {
		lhs, rhs = rhs, lhs
	}
	s.stack = append(s.stack, &Rule{Lhs: lhs, Rhs: rhs})
}

// Rewrite returns the normal form of input under the active rules, leaving
// input unchanged, using the two-window algorithm of spec §4.B: v is the fully reduced
// prefix built so far, w the unprocessed suffix. After each letter moves
// from w into v, active rules are scanned in insertion order for one whose
// lhs is a suffix of v; on a match v is rewound past the match and the
// rule's rhs is prepended back onto w.
func (s *System) Rewrite(input word.Word) word.Word {
	v := make(word.Word, 0, len(input))
	w := input.Clone()
	for len(w) > 0 {
		v = append(v, w[0])
		w = w[1:]
		for {
			matched := false
			for e := s.active.Front(); e != nil; e = e.Next() {
				r := e.Value.(*Rule)
				if len(r.Lhs) == 0 || len(r.Lhs) > len(v) {
					continue
				}
				if isSuffix(v, r.Lhs) {
					v = v[:len(v)-len(r.Lhs)]
					nw := make(word.Word, 0, len(r.Rhs)+len(w))
					nw = append(nw, r.Rhs...)
					nw = append(nw, w...)
					w = nw
					matched = true
					break
				}
			}
			if !matched {
				break
			}
		}
	}
	return v
}

func isSuffix(v, suf word.Word) bool {
	if len(suf) > len(v) {
		return false
	}
	off := len(v) - len(suf)
	for i := range suf {
		if v[off+i] != suf[i] {
			return false
		}
	}
	return true
}

// Equal rewrites both words to normal form and compares them.
func (s *System) Equal(u, v word.Word) bool {
	return s.Rewrite(u).Equal(s.Rewrite(v))
}

// Less rewrites both words to normal form and applies the system's
// reduction order to the results.
func (s *System) Less(u, v word.Word) bool {
	return s.order.Less(s.Rewrite(u), s.Rewrite(v))
}

// containsSubstring reports whether needle occurs anywhere in haystack.
func containsSubstring(haystack, needle word.Word) bool {
	if len(needle) == 0 {
		return true
	}
	if len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// clearStack drains the pending-rule stack: each popped rule has both
// sides rewritten under the current active rules; if the result is
// non-trivial it is activated, and any existing active rule whose lhs or
// rhs contains the newly reduced lhs as a substring is deactivated and
// re-pushed for reprocessing. This normalises the system after a batch of
// new rules (step 1 of completion, and also used stand-alone after
// AddRule-heavy initialisation).
func (s *System) clearStack(ctx context.Context) {
	for len(s.stack) > 0 {
		if ctx.Err() != nil {
			return
		}
		r := s.stack[0]
		s.stack = s.stack[1:]

		lhs := s.Rewrite(r.Lhs)
		rhs := s.Rewrite(r.Rhs)
		if lhs.Equal(rhs) {
			continue
		}
		if s.order.Less(lhs, rhs) {
			lhs, rhs = rhs, lhs
		}

		var next *list.Element
		for e := s.active.Front(); e != nil; e = next {
			next = e.Next()
			other := e.Value.(*Rule)
			if containsSubstring(other.Lhs, lhs) || containsSubstring(other.Rhs, lhs) {
				s.active.Remove(e)
				s.stack = append(s.stack, other)
			}
		}
		s.active.PushBack(&Rule{Lhs: lhs, Rhs: rhs})
		s.confluenceKnown = false
	}
}

// overlaps yields, for rule a's lhs and rule b's lhs, every non-empty
// suffix of a.Lhs that is a prefix of b.Lhs (a critical-pair overlap
// witness "ABC" with A from a, C from b, B the shared overlap).
func overlaps(a, b *Rule, yield func(overlapLen int)) {
	maxLen := len(a.Lhs)
	if len(b.Lhs) < maxLen {
		maxLen = len(b.Lhs)
	}
	for k := 1; k <= maxLen; k++ {
		suf := a.Lhs[len(a.Lhs)-k:]
		pre := b.Lhs[:k]
		if suf.Equal(pre) {
			yield(k)
		}
	}
}

func measure(m OverlapMeasure, a, b *Rule, overlapLen int) int {
	switch m {
	case OverlapMaxABBC:
		ab := len(a.Lhs)
		bc := overlapLen + (len(b.Lhs) - overlapLen)
		if ab > bc {
			return ab
		}
		return bc
	case OverlapABBC:
		A := len(a.Lhs) - overlapLen
		C := len(b.Lhs) - overlapLen
		return A + overlapLen + C
	default: // OverlapAB
		return len(a.Lhs)
	}
}

// resolveOverlap forms the two reductions of the word a.Lhs ++ (b.Lhs minus
// the shared overlap) and, if they differ, pushes the difference as a new
// candidate rule.
func (s *System) resolveOverlap(a, b *Rule, overlapLen int) {
	// word = A B C, where AB = a.Lhs, BC = b.Lhs, B has length overlapLen.
	bc := b.Lhs[overlapLen:]
	ab := a.Lhs[:len(a.Lhs)-overlapLen]

	word1 := append(append(word.Word{}, a.Rhs...), bc...)
	word2 := append(append(word.Word{}, ab...), b.Rhs...)

	r1 := s.Rewrite(word1)
	r2 := s.Rewrite(word2)
	if !r1.Equal(r2) {
		s.pushStack(r1, r2)
	}
}

// Confluent tests whether the current active rules form a confluent
// system: for every ordered pair of active rules, every overlap's two
// reductions must agree after Rewrite. The verdict is cached until a rule
// is added or changed.
func (s *System) Confluent(ctx context.Context) bool {
	if s.confluenceKnown {
		return s.isConfluent
	}
	rules := make([]*Rule, 0, s.active.Len())
	for e := s.active.Front(); e != nil; e = e.Next() {
		rules = append(rules, e.Value.(*Rule))
	}
	for i, a := range rules {
		for j := 0; j <= i; j++ {
			if ctx.Err() != nil {
				return false
			}
			b := rules[j]
			ok := true
			overlaps(a, b, func(k int) {
				if !ok {
					return
				}
				bc := b.Lhs[k:]
				ab := a.Lhs[:len(a.Lhs)-k]
				w1 := append(append(word.Word{}, a.Rhs...), bc...)
				w2 := append(append(word.Word{}, ab...), b.Rhs...)
				if !s.Rewrite(w1).Equal(s.Rewrite(w2)) {
					ok = false
				}
			})
			if !ok {
				s.confluenceKnown = true
				s.isConfluent = false
				return false
			}
		}
	}
	s.confluenceKnown = true
	s.isConfluent = true
	return true
}

// KnuthBendix runs completion until the system is confluent, ctx is
// cancelled, or a configured cap (MaxRules / MaxOverlap) is reached. On
// cancellation the active rules remain reduced (clearStack's invariant)
// but the system is not necessarily confluent; callers should check
// Confluent afterward.
func (s *System) KnuthBendix(ctx context.Context) {
	// Step 1: normalise the initial presentation by pushing every
	// existing rule back onto the stack and draining it.
	for e := s.active.Front(); e != nil; {
		next := e.Next()
		r := e.Value.(*Rule)
		s.active.Remove(e)
		s.stack = append(s.stack, r)
		e = next
	}
	s.clearStack(ctx)

	overlapCount := 0
	rulesSeen := make([]*Rule, 0, s.active.Len())
	for e := s.active.Front(); e != nil; e = e.Next() {
		rulesSeen = append(rulesSeen, e.Value.(*Rule))
	}

	for i := 0; i < len(rulesSeen); i++ {
		if ctx.Err() != nil {
			return
		}
		if s.cfg.MaxRules != Unbounded && s.active.Len() >= s.cfg.MaxRules {
			return
		}
		primary := rulesSeen[i]
		for j := 0; j <= i; j++ {
			secondary := rulesSeen[j]
			overlaps(primary, secondary, func(k int) {
				if s.cfg.MaxOverlap != Unbounded && measure(s.cfg.OverlapMeasure, primary, secondary, k) > s.cfg.MaxOverlap {
					return
				}
				s.resolveOverlap(primary, secondary, k)
			})
			overlapCount++
			if overlapCount%1024 == 0 {
				s.clearStack(ctx)
			}
		}
		s.clearStack(ctx)
		if s.ticker != nil {
			s.ticker.Tick(map[string]any{"active_rules": s.active.Len(), "overlaps": overlapCount})
		}

		if s.cfg.CheckConfluenceInterval > 0 && overlapCount%s.cfg.CheckConfluenceInterval == 0 {
			if s.Confluent(ctx) {
				return
			}
		}

		// new rules discovered by overlaps against rulesSeen[0..i] may
		// have activated during clearStack; fold them into the sweep so
		// the primary cursor eventually reaches every active rule.
		for e := s.active.Front(); e != nil; e = e.Next() {
			r := e.Value.(*Rule)
			if !containsRule(rulesSeen, r) {
				rulesSeen = append(rulesSeen, r)
			}
		}
	}
	s.Confluent(ctx)
}

func containsRule(rules []*Rule, r *Rule) bool {
	for _, x := range rules {
		if x == r {
			return true
		}
	}
	return false
}
