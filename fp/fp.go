// Package fp implements the Froidure-Pin algorithm (spec §4.C): generic,
// element-type-agnostic enumeration that simultaneously produces the
// element set, left/right Cayley graphs, and a confluent presentation (the
// duplicate-generator and reduced-word relations streamed by NextRelation).
//
// Grounded on libsemigroups' include/libsemigroups/froidure-pin-impl.hpp
// (see DESIGN.md); the element type is a Go generic type parameter rather
// than a virtual base class, so the engine is compiled once per concrete
// element type with no dynamic dispatch on the hot path.
package fp

import (
	"context"
	"sync"

	"github.com/BaoNinh2808/semigroups/element"
	"github.com/BaoNinh2808/semigroups/errs"
	"github.com/BaoNinh2808/semigroups/internal/report"
	"github.com/BaoNinh2808/semigroups/word"
)

// Undefined is the sentinel used for "no such index". Per spec §9's open
// question on UNDEFINED sentinels, it is never allowed to flow into
// arithmetic: every comparison against it is explicit, and fields that may
// hold it (Prefix, Suffix, Right, Left entries) are read only through
// accessors that check it first.
const Undefined = -1

// Config bundles the FP-level knobs of spec §6: set_batch_size, plus the
// shared set_max_threads / set_report / set_report_interval that the
// idempotent finder and the reporter ticker consume.
type Config struct {
	BatchSize  int
	MaxThreads int
	Reporter   report.Reporter
}

// DefaultConfig returns batch size 8192 and max threads 1 (single
// threaded except for idempotent finding, per spec §4.C "Concurrency
// inside FP").
func DefaultConfig() Config {
	return Config{BatchSize: 8192, MaxThreads: 1}
}

// duplicateGen records that an incoming generator letter was equal to one
// already seen; spec §4.C enumeration step 1.
type duplicateGen struct {
	letter word.Letter
	pos    int
}

// Semigroup is the Froidure-Pin engine over an element type T. The zero
// value is not usable; construct with New.
type Semigroup[T element.Element[T]] struct {
	cfg Config

	mu sync.Mutex // guards run: at most one goroutine enumerates at a time

	generators []T
	elements   []T

	first, final []word.Letter
	prefix       []int
	suffix       []int
	length       []int
	reduced      [][]bool
	right        [][]int
	left         [][]int

	enumerateOrder []int
	lenindex       []int
	letterToPos    []int
	duplicateGens  []duplicateGen

	index map[uint64][]int // hash -> candidate element indices

	pos       int // enumeration cursor into enumerateOrder
	wordlen   int
	nrRules   int
	posOne    int
	hasOne    bool
	immutable bool

	scratch *element.ScratchPool[T]
	ticker  *report.Ticker
}

// New constructs a Semigroup from a non-empty collection of generators, all
// of the same Degree.
func New[T element.Element[T]](gens []T, cfg Config) (*Semigroup[T], error) {
	if len(gens) == 0 {
		return nil, errs.InvalidArgument("fp: generating set must be non-empty")
	}
	deg := gens[0].Degree()
	for _, g := range gens {
		if g.Degree() != deg {
			return nil, errs.InvalidArgument("fp: generators have mismatched degree")
		}
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	if cfg.MaxThreads <= 0 {
		cfg.MaxThreads = 1
	}
	s := &Semigroup[T]{
		cfg:        cfg,
		generators: append([]T(nil), gens...),
		index:      make(map[uint64][]int),
		scratch:    element.NewScratchPool[T](cfg.MaxThreads, gens[0]),
	}
	if cfg.Reporter.Enabled() {
		s.ticker = report.NewTicker(cfg.Reporter, "fp.enumerate", 0)
	}
	s.init()
	return s, nil
}

// Degree returns the shared degree of the generators (and every enumerated
// element).
func (s *Semigroup[T]) Degree() int { return s.generators[0].Degree() }

// NrGenerators returns the number of generator letters, including
// duplicates.
func (s *Semigroup[T]) NrGenerators() int { return len(s.letterToPos) }

// Generator returns the element named by letter g.
func (s *Semigroup[T]) Generator(g word.Letter) T {
	return s.elements[s.letterToPos[g]]
}

// CurrentSize returns the number of elements found so far, without forcing
// completion.
func (s *Semigroup[T]) CurrentSize() int { return len(s.elements) }

// CurrentNrRules returns the number of defining relations found so far.
func (s *Semigroup[T]) CurrentNrRules() int { return s.nrRules }

// CurrentMaxWordLength returns the length of the longest word processed so
// far.
func (s *Semigroup[T]) CurrentMaxWordLength() int {
	if len(s.lenindex) == 0 {
		return 0
	}
	return len(s.lenindex) - 1
}

// findIndex looks up x in the hash index, returning its element position or
// Undefined.
func (s *Semigroup[T]) findIndex(x T) int {
	h := x.Hash()
	for _, idx := range s.index[h] {
		if s.elements[idx].Equal(x) {
			return idx
		}
	}
	return Undefined
}

func (s *Semigroup[T]) recordIndex(x T, idx int) {
	h := x.Hash()
	s.index[h] = append(s.index[h], idx)
}

// at returns the canonical stored element at position i.
func (s *Semigroup[T]) at(i int) T { return s.elements[i] }
