package fp

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// idempotentThreshold picks the word-length threshold up to which tracing a
// Cayley-graph path is used instead of a direct multiplication: an element
// of length L costs about L graph lookups to trace versus Complexity() for
// one Product call, so elements with length at most Complexity() are traced
// and the rest are multiplied directly (spec §4.C "Idempotents").
func (s *Semigroup[T]) idempotentThreshold() int {
	if len(s.elements) == 0 {
		return 0
	}
	return s.elements[0].Complexity()
}

// IsIdempotent reports whether element i satisfies i*i == i.
func (s *Semigroup[T]) IsIdempotent(ctx context.Context, i int) bool {
	threshold := s.idempotentThreshold()
	if s.length[i] <= threshold {
		return s.traceIsIdempotent(ctx, i)
	}
	tmp := s.scratch.Get(0)
	s.elements[i].Product(tmp, s.elements[i], 0)
	return tmp.Equal(s.elements[i])
}

// traceIsIdempotent tests idempotency of i by tracing i's own
// factorisation through the right Cayley graph starting from i, which
// reaches the position of i*i, and comparing that position to i.
func (s *Semigroup[T]) traceIsIdempotent(ctx context.Context, i int) bool {
	w := s.Factorisation(i)
	pos := i
	for _, g := range w {
		pos = s.Right(ctx, pos, g)
		if pos == Undefined {
			return false
		}
	}
	return pos == i
}

// NrIdempotents counts the idempotents found by Idempotents, which splits
// the work across up to cfg.MaxThreads goroutines via errgroup (the one
// place FP is multi-threaded).
func (s *Semigroup[T]) NrIdempotents(ctx context.Context) int {
	idems := s.Idempotents(ctx)
	return len(idems)
}

// Idempotents forces full enumeration and returns the indices of every
// idempotent element. An element whose length is at most the threshold is
// tested by graph tracing, any other by direct multiplication. With more
// than one worker, the element positions 0..N-1 are split into contiguous
// chunks of equal size (not of equal cost), one goroutine per chunk.
func (s *Semigroup[T]) Idempotents(ctx context.Context) []int {
	s.runAll(ctx)
	n := len(s.elements)
	workers := s.cfg.MaxThreads
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 || n == 0 {
		var out []int
		for i := 0; i < n; i++ {
			if s.IsIdempotent(ctx, i) {
				out = append(out, i)
			}
		}
		return out
	}

	results := make([][]int, workers)
	chunk := (n + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		g.Go(func() error {
			var local []int
			for i := start; i < end; i++ {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				if s.isIdempotentTid(gctx, i, w) {
					local = append(local, i)
				}
			}
			results[w] = local
			return nil
		})
	}
	_ = g.Wait()

	var out []int
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

// isIdempotentTid is IsIdempotent's direct-multiplication path using
// worker tid's scratch slot, so concurrent idempotent checks never share a
// Product output buffer.
func (s *Semigroup[T]) isIdempotentTid(ctx context.Context, i, tid int) bool {
	threshold := s.idempotentThreshold()
	if s.length[i] <= threshold {
		return s.traceIsIdempotent(ctx, i)
	}
	tmp := s.scratch.Get(tid)
	s.elements[i].Product(tmp, s.elements[i], tid)
	return tmp.Equal(s.elements[i])
}
