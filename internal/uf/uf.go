// Package uf implements a disjoint-set forest with path compression and
// union by rank, grounded on libsemigroups' UF helper (src/uf.h in the
// original source) which backs the P ("orbit of pairs") congruence
// strategy's class bookkeeping.
package uf

// Forest is a disjoint-set forest over the elements [0, n).
type Forest struct {
	parent []int
	rank   []int
}

// New returns a Forest with n singleton classes.
func New(n int) *Forest {
	f := &Forest{parent: make([]int, n), rank: make([]int, n)}
	for i := range f.parent {
		f.parent[i] = i
	}
	return f
}

// Grow extends the forest so it has n singleton classes, preserving the
// existing ones. It is a no-op if the forest already has at least n nodes.
func (f *Forest) Grow(n int) {
	for len(f.parent) < n {
		f.parent = append(f.parent, len(f.parent))
		f.rank = append(f.rank, 0)
	}
}

// Len reports the number of elements the forest tracks.
func (f *Forest) Len() int { return len(f.parent) }

// Find returns the canonical representative of x's class, compressing the
// path from x to the root as it goes.
func (f *Forest) Find(x int) int {
	root := x
	for f.parent[root] != root {
		root = f.parent[root]
	}
	for f.parent[x] != root {
		f.parent[x], x = root, f.parent[x]
	}
	return root
}

// Union merges the classes of x and y, returning true if they were
// previously distinct.
func (f *Forest) Union(x, y int) bool {
	rx, ry := f.Find(x), f.Find(y)
	if rx == ry {
		return false
	}
	switch {
	case f.rank[rx] < f.rank[ry]:
		rx, ry = ry, rx
	case f.rank[rx] == f.rank[ry]:
		f.rank[rx]++
	}
	f.parent[ry] = rx
	return true
}

// Classes returns, for every element, the index of its class in
// [0, nrClasses), numbered in order of first appearance when scanning
// 0..Len()-1. This matches the original's class_lookup renumbering used by
// nr_classes and nontrivial_classes.
func (f *Forest) Classes() (lookup []int, nrClasses int) {
	lookup = make([]int, f.Len())
	seen := make(map[int]int, f.Len())
	for i := 0; i < f.Len(); i++ {
		root := f.Find(i)
		idx, ok := seen[root]
		if !ok {
			idx = nrClasses
			seen[root] = idx
			nrClasses++
		}
		lookup[i] = idx
	}
	return lookup, nrClasses
}
