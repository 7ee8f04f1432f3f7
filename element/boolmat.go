package element

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// BoolMatrix is a square boolean matrix under the (OR, AND) semiring,
// stored one bitset.BitSet per row. It implements Element[BoolMatrix] and
// is the element type used for boolean-matrix semigroups (one of the
// algebraic types named in spec §1's purpose statement).
type BoolMatrix struct {
	n    int
	rows []*bitset.BitSet
}

// NewBoolMatrix builds a BoolMatrix of dimension n from a row-major boolean
// slice of length n*n.
func NewBoolMatrix(n int, entries []bool) (BoolMatrix, error) {
	if len(entries) != n*n {
		return BoolMatrix{}, fmt.Errorf("boolmat: need %d entries for dimension %d, got %d", n*n, n, len(entries))
	}
	rows := make([]*bitset.BitSet, n)
	for i := 0; i < n; i++ {
		row := bitset.New(uint(n))
		for j := 0; j < n; j++ {
			if entries[i*n+j] {
				row.Set(uint(j))
			}
		}
		rows[i] = row
	}
	return BoolMatrix{n: n, rows: rows}, nil
}

// Degree returns the matrix dimension.
func (m BoolMatrix) Degree() int { return m.n }

// One returns the n x n identity boolean matrix.
func (m BoolMatrix) One() BoolMatrix {
	rows := make([]*bitset.BitSet, m.n)
	for i := range rows {
		row := bitset.New(uint(m.n))
		row.Set(uint(i))
		rows[i] = row
	}
	return BoolMatrix{n: m.n, rows: rows}
}

// Product writes m * other into *out under boolean (OR, AND) matrix
// multiplication: (m*other)[i][j] = OR_k m[i][k] AND other[k][j].
func (m BoolMatrix) Product(out *BoolMatrix, other BoolMatrix, _ int) {
	n := m.n
	outRows := make([]*bitset.BitSet, n)
	otherCols := make([]*bitset.BitSet, n)
	for j := 0; j < n; j++ {
		col := bitset.New(uint(n))
		for k := 0; k < n; k++ {
			if other.rows[k].Test(uint(j)) {
				col.Set(uint(k))
			}
		}
		otherCols[j] = col
	}
	for i := 0; i < n; i++ {
		row := bitset.New(uint(n))
		for j := 0; j < n; j++ {
			if m.rows[i].IntersectionCardinality(otherCols[j]) > 0 {
				row.Set(uint(j))
			}
		}
		outRows[i] = row
	}
	out.n = n
	out.rows = outRows
}

// Copy returns an independent copy of m.
func (m BoolMatrix) Copy() BoolMatrix {
	rows := make([]*bitset.BitSet, m.n)
	for i, r := range m.rows {
		rows[i] = r.Clone()
	}
	return BoolMatrix{n: m.n, rows: rows}
}

// Equal reports whether m and other have identical entries.
func (m BoolMatrix) Equal(other BoolMatrix) bool {
	if m.n != other.n {
		return false
	}
	for i := range m.rows {
		if !m.rows[i].Equal(other.rows[i]) {
			return false
		}
	}
	return true
}

// Less imposes row-major lexicographic order, comparing each row's bit
// pattern as an unsigned integer from the low-index bit up.
func (m BoolMatrix) Less(other BoolMatrix) bool {
	for i := range m.rows {
		if m.rows[i].Equal(other.rows[i]) {
			continue
		}
		for j := 0; j < m.n; j++ {
			a, b := m.rows[i].Test(uint(j)), other.rows[i].Test(uint(j))
			if a != b {
				return !a
			}
		}
	}
	return false
}

// Hash combines each row's word representation.
func (m BoolMatrix) Hash() uint64 {
	var h uint64 = 14695981039346656037
	for _, row := range m.rows {
		for _, w := range row.Bytes() {
			h ^= uint64(w)
			h *= 1099511628211
		}
	}
	return h
}

// Complexity upper-bounds Product's cost by O(n^3).
func (m BoolMatrix) Complexity() int { return m.n * m.n * m.n }
