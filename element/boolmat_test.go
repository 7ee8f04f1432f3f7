package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoolMatrixRejectsWrongLength(t *testing.T) {
	_, err := NewBoolMatrix(2, []bool{true, false, true})
	require.Error(t, err)
}

func TestBoolMatrixOneIsIdentity(t *testing.T) {
	m, err := NewBoolMatrix(2, []bool{false, true, true, false})
	require.NoError(t, err)
	one := m.One()
	var out BoolMatrix
	m.Product(&out, one, 0)
	assert.True(t, out.Equal(m))
	one.Product(&out, m, 0)
	assert.True(t, out.Equal(m))
}

func TestBoolMatrixProductIsBooleanSemiringMultiplication(t *testing.T) {
	// a = [[1,0],[1,1]], b = [[0,1],[1,0]]
	a, _ := NewBoolMatrix(2, []bool{true, false, true, true})
	b, _ := NewBoolMatrix(2, []bool{false, true, true, false})
	var out BoolMatrix
	a.Product(&out, b, 0)
	// row0: [1,0]·b -> col0: 1&0 | 0&1 = 0 ; col1: 1&1 | 0&0 = 1 -> [0,1]
	// row1: [1,1]·b -> col0: 1&0 | 1&1 = 1 ; col1: 1&1 | 1&0 = 1 -> [1,1]
	want, _ := NewBoolMatrix(2, []bool{false, true, true, true})
	assert.True(t, out.Equal(want))
}

func TestBoolMatrixEqualAndHash(t *testing.T) {
	a, _ := NewBoolMatrix(2, []bool{true, false, false, true})
	b, _ := NewBoolMatrix(2, []bool{true, false, false, true})
	c, _ := NewBoolMatrix(2, []bool{false, false, false, true})
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(c))
}

func TestBoolMatrixCopyIsIndependent(t *testing.T) {
	a, _ := NewBoolMatrix(2, []bool{true, false, false, true})
	cp := a.Copy()
	cp.rows[0].Set(1)
	assert.False(t, a.rows[0].Test(1), "mutating the copy's row must not affect the original")
}
