package word

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordClone(t *testing.T) {
	w := Word{1, 2, 3}
	c := w.Clone()
	require.True(t, w.Equal(c))
	c[0] = 99
	assert.Equal(t, Letter(1), w[0], "Clone must not alias the original backing array")
}

func TestWordCloneNil(t *testing.T) {
	var w Word
	assert.Nil(t, w.Clone())
}

func TestWordAppend(t *testing.T) {
	a := Word{1, 2}
	b := Word{3, 4}
	got := a.Append(b)
	assert.Equal(t, Word{1, 2, 3, 4}, got)
	assert.Equal(t, Word{1, 2}, a, "Append must not mutate its receiver")
	assert.Equal(t, Word{3, 4}, b)
}

func TestWordEqual(t *testing.T) {
	assert.True(t, Word{1, 2, 3}.Equal(Word{1, 2, 3}))
	assert.False(t, Word{1, 2, 3}.Equal(Word{1, 2}))
	assert.False(t, Word{1, 2, 3}.Equal(Word{1, 2, 4}))
	assert.True(t, Word{}.Equal(Word(nil)))
}

func TestWordReversed(t *testing.T) {
	assert.Equal(t, Word{3, 2, 1}, Word{1, 2, 3}.Reversed())
	assert.Equal(t, Word{}, Word{}.Reversed())
}

func TestWordInRange(t *testing.T) {
	assert.True(t, Word{0, 1, 2}.InRange(3))
	assert.False(t, Word{0, 1, 3}.InRange(3))
}

func TestWordString(t *testing.T) {
	assert.Equal(t, "[0,1,1]", Word{0, 1, 1}.String())
	assert.Equal(t, "[]", Word{}.String())
}

func TestRelation(t *testing.T) {
	r := Relation{Left: Word{0, 1}, Right: Word{1}}
	assert.True(t, r.Left.Equal(Word{0, 1}))
	assert.True(t, r.Right.Equal(Word{1}))
}
