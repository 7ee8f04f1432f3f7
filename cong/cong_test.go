package cong

import (
	"context"
	"testing"

	"github.com/BaoNinh2808/semigroups/element"
	"github.com/BaoNinh2808/semigroups/fp"
	"github.com/BaoNinh2808/semigroups/word"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cyclicTransformations(images ...[]uint32) []element.Transformation {
	out := make([]element.Transformation, len(images))
	for i, im := range images {
		out[i] = element.MustTransformation(im...)
	}
	return out
}

// TestTwoSidedFromPresentation is spec scenario 1: generators {0,1},
// relations {(000,0),(0,11)}, no extras, two-sided. Expect nr_classes = 5
// and the listed word equalities/inequalities.
func TestTwoSidedFromPresentation(t *testing.T) {
	rels := []word.Relation{
		{Left: word.Word{0, 0, 0}, Right: word.Word{0}},
		{Left: word.Word{0}, Right: word.Word{1, 1}},
	}
	d, err := NewFromPresentation(TwoSided, 2, rels, nil, DefaultConfig())
	require.NoError(t, err)

	ctx := context.Background()
	n, err := d.NrClasses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	assert.True(t, d.Equal(ctx, word.Word{0, 0, 1}, word.Word{0, 0, 0, 0, 1}))
	assert.True(t, d.Equal(ctx, word.Word{0, 0, 0, 0, 1}, word.Word{0, 1, 1, 0, 0, 1}))
	assert.False(t, d.Equal(ctx, word.Word{0, 0, 0}, word.Word{0, 0, 1}))
	assert.False(t, d.Equal(ctx, word.Word{1}, word.Word{0, 0, 0}))
}

// TestRightCongruenceOnTransformationSemigroup is spec scenario 2: a right
// congruence on the size-88 transformation semigroup generated by
// t1=[1,3,4,2,3], t2=[3,2,1,3,3], with one extra generating pair equating
// the words for [3,4,4,4,4] and [3,1,3,3,3]. Expect nr_classes = 72.
func TestRightCongruenceOnTransformationSemigroup(t *testing.T) {
	gens := cyclicTransformations([]uint32{1, 3, 4, 2, 3}, []uint32{3, 2, 1, 3, 3})
	sg, err := fp.New(gens, fp.DefaultConfig())
	require.NoError(t, err)

	ctx := context.Background()
	require.Equal(t, 88, sg.Size(ctx))

	posT1p := sg.Position(ctx, element.MustTransformation(3, 4, 4, 4, 4))
	posT2p := sg.Position(ctx, element.MustTransformation(3, 1, 3, 3, 3))
	require.NotEqual(t, -1, posT1p)
	require.NotEqual(t, -1, posT2p)

	extra := []word.Relation{{
		Left:  sg.Factorisation(posT1p),
		Right: sg.Factorisation(posT2p),
	}}

	d, err := NewFromSemigroup(Right, sg, extra, DefaultConfig())
	require.NoError(t, err)

	n, err := d.NrClasses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 72, n)

	a := sg.Factorisation(sg.Position(ctx, element.MustTransformation(1, 3, 3, 3, 3)))
	b := sg.Factorisation(sg.Position(ctx, element.MustTransformation(4, 2, 4, 4, 2)))
	assert.False(t, d.Equal(ctx, a, b))

	c := sg.Factorisation(sg.Position(ctx, element.MustTransformation(2, 3, 2, 2, 2)))
	e := sg.Factorisation(sg.Position(ctx, element.MustTransformation(2, 3, 3, 3, 3)))
	assert.True(t, d.Equal(ctx, c, e))
}

// TestObviouslyInfinitePresentationStillSolves is spec scenario 3: 3
// generators, relations {(01,0)}, extra {(22,2)}, which obviouslyInfinite
// flags as unbounded (more generators than relations+extras) — the
// dispatcher must still resolve, having excluded Todd-Coxeter from its
// candidate set, using an infinite-tolerant strategy instead.
func TestObviouslyInfinitePresentationStillSolves(t *testing.T) {
	rels := []word.Relation{
		{Left: word.Word{0, 1}, Right: word.Word{0}},
	}
	extra := []word.Relation{
		{Left: word.Word{2, 2}, Right: word.Word{2}},
	}
	assert.True(t, obviouslyInfinite(3, rels, extra))

	d, err := NewFromPresentation(TwoSided, 3, rels, extra, DefaultConfig())
	require.NoError(t, err)
	ctx := context.Background()
	assert.True(t, d.Equal(ctx, word.Word{2, 2}, word.Word{2}))
}

// TestKBFPDihedralOfOrder6 is grounded in spec scenario 4: a presentation
// of the dihedral group of order 6 (rotation a of order 3, reflection b of
// order 2, with bab = a^-1, expressed here as bab = a^2), two-sided, no
// extras. Expect nr_classes = 6, the rotation a (generator 0) in a
// different class from the reflection b (generator 1), and aba (the word
// "010") in the same class as b.
func TestKBFPDihedralOfOrder6(t *testing.T) {
	rels := []word.Relation{
		{Left: word.Word{0, 0, 0}, Right: word.Word{}},
		{Left: word.Word{1, 1}, Right: word.Word{}},
		{Left: word.Word{1, 0, 1}, Right: word.Word{0, 0}},
	}
	d, err := NewFromPresentation(TwoSided, 2, rels, nil, DefaultConfig())
	require.NoError(t, err)
	ctx := context.Background()
	n, err := d.NrClasses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	rotation := d.WordToClassIndex(ctx, word.Word{0})
	reflection := d.WordToClassIndex(ctx, word.Word{1})
	assert.NotEqual(t, rotation, reflection)
	assert.Equal(t, reflection, d.WordToClassIndex(ctx, word.Word{0, 1, 0}))
}

// TestBicyclicMonoid is spec scenario 5: generators {0,1,2}, relations
// {(01,1),(10,1),(00,0),(02,2),(20,2),(12,0)}, no extras, two-sided.
func TestBicyclicMonoid(t *testing.T) {
	rels := []word.Relation{
		{Left: word.Word{0, 1}, Right: word.Word{1}},
		{Left: word.Word{1, 0}, Right: word.Word{1}},
		{Left: word.Word{0, 0}, Right: word.Word{0}},
		{Left: word.Word{0, 2}, Right: word.Word{2}},
		{Left: word.Word{2, 0}, Right: word.Word{2}},
		{Left: word.Word{1, 2}, Right: word.Word{0}},
	}
	d, err := NewFromPresentation(TwoSided, 3, rels, nil, DefaultConfig())
	require.NoError(t, err)
	ctx := context.Background()

	idx0 := d.WordToClassIndex(ctx, word.Word{0})
	idx1 := d.WordToClassIndex(ctx, word.Word{1, 2, 1, 1, 2, 2})
	idx2 := d.WordToClassIndex(ctx, word.Word{1, 0, 2, 0, 1, 2})
	assert.Equal(t, idx0, idx1)
	assert.Equal(t, idx1, idx2)

	assert.True(t, d.Equal(ctx, word.Word{2, 1}, word.Word{1, 2, 0, 2, 1, 1, 2}))
}

func TestForceTCPinsStrategyAndAnswersConsistently(t *testing.T) {
	rels := []word.Relation{
		{Left: word.Word{0, 0, 0}, Right: word.Word{0}},
		{Left: word.Word{0}, Right: word.Word{1, 1}},
	}
	d, err := NewFromPresentation(TwoSided, 2, rels, nil, DefaultConfig())
	require.NoError(t, err)
	d.ForceTC()

	ctx := context.Background()
	n, err := d.NrClasses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestForcePRequiresConcreteSemigroup(t *testing.T) {
	rels := []word.Relation{
		{Left: word.Word{0, 0, 0}, Right: word.Word{0}},
		{Left: word.Word{0}, Right: word.Word{1, 1}},
	}
	d, err := NewFromPresentation(TwoSided, 2, rels, nil, DefaultConfig())
	require.NoError(t, err)
	err = d.ForceP()
	require.Error(t, err)
}

func TestForceKBFPRequiresTwoSided(t *testing.T) {
	rels := []word.Relation{
		{Left: word.Word{0, 0}, Right: word.Word{0}},
	}
	d, err := NewFromPresentation(Right, 1, rels, nil, DefaultConfig())
	require.NoError(t, err)
	err = d.ForceKBFP()
	require.Error(t, err)
}

func TestForcePOnConcreteSemigroupSolves(t *testing.T) {
	gens := cyclicTransformations([]uint32{1, 0})
	sg, err := fp.New(gens, fp.DefaultConfig())
	require.NoError(t, err)
	ctx := context.Background()
	sg.Size(ctx)

	d, err := NewFromSemigroup(TwoSided, sg, nil, DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, d.ForceP())

	n, err := d.NrClasses(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)
}

func TestNewFromSemigroupRejectsNil(t *testing.T) {
	_, err := NewFromSemigroup(TwoSided, nil, nil, DefaultConfig())
	require.Error(t, err)
}

func TestNewFromPresentationRejectsNonPositiveGenerators(t *testing.T) {
	_, err := NewFromPresentation(TwoSided, 0, nil, nil, DefaultConfig())
	require.Error(t, err)
}
