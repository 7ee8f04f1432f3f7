package element

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransformationRejectsOutOfRangeImage(t *testing.T) {
	_, err := NewTransformation([]uint32{0, 5})
	require.Error(t, err)
}

func TestTransformationOneIsIdentity(t *testing.T) {
	tr := MustTransformation(1, 2, 0)
	one := tr.One()
	var out Transformation
	tr.Product(&out, one, 0)
	assert.True(t, out.Equal(tr))
	one.Product(&out, tr, 0)
	assert.True(t, out.Equal(tr))
}

func TestTransformationProductComposesOnTheRight(t *testing.T) {
	// t: 0->1, 1->2, 2->0 ; u: 0->0, 1->0, 2->1
	tr := MustTransformation(1, 2, 0)
	u := MustTransformation(0, 0, 1)
	var out Transformation
	tr.Product(&out, u, 0)
	// (t*u)(i) = u(t(i))
	assert.Equal(t, []uint32{0, 1, 0}, out.Images())
}

func TestTransformationEqualAndHash(t *testing.T) {
	a := MustTransformation(0, 1, 2)
	b := MustTransformation(0, 1, 2)
	c := MustTransformation(1, 1, 2)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(c))
}

func TestTransformationLessIsStrictOrder(t *testing.T) {
	a := MustTransformation(0, 1)
	b := MustTransformation(0, 2)
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.False(t, a.Less(a))
}

func TestTransformationCopyIsIndependent(t *testing.T) {
	a := MustTransformation(0, 1, 2)
	cp := a.Copy()
	cp.images[0] = 2
	assert.Equal(t, uint32(0), a.Images()[0])
}

func TestTransformationIncreaseDegree(t *testing.T) {
	a := MustTransformation(1, 0)
	b := a.IncreaseDegree(4)
	assert.Equal(t, []uint32{1, 0, 2, 3}, b.Images())
	// increasing to a degree no larger than the current one is a copy.
	same := a.IncreaseDegree(2)
	assert.True(t, same.Equal(a))
}

// TestTransformationProductAssociative checks the Element contract's
// associativity requirement over random transformations of a fixed degree.
func TestTransformationProductAssociative(t *testing.T) {
	const degree = 4
	genImages := gen.SliceOfN(degree, gen.UInt32Range(0, degree-1))

	props := gopter.NewProperties(nil)
	props.Property("(a*b)*c == a*(b*c)", prop.ForAll(
		func(ai, bi, ci []uint32) bool {
			a, errA := NewTransformation(ai)
			b, errB := NewTransformation(bi)
			c, errC := NewTransformation(ci)
			if errA != nil || errB != nil || errC != nil {
				return true // skip invalid samples
			}
			var ab, bc, left, right Transformation
			a.Product(&ab, b, 0)
			ab.Product(&left, c, 0)
			b.Product(&bc, c, 0)
			a.Product(&right, bc, 0)
			return left.Equal(right)
		},
		genImages, genImages, genImages,
	))
	props.TestingRun(t)
}
