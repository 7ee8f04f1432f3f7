package fp

import (
	"context"
	"testing"

	"github.com/BaoNinh2808/semigroups/element"
	"github.com/BaoNinh2808/semigroups/word"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genTransformation returns a gopter generator for transformations of a
// fixed degree, used to build random small generating sets.
func genTransformation(degree int) gopter.Gen {
	return gen.SliceOfN(degree, gen.UInt32Range(0, uint32(degree-1))).Map(func(images []uint32) element.Transformation {
		return element.MustTransformation(images...)
	})
}

// TestFPUniversalInvariants checks spec §8's universal invariants over
// randomly generated small transformation semigroups: word_to_pos of a
// single generator letter equals letter_to_pos[g]; word_to_pos of a
// position's own factorisation recovers that position; and fast_product
// agrees with product_by_reduction.
func TestFPUniversalInvariants(t *testing.T) {
	const degree = 3
	props := gopter.NewProperties(nil)

	props.Property("word_to_pos([g]) == letter_to_pos[g]", prop.ForAll(
		func(a, b element.Transformation) bool {
			sg, err := New([]element.Transformation{a, b}, DefaultConfig())
			if err != nil {
				return true
			}
			ctx := context.Background()
			sg.Size(ctx)
			for g := 0; g < sg.NrGenerators(); g++ {
				if sg.WordToPos(ctx, word.Word{word.Letter(g)}) != sg.letterToPos[g] {
					return false
				}
			}
			return true
		},
		genTransformation(degree), genTransformation(degree),
	))

	props.Property("word_to_pos(factorisation(i)) == i for every enumerated i", prop.ForAll(
		func(a, b element.Transformation) bool {
			sg, err := New([]element.Transformation{a, b}, DefaultConfig())
			if err != nil {
				return true
			}
			ctx := context.Background()
			n := sg.Size(ctx)
			for i := 0; i < n; i++ {
				if sg.WordToPos(ctx, sg.Factorisation(i)) != i {
					return false
				}
			}
			return true
		},
		genTransformation(degree), genTransformation(degree),
	))

	props.Property("fast_product agrees with product_by_reduction", prop.ForAll(
		func(a, b element.Transformation) bool {
			sg, err := New([]element.Transformation{a, b}, DefaultConfig())
			if err != nil {
				return true
			}
			ctx := context.Background()
			n := sg.Size(ctx)
			for i := 0; i < n; i++ {
				j := (i * 7) % n
				if sg.FastProduct(ctx, i, j, 0) != sg.ProductByReduction(ctx, i, j) {
					return false
				}
			}
			return true
		},
		genTransformation(degree), genTransformation(degree),
	))

	props.TestingRun(t)
}
