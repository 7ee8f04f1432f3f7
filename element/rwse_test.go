package element

import (
	"testing"

	"github.com/BaoNinh2808/semigroups/kb"
	"github.com/BaoNinh2808/semigroups/word"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// z2System returns a confluent rewriting system for Z/2Z presented as a
// single generator a with a*a = empty word.
func z2System() *kb.System {
	sys := kb.New(kb.ShortLex{}, kb.DefaultConfig())
	sys.AddRule(word.Word{0, 0}, word.Word{})
	return sys
}

func TestRWSElementNormalisesOnConstruction(t *testing.T) {
	sys := z2System()
	e := NewRWSElement(sys, 1, word.Word{0, 0, 0})
	assert.Equal(t, word.Word{0}, e.Word())
}

func TestRWSElementOneIsIdentity(t *testing.T) {
	sys := z2System()
	e := NewRWSElement(sys, 1, word.Word{0})
	one := e.One()
	var out RWSElement
	e.Product(&out, one, 0)
	assert.True(t, out.Equal(e))
}

func TestRWSElementProductRewritesToNormalForm(t *testing.T) {
	sys := z2System()
	a := NewRWSElement(sys, 1, word.Word{0})
	var out RWSElement
	a.Product(&out, a, 0)
	assert.True(t, out.Equal(a.One()), "a*a must reduce to the identity under the z2 relation")
}

func TestRWSElementProductAcrossDifferentSystemsPanics(t *testing.T) {
	sysA := z2System()
	sysB := z2System()
	a := NewRWSElement(sysA, 1, word.Word{0})
	b := NewRWSElement(sysB, 1, word.Word{0})
	var out RWSElement
	assert.Panics(t, func() { a.Product(&out, b, 0) })
}

func TestRWSElementHashConsistentWithEqual(t *testing.T) {
	sys := z2System()
	a := NewRWSElement(sys, 1, word.Word{0, 0, 0})
	b := NewRWSElement(sys, 1, word.Word{0})
	require.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestRWSElementLessUsesSystemOrder(t *testing.T) {
	sys := kb.New(kb.ShortLex{}, kb.DefaultConfig())
	a := NewRWSElement(sys, 2, word.Word{0})
	b := NewRWSElement(sys, 2, word.Word{1})
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
}

func TestRWSElementCopyIsIndependent(t *testing.T) {
	sys := z2System()
	e := NewRWSElement(sys, 1, word.Word{0})
	cp := e.Copy()
	assert.True(t, cp.Equal(e))
}
