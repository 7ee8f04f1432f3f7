package fp

import (
	"context"

	"github.com/BaoNinh2808/semigroups/word"
)

// Relation is one defining relation of the semigroup, in the form
// (factorisation(i) ++ [g], factorisation(k)) meaning "i*g = k".
type Relation struct {
	Left, Right word.Word
}

// relationState holds a RelationCursor's progress through the stream
// described by spec §4.C next_relation: first the duplicate-generator
// identifications, then every (i, g) pair with reduced[i][g] false and
// either length[i] == 1 or reduced[suffix[i]][g] true.
type relationState struct {
	dupIdx int
	i, g   int
}

// NextRelation returns the next defining relation and true, or a zero
// Relation and false once every relation has been streamed. Pass a pointer
// to a RelationCursor obtained from NewRelationCursor to track progress;
// multiple independent cursors may stream concurrently over the same
// (fully enumerated) semigroup.
type RelationCursor struct {
	relationState
}

// NewRelationCursor returns a cursor starting at the first relation.
func NewRelationCursor() *RelationCursor { return &RelationCursor{} }

// NextRelation forces full enumeration and advances cur, yielding the next
// relation in the stream described by spec §4.C.
func (s *Semigroup[T]) NextRelation(ctx context.Context, cur *RelationCursor) (Relation, bool) {
	s.runAll(ctx)

	if cur.dupIdx < len(s.duplicateGens) {
		d := s.duplicateGens[cur.dupIdx]
		cur.dupIdx++
		return Relation{
			Left:  word.Word{d.letter},
			Right: s.Factorisation(d.pos),
		}, true
	}

	nrgens := len(s.letterToPos)
	n := len(s.elements)
	for cur.i < n {
		for cur.g < nrgens {
			i, g := cur.i, cur.g
			eligible := s.length[i] == 1 || (s.suffix[i] != Undefined && s.reduced[s.suffix[i]][g])
			if !s.reduced[i][g] && eligible {
				k := s.right[i][g]
				lhs := s.Factorisation(i)
				lhs = append(lhs, word.Letter(g))
				rel := Relation{Left: lhs, Right: s.Factorisation(k)}
				cur.g++
				return rel, true
			}
			cur.g++
		}
		cur.g = 0
		cur.i++
	}
	return Relation{}, false
}
