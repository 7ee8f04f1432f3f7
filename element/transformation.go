package element

import "fmt"

// Transformation is a full transformation of {0, ..., n-1}: images[i] is the
// image of point i. It implements Element[Transformation].
//
// This is the element type used in spec scenario 2 (a right congruence on a
// transformation semigroup of size 88).
type Transformation struct {
	images []uint32
}

// NewTransformation copies images into a Transformation. Every entry must
// be less than len(images).
func NewTransformation(images []uint32) (Transformation, error) {
	n := len(images)
	for _, im := range images {
		if int(im) >= n {
			return Transformation{}, fmt.Errorf("transformation: image %d out of range for degree %d", im, n)
		}
	}
	cp := make([]uint32, n)
	copy(cp, images)
	return Transformation{images: cp}, nil
}

// MustTransformation panics if NewTransformation would return an error; it
// is meant for tests and examples with literal, known-good input.
func MustTransformation(images ...uint32) Transformation {
	t, err := NewTransformation(images)
	if err != nil {
		panic(err)
	}
	return t
}

// Images returns the underlying image slice. Callers must not mutate it.
func (t Transformation) Images() []uint32 { return t.images }

// Degree returns the size of the domain {0, ..., n-1}.
func (t Transformation) Degree() int { return len(t.images) }

// One returns the identity transformation at t's degree.
func (t Transformation) One() Transformation {
	id := make([]uint32, len(t.images))
	for i := range id {
		id[i] = uint32(i)
	}
	return Transformation{images: id}
}

// Product writes t * other into *out, using the convention that
// (t*other)(i) = other(t(i)) — composition acting on the right, the usual
// convention for transformation semigroups.
func (t Transformation) Product(out *Transformation, other Transformation, _ int) {
	if cap(out.images) < len(t.images) {
		out.images = make([]uint32, len(t.images))
	} else {
		out.images = out.images[:len(t.images)]
	}
	for i, im := range t.images {
		out.images[i] = other.images[im]
	}
}

// Copy returns an independent copy of t.
func (t Transformation) Copy() Transformation {
	cp := make([]uint32, len(t.images))
	copy(cp, t.images)
	return Transformation{images: cp}
}

// Equal reports whether t and other have identical image sequences.
func (t Transformation) Equal(other Transformation) bool {
	if len(t.images) != len(other.images) {
		return false
	}
	for i := range t.images {
		if t.images[i] != other.images[i] {
			return false
		}
	}
	return true
}

// Less imposes lexicographic order on image sequences.
func (t Transformation) Less(other Transformation) bool {
	n := len(t.images)
	if len(other.images) < n {
		n = len(other.images)
	}
	for i := 0; i < n; i++ {
		if t.images[i] != other.images[i] {
			return t.images[i] < other.images[i]
		}
	}
	return len(t.images) < len(other.images)
}

// Hash implements the FNV-1a hash over the image sequence.
func (t Transformation) Hash() uint64 {
	var h uint64 = 14695981039346656037
	for _, im := range t.images {
		h ^= uint64(im)
		h *= 1099511628211
	}
	return h
}

// Complexity upper-bounds Product's cost by the degree: one slice write per
// point.
func (t Transformation) Complexity() int { return len(t.images) }

// IncreaseDegree embeds t into a transformation of degree n >= t.Degree(),
// fixing every new point.
func (t Transformation) IncreaseDegree(n int) Transformation {
	if n <= len(t.images) {
		return t.Copy()
	}
	out := make([]uint32, n)
	copy(out, t.images)
	for i := len(t.images); i < n; i++ {
		out[i] = uint32(i)
	}
	return Transformation{images: out}
}

func (t Transformation) String() string {
	return fmt.Sprint(t.images)
}
