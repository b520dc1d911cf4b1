// Package basis implements feature projectors, which map raw states to
// the (possibly sparse) feature vectors consumed by linear function
// approximators
package basis

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotd/gradient"
)

// Projector projects states into feature space
type Projector interface {
	// Project returns the features of a state
	Project(state mat.Vector) Features

	// Dim returns the number of features produced by Project
	Dim() int
}

// Features is a projected feature vector
type Features interface {
	// Len returns the dimension of the feature vector
	Len() int

	// Dot returns the inner product of the features with v
	Dot(v mat.Vector) float64

	// Gradient returns the gradient of a linear function with cols
	// outputs with respect to the weights of output col, given these
	// features as input
	Gradient(cols, col int) gradient.Buffer
}

// Dense is a dense feature vector
type Dense struct {
	*mat.VecDense
}

// NewDense returns a new dense feature vector
func NewDense(v mat.Vector) Dense {
	vec := mat.NewVecDense(v.Len(), nil)
	vec.CloneFromVec(v)
	return Dense{vec}
}

// Dot implements the Features interface
func (d Dense) Dot(v mat.Vector) float64 {
	return mat.Dot(d.VecDense, v)
}

// Gradient implements the Features interface
func (d Dense) Gradient(cols, col int) gradient.Buffer {
	return gradient.NewColumn(cols, col, d.VecDense)
}

// Binary is a sparse feature vector of 0's and 1's, represented by the
// indices of its non-zero entries
type Binary struct {
	dim    int
	active []int
}

// NewBinary returns a new binary feature vector of dimension dim with
// the active indices set to 1.0
func NewBinary(dim int, active []int) Binary {
	for _, i := range active {
		if i < 0 || i >= dim {
			panic(fmt.Sprintf("newBinary: active index %d out of range "+
				"for %d features", i, dim))
		}
	}
	return Binary{dim, append([]int(nil), active...)}
}

// Active returns the indices of the non-zero features
func (b Binary) Active() []int {
	return append([]int(nil), b.active...)
}

// Len implements the Features interface
func (b Binary) Len() int {
	return b.dim
}

// Dot implements the Features interface
func (b Binary) Dot(v mat.Vector) float64 {
	if v.Len() != b.dim {
		panic(fmt.Sprintf("dot: dimension mismatch %d != %d", v.Len(), b.dim))
	}
	sum := 0.0
	for _, i := range b.active {
		sum += v.AtVec(i)
	}
	return sum
}

// Gradient implements the Features interface
func (b Binary) Gradient(cols, col int) gradient.Buffer {
	return gradient.NewTile(b.dim, cols, col, b.active)
}

// ToVector returns the features as a dense vector
func (b Binary) ToVector() *mat.VecDense {
	vec := mat.NewVecDense(b.dim, nil)
	for _, i := range b.active {
		vec.SetVec(i, 1.0)
	}
	return vec
}
