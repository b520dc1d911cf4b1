package valuefunc

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Initializer initializes weights
type Initializer interface {
	Initialize(weights *mat.Dense)
}

// UV initializes every weight with an independent draw from a
// univariate distribution
type UV struct {
	distuv.Rander
}

// NewUV returns a new UV initializer drawing weights from rand
func NewUV(rand distuv.Rander) UV {
	if rand == nil {
		panic("rand cannot be nil")
	}
	return UV{rand}
}

// Initialize initializes a matrix of weights using values drawn from
// a univariate distribution
func (u UV) Initialize(weights *mat.Dense) {
	if weights == nil {
		return
	}

	r, c := weights.Dims()
	for i := 0; i < r; i++ {
		row := weights.RawRowView(i)
		for j := 0; j < c; j++ {
			row[j] = u.Rand()
		}
	}
}

// Zero initializes all weights to 0
type Zero struct{}

// Initialize implements the Initializer interface
func (Zero) Initialize(weights *mat.Dense) {
	if weights != nil {
		weights.Zero()
	}
}
