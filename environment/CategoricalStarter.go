package environment

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// CategoricalStarter returns starting states as vectors of length 1
// sampled from a categorical distribution over (0, 1, 2, ... N-1)
type CategoricalStarter struct {
	rand distuv.Categorical
}

// NewCategoricalStarter returns a new CategoricalStarter, sampling
// starting states in proportion to weights
func NewCategoricalStarter(weights []float64, seed uint64) CategoricalStarter {
	if len(weights) == 0 {
		panic("newCategoricalStarter: no starting states")
	}
	source := rand.NewSource(seed)
	return CategoricalStarter{distuv.NewCategorical(weights, source)}
}

// NewUniformStarter returns a CategoricalStarter sampling each of n
// states with equal probability
func NewUniformStarter(n int, seed uint64) CategoricalStarter {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0
	}
	return NewCategoricalStarter(weights, seed)
}

// SingleStart is a Starter which always starts in the same state
type SingleStart int

// Start implements the Starter interface
func (s SingleStart) Start() mat.Vector {
	return mat.NewVecDense(1, []float64{float64(s)})
}

// Start returns a starting state vector
func (c CategoricalStarter) Start() mat.Vector {
	return mat.NewVecDense(1, []float64{c.rand.Rand()})
}

// String implements the fmt.Stringer interface
func (s SingleStart) String() string {
	return fmt.Sprintf("SingleStart(%d)", int(s))
}
