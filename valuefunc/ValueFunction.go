// Package valuefunc defines the capabilities of state and state-action
// value functions, and implements tabular and linear value functions.
//
// Value functions own their weights. Controllers mutate the weights
// only through Update and UpdateGradScaled; policies which depend on
// a value function are given read-only access through ActionValuer.
package valuefunc

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotd/gradient"
)

// Tolerance is the absolute tolerance within which two action values
// are considered tied by Argmaxima
const Tolerance float64 = 1e-7

// ActionValuer is a read-only view of an action-value function over a
// discrete set of actions
type ActionValuer interface {
	// EvaluateAll returns the value of each action in a state
	EvaluateAll(state mat.Vector) []float64

	// NumActions returns the number of discrete actions
	NumActions() int
}

// QFunction is a state-action value function over discrete actions
type QFunction interface {
	ActionValuer

	// Evaluate returns the value of taking action in state
	Evaluate(state mat.Vector, action int) float64

	// Update moves the value of (state, action) by err. Any step size
	// should already be folded into err.
	Update(state mat.Vector, action int, err float64) error
}

// DifferentiableQ is a QFunction which exposes its gradient with
// respect to its weights
type DifferentiableQ interface {
	QFunction

	// Grad returns the gradient of the value of (state, action) with
	// respect to the weights
	Grad(state mat.Vector, action int) gradient.Buffer

	// UpdateGradScaled performs weights += scale * grad
	UpdateGradScaled(grad gradient.Buffer, scale float64)
}

// VFunction is a state value function
type VFunction interface {
	Evaluate(state mat.Vector) float64
	Update(state mat.Vector, err float64) error
}

// DifferentiableV is a VFunction which exposes its gradient with
// respect to its weights
type DifferentiableV interface {
	VFunction
	Grad(state mat.Vector) gradient.Buffer
	UpdateGradScaled(grad gradient.Buffer, scale float64)
}

// FindMax returns the index and value of the maximum of values.
//
// Ties are broken in favour of the last index: a later value replaces
// the current best whenever it is not strictly less than it.
func FindMax(values []float64) (int, float64) {
	if len(values) == 0 {
		panic("findMax: no values")
	}

	index, max := 0, values[0]
	for i := 1; i < len(values); i++ {
		if !(values[i] < max) {
			index, max = i, values[i]
		}
	}
	return index, max
}

// Argmaxima returns the indices of all values within Tolerance of the
// maximum value, in increasing order. If no value compares (all values
// are NaN), the index chosen by FindMax is returned.
func Argmaxima(values []float64) []int {
	if len(values) == 0 {
		panic("argmaxima: no values")
	}

	max := math.Inf(-1)
	for _, v := range values {
		if v > max {
			max = v
		}
	}

	var indices []int
	for i, v := range values {
		if math.Abs(v-max) <= Tolerance {
			indices = append(indices, i)
		}
	}
	if len(indices) == 0 {
		index, _ := FindMax(values)
		indices = []int{index}
	}
	return indices
}
