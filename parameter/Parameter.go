// Package parameter implements hyperparameters, such as step sizes,
// which may change over the course of an experiment
package parameter

import (
	"fmt"
	"math"
)

// Parameter is a scalar hyperparameter. Step is called by controllers
// at the end of each episode.
type Parameter interface {
	Value() float64
	Step()
}

// Constant is a Parameter which never changes
type Constant float64

// Value implements the Parameter interface
func (c Constant) Value() float64 { return float64(c) }

// Step implements the Parameter interface
func (c Constant) Step() {}

// String implements the fmt.Stringer interface
func (c Constant) String() string { return fmt.Sprintf("%v", float64(c)) }

// ExponentialDecay is a Parameter which decays exponentially:
// max(min, initial * rate^t) after t steps
type ExponentialDecay struct {
	initial, rate, min float64
	steps              int
}

// NewExponentialDecay returns a new ExponentialDecay parameter. The
// rate must be in (0, 1].
func NewExponentialDecay(initial, rate, min float64) *ExponentialDecay {
	if rate <= 0 || rate > 1 {
		panic(fmt.Sprintf("newExponentialDecay: rate must be in (0, 1], "+
			"got %v", rate))
	}
	return &ExponentialDecay{initial: initial, rate: rate, min: min}
}

// Value implements the Parameter interface
func (e *ExponentialDecay) Value() float64 {
	return math.Max(e.min, e.initial*math.Pow(e.rate, float64(e.steps)))
}

// Step implements the Parameter interface
func (e *ExponentialDecay) Step() { e.steps++ }

// PolynomialDecay is a Parameter which decays polynomially:
// max(min, initial / (t+1)^power) after t steps
type PolynomialDecay struct {
	initial, power, min float64
	steps               int
}

// NewPolynomialDecay returns a new PolynomialDecay parameter
func NewPolynomialDecay(initial, power, min float64) *PolynomialDecay {
	if power < 0 {
		panic(fmt.Sprintf("newPolynomialDecay: power must be "+
			"non-negative, got %v", power))
	}
	return &PolynomialDecay{initial: initial, power: power, min: min}
}

// Value implements the Parameter interface
func (p *PolynomialDecay) Value() float64 {
	return math.Max(p.min, p.initial/math.Pow(float64(p.steps+1), p.power))
}

// Step implements the Parameter interface
func (p *PolynomialDecay) Step() { p.steps++ }

// FromDecay returns a Constant if decay is 0 or 1 and an
// ExponentialDecay with the given rate otherwise
func FromDecay(initial, decay float64) Parameter {
	if decay == 0 || decay == 1 {
		return Constant(initial)
	}
	return NewExponentialDecay(initial, decay, 0)
}
