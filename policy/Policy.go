// Package policy implements policies over discrete actions
package policy

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Policy is a distribution over discrete actions conditioned on state
type Policy interface {
	// Sample samples an action in state using rng
	Sample(rng *rand.Rand, state mat.Vector) int

	// Probability returns the probability of selecting action in state
	Probability(state mat.Vector, action int) float64

	// Mode returns the most probable action in state. Policies with no
	// unique mode, such as the uniform random policy, panic.
	Mode(state mat.Vector) int
}

// Enumerable is a Policy which can compute the probabilities of all
// actions at once
type Enumerable interface {
	Policy
	Probabilities(state mat.Vector) []float64
}

// Distribution returns the probability of each of numActions actions
// in state under p
func Distribution(p Policy, state mat.Vector, numActions int) []float64 {
	if e, ok := p.(Enumerable); ok {
		return e.Probabilities(state)
	}

	probs := make([]float64, numActions)
	for a := range probs {
		probs[a] = p.Probability(state, a)
	}
	return probs
}

// sample samples an action from a categorical distribution over
// actions
func sample(rng *rand.Rand, probs []float64) int {
	return int(distuv.NewCategorical(probs, rng).Rand())
}
