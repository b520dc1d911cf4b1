package agent

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotd/policy"
	"github.com/samuelfneumann/gotd/valuefunc"
)

// Sampler samples actions from the target and behaviour policies of a
// controller
type Sampler interface {
	SampleTarget(rng *rand.Rand, state mat.Vector) int
	SampleBehaviour(rng *rand.Rand, state mat.Vector) int
}

// Policies holds the target and behaviour policies of a controller and
// implements the Sampler interface
type Policies struct {
	Target    policy.Policy
	Behaviour policy.Policy
}

// SampleTarget implements the Sampler interface
func (p Policies) SampleTarget(rng *rand.Rand, state mat.Vector) int {
	return p.Target.Sample(rng, state)
}

// SampleBehaviour implements the Sampler interface
func (p Policies) SampleBehaviour(rng *rand.Rand, state mat.Vector) int {
	return p.Behaviour.Sample(rng, state)
}

// PredictV returns the value of state under the target policy of a
// controller with action-value function q
func PredictV(q valuefunc.ActionValuer, target policy.Policy,
	state mat.Vector) float64 {
	values := q.EvaluateAll(state)
	probs := policy.Distribution(target, state, len(values))
	return ExpectedValue(probs, values)
}

// ExpectedValue returns the expectation of values under probs. Values
// with probability 0 do not contribute, even if they are infinite.
func ExpectedValue(probs, values []float64) float64 {
	var v float64
	for i := range probs {
		if probs[i] != 0 {
			v += probs[i] * values[i]
		}
	}
	return v
}
