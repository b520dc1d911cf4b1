package policy

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotd/valuefunc"
)

// EGreedy is an ε-greedy policy with respect to an action-value
// function: with probability ε an action is selected uniformly at
// random, otherwise a greedy action is selected.
type EGreedy struct {
	q       valuefunc.ActionValuer
	epsilon float64
}

// NewEGreedy returns a new ε-greedy policy with respect to q
func NewEGreedy(q valuefunc.ActionValuer, epsilon float64) *EGreedy {
	if epsilon < 0 || epsilon > 1 {
		panic(fmt.Sprintf("newEGreedy: epsilon must be in [0, 1], got %v",
			epsilon))
	}
	return &EGreedy{q, epsilon}
}

// Epsilon returns the probability of selecting a random action
func (e *EGreedy) Epsilon() float64 {
	return e.epsilon
}

// Sample implements the Policy interface
func (e *EGreedy) Sample(rng *rand.Rand, state mat.Vector) int {
	return sample(rng, e.Probabilities(state))
}

// Probability implements the Policy interface
func (e *EGreedy) Probability(state mat.Vector, action int) float64 {
	return e.Probabilities(state)[action]
}

// Probabilities implements the Enumerable interface
func (e *EGreedy) Probabilities(state mat.Vector) []float64 {
	numActions := e.q.NumActions()
	probs := make([]float64, numActions)

	random := e.epsilon / float64(numActions)
	for a := range probs {
		probs[a] = random
	}

	maxima := valuefunc.Argmaxima(e.q.EvaluateAll(state))
	greedy := (1 - e.epsilon) / float64(len(maxima))
	for _, a := range maxima {
		probs[a] += greedy
	}
	return probs
}

// Mode implements the Policy interface
func (e *EGreedy) Mode(state mat.Vector) int {
	action, _ := valuefunc.FindMax(e.q.EvaluateAll(state))
	return action
}
