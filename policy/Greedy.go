package policy

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotd/valuefunc"
)

// Greedy is the greedy policy with respect to an action-value
// function. Actions whose values are within valuefunc.Tolerance of the
// maximum are considered tied, and ties are broken uniformly at
// random.
//
// Greedy only reads the action values. The function is owned and
// updated by the controller which constructed the policy.
type Greedy struct {
	q valuefunc.ActionValuer
}

// NewGreedy returns a new Greedy policy with respect to q
func NewGreedy(q valuefunc.ActionValuer) *Greedy {
	return &Greedy{q}
}

// Sample implements the Policy interface
func (g *Greedy) Sample(rng *rand.Rand, state mat.Vector) int {
	maxima := valuefunc.Argmaxima(g.q.EvaluateAll(state))
	if len(maxima) == 1 {
		return maxima[0]
	}
	return maxima[rng.Intn(len(maxima))]
}

// Probability implements the Policy interface
func (g *Greedy) Probability(state mat.Vector, action int) float64 {
	return g.Probabilities(state)[action]
}

// Probabilities implements the Enumerable interface
func (g *Greedy) Probabilities(state mat.Vector) []float64 {
	probs := make([]float64, g.q.NumActions())
	maxima := valuefunc.Argmaxima(g.q.EvaluateAll(state))

	p := 1.0 / float64(len(maxima))
	for _, a := range maxima {
		probs[a] = p
	}
	return probs
}

// Mode implements the Policy interface
func (g *Greedy) Mode(state mat.Vector) int {
	action, _ := valuefunc.FindMax(g.q.EvaluateAll(state))
	return action
}
