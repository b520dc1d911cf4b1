package policy

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotd/valuefunc"
)

// Softmax is a Boltzmann policy with respect to an action-value
// function, with probabilities proportional to exp(q(s, a) / τ)
type Softmax struct {
	q   valuefunc.ActionValuer
	tau float64
}

// NewSoftmax returns a new Softmax policy with temperature tau
func NewSoftmax(q valuefunc.ActionValuer, tau float64) *Softmax {
	if tau <= 0 {
		panic(fmt.Sprintf("newSoftmax: temperature must be positive, "+
			"got %v", tau))
	}
	return &Softmax{q, tau}
}

// Sample implements the Policy interface
func (s *Softmax) Sample(rng *rand.Rand, state mat.Vector) int {
	return sample(rng, s.Probabilities(state))
}

// Probability implements the Policy interface
func (s *Softmax) Probability(state mat.Vector, action int) float64 {
	return s.Probabilities(state)[action]
}

// Probabilities implements the Enumerable interface
func (s *Softmax) Probabilities(state mat.Vector) []float64 {
	logits := s.q.EvaluateAll(state)
	floats.Scale(1/s.tau, logits)

	norm := floats.LogSumExp(logits)
	for i := range logits {
		logits[i] = math.Exp(logits[i] - norm)
	}
	return logits
}

// Mode implements the Policy interface
func (s *Softmax) Mode(state mat.Vector) int {
	action, _ := valuefunc.FindMax(s.q.EvaluateAll(state))
	return action
}
