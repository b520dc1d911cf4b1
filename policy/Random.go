package policy

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Random is the uniform random policy over a number of actions
type Random struct {
	numActions int
}

// NewRandom returns a new uniform random policy
func NewRandom(numActions int) *Random {
	if numActions <= 0 {
		panic(fmt.Sprintf("newRandom: invalid number of actions %d",
			numActions))
	}
	return &Random{numActions}
}

// Sample implements the Policy interface
func (r *Random) Sample(rng *rand.Rand, _ mat.Vector) int {
	return rng.Intn(r.numActions)
}

// Probability implements the Policy interface
func (r *Random) Probability(_ mat.Vector, action int) float64 {
	if action < 0 || action >= r.numActions {
		return 0
	}
	return 1 / float64(r.numActions)
}

// Probabilities implements the Enumerable interface
func (r *Random) Probabilities(_ mat.Vector) []float64 {
	probs := make([]float64, r.numActions)
	for a := range probs {
		probs[a] = 1 / float64(r.numActions)
	}
	return probs
}

// Mode implements the Policy interface. The uniform policy has no
// unique mode.
func (r *Random) Mode(_ mat.Vector) int {
	panic("random: uniform policy has no mode")
}
