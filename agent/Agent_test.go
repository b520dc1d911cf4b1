package agent

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotd/policy"
	"github.com/samuelfneumann/gotd/timestep"
	"github.com/samuelfneumann/gotd/valuefunc"
)

func TestExpectedValue(t *testing.T) {
	assert.Equal(t, 2.5, ExpectedValue([]float64{0.5, 0.5, 0},
		[]float64{1, 4, math.Inf(-1)}))
}

func TestPredictV(t *testing.T) {
	q := valuefunc.NewTabular(1, 3)
	state := valuefunc.State(0)
	q.Update(state, 0, 1)
	q.Update(state, 2, 4)

	assert.Equal(t, 4.0, PredictV(q, policy.NewGreedy(q), state))
	assert.InDelta(t, 5.0/3, PredictV(q, policy.NewRandom(3), state), 1e-12)
}

func TestPolicies(t *testing.T) {
	q := valuefunc.NewTabular(1, 2)
	q.Update(valuefunc.State(0), 1, 1)

	p := Policies{Target: policy.NewGreedy(q), Behaviour: policy.NewRandom(2)}
	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, 1, p.SampleTarget(rng, valuefunc.State(0)))

	counts := make([]int, 2)
	for i := 0; i < 100; i++ {
		counts[p.SampleBehaviour(rng, valuefunc.State(0))]++
	}
	assert.NotZero(t, counts[0])
	assert.NotZero(t, counts[1])
}

type counter struct{ n int }

func (c *counter) HandleTransition(timestep.Transition) { c.n++ }
func (c *counter) HandleSequence(ts []timestep.Transition) {
	HandleEach(c, ts)
}
func (c *counter) HandleTerminal() {}

func TestHandleEach(t *testing.T) {
	c := &counter{}
	s := mat.NewVecDense(1, nil)
	tr := timestep.Transition{From: timestep.NewFull(s), To: timestep.NewFull(s)}
	c.HandleSequence([]timestep.Transition{tr, tr, tr})
	assert.Equal(t, 3, c.n)
}
