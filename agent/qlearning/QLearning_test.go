package qlearning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gotd/agent"
	"github.com/samuelfneumann/gotd/basis"
	"github.com/samuelfneumann/gotd/environment/envconfig"
	"github.com/samuelfneumann/gotd/parameter"
	"github.com/samuelfneumann/gotd/policy"
	"github.com/samuelfneumann/gotd/timestep"
	"github.com/samuelfneumann/gotd/valuefunc"
)

func transition(from, action int, reward float64, to int,
	terminal bool) timestep.Transition {
	next := timestep.NewFull(valuefunc.State(to))
	if terminal {
		next = timestep.NewTerminal(valuefunc.State(to))
	}
	return timestep.Transition{
		From:   timestep.NewFull(valuefunc.State(from)),
		Action: action,
		Reward: reward,
		To:     next,
	}
}

func TestQLearningUpdate(t *testing.T) {
	q := valuefunc.NewTabular(2, 3)
	q.Weights().SetRow(1, []float64{1, 5, 2})
	q.Weights().Set(0, 2, 1)

	c := New(q, policy.NewRandom(3), parameter.Constant(0.5), 0.9)
	tr := transition(0, 2, 1, 1, false)
	assert.InDelta(t, 1+0.9*5-1, c.TdError(tr), 1e-12)

	c.HandleTransition(tr)
	assert.InDelta(t, 1+0.5*4.5, c.PredictQSA(valuefunc.State(0), 2), 1e-12)
	assert.Equal(t, 5.0, c.PredictV(valuefunc.State(1)))

	// Terminal transitions do not bootstrap
	c.HandleTransition(transition(1, 0, 2, 0, true))
	assert.InDelta(t, 1.5, c.PredictQSA(valuefunc.State(1), 0), 1e-12)
}

func TestQLearningLearnsGridWorld(t *testing.T) {
	env, _, err := envconfig.NewGridWorld(3, 3, 100, 1).Create(1)
	require.NoError(t, err)

	q := valuefunc.NewLinear(basis.NewIdentity(9, false), env.NumActions())
	c := New(q, policy.NewEGreedy(q, 0.1), parameter.Constant(0.5), 1)

	rng := rand.New(rand.NewSource(1))
	for episode := 0; episode < 300; episode++ {
		step := env.Reset()
		for !step.Last() && step.Number < 100 {
			action := c.SampleBehaviour(rng, step.Observation)
			next, _ := env.Step(action)
			c.HandleTransition(timestep.NewTransition(step, action, next))
			step = next
		}
		c.HandleTerminal()
	}

	// The goal is in the opposite corner, 4 steps away, and every step
	// is rewarded with -1
	first := env.Reset()
	assert.InDelta(t, -4, c.PredictV(first.Observation), 0.1)
}

func TestConfig(t *testing.T) {
	env, _, err := envconfig.NewGridWorld(3, 3, 100, 1).Create(1)
	require.NoError(t, err)

	list := NewConfigList([]float64{0.1}, []float64{0.1, 0.5},
		[]float64{0, 0.99}, []float64{0.9}, nil)
	require.Equal(t, agent.QLearning, list.Type)
	require.Equal(t, 4, list.Len())

	config := list.At(0).(Config)
	c, err := config.CreateController(env, 1)
	require.NoError(t, err)
	assert.True(t, config.ValidController(c))
}

func TestInvalid(t *testing.T) {
	q := valuefunc.NewTabular(2, 2)
	assert.Panics(t, func() {
		New(q, policy.NewRandom(2), parameter.Constant(0), 0.9)
	})
	assert.Panics(t, func() {
		New(q, policy.NewRandom(2), parameter.Constant(0.1), -0.1)
	})
	assert.Error(t, Config{Epsilon: 2, LearningRate: 0.1}.Validate())
	assert.Error(t, Config{LearningRate: 0.1, Discount: 2}.Validate())
}

func BenchmarkHandleTransition(b *testing.B) {
	env, _, err := envconfig.NewGridWorld(10, 10, 0, 0.99).Create(1)
	if err != nil {
		b.Error(err)
	}
	c, err := Config{Epsilon: 0.1, LearningRate: 0.1,
		Discount: 0.99}.CreateController(env, 1)
	if err != nil {
		b.Error(err)
	}

	step := env.Reset()
	next, _ := env.Step(0)
	tr := timestep.NewTransition(step, 0, next)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.HandleTransition(tr)
	}
}
