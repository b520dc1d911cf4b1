package sarsa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/gotd/environment/envconfig"
	"github.com/samuelfneumann/gotd/parameter"
	"github.com/samuelfneumann/gotd/policy"
	"github.com/samuelfneumann/gotd/timestep"
	"github.com/samuelfneumann/gotd/trace"
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

func TestSarsaLambda(t *testing.T) {
	q := valuefunc.NewTabular(2, 2)
	q.Weights().Set(1, 1, 1)

	c := New(q, policy.NewGreedy(q), trace.Accumulating{},
		parameter.Constant(0.1), 0.5, 0.8, 1)
	assert.Nil(t, c.Trace())

	// The greedy action in state 1 is 1, so δ = 1 + 0.5 * 1
	c.HandleTransition(transition(0, 0, 1, 1, false))
	assert.InDelta(t, 0.15, c.PredictQSA(valuefunc.State(0), 0), 1e-12)
	require.NotNil(t, c.Trace())
	assert.Equal(t, 1.0, c.Trace().Buffer().At(0, 0))

	// The greedy action in state 0 is 0, so δ = 0.5 * 0.15 - 1
	c.HandleTransition(transition(1, 1, 0, 0, false))
	assert.InDelta(t, 0.4, c.Trace().Buffer().At(0, 0), 1e-12)
	assert.InDelta(t, 1.0, c.Trace().Buffer().At(1, 1), 1e-12)
	assert.InDelta(t, 0.113, c.PredictQSA(valuefunc.State(0), 0), 1e-12)
	assert.InDelta(t, 0.9075, c.PredictQSA(valuefunc.State(1), 1), 1e-12)

	// Terminal transitions do not bootstrap, and reset the trace
	c.HandleTransition(transition(0, 1, 2, 1, true))
	assert.InDelta(t, 0.145, c.PredictQSA(valuefunc.State(0), 0), 1e-12)
	assert.InDelta(t, 0.9875, c.PredictQSA(valuefunc.State(1), 1), 1e-12)
	assert.InDelta(t, 0.2, c.PredictQSA(valuefunc.State(0), 1), 1e-12)
	c.Trace().Buffer().Each(func(i, j int, v float64) {
		assert.Equal(t, 0.0, v)
	})
}

func TestLambdaZero(t *testing.T) {
	q := valuefunc.NewTabular(3, 2)
	q.Weights().Set(2, 0, 3)
	c := New(q, policy.NewGreedy(q), trace.Accumulating{},
		parameter.Constant(0.5), 0.9, 0, 1)

	c.HandleTransition(transition(0, 1, 1, 1, false))
	c.HandleTransition(transition(1, 0, 0, 2, false))

	// With λ = 0 the first update is not revisited
	assert.InDelta(t, 0.5, c.PredictQSA(valuefunc.State(0), 1), 1e-12)
	assert.InDelta(t, 0.5*0.9*3, c.PredictQSA(valuefunc.State(1), 0), 1e-12)
}

func TestHandleTerminal(t *testing.T) {
	q := valuefunc.NewTabular(2, 2)
	alpha := parameter.NewExponentialDecay(1, 0.5, 0)
	c := New(q, policy.NewGreedy(q), trace.Saturating{}, alpha, 1, 1, 1)

	c.HandleTerminal()
	assert.Equal(t, 0.5, alpha.Value())

	c.HandleTransition(transition(0, 0, 1, 1, false))
	c.HandleTerminal()
	c.Trace().Buffer().Each(func(i, j int, v float64) {
		assert.Equal(t, 0.0, v)
	})
}

func TestInvalid(t *testing.T) {
	q := valuefunc.NewTabular(2, 2)
	p := policy.NewGreedy(q)
	assert.Panics(t, func() {
		New(q, p, trace.Accumulating{}, parameter.Constant(0.1), 1, 1.5, 1)
	})
	assert.Panics(t, func() {
		New(q, p, nil, parameter.Constant(0.1), 1, 0.5, 1)
	})
}

func TestConfig(t *testing.T) {
	env, _, err := envconfig.NewGridWorld(3, 3, 0, 0.9).Create(1)
	require.NoError(t, err)

	list := NewConfigList([]float64{0.1}, []float64{0.1}, nil,
		[]float64{0.9}, []float64{0, 0.9},
		[]string{"accumulating", "replacing", "dutch"}, nil)
	require.Equal(t, 6, list.Len())

	for i := 0; i < list.Len(); i++ {
		config := list.At(i)
		c, err := config.CreateController(env, 1)
		require.NoError(t, err)
		assert.True(t, config.ValidController(c))
	}

	bad := Config{LearningRate: 0.1, Discount: 0.9, Trace: "unknown"}
	assert.Error(t, bad.Validate())
	_, err = bad.CreateController(env, 1)
	assert.Error(t, err)
}

func TestDutchTraceFollowsDecayedStepSize(t *testing.T) {
	env, _, err := envconfig.NewGridWorld(3, 3, 0, 0.9).Create(1)
	require.NoError(t, err)

	config := Config{Epsilon: 0.1, LearningRate: 0.1, Decay: 0.5,
		Discount: 0.9, Lambda: 0.9, Trace: "dutch"}
	controller, err := config.CreateController(env, 1)
	require.NoError(t, err)
	c := controller.(*Sarsa)

	obs := env.Reset().Observation
	c.HandleTransition(timestep.Transition{
		From:   timestep.NewFull(obs),
		Action: 0,
		Reward: -1,
		To:     timestep.NewFull(obs),
	})
	require.NotNil(t, c.Trace())
	assert.InDelta(t, 1-0.1, c.Trace().Rule().Decay(1), 1e-12)

	c.HandleTerminal()
	assert.InDelta(t, 1-0.05, c.Trace().Rule().Decay(1), 1e-12)
}

func TestBootstrapActionFromOwnSource(t *testing.T) {
	run := func(nextAction int) float64 {
		q := valuefunc.NewTabular(2, 2)
		q.Weights().SetRow(1, []float64{1, 3})
		c := New(q, policy.NewRandom(2), trace.Accumulating{},
			parameter.Constant(1), 1, 0, 7)
		c.HandleTransition(transition(0, 0, 0, 1, false))
		c.HandleTransition(transition(1, nextAction, 0, 0, true))
		return c.PredictQSA(valuefunc.State(0), 0)
	}

	// The first update does not depend on the action taken next
	got := run(0)
	assert.Equal(t, got, run(1))
	assert.Contains(t, []float64{1, 3}, got)
}
