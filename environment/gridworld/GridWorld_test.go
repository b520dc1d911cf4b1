package gridworld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/gotd/environment"
	"github.com/samuelfneumann/gotd/timestep"
)

func TestGridWorldStep(t *testing.T) {
	// 2 rows, 3 columns, start at (0, 0), goal at (2, 1)
	g, err := New(2, 3, []int{5}, environment.SingleStart(0), -1, 10, 0.9)
	require.NoError(t, err)

	step := g.Reset()
	assert.True(t, step.First())
	assert.Equal(t, 1.0, step.Observation.AtVec(0))
	assert.Equal(t, 6, g.ObservationSpec().Dim)

	// Bumping into the wall leaves the agent in place
	step, last := g.Step(Left)
	assert.False(t, last)
	assert.Equal(t, -1.0, step.Reward)
	assert.Equal(t, 0, g.Position())

	_, last = g.Step(Right)
	assert.False(t, last)
	_, last = g.Step(Right)
	assert.False(t, last)
	x, y := g.Coordinates()
	assert.Equal(t, 2, x)
	assert.Equal(t, 0, y)

	step, last = g.Step(Up)
	assert.True(t, last)
	assert.True(t, step.Last())
	assert.Equal(t, 10.0, step.Reward)
	assert.Equal(t, 4, step.Number)
	assert.Equal(t, 1.0, step.Observation.AtVec(5))
	assert.Equal(t, 1.0, g.At(1, 2))
	assert.Equal(t, 0.9, step.Discount)

	step = g.Reset()
	assert.Equal(t, timestep.First, step.StepType)
	assert.Equal(t, 0, step.Number)
}

func TestGridWorldInvalid(t *testing.T) {
	_, err := New(0, 3, []int{1}, environment.SingleStart(0), -1, 0, 1)
	assert.Error(t, err)

	_, err = New(2, 2, nil, environment.SingleStart(0), -1, 0, 1)
	assert.Error(t, err)

	_, err = New(2, 2, []int{4}, environment.SingleStart(0), -1, 0, 1)
	assert.Error(t, err)

	assert.Panics(t, func() {
		New(2, 2, []int{3}, environment.SingleStart(4), -1, 0, 1)
	})
}

func TestGridWorldUniformStart(t *testing.T) {
	g, err := New(3, 3, []int{8}, environment.NewUniformStarter(9, 1), -1,
		0, 1)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		g.Reset()
		seen[g.Position()] = true
	}
	assert.Len(t, seen, 9)
	assert.Panics(t, func() { g.Step(NumActions) })
}
