package envconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/samuelfneumann/gotd/timestep"
)

func TestCreateGridWorld(t *testing.T) {
	c := NewGridWorld(3, 4, 10, 0.99)
	require.NoError(t, c.Validate())

	e, ender, err := c.Create(1)
	require.NoError(t, err)
	assert.Equal(t, 12, e.ObservationSpec().Dim)
	assert.Equal(t, 4, e.NumActions())

	step := e.Reset()
	assert.False(t, ender.End(step))
	step.Number = 10
	assert.True(t, ender.End(step))
	assert.Equal(t, timestep.First, e.Reset().StepType)
}

func TestConfigYAML(t *testing.T) {
	data := []byte(`
Environment: GridWorld
Rows: 2
Cols: 2
Start: -1
Goals: [3]
StepReward: -1
GoalReward: 0
Discount: 1
EpisodeCutoff: 50
`)
	var c Config
	require.NoError(t, yaml.Unmarshal(data, &c))
	assert.Equal(t, []int{3}, c.Goals)
	assert.Equal(t, uint(50), c.EpisodeCutoff)

	_, _, err := c.Create(0)
	require.NoError(t, err)
}

func TestValidate(t *testing.T) {
	c := NewGridWorld(2, 2, 0, 1)
	c.Environment = "MountainCar"
	assert.Error(t, c.Validate())

	c = NewGridWorld(2, 2, 0, 1.5)
	assert.Error(t, c.Validate())

	c = NewGridWorld(2, 2, 0, 1)
	c.Goals = []int{7}
	_, _, err := c.Create(0)
	assert.Error(t, err)
}
