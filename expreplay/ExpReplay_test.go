package expreplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/gotd/timestep"
)

func transition(reward float64) timestep.Transition {
	return timestep.Transition{Reward: reward}
}

func rewards(ts []timestep.Transition) []float64 {
	r := make([]float64, len(ts))
	for i := range ts {
		r[i] = ts[i].Reward
	}
	return r
}

func TestFifo(t *testing.T) {
	buffer, err := Config{
		SampleMethod:      Fifo,
		SampleSize:        2,
		MinReplayCapacity: 2,
		MaxReplayCapacity: 3,
	}.Create(1)
	require.NoError(t, err)

	_, err = buffer.Sample()
	assert.True(t, IsEmptyBuffer(err))

	require.NoError(t, buffer.Add(transition(1)))
	_, err = buffer.Sample()
	assert.True(t, IsInsufficientSamples(err))
	assert.False(t, IsEmptyBuffer(err))

	require.NoError(t, buffer.Add(transition(2)))
	batch, err := buffer.Sample()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, rewards(batch))

	// The oldest transitions are removed first
	for _, r := range []float64{3, 4, 5} {
		require.NoError(t, buffer.Add(transition(r)))
	}
	assert.Equal(t, 3, buffer.Capacity())
	batch, err = buffer.Sample()
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, rewards(batch))
}

func TestUniform(t *testing.T) {
	buffer, err := Config{
		SampleSize:        50,
		MinReplayCapacity: 1,
		MaxReplayCapacity: 50,
	}.Create(1)
	require.NoError(t, err)
	assert.Equal(t, 50, buffer.BatchSize())
	assert.Equal(t, 50, buffer.MaxCapacity())
	assert.Equal(t, 1, buffer.MinCapacity())

	for i := 0; i < 60; i++ {
		require.NoError(t, buffer.Add(transition(float64(i))))
	}

	batch, err := buffer.Sample()
	require.NoError(t, err)
	require.Len(t, batch, 50)
	for _, tr := range batch {
		assert.GreaterOrEqual(t, tr.Reward, 10.0)
	}
}

func TestInvalid(t *testing.T) {
	_, err := Config{SampleSize: 1, MinReplayCapacity: 0,
		MaxReplayCapacity: 1}.Create(1)
	assert.Error(t, err)

	_, err = Config{SampleSize: 5, MinReplayCapacity: 1,
		MaxReplayCapacity: 2}.Create(1)
	assert.Error(t, err)

	_, err = Config{SampleMethod: "Prioritized", SampleSize: 1,
		MinReplayCapacity: 1, MaxReplayCapacity: 1}.Create(1)
	assert.Error(t, err)

	_, err = Config{SampleSize: 0, MinReplayCapacity: 1,
		MaxReplayCapacity: 1}.Create(1)
	assert.Error(t, err)
}
