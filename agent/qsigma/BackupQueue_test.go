package qsigma

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

func TestBackupQueueBounded(t *testing.T) {
	b := NewBackupQueue(2)
	assert.False(t, b.Ready())

	b.Push(Entry{Action: 0})
	b.Push(Entry{Action: 1})
	assert.True(t, b.Ready())
	b.Push(Entry{Action: 2})
	assert.Equal(t, 3, b.Len())
	assert.Panics(t, func() { b.Push(Entry{}) })

	assert.Equal(t, 0, b.Pop().Action)
	assert.Equal(t, 1, b.Front().Action)
	assert.Equal(t, 2, b.Len())

	b.Clear()
	assert.Equal(t, 0, b.Len())
	assert.Panics(t, func() { b.Pop() })
	assert.Panics(t, func() { b.Return(0.9) })
	assert.Panics(t, func() { NewBackupQueue(0) })
}

func TestReturn(t *testing.T) {
	const gamma = 0.5
	b := NewBackupQueue(3)
	b.Push(Entry{Q: 1, Residual: 2, Sigma: 0.5, Pi: 0.5, Mu: 0.25})
	b.Push(Entry{Q: 3, Residual: -1, Sigma: 0.5, Pi: 0.2, Mu: 0.4})
	b.Push(Entry{Q: 0, Residual: 4, Sigma: 0.5, Pi: 0.6, Mu: 0.3})

	z1 := gamma * (0.5*0.2 + 0.5)
	z2 := z1 * gamma * (0.5*0.6 + 0.5)
	wantG := 1 + 2 - z1 + 4*z2
	wantISR := (1 - 0.5 + 0.5*0.5/0.25) * (1 - 0.5 + 0.5*0.2/0.4) *
		(1 - 0.5 + 0.5*0.6/0.3)

	g, isr := b.Return(gamma)
	assert.InDelta(t, wantG, g, 1e-12)
	assert.InDelta(t, wantISR, isr, 1e-12)
}

func TestReturnHorizonWindow(t *testing.T) {
	// Only the first n entries contribute, even if the queue holds n+1
	b := NewBackupQueue(1)
	b.Push(Entry{Q: 1, Residual: 2, Sigma: 1, Pi: 1, Mu: 0.5})
	g, isr := b.Return(0.9)
	assert.Equal(t, 3.0, g)
	assert.Equal(t, 2.0, isr)

	b.Push(Entry{Q: 5, Residual: 100, Sigma: 1, Pi: 0, Mu: 1})
	g, isr = b.Return(0.9)
	assert.Equal(t, 3.0, g)
	assert.Equal(t, 2.0, isr)
}

func TestReturnLastEntryRatio(t *testing.T) {
	// The next action of a single entry is not taken by the target
	b := NewBackupQueue(1)
	b.Push(Entry{Q: 0, Residual: 1, Sigma: 1, Pi: 0, Mu: 0.5})
	_, isr := b.Return(0.9)
	assert.Equal(t, 0.0, isr)

	// Every entry in the window contributes its ratio
	b = NewBackupQueue(2)
	b.Push(Entry{Residual: 1, Sigma: 1, Pi: 1, Mu: 0.5})
	b.Push(Entry{Residual: 1, Sigma: 1, Pi: 1, Mu: 0.25})
	_, isr = b.Return(0.9)
	assert.InDelta(t, 8.0, isr, 1e-12)

	// Terminal entries contribute a factor of 1
	b = NewBackupQueue(2)
	b.Push(Entry{Residual: 1, Sigma: 1, Pi: 1, Mu: 0.5})
	b.Push(Entry{Residual: 1, Sigma: 1, Pi: 0, Mu: 1, Terminal: true})
	_, isr = b.Return(0.9)
	assert.InDelta(t, 2.0, isr, 1e-12)
}

func TestImportanceSamplingNeutral(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, sigma := range []float64{0, 0.25, 0.5, 1} {
		b := NewBackupQueue(4)
		for i := 0; i < 4; i++ {
			p := rng.Float64()*0.9 + 0.1
			b.Push(Entry{
				Q:        rng.NormFloat64(),
				Residual: rng.NormFloat64(),
				Sigma:    sigma,
				Pi:       p,
				Mu:       p,
			})
		}
		_, isr := b.Return(0.99)
		assert.InDelta(t, 1.0, isr, 1e-12, "sigma %v", sigma)
	}
}

func TestZeroBehaviourProbability(t *testing.T) {
	b := NewBackupQueue(2)
	b.Push(Entry{Residual: 1, Sigma: 1, Pi: 1, Mu: 0})
	b.Push(Entry{Residual: 1, Sigma: 1, Pi: 1, Mu: 1})
	_, isr := b.Return(1)
	assert.True(t, math.IsInf(isr, 1))
}
