package qsigma

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Entry is a partial backup of a single transition (s, a, r, s'). Pi
// and Mu are the probabilities of the next action a' at s' under the
// target and behaviour policies.
type Entry struct {
	State    mat.Vector
	Action   int
	Q        float64
	Residual float64
	Sigma    float64
	Pi       float64
	Mu       float64
	Terminal bool
}

// BackupQueue is a bounded FIFO queue of backup entries with capacity
// n + 1, where n is the backup horizon
type BackupQueue struct {
	entries []Entry
	n       int
}

// NewBackupQueue returns a new, empty BackupQueue with horizon n
func NewBackupQueue(n int) *BackupQueue {
	if n < 1 {
		panic(fmt.Sprintf("newBackupQueue: horizon must be at least 1, "+
			"got %d", n))
	}
	return &BackupQueue{make([]Entry, 0, n+1), n}
}

// Len returns the number of entries in the queue
func (b *BackupQueue) Len() int {
	return len(b.entries)
}

// Horizon returns the backup horizon n of the queue
func (b *BackupQueue) Horizon() int {
	return b.n
}

// Ready returns whether the queue holds at least n entries, at which
// point the oldest entry should be consumed
func (b *BackupQueue) Ready() bool {
	return len(b.entries) >= b.n
}

// Push adds an entry to the back of the queue
func (b *BackupQueue) Push(e Entry) {
	if len(b.entries) > b.n {
		panic(fmt.Sprintf("push: backup queue is full with %d entries",
			len(b.entries)))
	}
	b.entries = append(b.entries, e)
}

// Front returns the oldest entry in the queue
func (b *BackupQueue) Front() Entry {
	if len(b.entries) == 0 {
		panic("front: backup queue is empty")
	}
	return b.entries[0]
}

// Pop removes and returns the oldest entry in the queue
func (b *BackupQueue) Pop() Entry {
	e := b.Front()
	last := len(b.entries) - 1
	copy(b.entries, b.entries[1:])
	b.entries[last] = Entry{}
	b.entries = b.entries[:last]
	return e
}

// Clear removes all entries from the queue
func (b *BackupQueue) Clear() {
	for i := range b.entries {
		b.entries[i] = Entry{}
	}
	b.entries = b.entries[:0]
}

// Return computes the σ-return g and the importance sampling ratio
// isr of the oldest entry over the first min(n, Len()) entries.
//
// With e the entries of the queue and m = min(n, Len()):
//
//	g = e[0].Q + Σ_{k<m} z_k e[k].Residual
//	z_0 = 1,  z_{k+1} = z_k γ((1 - e[k+1].Sigma) e[k+1].Pi + e[k+1].Sigma)
//	isr = Π_{k<m} (1 - e[k].Sigma + e[k].Sigma e[k].Pi / e[k].Mu)
//
// The ratio of an entry corrects for the next action a' sampled at its
// s', which bootstraps the entry's own residual. Terminal entries have
// no next action and contribute a factor of 1. No guard is placed on
// Mu: a behaviour probability of 0 yields an infinite or NaN ratio.
func (b *BackupQueue) Return(gamma float64) (g, isr float64) {
	m := len(b.entries)
	if m > b.n {
		m = b.n
	}
	if m == 0 {
		panic("return: backup queue is empty")
	}

	g, isr = b.entries[0].Q, 1.0
	z := 1.0
	for k := 0; k < m; k++ {
		current := b.entries[k]
		g += z * current.Residual

		if !current.Terminal {
			isr *= 1 - current.Sigma + current.Sigma*current.Pi/current.Mu
		}

		if k+1 >= m {
			break
		}
		next := b.entries[k+1]
		z *= gamma * ((1-next.Sigma)*next.Pi + next.Sigma)
	}
	return g, isr
}
