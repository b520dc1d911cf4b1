package expreplay

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// SelectorType names a Selector
type SelectorType string

const (
	Uniform SelectorType = "Uniform"
	Fifo    SelectorType = "Fifo"
)

// Selector implements functionality for choosing how data should be
// sampled from an experience replay buffer
type Selector interface {
	// choose selects the positions at which data should be sampled
	// from a buffer holding size elements, where position 0 holds
	// the oldest element
	choose(size int) []int

	// BatchSize returns the number of elements that will be selected
	BatchSize() int
}

// CreateSelector returns the Selector of type t
func CreateSelector(t SelectorType, samples int,
	seed uint64) (Selector, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("createSelector: batch size must be "+
			"positive, got %d", samples)
	}

	switch t {
	case Uniform, "":
		return NewUniformSelector(samples, seed), nil
	case Fifo:
		return NewFifoSelector(samples), nil
	}
	return nil, fmt.Errorf("createSelector: no such selector %q", t)
}

// uniformSelector is a Selector which selects data from an experience
// replay buffer uniformly randomly, with replacement
type uniformSelector struct {
	samples int
	rng     *rand.Rand
}

// NewUniformSelector returns a new Selector which selects data uniformly
// randomly from an experience replay buffer
func NewUniformSelector(samples int, seed uint64) Selector {
	return &uniformSelector{
		samples: samples,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// BatchSize implements the Selector interface
func (u *uniformSelector) BatchSize() int {
	return u.samples
}

func (u *uniformSelector) choose(size int) []int {
	selected := make([]int, u.samples)
	for i := range selected {
		selected[i] = u.rng.Intn(size)
	}
	return selected
}

// fifoSelector is a Selector which selects the oldest data from an
// experience replay buffer
type fifoSelector struct {
	samples int
}

// NewFifoSelector returns a new Selector which selects the oldest data
// in an experience replay buffer, in the order it was added
func NewFifoSelector(samples int) Selector {
	return &fifoSelector{samples: samples}
}

// BatchSize implements the Selector interface
func (f *fifoSelector) BatchSize() int {
	return f.samples
}

func (f *fifoSelector) choose(size int) []int {
	n := f.samples
	if size < n {
		n = size
	}

	selected := make([]int, n)
	for i := range selected {
		selected[i] = i
	}
	return selected
}
