// Package expreplay implements experience replay buffers of
// transitions
package expreplay

import (
	"fmt"

	"github.com/samuelfneumann/gotd/timestep"
)

// Config implements a specific configuration of an ExperienceReplayer
type Config struct {
	SampleMethod      SelectorType `json:"SampleMethod" yaml:"SampleMethod"`
	SampleSize        int          `json:"SampleSize" yaml:"SampleSize"`
	MaxReplayCapacity int          `json:"MaxReplayCapacity" yaml:"MaxReplayCapacity"`
	MinReplayCapacity int          `json:"MinReplayCapacity" yaml:"MinReplayCapacity"`
}

// Create creates and returns the ExperienceReplayer with the specified
// Config.
func (c Config) Create(seed uint64) (ExperienceReplayer, error) {
	sampler, err := CreateSelector(c.SampleMethod, c.SampleSize, seed)
	if err != nil {
		return nil, fmt.Errorf("create: %v", err)
	}
	return New(sampler, c.MinReplayCapacity, c.MaxReplayCapacity)
}

// ExperienceReplayer implements an experience replay buffer
type ExperienceReplayer interface {
	// Add adds a transition to the buffer, removing the oldest
	// transition if the buffer is full
	Add(t timestep.Transition) error

	// Sample samples a batch of transitions from the buffer
	Sample() ([]timestep.Transition, error)

	// Capacity returns the current number of samples in the buffer
	Capacity() int

	// MaxCapacity returns the maximum allowable samples in the buffer
	MaxCapacity() int

	// MinCapacity returns the number of samples required to be in
	// the buffer before the buffer can be sampled
	MinCapacity() int

	// BatchSize returns the number of samples returned by Sample()
	BatchSize() int
}

// cache implements a concrete ExperienceReplayer as a ring buffer.
// Transitions are stored by value, so observations must not be
// modified after being added.
type cache struct {
	data  []timestep.Transition
	start int // Position of the oldest transition
	size  int

	sampler     Selector
	minCapacity int
}

// New creates and returns a new ExperienceReplayer. The sampler
// determines how data is sampled from the buffer. Data is removed from
// a full buffer first-in-first-out.
func New(sampler Selector, minCapacity,
	maxCapacity int) (ExperienceReplayer, error) {
	if minCapacity <= 0 {
		return nil, fmt.Errorf("new: minCapacity must be > 0")
	}
	if maxCapacity < minCapacity {
		return nil, fmt.Errorf("new: maxCapacity (%v) must be >= "+
			"minCapacity (%v)", maxCapacity, minCapacity)
	}
	if maxCapacity < sampler.BatchSize() {
		return nil, fmt.Errorf("new: cannot have batch size (%v) > max "+
			"buffer capacity (%v)", sampler.BatchSize(), maxCapacity)
	}

	return &cache{
		data:        make([]timestep.Transition, maxCapacity),
		sampler:     sampler,
		minCapacity: minCapacity,
	}, nil
}

// Add implements the ExperienceReplayer interface
func (c *cache) Add(t timestep.Transition) error {
	if c.size < len(c.data) {
		c.data[(c.start+c.size)%len(c.data)] = t
		c.size++
		return nil
	}

	c.data[c.start] = t
	c.start = (c.start + 1) % len(c.data)
	return nil
}

// Sample implements the ExperienceReplayer interface
func (c *cache) Sample() ([]timestep.Transition, error) {
	if c.size == 0 {
		return nil, &ExpReplayError{Op: "sample", Err: errEmptyCache}
	}
	if c.size < c.minCapacity {
		return nil, &ExpReplayError{Op: "sample", Err: errInsufficientSamples}
	}

	positions := c.sampler.choose(c.size)
	batch := make([]timestep.Transition, len(positions))
	for i, p := range positions {
		batch[i] = c.data[(c.start+p)%len(c.data)]
	}
	return batch, nil
}

// Capacity implements the ExperienceReplayer interface
func (c *cache) Capacity() int {
	return c.size
}

// MaxCapacity implements the ExperienceReplayer interface
func (c *cache) MaxCapacity() int {
	return len(c.data)
}

// MinCapacity implements the ExperienceReplayer interface
func (c *cache) MinCapacity() int {
	return c.minCapacity
}

// BatchSize implements the ExperienceReplayer interface
func (c *cache) BatchSize() int {
	return c.sampler.BatchSize()
}
