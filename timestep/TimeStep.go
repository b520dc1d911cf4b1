// Package timestep implements timesteps of the agent-environment
// interaction and the transitions that controllers learn from
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StepType is the position of a TimeStep within an episode
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	return [...]string{"First", "Mid", "Last"}[s]
}

// TimeStep is what an environment emits after a reset or an action:
// the reward for reaching Observation, the environment's discount, and
// the number of actions taken so far in the episode
type TimeStep struct {
	StepType    StepType
	Reward      float64
	Discount    float64
	Observation mat.Vector
	Number      int
}

// New returns a new TimeStep
func New(t StepType, r, d float64, o mat.Vector, n int) TimeStep {
	return TimeStep{
		StepType:    t,
		Reward:      r,
		Discount:    d,
		Observation: o,
		Number:      n,
	}
}

func (t TimeStep) First() bool { return t.StepType == First }
func (t TimeStep) Mid() bool   { return t.StepType == Mid }
func (t TimeStep) Last() bool  { return t.StepType == Last }

// Observe returns the TimeStep as a fully observed Observation, which
// is Terminal on the last step of an episode
func (t TimeStep) Observe() Observation {
	if t.Last() {
		return NewTerminal(t.Observation)
	}
	return NewFull(t.Observation)
}

func (t TimeStep) String() string {
	return fmt.Sprintf("TimeStep(%v, n=%d, r=%.2f, γ=%.2f)", t.StepType,
		t.Number, t.Reward, t.Discount)
}
