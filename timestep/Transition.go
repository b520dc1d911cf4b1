package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ObservationType denotes how much of the environment state an
// Observation carries, and whether the state is terminal
type ObservationType int

const (
	Full ObservationType = iota
	Partial
	Terminal
)

func (o ObservationType) String() string {
	switch o {
	case Partial:
		return "Partial"
	case Terminal:
		return "Terminal"
	default:
		return "Full"
	}
}

// Observation is a state observed by a controller, tagged with its
// ObservationType
type Observation struct {
	Type  ObservationType
	State mat.Vector
}

// NewFull returns a fully observed, non-terminal Observation
func NewFull(s mat.Vector) Observation {
	return Observation{Full, s}
}

// NewPartial returns a partially observed, non-terminal Observation
func NewPartial(s mat.Vector) Observation {
	return Observation{Partial, s}
}

// NewTerminal returns a terminal Observation
func NewTerminal(s mat.Vector) Observation {
	return Observation{Terminal, s}
}

// IsTerminal returns whether the Observation is of a terminal state
func (o Observation) IsTerminal() bool {
	return o.Type == Terminal
}

// Transition is a single (s, a, r, s') step of experience. Transitions
// are owned by the caller and only borrowed by controllers for the
// duration of a single update.
type Transition struct {
	From   Observation
	Action int
	Reward float64
	To     Observation
}

// Terminated returns whether the transition ended in a terminal state
func (t Transition) Terminated() bool {
	return t.To.IsTerminal()
}

func (t Transition) String() string {
	return fmt.Sprintf("Transition | From: %v  |  Action: %d  |  "+
		"Reward: %.2f  |  To: %v", t.From.Type, t.Action, t.Reward, t.To.Type)
}

// NewTransition constructs the Transition taken from step to next by
// selecting action. The destination Observation is Terminal if and only
// if next is the last step of an episode.
func NewTransition(step TimeStep, action int, next TimeStep) Transition {
	return Transition{
		From:   NewFull(step.Observation),
		Action: action,
		Reward: next.Reward,
		To:     next.Observe(),
	}
}
