// Package environment outlines the interfaces and structs needed to
// implement concrete environments which drive controllers
package environment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotd/timestep"
)

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() mat.Vector
}

// Ender determines whether an episode should be cut off at a timestep.
// Episodes which are cut off are truncated, not terminated: the last
// state is not a terminal state.
type Ender interface {
	End(t timestep.TimeStep) bool
}

// Spec describes the observations of an environment
type Spec struct {
	Dim        int
	LowerBound mat.Vector
	UpperBound mat.Vector
}

// NewSpec constructs a new observation specification
func NewSpec(lowerBound, upperBound mat.Vector) Spec {
	if lowerBound.Len() != upperBound.Len() {
		panic(fmt.Sprintf("lower bounds length %v must match upper "+
			"bounds length %v", lowerBound.Len(), upperBound.Len()))
	}
	return Spec{lowerBound.Len(), lowerBound, upperBound}
}

// Environment implements a simulated environment with discrete actions
type Environment interface {
	// Reset resets the environment between episodes and returns the
	// first step of the next episode
	Reset() timestep.TimeStep

	// Step takes an action in the environment, returning the next step
	// and whether that step is the last of the episode
	Step(action int) (timestep.TimeStep, bool)

	ObservationSpec() Spec
	NumActions() int
}
