// Package agent defines the interface of controllers, the learning
// algorithms which consume transitions and update value functions, as
// well as configurations from which controllers are constructed
package agent

import (
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotd/timestep"
)

// Controller determines the implementation details of a control
// algorithm.
//
// A Controller owns a value function, a target policy, and a behaviour
// policy. Transitions are fed to the Controller one at a time by an
// external driver. A Controller's target policy may read the
// Controller's value function, but only the Controller writes to it.
// Controllers are not safe for concurrent use.
type Controller interface {
	Handler
	Predictor
	Sampler
}

// Handler handles experience
type Handler interface {
	// HandleTransition updates the controller given a single
	// transition
	HandleTransition(t timestep.Transition)

	// HandleSequence handles a sequence of transitions in order
	HandleSequence(ts []timestep.Transition)

	// HandleTerminal performs housekeeping at the end of an episode,
	// such as stepping decaying parameters and resetting traces
	HandleTerminal()
}

// Predictor makes value predictions
type Predictor interface {
	PredictV(state mat.Vector) float64
	PredictQSA(state mat.Vector, action int) float64
}

// BatchLearner learns from a batch of transitions at once
type BatchLearner interface {
	HandleBatch(ts []timestep.Transition) error
}

// HandleEach calls h.HandleTransition for each transition in ts in
// order
func HandleEach(h Handler, ts []timestep.Transition) {
	for _, t := range ts {
		h.HandleTransition(t)
	}
}
