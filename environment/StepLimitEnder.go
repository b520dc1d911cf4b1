package environment

import "github.com/samuelfneumann/gotd/timestep"

// StepLimit is an Ender which truncates episodes after a fixed number
// of actions. A limit of 0 never ends an episode.
type StepLimit struct {
	episodeSteps int
}

// NewStepLimit returns a StepLimit which truncates episodes after
// episodeSteps actions
func NewStepLimit(episodeSteps int) StepLimit {
	if episodeSteps < 0 {
		panic("newStepLimit: negative episode steps")
	}
	return StepLimit{episodeSteps}
}

// End reports whether the episode containing t has reached the limit
func (s StepLimit) End(t timestep.TimeStep) bool {
	return s.episodeSteps > 0 && t.Number >= s.episodeSteps
}
