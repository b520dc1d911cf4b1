// Package esarsa implements the one-step Expected Sarsa algorithm
package esarsa

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotd/agent"
	"github.com/samuelfneumann/gotd/parameter"
	"github.com/samuelfneumann/gotd/policy"
	"github.com/samuelfneumann/gotd/timestep"
	"github.com/samuelfneumann/gotd/valuefunc"
)

// ESarsa implements the Expected Sarsa algorithm, which bootstraps off
// the expected action value under the target policy
type ESarsa struct {
	agent.Policies
	q      valuefunc.QFunction
	alpha  parameter.Parameter
	gamma  float64
	logger *slog.Logger
}

// New creates a new ESarsa controller
func New(q valuefunc.QFunction, target, behaviour policy.Policy,
	alpha parameter.Parameter, gamma float64) *ESarsa {
	if alpha.Value() <= 0 {
		panic(fmt.Sprintf("new: learning rate must be positive, got %v",
			alpha.Value()))
	}
	if gamma < 0 || gamma > 1 {
		panic(fmt.Sprintf("new: discount must be in [0, 1], got %v", gamma))
	}

	return &ESarsa{
		Policies: agent.Policies{Target: target, Behaviour: behaviour},
		q:        q,
		alpha:    alpha,
		gamma:    gamma,
		logger:   slog.Default(),
	}
}

// TdError returns the TD error of a transition
func (e *ESarsa) TdError(t timestep.Transition) float64 {
	target := t.Reward
	if !t.Terminated() {
		target += e.gamma * e.PredictV(t.To.State)
	}
	return target - e.q.Evaluate(t.From.State, t.Action)
}

// HandleTransition implements the agent.Controller interface
func (e *ESarsa) HandleTransition(t timestep.Transition) {
	delta := e.alpha.Value() * e.TdError(t)
	if err := e.q.Update(t.From.State, t.Action, delta); err != nil {
		e.logger.Debug("ignoring failed update", "controller", "ESarsa",
			"error", err)
	}
}

// HandleSequence implements the agent.Controller interface
func (e *ESarsa) HandleSequence(ts []timestep.Transition) {
	agent.HandleEach(e, ts)
}

// HandleTerminal implements the agent.Controller interface
func (e *ESarsa) HandleTerminal() {
	e.alpha.Step()
}

// PredictV implements the agent.Controller interface
func (e *ESarsa) PredictV(state mat.Vector) float64 {
	return agent.PredictV(e.q, e.Target, state)
}

// PredictQSA implements the agent.Controller interface
func (e *ESarsa) PredictQSA(state mat.Vector, action int) float64 {
	return e.q.Evaluate(state, action)
}
