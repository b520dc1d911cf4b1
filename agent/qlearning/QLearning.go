// Package qlearning implements the Q-Learning algorithm.
//
// The Q-Learning algorithm is a special case of the Expected Sarsa
// algorithm with a greedy target policy. This package implements the
// same functionality as the esarsa package with a greedy target, but
// bootstraps directly off the maximum action value.
package qlearning

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

// QLearning implements the one-step Q-Learning algorithm
type QLearning struct {
	agent.Policies
	q      valuefunc.QFunction
	alpha  parameter.Parameter
	gamma  float64
	logger *slog.Logger
}

// New creates a new QLearning controller. The target policy is greedy
// with respect to q.
func New(q valuefunc.QFunction, behaviour policy.Policy,
	alpha parameter.Parameter, gamma float64) *QLearning {
	if alpha.Value() <= 0 {
		panic(fmt.Sprintf("new: learning rate must be positive, got %v",
			alpha.Value()))
	}
	if gamma < 0 || gamma > 1 {
		panic(fmt.Sprintf("new: discount must be in [0, 1], got %v", gamma))
	}

	return &QLearning{
		Policies: agent.Policies{
			Target:    policy.NewGreedy(q),
			Behaviour: behaviour,
		},
		q:      q,
		alpha:  alpha,
		gamma:  gamma,
		logger: slog.Default(),
	}
}

// TdError returns the TD error of a transition
func (q *QLearning) TdError(t timestep.Transition) float64 {
	target := t.Reward
	if !t.Terminated() {
		_, max := valuefunc.FindMax(q.q.EvaluateAll(t.To.State))
		target += q.gamma * max
	}
	return target - q.q.Evaluate(t.From.State, t.Action)
}

// HandleTransition implements the agent.Controller interface
func (q *QLearning) HandleTransition(t timestep.Transition) {
	delta := q.alpha.Value() * q.TdError(t)
	if err := q.q.Update(t.From.State, t.Action, delta); err != nil {
		q.logger.Debug("ignoring failed update", "controller", "QLearning",
			"error", err)
	}
}

// HandleSequence implements the agent.Controller interface
func (q *QLearning) HandleSequence(ts []timestep.Transition) {
	agent.HandleEach(q, ts)
}

// HandleTerminal implements the agent.Controller interface
func (q *QLearning) HandleTerminal() {
	q.alpha.Step()
}

// PredictV implements the agent.Controller interface
func (q *QLearning) PredictV(state mat.Vector) float64 {
	_, max := valuefunc.FindMax(q.q.EvaluateAll(state))
	return max
}

// PredictQSA implements the agent.Controller interface
func (q *QLearning) PredictQSA(state mat.Vector, action int) float64 {
	return q.q.Evaluate(state, action)
}
