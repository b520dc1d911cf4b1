// Package qlambda implements Watkins's Q(λ) algorithm
package qlambda

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotd/agent"
	"github.com/samuelfneumann/gotd/parameter"
	"github.com/samuelfneumann/gotd/policy"
	"github.com/samuelfneumann/gotd/timestep"
	"github.com/samuelfneumann/gotd/trace"
	"github.com/samuelfneumann/gotd/valuefunc"
)

// QLambda implements Watkins's Q(λ). The target policy is greedy with
// respect to the action-value function. The trace is cut whenever the
// action taken was not greedy, since later TD errors no longer follow
// the target policy.
type QLambda struct {
	agent.Policies
	q      valuefunc.DifferentiableQ
	alpha  parameter.Parameter
	gamma  float64
	lambda float64
	rule   trace.Rule
	trace  *trace.Trace
}

// New returns a new Watkins Q(λ) controller
func New(q valuefunc.DifferentiableQ, behaviour policy.Policy,
	rule trace.Rule, alpha parameter.Parameter,
	gamma, lambda float64) *QLambda {
	if alpha.Value() <= 0 {
		panic(fmt.Sprintf("new: learning rate must be positive, got %v",
			alpha.Value()))
	}
	if gamma < 0 || gamma > 1 {
		panic(fmt.Sprintf("new: discount must be in [0, 1], got %v", gamma))
	}
	if lambda < 0 || lambda > 1 {
		panic(fmt.Sprintf("new: lambda must be in [0, 1], got %v", lambda))
	}
	if rule == nil {
		panic("new: trace rule cannot be nil")
	}

	return &QLambda{
		Policies: agent.Policies{
			Target:    policy.NewGreedy(q),
			Behaviour: behaviour,
		},
		q:      q,
		alpha:  alpha,
		gamma:  gamma,
		lambda: lambda,
		rule:   rule,
	}
}

// Trace returns the eligibility trace of the controller, or nil if no
// transition has been handled yet
func (c *QLambda) Trace() *trace.Trace {
	return c.trace
}

// Greedy returns whether action is greedy in state
func (c *QLambda) Greedy(state mat.Vector, action int) bool {
	for _, a := range valuefunc.Argmaxima(c.q.EvaluateAll(state)) {
		if a == action {
			return true
		}
	}
	return false
}

// HandleTransition implements the agent.Controller interface
func (c *QLambda) HandleTransition(t timestep.Transition) {
	state, action := t.From.State, t.Action
	grad := c.q.Grad(state, action)
	if c.trace == nil {
		r, cols := grad.Dims()
		c.trace = trace.New(r, cols, c.rule)
	}

	delta := t.Reward - c.q.Evaluate(state, action)
	if !t.Terminated() {
		delta += c.gamma * c.PredictV(t.To.State)
	}

	rate := c.gamma * c.lambda
	if !c.Greedy(state, action) {
		rate = 0
	}
	c.trace.Decay(rate, grad)
	c.q.UpdateGradScaled(c.trace.Buffer(), c.alpha.Value()*delta)

	if t.Terminated() {
		c.trace.Reset()
	}
}

// HandleSequence implements the agent.Controller interface
func (c *QLambda) HandleSequence(ts []timestep.Transition) {
	agent.HandleEach(c, ts)
}

// HandleTerminal implements the agent.Controller interface
func (c *QLambda) HandleTerminal() {
	c.alpha.Step()
	if c.trace != nil {
		c.trace.Reset()
	}
}

// PredictV implements the agent.Controller interface
func (c *QLambda) PredictV(state mat.Vector) float64 {
	_, max := valuefunc.FindMax(c.q.EvaluateAll(state))
	return max
}

// PredictQSA implements the agent.Controller interface
func (c *QLambda) PredictQSA(state mat.Vector, action int) float64 {
	return c.q.Evaluate(state, action)
}
