// Package greedygq implements the GreedyGQ algorithm, an off-policy
// gradient temporal difference control algorithm for linear function
// approximation
package greedygq

import (
	"fmt"
	"log/slog"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotd/agent"
	"github.com/samuelfneumann/gotd/gradient"
	"github.com/samuelfneumann/gotd/parameter"
	"github.com/samuelfneumann/gotd/policy"
	"github.com/samuelfneumann/gotd/timestep"
	"github.com/samuelfneumann/gotd/valuefunc"
)

// GreedyGQ implements the GreedyGQ algorithm.
//
// Alongside the primary action-value function Q, GreedyGQ maintains a
// secondary function W which estimates the expected TD error in each
// state. W is used to correct the bias of bootstrapping off-policy:
// each update of Q follows the direction
//
//	Δ = δ ∇Q(s, a) - γ W(s) ∇Q(s', a')
//
// where a' is sampled from the target policy.
type GreedyGQ struct {
	agent.Policies
	q     valuefunc.DifferentiableQ
	w     valuefunc.VFunction
	alpha parameter.Parameter
	beta  parameter.Parameter
	gamma float64

	rng    *rand.Rand
	logger *slog.Logger
}

// New returns a new GreedyGQ controller. The step size of the primary
// function q is alpha. The step size of the secondary function w is
// alpha * beta, where beta is typically small.
func New(q valuefunc.DifferentiableQ, w valuefunc.VFunction, target,
	behaviour policy.Policy, alpha, beta parameter.Parameter, gamma float64,
	seed uint64) *GreedyGQ {
	if err := validate(alpha.Value(), beta.Value(), gamma); err != nil {
		panic(fmt.Sprintf("new: %v", err))
	}

	return &GreedyGQ{
		Policies: agent.Policies{Target: target, Behaviour: behaviour},
		q:        q,
		w:        w,
		alpha:    alpha,
		beta:     beta,
		gamma:    gamma,
		rng:      rand.New(rand.NewSource(seed)),
		logger:   slog.Default(),
	}
}

// SetLogger sets the logger to which ignored update errors are logged
func (g *GreedyGQ) SetLogger(logger *slog.Logger) {
	g.logger = logger
}

// HandleTransition implements the agent.Controller interface
func (g *GreedyGQ) HandleTransition(t timestep.Transition) {
	s, a := t.From.State, t.Action
	alpha := g.alpha.Value()

	estimate := g.w.Evaluate(s)
	qsa := g.q.Evaluate(s, a)

	var residual float64
	if t.Terminated() {
		residual = t.Reward - qsa
		g.ignore("Q", g.q.Update(s, a, alpha*residual))
	} else {
		ns := t.To.State
		na := g.Target.Sample(g.rng, ns)
		residual = t.Reward + g.gamma*g.q.Evaluate(ns, na) - qsa

		correction := estimate * g.gamma
		update := gradient.Merge(g.q.Grad(s, a), g.q.Grad(ns, na),
			func(x, y float64) float64 {
				return residual*x - correction*y
			})
		g.q.UpdateGradScaled(update, alpha)
	}

	g.ignore("W", g.w.Update(s, alpha*g.beta.Value()*(residual-estimate)))
}

// HandleSequence implements the agent.Controller interface
func (g *GreedyGQ) HandleSequence(ts []timestep.Transition) {
	agent.HandleEach(g, ts)
}

// HandleTerminal implements the agent.Controller interface
func (g *GreedyGQ) HandleTerminal() {
	g.alpha.Step()
	g.beta.Step()
}

// PredictV implements the agent.Controller interface
func (g *GreedyGQ) PredictV(state mat.Vector) float64 {
	return agent.PredictV(g.q, g.Target, state)
}

// PredictQSA implements the agent.Controller interface
func (g *GreedyGQ) PredictQSA(state mat.Vector, action int) float64 {
	return g.q.Evaluate(state, action)
}

// Correction returns the estimate of the secondary function in state
func (g *GreedyGQ) Correction(state mat.Vector) float64 {
	return g.w.Evaluate(state)
}

func (g *GreedyGQ) ignore(function string, err error) {
	if err != nil {
		g.logger.Debug("ignoring failed update", "controller", "GreedyGQ",
			"function", function, "error", err)
	}
}

func validate(alpha, beta, gamma float64) error {
	if alpha <= 0 {
		return fmt.Errorf("learning rate must be positive, got %v", alpha)
	}
	if beta < 0 {
		return fmt.Errorf("beta must be non-negative, got %v", beta)
	}
	if gamma < 0 || gamma > 1 {
		return fmt.Errorf("discount must be in [0, 1], got %v", gamma)
	}
	return nil
}
