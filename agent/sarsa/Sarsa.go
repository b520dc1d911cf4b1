// Package sarsa implements the Sarsa(λ) algorithm with eligibility
// traces
package sarsa

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotd/agent"
	"github.com/samuelfneumann/gotd/parameter"
	"github.com/samuelfneumann/gotd/policy"
	"github.com/samuelfneumann/gotd/timestep"
	"github.com/samuelfneumann/gotd/trace"
	"github.com/samuelfneumann/gotd/valuefunc"
)

// Sarsa implements the on-policy Sarsa(λ) algorithm. The target and
// behaviour policies are the same policy.
//
// Each transition is learned from as soon as it is handled, so the
// bootstrap action a' at s' is sampled by the controller from the
// behaviour policy with its own source. It is not the action that the
// driver takes next, which is only known at the following transition.
// In expectation over a' the update is the same as Sarsa(λ).
//
// The trace is shaped like the gradient of the action-value function
// and is created on the first transition.
type Sarsa struct {
	agent.Policies
	q      valuefunc.DifferentiableQ
	alpha  parameter.Parameter
	gamma  float64
	lambda float64
	rule   trace.Rule
	trace  *trace.Trace
	rng    *rand.Rand
}

// New returns a new Sarsa(λ) controller. Next actions used for
// bootstrapping are sampled from behaviour with a source seeded by
// seed.
func New(q valuefunc.DifferentiableQ, behaviour policy.Policy,
	rule trace.Rule, alpha parameter.Parameter, gamma, lambda float64,
	seed uint64) *Sarsa {
	if err := validate(alpha.Value(), gamma, lambda); err != nil {
		panic(fmt.Sprintf("new: %v", err))
	}
	if rule == nil {
		panic("new: trace rule cannot be nil")
	}

	return &Sarsa{
		Policies: agent.Policies{Target: behaviour, Behaviour: behaviour},
		q:        q,
		alpha:    alpha,
		gamma:    gamma,
		lambda:   lambda,
		rule:     rule,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Trace returns the eligibility trace of the controller, or nil if no
// transition has been handled yet
func (s *Sarsa) Trace() *trace.Trace {
	return s.trace
}

// HandleTransition implements the agent.Controller interface
func (s *Sarsa) HandleTransition(t timestep.Transition) {
	state, action := t.From.State, t.Action
	grad := s.q.Grad(state, action)
	if s.trace == nil {
		r, c := grad.Dims()
		s.trace = trace.New(r, c, s.rule)
	}

	delta := t.Reward - s.q.Evaluate(state, action)
	if !t.Terminated() {
		next := s.Behaviour.Sample(s.rng, t.To.State)
		delta += s.gamma * s.q.Evaluate(t.To.State, next)
	}

	s.trace.Decay(s.gamma*s.lambda, grad)
	s.q.UpdateGradScaled(s.trace.Buffer(), s.alpha.Value()*delta)

	if t.Terminated() {
		s.trace.Reset()
	}
}

// HandleSequence implements the agent.Controller interface
func (s *Sarsa) HandleSequence(ts []timestep.Transition) {
	agent.HandleEach(s, ts)
}

// HandleTerminal implements the agent.Controller interface
func (s *Sarsa) HandleTerminal() {
	s.alpha.Step()
	if s.trace != nil {
		s.trace.Reset()
	}
}

// PredictV implements the agent.Controller interface
func (s *Sarsa) PredictV(state mat.Vector) float64 {
	return agent.PredictV(s.q, s.Target, state)
}

// PredictQSA implements the agent.Controller interface
func (s *Sarsa) PredictQSA(state mat.Vector, action int) float64 {
	return s.q.Evaluate(state, action)
}

func validate(alpha, gamma, lambda float64) error {
	if alpha <= 0 {
		return fmt.Errorf("learning rate must be positive, got %v", alpha)
	}
	if gamma < 0 || gamma > 1 {
		return fmt.Errorf("discount must be in [0, 1], got %v", gamma)
	}
	if lambda < 0 || lambda > 1 {
		return fmt.Errorf("lambda must be in [0, 1], got %v", lambda)
	}
	return nil
}
