// Package qsigma implements the n-step Q(σ) algorithm, which unifies
// n-step SARSA (σ = 1), Expected SARSA and Tree Backup (σ = 0) through
// a continuous degree of sampling σ
package qsigma

import (
	"fmt"
	"log/slog"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotd/agent"
	"github.com/samuelfneumann/gotd/parameter"
	"github.com/samuelfneumann/gotd/policy"
	"github.com/samuelfneumann/gotd/timestep"
	"github.com/samuelfneumann/gotd/valuefunc"
)

// QSigma implements the off-policy n-step Q(σ) algorithm.
//
// Each transition produces one backup Entry. Once n entries have been
// queued, the oldest entry is consumed: its state-action value is moved
// towards the n-step σ-return, weighted by the importance sampling
// ratio. At a terminal transition the bounded-size rule is applied one
// final time and the rest of the queue is discarded.
type QSigma struct {
	agent.Policies
	q      valuefunc.QFunction
	alpha  parameter.Parameter
	gamma  float64
	sigma  float64
	backup *BackupQueue

	rng    *rand.Rand
	logger *slog.Logger
}

// New returns a new QSigma controller which owns the action-value
// function q. The target policy may read q; the controller is the only
// writer. Actions at the next state are sampled from the behaviour
// policy using a source seeded with seed.
func New(q valuefunc.QFunction, target, behaviour policy.Policy,
	alpha parameter.Parameter, gamma, sigma float64, n int,
	seed uint64) *QSigma {
	if err := validate(alpha.Value(), gamma, sigma, n); err != nil {
		panic(fmt.Sprintf("new: %v", err))
	}

	return &QSigma{
		Policies: agent.Policies{Target: target, Behaviour: behaviour},
		q:        q,
		alpha:    alpha,
		gamma:    gamma,
		sigma:    sigma,
		backup:   NewBackupQueue(n),
		rng:      rand.New(rand.NewSource(seed)),
		logger:   slog.Default(),
	}
}

// SetLogger sets the logger to which ignored update errors are logged
func (c *QSigma) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

// QFunction returns the action-value function of the controller
func (c *QSigma) QFunction() valuefunc.QFunction {
	return c.q
}

// Pending returns the number of transitions whose backups have not yet
// been consumed
func (c *QSigma) Pending() int {
	return c.backup.Len()
}

// HandleTransition implements the agent.Controller interface
func (c *QSigma) HandleTransition(t timestep.Transition) {
	s, a := t.From.State, t.Action
	q := c.q.Evaluate(s, a)

	if t.Terminated() {
		c.push(Entry{
			State:    s,
			Action:   a,
			Q:        q,
			Residual: t.Reward - q,
			Sigma:    c.sigma,
			Pi:       0,
			Mu:       1,
			Terminal: true,
		})
		c.backup.Clear()
		return
	}

	ns := t.To.State
	na := c.Behaviour.Sample(c.rng, ns)
	nqs := c.q.EvaluateAll(ns)

	target := policy.Distribution(c.Target, ns, len(nqs))
	expected := agent.ExpectedValue(target, nqs)
	bootstrap := c.sigma*nqs[na] + (1-c.sigma)*expected

	c.push(Entry{
		State:    s,
		Action:   a,
		Q:        q,
		Residual: t.Reward + c.gamma*bootstrap - q,
		Sigma:    c.sigma,
		Pi:       target[na],
		Mu:       c.Behaviour.Probability(ns, na),
	})
}

// HandleSequence implements the agent.Controller interface
func (c *QSigma) HandleSequence(ts []timestep.Transition) {
	agent.HandleEach(c, ts)
}

// HandleTerminal implements the agent.Controller interface. Backups of
// an episode which was cut off before reaching a terminal state are
// discarded.
func (c *QSigma) HandleTerminal() {
	c.alpha.Step()
	c.backup.Clear()
}

// PredictV implements the agent.Controller interface
func (c *QSigma) PredictV(state mat.Vector) float64 {
	return agent.PredictV(c.q, c.Target, state)
}

// PredictQSA implements the agent.Controller interface
func (c *QSigma) PredictQSA(state mat.Vector, action int) float64 {
	return c.q.Evaluate(state, action)
}

// push adds an entry to the backup queue and consumes the oldest entry
// if the queue has reached the backup horizon
func (c *QSigma) push(e Entry) {
	c.backup.Push(e)
	if c.backup.Ready() {
		c.consume()
	}
}

// consume updates the value of the oldest entry towards its σ-return
// and removes it from the queue. Errors from the value function are
// logged and otherwise ignored.
func (c *QSigma) consume() {
	g, isr := c.backup.Return(c.gamma)
	e := c.backup.Pop()

	delta := c.alpha.Value() * isr * (g - c.q.Evaluate(e.State, e.Action))
	if err := c.q.Update(e.State, e.Action, delta); err != nil {
		c.logger.Debug("ignoring failed update", "controller", "QSigma",
			"action", e.Action, "error", err)
	}
}

func validate(alpha, gamma, sigma float64, n int) error {
	if alpha <= 0 {
		return fmt.Errorf("learning rate must be positive, got %v", alpha)
	}
	if gamma < 0 || gamma > 1 {
		return fmt.Errorf("discount must be in [0, 1], got %v", gamma)
	}
	if sigma < 0 || sigma > 1 {
		return fmt.Errorf("sigma must be in [0, 1], got %v", sigma)
	}
	if n < 1 {
		return fmt.Errorf("number of steps must be at least 1, got %d", n)
	}
	return nil
}
