// Package lstdq implements least-squares temporal difference learning
// of action values (LSTD-Q)
package lstdq

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotd/agent"
	"github.com/samuelfneumann/gotd/policy"
	"github.com/samuelfneumann/gotd/timestep"
	"github.com/samuelfneumann/gotd/valuefunc"
)

// Tolerance is the relative tolerance below which singular values are
// treated as zero when solving with the pseudo-inverse
const Tolerance float64 = 1e-10

// LSTDQ implements LSTD-Q over a linear action-value function. Each
// transition adds φ(s, a)(φ(s, a) - γφ(s', π(s')))ᵀ to A and rφ(s, a)
// to b, where π(s') is the mode of the target policy and φ(s') is 0
// at a terminal state. The weights of the action-value function are
// the solution w of Aw = b.
//
// Features φ(s, a) are the flattened gradients of the action-value
// function, so weight (i, j) is at index i*actions + j.
type LSTDQ struct {
	agent.Policies
	q        *valuefunc.Linear
	gamma    float64
	eta      float64
	interval int

	a       *mat.Dense
	b       *mat.VecDense
	samples int

	logger *slog.Logger
}

// New returns a new LSTDQ controller. A is initialized to eta times
// the identity matrix. If interval > 0, the weights are solved for
// online after every interval transitions; otherwise only Solve and
// HandleBatch change the weights.
func New(q *valuefunc.Linear, target, behaviour policy.Policy, gamma,
	eta float64, interval int) *LSTDQ {
	if gamma < 0 || gamma > 1 {
		panic(fmt.Sprintf("new: discount must be in [0, 1], got %v", gamma))
	}
	if eta < 0 {
		panic(fmt.Sprintf("new: regularization must be non-negative, "+
			"got %v", eta))
	}

	l := &LSTDQ{
		Policies: agent.Policies{Target: target, Behaviour: behaviour},
		q:        q,
		gamma:    gamma,
		eta:      eta,
		interval: interval,
		logger:   slog.Default(),
	}
	l.Reset()
	return l
}

// SetLogger sets the logger to which ignored solve errors are logged
func (l *LSTDQ) SetLogger(logger *slog.Logger) {
	l.logger = logger
}

// Reset discards all accumulated statistics
func (l *LSTDQ) Reset() {
	r, c := l.q.Weights().Dims()
	d := r * c

	l.a = mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		l.a.Set(i, i, l.eta)
	}
	l.b = mat.NewVecDense(d, nil)
	l.samples = 0
}

// Samples returns the number of transitions accumulated since the last
// Reset
func (l *LSTDQ) Samples() int {
	return l.samples
}

// features returns the flattened features of (state, action)
func (l *LSTDQ) features(state mat.Vector, action int) *mat.VecDense {
	r, c := l.q.Weights().Dims()
	phi := mat.NewVecDense(r*c, nil)
	l.q.Grad(state, action).Each(func(i, j int, v float64) {
		phi.SetVec(i*c+j, phi.AtVec(i*c+j)+v)
	})
	return phi
}

// accumulate adds a transition to the least-squares statistics
func (l *LSTDQ) accumulate(t timestep.Transition) {
	phi := l.features(t.From.State, t.Action)

	diff := mat.VecDenseCopyOf(phi)
	if !t.Terminated() {
		next := l.Target.Mode(t.To.State)
		diff.AddScaledVec(diff, -l.gamma, l.features(t.To.State, next))
	}

	var outer mat.Dense
	outer.Outer(1, phi, diff)
	l.a.Add(l.a, &outer)
	l.b.AddScaledVec(l.b, t.Reward, phi)
	l.samples++
}

// Solve solves for the weights of the action-value function. If A is
// singular, the minimum norm least-squares solution is used. The
// weights are left unchanged if an error is returned.
func (l *LSTDQ) Solve() error {
	if l.samples == 0 {
		return &SolveError{Op: "solve", Err: errNoSamples}
	}

	w := mat.NewVecDense(l.b.Len(), nil)
	if err := w.SolveVec(l.a, l.b); err != nil {
		l.logger.Debug("falling back to pseudo-inverse", "error", err)
		if w, err = l.pseudoInverse(); err != nil {
			return err
		}
	}

	for i := 0; i < w.Len(); i++ {
		if v := w.AtVec(i); math.IsNaN(v) || math.IsInf(v, 0) {
			return &SolveError{Op: "solve", Err: errNotFinite}
		}
	}

	weights := l.q.Weights()
	_, c := weights.Dims()
	for i := 0; i < w.Len(); i++ {
		weights.Set(i/c, i%c, w.AtVec(i))
	}
	return nil
}

// pseudoInverse returns the minimum norm least-squares solution of
// Aw = b
func (l *LSTDQ) pseudoInverse() (*mat.VecDense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(l.a, mat.SVDFull); !ok {
		return nil, &SolveError{Op: "pseudoInverse", Err: errFactorize}
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	values := svd.Values(nil)

	w := mat.NewVecDense(l.b.Len(), nil)
	if len(values) == 0 || values[0] == 0 {
		return w, nil
	}

	cutoff := values[0] * Tolerance
	for i, s := range values {
		if s <= cutoff {
			break
		}
		coeff := mat.Dot(u.ColView(i), l.b) / s
		w.AddScaledVec(w, coeff, v.ColView(i))
	}
	return w, nil
}

// HandleTransition implements the agent.Controller interface. Errors
// from online solves are logged and ignored.
func (l *LSTDQ) HandleTransition(t timestep.Transition) {
	l.accumulate(t)
	if l.interval > 0 && l.samples%l.interval == 0 {
		if err := l.Solve(); err != nil {
			l.logger.Debug("ignoring failed solve", "controller", "LSTDQ",
				"error", err)
		}
	}
}

// HandleSequence implements the agent.Controller interface
func (l *LSTDQ) HandleSequence(ts []timestep.Transition) {
	agent.HandleEach(l, ts)
}

// HandleBatch implements the agent.BatchLearner interface. All
// transitions are accumulated before the weights are solved for once.
func (l *LSTDQ) HandleBatch(ts []timestep.Transition) error {
	for _, t := range ts {
		l.accumulate(t)
	}
	return l.Solve()
}

// HandleTerminal implements the agent.Controller interface
func (l *LSTDQ) HandleTerminal() {}

// PredictV implements the agent.Controller interface
func (l *LSTDQ) PredictV(state mat.Vector) float64 {
	return agent.PredictV(l.q, l.Target, state)
}

// PredictQSA implements the agent.Controller interface
func (l *LSTDQ) PredictQSA(state mat.Vector, action int) float64 {
	return l.q.Evaluate(state, action)
}
