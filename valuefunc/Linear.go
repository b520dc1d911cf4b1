package valuefunc

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotd/basis"
	"github.com/samuelfneumann/gotd/gradient"
)

// Linear is an action-value function which is linear in the features
// of a basis.Projector. Each action has its own column of weights.
type Linear struct {
	projector basis.Projector
	weights   *mat.Dense // features x actions
}

// NewLinear returns a new Linear action-value function with weights
// initialized to 0
func NewLinear(p basis.Projector, actions int) *Linear {
	if actions <= 0 {
		panic(fmt.Sprintf("newLinear: invalid number of actions %d", actions))
	}
	return &Linear{p, mat.NewDense(p.Dim(), actions, nil)}
}

// Projector returns the feature projector of the function
func (l *Linear) Projector() basis.Projector {
	return l.projector
}

// Weights returns the weights of the function
func (l *Linear) Weights() *mat.Dense {
	return l.weights
}

// SetWeights copies w into the weights of the function
func (l *Linear) SetWeights(w mat.Matrix) error {
	r, c := w.Dims()
	wr, wc := l.weights.Dims()
	if r != wr || c != wc {
		return fmt.Errorf("setWeights: expected weights of shape (%d x %d), "+
			"got (%d x %d)", wr, wc, r, c)
	}
	l.weights.Copy(w)
	return nil
}

// Initialize initializes the weights of the function
func (l *Linear) Initialize(init Initializer) {
	init.Initialize(l.weights)
}

// NumActions implements the ActionValuer interface
func (l *Linear) NumActions() int {
	_, actions := l.weights.Dims()
	return actions
}

// Evaluate implements the QFunction interface
func (l *Linear) Evaluate(state mat.Vector, action int) float64 {
	return l.projector.Project(state).Dot(l.weights.ColView(action))
}

// EvaluateAll implements the ActionValuer interface
func (l *Linear) EvaluateAll(state mat.Vector) []float64 {
	features := l.projector.Project(state)

	values := make([]float64, l.NumActions())
	for a := range values {
		values[a] = features.Dot(l.weights.ColView(a))
	}
	return values
}

// Update implements the QFunction interface, performing a semi-gradient
// update of the weights of action
func (l *Linear) Update(state mat.Vector, action int, err float64) error {
	l.Grad(state, action).AddTo(l.weights, err)
	return nil
}

// Grad implements the DifferentiableQ interface
func (l *Linear) Grad(state mat.Vector, action int) gradient.Buffer {
	return l.projector.Project(state).Gradient(l.NumActions(), action)
}

// UpdateGradScaled implements the DifferentiableQ interface
func (l *Linear) UpdateGradScaled(grad gradient.Buffer, scale float64) {
	grad.AddTo(l.weights, scale)
}

// LinearV is a state-value function which is linear in the features of
// a basis.Projector
type LinearV struct {
	projector basis.Projector
	weights   *mat.Dense // features x 1
}

// NewLinearV returns a new LinearV with weights initialized to 0
func NewLinearV(p basis.Projector) *LinearV {
	return &LinearV{p, mat.NewDense(p.Dim(), 1, nil)}
}

// Weights returns the weights of the function as a single column
func (l *LinearV) Weights() *mat.Dense {
	return l.weights
}

// Initialize initializes the weights of the function
func (l *LinearV) Initialize(init Initializer) {
	init.Initialize(l.weights)
}

// Evaluate implements the VFunction interface
func (l *LinearV) Evaluate(state mat.Vector) float64 {
	return l.projector.Project(state).Dot(l.weights.ColView(0))
}

// Update implements the VFunction interface
func (l *LinearV) Update(state mat.Vector, err float64) error {
	l.Grad(state).AddTo(l.weights, err)
	return nil
}

// Grad implements the DifferentiableV interface
func (l *LinearV) Grad(state mat.Vector) gradient.Buffer {
	return l.projector.Project(state).Gradient(1, 0)
}

// UpdateGradScaled implements the DifferentiableV interface
func (l *LinearV) UpdateGradScaled(grad gradient.Buffer, scale float64) {
	grad.AddTo(l.weights, scale)
}
