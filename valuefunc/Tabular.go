package valuefunc

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotd/gradient"
)

// Tabular is a tabular action-value function. States are represented
// by a vector of length 1 holding the index of the state.
type Tabular struct {
	weights *mat.Dense // states x actions
}

// NewTabular returns a new Tabular action-value function with all
// values initialized to 0
func NewTabular(states, actions int) *Tabular {
	if states <= 0 || actions <= 0 {
		panic(fmt.Sprintf("newTabular: invalid table size (%d x %d)",
			states, actions))
	}
	return &Tabular{mat.NewDense(states, actions, nil)}
}

// State returns the vector representation of state index i
func State(i int) mat.Vector {
	return mat.NewVecDense(1, []float64{float64(i)})
}

// Weights returns the table of action values
func (t *Tabular) Weights() *mat.Dense {
	return t.weights
}

// NumStates returns the number of states in the table
func (t *Tabular) NumStates() int {
	states, _ := t.weights.Dims()
	return states
}

// NumActions implements the ActionValuer interface
func (t *Tabular) NumActions() int {
	_, actions := t.weights.Dims()
	return actions
}

// Evaluate implements the QFunction interface
func (t *Tabular) Evaluate(state mat.Vector, action int) float64 {
	return t.weights.At(t.index(state), action)
}

// EvaluateAll implements the ActionValuer interface
func (t *Tabular) EvaluateAll(state mat.Vector) []float64 {
	return mat.Row(nil, t.index(state), t.weights)
}

// Update implements the QFunction interface
func (t *Tabular) Update(state mat.Vector, action int, err float64) error {
	i := t.index(state)
	t.weights.Set(i, action, t.weights.At(i, action)+err)
	return nil
}

// Grad implements the DifferentiableQ interface. The gradient of a
// table entry is one-hot.
func (t *Tabular) Grad(state mat.Vector, action int) gradient.Buffer {
	states, actions := t.weights.Dims()
	return gradient.NewTile(states, actions, action, []int{t.index(state)})
}

// UpdateGradScaled implements the DifferentiableQ interface
func (t *Tabular) UpdateGradScaled(grad gradient.Buffer, scale float64) {
	grad.AddTo(t.weights, scale)
}

// index returns the table row of a state
func (t *Tabular) index(state mat.Vector) int {
	if state.Len() != 1 {
		panic(fmt.Sprintf("tabular: states should be of length 1, got %d",
			state.Len()))
	}
	i := int(state.AtVec(0))
	if i < 0 || i >= t.NumStates() {
		panic(fmt.Sprintf("tabular: state %d out of range [0, %d)", i,
			t.NumStates()))
	}
	return i
}
