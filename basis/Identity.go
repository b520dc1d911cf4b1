package basis

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Identity is a Projector which uses the state itself as its features.
// Combined with one-hot state observations, a linear function over an
// Identity projection is a tabular function.
type Identity struct {
	dim  int
	bias bool
}

// NewIdentity returns a new Identity projector for states of dimension
// dim. If bias is true, a constant 1.0 feature is appended.
func NewIdentity(dim int, bias bool) *Identity {
	if dim <= 0 {
		panic(fmt.Sprintf("newIdentity: invalid state dimension %d", dim))
	}
	return &Identity{dim, bias}
}

// Project implements the Projector interface
func (i *Identity) Project(state mat.Vector) Features {
	if state.Len() != i.dim {
		panic(fmt.Sprintf("project: expected state of dimension %d, got %d",
			i.dim, state.Len()))
	}
	if !i.bias {
		return NewDense(state)
	}

	vec := mat.NewVecDense(i.dim+1, nil)
	vec.SliceVec(0, i.dim).(*mat.VecDense).CopyVec(state)
	vec.SetVec(i.dim, 1.0)
	return Dense{vec}
}

// Dim implements the Projector interface
func (i *Identity) Dim() int {
	if i.bias {
		return i.dim + 1
	}
	return i.dim
}
