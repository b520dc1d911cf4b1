package agent

import (
	"github.com/samuelfneumann/gotd/basis"
	"github.com/samuelfneumann/gotd/environment"
	"github.com/samuelfneumann/gotd/valuefunc"
)

// NewLinearQ returns a linear action-value function over the
// observations of env with weights initialized to 0. If tilings is
// empty, observations are used as features directly with an added
// bias unit. Otherwise, observations are tile coded with one tiling
// per element of tilings, each giving the number of tiles along each
// dimension of the observations.
func NewLinearQ(env environment.Environment, tilings [][]int,
	seed uint64) *valuefunc.Linear {
	return valuefunc.NewLinear(newProjector(env, tilings, seed),
		env.NumActions())
}

// NewLinearV returns a linear state-value function over the
// observations of env, with features constructed as for NewLinearQ
func NewLinearV(env environment.Environment, tilings [][]int,
	seed uint64) *valuefunc.LinearV {
	return valuefunc.NewLinearV(newProjector(env, tilings, seed))
}

func newProjector(env environment.Environment, tilings [][]int,
	seed uint64) basis.Projector {
	spec := env.ObservationSpec()
	if len(tilings) == 0 {
		return basis.NewIdentity(spec.Dim, true)
	}
	return basis.NewTileCoding(spec.LowerBound, spec.UpperBound, tilings,
		seed, true)
}
