// Package gridworld implements 2D gridworld environments
package gridworld

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotd/environment"
	"github.com/samuelfneumann/gotd/timestep"
)

// Actions in a GridWorld
const (
	Left int = iota
	Right
	Up
	Down
)

// NumActions is the number of actions in a GridWorld
const NumActions int = 4

// GridWorld represents a gridworld environment
//
// A gridworld is represented as a flattened matrix, but in this
// implementation only the matrix dimensions and current agent position
// are tracked. Cell (x, y) has index y*cols + x, and observations are
// one-hot encodings of the current cell.
type GridWorld struct {
	environment.Starter
	r, c     int
	goals    map[int]bool
	position int

	stepReward  float64
	goalReward  float64
	discount    float64
	currentStep timestep.TimeStep
}

// New creates a new gridworld with r rows and c columns. Episodes
// start in the cell whose index is sampled from s and end when one of
// the goal cells is reached. Every step is rewarded with stepReward,
// except for steps which enter a goal cell, which are rewarded with
// goalReward.
func New(r, c int, goals []int, s environment.Starter, stepReward,
	goalReward, discount float64) (*GridWorld, error) {
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("new: invalid grid size (%d x %d)", r, c)
	}
	if len(goals) == 0 {
		return nil, fmt.Errorf("new: at least one goal is needed")
	}

	goalSet := make(map[int]bool, len(goals))
	for _, goal := range goals {
		if goal < 0 || goal >= r*c {
			return nil, fmt.Errorf("new: goal %d out of range [0, %d)",
				goal, r*c)
		}
		goalSet[goal] = true
	}

	g := &GridWorld{
		Starter:    s,
		r:          r,
		c:          c,
		goals:      goalSet,
		stepReward: stepReward,
		goalReward: goalReward,
		discount:   discount,
	}
	g.Reset()
	return g, nil
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.r, g.c
}

// At checks the value at position (i, j) in the gridworld. A value of
// 1.0 indicates that the agent is at position (i, j).
func (g *GridWorld) At(i, j int) float64 {
	if (i*g.c)+j == g.position {
		return 1.0
	}
	return 0.0
}

// Reset resets the environment to a starting state
func (g *GridWorld) Reset() timestep.TimeStep {
	start := int(g.Start().AtVec(0))
	if start < 0 || start >= g.r*g.c {
		panic(fmt.Sprintf("reset: start state %d out of range [0, %d)",
			start, g.r*g.c))
	}
	g.position = start

	startStep := timestep.New(timestep.First, 0, g.discount,
		g.observation(), 0)
	g.currentStep = startStep
	return startStep
}

// Step takes an action in the environment
func (g *GridWorld) Step(action int) (timestep.TimeStep, bool) {
	x, y := g.Coordinates()

	switch action {
	case Left:
		if x > 0 {
			x--
		}
	case Right:
		if x < g.c-1 {
			x++
		}
	case Up:
		if y < g.r-1 {
			y++
		}
	case Down:
		if y > 0 {
			y--
		}
	default:
		panic(fmt.Sprintf("step: invalid action %d", action))
	}
	g.position = g.Index(x, y)

	reward := g.stepReward
	stepType := timestep.Mid
	if g.goals[g.position] {
		reward = g.goalReward
		stepType = timestep.Last
	}

	step := timestep.New(stepType, reward, g.discount, g.observation(),
		g.currentStep.Number+1)
	g.currentStep = step

	return step, stepType == timestep.Last
}

// ObservationSpec returns the observation specification of the
// environment
func (g *GridWorld) ObservationSpec() environment.Spec {
	upper := mat.NewVecDense(g.r*g.c, nil)
	for i := 0; i < upper.Len(); i++ {
		upper.SetVec(i, 1.0)
	}
	return environment.NewSpec(mat.NewVecDense(g.r*g.c, nil), upper)
}

// NumActions returns the number of actions in the environment
func (g *GridWorld) NumActions() int {
	return NumActions
}

// Index returns the index of cell (x, y)
func (g *GridWorld) Index(x, y int) int {
	return y*g.c + x
}

// Position returns the index of the current cell
func (g *GridWorld) Position() int {
	return g.position
}

// Coordinates returns the (x, y) coordinates of the current cell
func (g *GridWorld) Coordinates() (int, int) {
	y := g.position / g.c
	x := g.position - (y * g.c)
	return x, y
}

func (g *GridWorld) String() string {
	x, y := g.Coordinates()
	return fmt.Sprintf("GridWorld | At: (%d, %d)  |  Bounds: (%d, %d)",
		x, y, g.r, g.c)
}

func (g *GridWorld) observation() *mat.VecDense {
	position := mat.NewVecDense(g.r*g.c, nil)
	position.SetVec(g.position, 1.0)
	return position
}
