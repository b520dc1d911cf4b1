// Package envconfig provides configuration structs for configuring
// environments. Environment configurations in this package are JSON
// and YAML serializable.
package envconfig

import (
	"fmt"

	env "github.com/samuelfneumann/gotd/environment"
	"github.com/samuelfneumann/gotd/environment/gridworld"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	GridWorld EnvName = "GridWorld"
)

// Config implements a specific configuration of a specific environment
type Config struct {
	Environment   EnvName `json:"Environment" yaml:"Environment"`
	Rows          int     `json:"Rows" yaml:"Rows"`
	Cols          int     `json:"Cols" yaml:"Cols"`
	Start         int     `json:"Start" yaml:"Start"` // < 0 samples uniformly
	Goals         []int   `json:"Goals" yaml:"Goals"`
	StepReward    float64 `json:"StepReward" yaml:"StepReward"`
	GoalReward    float64 `json:"GoalReward" yaml:"GoalReward"`
	Discount      float64 `json:"Discount" yaml:"Discount"`
	EpisodeCutoff uint    `json:"EpisodeCutoff" yaml:"EpisodeCutoff"`
}

// NewGridWorld returns a new Config for a GridWorld with a single start
// state in the bottom left corner and a single goal in the top right
// corner, rewarding each step with -1
func NewGridWorld(rows, cols int, episodeCutoff uint,
	discount float64) Config {
	return Config{
		Environment:   GridWorld,
		Rows:          rows,
		Cols:          cols,
		Start:         0,
		Goals:         []int{rows*cols - 1},
		StepReward:    -1,
		GoalReward:    -1,
		Discount:      discount,
		EpisodeCutoff: episodeCutoff,
	}
}

// Validate returns an error describing why the Config is invalid, or
// nil if it is valid
func (c Config) Validate() error {
	if c.Environment != GridWorld {
		return fmt.Errorf("validate: no such environment %q", c.Environment)
	}
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("validate: invalid grid size (%d x %d)", c.Rows,
			c.Cols)
	}
	if c.Start >= c.Rows*c.Cols {
		return fmt.Errorf("validate: start %d out of range [0, %d)",
			c.Start, c.Rows*c.Cols)
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount must be in [0, 1], got %v",
			c.Discount)
	}
	return nil
}

// Create returns the environment described by the Config as well as
// the Ender which cuts off its episodes
func (c Config) Create(seed uint64) (env.Environment, env.Ender, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	var s env.Starter = env.SingleStart(c.Start)
	if c.Start < 0 {
		s = env.NewUniformStarter(c.Rows*c.Cols, seed)
	}

	g, err := gridworld.New(c.Rows, c.Cols, c.Goals, s, c.StepReward,
		c.GoalReward, c.Discount)
	if err != nil {
		return nil, nil, fmt.Errorf("create: %v", err)
	}
	return g, env.NewStepLimit(int(c.EpisodeCutoff)), nil
}
