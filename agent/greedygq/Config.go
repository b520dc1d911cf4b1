package greedygq

import (
	"fmt"
	"reflect"

	"github.com/samuelfneumann/gotd/agent"
	"github.com/samuelfneumann/gotd/environment"
	"github.com/samuelfneumann/gotd/parameter"
	"github.com/samuelfneumann/gotd/policy"
)

func init() {
	agent.Register(agent.GreedyGQ, ConfigList{})
}

// ConfigList stores each field's values for GreedyGQ Configs and
// constructs the list by every combination of field values.
type ConfigList struct {
	LearningRate []float64
	Beta         []float64
	Decay        []float64
	Discount     []float64
	BehaviourE   []float64
	Tilings      [][][]int
}

// NewConfigList returns a new ConfigList as an agent.TypedConfigList
func NewConfigList(learningRate, beta, decay, discount,
	behaviourE []float64, tilings [][][]int) agent.TypedConfigList {
	return agent.NewTypedConfigList(ConfigList{
		LearningRate: learningRate,
		Beta:         beta,
		Decay:        decay,
		Discount:     discount,
		BehaviourE:   behaviourE,
		Tilings:      tilings,
	})
}

// Config returns an empty Config that is of the type stored by
// ConfigList
func (c ConfigList) Config() agent.Config {
	return Config{}
}

// Type returns the type of controller constructed by the list
func (c ConfigList) Type() agent.Type {
	return c.Config().Type()
}

// NumFields returns the number of settable fields for the ConfigList
func (c ConfigList) NumFields() int {
	return reflect.ValueOf(c).NumField()
}

// Len returns the number of Configs stored by the list
func (c ConfigList) Len() int {
	return agent.NumConfigs(c)
}

// Config represents a configuration for the GreedyGQ controller. The
// target policy is greedy and the behaviour policy is ε-greedy.
type Config struct {
	LearningRate float64
	Beta         float64 // Relative step size of the secondary weights
	Decay        float64
	Discount     float64
	BehaviourE   float64
	Tilings      [][]int
}

// CreateController creates the controller from the Config with all
// weights initialized to zero
func (c Config) CreateController(env environment.Environment,
	seed uint64) (agent.Controller, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	q := agent.NewLinearQ(env, c.Tilings, seed)
	w := agent.NewLinearV(env, c.Tilings, seed)
	target := policy.NewGreedy(q)
	behaviour := policy.NewEGreedy(q, c.BehaviourE)

	alpha := parameter.FromDecay(c.LearningRate, c.Decay)
	return New(q, w, target, behaviour, alpha, parameter.Constant(c.Beta),
		c.Discount, seed), nil
}

// ValidController returns whether the argument controller is a valid
// controller for construction with the Config
func (c Config) ValidController(a agent.Controller) bool {
	_, ok := a.(*GreedyGQ)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if err := validate(c.LearningRate, c.Beta, c.Discount); err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	if c.Decay < 0 || c.Decay > 1 {
		return fmt.Errorf("validate: decay must be in [0, 1], got %v",
			c.Decay)
	}
	if c.BehaviourE < 0 || c.BehaviourE > 1 {
		return fmt.Errorf("validate: behaviour epsilon must be in [0, 1], "+
			"got %v", c.BehaviourE)
	}
	return nil
}

// Type returns the type of the controller constructed by the Config
func (c Config) Type() agent.Type {
	return agent.GreedyGQ
}
