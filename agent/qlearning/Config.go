package qlearning

import (
	"fmt"
	"reflect"

	"github.com/samuelfneumann/gotd/agent"
	"github.com/samuelfneumann/gotd/environment"
	"github.com/samuelfneumann/gotd/parameter"
	"github.com/samuelfneumann/gotd/policy"
)

func init() {
	// Register ConfigList type so that it can be typed using
	// agent.TypedConfigList to help with serialization/deserialization.
	agent.Register(agent.QLearning, ConfigList{})
}

// ConfigList implements functionality for storing a number of Configs
// in a simple manner. Instead of storing a slice of Configs, the
// ConfigList stores each field's values and constructs the list by
// every combination of field values.
type ConfigList struct {
	Epsilon      []float64
	LearningRate []float64
	Decay        []float64
	Discount     []float64
	Tilings      [][][]int
}

// NewConfigList returns a new ConfigList as an agent.TypedConfigList
// so that it can easily be serialized/deserialized without knowing the
// underlying concrete type.
func NewConfigList(epsilon, learningRate, decay, discount []float64,
	tilings [][][]int) agent.TypedConfigList {
	config := ConfigList{
		Epsilon:      epsilon,
		LearningRate: learningRate,
		Decay:        decay,
		Discount:     discount,
		Tilings:      tilings,
	}
	return agent.NewTypedConfigList(config)
}

// Config returns an empty Config that is of the type stored by
// ConfigList
func (c ConfigList) Config() agent.Config {
	return Config{}
}

// Type returns the type of controller that can be constructed by
// Configs stored by the list
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

// Config represents a configuration for the QLearning controller
type Config struct {
	Epsilon      float64 // Behaviour policy epsilon
	LearningRate float64
	Decay        float64
	Discount     float64
	Tilings      [][]int
}

// CreateController creates the controller from the Config. Weights are
// always initialized to zero using this function.
func (c Config) CreateController(env environment.Environment,
	seed uint64) (agent.Controller, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	q := agent.NewLinearQ(env, c.Tilings, seed)
	behaviour := policy.NewEGreedy(q, c.Epsilon)
	alpha := parameter.FromDecay(c.LearningRate, c.Decay)

	return New(q, behaviour, alpha, c.Discount), nil
}

// ValidController returns whether the argument controller is a valid
// controller for construction with the Config
func (c Config) ValidController(a agent.Controller) bool {
	_, ok := a.(*QLearning)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("validate: epsilon must be in [0, 1], got %v",
			c.Epsilon)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("validate: learning rate must be positive, got %v",
			c.LearningRate)
	}
	if c.Decay < 0 || c.Decay > 1 {
		return fmt.Errorf("validate: decay must be in [0, 1], got %v",
			c.Decay)
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount must be in [0, 1], got %v",
			c.Discount)
	}
	return nil
}

// Type returns the type of the controller constructed by the Config
func (c Config) Type() agent.Type {
	return agent.QLearning
}
