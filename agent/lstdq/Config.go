package lstdq

import (
	"fmt"
	"reflect"

	"github.com/samuelfneumann/gotd/agent"
	"github.com/samuelfneumann/gotd/environment"
	"github.com/samuelfneumann/gotd/policy"
)

func init() {
	agent.Register(agent.LSTDQ, ConfigList{})
}

// ConfigList implements agent.ConfigList for LSTDQ Configs
type ConfigList struct {
	Epsilon        []float64
	Discount       []float64
	Regularization []float64
	Interval       []int
	Tilings        [][][]int
}

// NewConfigList returns a new ConfigList as an agent.TypedConfigList
func NewConfigList(epsilon, discount, regularization []float64,
	interval []int, tilings [][][]int) agent.TypedConfigList {
	config := ConfigList{
		Epsilon:        epsilon,
		Discount:       discount,
		Regularization: regularization,
		Interval:       interval,
		Tilings:        tilings,
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

// Config represents a configuration for the LSTDQ controller. The
// target policy is greedy and the behaviour policy is ε-greedy.
type Config struct {
	Epsilon        float64
	Discount       float64
	Regularization float64 // A is initialized to Regularization * I
	Interval       int     // Transitions between online solves, 0 is never
	Tilings        [][]int
}

// CreateController creates the controller from the Config
func (c Config) CreateController(env environment.Environment,
	seed uint64) (agent.Controller, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	q := agent.NewLinearQ(env, c.Tilings, seed)
	target := policy.NewGreedy(q)
	behaviour := policy.NewEGreedy(q, c.Epsilon)

	return New(q, target, behaviour, c.Discount, c.Regularization,
		c.Interval), nil
}

// ValidController returns whether the argument controller is a valid
// controller for construction with the Config
func (c Config) ValidController(a agent.Controller) bool {
	_, ok := a.(*LSTDQ)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("validate: epsilon must be in [0, 1], got %v",
			c.Epsilon)
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount must be in [0, 1], got %v",
			c.Discount)
	}
	if c.Regularization < 0 {
		return fmt.Errorf("validate: regularization must be non-negative, "+
			"got %v", c.Regularization)
	}
	if c.Interval < 0 {
		return fmt.Errorf("validate: interval must be non-negative, got %v",
			c.Interval)
	}
	return nil
}

// Type returns the type of the controller constructed by the Config
func (c Config) Type() agent.Type {
	return agent.LSTDQ
}
