package sarsa

import (
	"fmt"
	"reflect"

	"github.com/samuelfneumann/gotd/agent"
	"github.com/samuelfneumann/gotd/environment"
	"github.com/samuelfneumann/gotd/parameter"
	"github.com/samuelfneumann/gotd/policy"
	"github.com/samuelfneumann/gotd/trace"
)

func init() {
	agent.Register(agent.Sarsa, ConfigList{})
}

// ConfigList stores the values of each field of a Config, and
// constructs Configs from every combination of field values
type ConfigList struct {
	Epsilon      []float64
	LearningRate []float64
	Decay        []float64
	Discount     []float64
	Lambda       []float64
	Trace        []string
	Tilings      [][][]int
}

// NewConfigList returns a new ConfigList as an agent.TypedConfigList
func NewConfigList(epsilon, learningRate, decay, discount,
	lambda []float64, traceRule []string,
	tilings [][][]int) agent.TypedConfigList {
	config := ConfigList{
		Epsilon:      epsilon,
		LearningRate: learningRate,
		Decay:        decay,
		Discount:     discount,
		Lambda:       lambda,
		Trace:        traceRule,
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

// Config represents a configuration for the Sarsa(λ) controller. Trace
// names the trace rule, see trace.NewRule.
type Config struct {
	Epsilon      float64
	LearningRate float64
	Decay        float64
	Discount     float64
	Lambda       float64
	Trace        string
	Tilings      [][]int
}

// CreateController creates the controller from the Config. Weights are
// always initialized to zero using this function.
func (c Config) CreateController(env environment.Environment,
	seed uint64) (agent.Controller, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	alpha := parameter.FromDecay(c.LearningRate, c.Decay)
	rule, err := trace.NewRule(c.Trace, alpha)
	if err != nil {
		return nil, fmt.Errorf("createController: %v", err)
	}

	q := agent.NewLinearQ(env, c.Tilings, seed)
	behaviour := policy.NewEGreedy(q, c.Epsilon)

	return New(q, behaviour, rule, alpha, c.Discount, c.Lambda, seed), nil
}

// ValidController returns whether the argument controller is a valid
// controller for construction with the Config
func (c Config) ValidController(a agent.Controller) bool {
	_, ok := a.(*Sarsa)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if err := validate(c.LearningRate, c.Discount, c.Lambda); err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("validate: epsilon must be in [0, 1], got %v",
			c.Epsilon)
	}
	if c.Decay < 0 || c.Decay > 1 {
		return fmt.Errorf("validate: decay must be in [0, 1], got %v",
			c.Decay)
	}
	_, err := trace.NewRule(c.Trace, parameter.Constant(c.LearningRate))
	if err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	return nil
}

// Type returns the type of the controller constructed by the Config
func (c Config) Type() agent.Type {
	return agent.Sarsa
}
