package qsigma

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
	agent.Register(agent.QSigma, ConfigList{})
}

// ConfigList implements functionality for storing a number of Configs
// in a simple manner. Instead of storing a slice of Configs, the
// ConfigList stores each field's values and constructs the list by
// every combination of field values.
type ConfigList struct {
	LearningRate []float64
	Decay        []float64
	Discount     []float64
	Sigma        []float64
	NSteps       []int
	BehaviourE   []float64
	TargetE      []float64
	Tilings      [][][]int
}

// NewConfigList returns a new ConfigList as an agent.TypedConfigList
// so that it can easily be serialized/deserialized without knowing the
// underlying concrete type.
func NewConfigList(learningRate, decay, discount, sigma []float64,
	nSteps []int, behaviourE, targetE []float64,
	tilings [][][]int) agent.TypedConfigList {
	config := ConfigList{
		LearningRate: learningRate,
		Decay:        decay,
		Discount:     discount,
		Sigma:        sigma,
		NSteps:       nSteps,
		BehaviourE:   behaviourE,
		TargetE:      targetE,
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

// Config represents a configuration for the QSigma controller. The
// target policy is greedy if TargetE is 0 and ε-greedy otherwise. An
// empty Tilings uses the observations with an added bias unit as
// features.
type Config struct {
	LearningRate float64
	Decay        float64 // Per-episode learning rate decay, 0 is none
	Discount     float64
	Sigma        float64
	NSteps       int
	BehaviourE   float64 // epsilon for behaviour policy
	TargetE      float64 // epsilon for target policy
	Tilings      [][]int
}

// CreateController creates the controller from the Config. Weights
// are always initialized to zero using this function. To initialize
// from some other distribution, use the controller's constructor
// manually.
func (c Config) CreateController(env environment.Environment,
	seed uint64) (agent.Controller, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	q := agent.NewLinearQ(env, c.Tilings, seed)

	var target policy.Policy = policy.NewGreedy(q)
	if c.TargetE > 0 {
		target = policy.NewEGreedy(q, c.TargetE)
	}
	behaviour := policy.NewEGreedy(q, c.BehaviourE)

	alpha := parameter.FromDecay(c.LearningRate, c.Decay)
	return New(q, target, behaviour, alpha, c.Discount, c.Sigma, c.NSteps,
		seed), nil
}

// ValidController returns whether the argument controller is a valid
// controller for construction with the Config
func (c Config) ValidController(a agent.Controller) bool {
	_, ok := a.(*QSigma)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if err := validate(c.LearningRate, c.Discount, c.Sigma,
		c.NSteps); err != nil {
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
	if c.TargetE < 0 || c.TargetE > 1 {
		return fmt.Errorf("validate: target epsilon must be in [0, 1], "+
			"got %v", c.TargetE)
	}
	return nil
}

// Type returns the type of the controller constructed by the Config
func (c Config) Type() agent.Type {
	return agent.QSigma
}
