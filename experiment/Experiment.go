// Package experiment implements functionality for running an experiment
package experiment

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/samuelfneumann/gotd/agent"
	"github.com/samuelfneumann/gotd/environment/envconfig"
	"github.com/samuelfneumann/gotd/experiment/checkpointer"
	"github.com/samuelfneumann/gotd/experiment/tracker"
	"github.com/samuelfneumann/gotd/expreplay"
)

// Experiment runs a controller in an environment.
//
// Every TimeStep of the experiment is sent to the Experiment's
// Trackers, which determine which data is cached and saved. The Save
// method saves all tracked data, usually after the experiment has been
// run. Checkpointers are called at the end of each episode.
type Experiment interface {
	// Run runs episodes until the step limit is reached or ctx is
	// cancelled
	Run(ctx context.Context) error

	// RunEpisode runs a single episode and returns whether the step
	// limit has been reached
	RunEpisode(ctx context.Context) (bool, error)

	// Register adds a new tracker.Tracker to the (possibly already
	// running) experiment
	Register(t tracker.Tracker)

	// Save saves all tracked data
	Save() error

	// ID returns the unique ID of the run
	ID() string
}

// Type is the type of an experiment
type Type string

const (
	OnlineExp Type = "OnlineExperiment"
)

// Config represents a configuration of an experiment. The agent
// configuration is a list, and a single experiment is created for one
// Config in the list. Replay is optional.
type Config struct {
	Type      `json:"Type" yaml:"Type"`
	MaxSteps  uint                  `json:"MaxSteps" yaml:"MaxSteps"`
	EnvConf   envconfig.Config      `json:"EnvConf" yaml:"EnvConf"`
	AgentConf agent.TypedConfigList `json:"AgentConf" yaml:"AgentConf"`
	Replay    *expreplay.Config     `json:"Replay,omitempty" yaml:"Replay,omitempty"`
}

// Validate returns an error describing why the Config is invalid, or
// nil if it is valid
func (c Config) Validate() error {
	if c.Type != OnlineExp {
		return fmt.Errorf("validate: no such experiment type %q", c.Type)
	}
	if c.MaxSteps == 0 {
		return fmt.Errorf("validate: max steps must be positive")
	}
	if err := c.EnvConf.Validate(); err != nil {
		return err
	}
	if c.AgentConf.ConfigList == nil {
		return fmt.Errorf("validate: no agent configurations")
	}
	return nil
}

// CreateExp creates the experiment for the agent Config at index i of
// the agent ConfigList
func (c Config) CreateExp(i int, seed uint64, t []tracker.Tracker,
	check []checkpointer.Checkpointer) (Experiment, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createExp: %v", err)
	}
	if n := c.AgentConf.Len(); i < 0 || i >= n {
		return nil, fmt.Errorf("createExp: index %d out of range [0, %d)",
			i, n)
	}

	env, ender, err := c.EnvConf.Create(seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create "+
			"environment: %v", err)
	}
	controller, err := c.AgentConf.At(i).CreateController(env, seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create "+
			"controller: %v", err)
	}

	exp := NewOnline(env, ender, controller, c.MaxSteps, seed, t, check)
	if c.Replay != nil {
		replay, err := c.Replay.Create(seed)
		if err != nil {
			return nil, fmt.Errorf("createExp: could not create replay "+
				"buffer: %v", err)
		}
		exp.SetReplay(replay)
	}
	return exp, nil
}

// LoadConfig loads an experiment Config from a JSON or YAML file
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "loadConfig")
	}

	var c Config
	switch filepath.Ext(path) {
	case ".json":
		err = json.Unmarshal(data, &c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &c)
	default:
		return Config{}, errors.Errorf("loadConfig: unknown file type %q",
			filepath.Ext(path))
	}
	if err != nil {
		return Config{}, errors.Wrapf(err, "loadConfig: could not decode %v",
			path)
	}
	return c, errors.Wrap(c.Validate(), "loadConfig")
}
