package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gotd/agent"
	env "github.com/samuelfneumann/gotd/environment"
	"github.com/samuelfneumann/gotd/experiment/checkpointer"
	"github.com/samuelfneumann/gotd/experiment/tracker"
	"github.com/samuelfneumann/gotd/expreplay"
	ts "github.com/samuelfneumann/gotd/timestep"
)

// Online is an Experiment that runs a controller online only. No
// offline evaluation is performed.
//
// Actions are sampled from the controller's behaviour policy, and each
// transition is handed to the controller as soon as it is observed.
// Episodes cut off by the Ender are not terminal: the controller
// bootstraps off the final state, and HandleTerminal is called as for
// any other episode.
//
// If an experience replay buffer is set, each transition is added to
// the buffer and the controller learns from a batch sampled from the
// buffer instead. Controllers which implement agent.BatchLearner are
// given the batch through HandleBatch, and all others through
// HandleSequence.
type Online struct {
	env.Environment
	ender        env.Ender
	controller   agent.Controller
	maxSteps     uint
	currentSteps uint
	episodes     int
	trackers     []tracker.Tracker
	checkpoints  []checkpointer.Checkpointer
	replay       expreplay.ExperienceReplayer

	id     string
	rng    *rand.Rand
	logger *slog.Logger
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given controller. The steps parameter determines
// how many timesteps the experiment is run for. The ender may be nil,
// in which case episodes are only ended by the environment.
func NewOnline(e env.Environment, ender env.Ender, c agent.Controller,
	steps uint, seed uint64, t []tracker.Tracker,
	check []checkpointer.Checkpointer) *Online {
	id := uuid.NewString()
	return &Online{
		Environment: e,
		ender:       ender,
		controller:  c,
		maxSteps:    steps,
		trackers:    t,
		checkpoints: check,
		id:          id,
		rng:         rand.New(rand.NewSource(seed)),
		logger:      slog.Default().With("run", id),
	}
}

// SetLogger sets the logger of the experiment
func (o *Online) SetLogger(logger *slog.Logger) {
	o.logger = logger.With("run", o.id)
}

// SetReplay sets the experience replay buffer of the experiment. A nil
// buffer hands each transition to the controller directly.
func (o *Online) SetReplay(r expreplay.ExperienceReplayer) {
	o.replay = r
}

// ID implements the Experiment interface
func (o *Online) ID() string {
	return o.id
}

// Controller returns the controller run by the experiment
func (o *Online) Controller() agent.Controller {
	return o.controller
}

// Steps returns the number of steps taken so far
func (o *Online) Steps() uint {
	return o.currentSteps
}

// Episodes returns the number of episodes run so far
func (o *Online) Episodes() int {
	return o.episodes
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpisode runs a single episode of the experiment
func (o *Online) RunEpisode(ctx context.Context) (bool, error) {
	step := o.Environment.Reset()
	o.track(step)

	var ret float64
	for !step.Last() && o.currentSteps < o.maxSteps {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		o.currentSteps++

		action := o.controller.SampleBehaviour(o.rng, step.Observation)
		next, _ := o.Environment.Step(action)
		if err := o.learn(ts.NewTransition(step, action, next)); err != nil {
			return false, fmt.Errorf("runEpisode: %v", err)
		}
		ret += next.Reward

		if !next.Last() && o.ender != nil && o.ender.End(next) {
			next.StepType = ts.Last
			o.logger.Debug("episode cut off", "steps", next.Number)
		}
		o.track(next)
		step = next
	}

	o.controller.HandleTerminal()
	o.episodes++
	o.logger.Info("episode finished", "episode", o.episodes,
		"steps", step.Number, "return", ret)

	for _, c := range o.checkpoints {
		if err := c.Checkpoint(o.episodes); err != nil {
			return false, fmt.Errorf("runEpisode: %v", err)
		}
	}

	return o.currentSteps >= o.maxSteps, nil
}

// learn hands a transition to the controller, either directly or
// through the experience replay buffer
func (o *Online) learn(t ts.Transition) error {
	if o.replay == nil {
		o.controller.HandleTransition(t)
		return nil
	}

	if err := o.replay.Add(t); err != nil {
		return err
	}
	batch, err := o.replay.Sample()
	if expreplay.IsInsufficientSamples(err) {
		return nil
	} else if err != nil {
		return err
	}

	if learner, ok := o.controller.(agent.BatchLearner); ok {
		if err := learner.HandleBatch(batch); err != nil {
			o.logger.Debug("ignoring failed batch update", "error", err)
		}
		return nil
	}
	o.controller.HandleSequence(batch)
	return nil
}

// Run runs the entire experiment for all timesteps
func (o *Online) Run(ctx context.Context) error {
	for {
		ended, err := o.RunEpisode(ctx)
		if err != nil {
			return err
		}
		if ended {
			return nil
		}
	}
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %v", err)
		}
	}
	return nil
}

// track tracks the current timestep by sending it to each tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tr := range o.trackers {
		tr.Track(t)
	}
}
