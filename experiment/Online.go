package experiment

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/experiment/checkpointer"
	"github.com/samuelfneumann/tabular/experiment/tracker"
)

// UpdateBuffer is the number of Updates an Online experiment buffers
// before dropping new ones
const UpdateBuffer = 128

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
//
// After each episode, an Update is published on the channel returned
// by Updates. Publishing never blocks: if the channel is full, the
// Update is dropped and counted. The channel is closed when Run
// returns.
type Online[S, A comparable] struct {
	env           environment.Environment[S, A]
	agent         agent.Agent[S, A]
	episodes      int
	trackers      []tracker.Tracker
	checkpointers []checkpointer.Checkpointer

	runID   uuid.UUID
	logger  logrus.FieldLogger
	updates chan Update
	dropped atomic.Int64
	done    bool
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The episodes parameter determines
// how many episodes the experiment is run for, the t parameter is a
// slice of tracker.Tracker which determine what data is saved, and the
// c parameter determines when the agent is checkpointed.
func NewOnline[S, A comparable](e environment.Environment[S, A],
	a agent.Agent[S, A], episodes int, logger logrus.FieldLogger,
	t []tracker.Tracker, c []checkpointer.Checkpointer) *Online[S, A] {
	runID := uuid.New()

	return &Online[S, A]{
		env:           e,
		agent:         a,
		episodes:      episodes,
		trackers:      t,
		checkpointers: c,
		runID:         runID,
		logger:        logger.WithField("run", runID.String()),
		updates:       make(chan Update, UpdateBuffer),
	}
}

// RunID returns the unique ID of the experiment run
func (o *Online[S, A]) RunID() uuid.UUID {
	return o.runID
}

// Updates returns the channel on which episode Updates are published
func (o *Online[S, A]) Updates() <-chan Update {
	return o.updates
}

// Dropped returns the number of Updates dropped because the Updates
// channel was full
func (o *Online[S, A]) Dropped() int64 {
	return o.dropped.Load()
}

// RegisterCheckpointer registers a checkpointer.Checkpointer with an
// Experiment so that the agent is checkpointed after episodes
func (o *Online[S, A]) RegisterCheckpointer(c checkpointer.Checkpointer) {
	o.checkpointers = append(o.checkpointers, c)
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online[S, A]) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpisode runs a single episode of the experiment
func (o *Online[S, A]) RunEpisode() agent.Summary {
	summary := o.agent.Go(o.env)

	o.track(summary)
	o.checkpoint(summary)
	o.publish(summary)

	o.logger.WithFields(logrus.Fields{
		"episode": summary.Episode,
		"return":  summary.Return,
		"steps":   summary.Steps,
		"epsilon": summary.Epsilon,
		"end":     summary.End.String(),
	}).Debug("episode finished")

	return summary
}

// Run runs the entire experiment for all episodes. Cancellation of ctx
// is checked between episodes, an episode in progress always runs to
// completion.
func (o *Online[S, A]) Run(ctx context.Context) error {
	if o.done {
		return fmt.Errorf("run: %w", ErrFinished)
	}
	defer func() {
		o.done = true
		close(o.updates)
	}()

	o.logger.WithField("episodes", o.episodes).Info("starting experiment")
	for i := 0; i < o.episodes; i++ {
		if err := ctx.Err(); err != nil {
			o.logger.WithField("episodes", i).Warn("experiment cancelled")
			return fmt.Errorf("run: %w", err)
		}
		o.RunEpisode()
	}

	o.logger.WithField("dropped_updates", o.Dropped()).
		Info("experiment finished")
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (o *Online[S, A]) Save() error {
	var errs []error
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// track tracks a finished episode by caching its data in each Tracker
func (o *Online[S, A]) track(s agent.Summary) {
	for _, t := range o.trackers {
		t.Track(s)
	}
}

// checkpoint checkpoints the agent. Failures are logged and the
// experiment continues.
func (o *Online[S, A]) checkpoint(s agent.Summary) {
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(s); err != nil {
			o.logger.WithError(err).WithField("episode", s.Episode).
				Error("could not checkpoint")
		}
	}
}

// publish sends an Update without blocking
func (o *Online[S, A]) publish(s agent.Summary) {
	update := Update{
		RunID:   o.runID.String(),
		Episode: s.Episode,
		Return:  s.Return,
		Steps:   s.Steps,
		Epsilon: s.Epsilon,
	}

	select {
	case o.updates <- update:
	default:
		o.dropped.Add(1)
	}
}
