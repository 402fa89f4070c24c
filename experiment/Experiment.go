// Package experiment implements functionality for running an experiment
package experiment

import (
	"context"
	"errors"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/experiment/tracker"
)

// ErrFinished is returned when running an experiment that has already
// been run
var ErrFinished = errors.New("experiment has already been run")

// Interface Experiment outlines structs that can run experiments.
// Experiments send the Summary of each finished episode to their
// Trackers, caching the data in RAM to be later saved to disk. The
// Save() function will then take all cached data and save it to disk.
// This is usually performed after an experiment has been run. The
// Run() method will run all episodes until the episode limit is
// reached or the context is cancelled. The RunEpisode() function will
// run a single episode.
type Experiment interface {
	Run(ctx context.Context) error
	RunEpisode() agent.Summary

	// Save all tracked data to disk
	Save() error

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t tracker.Tracker)
}

// Update is a snapshot of a finished episode, published by an
// experiment to any listener
type Update struct {
	RunID   string  `json:"run_id"`
	Episode int     `json:"episode"`
	Return  float64 `json:"return"`
	Steps   int     `json:"steps"`
	Epsilon float64 `json:"epsilon"`
}
