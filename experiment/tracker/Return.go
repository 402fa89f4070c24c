package tracker

import (
	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/tabular/agent"
)

// Return tracks and saves the episodic return in an experiment
type Return struct {
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return Tracker which will save
// its data at filename
func NewReturn(filename string) *Return {
	return &Return{filename: filename}
}

// Track caches the return of a finished episode
func (r *Return) Track(s agent.Summary) {
	r.episodeReturns = append(r.episodeReturns, s.Return)
}

// Data returns the returns tracked so far
func (r *Return) Data() []float64 {
	return r.episodeReturns
}

// Mean returns the mean return over the last n episodes tracked, or
// over all episodes if fewer than n have been tracked. If no episodes
// have been tracked, Mean returns 0.
func (r *Return) Mean(n int) float64 {
	if len(r.episodeReturns) == 0 {
		return 0
	}
	start := len(r.episodeReturns) - n
	if start < 0 || n <= 0 {
		start = 0
	}
	return stat.Mean(r.episodeReturns[start:], nil)
}

// Save saves the data tracked by the Return Tracker to disk
func (r *Return) Save() error {
	return save(r.filename, r.episodeReturns)
}
