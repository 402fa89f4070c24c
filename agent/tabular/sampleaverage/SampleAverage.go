// Package sampleaverage implements a tabular control agent whose
// action values are the running average of observed one-step targets.
package sampleaverage

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/agent/tabular"
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/exploration"
)

var ErrInvalidGamma = errors.New("gamma must be in [0, 1]")

// SampleAverage is a Q-learning variant which uses a step size of
// 1/N(s, a), where N(s, a) is the number of times action a has been
// taken in state s. Each action value is then the sample mean of the
// targets r + γ max_a' Q(s', a') seen so far for that pair.
type SampleAverage[S, A comparable] struct {
	table       *tabular.Table[S, A]
	counts      map[tabular.Key[S, A]]int
	gamma       float64
	exploration *exploration.EpsilonGreedy
	episode     int
}

// New returns a new SampleAverage agent with discount factor gamma,
// which must be in [0, 1], and exploration policy e
func New[S, A comparable](gamma float64,
	e *exploration.EpsilonGreedy) (*SampleAverage[S, A], error) {
	if !(gamma >= 0 && gamma <= 1) {
		return nil, fmt.Errorf("new: %w, got %v", ErrInvalidGamma, gamma)
	}

	return &SampleAverage[S, A]{
		table:       tabular.NewTable[S, A](),
		counts:      make(map[tabular.Key[S, A]]int),
		gamma:       gamma,
		exploration: e,
	}, nil
}

// Table returns the action-value table of the agent
func (s *SampleAverage[S, A]) Table() *tabular.Table[S, A] {
	return s.table
}

// Count returns the number of updates made to the value of action in
// state
func (s *SampleAverage[S, A]) Count(state S, action A) int {
	return s.counts[tabular.Key[S, A]{State: state, Action: action}]
}

// Episode returns the number of episodes completed
func (s *SampleAverage[S, A]) Episode() int {
	return s.episode
}

// Epsilon returns the current probability of exploring
func (s *SampleAverage[S, A]) Epsilon() float64 {
	return s.exploration.Epsilon(s.episode)
}

// Act selects an action ε-greedily in state
func (s *SampleAverage[S, A]) Act(env environment.Environment[S, A],
	state S, actions []A) A {
	choice := s.exploration.Choose(s.episode)
	return tabular.Act[S, A](s.table, choice, env, state, actions)
}

// Learn folds the target of a single transition into the running
// average for the transition's (state, action) pair
func (s *SampleAverage[S, A]) Learn(exp agent.Experience[S, A],
	nextActions []A) {
	key := tabular.Key[S, A]{State: exp.State, Action: exp.Action}
	s.counts[key]++

	target := exp.Reward
	if !exp.Terminal() {
		target += s.gamma * s.table.Max(*exp.NextState, nextActions)
	}

	value := s.table.Get(exp.State, exp.Action)
	stepSize := 1 / float64(s.counts[key])
	s.table.Set(exp.State, exp.Action, value+stepSize*(target-value))
}

// Go runs a single episode in env
func (s *SampleAverage[S, A]) Go(env environment.Environment[S, A]) agent.Summary {
	epsilon := s.Epsilon()

	summary := tabular.Episode[S, A](env,
		func(state S, actions []A) A {
			return s.Act(env, state, actions)
		},
		s.Learn,
	)

	summary.Episode = s.episode
	summary.Epsilon = epsilon
	s.episode++

	return summary
}

// Save saves the action values to a file. Visit counts are not saved.
func (s *SampleAverage[S, A]) Save(filename string) error {
	return s.table.Save(filename)
}

// Load loads action values from a file. Visit counts are not saved, so
// the loaded values are treated as having been seen once.
func (s *SampleAverage[S, A]) Load(filename string) error {
	if err := s.table.Load(filename); err != nil {
		return err
	}

	s.counts = make(map[tabular.Key[S, A]]int, s.table.Len())
	s.table.Range(func(state S, action A, _ float64) bool {
		s.counts[tabular.Key[S, A]{State: state, Action: action}] = 1
		return true
	})
	return nil
}
