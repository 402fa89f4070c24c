// Package qtable implements the tabular Q-learning algorithm.
//
// Q-learning is an off-policy temporal difference control method. On
// each transition (s, a, r, s') the value of the visited pair is moved
// towards the one-step target, bootstrapping from the greedy value of
// the next state:
//
//	Q(s, a) ← (1 - α) Q(s, a) + α (r + γ max_a' Q(s', a'))
//
// When the transition ends the episode the bootstrap term is 0.
package qtable

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/agent/tabular"
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/exploration"
)

var (
	ErrInvalidAlpha = errors.New("alpha must be in [0, 1]")
	ErrInvalidGamma = errors.New("gamma must be in [0, 1]")
)

// QTable implements a Q-learning agent which stores its action values
// in a lookup table. Actions are selected ε-greedily, with ε decaying
// over the number of completed episodes.
//
// QTable is not safe for concurrent use.
type QTable[S, A comparable] struct {
	table       *tabular.Table[S, A]
	alpha       float64 // learning rate
	gamma       float64 // discount factor
	exploration *exploration.EpsilonGreedy
	episode     int // completed episodes
}

// New creates a new QTable agent with learning rate alpha, discount
// factor gamma, and exploration policy e. Both alpha and gamma must be
// in [0, 1].
func New[S, A comparable](alpha, gamma float64,
	e *exploration.EpsilonGreedy) (*QTable[S, A], error) {
	if !(alpha >= 0 && alpha <= 1) {
		return nil, fmt.Errorf("new: %w, got %v", ErrInvalidAlpha, alpha)
	}
	if !(gamma >= 0 && gamma <= 1) {
		return nil, fmt.Errorf("new: %w, got %v", ErrInvalidGamma, gamma)
	}

	return &QTable[S, A]{
		table:       tabular.NewTable[S, A](),
		alpha:       alpha,
		gamma:       gamma,
		exploration: e,
	}, nil
}

// Table returns the agent's table of action values
func (q *QTable[S, A]) Table() *tabular.Table[S, A] {
	return q.table
}

// Episode returns the number of episodes completed
func (q *QTable[S, A]) Episode() int {
	return q.episode
}

// Epsilon returns the current probability of exploring
func (q *QTable[S, A]) Epsilon() float64 {
	return q.exploration.Epsilon(q.episode)
}

// Act selects an action in state given the legal actions. Act panics
// if the greedy action is requested but no actions are legal.
func (q *QTable[S, A]) Act(env environment.Environment[S, A], state S,
	actions []A) A {
	choice := q.exploration.Choose(q.episode)
	return tabular.Act[S, A](q.table, choice, env, state, actions)
}

// Learn performs a Q-learning update on a single transition
func (q *QTable[S, A]) Learn(exp agent.Experience[S, A], nextActions []A) {
	value := q.table.Get(exp.State, exp.Action)

	maxNext := 0.0
	if !exp.Terminal() {
		maxNext = q.table.Max(*exp.NextState, nextActions)
	}

	target := exp.Reward + q.gamma*maxNext
	q.table.Set(exp.State, exp.Action, (1-q.alpha)*value+q.alpha*target)
}

// Go runs a single episode in env, learning from each transition. The
// episode count is incremented once the episode ends.
func (q *QTable[S, A]) Go(env environment.Environment[S, A]) agent.Summary {
	epsilon := q.Epsilon()

	summary := tabular.Episode[S, A](env,
		func(state S, actions []A) A {
			return q.Act(env, state, actions)
		},
		q.Learn,
	)

	summary.Episode = q.episode
	summary.Epsilon = epsilon
	q.episode++

	return summary
}

// Save saves the agent's table to a file
func (q *QTable[S, A]) Save(filename string) error {
	return q.table.Save(filename)
}

// Load loads the agent's table from a file
func (q *QTable[S, A]) Load(filename string) error {
	return q.table.Load(filename)
}
