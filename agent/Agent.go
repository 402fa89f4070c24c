// Package agent defines the interfaces shared by tabular agents
package agent

import (
	"fmt"

	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent interacts with an Environment one full episode at a time.
// Each call to Go runs exactly one episode to completion, learning
// from every transition along the way, and returns a Summary of the
// episode. Agents count the episodes they have completed; this count
// drives any decaying parameters of the agent.
type Agent[S, A comparable] interface {
	// Go runs a single episode in the environment
	Go(env environment.Environment[S, A]) Summary

	// Episode returns the number of episodes completed
	Episode() int
}

// Learner implements a learning algorithm that defines how value
// estimates are updated from experience
type Learner[S, A comparable] interface {
	// Learn updates the learner's estimates given a single transition
	// and the actions legal in the transition's next state
	Learn(exp Experience[S, A], nextActions []A)
}

// Experience is a single transition in an environment. A nil NextState
// signals that the transition ended the episode, in which case there
// is nothing to bootstrap from.
type Experience[S, A comparable] struct {
	State     S
	Action    A
	NextState *S
	Reward    float64
}

// Terminal returns whether the transition ended the episode
func (e Experience[S, A]) Terminal() bool {
	return e.NextState == nil
}

// Summary holds the episode-level metrics of a single episode
type Summary struct {
	Episode int              // index of the episode, starting at 0
	Return  float64          // undiscounted sum of rewards
	Steps   int              // number of environment steps taken
	Epsilon float64          // exploration probability used
	End     timestep.EndType // why the episode ended
}

func (s Summary) String() string {
	str := "Episode %d  |  Return: %.2f  |  Steps: %d  |  ε: %.3f  |  %v"

	return fmt.Sprintf(str, s.Episode, s.Return, s.Steps, s.Epsilon, s.End)
}
