// Package environment outlines the interfaces and structs needed to
// implement concrete environments for tabular agents
package environment

import "github.com/samuelfneumann/tabular/timestep"

// Environment implements a simulated environment with discrete states
// and discrete actions. States and actions key a table of values, so
// both must be comparable and should be small value types.
//
// An episode starts with a call to Reset and ends with the first
// TimeStep returned by Step for which Last() is true. The observation
// of a last TimeStep is never acted upon or bootstrapped from.
type Environment[S, A comparable] interface {
	// Reset resets the environment between episodes and returns the
	// first TimeStep of the new episode
	Reset() timestep.TimeStep[S]

	// Actions returns the actions which are legal in the current
	// state. Non-terminal states must always have at least one legal
	// action.
	Actions() []A

	// Step takes an action in the environment and returns the
	// resulting TimeStep
	Step(action A) timestep.TimeStep[S]

	// RandomAction returns an action chosen by the environment,
	// usually uniformly at random from the legal actions
	RandomAction() A
}

// Ender determines when episodes should end
type Ender[O any] interface {
	// End determines whether the episode should end on the argument
	// TimeStep. If so, End marks the TimeStep as last and returns true.
	End(t *timestep.TimeStep[O]) bool
}

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter[S any] interface {
	Start() S
}
