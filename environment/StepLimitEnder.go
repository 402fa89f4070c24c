package environment

import "github.com/samuelfneumann/tabular/timestep"

// StepLimit implements the Ender interface to end episodes at specific
// timestep limits
type StepLimit[O any] struct {
	episodeSteps int
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit[O any](episodeSteps int) StepLimit[O] {
	return StepLimit[O]{episodeSteps}
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode termination. If the episode
// should be ended End() will mark the timestep as timestep.Last with
// end type timestep.Timeout
func (s StepLimit[O]) End(t *timestep.TimeStep[O]) bool {
	if t.Number >= s.episodeSteps {
		t.SetEnd(timestep.Timeout)
		return true
	}
	return false
}

// StepLimited wraps an Environment so that episodes are cut off after
// a fixed number of steps, even if the wrapped Environment never
// reaches a terminal state
type StepLimited[S, A comparable] struct {
	Environment[S, A]
	limit StepLimit[S]
}

// NewStepLimited returns env wrapped so that no episode lasts longer
// than episodeSteps steps
func NewStepLimited[S, A comparable](env Environment[S, A],
	episodeSteps int) *StepLimited[S, A] {
	return &StepLimited[S, A]{env, NewStepLimit[S](episodeSteps)}
}

// Step takes a step in the wrapped Environment, ending the episode if
// the step limit has been reached
func (s *StepLimited[S, A]) Step(action A) timestep.TimeStep[S] {
	step := s.Environment.Step(action)
	if !step.Last() {
		s.limit.End(&step)
	}
	return step
}
