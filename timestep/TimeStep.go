// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"
)

// StepType denotes the type of step that a TimeStep can be, either the
// first environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes why an episode ended
type EndType int

const (
	Nil EndType = iota // episode has not ended
	TerminalStateReached
	Timeout
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	default:
		return "Nil"
	}
}

// TimeStep packages together a single timestep in an environment. The
// Observation is the state the environment is in after the step was
// taken. When the TimeStep is the last in an episode, the observation
// is not a state the agent can act from and should not be bootstrapped
// from.
type TimeStep[O any] struct {
	StepType
	Reward      float64
	Observation O
	Number      int
	end         EndType
}

// New returns a new TimeStep
func New[O any](t StepType, r float64, o O, n int) TimeStep[O] {
	return TimeStep[O]{StepType: t, Reward: r, Observation: o, Number: n}
}

// First returns whether a TimeStep is the first in an episode
func (t *TimeStep[O]) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an episode
func (t *TimeStep[O]) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an episode
func (t *TimeStep[O]) Last() bool {
	return t.StepType == Last
}

// SetEnd marks the TimeStep as the last in its episode, recording the
// reason the episode ended
func (t *TimeStep[O]) SetEnd(e EndType) {
	t.StepType = Last
	t.end = e
}

// EndType returns the reason the episode ended, or Nil if the TimeStep
// is not the last in its episode
func (t *TimeStep[O]) EndType() EndType {
	return t.end
}

func (t TimeStep[O]) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Number)
}
