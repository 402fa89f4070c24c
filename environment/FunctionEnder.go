package environment

import "github.com/samuelfneumann/tabular/timestep"

// FunctionEnder ends an episode whenever a function of the observation
// returns true.
type FunctionEnder[O any] struct {
	end     func(O) bool
	endType timestep.EndType
}

// NewFunctionEnder returns a new FunctionEnder which ends episodes with
// end type endType when f returns true.
func NewFunctionEnder[O any](f func(O) bool,
	endType timestep.EndType) *FunctionEnder[O] {
	return &FunctionEnder[O]{f, endType}
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode termination. If the episode
// should be ended, End() will mark the timestep as timestep.Last with
// the appropriate end type.
func (f *FunctionEnder[O]) End(t *timestep.TimeStep[O]) bool {
	if f.end(t.Observation) {
		t.SetEnd(f.endType)
		return true
	}
	return false
}
