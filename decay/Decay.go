// Package decay implements scalar values which anneal over the course
// of training.
//
// A Decay is evaluated at some elapsed time t, usually the number of
// episodes completed so far, and returns the current value of the
// decayed parameter. Decays are immutable once constructed and are safe
// to share between agents.
package decay

import "fmt"

// Decay implements a time-decaying value
type Decay interface {
	// Evaluate returns the value at time t
	Evaluate(t float64) float64
}

// ValidationError is returned when a Decay is constructed with
// parameters that cannot describe a decay towards the final value
type ValidationError struct {
	Rate    float64
	Initial float64
	Final   float64
	msg     string
}

// Error implements the error interface
func (v *ValidationError) Error() string {
	return fmt.Sprintf("%v: rate = %v, vi = %v, vf = %v", v.msg, v.Rate,
		v.Initial, v.Final)
}

// validate ensures that vi - vf has the same sign as the rate. A
// non-negative rate requires a value decreasing towards vf, while a
// negative rate requires a value increasing towards vf.
func validate(rate, vi, vf float64) error {
	if (rate >= 0 && vi > vf) || (rate < 0 && vi < vf) {
		return nil
	}
	return &ValidationError{
		Rate:    rate,
		Initial: vi,
		Final:   vf,
		msg:     "vi - vf must have same sign as rate",
	}
}

// clamp clamps value so that it does not pass vf when travelling from
// vi towards vf
func clamp(value, vi, vf float64) float64 {
	if vi > vf {
		if value < vf {
			return vf
		}
		return value
	}
	if value > vf {
		return vf
	}
	return value
}
