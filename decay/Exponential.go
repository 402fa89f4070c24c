package decay

import "math"

// Exponential implements an exponential decay:
//
//	v(t) = vf + (vi - vf) * exp(-rate * t)
//
// The value approaches vf asymptotically.
type Exponential struct {
	rate, vi, vf float64
}

// NewExponential returns a new Exponential Decay
func NewExponential(rate, vi, vf float64) (*Exponential, error) {
	if err := validate(rate, vi, vf); err != nil {
		return nil, err
	}
	return &Exponential{rate, vi, vf}, nil
}

// Evaluate returns the decayed value at time t
func (e *Exponential) Evaluate(t float64) float64 {
	return e.vf + (e.vi-e.vf)*math.Exp(-e.rate*t)
}
