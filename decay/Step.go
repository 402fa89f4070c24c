package decay

import (
	"fmt"
	"math"
)

// Step implements a piecewise-constant geometric decay:
//
//	v(t) = max(vi * rate^floor(t / step), vf)
//
// or min(…, vf) when the value increases towards vf. The value only
// changes at multiples of step. With a negative rate the sign of
// rate^floor(t / step) alternates between steps, and only values on
// the far side of vf are clamped.
type Step struct {
	rate, vi, vf, step float64
}

// NewStep returns a new Step Decay. The step size must be positive.
func NewStep(rate, vi, vf, step float64) (*Step, error) {
	if err := validate(rate, vi, vf); err != nil {
		return nil, err
	}
	if step <= 0 {
		return nil, &ValidationError{
			Rate:    rate,
			Initial: vi,
			Final:   vf,
			msg:     fmt.Sprintf("step must be positive, got %v", step),
		}
	}
	return &Step{rate, vi, vf, step}, nil
}

// Evaluate returns the decayed value at time t
func (s *Step) Evaluate(t float64) float64 {
	value := s.vi * math.Pow(s.rate, math.Floor(t/s.step))
	return clamp(value, s.vi, s.vf)
}
