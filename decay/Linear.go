package decay

// Linear implements a linear decay:
//
//	v(t) = max(vi - rate * t, vf)
//
// When the rate is negative the value grows towards vf instead, and
// min replaces max. Either way, vf is reached exactly at
// t = (vi - vf) / rate and held from then on.
type Linear struct {
	rate, vi, vf float64
}

// NewLinear returns a new Linear Decay
func NewLinear(rate, vi, vf float64) (*Linear, error) {
	if err := validate(rate, vi, vf); err != nil {
		return nil, err
	}
	return &Linear{rate, vi, vf}, nil
}

// Evaluate returns the decayed value at time t
func (l *Linear) Evaluate(t float64) float64 {
	return clamp(l.vi-l.rate*t, l.vi, l.vf)
}
