package decay

// InverseTime implements an inverse time decay:
//
//	v(t) = vf + (vi - vf) / (1 + rate * t)
//
// which approaches vf more slowly than an Exponential decay with the
// same rate.
type InverseTime struct {
	rate, vi, vf float64
}

// NewInverseTime returns a new InverseTime Decay
func NewInverseTime(rate, vi, vf float64) (*InverseTime, error) {
	if err := validate(rate, vi, vf); err != nil {
		return nil, err
	}
	return &InverseTime{rate, vi, vf}, nil
}

// Evaluate returns the decayed value at time t
func (i *InverseTime) Evaluate(t float64) float64 {
	return i.vf + (i.vi-i.vf)/(1+i.rate*t)
}
