package decay

// Constant is a Decay which never changes
type Constant struct {
	value float64
}

// NewConstant returns a new Constant Decay
func NewConstant(value float64) *Constant {
	return &Constant{value}
}

// Evaluate returns the constant value, ignoring t
func (c *Constant) Evaluate(float64) float64 {
	return c.value
}
