package cartpole

import (
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/samuelfneumann/tabular/environment"
)

// State is a discretized Cartpole state: the index of the bin each of
// the position, speed, angle, and angular velocity falls into
type State [StateDims]int

// DefaultBins returns the discretization commonly used for tabular
// Cartpole: few bins for the cart, more for the pole.
func DefaultBins() *environment.Bins {
	b, err := environment.NewBins([]r1.Interval{
		{Min: -FailPosition, Max: FailPosition},
		{Min: -3.0, Max: 3.0},
		{Min: -FailAngle, Max: FailAngle},
		{Min: -3.5, Max: 3.5},
	}, []int{3, 3, 6, 6})
	if err != nil {
		panic(err)
	}
	return b
}

// discretize returns the State of a continuous state vector
func discretize(b *environment.Bins, obs []float64) State {
	var state State
	b.Discretize(obs, state[:])
	return state
}
