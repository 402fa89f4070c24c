package cartpole

import (
	"math"

	"gonum.org/v1/gonum/spatial/r1"

	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/timestep"
)

const (
	FailAngle    float64 = 12 * 2 * math.Pi / 360
	FailPosition float64 = 2.4
)

// Balance implements the classic control Cartpole Balance task. In this
// Task, the goal of the agent is to balance the pole on the cart in
// an upright position for as long as possible.
//
// The rewards are +1 for every timestep and -1 when the pole has fallen
// below some set angle threshold θ.
//
// Episodes end after a step limit, after the pole has fallen below
// the angle threshold θ, or after the cart has left the track.
type Balance struct {
	stepLimiter environment.StepLimit[[]float64]
	limiter     *environment.IntervalLimit
	failAngle   float64
}

// NewBalance creates and returns a new Balance task
func NewBalance(episodeSteps int, failAngle, failPosition float64) *Balance {
	stepLimiter := environment.NewStepLimit[[]float64](episodeSteps)

	legal := []r1.Interval{
		{Min: -failPosition, Max: failPosition},
		{Min: -failAngle, Max: failAngle},
	}
	limiter, err := environment.NewIntervalLimit(legal, []int{0, 2},
		timestep.TerminalStateReached)
	if err != nil {
		panic(err)
	}

	return &Balance{stepLimiter, limiter, failAngle}
}

// End checks if a TimeStep is the last in an episode. If so, it marks
// the TimeStep as the last and returns true. Otherwise, the function
// does not adjust the TimeStep and returns false.
func (b *Balance) End(t *timestep.TimeStep[[]float64]) bool {
	if end := b.limiter.End(t); end {
		return true
	}
	return b.stepLimiter.End(t)
}

// GetReward returns the reward for an action taken in some state,
// resulting in a transition to the next state nextState.
func (b *Balance) GetReward(_ []float64, _ Action,
	nextState []float64) float64 {
	angle := math.Abs(nextState[2])

	// Angle of 0 is pointing straight up, so we want angles to be
	// less than the failAngle
	if angle < b.failAngle {
		return 1.0
	}
	return -1.0
}

// Min returns the minimum possible reward that can be received in the
// environment
func (b *Balance) Min() float64 {
	return -1.0
}

// Max returns the maximum possible reward that can be received in the
// environment
func (b *Balance) Max() float64 {
	return 1.0
}
