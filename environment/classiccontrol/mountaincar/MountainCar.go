// Package mountaincar implements the Mountain Car classic control
// environment with a discretized state space, so that it can be solved
// by tabular agents
package mountaincar

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/spatial/r1"

	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/timestep"
	"github.com/samuelfneumann/tabular/utils/floatutils"
)

const (
	MinPosition float64 = -1.2
	MaxPosition float64 = 0.6
	MaxSpeed    float64 = 0.07
	Power       float64 = 0.0015 // Engine power
	Gravity     float64 = 0.0025

	// Number of continuous state features
	StateDims int = 2
)

// Action is the direction in which the car accelerates
type Action int

const (
	AccelerateLeft Action = iota
	NoAccelerate
	AccelerateRight
)

// Actions are the legal actions in every Mountain Car state
var Actions = []Action{AccelerateLeft, NoAccelerate, AccelerateRight}

func (a Action) String() string {
	switch a {
	case AccelerateLeft:
		return "AccelerateLeft"
	case NoAccelerate:
		return "NoAccelerate"
	case AccelerateRight:
		return "AccelerateRight"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// State is a discretized Mountain Car state: the index of the bin each
// of the position and velocity falls into
type State [StateDims]int

// MountainCar implements the classic control Mountain Car environment.
// In this environment, the agent controls a car in a valley between two
// hills. The car is underpowered and cannot drive up the hill unless
// it rocks back and forth from hill to hill, using its momentum to
// gradually climb higher.
//
// State features consist of the x position of the car and its velocity.
// These features are bounded by the MinPosition, MaxPosition, and
// MaxSpeed constants defined in this package. The sign of the velocity
// feature denotes direction, with negative meaning that the car is
// travelling left and positive meaning that the car is travelling
// right. Upon reaching the minimum position, the velocity of the car
// is set to 0. Observations returned to the agent are the discretized
// State of these features.
//
// Actions determine in which direction to apply full accelerating
// force to the car. Illegal actions result in a panic.
type MountainCar struct {
	*Goal
	starter environment.Starter[[]float64]
	bins    *environment.Bins

	lastStep timestep.TimeStep[[]float64]
	rng      *rand.Rand

	positionBounds r1.Interval
	speedBounds    r1.Interval
	power          float64
	gravity        float64
}

// New creates a new Mountain Car environment. Starting states are
// drawn from s and discretized by b, while t determines rewards and
// episode termination.
func New(t *Goal, s environment.Starter[[]float64], b *environment.Bins,
	seed uint64) (*MountainCar, error) {
	if b.Dims() != StateDims {
		return nil, fmt.Errorf("new: bins should have %d dimensions, "+
			"have %d", StateDims, b.Dims())
	}

	return &MountainCar{
		Goal:           t,
		starter:        s,
		bins:           b,
		rng:            rand.New(rand.NewSource(seed)),
		positionBounds: r1.Interval{Min: MinPosition, Max: MaxPosition},
		speedBounds:    r1.Interval{Min: -MaxSpeed, Max: MaxSpeed},
		power:          Power,
		gravity:        Gravity,
	}, nil
}

// DefaultBins returns a discretization of the position and velocity
// into 12 bins each
func DefaultBins() *environment.Bins {
	b, err := environment.NewBins([]r1.Interval{
		{Min: MinPosition, Max: MaxPosition},
		{Min: -MaxSpeed, Max: MaxSpeed},
	}, []int{12, 12})
	if err != nil {
		panic(err)
	}
	return b
}

// Reset resets the environment and returns a starting state drawn from
// the environment Starter
func (m *MountainCar) Reset() timestep.TimeStep[State] {
	start := m.starter.Start()
	validateState(start, m.positionBounds, m.speedBounds)

	m.lastStep = timestep.New(timestep.First, 0, start, 0)
	return timestep.New(timestep.First, 0, m.discretize(start), 0)
}

// Actions returns the legal actions, which are the same in every state
func (m *MountainCar) Actions() []Action {
	return Actions
}

// RandomAction returns a uniformly random action
func (m *MountainCar) RandomAction() Action {
	return Actions[m.rng.Intn(len(Actions))]
}

// Step takes one environmental step given action a and returns the
// next, discretized, timestep
func (m *MountainCar) Step(a Action) timestep.TimeStep[State] {
	if a < AccelerateLeft || a > AccelerateRight {
		panic(fmt.Sprintf("step: illegal action %v ∉ (0, 1, 2)",
			int(a)))
	}

	// Convert action (0, 1, 2) to a force (-1, 0, 1)
	force := float64(a - NoAccelerate)
	nextState := m.nextState(force)

	reward := m.GetReward(m.lastStep.Observation, a, nextState)
	next := timestep.New(timestep.Mid, reward, nextState,
		m.lastStep.Number+1)
	m.End(&next)
	m.lastStep = next

	step := timestep.New(timestep.Mid, reward, m.discretize(nextState),
		next.Number)
	if next.Last() {
		step.SetEnd(next.EndType())
	}
	return step
}

// Continuous returns the underlying continuous state of the car
func (m *MountainCar) Continuous() []float64 {
	state := make([]float64, StateDims)
	copy(state, m.lastStep.Observation)
	return state
}

// nextState calculates the next state in the environment given a force
func (m *MountainCar) nextState(force float64) []float64 {
	state := m.lastStep.Observation
	position, velocity := state[0], state[1]

	// Update the velocity
	velocity += force*m.power - m.gravity*math.Cos(3*position)
	velocity = floatutils.ClipInterval(velocity, m.speedBounds)

	// Update the position
	position += velocity
	position = floatutils.ClipInterval(position, m.positionBounds)

	// Stop the car at the left wall
	if position <= m.positionBounds.Min && velocity < 0 {
		velocity = 0
	}

	return []float64{position, velocity}
}

func (m *MountainCar) discretize(obs []float64) State {
	var state State
	m.bins.Discretize(obs, state[:])
	return state
}

// String returns a string representation of the environment
func (m *MountainCar) String() string {
	str := "Mountain Car  |  Position: %v  |  Speed: %v"
	state := m.lastStep.Observation
	return fmt.Sprintf(str, state[0], state[1])
}

// validateState validates the state to ensure the position and speed
// are within the environmental limits
func validateState(s []float64, positionBounds, speedBounds r1.Interval) {
	if len(s) != StateDims {
		panic(fmt.Sprintf("reset: start state should have %d features, "+
			"have %d", StateDims, len(s)))
	}

	position := s[0]
	if position < positionBounds.Min || position > positionBounds.Max {
		panic(fmt.Sprintf("illegal position %v ∉ [%v, %v]", position,
			positionBounds.Min, positionBounds.Max))
	}

	speed := s[1]
	if speed < speedBounds.Min || speed > speedBounds.Max {
		panic(fmt.Sprintf("illegal speed %v ∉ [%v, %v]", speed,
			speedBounds.Min, speedBounds.Max))
	}
}
