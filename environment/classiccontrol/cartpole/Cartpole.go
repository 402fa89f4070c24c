// Package cartpole implements the Cartpole classic control environment
// with a discretized state space, so that it can be solved by tabular
// agents
package cartpole

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
	// Physical constants
	Gravity        float64 = 9.8
	CartMass       float64 = 1.0
	PoleMass       float64 = 0.1
	HalfPoleLength float64 = 0.5  // half of pole length
	ForceMag       float64 = 10.0 // Magnification of force applied
	Dt             float64 = 0.02 // seconds between state updates

	// Bounds (+/-) on state variables
	PositionBounds float64 = 4.8
	AngleBounds    float64 = math.Pi

	// Number of continuous state features
	StateDims int = 4
)

// Action is the direction in which force is applied to the cart
type Action int

const (
	PushLeft Action = iota
	NoPush
	PushRight
)

// Actions are the legal actions in every Cartpole state
var Actions = []Action{PushLeft, NoPush, PushRight}

func (a Action) String() string {
	switch a {
	case PushLeft:
		return "PushLeft"
	case NoPush:
		return "NoPush"
	case PushRight:
		return "PushRight"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Cartpole implements the classic control environment Cartpole. In
// this environment, a pole is attached to a cart, which can move
// horizontally. The agent must keep the pole upright for as long as
// possible.
//
// The underlying state features are continuous and consist of the
// cart's x position and speed, as well as the pole's angle from the
// positive y-axis and the pole's angular velocity. Observations
// returned to the agent are the discretized State of these features,
// as determined by the environment's Bins.
//
// Actions are discrete and consist of the force applied to the cart:
//
//	Action		Meaning
//	PushLeft	Accelerate left
//	NoPush		Do nothing
//	PushRight	Accelerate right
type Cartpole struct {
	*Balance
	starter environment.Starter[[]float64]
	bins    *environment.Bins

	lastStep timestep.TimeStep[[]float64]
	rng      *rand.Rand

	gravity        float64
	forceMag       float64
	poleMass       float64
	halfPoleLength float64
	cartMass       float64
	dt             float64
	positionBounds r1.Interval
	angleBounds    r1.Interval
}

// New constructs a new Cartpole environment. Starting states are drawn
// from s and discretized by b, while t determines rewards and episode
// termination.
func New(t *Balance, s environment.Starter[[]float64], b *environment.Bins,
	seed uint64) (*Cartpole, error) {
	if b.Dims() != StateDims {
		return nil, fmt.Errorf("new: bins should have %d dimensions, "+
			"have %d", StateDims, b.Dims())
	}

	return &Cartpole{
		Balance:        t,
		starter:        s,
		bins:           b,
		rng:            rand.New(rand.NewSource(seed)),
		gravity:        Gravity,
		forceMag:       ForceMag,
		poleMass:       PoleMass,
		halfPoleLength: HalfPoleLength,
		cartMass:       CartMass,
		dt:             Dt,
		positionBounds: r1.Interval{Min: -PositionBounds, Max: PositionBounds},
		angleBounds:    r1.Interval{Min: -AngleBounds, Max: AngleBounds},
	}, nil
}

// Reset resets the environment and returns a starting state drawn from
// the environment Starter
func (c *Cartpole) Reset() timestep.TimeStep[State] {
	start := c.starter.Start()
	if len(start) != StateDims {
		panic(fmt.Sprintf("reset: start state should have %d features, "+
			"have %d", StateDims, len(start)))
	}

	c.lastStep = timestep.New(timestep.First, 0, start, 0)
	return timestep.New(timestep.First, 0, discretize(c.bins, start), 0)
}

// Actions returns the legal actions, which are the same in every state
func (c *Cartpole) Actions() []Action {
	return Actions
}

// RandomAction returns a uniformly random action
func (c *Cartpole) RandomAction() Action {
	return Actions[c.rng.Intn(len(Actions))]
}

// Step takes one environmental step given action a and returns the
// next, discretized, timestep. Illegal actions cause the environment
// to panic.
func (c *Cartpole) Step(a Action) timestep.TimeStep[State] {
	if a < PushLeft || a > PushRight {
		panic(fmt.Sprintf("step: illegal action %v ∉ (0, 1, 2)",
			int(a)))
	}

	// Convert action (0, 1, 2) to a direction (-1, 0, 1)
	direction := float64(a - NoPush)
	nextState := c.nextState(direction)

	reward := c.GetReward(c.lastStep.Observation, a, nextState)
	next := timestep.New(timestep.Mid, reward, nextState,
		c.lastStep.Number+1)

	// Check if the step ends the episode
	c.End(&next)
	c.lastStep = next

	step := timestep.New(timestep.Mid, reward, discretize(c.bins, nextState),
		next.Number)
	if next.Last() {
		step.SetEnd(next.EndType())
	}
	return step
}

// Continuous returns the underlying continuous state of the cartpole
func (c *Cartpole) Continuous() []float64 {
	state := make([]float64, StateDims)
	copy(state, c.lastStep.Observation)
	return state
}

// nextState computes the next continuous state after applying force in
// the argument direction, using Euler kinematic integration
func (c *Cartpole) nextState(direction float64) []float64 {
	state := c.lastStep.Observation
	x, xDot := state[0], state[1]
	th, thDot := state[2], state[3]

	force := direction * c.forceMag

	// Calculate physical variables to determine next state
	cosTheta := math.Cos(th)
	sinTheta := math.Sin(th)

	totalMass := c.poleMass + c.cartMass
	poleMassLength := c.poleMass * c.halfPoleLength

	temp := (force + poleMassLength*thDot*thDot*sinTheta) / totalMass
	thAcc := (c.gravity*sinTheta - cosTheta*temp) / (c.halfPoleLength *
		(4.0/3.0 - c.poleMass*cosTheta*cosTheta/totalMass))
	xAcc := temp - poleMassLength*thAcc*cosTheta/totalMass

	x += c.dt * xDot
	x = floatutils.ClipInterval(x, c.positionBounds)
	xDot += c.dt * xAcc

	th += c.dt * thDot
	th = normalizeAngle(th, c.angleBounds)
	thDot += c.dt * thAcc

	return []float64{x, xDot, th, thDot}
}

func (c *Cartpole) String() string {
	msg := "Cartpole  |  Position: %v  | Speed: %v  |  Angle: %v" +
		"  |  Angular Velocity: %v"

	state := c.lastStep.Observation
	return fmt.Sprintf(msg, state[0], state[1], state[2], state[3])
}

// normalizeAngle normalizes the pole angle to the appropriate limits
func normalizeAngle(th float64, angleBounds r1.Interval) float64 {
	if th > angleBounds.Max {
		return th - 2*angleBounds.Max
	} else if th < angleBounds.Min {
		return th - 2*angleBounds.Min
	}
	return th
}
