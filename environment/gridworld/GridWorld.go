// Package gridworld implements 2D gridworld environments
package gridworld

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/timestep"
)

// Cell is a position in a GridWorld. X indexes columns and Y indexes
// rows, with (0, 0) in the bottom left corner.
type Cell struct {
	X, Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Direction is an action in a GridWorld
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Actions are the legal actions in every GridWorld state
var Actions = []Direction{Left, Right, Up, Down}

func (d Direction) String() string {
	switch d {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Up:
		return "Up"
	case Down:
		return "Down"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// GridWorld represents a gridworld environment.
//
// The agent moves one cell in the chosen direction on each step.
// Moving into a wall leaves the agent in place. Episodes end when the
// agent reaches a goal cell of the GridWorld's Task.
//
// GridWorld implements the environment.Environment interface
type GridWorld struct {
	*Goal
	environment.Starter[Cell]
	r, c        int
	position    Cell
	currentStep timestep.TimeStep[Cell]
	rng         *rand.Rand
}

// New creates a new GridWorld with r rows and c columns. Starting
// positions are drawn from the Starter s, while the Goal t determines
// the rewards and terminal cells.
func New(r, c int, t *Goal, s environment.Starter[Cell],
	seed uint64) (*GridWorld, error) {
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("new: gridworld dimensions must be "+
			"positive, got (%d, %d)", r, c)
	}
	for _, goal := range t.Cells() {
		if !inBounds(goal, r, c) {
			return nil, fmt.Errorf("new: goal %v out of bounds (%d, %d)",
				goal, r, c)
		}
	}

	g := &GridWorld{
		Goal:    t,
		Starter: s,
		r:       r,
		c:       c,
		rng:     rand.New(rand.NewSource(seed)),
	}
	return g, nil
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.r, g.c
}

// Position returns the current position of the agent
func (g *GridWorld) Position() Cell {
	return g.position
}

// Reset resets the environment to a starting position drawn from its
// Starter and returns the first TimeStep of the episode
func (g *GridWorld) Reset() timestep.TimeStep[Cell] {
	start := g.Start()
	if !inBounds(start, g.r, g.c) {
		panic(fmt.Sprintf("reset: start %v out of bounds (%d, %d)", start,
			g.r, g.c))
	}
	g.position = start

	g.currentStep = timestep.New(timestep.First, 0, start, 0)
	return g.currentStep
}

// Actions returns the legal actions, which are the same in every cell
func (g *GridWorld) Actions() []Direction {
	return Actions
}

// RandomAction returns a uniformly random action
func (g *GridWorld) RandomAction() Direction {
	return Actions[g.rng.Intn(len(Actions))]
}

// Step moves the agent in the argument direction and returns the
// resulting TimeStep
func (g *GridWorld) Step(action Direction) timestep.TimeStep[Cell] {
	next := g.move(g.position, action)
	reward := g.GetReward(g.position, action, next)
	g.position = next

	step := timestep.New(timestep.Mid, reward, next,
		g.currentStep.Number+1)
	g.End(&step)

	g.currentStep = step
	return step
}

// move returns the cell reached by moving from cell in direction d
func (g *GridWorld) move(cell Cell, d Direction) Cell {
	next := cell
	switch d {
	case Left:
		next.X--
	case Right:
		next.X++
	case Up:
		next.Y++
	case Down:
		next.Y--
	default:
		panic(fmt.Sprintf("step: illegal action %v", d))
	}

	if !inBounds(next, g.r, g.c) {
		return cell
	}
	return next
}

func (g *GridWorld) String() string {
	str := "GridWorld | At: %v  |   Goal: %v  |  Bounds: (%d, %d)"

	return fmt.Sprintf(str, g.position, g.Goal, g.r, g.c)
}

func inBounds(cell Cell, r, c int) bool {
	return cell.X >= 0 && cell.X < c && cell.Y >= 0 && cell.Y < r
}
