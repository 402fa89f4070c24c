package gridworld

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/timestep"
)

// Goal represents the task of reaching goal cells in a GridWorld.
// Every step which does not enter a goal is rewarded with the
// timestep reward, while entering a goal is rewarded with the goal
// reward and ends the episode.
type Goal struct {
	goals          map[Cell]bool
	timeStepReward float64
	goalReward     float64
	ender          *environment.FunctionEnder[Cell]
}

// NewGoal creates and returns a new Goal task with goal cells goals
func NewGoal(goals []Cell, timeStepReward, goalReward float64) (*Goal,
	error) {
	if len(goals) == 0 {
		return nil, fmt.Errorf("newGoal: at least one goal is required")
	}

	g := &Goal{
		goals:          make(map[Cell]bool, len(goals)),
		timeStepReward: timeStepReward,
		goalReward:     goalReward,
	}
	for _, cell := range goals {
		g.goals[cell] = true
	}
	g.ender = environment.NewFunctionEnder(g.AtGoal,
		timestep.TerminalStateReached)

	return g, nil
}

// GetReward returns the reward for moving from state to nextState
func (g *Goal) GetReward(_ Cell, _ Direction, nextState Cell) float64 {
	if g.AtGoal(nextState) {
		return g.goalReward
	}
	return g.timeStepReward
}

// AtGoal returns whether a cell is a goal cell
func (g *Goal) AtGoal(cell Cell) bool {
	return g.goals[cell]
}

// End ends the episode if the TimeStep's observation is a goal cell
func (g *Goal) End(t *timestep.TimeStep[Cell]) bool {
	return g.ender.End(t)
}

// Cells returns the goal cells, ordered by row then column
func (g *Goal) Cells() []Cell {
	cells := make([]Cell, 0, len(g.goals))
	for cell := range g.goals {
		cells = append(cells, cell)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

// Min returns the minimum reward attainable in the Task
func (g *Goal) Min() float64 {
	return floats.Min([]float64{g.timeStepReward, g.goalReward})
}

// Max returns the maximum reward attainable in the Task
func (g *Goal) Max() float64 {
	return floats.Max([]float64{g.timeStepReward, g.goalReward})
}

func (g *Goal) String() string {
	return fmt.Sprint(g.Cells())
}
