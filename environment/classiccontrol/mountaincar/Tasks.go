package mountaincar

import (
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/timestep"
)

const (
	// Commonly used goal position
	GoalPosition float64 = 0.45
)

// Goal implements the classic control task of reaching a goal on
// Mountain Car. In this task, the agent must learn to drive the car
// up the hill and reach the goal state. Since the car is underpowered,
// it must rock back and forth from hill to hill until it reaches the
// goal.
//
// Rewards are -1 on each timestep and 0 for the action which
// transitions the car to the goal.
//
// Episodes end after a step limit or when the car reaches the goal
// state.
type Goal struct {
	goalEnder *environment.FunctionEnder[[]float64]
	stepEnder environment.StepLimit[[]float64]
	goalX     float64 // x position of goal
}

// NewGoal creates and returns a new Goal given the maximum number of
// episode steps and the goal x position
func NewGoal(episodeSteps int, goalX float64) *Goal {
	g := &Goal{
		stepEnder: environment.NewStepLimit[[]float64](episodeSteps),
		goalX:     goalX,
	}
	g.goalEnder = environment.NewFunctionEnder(g.AtGoal,
		timestep.TerminalStateReached)
	return g
}

// AtGoal returns whether the argument continuous state is at the goal
func (g *Goal) AtGoal(state []float64) bool {
	return state[0] >= g.goalX
}

// GetReward returns the reward for a given state and action, resulting
// in a given next state. Since this is a cost-to-goal Task, rewards are
// -1.0 for all actions, except for an action which leads to the goal
// state, which results in a reward of 0.0
func (g *Goal) GetReward(_ []float64, _ Action, nextState []float64) float64 {
	if g.AtGoal(nextState) {
		return 0.0
	}
	return -1.0
}

// Min returns the minimum attainable reward over all timesteps
func (g *Goal) Min() float64 { return -1.0 }

// Max returns the maximum attainable reward over all timesteps
func (g *Goal) Max() float64 { return 0.0 }

// End determines if a timestep is the last timestep in the episode,
// either because the goal was reached or because the step limit was
func (g *Goal) End(t *timestep.TimeStep[[]float64]) bool {
	return g.goalEnder.End(t) || g.stepEnder.End(t)
}
