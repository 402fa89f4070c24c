// Package envconfig provides configuration structs for configuring
// environments with default parameters and tasks. Environment
// configurations in this package are JSON and YAML serializable.
package envconfig

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r1"

	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/environment/classiccontrol/cartpole"
	"github.com/samuelfneumann/tabular/environment/classiccontrol/mountaincar"
	"github.com/samuelfneumann/tabular/environment/gridworld"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	GridWorld   EnvName = "GridWorld"
	Cartpole    EnvName = "Cartpole"
	MountainCar EnvName = "MountainCar"
)

// Config implements a specific configuration of a specific
// environment. Only the section of the Config named by Environment is
// used.
type Config struct {
	Environment EnvName `json:"name" yaml:"name"`

	// EpisodeCutoff is the maximum number of steps in an episode. For
	// GridWorld, 0 means episodes only end at a goal.
	EpisodeCutoff int `json:"episode_cutoff" yaml:"episode_cutoff"`

	GridWorld   GridWorldConfig   `json:"gridworld" yaml:"gridworld"`
	Cartpole    CartpoleConfig    `json:"cartpole" yaml:"cartpole"`
	MountainCar MountainCarConfig `json:"mountaincar" yaml:"mountaincar"`
}

// GridWorldConfig configures a GridWorld with the Goal task. If Starts
// is not empty, episodes start uniformly at random in one of its cells
// and Start is ignored.
type GridWorldConfig struct {
	Rows       int              `json:"rows" yaml:"rows"`
	Cols       int              `json:"cols" yaml:"cols"`
	Start      gridworld.Cell   `json:"start" yaml:"start"`
	Starts     []gridworld.Cell `json:"starts" yaml:"starts"`
	Goals      []gridworld.Cell `json:"goals" yaml:"goals"`
	StepReward float64          `json:"step_reward" yaml:"step_reward"`
	GoalReward float64          `json:"goal_reward" yaml:"goal_reward"`
}

// CartpoleConfig configures Cartpole with the Balance task
type CartpoleConfig struct {
	FailAngle    float64 `json:"fail_angle" yaml:"fail_angle"` // degrees
	FailPosition float64 `json:"fail_position" yaml:"fail_position"`

	// Bins is the number of bins to discretize the position, speed,
	// angle, and angular velocity into. Empty means the default bins.
	Bins []int `json:"bins" yaml:"bins"`
}

// MountainCarConfig configures Mountain Car with the Goal task
type MountainCarConfig struct {
	// GoalPosition is the x position the car must reach. Zero means
	// mountaincar.GoalPosition.
	GoalPosition float64 `json:"goal_position" yaml:"goal_position"`

	// Bins is the number of bins to discretize the position and
	// velocity into. Empty means the default bins.
	Bins []int `json:"bins" yaml:"bins"`
}

// Validate returns an error describing whether or not the
// configuration is valid
func (c Config) Validate() error {
	switch c.Environment {
	case GridWorld:
		_, err := CreateGridWorld(c.GridWorld, c.EpisodeCutoff, 0)
		return err

	case Cartpole:
		_, err := CreateCartpole(c.Cartpole, c.EpisodeCutoff, 0)
		return err

	case MountainCar:
		_, err := CreateMountainCar(c.MountainCar, c.EpisodeCutoff, 0)
		return err
	}

	return fmt.Errorf("validate: no such environment %q", c.Environment)
}

// CreateGridWorld is a factory for creating the GridWorld environment
// with the Goal task
func CreateGridWorld(c GridWorldConfig, cutoff int,
	seed uint64) (environment.Environment[gridworld.Cell, gridworld.Direction],
	error) {
	if cutoff < 0 {
		return nil, fmt.Errorf("createGridWorld: episode cutoff must be "+
			"non-negative, got %v", cutoff)
	}

	goal, err := gridworld.NewGoal(c.Goals, c.StepReward, c.GoalReward)
	if err != nil {
		return nil, fmt.Errorf("createGridWorld: %w", err)
	}

	starts := c.Starts
	if len(starts) == 0 {
		starts = []gridworld.Cell{c.Start}
	}
	for _, cell := range starts {
		if cell.X < 0 || cell.X >= c.Cols || cell.Y < 0 || cell.Y >= c.Rows {
			return nil, fmt.Errorf("createGridWorld: start %v out of "+
				"bounds (%d, %d)", cell, c.Rows, c.Cols)
		}
	}

	var start environment.Starter[gridworld.Cell] = gridworld.NewSingleStart(
		c.Start.X, c.Start.Y)
	if len(c.Starts) != 0 {
		start, err = environment.NewCategoricalStarter(c.Starts, nil, seed)
		if err != nil {
			return nil, fmt.Errorf("createGridWorld: %w", err)
		}
	}

	g, err := gridworld.New(c.Rows, c.Cols, goal, start, seed)
	if err != nil {
		return nil, fmt.Errorf("createGridWorld: %w", err)
	}

	if cutoff == 0 {
		return g, nil
	}
	return environment.NewStepLimited[gridworld.Cell, gridworld.Direction](
		g, cutoff), nil
}

// CreateCartpole is a factory for creating the Cartpole environment
// with the Balance task. Starting states are drawn uniformly from
// [-0.05, 0.05] in each dimension.
func CreateCartpole(c CartpoleConfig, cutoff int,
	seed uint64) (environment.Environment[cartpole.State, cartpole.Action],
	error) {
	if cutoff <= 0 {
		return nil, fmt.Errorf("createCartpole: episode cutoff must be "+
			"positive, got %v", cutoff)
	}

	failAngle := cartpole.FailAngle
	if c.FailAngle != 0 {
		failAngle = c.FailAngle * math.Pi / 180
	}
	failPosition := cartpole.FailPosition
	if c.FailPosition != 0 {
		failPosition = c.FailPosition
	}
	task := cartpole.NewBalance(cutoff, failAngle, failPosition)

	bins := cartpole.DefaultBins()
	if len(c.Bins) != 0 {
		var err error
		bins, err = environment.NewBins([]r1.Interval{
			{Min: -failPosition, Max: failPosition},
			{Min: -3.0, Max: 3.0},
			{Min: -failAngle, Max: failAngle},
			{Min: -3.5, Max: 3.5},
		}, c.Bins)
		if err != nil {
			return nil, fmt.Errorf("createCartpole: %w", err)
		}
	}

	bound := r1.Interval{Min: -0.05, Max: 0.05}
	s := environment.NewUniformStarter([]r1.Interval{bound, bound, bound,
		bound}, seed)

	cp, err := cartpole.New(task, s, bins, seed)
	if err != nil {
		return nil, fmt.Errorf("createCartpole: %w", err)
	}
	return cp, nil
}

// CreateMountainCar is a factory for creating the Mountain Car
// environment with the Goal task. Starting positions are drawn
// uniformly from [-0.6, -0.4] with zero velocity.
func CreateMountainCar(c MountainCarConfig, cutoff int,
	seed uint64) (environment.Environment[mountaincar.State,
	mountaincar.Action], error) {
	if cutoff <= 0 {
		return nil, fmt.Errorf("createMountainCar: episode cutoff must be "+
			"positive, got %v", cutoff)
	}

	goalX := mountaincar.GoalPosition
	if c.GoalPosition != 0 {
		goalX = c.GoalPosition
	}
	if goalX <= mountaincar.MinPosition || goalX > mountaincar.MaxPosition {
		return nil, fmt.Errorf("createMountainCar: goal position %v ∉ "+
			"(%v, %v]", goalX, mountaincar.MinPosition,
			mountaincar.MaxPosition)
	}
	task := mountaincar.NewGoal(cutoff, goalX)

	bins := mountaincar.DefaultBins()
	if len(c.Bins) != 0 {
		var err error
		bins, err = environment.NewBins([]r1.Interval{
			{Min: mountaincar.MinPosition, Max: mountaincar.MaxPosition},
			{Min: -mountaincar.MaxSpeed, Max: mountaincar.MaxSpeed},
		}, c.Bins)
		if err != nil {
			return nil, fmt.Errorf("createMountainCar: %w", err)
		}
	}

	position := r1.Interval{Min: -0.6, Max: -0.4}
	velocity := r1.Interval{Min: 0.0, Max: 0.0}
	s := environment.NewUniformStarter([]r1.Interval{position, velocity},
		seed)

	m, err := mountaincar.New(task, s, bins, seed)
	if err != nil {
		return nil, fmt.Errorf("createMountainCar: %w", err)
	}
	return m, nil
}
