package train

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/config"
	"github.com/samuelfneumann/tabular/environment/envconfig"
	"github.com/samuelfneumann/tabular/environment/gridworld"
	"github.com/samuelfneumann/tabular/experiment/tracker"
)

func gridWorldConfig(t *testing.T) *config.Config {
	c := config.Default()
	c.Seed = 3
	c.Episodes = 30
	c.Environment = envconfig.Config{
		Environment:   envconfig.GridWorld,
		EpisodeCutoff: 50,
		GridWorld: envconfig.GridWorldConfig{
			Rows:       3,
			Cols:       3,
			Goals:      []gridworld.Cell{{X: 2, Y: 2}},
			StepReward: -1,
		},
	}
	c.Output = config.OutputConfig{Dir: t.TempDir(), CheckpointEvery: 10,
		CheckpointNaming: config.EnumeratedNaming}
	require.NoError(t, c.Validate())
	return c
}

func TestTrainGridWorld(t *testing.T) {
	logger, hook := test.NewNullLogger()
	c := gridWorldConfig(t)

	var out bytes.Buffer
	require.NoError(t, Train(context.Background(), c, "", &out, logger))
	assert.Contains(t, out.String(), "[100.00%]")

	returns, err := tracker.LoadData[float64](filepath.Join(c.Output.Dir,
		"return.bin"))
	require.NoError(t, err)
	assert.Len(t, returns, 30)

	lengths, err := tracker.LoadData[int](filepath.Join(c.Output.Dir,
		"episode_length.bin"))
	require.NoError(t, err)
	require.Len(t, lengths, 30)
	for i, length := range lengths {
		assert.LessOrEqual(t, length, 50)

		// Every step but the one reaching the goal is rewarded -1
		if length < 50 {
			assert.Equal(t, -float64(length-1), returns[i])
		} else {
			assert.Contains(t, []float64{-49, -50}, returns[i])
		}
	}

	checkpoints, err := filepath.Glob(filepath.Join(c.Output.Dir,
		"checkpoint-*.bin"))
	require.NoError(t, err)
	assert.Len(t, checkpoints, 3)

	values, err := filepath.Glob(filepath.Join(c.Output.Dir, "values-*.bin"))
	require.NoError(t, err)
	assert.Len(t, values, 1)

	last := hook.LastEntry()
	assert.Equal(t, "training finished", last.Message)
	assert.Equal(t, 30, last.Data["episodes"])
}

func TestTrainTimestampCheckpoints(t *testing.T) {
	logger, _ := test.NewNullLogger()
	c := gridWorldConfig(t)
	c.Output.CheckpointNaming = config.TimestampNaming
	require.NoError(t, c.Validate())

	require.NoError(t, Train(context.Background(), c, "", &bytes.Buffer{},
		logger))

	enumerated, err := filepath.Glob(filepath.Join(c.Output.Dir,
		"checkpoint-*-[0-9].bin"))
	require.NoError(t, err)
	assert.Empty(t, enumerated)

	// Checkpoint names end with the UTC time they were taken at
	stamped, err := filepath.Glob(filepath.Join(c.Output.Dir,
		"checkpoint-*-????????T??????.?????????.bin"))
	require.NoError(t, err)
	assert.Len(t, stamped, 3)
}

func TestTrainCartpole(t *testing.T) {
	logger, _ := test.NewNullLogger()
	c := config.Default()
	c.Episodes = 5
	c.Agent.Type = agent.SampleAverage
	c.Environment.Environment = envconfig.Cartpole
	c.Environment.EpisodeCutoff = 20
	c.Output.Dir = t.TempDir()

	require.NoError(t, Train(context.Background(), c, "", &bytes.Buffer{},
		logger))

	lengths, err := tracker.LoadData[int](filepath.Join(c.Output.Dir,
		"episode_length.bin"))
	require.NoError(t, err)
	assert.Len(t, lengths, 5)
}

func TestTrainMountainCar(t *testing.T) {
	logger, _ := test.NewNullLogger()
	c := config.Default()
	c.Episodes = 3
	c.Environment.Environment = envconfig.MountainCar
	c.Environment.EpisodeCutoff = 100
	c.Output.Dir = t.TempDir()

	require.NoError(t, Train(context.Background(), c, "", &bytes.Buffer{},
		logger))

	returns, err := tracker.LoadData[float64](filepath.Join(c.Output.Dir,
		"return.bin"))
	require.NoError(t, err)
	require.Len(t, returns, 3)
	for _, r := range returns {
		assert.GreaterOrEqual(t, r, -100.0)
		assert.LessOrEqual(t, r, 0.0)
	}
}

func TestTrainCancelled(t *testing.T) {
	logger, _ := test.NewNullLogger()
	c := gridWorldConfig(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Train(ctx, c, "", &bytes.Buffer{}, logger)
	assert.True(t, errors.Is(err, context.Canceled))

	// Data is still saved
	returns, err := tracker.LoadData[float64](filepath.Join(c.Output.Dir,
		"return.bin"))
	require.NoError(t, err)
	assert.Empty(t, returns)
}

func TestTrainUnknownEnvironment(t *testing.T) {
	logger, _ := test.NewNullLogger()
	c := config.Default()
	c.Environment.Environment = "Maze"

	err := Train(context.Background(), c, "", &bytes.Buffer{}, logger)
	assert.EqualError(t, err, `train: no such environment "Maze"`)
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.log")
	l, closeLog, err := NewLogger(config.LogConfig{Path: path,
		Format: "json", Level: "debug"})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.WithField("episode", 3).Debug("episode finished")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"episode":3`))

	_, _, err = NewLogger(config.LogConfig{Format: "text", Level: "loud"})
	assert.Error(t, err)
}
