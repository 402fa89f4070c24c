package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainCommand(t *testing.T) {
	dir := t.TempDir()
	conf := `
episodes: 10
environment:
  name: GridWorld
  episode_cutoff: 20
  gridworld:
    rows: 2
    cols: 2
    goals: [{x: 1, y: 1}]
    step_reward: -1
agent:
  type: QTable
  alpha: 0.5
  gamma: 0.9
log:
  path: ` + filepath.Join(dir, "train.log") + `
output:
  dir: ` + filepath.Join(dir, "out") + `
`
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(conf), 0o644))

	var out bytes.Buffer
	root := RootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"train", "--config", path})
	require.NoError(t, root.Execute())

	_, err := os.Stat(filepath.Join(dir, "out", "return.bin"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "train.log"))
	assert.NoError(t, err)
}

func TestTrainCommandBadConfig(t *testing.T) {
	root := RootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"train", "--config",
		filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, root.Execute())
}
