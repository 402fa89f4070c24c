package tabular

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/exploration"
	"github.com/samuelfneumann/tabular/timestep"
)

type cell struct {
	X, Y int
}

func TestTableDefaults(t *testing.T) {
	table := NewTable[cell, string]()

	assert.Equal(t, 0.0, table.Get(cell{1, 2}, "up"))
	_, ok := table.Lookup(cell{1, 2}, "up")
	assert.False(t, ok)

	// Reads never materialize entries
	table.Max(cell{1, 2}, []string{"up", "down"})
	table.Argmax(cell{1, 2}, []string{"up", "down"})
	assert.Equal(t, 0, table.Len())

	table.Set(cell{1, 2}, "up", 0.5)
	v, ok := table.Lookup(cell{1, 2}, "up")
	assert.True(t, ok)
	assert.Equal(t, 0.5, v)
	assert.Equal(t, 1, table.Len())
}

func TestTableMax(t *testing.T) {
	table := NewTable[int, int]()
	table.Set(0, 0, -1)
	table.Set(0, 1, -2)

	assert.Equal(t, 0.0, table.Max(0, nil))
	assert.Equal(t, -1.0, table.Max(0, []int{0, 1}))

	// Unseen actions default to 0.0
	assert.Equal(t, 0.0, table.Max(0, []int{0, 1, 2}))
	assert.Equal(t, 2, table.Argmax(0, []int{0, 1, 2}))
}

func TestTableArgmaxTies(t *testing.T) {
	table := NewTable[int, string]()
	table.Set(0, "a", 1)
	table.Set(0, "b", 3)
	table.Set(0, "c", 3)

	assert.Equal(t, "b", table.Argmax(0, []string{"a", "b", "c"}))
	assert.Equal(t, "c", table.Argmax(0, []string{"c", "b", "a"}))
	assert.Panics(t, func() { table.Argmax(0, nil) })
}

func TestTableSaveLoad(t *testing.T) {
	table := NewTable[cell, int]()
	table.Set(cell{0, 0}, 1, 0.25)
	table.Set(cell{2, 3}, 0, -4)
	table.Set(cell{2, 3}, 3, 10)

	filename := filepath.Join(t.TempDir(), "table.bin")
	require.NoError(t, table.Save(filename))

	loaded := NewTable[cell, int]()
	loaded.Set(cell{9, 9}, 9, 9)
	require.NoError(t, loaded.Load(filename))

	assert.Equal(t, table.values, loaded.values)
	assert.Equal(t, 3, loaded.Len())

	assert.Error(t, loaded.Load(filepath.Join(t.TempDir(), "missing")))
}

func TestTableRange(t *testing.T) {
	table := NewTable[int, int]()
	for i := 0; i < 5; i++ {
		table.Set(i, i, float64(i))
	}

	sum := 0.0
	table.Range(func(s, a int, v float64) bool {
		sum += v
		return true
	})
	assert.Equal(t, 10.0, sum)

	calls := 0
	table.Range(func(int, int, float64) bool {
		calls++
		return false
	})
	assert.Equal(t, 1, calls)
}

// line is a deterministic environment on positions 0..n. Action 1
// moves right and action 0 stays; reaching n ends the episode with a
// reward of 1.
type line struct {
	n, position, number int
}

func (l *line) Reset() timestep.TimeStep[int] {
	l.position, l.number = 0, 0
	return timestep.New(timestep.First, 0, 0, 0)
}

func (l *line) Actions() []int { return []int{0, 1} }

func (l *line) RandomAction() int { return 1 }

func (l *line) Step(action int) timestep.TimeStep[int] {
	l.position += action
	l.number++
	step := timestep.New(timestep.Mid, 0, l.position, l.number)
	if l.position == l.n {
		step.Reward = 1
		step.SetEnd(timestep.TerminalStateReached)
	}
	return step
}

func TestEpisode(t *testing.T) {
	env := &line{n: 3}

	var exps []agent.Experience[int, int]
	var nextActions [][]int
	summary := Episode[int, int](env,
		func(int, []int) int { return 1 },
		func(exp agent.Experience[int, int], next []int) {
			exps = append(exps, exp)
			nextActions = append(nextActions, next)
		})

	assert.Equal(t, 3, summary.Steps)
	assert.Equal(t, 1.0, summary.Return)
	assert.Equal(t, timestep.TerminalStateReached, summary.End)

	require.Len(t, exps, 3)
	for i := 0; i < 2; i++ {
		assert.Equal(t, i, exps[i].State)
		require.NotNil(t, exps[i].NextState)
		assert.Equal(t, i+1, *exps[i].NextState)
		assert.Equal(t, []int{0, 1}, nextActions[i])
	}
	assert.True(t, exps[2].Terminal())
	assert.Equal(t, 1.0, exps[2].Reward)
	assert.Nil(t, nextActions[2])
}

func TestAct(t *testing.T) {
	table := NewTable[int, int]()
	table.Set(0, 0, 5)
	env := &line{n: 3}

	assert.Equal(t, 1, Act[int, int](table, exploration.Explore, env, 0, []int{0, 1}))
	assert.Equal(t, 0, Act[int, int](table, exploration.Exploit, env, 0, []int{0, 1}))
	assert.Panics(t, func() { Act[int, int](table, exploration.Exploit, env, 0, nil) })
}
