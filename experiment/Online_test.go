package experiment

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/experiment/checkpointer"
	"github.com/samuelfneumann/tabular/experiment/tracker"
	"github.com/samuelfneumann/tabular/timestep"
)

// counter is an agent which takes episode+1 steps per episode, each
// with a reward of 1, without touching the environment
type counter struct {
	episode int
	onGo    func(episode int)
}

func (c *counter) Go(environment.Environment[int, int]) agent.Summary {
	if c.onGo != nil {
		c.onGo(c.episode)
	}
	s := agent.Summary{
		Episode: c.episode,
		Return:  float64(c.episode + 1),
		Steps:   c.episode + 1,
		Epsilon: 0.1,
		End:     timestep.TerminalStateReached,
	}
	c.episode++
	return s
}

func (c *counter) Episode() int { return c.episode }

// failing fails to save
type failing struct{ calls int }

func (f *failing) Save(string) error {
	f.calls++
	return errors.New("disk full")
}

func newLogger() (*logrus.Logger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

func TestOnlineRun(t *testing.T) {
	logger, hook := newLogger()
	dir := t.TempDir()
	returns := tracker.NewReturn(filepath.Join(dir, "return.bin"))
	lengths := tracker.NewEpisodeLength(filepath.Join(dir, "length.bin"))

	o := NewOnline[int, int](nil, &counter{}, 5, logger,
		[]tracker.Tracker{returns}, nil)
	o.Register(lengths)

	require.NoError(t, o.Run(context.Background()))
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, returns.Data())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, lengths.Data())

	var updates []Update
	for u := range o.Updates() {
		updates = append(updates, u)
	}
	require.Len(t, updates, 5)
	for i, u := range updates {
		assert.Equal(t, i, u.Episode)
		assert.Equal(t, o.RunID().String(), u.RunID)
		assert.Equal(t, float64(i+1), u.Return)
		assert.Equal(t, i+1, u.Steps)
		assert.Equal(t, 0.1, u.Epsilon)
	}
	assert.Equal(t, int64(0), o.Dropped())

	require.NoError(t, o.Save())
	data, err := tracker.LoadData[int](filepath.Join(dir, "length.bin"))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, data)

	assert.Equal(t, "experiment finished", hook.LastEntry().Message)
	assert.Equal(t, o.RunID().String(), hook.LastEntry().Data["run"])

	err = o.Run(context.Background())
	assert.True(t, errors.Is(err, ErrFinished))
}

func TestOnlineDropsWhenFull(t *testing.T) {
	logger, _ := newLogger()
	episodes := UpdateBuffer + 10
	o := NewOnline[int, int](nil, &counter{}, episodes, logger, nil, nil)

	require.NoError(t, o.Run(context.Background()))
	assert.Equal(t, int64(10), o.Dropped())

	n := 0
	for u := range o.Updates() {
		assert.Equal(t, n, u.Episode)
		n++
	}
	assert.Equal(t, UpdateBuffer, n)
}

func TestOnlineCancel(t *testing.T) {
	logger, _ := newLogger()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := &counter{onGo: func(episode int) {
		if episode == 2 {
			cancel()
		}
	}}
	o := NewOnline[int, int](nil, a, 10, logger, nil, nil)

	err := o.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))

	// The episode in progress when cancelled finishes
	assert.Equal(t, 3, a.Episode())

	_, open := <-o.Updates()
	assert.True(t, open)
	n := 1
	for range o.Updates() {
		n++
	}
	assert.Equal(t, 3, n)
}

func TestOnlineCheckpointFailure(t *testing.T) {
	logger, hook := newLogger()
	f := &failing{}
	c, err := checkpointer.NewNStep(2, f, checkpointer.FileTimer("c-", ".bin", nil))
	require.NoError(t, err)

	o := NewOnline[int, int](nil, &counter{}, 4, logger, nil,
		[]checkpointer.Checkpointer{c})
	require.NoError(t, o.Run(context.Background()))
	assert.Equal(t, 2, f.calls)

	errorsLogged := 0
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.ErrorLevel {
			errorsLogged++
			assert.Equal(t, "could not checkpoint", entry.Message)
		}
	}
	assert.Equal(t, 2, errorsLogged)
}

func TestOnlineSaveErrors(t *testing.T) {
	logger, _ := newLogger()
	bad := tracker.NewReturn(filepath.Join(t.TempDir(), "missing", "r.bin"))
	o := NewOnline[int, int](nil, &counter{}, 1, logger,
		[]tracker.Tracker{bad}, nil)

	require.NoError(t, o.Run(context.Background()))
	assert.Error(t, o.Save())
}
