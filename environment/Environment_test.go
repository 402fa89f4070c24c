package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/samuelfneumann/tabular/timestep"
)

// walk is an environment on the integers which never terminates. The
// single action moves one step to the right.
type walk struct {
	position int
	step     timestep.TimeStep[int]
}

func (w *walk) Reset() timestep.TimeStep[int] {
	w.position = 0
	w.step = timestep.New(timestep.First, 0, w.position, 0)
	return w.step
}

func (w *walk) Actions() []int { return []int{1} }

func (w *walk) RandomAction() int { return 1 }

func (w *walk) Step(action int) timestep.TimeStep[int] {
	w.position += action
	w.step = timestep.New(timestep.Mid, 1, w.position, w.step.Number+1)
	return w.step
}

func TestStepLimited(t *testing.T) {
	env := NewStepLimited[int, int](&walk{}, 5)

	for episode := 0; episode < 2; episode++ {
		step := env.Reset()
		steps := 0
		for !step.Last() {
			step = env.Step(env.RandomAction())
			steps++
		}
		assert.Equal(t, 5, steps)
		assert.Equal(t, timestep.Timeout, step.EndType())
		assert.Equal(t, 5, step.Observation)
	}
}

func TestFunctionEnder(t *testing.T) {
	ender := NewFunctionEnder(func(o int) bool { return o == 3 },
		timestep.TerminalStateReached)

	step := timestep.New(timestep.Mid, 0, 2, 2)
	assert.False(t, ender.End(&step))
	assert.False(t, step.Last())

	step = timestep.New(timestep.Mid, 0, 3, 3)
	assert.True(t, ender.End(&step))
	assert.True(t, step.Last())
	assert.Equal(t, timestep.TerminalStateReached, step.EndType())
}

func TestIntervalLimit(t *testing.T) {
	_, err := NewIntervalLimit([]r1.Interval{{Min: -1, Max: 1}}, nil,
		timestep.TerminalStateReached)
	require.Error(t, err)

	limit, err := NewIntervalLimit([]r1.Interval{{Min: -1, Max: 1}},
		[]int{1}, timestep.TerminalStateReached)
	require.NoError(t, err)

	inside := timestep.New(timestep.Mid, 0, []float64{100, 0.5}, 1)
	assert.False(t, limit.End(&inside))

	outside := timestep.New(timestep.Mid, 0, []float64{0, -1.5}, 1)
	assert.True(t, limit.End(&outside))
	assert.Equal(t, timestep.TerminalStateReached, outside.EndType())
}

func TestUniformStarter(t *testing.T) {
	bounds := []r1.Interval{{Min: -0.05, Max: 0.05}, {Min: 1, Max: 2}}
	s := NewUniformStarter(bounds, 11)

	for i := 0; i < 100; i++ {
		start := s.Start()
		require.Len(t, start, 2)
		for j, bound := range bounds {
			assert.GreaterOrEqual(t, start[j], bound.Min)
			assert.LessOrEqual(t, start[j], bound.Max)
		}
	}
}

func TestCategoricalStarter(t *testing.T) {
	_, err := NewCategoricalStarter([]string{}, nil, 1)
	require.Error(t, err)

	_, err = NewCategoricalStarter([]string{"a"}, []float64{0.5, 0.5}, 1)
	require.Error(t, err)

	s, err := NewCategoricalStarter([]string{"a", "b"}, []float64{0, 1}, 1)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		assert.Equal(t, "b", s.Start())
	}

	uniform, err := NewCategoricalStarter([]string{"a", "b"}, nil, 3)
	require.NoError(t, err)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[uniform.Start()] = true
	}
	assert.Len(t, seen, 2)
}

func TestBins(t *testing.T) {
	_, err := NewBins([]r1.Interval{{Min: 0, Max: 1}}, []int{1, 2})
	assert.Error(t, err)
	_, err = NewBins([]r1.Interval{{Min: 1, Max: 1}}, []int{2})
	assert.Error(t, err)
	_, err = NewBins([]r1.Interval{{Min: 0, Max: 1}}, []int{0})
	assert.Error(t, err)

	b, err := NewBins([]r1.Interval{{Min: 0, Max: 1}, {Min: -1, Max: 1}},
		[]int{4, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, b.Dims())
	assert.Equal(t, 8, b.Len())

	tests := []struct {
		obs  []float64
		want []int
	}{
		{[]float64{0, -1}, []int{0, 0}},
		{[]float64{0.3, 0.2}, []int{1, 1}},
		{[]float64{0.99, 1}, []int{3, 1}},
		{[]float64{5, -5}, []int{3, 0}},
	}
	for _, test := range tests {
		out := make([]int, 2)
		b.Discretize(test.obs, out)
		assert.Equal(t, test.want, out, "%v", test.obs)
	}
}
