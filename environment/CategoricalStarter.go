package environment

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// CategoricalStarter returns one of a fixed set of starting states,
// sampled from a categorical distribution over those states
type CategoricalStarter[S any] struct {
	states []S
	rand   distuv.Categorical
}

// NewCategoricalStarter returns a new CategoricalStarter which samples
// states[i] with probability proportional to weights[i]. If weights is
// nil, states are sampled uniformly.
func NewCategoricalStarter[S any](states []S, weights []float64,
	seed uint64) (*CategoricalStarter[S], error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("newCategoricalStarter: at least one " +
			"starting state is required")
	}

	if weights == nil {
		weights = make([]float64, len(states))
		for i := range weights {
			weights[i] = 1.0 / float64(len(weights))
		}
	} else if len(weights) != len(states) {
		return nil, fmt.Errorf("newCategoricalStarter: states and weights "+
			"should have the same length: %d != %d", len(states),
			len(weights))
	}

	source := rand.NewSource(seed)
	return &CategoricalStarter[S]{
		states: states,
		rand:   distuv.NewCategorical(weights, source),
	}, nil
}

// Start returns a starting state
func (c *CategoricalStarter[S]) Start() S {
	return c.states[int(c.rand.Rand())]
}
