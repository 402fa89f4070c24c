package exploration

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/tabular/decay"
)

// EpsilonGreedy implements an ε-greedy exploration policy. On each
// call to Choose, the policy explores with probability ε and exploits
// otherwise, where ε is given by a Decay evaluated at the current
// episode. A decreasing Decay trades early exploration for later
// exploitation of learned values.
type EpsilonGreedy struct {
	epsilon decay.Decay
	rand    distuv.Uniform
}

// NewEpsilonGreedy returns a new EpsilonGreedy policy whose ε follows
// the argument Decay. The seed determines the sequence of random draws.
func NewEpsilonGreedy(epsilon decay.Decay, seed uint64) *EpsilonGreedy {
	source := rand.NewSource(seed)
	uniform := distuv.Uniform{Min: 0, Max: 1, Src: source}

	return &EpsilonGreedy{epsilon: epsilon, rand: uniform}
}

// Epsilon returns the probability of exploring at some episode
func (e *EpsilonGreedy) Epsilon(episode int) float64 {
	return e.epsilon.Evaluate(float64(episode))
}

// Choose decides whether to explore or exploit at some episode
func (e *EpsilonGreedy) Choose(episode int) Choice {
	if e.rand.Rand() < e.Epsilon(episode) {
		return Explore
	}
	return Exploit
}
