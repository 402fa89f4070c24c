package qtable

import (
	"fmt"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/decay"
	"github.com/samuelfneumann/tabular/exploration"
)

// Config represents a configuration for the QTable agent
type Config[S, A comparable] struct {
	Alpha   float64      `json:"alpha" yaml:"alpha"`
	Gamma   float64      `json:"gamma" yaml:"gamma"`
	Epsilon decay.Config `json:"epsilon" yaml:"epsilon"` // behaviour ε
}

// CreateAgent creates the agent from the Config
func (c Config[S, A]) CreateAgent(seed uint64) (agent.Agent[S, A], error) {
	epsilon, err := c.Epsilon.Create()
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}

	q, err := New[S, A](c.Alpha, c.Gamma,
		exploration.NewEpsilonGreedy(epsilon, seed))
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}
	return q, nil
}

// Validate ensures that the Config is valid
func (c Config[S, A]) Validate() error {
	_, err := c.CreateAgent(0)
	return err
}

// Type returns the type of the agent constructed by the Config
func (c Config[S, A]) Type() agent.Type {
	return agent.QTable
}
