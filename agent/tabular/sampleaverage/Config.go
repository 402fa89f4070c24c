package sampleaverage

import (
	"fmt"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/decay"
	"github.com/samuelfneumann/tabular/exploration"
)

// Config represents a configuration for the SampleAverage agent
type Config[S, A comparable] struct {
	Gamma   float64      `json:"gamma" yaml:"gamma"`
	Epsilon decay.Config `json:"epsilon" yaml:"epsilon"`
}

// CreateAgent creates the agent from the Config
func (c Config[S, A]) CreateAgent(seed uint64) (agent.Agent[S, A], error) {
	epsilon, err := c.Epsilon.Create()
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}

	s, err := New[S, A](c.Gamma, exploration.NewEpsilonGreedy(epsilon, seed))
	if err != nil {
		return nil, fmt.Errorf("createAgent: %w", err)
	}
	return s, nil
}

// Validate ensures that the Config is valid
func (c Config[S, A]) Validate() error {
	_, err := c.CreateAgent(0)
	return err
}

// Type returns the type of agent the Config creates
func (c Config[S, A]) Type() agent.Type {
	return agent.SampleAverage
}
