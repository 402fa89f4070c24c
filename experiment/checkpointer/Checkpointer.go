// Package checkpointer implements Checkpointers, which periodically
// save the learned values of an agent during an experiment
package checkpointer

import "github.com/samuelfneumann/tabular/agent"

// Serializable is an object that can be saved to a file
type Serializable interface {
	Save(filename string) error
}

// Checkpointer checkpoints/saves serializable objects based on the
// summaries of finished episodes
type Checkpointer interface {
	Checkpoint(agent.Summary) error
}
