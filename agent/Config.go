package agent

// Config represents a configuration for creating an agent
type Config[S, A comparable] interface {
	// CreateAgent creates the agent that the config describes
	CreateAgent(seed uint64) (Agent[S, A], error)

	// Validate returns an error describing whether or not the
	// configuration is valid
	Validate() error

	// Type returns the type of agent the Config creates
	Type() Type
}

// Type represents a type of agent
type Type string

const (
	QTable        Type = "QTable"
	SampleAverage Type = "SampleAverage"
)
