// Package config implements the configuration of a training run, read
// from a JSON or YAML file
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/agent/tabular/qtable"
	"github.com/samuelfneumann/tabular/agent/tabular/sampleaverage"
	"github.com/samuelfneumann/tabular/decay"
	"github.com/samuelfneumann/tabular/environment/envconfig"
)

var (
	// ConfigPath is the variable which stores the config path command
	// line parameter
	ConfigPath string
)

// Config stores the configuration of a training run
type Config struct {
	Seed     uint64 `json:"seed" yaml:"seed"`
	Episodes int    `json:"episodes" yaml:"episodes"`

	Environment envconfig.Config `json:"environment" yaml:"environment"`
	Agent       AgentConfig      `json:"agent" yaml:"agent"`
	Output      OutputConfig     `json:"output" yaml:"output"`
	LogConfig   LogConfig        `json:"log" yaml:"log"`
}

// AgentConfig stores the configuration of the agent. Alpha is ignored
// by the SampleAverage agent.
type AgentConfig struct {
	Type    agent.Type   `json:"type" yaml:"type"`
	Alpha   float64      `json:"alpha" yaml:"alpha"`
	Gamma   float64      `json:"gamma" yaml:"gamma"`
	Epsilon decay.Config `json:"epsilon" yaml:"epsilon"`
}

// OutputConfig stores where and how often data is saved
type OutputConfig struct {
	// Dir is the directory to save tracked data and checkpoints in
	Dir string `json:"dir" yaml:"dir"`

	// CheckpointEvery is the number of episodes between checkpoints of
	// the agent's values. 0 disables checkpointing.
	CheckpointEvery int `json:"checkpoint_every" yaml:"checkpoint_every"`

	// CheckpointNaming determines how checkpoint files are named
	CheckpointNaming Naming `json:"checkpoint_naming" yaml:"checkpoint_naming"`
}

// Naming is a scheme for naming checkpoint files
type Naming string

const (
	// EnumeratedNaming numbers checkpoints 1, 2, 3, ...
	EnumeratedNaming Naming = "enumerate"

	// TimestampNaming names checkpoints by the UTC time they are taken
	TimestampNaming Naming = "timestamp"
)

// LogConfig stores the config for logging purpose
type LogConfig struct {
	// Path of the log file, stderr if empty
	Path string `json:"path" yaml:"path"`
	// Format to log, either `text` or `json`
	Format string `json:"format" yaml:"format"`
	// Level log level, one of panic|fatal|error|warn|warning|info|debug|trace
	Level string `json:"level" yaml:"level"`
}

// Default returns the Config used for any value not set in a config
// file
func Default() *Config {
	return &Config{
		Seed:     0,
		Episodes: 500,
		Environment: envconfig.Config{
			Environment:   envconfig.GridWorld,
			EpisodeCutoff: 500,
			Cartpole: envconfig.CartpoleConfig{
				FailAngle:    12,
				FailPosition: 2.4,
			},
		},
		Agent: AgentConfig{
			Type:  agent.QTable,
			Alpha: 0.1,
			Gamma: 0.99,
			Epsilon: decay.Config{
				Type:  decay.ConstantType,
				Value: 0.1,
			},
		},
		Output: OutputConfig{
			Dir:              "results",
			CheckpointNaming: EnumeratedNaming,
		},
		LogConfig: LogConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

// ParseConfig parses config from the specified file. Files with a
// .yaml or .yml extension are parsed as YAML, all others as JSON.
// Values missing from the file take their Default.
func ParseConfig(path string) (*Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	c := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, c)
	default:
		err = json.Unmarshal(bytes, c)
	}
	if err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return c, c.Validate()
}

// Validate returns an error describing whether or not the
// configuration is valid
func (c *Config) Validate() error {
	if c.Episodes <= 0 {
		return fmt.Errorf("validate: episodes must be positive, got %v",
			c.Episodes)
	}
	if c.Output.CheckpointEvery < 0 {
		return fmt.Errorf("validate: checkpoint_every must be "+
			"non-negative, got %v", c.Output.CheckpointEvery)
	}
	switch c.Output.CheckpointNaming {
	case EnumeratedNaming, TimestampNaming:
	default:
		return fmt.Errorf("validate: no such checkpoint naming %q",
			c.Output.CheckpointNaming)
	}
	switch c.LogConfig.Format {
	case "text", "json":
	default:
		return fmt.Errorf("validate: no such log format %q",
			c.LogConfig.Format)
	}

	if err := c.Environment.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	// Agents are generic over states and actions, but validation does
	// not depend on them
	conf, err := CreateAgentConfig[int, int](c.Agent)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// CreateAgentConfig returns the agent.Config described by c
func CreateAgentConfig[S, A comparable](c AgentConfig) (agent.Config[S, A],
	error) {
	switch c.Type {
	case agent.QTable:
		return qtable.Config[S, A]{
			Alpha:   c.Alpha,
			Gamma:   c.Gamma,
			Epsilon: c.Epsilon,
		}, nil

	case agent.SampleAverage:
		return sampleaverage.Config[S, A]{
			Gamma:   c.Gamma,
			Epsilon: c.Epsilon,
		}, nil
	}

	return nil, fmt.Errorf("createAgentConfig: no such agent type %q", c.Type)
}
