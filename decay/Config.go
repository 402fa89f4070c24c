package decay

import "fmt"

// Type represents a type of Decay that a Config can construct
type Type string

const (
	ConstantType    Type = "Constant"
	ExponentialType Type = "Exponential"
	InverseTimeType Type = "InverseTime"
	LinearType      Type = "Linear"
	StepType        Type = "Step"
)

// Config represents a configuration for creating a Decay. Only the
// fields used by the Decay of the configured Type are read; Value is
// used by Constant only, and StepSize by Step only.
type Config struct {
	Type     Type    `json:"type" yaml:"type"`
	Value    float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Rate     float64 `json:"rate,omitempty" yaml:"rate,omitempty"`
	Initial  float64 `json:"initial,omitempty" yaml:"initial,omitempty"`
	Final    float64 `json:"final,omitempty" yaml:"final,omitempty"`
	StepSize float64 `json:"step,omitempty" yaml:"step,omitempty"`
}

// Validate returns an error describing whether or not the
// configuration is valid
func (c Config) Validate() error {
	_, err := c.Create()
	return err
}

// Create creates the Decay that the Config describes
func (c Config) Create() (Decay, error) {
	var (
		d   Decay
		err error
	)

	switch c.Type {
	case ConstantType:
		return NewConstant(c.Value), nil

	case ExponentialType:
		d, err = NewExponential(c.Rate, c.Initial, c.Final)

	case InverseTimeType:
		d, err = NewInverseTime(c.Rate, c.Initial, c.Final)

	case LinearType:
		d, err = NewLinear(c.Rate, c.Initial, c.Final)

	case StepType:
		d, err = NewStep(c.Rate, c.Initial, c.Final, c.StepSize)

	default:
		return nil, fmt.Errorf("create: no such decay type %q", c.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("create: could not create %v decay: %w",
			c.Type, err)
	}
	return d, nil
}
