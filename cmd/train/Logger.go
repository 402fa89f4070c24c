package train

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/samuelfneumann/tabular/config"
)

// NewLogger instantiates a logger based on the config. The returned
// function closes the log file, if any.
func NewLogger(c config.LogConfig) (*logrus.Logger, func() error, error) {
	l := logrus.New()
	if c.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("newLogger: %w", err)
	}
	l.SetLevel(level)

	closer := func() error { return nil }
	if c.Path != "" {
		file, err := os.Create(c.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("newLogger: %w", err)
		}
		l.SetOutput(file)
		closer = file.Close
	}

	return l, closer, nil
}
