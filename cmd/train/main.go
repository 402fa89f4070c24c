// Package train implements the command for training an agent
package train

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/tabular/config"
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/environment/envconfig"
	"github.com/samuelfneumann/tabular/experiment"
	"github.com/samuelfneumann/tabular/experiment/checkpointer"
	"github.com/samuelfneumann/tabular/experiment/tracker"
	"github.com/samuelfneumann/tabular/server"
	"github.com/samuelfneumann/tabular/utils/progressbar"
)

// barWidth is the width of the progress bar in characters
const barWidth = 50

// TrainCmd returns the command for training an agent
func TrainCmd() *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train an agent as described by the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.ParseConfig(config.ConfigPath)
			if err != nil {
				return fmt.Errorf("failed to parse config: %w", err)
			}

			logger, closeLog, err := NewLogger(conf.LogConfig)
			if err != nil {
				return err
			}
			defer closeLog()

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt,
				syscall.SIGTERM)
			defer stop()

			return Train(ctx, conf, metricsAddr, cmd.OutOrStdout(), logger)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "",
		"Address to serve /metrics and /status on, e.g. "+server.DefaultAddr+
			", disabled if empty")
	return cmd
}

// Train runs the experiment described by conf, printing a progress bar
// to out. Tracked data and the agent's final values are saved in the
// configured output directory. If metricsAddr is not empty, metrics
// are served on that address while training.
func Train(ctx context.Context, conf *config.Config, metricsAddr string,
	out io.Writer, logger logrus.FieldLogger) error {
	e := conf.Environment

	switch e.Environment {
	case envconfig.GridWorld:
		env, err := envconfig.CreateGridWorld(e.GridWorld, e.EpisodeCutoff,
			conf.Seed)
		if err != nil {
			return fmt.Errorf("train: %w", err)
		}
		return run(ctx, conf, env, metricsAddr, out, logger)

	case envconfig.Cartpole:
		env, err := envconfig.CreateCartpole(e.Cartpole, e.EpisodeCutoff,
			conf.Seed)
		if err != nil {
			return fmt.Errorf("train: %w", err)
		}
		return run(ctx, conf, env, metricsAddr, out, logger)

	case envconfig.MountainCar:
		env, err := envconfig.CreateMountainCar(e.MountainCar,
			e.EpisodeCutoff, conf.Seed)
		if err != nil {
			return fmt.Errorf("train: %w", err)
		}
		return run(ctx, conf, env, metricsAddr, out, logger)
	}

	return fmt.Errorf("train: no such environment %q", e.Environment)
}

func run[S, A comparable](ctx context.Context, conf *config.Config,
	env environment.Environment[S, A], metricsAddr string, out io.Writer,
	logger logrus.FieldLogger) error {
	agentConf, err := config.CreateAgentConfig[S, A](conf.Agent)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	a, err := agentConf.CreateAgent(conf.Seed)
	if err != nil {
		return fmt.Errorf("run: could not create agent: %w", err)
	}
	values, serializable := a.(checkpointer.Serializable)

	dir := conf.Output.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("run: could not create output directory: %w", err)
	}

	returns := tracker.NewReturn(filepath.Join(dir, "return.bin"))
	lengths := tracker.NewEpisodeLength(filepath.Join(dir,
		"episode_length.bin"))
	o := experiment.NewOnline[S, A](env, a, conf.Episodes, logger,
		[]tracker.Tracker{returns, lengths}, nil)
	runID := o.RunID().String()

	if conf.Output.CheckpointEvery > 0 {
		if !serializable {
			return fmt.Errorf("run: agent %v cannot be checkpointed",
				agentConf.Type())
		}
		name := filepath.Join(dir, "checkpoint-"+runID+"-")
		filename := checkpointer.FilenameEnumerator(0, name, ".bin")
		if conf.Output.CheckpointNaming == config.TimestampNaming {
			filename = checkpointer.FileTimer(name, ".bin", nil)
		}

		c, err := checkpointer.NewNStep(conf.Output.CheckpointEvery, values,
			filename)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		o.RegisterCheckpointer(c)
	}

	var srv *server.Server
	if metricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		o.Register(tracker.NewPrometheus(reg, runID))

		srv = server.New(metricsAddr, reg, logger)
		srv.Start()
		defer func() {
			if err := srv.Stop(); err != nil {
				logger.WithError(err).Warn("could not stop monitoring server")
			}
		}()
	}

	bar := progressbar.NewManualProgressBar(out, barWidth, conf.Episodes)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range o.Updates() {
			bar.Set(u.Episode + 1)
			bar.Display()
			if srv != nil {
				srv.Observe(u)
			}
		}
	}()

	runErr := o.Run(ctx)
	<-done
	bar.Set(a.Episode())
	bar.Display()
	fmt.Fprintln(out)

	if err := o.Save(); err != nil {
		return fmt.Errorf("run: could not save data: %w", err)
	}
	if serializable {
		filename := filepath.Join(dir, "values-"+runID+".bin")
		if err := values.Save(filename); err != nil {
			return fmt.Errorf("run: could not save values: %w", err)
		}
	}

	logger.WithFields(logrus.Fields{
		"run":         runID,
		"episodes":    a.Episode(),
		"mean_return": returns.Mean(100),
		"dropped":     o.Dropped(),
	}).Info("training finished")

	return runErr
}
