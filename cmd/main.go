package cmd

import (
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/tabular/cmd/train"
	"github.com/samuelfneumann/tabular/config"
)

// RootCmd returns the root cobra command of the tabular tool
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "tabular",
		Short:        "Train tabular reinforcement learning agents",
		SilenceUsage: true,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.PersistentFlags().StringVarP(&config.ConfigPath, "config", "c",
		"config.yaml", "Config file path, JSON or YAML")
	cmd.AddCommand(train.TrainCmd())
	return cmd
}
