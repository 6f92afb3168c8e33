package main

import (
	"github.com/spf13/cobra"

	"github.com/jrsteele09/surf-club-server/internal/config"
	"github.com/jrsteele09/surf-club-server/internal/logging"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the surf club CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "surfclub",
		Short:        "Surf club REST backend",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (YAML)")
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewHostCmd())
	return cmd
}

// loadConfig reads the configuration for cmd and sets up logging from it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags(), configFile)
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.GetEnv(), cfg.LogLevel)
	return cfg, nil
}
