// Package cli implements the emimeter command tree: one-shot emission
// calculations, the interactive dashboard, the HTTP API server, and
// configuration management.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/emimeter/internal/config"
	"github.com/rshade/emimeter/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

const rootCmdExample = `  # Compute emissions for the bundled sample fleet
  emimeter calc --sample

  # Compute from a YAML inputs file, JSON output
  emimeter calc --inputs fleet.yaml --output json

  # Raise one lever on top of the sample dataset
  emimeter calc --sample --ev-share 0.5

  # Open the interactive dashboard preloaded with sample data
  emimeter dashboard --sample

  # Serve the HTTP API
  emimeter serve --addr :8080

  # Show the resolved emission factor table
  emimeter factors`

// NewRootCmd creates the root command for the emimeter CLI.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "emimeter",
		Short:   "Fleet CO2e emissions calculator",
		Long:    "EmiMeter computes annual CO2e emissions for a logistics operation and\nshows how much an electrification, distance, or load-factor program would save.",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				cfg, err := config.Load(path)
				if err != nil {
					return fmt.Errorf("loading config %s: %w", path, err)
				}
				config.SetGlobalConfig(cfg)
			}

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "path to config file (default ~/.emimeter/config.yaml)")

	cmd.AddCommand(
		NewCalcCmd(),
		NewDashboardCmd(),
		NewServeCmd(),
		NewFactorsCmd(),
		newConfigCmd(),
	)

	return cmd
}

// newConfigCmd groups the configuration management subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigValidateCmd())
	return cmd
}
