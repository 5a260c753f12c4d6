package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/emimeter/internal/config"
	"github.com/rshade/emimeter/internal/emissions"
)

// NewConfigValidateCmd creates the config validate command for
// validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file for syntax and semantic correctness.

This includes:
- Schema version compatibility
- Output format and precision
- Factor overrides (negative or non-finite values are rejected)
- Server address, session TTL, and session limits`,
		Example: `  # Validate current configuration
  emimeter config validate

  # Validate and show the resolved settings
  emimeter config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		path, err = config.GetConfigFilePath()
		if err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no configuration file at %s, run 'emimeter config init' first", path)
		}
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Println("✅ Configuration is valid")

	if verbose {
		printConfigDetails(cmd, cfg)
	}

	return nil
}

// printConfigDetails prints the resolved configuration settings.
func printConfigDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Schema version: %s\n", cfg.Version)
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
	cmd.Printf("  Server address: %s\n", cfg.Server.Addr)
	cmd.Printf("  Session TTL: %d minutes\n", cfg.Server.SessionTTLMinutes)
	cmd.Printf("  Max sessions: %d\n", cfg.Server.MaxSessions)
	cmd.Printf("  Factor overrides: %s\n", describeFactorOverrides(cfg))
}

// describeFactorOverrides reports how many factors the config file
// replaces.
func describeFactorOverrides(cfg *config.Config) string {
	resolved := cfg.Factors.Resolve()
	defaults := emissions.DefaultFactors()

	count := 0
	for _, c := range emissions.Categories() {
		value, _, ok := resolved.ForCategory(c)
		if !ok {
			continue
		}
		if defValue, _, _ := defaults.ForCategory(c); value != defValue {
			count++
		}
	}

	if count == 0 {
		return "none (using defaults)"
	}
	return fmt.Sprintf("%d", count)
}
