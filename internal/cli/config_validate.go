package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		Long: `Validates the merged configuration (global file, project file and
BAGHOUSE_* environment variables) and reports every problem found.`,
		Example: `  # Validate current configuration
  baghouse config validate

  # Validate and show the effective values
  baghouse config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show the effective configuration")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := configFromContext(cmd.Context())

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	cmd.Printf("Configuration is valid\n")

	if verbose {
		cmd.Println()
		cmd.Println("Configuration details:")
		cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
		cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
		cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
		cmd.Printf("  Logging format: %s\n", cfg.Logging.Format)
		if cfg.Logging.File != "" {
			cmd.Printf("  Log file: %s\n", cfg.Logging.File)
		}
		cmd.Printf("  Sync guard window: %s\n", cfg.Engine.SyncGuardWindow)
		cmd.Printf("  Savings horizon: %g years, %g h/year, %s\n",
			cfg.Savings.Years, cfg.Savings.WorkingHours, cfg.Savings.EnergyUnit)
	}

	return nil
}
