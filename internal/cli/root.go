package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/baghouse/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the baghouse CLI.
// It loads configuration, wires up logging and tracing, and registers the
// calculation, batch, interactive and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "baghouse",
		Short:         "Baghouse EMC retrofit sizing and savings calculator",
		Long:          "baghouse: Size bolt-weld and modular baghouse EMC retrofits and project their operating savings",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := loadConfig(cmd)
			result := setupLogging(cmd, cfg)
			logResult = &result
			cmd.SetContext(contextWithConfig(cmd.Context(), cfg))
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("project-dir", "",
		"project directory holding .baghouse/config.yaml (default: nearest ancestor with .baghouse)")

	cmd.AddCommand(
		NewSizeCmd(), NewFlapsCmd(), NewReplacementCmd(), NewSavingsCmd(), NewReportCmd(),
		NewBatchCmd(), NewInteractiveCmd(), NewInputsCmd(), newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Size a bolt-weld baghouse
  baghouse size --set air_volume_m3h=100000 --set flaps=14 --set bags_per_row=18 --set bag_length=10

  # Check a modular flap count, accepting an A/C ratio above the ceiling
  baghouse flaps --design modular --override-ceiling --set air_volume_acfm=60000 --set flaps=12

  # Full report for a scenario file, as JSON
  baghouse report --scenario line2.yaml --output json

  # Evaluate several scenarios at once
  baghouse batch scenarios/*.yaml

  # Edit a design interactively
  baghouse interactive --scenario line2.yaml

  # List every input key
  baghouse inputs

  # Initialize configuration
  baghouse config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigGetCmd(), NewConfigValidateCmd())
	return cmd
}
