package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewConfigGetCmd creates the config get command, which prints one effective value.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print an effective configuration value",
		Example: `  baghouse config get output.default_format
  baghouse config get engine.sync_guard_window`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := configFromContext(cmd.Context()).Get(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}
