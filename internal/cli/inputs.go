package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/baghouse/internal/config"
	"github.com/rshade/baghouse/internal/report"
	"github.com/rshade/baghouse/internal/session"
)

// inputJSON is the JSON shape of one input key.
type inputJSON struct {
	Key     string   `json:"key"`
	Group   string   `json:"group"`
	Label   string   `json:"label"`
	Unit    string   `json:"unit,omitempty"`
	Choices []string `json:"choices,omitempty"`
}

// NewInputsCmd creates the "inputs" command, which lists every input key
// accepted by --set and scenario files.
func NewInputsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "inputs",
		Short: "List the input keys accepted by --set and scenario files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(configFromContext(cmd.Context()), output)
			if err != nil {
				return err
			}
			keys := session.Keys()
			if format == config.FormatJSON {
				out := make([]inputJSON, len(keys))
				for i, k := range keys {
					out[i] = inputJSON{string(k.Key), string(k.Group), k.Label, k.Unit, k.Choices}
				}
				return report.RenderJSON(cmd.OutOrStdout(), out)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0) //nolint:mnd // Column padding.
			fmt.Fprintln(tw, "KEY\tGROUP\tLABEL\tUNIT")
			for _, k := range keys {
				unit := k.Unit
				if len(k.Choices) > 0 {
					unit = strings.Join(k.Choices, "|")
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", k.Key, k.Group, k.Label, unit)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "output format: table or json (default from config)")
	return cmd
}
