package cli

import (
	"errors"
	"maps"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/baghouse/internal/logging"
	"github.com/rshade/baghouse/internal/report"
	"github.com/rshade/baghouse/internal/session"
	"github.com/rshade/baghouse/internal/tui"
)

// defaultSavePath is offered by the form when no scenario file was given.
const defaultSavePath = "baghouse-scenario.yaml"

// errNotTerminal is returned when the form is started without a terminal.
var errNotTerminal = errors.New("interactive mode requires a terminal; use the size, flaps or report commands instead")

// NewInteractiveCmd creates the "interactive" command, which opens the design form.
func NewInteractiveCmd() *cobra.Command {
	var params InputParams

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Edit a design in an interactive form",
		Long: `Opens a terminal form over every session input. Each edit recomputes all
results immediately. Paired unit fields (m³/h and ACFM, mbar and in W.G.) fill
each other. Press w to save the inputs as a scenario file; the final report is
printed when the form closes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeInteractive(cmd, params)
		},
	}

	addInputFlags(cmd, &params)
	return cmd
}

func executeInteractive(cmd *cobra.Command, params InputParams) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errNotTerminal
	}

	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	cfg := configFromContext(ctx)

	sc, err := buildScenario(params)
	if err != nil {
		return err
	}

	sess := session.New(ctx,
		session.WithGuardWindow(cfg.Engine.SyncGuardWindow),
		session.WithName(sc.Name))
	inputs := configDefaults(cfg)
	maps.Copy(inputs, sc.RawInputs())
	if _, err = sess.ApplyAll(inputs); err != nil {
		return err
	}

	savePath := sc.Path()
	if savePath == "" {
		savePath = defaultSavePath
	}

	log.Debug().Ctx(ctx).Str("session_id", sess.ID()).Str("save_path", savePath).Msg("launching interactive form")

	snap, err := tui.Run(ctx, sess, savePath)
	if err != nil {
		return err
	}
	return report.RenderTable(cmd.OutOrStdout(), snap.Report)
}
