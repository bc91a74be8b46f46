package cli

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/baghouse/internal/config"
	"github.com/rshade/baghouse/internal/logging"
	"github.com/rshade/baghouse/internal/report"
	"github.com/rshade/baghouse/internal/session"
)

// CalcParams holds the flags of the one-shot calculation commands.
// Exported for testing.
type CalcParams struct {
	InputParams

	Output string
	Strict bool
}

// calcView picks the part of a snapshot a calculation command shows.
type calcView struct {
	use      string
	short    string
	long     string
	sections []string
	// json returns the structured value for --output json.
	json func(session.Snapshot) any
}

// sectionJSON is the JSON shape of a single-calculation command.
type sectionJSON struct {
	SessionID  string   `json:"session_id"`
	Name       string   `json:"name,omitempty"`
	Design     string   `json:"design"`
	Result     any      `json:"result"`
	Advisories []string `json:"advisories,omitempty"`
}

func sectionOf(snap session.Snapshot, result any) sectionJSON {
	return sectionJSON{
		SessionID:  snap.SessionID,
		Name:       snap.Name,
		Design:     snap.Design.String(),
		Result:     result,
		Advisories: snap.Advisories,
	}
}

// NewSizeCmd creates the "size" command: filtration area, A/C ratios and inlet velocity.
func NewSizeCmd() *cobra.Command {
	return newCalcCmd(calcView{
		use:   "size",
		short: "Filtration area, air-to-cloth ratios and inlet velocity",
		long: `Computes gross and net filtration area, gross and net A/C ratios and, for
bolt-weld designs, the inlet channel velocity.`,
		sections: []string{report.SectionSizing},
		json:     func(s session.Snapshot) any { return sectionOf(s, s.Sizing) },
	})
}

// NewFlapsCmd creates the "flaps" command: flap count validation and suggestion.
func NewFlapsCmd() *cobra.Command {
	return newCalcCmd(calcView{
		use:   "flaps",
		short: "Validate the EMC flap count against the design rules",
		long: `Checks the flap count: modular designs need a multiple of 3, odd counts force
a single filter row, and the net A/C ratio must stay under the design ceiling
unless --override-ceiling is given. A suggested count is shown when one applies.`,
		sections: []string{report.SectionFlaps},
		json: func(s session.Snapshot) any {
			return sectionOf(s, struct {
				Validation any `json:"validation"`
				Suggested  int `json:"suggested_flaps"`
			}{s.Flaps, s.SuggestedFlaps})
		},
	})
}

// NewReplacementCmd creates the "replacement" command: bag changeout logistics and cost.
func NewReplacementCmd() *cobra.Command {
	return newCalcCmd(calcView{
		use:      "replacement",
		short:    "Bag changeout duration and cost",
		long:     `Computes total bags, days to replace, material, travel and service cost.`,
		sections: []string{report.SectionReplacement},
		json:     func(s session.Snapshot) any { return sectionOf(s, s.Replacement) },
	})
}

// NewSavingsCmd creates the "savings" command: operational comparison and OPEX projection.
func NewSavingsCmd() *cobra.Command {
	return newCalcCmd(calcView{
		use:   "savings",
		short: "Operational comparison and OPEX savings projection",
		long: `Compares current and EMC baselines and projects bag, fan power and compressed
air savings over the savings horizon.`,
		sections: []string{report.SectionComparison, report.SectionSavings},
		json: func(s session.Snapshot) any {
			return sectionOf(s, struct {
				Comparison any `json:"comparison"`
				Savings    any `json:"savings"`
			}{s.Comparison, s.Savings})
		},
	})
}

// NewReportCmd creates the "report" command: every section at once.
func NewReportCmd() *cobra.Command {
	return newCalcCmd(calcView{
		use:   "report",
		short: "Full design report",
		long:  `Runs every calculation and prints all sections.`,
		sections: []string{
			report.SectionSizing, report.SectionFlaps, report.SectionReplacement,
			report.SectionComparison, report.SectionSavings,
		},
		json: func(s session.Snapshot) any { return s },
	})
}

func newCalcCmd(view calcView) *cobra.Command {
	var params CalcParams

	cmd := &cobra.Command{
		Use:   view.use,
		Short: view.short,
		Long:  view.long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeCalc(cmd, params, view)
		},
	}

	addInputFlags(cmd, &params.InputParams)
	cmd.Flags().StringVar(&params.Output, "output", "", "output format: table or json (default from config)")
	cmd.Flags().BoolVar(&params.Strict, "strict", false, "exit with code 2 when the design raises advisories")

	return cmd
}

func executeCalc(cmd *cobra.Command, params CalcParams, view calcView) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()

	format, err := resolveOutputFormat(configFromContext(ctx), params.Output)
	if err != nil {
		return err
	}

	snap, err := evaluateInputs(ctx, params.InputParams)
	if err != nil {
		return err
	}

	if err = renderCalc(cmd.OutOrStdout(), format, snap, view); err != nil {
		return err
	}

	log.Debug().Ctx(ctx).
		Str("operation", view.use).
		Dur("duration_ms", time.Since(start)).
		Msg("calculation complete")

	return checkStrict(params.Strict, snap)
}

func renderCalc(w io.Writer, format string, snap session.Snapshot, view calcView) error {
	if format == config.FormatJSON {
		return report.RenderJSON(w, view.json(snap))
	}
	return report.RenderTable(w, snap.Report.Only(view.sections...))
}
