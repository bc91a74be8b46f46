package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/baghouse/internal/cli/pagination"
	"github.com/rshade/baghouse/internal/config"
	"github.com/rshade/baghouse/internal/design"
	"github.com/rshade/baghouse/internal/logging"
	"github.com/rshade/baghouse/internal/report"
	"github.com/rshade/baghouse/internal/scenario"
)

// BatchParams holds the flags of the batch command.
type BatchParams struct {
	Output string
	Limit  int
	Strict bool
	Sort   string
	Top    int
	Offset int
}

// NewBatchCmd creates the "batch" command, which evaluates scenario files concurrently.
func NewBatchCmd() *cobra.Command {
	var params BatchParams

	cmd := &cobra.Command{
		Use:   "batch FILE...",
		Short: "Evaluate several scenario files concurrently",
		Long: `Evaluates each scenario file in its own session and prints one summary row
per file. A file that cannot be read or validated is reported in its row and
makes the command exit with code 3 after all files were evaluated.`,
		Example: `  # Compare several designs
  baghouse batch line1.yaml line2.yaml line3.yaml

  # Full results as JSON
  baghouse batch --output json scenarios/*.yaml

  # The five designs with the largest savings
  baghouse batch --sort savings:desc --top 5 scenarios/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeBatch(cmd, params, args)
		},
	}

	cmd.Flags().StringVar(&params.Output, "output", "", "output format: table or json (default from config)")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "maximum concurrent evaluations (0 = number of CPUs)")
	cmd.Flags().BoolVar(&params.Strict, "strict", false, "exit with code 2 when any design raises advisories")
	cmd.Flags().StringVar(&params.Sort, "sort", "",
		"sort rows by field[:asc|desc]: "+strings.Join(pagination.NewResultSorter().GetValidFields(), ", "))
	cmd.Flags().IntVar(&params.Top, "top", 0, "show at most N rows (0 = all)")
	cmd.Flags().IntVar(&params.Offset, "offset", 0, "skip the first N rows after sorting")

	return cmd
}

func executeBatch(cmd *cobra.Command, params BatchParams, paths []string) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()
	cfg := configFromContext(ctx)

	format, err := resolveOutputFormat(cfg, params.Output)
	if err != nil {
		return err
	}
	if params.Limit < 0 {
		return fmt.Errorf("--limit must be >= 0, got %d", params.Limit)
	}
	page := pagination.Params{Limit: params.Top, Offset: params.Offset}
	if err = page.Validate(); err != nil {
		return err
	}
	sortField, sortOrder, err := pagination.ParseSort(params.Sort)
	if err != nil {
		return err
	}
	sorter := pagination.NewResultSorter()
	if sortField != "" && !sorter.IsValidField(sortField) {
		return fmt.Errorf("%w: %q", pagination.ErrInvalidSortField, sortField)
	}

	ev := newEvaluator(cfg)
	ev.Limit = params.Limit
	results, err := ev.EvaluateAll(ctx, paths)
	if err != nil {
		return err
	}

	shown, err := sorter.Sort(results, sortField, sortOrder)
	if err != nil {
		return err
	}
	shown = pagination.Apply(page, shown)

	if format == config.FormatJSON {
		err = report.RenderJSON(cmd.OutOrStdout(), shown)
	} else {
		err = renderBatchTable(cmd.OutOrStdout(), shown)
	}
	if err != nil {
		return err
	}

	failed, advised := 0, 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
		case len(r.Snapshot.Advisories) > 0:
			advised++
		}
	}

	log.Info().Ctx(ctx).
		Str("operation", "batch").
		Int("scenarios", len(results)).
		Int("failed", failed).
		Int("shown", len(shown)).
		Dur("duration_ms", time.Since(start)).
		Msg("batch evaluation complete")

	if failed > 0 {
		return &AdvisoryExitError{
			ExitCode: ExitCodeBatchFailures,
			Reason:   fmt.Sprintf("%d of %d scenario(s) failed", failed, len(results)),
		}
	}
	if params.Strict && advised > 0 {
		return &AdvisoryExitError{
			ExitCode: ExitCodeAdvisories,
			Reason:   fmt.Sprintf("%d of %d scenario(s) raised advisories", advised, len(results)),
		}
	}
	return nil
}

// renderBatchTable writes one summary row per scenario.
func renderBatchTable(w io.Writer, results []scenario.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) //nolint:mnd // Column padding.

	if _, err := fmt.Fprintln(tw, "SCENARIO\tDESIGN\tGROSS AREA\tNET A/C\tFLAPS\tREPLACEMENT\tSAVINGS\tADVISORIES"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range results {
		if _, err := fmt.Fprintln(tw, batchRow(r)); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	return nil
}

func batchRow(r scenario.Result) string {
	name := r.Name
	if name == "" {
		name = r.Path
	}
	if r.Err != nil {
		return fmt.Sprintf("%s\t-\t-\t-\t-\t-\t-\terror: %s", name, r.Error)
	}

	s := r.Snapshot
	u := report.LabelsFor(design.ProfileFor(s.Design).Units)
	flaps := report.NotAvailable
	switch {
	case s.Flaps.Count == 0:
	case s.Flaps.Valid:
		flaps = strconv.Itoa(s.Flaps.Count) + " ok"
	default:
		flaps = strconv.Itoa(s.Flaps.Count) + " invalid"
	}

	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d",
		name,
		s.Design,
		report.FormatFloat(s.Sizing.GrossArea, report.AreaPrecision)+" "+u.Area,
		report.FormatFloat(s.Sizing.ACRatioNetDisplay, report.RatioPrecision),
		flaps,
		report.FormatCurrency(s.Replacement.TotalCost),
		report.FormatCurrency(s.Savings.TotalSavings),
		len(s.Advisories),
	)
}
