package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/baghouse/internal/config"
	"github.com/rshade/baghouse/internal/logging"
	"github.com/rshade/baghouse/internal/scenario"
	"github.com/rshade/baghouse/internal/session"
)

// Exit codes returned through AdvisoryExitError.
const (
	// ExitCodeAdvisories is used by --strict when a design raised advisories.
	ExitCodeAdvisories = 2
	// ExitCodeBatchFailures is used when one or more batch scenarios failed.
	ExitCodeBatchFailures = 3
)

// AdvisoryExitError asks main to exit with ExitCode after output was written.
type AdvisoryExitError struct {
	ExitCode int
	Reason   string
}

func (e *AdvisoryExitError) Error() string {
	return e.Reason
}

// keyValueParts is the expected number of parts when splitting key=value strings.
const keyValueParts = 2

// DoS protection limits for --set parsing.
const (
	maxSetOverrides = 100
	maxSetValueLen  = 1024
	maxSetKeyLen    = 64
)

// ParseSetOverrides parses --set key=value flags into a map.
// Exported for testing.
func ParseSetOverrides(sets []string) (map[string]string, error) {
	if len(sets) > maxSetOverrides {
		return nil, fmt.Errorf("too many --set overrides: %d (max %d)", len(sets), maxSetOverrides)
	}

	overrides := make(map[string]string, len(sets))
	for _, s := range sets {
		parts := strings.SplitN(s, "=", keyValueParts)
		if len(parts) != keyValueParts {
			return nil, fmt.Errorf("invalid --set format %q: expected key=value", s)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			return nil, fmt.Errorf("--set key cannot be empty in %q", s)
		}
		if len(key) > maxSetKeyLen {
			return nil, fmt.Errorf("--set key too long: %d bytes (max %d)", len(key), maxSetKeyLen)
		}
		if len(value) > maxSetValueLen {
			return nil, fmt.Errorf("--set value too large for key %q: %d bytes (max %d)",
				key, len(value), maxSetValueLen)
		}
		if _, ok := session.LookupKey(key); !ok {
			return nil, fmt.Errorf("unknown input %q (run 'baghouse inputs' for the list)", key)
		}
		overrides[key] = value
	}
	return overrides, nil
}

// InputParams are the flags shared by every command that builds a session.
type InputParams struct {
	Scenario        string
	Set             []string
	Design          string
	OverrideCeiling bool
}

func addInputFlags(cmd *cobra.Command, p *InputParams) {
	cmd.Flags().StringVar(&p.Scenario, "scenario", "", "scenario YAML file to start from")
	cmd.Flags().StringArrayVar(&p.Set, "set", nil, "input override key=value (repeatable)")
	cmd.Flags().StringVar(&p.Design, "design", "", "design type: bolt-weld or modular")
	cmd.Flags().BoolVar(&p.OverrideCeiling, "override-ceiling", false, "accept a net A/C ratio above the design ceiling")
}

// buildScenario merges the scenario file, --design, --override-ceiling and
// --set flags, in that order of precedence from lowest to highest.
func buildScenario(p InputParams) (*scenario.Scenario, error) {
	sc := &scenario.Scenario{SchemaVersion: scenario.SchemaVersion, Inputs: map[string]string{}}
	if p.Scenario != "" {
		loaded, err := scenario.Load(p.Scenario)
		if err != nil {
			return nil, err
		}
		sc = loaded
		if sc.Inputs == nil {
			sc.Inputs = map[string]string{}
		}
	}

	if p.Design != "" {
		sc.DesignType = p.Design
		delete(sc.Inputs, string(session.KeyDesignType))
	}
	if p.OverrideCeiling {
		sc.OverrideACCeiling = true
	}

	sets, err := ParseSetOverrides(p.Set)
	if err != nil {
		return nil, err
	}
	for k, v := range sets {
		sc.Inputs[k] = v
	}
	return sc, nil
}

// newEvaluator builds a scenario evaluator from the configuration.
func newEvaluator(cfg *config.Config) scenario.Evaluator {
	return scenario.Evaluator{
		Defaults:       configDefaults(cfg),
		SessionOptions: []session.Option{session.WithGuardWindow(cfg.Engine.SyncGuardWindow)},
	}
}

// configDefaults turns the savings section into session inputs applied
// underneath every scenario.
func configDefaults(cfg *config.Config) map[string]string {
	out := map[string]string{}
	if cfg.Savings.Years > 0 {
		out[string(session.KeySavingYears)] = strconv.FormatFloat(cfg.Savings.Years, 'f', -1, 64)
	}
	if cfg.Savings.WorkingHours > 0 {
		out[string(session.KeyWorkingHours)] = strconv.FormatFloat(cfg.Savings.WorkingHours, 'f', -1, 64)
	}
	if cfg.Savings.EnergyUnit != "" {
		out[string(session.KeyEnergyUnit)] = cfg.Savings.EnergyUnit
	}
	return out
}

// resolveOutputFormat returns flagValue, or the configured default when empty.
func resolveOutputFormat(cfg *config.Config, flagValue string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flagValue))
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	if !slices.Contains([]string{config.FormatTable, config.FormatJSON}, format) {
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
	return format, nil
}

// evaluateInputs runs one scenario built from the shared flags.
func evaluateInputs(ctx context.Context, p InputParams) (session.Snapshot, error) {
	log := logging.FromContext(ctx)

	sc, err := buildScenario(p)
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Str("scenario", p.Scenario).Msg("failed to build scenario")
		return session.Snapshot{}, err
	}

	snap, err := newEvaluator(configFromContext(ctx)).Evaluate(ctx, sc)
	if err != nil {
		return snap, err
	}
	log.Debug().Ctx(ctx).
		Str("session_id", snap.SessionID).
		Int("advisories", len(snap.Advisories)).
		Msg("inputs evaluated")
	return snap, nil
}

// checkStrict returns an AdvisoryExitError when strict is set and snap has advisories.
func checkStrict(strict bool, snap session.Snapshot) error {
	if !strict || len(snap.Advisories) == 0 {
		return nil
	}
	return &AdvisoryExitError{
		ExitCode: ExitCodeAdvisories,
		Reason:   fmt.Sprintf("design raised %d advisory(ies)", len(snap.Advisories)),
	}
}
