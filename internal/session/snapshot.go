package session

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rshade/baghouse/internal/design"
	"github.com/rshade/baghouse/internal/engine"
	"github.com/rshade/baghouse/internal/report"
	"github.com/rshade/baghouse/internal/units"
)

// Snapshot is every derived result of one recompute.
type Snapshot struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name,omitempty"`
	Revision  int    `json:"revision"`

	Design   design.Type    `json:"design"`
	RowType  design.RowType `json:"row_type"`
	Override bool           `json:"override_ac_ceiling"`

	// Inputs is the current text of every non-empty input.
	Inputs map[Key]string `json:"inputs"`

	Sizing         engine.SizingResult      `json:"sizing"`
	Flaps          engine.FlapValidation    `json:"flaps"`
	SuggestedFlaps int                      `json:"suggested_flaps"`
	Replacement    engine.ReplacementResult `json:"replacement"`
	Comparison     engine.Comparison        `json:"comparison"`
	Savings        engine.Savings           `json:"savings"`

	Advisories []string `json:"advisories,omitempty"`

	// Report is the formatted view of the results above.
	Report report.Report `json:"-"`
}

func (s *Session) recompute() {
	cfg := s.configuration()

	// Odd flap counts cannot use a double row; correct the session, not just the result.
	if normalized, changed := cfg.Normalized(); changed {
		s.logger.Debug().Int("flaps", cfg.Flaps()).Msg("odd flap count; row type set to single")
		s.rowType = normalized.RowType
		cfg = normalized
	}

	s.revision++
	snap := Snapshot{
		SessionID: s.id,
		Name:      s.name,
		Revision:  s.revision,
		Design:    s.designType,
		RowType:   s.rowType,
		Override:  s.override,
		Inputs:    s.inputs(),
	}

	snap.Sizing = engine.ComputeSizing(cfg)
	snap.Flaps = engine.ValidateFlaps(cfg.NumEMCFlaps, cfg, s.override)
	snap.SuggestedFlaps = engine.SuggestFlaps(cfg)
	snap.Replacement = engine.ComputeReplacement(cfg, s.replacementInput())
	baselines := s.baselines()
	snap.Comparison = engine.Compare(baselines)
	snap.Savings = engine.ComputeSavings(baselines, s.projection(), engine.SavingsContext{
		AirVolumeM3h: s.flow.A().Positive(),
		TotalBags:    snap.Replacement.TotalBags,
		BagPrice:     s.values[KeyBagPrice].Positive(),
		TravelCost:   snap.Replacement.TravelCost,
	})

	snap.Advisories = append(slices.Clone(s.notes), s.advisories(cfg, snap)...)
	snap.Report = report.Build(report.Input{
		Name:        s.name,
		Design:      s.designType,
		Sizing:      snap.Sizing,
		Flaps:       snap.Flaps,
		Replacement: snap.Replacement,
		Comparison:  snap.Comparison,
		Savings:     snap.Savings,
		Advisories:  snap.Advisories,
	})

	s.snapshot = snap
	s.logger.Debug().
		Int("revision", snap.Revision).
		Stringer("design", snap.Design).
		Float64("gross_area", snap.Sizing.GrossArea).
		Float64("ac_ratio_net", snap.Sizing.ACRatioNetDisplay).
		Bool("flaps_valid", snap.Flaps.Valid).
		Float64("total_savings", snap.Savings.TotalSavings).
		Msg("recomputed")
}

func (s *Session) inputs() map[Key]string {
	out := make(map[Key]string, len(keyCatalog))
	for _, info := range keyCatalog {
		if text := s.Text(info.Key); text != "" {
			out[info.Key] = text
		}
	}
	return out
}

// SourceInputs returns the inputs needed to rebuild the session: like
// Snapshot.Inputs, but each unit pair contributes only one side so that a
// replay does not trip the sync guard.
func (s *Session) SourceInputs() map[Key]string {
	out := s.inputs()
	for k, b := range s.bindings {
		if b.side == units.SideB && b.pair.A().IsSet() {
			delete(out, k)
		}
	}
	return out
}

// advisories lists the non-fatal warnings for a recompute.
func (s *Session) advisories(cfg design.Configuration, snap Snapshot) []string {
	var out []string
	p := cfg.Profile()

	if snap.Sizing.NetAreaClamped {
		out = append(out, "net area clamped to zero: no flaps on line while cleaning")
	}
	if snap.Sizing.InletVelocityWarning {
		out = append(out, fmt.Sprintf("inlet velocity %.1f m/s exceeds %.0f m/s",
			snap.Sizing.InletVelocity, design.MaxInletVelocity))
	}
	if cfg.NumEMCFlaps.IsSet() && !snap.Flaps.Valid {
		msg := "flap count: " + snap.Flaps.Reason()
		if snap.Flaps.AdjustedCount > 0 {
			msg += "; try " + strconv.Itoa(snap.Flaps.AdjustedCount)
		}
		out = append(out, msg)
	}
	if snap.Flaps.Overridden {
		out = append(out, fmt.Sprintf("net A/C ratio %.2f above ceiling %.2f accepted by override",
			snap.Flaps.ACRatio, snap.Flaps.Ceiling))
	}
	if l := cfg.BagLength; l.IsSet() && !p.AllowsBagLength(l.Float()) {
		out = append(out, fmt.Sprintf("bag length %s %s is not a standard %s length (%s)",
			l.Text(), p.BagLengthUnit, p.Type, joinFloats(p.BagLengths)))
	}
	if n := cfg.BagsPerRow; n.IsSet() && (!n.IsInteger() || !p.AllowsBagsPerRow(n.Int())) {
		out = append(out, fmt.Sprintf("bags per row %s is not offered for %s (%s)",
			n.Text(), p.Type, joinInts(p.BagsPerRowOptions)))
	}
	return out
}

func joinFloats(fs []float64) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strings.Join(parts, ", ")
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
