package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/rshade/baghouse/internal/design"
	"github.com/rshade/baghouse/internal/field"
)

// Flap validation reasons.
const (
	ReasonFlapsRequired   = "flap count is required"
	ReasonFlapsInteger    = "flap count must be a whole number"
	ReasonModuleDampers   = "each module has 3 dampers"
	ReasonOddForcesSingle = "double row needs an even flap count; using single row"
	ReasonCeilingExceeded = "net A/C ratio exceeds the design ceiling"
)

// FlapValidation is the advisory outcome of checking a flap count.
type FlapValidation struct {
	// Valid is false when the count violates a constraint that has not been overridden.
	Valid bool `json:"valid"`

	// Count is the flap count that was checked.
	Count int `json:"count"`

	// AdjustedCount is the suggested correction; 0 when none applies.
	AdjustedCount int `json:"adjusted_count,omitempty"`

	// RowType is the row arrangement the count allows.
	RowType design.RowType `json:"row_type"`

	// RowTypeForced is true when a requested double row was changed to single.
	RowTypeForced bool `json:"row_type_forced"`

	// ACRatio is the net A/C ratio at Count, in display units.
	ACRatio float64 `json:"ac_ratio"`

	// Ceiling is the design A/C ceiling in display units.
	Ceiling float64 `json:"ceiling"`

	// ExceedsCeiling is true when ACRatio is above Ceiling.
	ExceedsCeiling bool `json:"exceeds_ceiling"`

	// Overridden is true when ExceedsCeiling was accepted by user override.
	Overridden bool `json:"overridden"`

	// Reasons lists every advisory that applied, in evaluation order.
	Reasons []string `json:"reasons,omitempty"`
}

// Reason joins all advisories into one line.
func (v FlapValidation) Reason() string {
	return strings.Join(v.Reasons, "; ")
}

// SuggestFlaps returns the smallest flap count whose net A/C ratio is at or
// below the design ceiling, rounded up to the design's flap multiple.
// It returns 0 when air volume or bag geometry is missing.
func SuggestFlaps(cfg design.Configuration) int {
	p := cfg.Profile()
	q := cfg.NativeAirVolume()
	perFlap := p.AreaPerFlap(cfg.BagsPerRow.Positive(), cfg.BagLength.Positive())
	if q <= 0 || perFlap <= 0 || p.ACCeiling <= 0 {
		return 0
	}

	// Solve q × scale / (perFlap × flaps × factor) = ceiling for flaps,
	// then step up until the net formula (which may drop a flap) is satisfied.
	needed := q * p.ACDisplayScale / (p.ACCeiling * perFlap * p.NetFactor)
	n := int(math.Ceil(needed - ratioEpsilon))
	if n < 1 {
		n = 1
	}
	for n < maxSuggestedFlaps && netDisplayRatio(p, q, perFlap, n) > p.ACCeiling+ratioEpsilon {
		n++
	}

	return p.RoundUpToMultiple(n)
}

// ValidateFlaps checks count against the configuration.
//
// Rules, in order:
//   - Empty, non-positive or fractional counts are invalid; the suggested
//     count is offered as AdjustedCount.
//   - Modular counts must be a multiple of 3; otherwise invalid with the
//     next multiple of 3 as AdjustedCount.
//   - An odd count is accepted but forces a single row.
//   - A net A/C ratio above the ceiling is invalid unless override is set.
func ValidateFlaps(count field.Value, cfg design.Configuration, override bool) FlapValidation {
	p := cfg.Profile()
	v := FlapValidation{
		Valid:   true,
		RowType: cfg.RowType,
		Ceiling: p.ACCeiling,
	}

	if !count.IsSet() || count.Float() <= 0 {
		v.Valid = false
		v.AdjustedCount = SuggestFlaps(cfg)
		v.Reasons = append(v.Reasons, ReasonFlapsRequired)
		return v
	}
	if !count.IsInteger() {
		v.Valid = false
		v.AdjustedCount = p.RoundUpToMultiple(int(math.Ceil(count.Float())))
		v.Reasons = append(v.Reasons, ReasonFlapsInteger)
		return v
	}

	n := count.Int()
	v.Count = n

	if p.FlapMultiple > 1 && n%p.FlapMultiple != 0 {
		v.Valid = false
		v.AdjustedCount = p.RoundUpToMultiple(n)
		v.Reasons = append(v.Reasons, ReasonModuleDampers)
	}

	if n%2 == 1 {
		if cfg.RowType == design.Double {
			v.RowTypeForced = true
			v.Reasons = append(v.Reasons, ReasonOddForcesSingle)
		}
		v.RowType = design.Single
	}

	q := cfg.NativeAirVolume()
	perFlap := p.AreaPerFlap(cfg.BagsPerRow.Positive(), cfg.BagLength.Positive())
	if perFlap <= 0 {
		// Without bag geometry there is no ratio to check.
		return v
	}

	ratio := netDisplayRatio(p, q, perFlap, n)
	if !math.IsInf(ratio, 0) {
		v.ACRatio = ratio
	}

	if ratio > p.ACCeiling+ratioEpsilon {
		v.ExceedsCeiling = true
		if override {
			v.Overridden = true
		} else {
			v.Valid = false
			v.Reasons = append(v.Reasons, ceilingReason(ratio, p.ACCeiling))
			if s := SuggestFlaps(cfg); s > v.AdjustedCount {
				v.AdjustedCount = s
			}
		}
	}

	return v
}

func ceilingReason(ratio, ceiling float64) string {
	if math.IsInf(ratio, 0) {
		return ReasonCeilingExceeded + " (no net area on line)"
	}
	return fmt.Sprintf("%s (%.2f > %.2f)", ReasonCeilingExceeded, ratio, ceiling)
}

// netDisplayRatio is the net A/C ratio in display units for n flaps.
// A non-positive net area yields +Inf so that callers treat it as over any ceiling;
// with no air volume the ratio is 0.
func netDisplayRatio(p design.Profile, q, perFlap float64, n int) float64 {
	if q <= 0 {
		return 0
	}
	net := perFlap * p.NetFlaps(float64(n)) * p.NetFactor
	if net <= 0 {
		return math.Inf(1)
	}
	return q / net * p.ACDisplayScale
}
