// Package engine implements the baghouse sizing and OPEX calculations.
//
// All functions are pure: they take a design.Configuration snapshot (and
// cost or baseline inputs) and return result values. Missing or degenerate
// inputs never produce NaN, Inf or errors; they produce zero results.
package engine

import (
	"math"

	"github.com/rshade/baghouse/internal/design"
)

// SizingResult is the filtration area and air-to-cloth outcome of a design.
type SizingResult struct {
	// Units is the unit system the areas and display ratios are expressed in.
	Units design.UnitSystem `json:"units"`

	// GrossArea is the installed filtration area (m² or ft² by design type).
	GrossArea float64 `json:"gross_area"`

	// NetArea is the area on line while one section cleans.
	NetArea float64 `json:"net_area"`

	// NetAreaClamped is true when the net formula went negative and was clamped to 0.
	NetAreaClamped bool `json:"net_area_clamped"`

	// ACRatioGross and ACRatioNet are native ratios: m³/h per m² for
	// bolt-weld, cfm per ft² for modular.
	ACRatioGross float64 `json:"ac_ratio_gross"`
	ACRatioNet   float64 `json:"ac_ratio_net"`

	// ACRatioGrossDisplay and ACRatioNetDisplay are rescaled to display
	// units: m³/min/m² for bolt-weld, cfm/ft² for modular.
	ACRatioGrossDisplay float64 `json:"ac_ratio_gross_display"`
	ACRatioNetDisplay   float64 `json:"ac_ratio_net_display"`

	// InletVelocity is the inlet duct gas velocity in m/s (bolt-weld with
	// channel dimensions only, otherwise 0).
	InletVelocity float64 `json:"inlet_velocity"`

	// InletVelocityWarning is set when InletVelocity exceeds design.MaxInletVelocity.
	InletVelocityWarning bool `json:"inlet_velocity_warning"`
}

// ExceedsCeiling reports whether the net display ratio is above the design ceiling.
func (r SizingResult) ExceedsCeiling(p design.Profile) bool {
	return r.ACRatioNetDisplay > p.ACCeiling+ratioEpsilon
}

// ComputeSizing derives filtration areas and A/C ratios from a configuration.
//
// Formulas:
//   - bolt-weld gross: π × 0.165 × L × 5 × bagsPerRow × flaps
//   - bolt-weld net: the gross formula with (flaps − 1)
//   - modular gross: flaps × bagsPerRow × L × (4 × 0.292 × 0.3048)
//   - modular net: gross × 0.85
//   - A/C: native air volume / area
//
// Edge cases:
//   - Missing or non-positive flaps, bags per row or bag length: areas are 0
//   - Net formula below zero (bolt-weld with no flaps): NetArea is 0 and
//     NetAreaClamped is set
//   - Zero area or zero air volume: ratio is 0
func ComputeSizing(cfg design.Configuration) SizingResult {
	p := cfg.Profile()
	res := SizingResult{Units: p.Units}

	flaps := float64(cfg.Flaps())
	perFlap := p.AreaPerFlap(cfg.BagsPerRow.Positive(), cfg.BagLength.Positive())

	res.GrossArea = perFlap * flaps
	net := perFlap * p.NetFlaps(flaps) * p.NetFactor
	if net < 0 {
		net = 0
		res.NetAreaClamped = true
	}
	res.NetArea = net

	q := cfg.NativeAirVolume()
	res.ACRatioGross = safeRatio(q, res.GrossArea)
	res.ACRatioNet = safeRatio(q, res.NetArea)
	res.ACRatioGrossDisplay = res.ACRatioGross * p.ACDisplayScale
	res.ACRatioNetDisplay = res.ACRatioNet * p.ACDisplayScale

	if p.HasInletChannel {
		res.InletVelocity = InletVelocity(
			cfg.AirVolumeM3h.Positive(),
			cfg.ChannelWidthMm.Positive(),
			cfg.ChannelHeightMm.Positive(),
		)
		res.InletVelocityWarning = res.InletVelocity > design.MaxInletVelocity
	}

	return res
}

// InletVelocity returns the gas velocity in m/s through a rectangular inlet
// channel: Q[m³/h] × 1e6 / (3600 × width[mm] × height[mm]).
// Non-positive inputs return 0.
func InletVelocity(airVolumeM3h, widthMm, heightMm float64) float64 {
	if airVolumeM3h <= 0 || widthMm <= 0 || heightMm <= 0 {
		return 0
	}
	return airVolumeM3h * design.SquareMmPerSquareM / (design.SecondsPerHour * widthMm * heightMm)
}

// safeRatio divides num by den, returning 0 for non-positive operands or a
// non-finite quotient.
func safeRatio(num, den float64) float64 {
	if num <= 0 || den <= 0 {
		return 0
	}
	r := num / den
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0
	}
	return r
}
