package design

import (
	"math"
	"slices"

	"github.com/rshade/baghouse/internal/units"
)

// Profile is the per-design-type strategy entry: unit system, allowed
// discrete options, A/C ceiling and area formulas.
type Profile struct {
	Type  Type
	Units UnitSystem

	// FlowSide is the air volume pair side used for A/C ratios.
	FlowSide units.Side

	// BagLengths lists the allowed bag lengths in BagLengthUnit.
	BagLengths    []float64
	BagLengthUnit string

	// BagsPerRowOptions lists the allowed bags per row.
	BagsPerRowOptions []int

	// ACCeiling is the net A/C limit in display units.
	ACCeiling float64

	// ACDisplayScale converts a native ratio (flow side / area) to display units.
	ACDisplayScale float64

	// FlapMultiple is the granularity flap counts must respect.
	FlapMultiple int

	// HasInletChannel reports whether inlet velocity applies.
	HasInletChannel bool

	// AreaPerFlap returns the gross filtration area served by one flap.
	AreaPerFlap func(bagsPerRow, bagLength float64) float64

	// NetFlaps returns the flap-equivalent count that stays on line while
	// cleaning. Bolt-weld takes one flap off line; modular keeps all flaps
	// and applies NetFactor instead.
	NetFlaps func(flaps float64) float64

	// NetFactor scales the net area after NetFlaps.
	NetFactor float64
}

//nolint:gochecknoglobals // Fixed strategy table keyed by design type.
var profiles = map[Type]Profile{
	BoltWeld: {
		Type:              BoltWeld,
		Units:             Metric,
		FlowSide:          units.SideA,
		BagLengths:        []float64{6, 7, 8, 9, 10},
		BagLengthUnit:     "m",
		BagsPerRowOptions: []int{15, 18},
		ACCeiling:         BoltWeldACCeiling,
		ACDisplayScale:    1 / MinutesPerHour,
		FlapMultiple:      1,
		HasInletChannel:   true,
		AreaPerFlap:       boltWeldAreaPerFlap,
		NetFlaps:          func(flaps float64) float64 { return flaps - 1 },
		NetFactor:         1,
	},
	Modular: {
		Type:              Modular,
		Units:             Imperial,
		FlowSide:          units.SideB,
		BagLengths:        []float64{8, 10, 12, 14, 16},
		BagLengthUnit:     "ft",
		BagsPerRowOptions: []int{15},
		ACCeiling:         ModularACCeiling,
		ACDisplayScale:    1,
		FlapMultiple:      FlapsPerModule,
		HasInletChannel:   false,
		AreaPerFlap:       modularAreaPerFlap,
		NetFlaps:          func(flaps float64) float64 { return flaps },
		NetFactor:         EMCCleaningFactor,
	},
}

// ProfileFor returns the strategy entry for t. Unknown types fall back to bolt-weld.
func ProfileFor(t Type) Profile {
	if p, ok := profiles[t]; ok {
		return p
	}
	return profiles[BoltWeld]
}

// Types returns all design types in display order.
func Types() []Type {
	return []Type{BoltWeld, Modular}
}

// AllowsBagLength reports whether l is one of the profile's bag lengths.
func (p Profile) AllowsBagLength(l float64) bool {
	return slices.Contains(p.BagLengths, l)
}

// AllowsBagsPerRow reports whether n is one of the profile's row sizes.
func (p Profile) AllowsBagsPerRow(n int) bool {
	return slices.Contains(p.BagsPerRowOptions, n)
}

// RoundUpToMultiple rounds n up to the profile's flap multiple.
func (p Profile) RoundUpToMultiple(n int) int {
	m := p.FlapMultiple
	if m <= 1 || n <= 0 {
		return n
	}
	return int(math.Ceil(float64(n)/float64(m))) * m
}

// DefaultBagLength returns the longest allowed bag length.
func (p Profile) DefaultBagLength() float64 {
	return p.BagLengths[len(p.BagLengths)-1]
}

// DefaultBagsPerRow returns the largest allowed row size.
func (p Profile) DefaultBagsPerRow() int {
	return p.BagsPerRowOptions[len(p.BagsPerRowOptions)-1]
}
