package design

import "math"

// Geometry constants shared by the area formulas.
const (
	// BagDiameterM is the bolt-weld filter bag diameter in metres.
	BagDiameterM = 0.165

	// BagsPerFlap is the number of bags served by one EMC flap module.
	BagsPerFlap = 5

	// ModularBagPerimeterFt and ModularBagFootToM make up the modular
	// surface-area-per-foot coefficient (4 × 0.292 × 0.3048).
	ModularBagPerimeterFt = 4 * 0.292
	ModularBagFootToM     = 0.3048

	// ModularSurfaceAreaPerFoot is filtration area per bag per foot of length.
	ModularSurfaceAreaPerFoot = ModularBagPerimeterFt * ModularBagFootToM

	// EMCCleaningFactor is the fraction of modular gross area on line while
	// one module is cleaning.
	EMCCleaningFactor = 0.85

	// FlapsPerModule is the damper count of one modular housing; modular flap
	// counts must be a multiple of it.
	FlapsPerModule = 3
)

// A/C ratio ceilings, in display units.
const (
	// BoltWeldACCeiling is the bolt-weld net A/C limit in m³/min/m².
	BoltWeldACCeiling = 1.0

	// ModularACCeiling is the modular net A/C limit in cfm/ft².
	ModularACCeiling = 3.2

	// MinutesPerHour rescales m³/h/m² ratios to m³/min/m².
	MinutesPerHour = 60.0
)

// Inlet channel constants.
const (
	// MaxInletVelocity is the inlet gas velocity (m/s) above which an
	// advisory is raised.
	MaxInletVelocity = 12.0

	// SecondsPerHour converts m³/h to m³/s.
	SecondsPerHour = 3600.0

	// SquareMmPerSquareM converts mm² channel cross-sections to m².
	SquareMmPerSquareM = 1e6
)

// boltWeldAreaPerFlap returns the filtration area served by one bolt-weld flap.
func boltWeldAreaPerFlap(bagsPerRow, bagLength float64) float64 {
	return math.Pi * BagDiameterM * bagLength * BagsPerFlap * bagsPerRow
}

// modularAreaPerFlap returns the filtration area served by one modular flap.
func modularAreaPerFlap(bagsPerRow, bagLength float64) float64 {
	return bagsPerRow * bagLength * ModularSurfaceAreaPerFoot
}
