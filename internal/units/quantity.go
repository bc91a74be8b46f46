// Package units holds the convertible quantities of the calculator and the
// two-way linked Pair that keeps both representations of a quantity in step.
package units

import (
	"fmt"
	"strings"
)

// Quantity describes a physical quantity with two unit representations
// related by B = A*Factor + Offset.
type Quantity struct {
	// Name is the catalog key (e.g., "flow").
	Name string

	// UnitA and UnitB are display symbols for the two sides.
	UnitA string
	UnitB string

	// Factor and Offset define the affine conversion from A to B.
	Factor float64
	Offset float64

	// PrecisionA and PrecisionB are the display decimals of each side.
	// Derived values are rounded to the precision of the side they land on.
	PrecisionA int
	PrecisionB int
}

// Conversion factors.
const (
	// M3hToACFM converts cubic metres per hour to actual cubic feet per minute.
	M3hToACFM = 0.588578

	// CelsiusToFahrenheitFactor and CelsiusToFahrenheitOffset give °F = °C*1.8 + 32.
	CelsiusToFahrenheitFactor = 1.8
	CelsiusToFahrenheitOffset = 32.0

	// MbarToInWG converts millibar to inches of water gauge.
	MbarToInWG = 0.401463

	// MgM3ToGrFt3 converts mg/m³ to grains per cubic foot.
	MgM3ToGrFt3 = 0.000437

	// KgToLb converts kilograms (per hour) to pounds (per hour).
	KgToLb = 2.20462
)

// Catalog of quantities used by the calculator.
//
//nolint:gochecknoglobals // Read-only catalog of fixed engineering conversions.
var (
	Flow = Quantity{
		Name: "flow", UnitA: "m³/h", UnitB: "ACFM",
		Factor: M3hToACFM, PrecisionA: 0, PrecisionB: 0,
	}

	Temperature = Quantity{
		Name: "temperature", UnitA: "°C", UnitB: "°F",
		Factor: CelsiusToFahrenheitFactor, Offset: CelsiusToFahrenheitOffset,
		PrecisionA: 1, PrecisionB: 1,
	}

	Pressure = Quantity{
		Name: "pressure", UnitA: "mbar", UnitB: "in W.G.",
		Factor: MbarToInWG, PrecisionA: 2, PrecisionB: 2,
	}

	DustConcentration = Quantity{
		Name: "dust_concentration", UnitA: "mg/m³", UnitB: "gr/ft³",
		Factor: MgM3ToGrFt3, PrecisionA: 1, PrecisionB: 4,
	}

	EmissionRate = Quantity{
		Name: "emission_rate", UnitA: "kg/h", UnitB: "lb/h",
		Factor: KgToLb, PrecisionA: 3, PrecisionB: 3,
	}
)

// Quantities returns the catalog in display order.
func Quantities() []Quantity {
	return []Quantity{Flow, Temperature, Pressure, DustConcentration, EmissionRate}
}

// Lookup finds a catalog quantity by name (case-insensitive).
func Lookup(name string) (Quantity, error) {
	for _, q := range Quantities() {
		if strings.EqualFold(q.Name, name) {
			return q, nil
		}
	}
	return Quantity{}, fmt.Errorf("%w: %q", ErrUnknownQuantity, name)
}

// ToB converts an A-side value to the B side without rounding.
func (q Quantity) ToB(a float64) float64 {
	return a*q.Factor + q.Offset
}

// ToA converts a B-side value to the A side without rounding.
// A zero factor yields 0.
func (q Quantity) ToA(b float64) float64 {
	if q.Factor == 0 {
		return 0
	}
	return (b - q.Offset) / q.Factor
}

// Convert converts v from side to the opposite side.
func (q Quantity) Convert(from Side, v float64) float64 {
	if from == SideA {
		return q.ToB(v)
	}
	return q.ToA(v)
}

// Precision returns the display decimals of side.
func (q Quantity) Precision(side Side) int {
	if side == SideA {
		return q.PrecisionA
	}
	return q.PrecisionB
}

// Unit returns the unit symbol of side.
func (q Quantity) Unit(side Side) string {
	if side == SideA {
		return q.UnitA
	}
	return q.UnitB
}
