package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/rshade/baghouse/internal/field"
)

// EnergyUnit is the unit an energy price is quoted per.
type EnergyUnit int

const (
	// KWh prices energy per kilowatt-hour.
	KWh EnergyUnit = iota
	// MMBtu prices energy per million BTU.
	MMBtu
	// Therm prices energy per therm.
	Therm
)

// String returns the canonical text of the EnergyUnit.
func (u EnergyUnit) String() string {
	switch u {
	case KWh:
		return "kWh"
	case MMBtu:
		return "MMBtu"
	case Therm:
		return "therm"
	default:
		return fmt.Sprintf("EnergyUnit(%d)", int(u))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (u EnergyUnit) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

// ParseEnergyUnit accepts "kwh", "mmbtu", "therm" or "therms" in any case.
func ParseEnergyUnit(s string) (EnergyUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kwh", "":
		return KWh, nil
	case "mmbtu":
		return MMBtu, nil
	case "therm", "therms":
		return Therm, nil
	default:
		return KWh, fmt.Errorf("%w: %q", ErrUnknownEnergyUnit, s)
	}
}

// KWhPerUnit returns the kWh content of one unit.
func (u EnergyUnit) KWhPerUnit() float64 {
	switch u {
	case MMBtu:
		return KWhPerMMBtu
	case Therm:
		return KWhPerTherm
	default:
		return 1
	}
}

// NormalizeEnergyCost converts a price per unit to a price per kWh.
func NormalizeEnergyCost(cost float64, unit EnergyUnit) float64 {
	if cost <= 0 {
		return 0
	}
	return cost / unit.KWhPerUnit()
}

// Projection holds the savings horizon and cost assumptions.
type Projection struct {
	Years               field.Value
	WorkingHoursPerYear field.Value
	EnergyCost          field.Value
	EnergyUnit          EnergyUnit

	// CompressedAirCost is the price per unit of compressed air volume.
	// When unset, air savings fall back to the motor power difference.
	CompressedAirCost field.Value
}

// SavingsContext carries the geometry and replacement figures savings depend on.
type SavingsContext struct {
	AirVolumeM3h float64
	TotalBags    int
	BagPrice     float64
	TravelCost   float64
}

// AirSavingsBasis records which formula produced the air savings line.
type AirSavingsBasis int

const (
	// AirCostBasis uses air consumption × air cost.
	AirCostBasis AirSavingsBasis = iota
	// MotorPowerBasis uses compressor motor kW × energy cost.
	MotorPowerBasis
)

// String returns a human-readable representation of the AirSavingsBasis.
func (b AirSavingsBasis) String() string {
	if b == MotorPowerBasis {
		return "motor_power"
	}
	return "air_cost"
}

// MarshalText implements encoding.TextMarshaler.
func (b AirSavingsBasis) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// YearSavings is one year of the projection, for chart consumers.
type YearSavings struct {
	Year       int     `json:"year"`
	Bag        float64 `json:"bag"`
	FanPower   float64 `json:"fan_power"`
	Air        float64 `json:"air"`
	Total      float64 `json:"total"`
	Cumulative float64 `json:"cumulative"`
}

// Savings is the OPEX projection. Each line stays individually available
// alongside the total.
type Savings struct {
	BagSavings      float64         `json:"bag_savings"`
	FanPowerSavings float64         `json:"fan_power_savings"`
	AirSavings      float64         `json:"air_savings"`
	TotalSavings    float64         `json:"total_savings"`
	AirBasis        AirSavingsBasis `json:"air_basis"`

	// EnergyCostPerKWh is the normalised energy price used.
	EnergyCostPerKWh float64 `json:"energy_cost_per_kwh"`

	// FanPowerDeltaKW is the fan shaft power saved by the lower ΔP.
	FanPowerDeltaKW float64 `json:"fan_power_delta_kw"`

	ByYear []YearSavings `json:"by_year,omitempty"`
}

// ComputeSavings projects cumulative savings over the horizon.
//
// Formulas (years Y, hours H, energy price E in $/kWh):
//   - bag: ((Y×12)/currentLife − (Y×12)/improvedLife) × (totalBags × bagPrice + travelCost)
//   - fan: (Q[m³/h] × (ΔPcur − ΔPimp) × 100) / (3600 × 1000 × 0.8) × E × H × Y
//   - air with an air price: (airCur − airImp) × airPrice × H × Y
//   - air without an air price: (kWcur − kWimp) × E × H × Y
func ComputeSavings(b Baselines, p Projection, sc SavingsContext) Savings {
	years := p.Years.Positive()
	hours := p.WorkingHoursPerYear.Positive()
	energy := NormalizeEnergyCost(p.EnergyCost.Positive(), p.EnergyUnit)

	s := Savings{EnergyCostPerKWh: energy}

	s.BagSavings = bagSavings(years, b.BagLifetimeMonths, float64(sc.TotalBags)*sc.BagPrice+sc.TravelCost)

	s.FanPowerDeltaKW = FanPowerDelta(sc.AirVolumeM3h, b.DifferentialPressureMbar.Current.Float()-b.DifferentialPressureMbar.Improved.Float())
	s.FanPowerSavings = s.FanPowerDeltaKW * energy * hours * years

	if p.CompressedAirCost.IsSet() {
		s.AirBasis = AirCostBasis
		airDelta := b.CompressedAir.Current.Float() - b.CompressedAir.Improved.Float()
		s.AirSavings = airDelta * p.CompressedAirCost.Float() * hours * years
	} else {
		s.AirBasis = MotorPowerBasis
		kwDelta := b.MotorPowerKW.Current.Float() - b.MotorPowerKW.Improved.Float()
		s.AirSavings = kwDelta * energy * hours * years
	}

	s.TotalSavings = s.BagSavings + s.FanPowerSavings + s.AirSavings
	s.ByYear = splitByYear(years, s)

	return s
}

// FanPowerDelta returns the fan shaft power in kW saved by a ΔP reduction
// given in mbar: Q × ΔP × 100 / (3600 × 1000 × 0.8).
func FanPowerDelta(airVolumeM3h, deltaMbar float64) float64 {
	if airVolumeM3h <= 0 {
		return 0
	}
	return airVolumeM3h * deltaMbar * PascalPerMbar / (SecondsPerHour * WattsPerKilowatt * FanEfficiency)
}

// bagSavings counts changeouts avoided over the horizon. A lifetime that is
// not positive contributes no changeouts.
func bagSavings(years float64, life Baseline, costPerChangeout float64) float64 {
	months := years * MonthsPerYear
	changeouts := func(lifeMonths float64) float64 {
		if lifeMonths <= 0 {
			return 0
		}
		return months / lifeMonths
	}
	return (changeouts(life.Current.Float()) - changeouts(life.Improved.Float())) * costPerChangeout
}

// splitByYear spreads the linear projection over whole years; a fractional
// horizon gets a partial final year. The last cumulative value equals the total.
// Horizons beyond maxProjectionYears get no breakdown.
func splitByYear(years float64, s Savings) []YearSavings {
	if years <= 0 || years > maxProjectionYears {
		return nil
	}
	n := int(math.Ceil(years))
	out := make([]YearSavings, 0, n)
	cumulative := 0.0
	for y := 1; y <= n; y++ {
		share := math.Min(1, years-float64(y-1)) / years
		ys := YearSavings{
			Year:     y,
			Bag:      s.BagSavings * share,
			FanPower: s.FanPowerSavings * share,
			Air:      s.AirSavings * share,
		}
		ys.Total = ys.Bag + ys.FanPower + ys.Air
		cumulative += ys.Total
		ys.Cumulative = cumulative
		out = append(out, ys)
	}
	return out
}
