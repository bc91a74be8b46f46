package engine

import (
	"math"

	"github.com/rshade/baghouse/internal/design"
	"github.com/rshade/baghouse/internal/field"
)

// ReplacementInput holds the bag changeout cost inputs.
type ReplacementInput struct {
	BagPrice             field.Value
	CagePrice            field.Value
	BagChangeTimeMinutes field.Value
	CrewSize             field.Value
	HourlyRate           field.Value
	SiteDistance         field.Value

	// TravelCost is the quoted travel cost. When unset, the estimator fills it.
	TravelCost field.Value

	// BagReplacementCost is a fixed service charge per changeout.
	BagReplacementCost field.Value
}

// ReplacementResult is the bag changeout logistics and cost.
type ReplacementResult struct {
	TotalBags        int     `json:"total_bags"`
	DaysToReplace    float64 `json:"days_to_replace"`
	BagMaterialCost  float64 `json:"bag_material_cost"`
	CageMaterialCost float64 `json:"cage_material_cost"`

	// TravelCost is the quoted travel cost, or the estimate when none was quoted.
	TravelCost          float64 `json:"travel_cost"`
	TravelCostEstimated bool    `json:"travel_cost_estimated"`

	ServiceCost float64 `json:"service_cost"`

	// TotalCost is material + cages + travel + service.
	TotalCost float64 `json:"total_cost"`
}

// TotalBags returns flaps × bagsPerRow × 5.
func TotalBags(cfg design.Configuration) int {
	bagsPerRow := int(cfg.BagsPerRow.Positive())
	return cfg.Flaps() * bagsPerRow * design.BagsPerFlap
}

// DaysToReplace returns totalBags × minutes / 60 / 10 / crew × 2.
// A non-positive crew returns 0.
func DaysToReplace(totalBags int, changeMinutes, crew float64) float64 {
	if crew <= 0 || changeMinutes <= 0 || totalBags <= 0 {
		return 0
	}
	return float64(totalBags) * changeMinutes / MinutesPerHour / BagsPerCrewHourBaseline / crew * ChangeoutPasses
}

// EstimateTravelCost returns the crew travel and mobilisation estimate:
//
//	crew × (days − 1) × hourlyRate + crew × ⌈crew⌉ × 100 + distance × 2 × 0.5 + crew × 150
//
// The coefficients are preserved exactly for compatibility with earlier quotes.
// A non-positive crew returns 0.
func EstimateTravelCost(crew, days, hourlyRate, siteDistance float64) float64 {
	if crew <= 0 {
		return 0
	}
	return crew*(days-1)*hourlyRate +
		crew*math.Ceil(crew)*CrewPerDiem +
		siteDistance*RoundTripFactor*MileageRate +
		crew*CrewMobilisation
}

// ComputeReplacement derives bag count, changeout duration and costs.
func ComputeReplacement(cfg design.Configuration, in ReplacementInput) ReplacementResult {
	res := ReplacementResult{TotalBags: TotalBags(cfg)}
	crew := in.CrewSize.Positive()

	res.DaysToReplace = DaysToReplace(res.TotalBags, in.BagChangeTimeMinutes.Positive(), crew)
	res.BagMaterialCost = float64(res.TotalBags) * in.BagPrice.Positive()
	res.CageMaterialCost = float64(res.TotalBags) * in.CagePrice.Positive()

	if in.TravelCost.IsSet() {
		res.TravelCost = in.TravelCost.Positive()
	} else {
		res.TravelCost = EstimateTravelCost(crew, res.DaysToReplace, in.HourlyRate.Positive(), in.SiteDistance.Positive())
		res.TravelCostEstimated = true
	}

	res.ServiceCost = in.BagReplacementCost.Positive()
	res.TotalCost = res.BagMaterialCost + res.CageMaterialCost + res.TravelCost + res.ServiceCost

	return res
}
