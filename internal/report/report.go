package report

import (
	"strconv"

	"github.com/rshade/baghouse/internal/design"
	"github.com/rshade/baghouse/internal/engine"
)

// Section titles.
const (
	SectionSizing      = "Filter sizing"
	SectionFlaps       = "EMC flaps"
	SectionReplacement = "Bag replacement"
	SectionComparison  = "Operational comparison"
	SectionSavings     = "OPEX savings"
)

// Row is one labelled display value.
type Row struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Warning bool   `json:"warning,omitempty"`
}

// Section groups the rows of one calculation.
type Section struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

// Report is the formatted view of one recompute.
type Report struct {
	Name       string     `json:"name,omitempty"`
	Design     string     `json:"design"`
	Units      UnitLabels `json:"units"`
	Sections   []Section  `json:"sections"`
	Advisories []string   `json:"advisories,omitempty"`
}

// Input carries the engine results a report is built from.
type Input struct {
	Name        string
	Design      design.Type
	Sizing      engine.SizingResult
	Flaps       engine.FlapValidation
	Replacement engine.ReplacementResult
	Comparison  engine.Comparison
	Savings     engine.Savings
	Advisories  []string
}

// Build formats every section of in.
func Build(in Input) Report {
	units := design.ProfileFor(in.Design).Units
	return Report{
		Name:   in.Name,
		Design: in.Design.String(),
		Units:  LabelsFor(units),
		Sections: []Section{
			{Title: SectionSizing, Rows: SizingRows(in.Sizing)},
			{Title: SectionFlaps, Rows: FlapRows(in.Flaps, units)},
			{Title: SectionReplacement, Rows: ReplacementRows(in.Replacement)},
			{Title: SectionComparison, Rows: ComparisonRows(in.Comparison)},
			{Title: SectionSavings, Rows: SavingsRows(in.Savings)},
		},
		Advisories: in.Advisories,
	}
}

// Only returns a copy of r restricted to the named sections, in r's order.
func (r Report) Only(titles ...string) Report {
	keep := make(map[string]bool, len(titles))
	for _, t := range titles {
		keep[t] = true
	}
	out := r
	out.Sections = nil
	for _, s := range r.Sections {
		if keep[s.Title] {
			out.Sections = append(out.Sections, s)
		}
	}
	return out
}

// Section returns the section with the given title.
func (r Report) Section(title string) (Section, bool) {
	for _, s := range r.Sections {
		if s.Title == title {
			return s, true
		}
	}
	return Section{}, false
}

// SizingRows formats filtration areas, A/C ratios and inlet velocity.
func SizingRows(res engine.SizingResult) []Row {
	rows := []Row{
		{Label: "Gross area", Value: FormatArea(res.GrossArea, res.Units)},
		{Label: "Net area", Value: FormatArea(res.NetArea, res.Units), Warning: res.NetAreaClamped},
		{Label: "A/C ratio (gross)", Value: FormatRatio(res.ACRatioGrossDisplay, res.Units)},
		{Label: "A/C ratio (net)", Value: FormatRatio(res.ACRatioNetDisplay, res.Units)},
	}
	if res.InletVelocity > 0 {
		rows = append(rows, Row{
			Label:   "Inlet velocity",
			Value:   FormatVelocity(res.InletVelocity),
			Warning: res.InletVelocityWarning,
		})
	}
	return rows
}

// FlapRows formats the flap validation outcome.
func FlapRows(v engine.FlapValidation, u design.UnitSystem) []Row {
	status := "ok"
	switch {
	case !v.Valid:
		status = "invalid"
	case v.Overridden:
		status = "accepted (ceiling overridden)"
	}

	rows := []Row{
		{Label: "Flaps", Value: strconv.Itoa(v.Count)},
		{Label: "Status", Value: status, Warning: !v.Valid || v.Overridden},
		{Label: "Filter rows", Value: v.RowType.String(), Warning: v.RowTypeForced},
		{Label: "Net A/C vs ceiling", Value: FormatRatio(v.ACRatio, u) + " / " + FormatFloat(v.Ceiling, RatioPrecision), Warning: v.ExceedsCeiling},
	}
	if v.AdjustedCount > 0 {
		rows = append(rows, Row{Label: "Suggested flaps", Value: strconv.Itoa(v.AdjustedCount)})
	}
	for _, reason := range v.Reasons {
		rows = append(rows, Row{Label: "Note", Value: reason, Warning: true})
	}
	return rows
}

// ReplacementRows formats the bag changeout figures.
func ReplacementRows(r engine.ReplacementResult) []Row {
	travelLabel := "Travel cost"
	if r.TravelCostEstimated {
		travelLabel = "Travel cost (estimated)"
	}
	return []Row{
		{Label: "Total bags", Value: FormatNumber(int64(r.TotalBags))},
		{Label: "Days to replace", Value: FormatFloat(r.DaysToReplace, DaysPrecision)},
		{Label: "Bag material", Value: FormatCurrency(r.BagMaterialCost)},
		{Label: "Cage material", Value: FormatCurrency(r.CageMaterialCost)},
		{Label: travelLabel, Value: FormatCurrency(r.TravelCost)},
		{Label: "Service", Value: FormatCurrency(r.ServiceCost)},
		{Label: "Total replacement cost", Value: FormatCurrency(r.TotalCost)},
	}
}

// ComparisonRows formats each baseline as "current → improved (delta)".
func ComparisonRows(c engine.Comparison) []Row {
	labels := map[engine.Metric]string{
		engine.MetricBagLifetime:          "Bag lifetime",
		engine.MetricDifferentialPressure: "Differential pressure",
		engine.MetricCompressedAir:        "Compressed air",
		engine.MetricMotorPower:           "Motor power",
	}

	all := c.All()
	rows := make([]Row, 0, len(all))
	for _, mc := range all {
		unit := mc.Metric.Unit()
		value := FormatFloat(mc.Current, RatioPrecision) + " → " + FormatFloat(mc.Improved, RatioPrecision) +
			" " + unit + "  " + FormatDelta(mc.AbsoluteDelta, mc.PercentDelta, RatioPrecision, unit)
		rows = append(rows, Row{
			Label:   labels[mc.Metric],
			Value:   value,
			Warning: mc.AbsoluteDelta != 0 && !mc.Improvement,
		})
	}
	return rows
}

// SavingsRows formats each savings line and the total.
func SavingsRows(s engine.Savings) []Row {
	airLabel := "Compressed air savings"
	if s.AirBasis == engine.MotorPowerBasis {
		airLabel = "Compressed air savings (motor power)"
	}
	rows := []Row{
		{Label: "Bag savings", Value: FormatCurrency(s.BagSavings)},
		{Label: "Fan power savings", Value: FormatCurrency(s.FanPowerSavings)},
		{Label: airLabel, Value: FormatCurrency(s.AirSavings)},
		{Label: "Total savings", Value: FormatCurrency(s.TotalSavings)},
	}
	for _, y := range s.ByYear {
		rows = append(rows, Row{
			Label: "Year " + strconv.Itoa(y.Year),
			Value: FormatCurrency(y.Total) + " (cumulative " + FormatCurrency(y.Cumulative) + ")",
		})
	}
	return rows
}
