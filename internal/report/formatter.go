// Package report turns engine results into display strings and renders them
// as tables or JSON.
package report

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/baghouse/internal/design"
	"github.com/rshade/baghouse/internal/field"
)

// printer is the locale-aware message printer for number formatting.
// Uses English locale for consistent thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// NotAvailable is shown in place of a non-finite number.
const NotAvailable = "n/a"

// Display precisions.
const (
	AreaPrecision     = 1
	RatioPrecision    = 2
	VelocityPrecision = 1
	DaysPrecision     = 1
	PercentPrecision  = 1
	CurrencyPrecision = 0
)

// UnitLabels are the unit strings shown for a unit system.
type UnitLabels struct {
	Area     string `json:"area"`
	Ratio    string `json:"ratio"`
	Velocity string `json:"velocity"`
	Flow     string `json:"flow"`
}

// LabelsFor returns the display units for u.
func LabelsFor(u design.UnitSystem) UnitLabels {
	if u == design.Imperial {
		return UnitLabels{Area: "sq ft", Ratio: "cfm/sq ft", Velocity: "ft/s", Flow: "ACFM"}
	}
	return UnitLabels{Area: "m²", Ratio: "m³/min/m²", Velocity: "m/s", Flow: "m³/h"}
}

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats a float with the specified precision and thousand separators.
// Example: FormatFloat(1234.567, 2) returns "1,234.57". NaN and Inf return NotAvailable.
func FormatFloat(f float64, precision int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NotAvailable
	}
	if precision < 0 {
		precision = 0
	}

	rounded := field.RoundTo(f, precision)
	negative := rounded < 0
	formatted := strconv.FormatFloat(math.Abs(rounded), 'f', precision, 64)

	intText, frac, hasFrac := strings.Cut(formatted, ".")
	n, err := strconv.ParseInt(intText, 10, 64)
	if err != nil {
		// Beyond int64: keep the digits ungrouped.
		if negative {
			return "-" + formatted
		}
		return formatted
	}

	out := FormatNumber(n)
	if hasFrac {
		out += "." + frac
	}
	if negative {
		out = "-" + out
	}
	return out
}

// FormatSigned is FormatFloat with an explicit "+" on positive values.
func FormatSigned(f float64, precision int) string {
	s := FormatFloat(f, precision)
	if s != NotAvailable && field.RoundTo(f, precision) > 0 {
		return "+" + s
	}
	return s
}

// FormatCurrency formats a dollar amount as "$1,234"; negatives as "-$1,234".
func FormatCurrency(amount float64) string {
	s := FormatFloat(amount, CurrencyPrecision)
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		return "-$" + rest
	}
	if s == NotAvailable {
		return s
	}
	return "$" + s
}

// FormatPercent formats a percentage with sign, e.g. "+100.0%".
func FormatPercent(pct float64) string {
	return FormatSigned(pct, PercentPrecision) + "%"
}

// FormatDelta formats a baseline change as "+12 months (+100.0%)".
func FormatDelta(abs, pct float64, precision int, unit string) string {
	s := FormatSigned(abs, precision)
	if unit != "" {
		s += " " + unit
	}
	return s + " (" + FormatPercent(pct) + ")"
}

// FormatArea formats a filtration area in the unit system's area unit.
func FormatArea(v float64, u design.UnitSystem) string {
	return FormatFloat(v, AreaPrecision) + " " + LabelsFor(u).Area
}

// FormatRatio formats a display-scaled A/C ratio.
func FormatRatio(v float64, u design.UnitSystem) string {
	return FormatFloat(v, RatioPrecision) + " " + LabelsFor(u).Ratio
}

// FormatVelocity formats an inlet velocity in m/s.
func FormatVelocity(v float64) string {
	return FormatFloat(v, VelocityPrecision) + " " + LabelsFor(design.Metric).Velocity
}
