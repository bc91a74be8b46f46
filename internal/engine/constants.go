package engine

// Savings coefficients.
const (
	// PercentageMultiplier converts a ratio to a percentage.
	PercentageMultiplier = 100.0

	// MonthsPerYear converts a savings horizon in years to months.
	MonthsPerYear = 12.0

	// FanEfficiency is the assumed combined fan and motor efficiency.
	FanEfficiency = 0.8

	// PascalPerMbar converts a differential pressure in mbar to Pa.
	PascalPerMbar = 100.0

	// SecondsPerHour converts m³/h to m³/s.
	SecondsPerHour = 3600.0

	// WattsPerKilowatt converts W to kW.
	WattsPerKilowatt = 1000.0
)

// Bag replacement coefficients. These are fixed business rules, not derived
// quantities; changing them changes every quoted replacement cost.
const (
	// MinutesPerHour converts bag change time to hours.
	MinutesPerHour = 60.0

	// BagsPerCrewHourBaseline is the divisor modelling bags replaceable per crew hour.
	BagsPerCrewHourBaseline = 10.0

	// ChangeoutPasses models the two-pass changeout procedure.
	ChangeoutPasses = 2.0

	// CrewPerDiem is the allowance per crew member and crew-size unit in the travel estimate.
	CrewPerDiem = 100.0

	// RoundTripFactor doubles the one-way site distance.
	RoundTripFactor = 2.0

	// MileageRate is the cost per unit of distance travelled.
	MileageRate = 0.5

	// CrewMobilisation is the fixed per-person mobilisation cost.
	CrewMobilisation = 150.0
)

// Energy unit conversions to kWh.
const (
	// KWhPerMMBtu is the energy content of one MMBtu in kWh.
	KWhPerMMBtu = 293.071

	// KWhPerTherm is the energy content of one therm in kWh.
	KWhPerTherm = 29.3071
)

// Numerical tolerances.
const (
	// ratioEpsilon absorbs floating-point noise when comparing A/C ratios to a ceiling.
	ratioEpsilon = 1e-9

	// maxSuggestedFlaps bounds the flap suggestion search.
	maxSuggestedFlaps = 10000

	// maxProjectionYears bounds the per-year savings breakdown.
	maxProjectionYears = 100
)
