package session

import (
	"slices"
	"strings"
)

// Key names one session input field.
type Key string

// Design inputs.
const (
	KeyDesignType      Key = "design_type"
	KeyOverrideCeiling Key = "override_ac_ceiling"
	KeyAirVolumeM3h    Key = "air_volume_m3h"
	KeyAirVolumeACFM   Key = "air_volume_acfm"
	KeyFlaps           Key = "flaps"
	KeyBagsPerRow      Key = "bags_per_row"
	KeyBagLength       Key = "bag_length"
	KeyRowType         Key = "row_type"
	KeyChannelWidthMm  Key = "channel_width_mm"
	KeyChannelHeightMm Key = "channel_height_mm"
)

// Process inputs.
const (
	KeyTemperatureC Key = "temperature_c"
	KeyTemperatureF Key = "temperature_f"
	KeyDustMgM3     Key = "dust_mg_m3"
	KeyDustGrFt3    Key = "dust_gr_ft3"
	KeyEmissionKgH  Key = "emission_kg_h"
	KeyEmissionLbH  Key = "emission_lb_h"
)

// Replacement cost inputs.
const (
	KeyBagPrice           Key = "bag_price"
	KeyCagePrice          Key = "cage_price"
	KeyBagChangeMinutes   Key = "bag_change_minutes"
	KeyCrewSize           Key = "crew_size"
	KeyHourlyRate         Key = "hourly_rate"
	KeySiteDistance       Key = "site_distance"
	KeyTravelCost         Key = "travel_cost"
	KeyBagReplacementCost Key = "bag_replacement_cost"
)

// Operational baselines.
const (
	KeyBagLifeCurrent       Key = "bag_life_current_months"
	KeyBagLifeImproved      Key = "bag_life_improved_months"
	KeyDPCurrentMbar        Key = "dp_current_mbar"
	KeyDPCurrentInWG        Key = "dp_current_inwg"
	KeyDPImprovedMbar       Key = "dp_improved_mbar"
	KeyDPImprovedInWG       Key = "dp_improved_inwg"
	KeyCompressedAirCurrent Key = "compressed_air_current"
	KeyCompressedAirImprove Key = "compressed_air_improved"
	KeyMotorPowerCurrent    Key = "motor_power_current_kw"
	KeyMotorPowerImproved   Key = "motor_power_improved_kw"
)

// Savings projection inputs.
const (
	KeySavingYears       Key = "saving_years"
	KeyWorkingHours      Key = "working_hours"
	KeyEnergyCost        Key = "energy_cost"
	KeyEnergyUnit        Key = "energy_unit"
	KeyCompressedAirCost Key = "compressed_air_cost"
)

// Group is the form section a key belongs to.
type Group string

// Form groups in display order.
const (
	GroupDesign      Group = "Design"
	GroupProcess     Group = "Process"
	GroupReplacement Group = "Replacement"
	GroupBaselines   Group = "Baselines"
	GroupProjection  Group = "Projection"
)

// KeyInfo describes one input for forms and help text.
type KeyInfo struct {
	Key   Key
	Label string
	Unit  string
	Group Group
	// Choices lists the accepted text for enumerated keys.
	Choices []string
}

//nolint:gochecknoglobals // Fixed input catalog.
var keyCatalog = []KeyInfo{
	{Key: KeyDesignType, Label: "Design type", Group: GroupDesign, Choices: []string{"bolt-weld", "modular"}},
	{Key: KeyOverrideCeiling, Label: "Override A/C ceiling", Group: GroupDesign, Choices: []string{"false", "true"}},
	{Key: KeyAirVolumeM3h, Label: "Air volume", Unit: "m³/h", Group: GroupDesign},
	{Key: KeyAirVolumeACFM, Label: "Air volume", Unit: "ACFM", Group: GroupDesign},
	{Key: KeyFlaps, Label: "EMC flaps", Group: GroupDesign},
	{Key: KeyBagsPerRow, Label: "Bags per row", Group: GroupDesign},
	{Key: KeyBagLength, Label: "Bag length", Unit: "m / ft", Group: GroupDesign},
	{Key: KeyRowType, Label: "Filter rows", Group: GroupDesign, Choices: []string{"single", "double"}},
	{Key: KeyChannelWidthMm, Label: "Inlet channel width", Unit: "mm", Group: GroupDesign},
	{Key: KeyChannelHeightMm, Label: "Inlet channel height", Unit: "mm", Group: GroupDesign},

	{Key: KeyTemperatureC, Label: "Gas temperature", Unit: "°C", Group: GroupProcess},
	{Key: KeyTemperatureF, Label: "Gas temperature", Unit: "°F", Group: GroupProcess},
	{Key: KeyDustMgM3, Label: "Dust concentration", Unit: "mg/m³", Group: GroupProcess},
	{Key: KeyDustGrFt3, Label: "Dust concentration", Unit: "gr/ft³", Group: GroupProcess},
	{Key: KeyEmissionKgH, Label: "Emission rate", Unit: "kg/h", Group: GroupProcess},
	{Key: KeyEmissionLbH, Label: "Emission rate", Unit: "lb/h", Group: GroupProcess},

	{Key: KeyBagPrice, Label: "Bag price", Unit: "$", Group: GroupReplacement},
	{Key: KeyCagePrice, Label: "Cage price", Unit: "$", Group: GroupReplacement},
	{Key: KeyBagChangeMinutes, Label: "Bag change time", Unit: "min", Group: GroupReplacement},
	{Key: KeyCrewSize, Label: "Crew size", Group: GroupReplacement},
	{Key: KeyHourlyRate, Label: "Hourly rate", Unit: "$/h", Group: GroupReplacement},
	{Key: KeySiteDistance, Label: "Site distance", Unit: "mi", Group: GroupReplacement},
	{Key: KeyTravelCost, Label: "Travel cost (blank to estimate)", Unit: "$", Group: GroupReplacement},
	{Key: KeyBagReplacementCost, Label: "Service charge", Unit: "$", Group: GroupReplacement},

	{Key: KeyBagLifeCurrent, Label: "Bag life, current", Unit: "months", Group: GroupBaselines},
	{Key: KeyBagLifeImproved, Label: "Bag life, EMC", Unit: "months", Group: GroupBaselines},
	{Key: KeyDPCurrentMbar, Label: "ΔP, current", Unit: "mbar", Group: GroupBaselines},
	{Key: KeyDPCurrentInWG, Label: "ΔP, current", Unit: "in W.G.", Group: GroupBaselines},
	{Key: KeyDPImprovedMbar, Label: "ΔP, EMC", Unit: "mbar", Group: GroupBaselines},
	{Key: KeyDPImprovedInWG, Label: "ΔP, EMC", Unit: "in W.G.", Group: GroupBaselines},
	{Key: KeyCompressedAirCurrent, Label: "Compressed air, current", Unit: "Nm³/h", Group: GroupBaselines},
	{Key: KeyCompressedAirImprove, Label: "Compressed air, EMC", Unit: "Nm³/h", Group: GroupBaselines},
	{Key: KeyMotorPowerCurrent, Label: "Compressor motor, current", Unit: "kW", Group: GroupBaselines},
	{Key: KeyMotorPowerImproved, Label: "Compressor motor, EMC", Unit: "kW", Group: GroupBaselines},

	{Key: KeySavingYears, Label: "Savings horizon", Unit: "years", Group: GroupProjection},
	{Key: KeyWorkingHours, Label: "Working hours", Unit: "h/year", Group: GroupProjection},
	{Key: KeyEnergyCost, Label: "Energy cost", Unit: "$/unit", Group: GroupProjection},
	{Key: KeyEnergyUnit, Label: "Energy unit", Group: GroupProjection, Choices: []string{"kWh", "MMBtu", "therm"}},
	{Key: KeyCompressedAirCost, Label: "Compressed air cost (blank for motor basis)", Unit: "$/Nm³", Group: GroupProjection},
}

// Keys returns every input in form order.
func Keys() []KeyInfo {
	return slices.Clone(keyCatalog)
}

// LookupKey finds a key by name, ignoring case and surrounding space.
func LookupKey(name string) (KeyInfo, bool) {
	k := Key(strings.ToLower(strings.TrimSpace(name)))
	for _, info := range keyCatalog {
		if info.Key == k {
			return info, true
		}
	}
	return KeyInfo{}, false
}
