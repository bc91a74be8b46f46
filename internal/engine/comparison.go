package engine

import (
	"fmt"

	"github.com/rshade/baghouse/internal/field"
)

// Metric identifies one operational baseline.
type Metric int

const (
	// MetricBagLifetime is bag life in months; higher is better.
	MetricBagLifetime Metric = iota
	// MetricDifferentialPressure is tube-sheet ΔP in mbar; lower is better.
	MetricDifferentialPressure
	// MetricCompressedAir is cleaning air consumption (Nm³/h); lower is better.
	MetricCompressedAir
	// MetricMotorPower is compressor motor power in kW; lower is better.
	MetricMotorPower
)

// String returns a human-readable representation of the Metric.
func (m Metric) String() string {
	switch m {
	case MetricBagLifetime:
		return "bag_lifetime"
	case MetricDifferentialPressure:
		return "differential_pressure"
	case MetricCompressedAir:
		return "compressed_air"
	case MetricMotorPower:
		return "motor_power"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Metric) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Unit returns the unit the metric is entered in.
func (m Metric) Unit() string {
	switch m {
	case MetricBagLifetime:
		return "months"
	case MetricDifferentialPressure:
		return "mbar"
	case MetricCompressedAir:
		return "Nm³/h"
	case MetricMotorPower:
		return "kW"
	default:
		return ""
	}
}

// HigherIsBetter reports whether an increase of the metric is an improvement.
func (m Metric) HigherIsBetter() bool {
	return m == MetricBagLifetime
}

// Baseline is the current and improved (EMC) value of one metric.
type Baseline struct {
	Current  field.Value
	Improved field.Value
}

// Baselines groups the four operational baselines.
type Baselines struct {
	BagLifetimeMonths        Baseline
	DifferentialPressureMbar Baseline
	CompressedAir            Baseline
	MotorPowerKW             Baseline
}

// MetricComparison is the delta between the current and improved value of one metric.
type MetricComparison struct {
	Metric   Metric  `json:"metric"`
	Current  float64 `json:"current"`
	Improved float64 `json:"improved"`

	// AbsoluteDelta is Improved − Current.
	AbsoluteDelta float64 `json:"absolute_delta"`

	// PercentDelta is AbsoluteDelta relative to Current, in percent.
	// It is 0 when Current is not positive.
	PercentDelta float64 `json:"percent_delta"`

	// Improvement is true when the change goes in the metric's good direction.
	Improvement bool `json:"improvement"`
}

// Comparison holds all four metric comparisons.
type Comparison struct {
	BagLifetime          MetricComparison `json:"bag_lifetime"`
	DifferentialPressure MetricComparison `json:"differential_pressure"`
	CompressedAir        MetricComparison `json:"compressed_air"`
	MotorPower           MetricComparison `json:"motor_power"`
}

// All returns the comparisons in display order.
func (c Comparison) All() []MetricComparison {
	return []MetricComparison{c.BagLifetime, c.DifferentialPressure, c.CompressedAir, c.MotorPower}
}

// Compare computes the deltas for every baseline.
func Compare(b Baselines) Comparison {
	return Comparison{
		BagLifetime:          compareMetric(MetricBagLifetime, b.BagLifetimeMonths),
		DifferentialPressure: compareMetric(MetricDifferentialPressure, b.DifferentialPressureMbar),
		CompressedAir:        compareMetric(MetricCompressedAir, b.CompressedAir),
		MotorPower:           compareMetric(MetricMotorPower, b.MotorPowerKW),
	}
}

func compareMetric(m Metric, b Baseline) MetricComparison {
	cur := b.Current.Float()
	imp := b.Improved.Float()
	mc := MetricComparison{
		Metric:        m,
		Current:       cur,
		Improved:      imp,
		AbsoluteDelta: imp - cur,
	}
	if cur > 0 {
		mc.PercentDelta = mc.AbsoluteDelta / cur * PercentageMultiplier
	}
	if m.HigherIsBetter() {
		mc.Improvement = mc.AbsoluteDelta > 0
	} else {
		mc.Improvement = mc.AbsoluteDelta < 0
	}
	return mc
}
