package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/baghouse/internal/design"
	"github.com/rshade/baghouse/internal/field"
)

func TestValidateFlaps_ModularMultipleOfThree(t *testing.T) {
	cfg := modularConfig(10, 1000)

	v := ValidateFlaps(field.Number(10), cfg, false)
	assert.False(t, v.Valid)
	assert.Equal(t, 10, v.Count)
	assert.Equal(t, 12, v.AdjustedCount)
	assert.Contains(t, v.Reasons, ReasonModuleDampers)
	assert.False(t, v.ExceedsCeiling)
}

func TestValidateFlaps_OddForcesSingle(t *testing.T) {
	cfg := modularConfig(9, 1000)
	cfg.RowType = design.Double

	v := ValidateFlaps(field.Number(9), cfg, false)
	assert.True(t, v.Valid)
	assert.Equal(t, design.Single, v.RowType)
	assert.True(t, v.RowTypeForced)
	assert.Zero(t, v.AdjustedCount)
	assert.Contains(t, v.Reasons, ReasonOddForcesSingle)

	cfg.RowType = design.Single
	v = ValidateFlaps(field.Number(9), cfg, false)
	assert.True(t, v.Valid)
	assert.False(t, v.RowTypeForced)
	assert.Empty(t, v.Reasons)
}

func TestValidateFlaps_EvenKeepsDouble(t *testing.T) {
	cfg := boltWeldConfig()
	v := ValidateFlaps(field.Number(14), cfg, false)
	assert.True(t, v.Valid)
	assert.Equal(t, design.Double, v.RowType)
	assert.False(t, v.RowTypeForced)
}

func TestValidateFlaps_CeilingOverride(t *testing.T) {
	perFlap := design.ProfileFor(design.Modular).AreaPerFlap(15, 16)
	acfm := 3.5 * perFlap * 12 * design.EMCCleaningFactor
	cfg := modularConfig(12, acfm)

	rejected := ValidateFlaps(field.Number(12), cfg, false)
	assert.False(t, rejected.Valid)
	assert.True(t, rejected.ExceedsCeiling)
	assert.False(t, rejected.Overridden)
	assert.InDelta(t, 3.5, rejected.ACRatio, 1e-9)
	assert.InDelta(t, 3.2, rejected.Ceiling, 1e-12)
	assert.Contains(t, rejected.Reason(), ReasonCeilingExceeded)
	assert.Equal(t, SuggestFlaps(cfg), rejected.AdjustedCount)
	assert.Greater(t, rejected.AdjustedCount, 12)

	accepted := ValidateFlaps(field.Number(12), cfg, true)
	assert.True(t, accepted.Valid)
	assert.True(t, accepted.ExceedsCeiling)
	assert.True(t, accepted.Overridden)
	assert.Equal(t, 12, accepted.Count)
	assert.Zero(t, accepted.AdjustedCount)
	assert.InDelta(t, 3.5, accepted.ACRatio, 1e-9)
}

func TestValidateFlaps_InvalidCounts(t *testing.T) {
	tests := []struct {
		name     string
		count    field.Value
		reason   string
		adjusted int
	}{
		{name: "empty", count: field.Empty(), reason: ReasonFlapsRequired, adjusted: 5},
		{name: "zero", count: field.Number(0), reason: ReasonFlapsRequired, adjusted: 5},
		{name: "negative", count: field.Number(-3), reason: ReasonFlapsRequired, adjusted: 5},
		{name: "fractional", count: field.Number(4.2), reason: ReasonFlapsInteger, adjusted: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateFlaps(tt.count, boltWeldConfig(), false)
			assert.False(t, v.Valid)
			assert.Equal(t, []string{tt.reason}, v.Reasons)
			assert.Equal(t, tt.adjusted, v.AdjustedCount)
		})
	}
}

func TestValidateFlaps_SingleBoltWeldFlapHasNoNetArea(t *testing.T) {
	v := ValidateFlaps(field.Number(1), boltWeldConfig(), false)
	assert.False(t, v.Valid)
	assert.True(t, v.ExceedsCeiling)
	assert.Zero(t, v.ACRatio)
	assert.Contains(t, v.Reason(), "no net area")
}

func TestValidateFlaps_MissingGeometrySkipsCeiling(t *testing.T) {
	cfg := boltWeldConfig()
	cfg.BagLength = field.Empty()

	v := ValidateFlaps(field.Number(3), cfg, false)
	assert.True(t, v.Valid)
	assert.False(t, v.ExceedsCeiling)
	assert.Zero(t, v.ACRatio)
}

func TestSuggestFlaps(t *testing.T) {
	tests := []struct {
		name string
		cfg  design.Configuration
		want int
	}{
		{
			name: "bolt-weld steps past the offline flap",
			cfg:  boltWeldConfig(),
			want: 5,
		},
		{
			name: "modular rounds up to a whole module",
			cfg:  modularConfig(0, 10000),
			want: 45,
		},
		{
			name: "no air volume",
			cfg:  modularConfig(0, 0),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestFlaps(tt.cfg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggestFlaps_ResultIsAccepted(t *testing.T) {
	for _, cfg := range []design.Configuration{boltWeldConfig(), modularConfig(0, 10000)} {
		n := SuggestFlaps(cfg)
		v := ValidateFlaps(field.Number(float64(n)), cfg, false)
		assert.True(t, v.Valid, "suggested %d flaps for %s", n, cfg.Type)
		assert.False(t, v.ExceedsCeiling)
	}
}
