package design

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/baghouse/internal/field"
	"github.com/rshade/baghouse/internal/units"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{in: "bolt-weld", want: BoltWeld},
		{in: "BoltWeld", want: BoltWeld},
		{in: "bolt_weld", want: BoltWeld},
		{in: " Modular ", want: Modular},
		{in: "pulse-jet", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownDesignType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRowType(t *testing.T) {
	got, err := ParseRowType("Double")
	require.NoError(t, err)
	assert.Equal(t, Double, got)

	_, err = ParseRowType("triple")
	assert.ErrorIs(t, err, ErrUnknownRowType)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "bolt-weld", BoltWeld.String())
	assert.Equal(t, "modular", Modular.String())
	assert.Equal(t, "Type(7)", Type(7).String())
	assert.Equal(t, "double", Double.String())
	assert.Equal(t, "imperial", Imperial.String())
	assert.Equal(t, "metric", Metric.String())
}

func TestProfileTable(t *testing.T) {
	t.Run("bolt-weld", func(t *testing.T) {
		p := ProfileFor(BoltWeld)
		assert.Equal(t, Metric, p.Units)
		assert.Equal(t, units.SideA, p.FlowSide)
		assert.True(t, p.AllowsBagsPerRow(15))
		assert.True(t, p.AllowsBagsPerRow(18))
		assert.False(t, p.AllowsBagsPerRow(12))
		assert.True(t, p.AllowsBagLength(10))
		assert.Equal(t, 1.0, p.ACCeiling)
		assert.InDelta(t, math.Pi*0.165*10*5*18, p.AreaPerFlap(18, 10), 1e-9)
		assert.Equal(t, 13.0, p.NetFlaps(14))
		assert.Equal(t, 7, p.RoundUpToMultiple(7))
		assert.Equal(t, 10.0, p.DefaultBagLength())
		assert.Equal(t, 18, p.DefaultBagsPerRow())
	})

	t.Run("modular", func(t *testing.T) {
		p := ProfileFor(Modular)
		assert.Equal(t, Imperial, p.Units)
		assert.Equal(t, units.SideB, p.FlowSide)
		assert.True(t, p.AllowsBagsPerRow(15))
		assert.False(t, p.AllowsBagsPerRow(18))
		assert.Equal(t, 3.2, p.ACCeiling)
		assert.InDelta(t, 15*12*4*0.292*0.3048, p.AreaPerFlap(15, 12), 1e-9)
		assert.Equal(t, 12, p.RoundUpToMultiple(10))
		assert.Equal(t, 9, p.RoundUpToMultiple(9))
		assert.Equal(t, 0, p.RoundUpToMultiple(0))
	})

	t.Run("unknown falls back", func(t *testing.T) {
		assert.Equal(t, BoltWeld, ProfileFor(Type(42)).Type)
	})
}

func TestConfigurationNativeAirVolume(t *testing.T) {
	c := Configuration{
		Type:          BoltWeld,
		AirVolumeM3h:  field.Number(300000),
		AirVolumeACFM: field.Number(176573),
	}
	assert.Equal(t, 300000.0, c.NativeAirVolume())

	c.Type = Modular
	assert.Equal(t, 176573.0, c.NativeAirVolume())

	c.AirVolumeACFM = field.Empty()
	assert.Equal(t, 0.0, c.NativeAirVolume())
}

func TestConfigurationNormalized(t *testing.T) {
	tests := []struct {
		name        string
		flaps       field.Value
		row         RowType
		wantRow     RowType
		wantChanged bool
	}{
		{name: "odd double forced single", flaps: field.Number(9), row: Double, wantRow: Single, wantChanged: true},
		{name: "even double kept", flaps: field.Number(14), row: Double, wantRow: Double},
		{name: "odd single kept", flaps: field.Number(9), row: Single, wantRow: Single},
		{name: "empty double kept", flaps: field.Empty(), row: Double, wantRow: Double},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := Configuration{NumEMCFlaps: tt.flaps, RowType: tt.row}.Normalized()
			assert.Equal(t, tt.wantRow, got.RowType)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestConfigurationFlaps(t *testing.T) {
	assert.Equal(t, 0, Configuration{NumEMCFlaps: field.Number(-2)}.Flaps())
	assert.Equal(t, 0, Configuration{}.Flaps())
	assert.Equal(t, 14, Configuration{NumEMCFlaps: field.Number(14)}.Flaps())
}
