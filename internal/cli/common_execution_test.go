package cli_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/baghouse/internal/cli"
)

func TestParseSetOverrides(t *testing.T) {
	tests := []struct {
		name    string
		sets    []string
		want    map[string]string
		wantErr string
	}{
		{name: "empty", sets: nil, want: map[string]string{}},
		{
			name: "trims and keeps commas",
			sets: []string{" air_volume_m3h = 100,000 ", "flaps=14"},
			want: map[string]string{"air_volume_m3h": "100,000", "flaps": "14"},
		},
		{name: "value may contain equals", sets: []string{"row_type=a=b"}, want: map[string]string{"row_type": "a=b"}},
		{name: "empty value clears", sets: []string{"bag_price="}, want: map[string]string{"bag_price": ""}},
		{name: "missing equals", sets: []string{"flaps"}, wantErr: "expected key=value"},
		{name: "empty key", sets: []string{"=3"}, wantErr: "key cannot be empty"},
		{name: "unknown key", sets: []string{"colour=red"}, wantErr: `unknown input "colour"`},
		{name: "key too long", sets: []string{strings.Repeat("k", 65) + "=1"}, wantErr: "key too long"},
		{name: "value too large", sets: []string{"flaps=" + strings.Repeat("1", 1025)}, wantErr: "value too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cli.ParseSetOverrides(tt.sets)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSetOverrides_TooMany(t *testing.T) {
	sets := make([]string, 101)
	for i := range sets {
		sets[i] = "flaps=1"
	}
	_, err := cli.ParseSetOverrides(sets)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many --set overrides")
}

func TestAdvisoryExitError(t *testing.T) {
	err := &cli.AdvisoryExitError{ExitCode: cli.ExitCodeAdvisories, Reason: "design raised 1 advisory(ies)"}
	assert.Equal(t, "design raised 1 advisory(ies)", err.Error())
}
