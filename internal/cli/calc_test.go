package cli_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/baghouse/internal/cli"
	"github.com/rshade/baghouse/internal/report"
)

var boltWeldSets = []string{
	"--set", "air_volume_m3h=100,000",
	"--set", "flaps=14",
	"--set", "bags_per_row=18",
	"--set", "bag_length=10",
	"--set", "row_type=double",
}

func calcArgs(cmd string, extra ...string) []string {
	args := append([]string{cmd}, boltWeldSets...)
	return append(args, extra...)
}

func TestSizeCmd_JSON(t *testing.T) {
	setupConfigInitTest(t)

	output, err := runRoot(t, calcArgs("size", "--output", "json")...)
	require.NoError(t, err)

	var got struct {
		SessionID string `json:"session_id"`
		Design    string `json:"design"`
		Result    struct {
			GrossArea float64 `json:"gross_area"`
			NetArea   float64 `json:"net_area"`
		} `json:"result"`
		Advisories []string `json:"advisories"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.NotEmpty(t, got.SessionID)
	assert.Equal(t, "bolt-weld", got.Design)
	assert.InDelta(t, math.Pi*2079, got.Result.GrossArea, 1e-6)
	assert.InDelta(t, math.Pi*1930.5, got.Result.NetArea, 1e-6)
	assert.Empty(t, got.Advisories)
}

func TestFlapsCmd_JSON(t *testing.T) {
	setupConfigInitTest(t)

	output, err := runRoot(t, calcArgs("flaps", "--output", "json")...)
	require.NoError(t, err)

	var got struct {
		Result struct {
			Validation struct {
				Valid bool `json:"valid"`
				Count int  `json:"count"`
			} `json:"validation"`
			Suggested int `json:"suggested_flaps"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.True(t, got.Result.Validation.Valid)
	assert.Equal(t, 14, got.Result.Validation.Count)
	assert.Equal(t, 5, got.Result.Suggested)
}

func TestReportCmd_Table(t *testing.T) {
	setupConfigInitTest(t)

	output, err := runRoot(t, calcArgs("report", "--output", "table")...)
	require.NoError(t, err)
	for _, title := range []string{
		report.SectionSizing, report.SectionFlaps, report.SectionReplacement,
		report.SectionComparison, report.SectionSavings,
	} {
		assert.Contains(t, output, title)
	}
}

func TestSizeCmd_TableShowsOnlySizing(t *testing.T) {
	setupConfigInitTest(t)

	output, err := runRoot(t, calcArgs("size")...)
	require.NoError(t, err)
	assert.Contains(t, output, report.SectionSizing)
	assert.NotContains(t, output, report.SectionSavings)
}

func TestCalc_Strict(t *testing.T) {
	setupConfigInitTest(t)

	// Bolt-weld bags come in standard lengths; 11 raises an advisory.
	output, err := runRoot(t, calcArgs("size", "--strict", "--set", "bag_length=11")...)
	require.Error(t, err)

	var exitErr *cli.AdvisoryExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, cli.ExitCodeAdvisories, exitErr.ExitCode)
	assert.Contains(t, output, "Advisories")

	_, err = runRoot(t, calcArgs("size", "--set", "bag_length=11")...)
	require.NoError(t, err)
}

func TestCalc_Errors(t *testing.T) {
	setupConfigInitTest(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown set key", args: []string{"size", "--set", "colour=red"}, wantErr: `unknown input "colour"`},
		{name: "bad output", args: calcArgs("size", "--output", "xml"), wantErr: "unsupported output format"},
		{name: "missing scenario", args: []string{"report", "--scenario", "nope.yaml"}, wantErr: "nope.yaml"},
		{name: "bad design", args: []string{"size", "--design", "wicker"}, wantErr: "wicker"},
		{name: "extra args", args: []string{"size", "extra"}, wantErr: "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runRoot(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCalc_ScenarioWithOverrides(t *testing.T) {
	setupConfigInitTest(t)

	path := filepath.Join(t.TempDir(), "line2.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`schema_version: "1.0.0"
name: Line 2
design_type: bolt-weld
inputs:
  air_volume_m3h: "100,000"
  flaps: 14
  bags_per_row: 18
  bag_length: 10
  row_type: double
`), 0o600))

	output, err := runRoot(t, "report", "--scenario", path, "--output", "json")
	require.NoError(t, err)

	var snap struct {
		Name   string            `json:"name"`
		Inputs map[string]string `json:"inputs"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &snap))
	assert.Equal(t, "Line 2", snap.Name)
	assert.Equal(t, "14", snap.Inputs["flaps"])

	output, err = runRoot(t, "report", "--scenario", path, "--set", "flaps=12", "--output", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(output), &snap))
	assert.Equal(t, "12", snap.Inputs["flaps"])
}
