package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/baghouse/internal/report"
	"github.com/rshade/baghouse/internal/session"
)

func TestRenderFlapStatus(t *testing.T) {
	tests := []struct {
		name   string
		inputs map[string]string
		want   string
	}{
		{
			name:   "no count",
			inputs: map[string]string{"air_volume_m3h": "100000", "bags_per_row": "18", "bag_length": "10"},
			want:   "Enter a flap count (suggested 5)",
		},
		{
			name:   "valid",
			inputs: map[string]string{"flaps": "14"},
			want:   "14 flaps OK",
		},
		{
			name:   "module multiple",
			inputs: map[string]string{"design_type": "modular", "flaps": "10"},
			want:   "try 12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := session.New(context.Background())
			snap, err := sess.ApplyAll(tt.inputs)
			require.NoError(t, err)
			assert.Contains(t, RenderFlapStatus(snap), tt.want)
		})
	}
}

func TestRenderResults(t *testing.T) {
	r := report.Report{Sections: []report.Section{
		{Title: "A", Rows: []report.Row{{Label: "one", Value: "1"}}},
		{Title: "B", Rows: []report.Row{{Label: "two", Value: "2", Warning: true}}},
	}}

	out := RenderResults(r, 200)
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "two")

	assert.Contains(t, RenderResults(report.Report{}, 80), "No results")
}

func TestRenderAdvisories(t *testing.T) {
	assert.Empty(t, RenderAdvisories(nil))
	assert.Contains(t, RenderAdvisories([]string{"check flaps"}), "! check flaps")
}

func TestRenderHeader(t *testing.T) {
	sess := session.New(context.Background(), session.WithName("Line 4"))
	out := RenderHeader(sess.Snapshot())
	assert.Contains(t, out, "Line 4")
	assert.Contains(t, out, "bolt-weld")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
