package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/baghouse/internal/config"
)

// writeOverlay is a test helper that writes YAML content to a temp file
// and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShallowMergeYAML_SingleKeyOverride(t *testing.T) {
	target := config.Default()
	overlay := writeOverlay(t, `
output:
  default_format: json
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, config.FormatJSON, target.Output.DefaultFormat)
	assert.Equal(t, "info", target.Logging.Level)
	assert.Equal(t, 50*time.Millisecond, target.Engine.SyncGuardWindow)
}

func TestShallowMergeYAML_SectionReplacedWhole(t *testing.T) {
	target := config.Default()
	overlay := writeOverlay(t, `
savings:
  years: 10
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.InDelta(t, 10.0, target.Savings.Years, 1e-12)
	// Fields absent from the overlay section are reset, not inherited.
	assert.Zero(t, target.Savings.WorkingHours)
	assert.Empty(t, target.Savings.EnergyUnit)
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := config.Default()
	overlay := writeOverlay(t, `
plugins:
  aws: {}
engine:
  sync_guard_window: 5ms
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, 5*time.Millisecond, target.Engine.SyncGuardWindow)
}

func TestShallowMergeYAML_EmptyFile(t *testing.T) {
	target := config.Default()
	require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, "# nothing\n")))
	assert.Equal(t, config.Default().Output, target.Output)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	require.Error(t, config.ShallowMergeYAML(nil, "x"))
	require.Error(t, config.ShallowMergeYAML(config.Default(), filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, config.ShallowMergeYAML(config.Default(), writeOverlay(t, "engine:\n  sync_guard_window: soon\n")))
}
