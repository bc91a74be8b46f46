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

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvProjectDir, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvLogFormat, "")
	t.Setenv(config.EnvOutputFormat, "")
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 50*time.Millisecond, cfg.Engine.SyncGuardWindow)
	assert.InDelta(t, 5.0, cfg.Savings.Years, 1e-12)
	assert.Equal(t, "kWh", cfg.Savings.EnergyUnit)
	require.NoError(t, cfg.Validate())
}

func TestNew_UsesHomeAndEnv(t *testing.T) {
	clearEnv(t)
	home := os.Getenv(config.EnvHome)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(`
logging:
  level: debug
  format: json
engine:
  sync_guard_window: 20ms
`), 0o600))
	t.Setenv(config.EnvOutputFormat, "json")

	cfg := config.New()
	assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.ConfigPath())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 20*time.Millisecond, cfg.Engine.SyncGuardWindow)
	assert.Equal(t, config.FormatJSON, cfg.Output.DefaultFormat)
	assert.InDelta(t, 8000.0, cfg.Savings.WorkingHours, 1e-12)
}

func TestSaveAndLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.Default()
	cfg.SetConfigPath(path)
	cfg.Engine.SyncGuardWindow = 75 * time.Millisecond
	cfg.Savings.EnergyUnit = "therm"
	require.NoError(t, cfg.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sync_guard_window: 75ms")

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 75*time.Millisecond, loaded.Engine.SyncGuardWindow)
	assert.Equal(t, "therm", loaded.Savings.EnergyUnit)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("engine: [unclosed"), 0o600))
	_, err = config.Load(bad)
	require.Error(t, err)

	assert.Error(t, (&config.Config{}).Save())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{name: "bad output", mutate: func(c *config.Config) { c.Output.DefaultFormat = "xml" }, wantErr: config.ErrInvalidOutputFormat},
		{name: "bad log format", mutate: func(c *config.Config) { c.Logging.Format = "text" }, wantErr: config.ErrInvalidLogFormat},
		{name: "bad log level", mutate: func(c *config.Config) { c.Logging.Level = "loud" }, wantErr: config.ErrInvalidLogLevel},
		{name: "negative window", mutate: func(c *config.Config) { c.Engine.SyncGuardWindow = -time.Millisecond }, wantErr: config.ErrNegativeGuardWindow},
		{name: "zero years", mutate: func(c *config.Config) { c.Savings.Years = 0 }, wantErr: config.ErrInvalidSavings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}

	cfg := config.Default()
	cfg.Savings.EnergyUnit = "joule"
	require.Error(t, cfg.Validate())
}

func TestGet(t *testing.T) {
	cfg := config.Default()

	got, err := cfg.Get("engine.sync_guard_window")
	require.NoError(t, err)
	assert.Equal(t, "50ms", got)

	got, err = cfg.Get("Savings.Working_Hours")
	require.NoError(t, err)
	assert.Equal(t, "8000", got)

	_, err = cfg.Get("plugins")
	require.ErrorIs(t, err, config.ErrUnknownConfigKey)
}

func TestLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "warn", Format: "json", File: filepath.Join(t.TempDir(), "a", "b.log")}
	lg := lc.ToLoggingConfig()
	assert.Equal(t, "warn", lg.Level)
	assert.Equal(t, lc.File, lg.File)

	require.NoError(t, lc.EnsureLogDir())
	info, err := os.Stat(filepath.Dir(lc.File))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.NoError(t, config.LoggingConfig{}.EnsureLogDir())
}
