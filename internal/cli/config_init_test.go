package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/baghouse/internal/cli"
	"github.com/rshade/baghouse/internal/config"
)

// setupConfigInitTest isolates the global config directory and returns it.
func setupConfigInitTest(t *testing.T) string {
	t.Helper()
	t.Setenv("BAGHOUSE_LOG_LEVEL", "error")
	t.Setenv("BAGHOUSE_PROJECT_DIR", "")
	globalDir := t.TempDir()
	t.Setenv("BAGHOUSE_HOME", globalDir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return globalDir
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestConfigInit_ProjectDir(t *testing.T) {
	setupConfigInitTest(t)
	projectDir := t.TempDir()
	t.Setenv("BAGHOUSE_PROJECT_DIR", projectDir)

	output, err := runRoot(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, output, "Configuration initialized at")

	_, statErr := os.Stat(filepath.Join(projectDir, ".baghouse", "config.yaml"))
	require.NoError(t, statErr)

	data, readErr := os.ReadFile(filepath.Join(projectDir, ".baghouse", ".gitignore"))
	require.NoError(t, readErr)
	assert.Equal(t, config.GitignoreContent(), string(data))
}

func TestConfigInit_ExistingGitignorePreserved(t *testing.T) {
	setupConfigInitTest(t)
	projectDir := t.TempDir()
	t.Setenv("BAGHOUSE_PROJECT_DIR", projectDir)

	dir := filepath.Join(projectDir, ".baghouse")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	custom := "# mine\n*.secret\n"
	gitignorePath := filepath.Join(dir, ".gitignore")
	require.NoError(t, os.WriteFile(gitignorePath, []byte(custom), 0o600))

	_, err := runRoot(t, "config", "init", "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(gitignorePath)
	require.NoError(t, err)
	assert.Equal(t, custom, string(data))
}

func TestConfigInit_GlobalFlag(t *testing.T) {
	globalDir := setupConfigInitTest(t)
	projectDir := t.TempDir()
	t.Setenv("BAGHOUSE_PROJECT_DIR", projectDir)

	output, err := runRoot(t, "config", "init", "--global")
	require.NoError(t, err)
	assert.Contains(t, output, "Configuration initialized successfully")

	_, statErr := os.Stat(filepath.Join(globalDir, "config.yaml"))
	require.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(projectDir, ".baghouse", "config.yaml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestConfigInit_OutsideProject(t *testing.T) {
	globalDir := setupConfigInitTest(t)

	cmd := cli.NewConfigInitCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Configuration initialized successfully")

	_, statErr := os.Stat(filepath.Join(globalDir, "config.yaml"))
	require.NoError(t, statErr)
}

func TestConfigInit_ExistingRequiresForce(t *testing.T) {
	globalDir := setupConfigInitTest(t)
	path := filepath.Join(globalDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  default_format: json\n"), 0o600))

	_, err := runRoot(t, "config", "init", "--global")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runRoot(t, "config", "init", "--global", "--force")
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
}

func TestConfigGetAndValidate(t *testing.T) {
	globalDir := setupConfigInitTest(t)
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, "config.yaml"),
		[]byte("savings:\n  years: 7\n  working_hours: 6000\n  energy_unit: kWh\n"), 0o600))

	output, err := runRoot(t, "config", "get", "savings.years")
	require.NoError(t, err)
	assert.Equal(t, "7\n", output)

	_, err = runRoot(t, "config", "get", "savings.colour")
	require.ErrorIs(t, err, config.ErrUnknownConfigKey)

	output, err = runRoot(t, "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, output, "Configuration is valid")
	assert.Contains(t, output, "Savings horizon: 7 years, 6000 h/year")
}

func TestConfigValidate_Invalid(t *testing.T) {
	setupConfigInitTest(t)
	t.Setenv("BAGHOUSE_OUTPUT_FORMAT", "xml")

	output, err := runRoot(t, "config", "validate")
	require.Error(t, err)
	require.ErrorIs(t, err, config.ErrInvalidOutputFormat)
	assert.Contains(t, output, "Warning: configuration has problems")
}
