package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/baghouse/internal/cli"
)

func TestNewRootCmd(t *testing.T) {
	cmd := cli.NewRootCmd("1.2.3")

	assert.Equal(t, "baghouse", cmd.Use)
	assert.Equal(t, "1.2.3", cmd.Version)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("project-dir"))

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{
		"size", "flaps", "replacement", "savings", "report",
		"batch", "interactive", "inputs", "config",
	} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestCalcCommandsShareInputFlags(t *testing.T) {
	cmd := cli.NewRootCmd("test")
	for _, name := range []string{"size", "flaps", "replacement", "savings", "report", "interactive"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		for _, flag := range []string{"scenario", "set", "design", "override-ceiling"} {
			assert.NotNil(t, sub.Flags().Lookup(flag), "%s lacks --%s", name, flag)
		}
	}
}

func TestRootCmd_Version(t *testing.T) {
	setupConfigInitTest(t)

	output, err := runRoot(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, output, "test")
}

func TestRootCmd_DebugLogsToStderr(t *testing.T) {
	setupConfigInitTest(t)

	output, err := runRoot(t, append([]string{"--debug"}, calcArgs("size")...)...)
	require.NoError(t, err)
	assert.Contains(t, output, "command started")
	assert.Contains(t, output, "Filter sizing")
}

func TestInputsCmd(t *testing.T) {
	setupConfigInitTest(t)

	output, err := runRoot(t, "inputs")
	require.NoError(t, err)
	assert.Contains(t, output, "KEY")
	assert.Contains(t, output, "air_volume_m3h")
	assert.Contains(t, output, "bolt-weld|modular")

	output, err = runRoot(t, "inputs", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, output, `"key": "flaps"`)
}
