package cli

import (
	"context"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestExecuteInteractive_RequiresTerminal(t *testing.T) {
	if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
		t.Skip("running attached to a terminal")
	}

	cmd := &cobra.Command{}
	err := executeInteractive(cmd, InputParams{})
	require.ErrorIs(t, err, errNotTerminal)
}

func TestConfigDefaults(t *testing.T) {
	cfg := configFromContext(context.Background())
	cfg.Savings.Years = 7.5
	cfg.Savings.EnergyUnit = "therm"

	got := configDefaults(cfg)
	require.Equal(t, "7.5", got["saving_years"])
	require.Equal(t, "8000", got["working_hours"])
	require.Equal(t, "therm", got["energy_unit"])
}
