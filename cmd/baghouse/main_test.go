package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/baghouse/internal/cli"
	"github.com/rshade/baghouse/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		assert.NotNil(t, root)
		assert.Equal(t, "baghouse", root.Use)
	})
}

func TestExtractExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error returns 0", err: nil, want: 0},
		{name: "generic error returns 1", err: errors.New("boom"), want: 1},
		{
			name: "advisory exit code",
			err:  &cli.AdvisoryExitError{ExitCode: cli.ExitCodeAdvisories, Reason: "advisories"},
			want: 2,
		},
		{
			name: "wrapped batch failure",
			err:  fmt.Errorf("outer: %w", &cli.AdvisoryExitError{ExitCode: cli.ExitCodeBatchFailures, Reason: "failed"}),
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractExitCode(tt.err))
		})
	}
}
