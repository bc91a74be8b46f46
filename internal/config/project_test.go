package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/baghouse/internal/config"
)

func TestResolveProjectDir_FlagOverridesEnv(t *testing.T) {
	envDir := t.TempDir()
	flagDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, envDir)

	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")
	assert.Equal(t, filepath.Join(flagDir, ".baghouse"), got)
}

func TestResolveProjectDir_EnvVar(t *testing.T) {
	envDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, filepath.Join(envDir, ".baghouse"))

	got := config.ResolveProjectDir(context.Background(), "", "/does/not/matter")
	assert.Equal(t, filepath.Join(envDir, ".baghouse"), got)
	assert.True(t, filepath.IsAbs(got))
}

func TestResolveProjectDir_WalkUp(t *testing.T) {
	t.Setenv(config.EnvProjectDir, "")
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".baghouse"), 0o750))
	deep := filepath.Join(root, "plants", "line-2")
	require.NoError(t, os.MkdirAll(deep, 0o750))

	got := config.ResolveProjectDir(context.Background(), "", deep)
	assert.Equal(t, filepath.Join(root, ".baghouse"), got)
}

func TestResolveProjectDir_NoProject(t *testing.T) {
	t.Setenv(config.EnvProjectDir, "")
	assert.Empty(t, config.ResolveProjectDir(context.Background(), "", ""))
}

func TestNewWithProjectDir(t *testing.T) {
	clearEnv(t)
	projectDir := filepath.Join(t.TempDir(), ".baghouse")
	require.NoError(t, os.MkdirAll(projectDir, 0o750))

	cfg := config.NewWithProjectDir(context.Background(), projectDir)
	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)

	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"), []byte("output:\n  default_format: json\n"), 0o600))
	cfg = config.NewWithProjectDir(context.Background(), projectDir)
	assert.Equal(t, config.FormatJSON, cfg.Output.DefaultFormat)

	t.Setenv(config.EnvOutputFormat, "table")
	cfg = config.NewWithProjectDir(context.Background(), projectDir)
	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)

	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"), []byte("output: [bad\n"), 0o600))
	cfg = config.NewWithProjectDir(context.Background(), projectDir)
	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
}

func TestEnsureGitignore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".baghouse")

	created, err := config.EnsureGitignore(dir)
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, config.GitignoreContent(), string(data))

	created, err = config.EnsureGitignore(dir)
	require.NoError(t, err)
	assert.False(t, created)
}
