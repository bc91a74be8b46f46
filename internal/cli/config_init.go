package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/baghouse/internal/config"
)

// projectDirPerm is the permission used for a new .baghouse directory.
const projectDirPerm = 0o750

// NewConfigInitCmd creates the config init command for initializing configuration.
// Inside a project (a directory tree with .baghouse/, or --project-dir), it writes
// the project-local config and a .gitignore. Otherwise, or with --global, it
// writes the global $BAGHOUSE_HOME/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

With --project-dir, or inside a directory tree that already has a .baghouse/
directory, creates project-local configuration at $PROJECT/.baghouse/config.yaml
with a .gitignore for logs and generated reports. Use --global to force global
configuration initialization.`,
		Example: `  # Create global configuration
  baghouse config init

  # Create project configuration
  baghouse config init --project-dir .

  # Overwrite existing configuration
  baghouse config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flagDir, _ := cmd.Flags().GetString("project-dir")
			cwd, _ := os.Getwd()
			projectDir := config.ResolveProjectDir(cmd.Context(), flagDir, cwd)

			if projectDir != "" && !global {
				return initProjectConfig(cmd, projectDir, force)
			}
			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "force global configuration init even inside a project")

	return cmd
}

// checkNotExists fails unless path is absent or force is set.
func checkNotExists(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return errors.New("configuration file already exists, use --force to overwrite")
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}
	return nil
}

// initProjectConfig creates project-local config at projectDir/config.yaml with .gitignore.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	configPath := filepath.Join(projectDir, "config.yaml")
	if err := checkNotExists(configPath, force); err != nil {
		return err
	}

	if err := os.MkdirAll(projectDir, projectDirPerm); err != nil {
		return fmt.Errorf("failed to create project config directory: %w", err)
	}

	cfg := config.Default()
	cfg.SetConfigPath(configPath)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	created, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	if created {
		cmd.Printf("Created .gitignore for logs and reports\n")
	}
	return nil
}

// initGlobalConfig creates global config at $BAGHOUSE_HOME/config.yaml.
func initGlobalConfig(cmd *cobra.Command, force bool) error {
	path, err := config.GlobalConfigPath()
	if err != nil {
		return err
	}
	if err = checkNotExists(path, force); err != nil {
		return err
	}

	cfg := config.Default()
	cfg.SetConfigPath(path)
	if err = cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", path)
	return nil
}
