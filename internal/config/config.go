// Package config loads and saves the baghouse CLI configuration.
//
// The global file lives at $BAGHOUSE_HOME/config.yaml (default
// ~/.baghouse/config.yaml). A project-local .baghouse/config.yaml is
// shallow-merged on top by top-level key, and BAGHOUSE_* environment
// variables override both.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/baghouse/internal/engine"
	"github.com/rshade/baghouse/internal/logging"
	"github.com/rshade/baghouse/internal/units"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Environment variables.
const (
	EnvHome         = "BAGHOUSE_HOME"
	EnvProjectDir   = "BAGHOUSE_PROJECT_DIR"
	EnvLogLevel     = "BAGHOUSE_LOG_LEVEL"
	EnvLogFormat    = "BAGHOUSE_LOG_FORMAT"
	EnvOutputFormat = "BAGHOUSE_OUTPUT_FORMAT"
)

// Defaults.
const (
	DefaultSavingsYears = 5
	DefaultWorkingHours = 8000
	configFileName      = "config.yaml"
	configDirName       = ".baghouse"
	configFilePerm      = 0o600
	configDirPerm       = 0o700
)

// Validation errors.
var (
	ErrInvalidOutputFormat = errors.New("output.default_format must be 'table' or 'json'")
	ErrInvalidLogFormat    = errors.New("logging.format must be 'console' or 'json'")
	ErrInvalidLogLevel     = errors.New("logging.level is not a known level")
	ErrNegativeGuardWindow = errors.New("engine.sync_guard_window cannot be negative")
	ErrInvalidSavings      = errors.New("savings.years and savings.working_hours must be positive")
	ErrUnknownConfigKey    = errors.New("unknown configuration key")
)

// OutputConfig controls result rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// LoggingConfig controls log level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// EngineConfig tunes the calculation session.
type EngineConfig struct {
	// SyncGuardWindow is how long a unit pair ignores writes to the side it
	// just derived.
	SyncGuardWindow time.Duration `yaml:"sync_guard_window"`
}

// SavingsConfig holds projection defaults applied when a scenario leaves them blank.
type SavingsConfig struct {
	Years        float64 `yaml:"years"`
	WorkingHours float64 `yaml:"working_hours"`
	EnergyUnit   string  `yaml:"energy_unit"`
}

// Config is the full CLI configuration.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Engine  EngineConfig  `yaml:"engine"`
	Savings SavingsConfig `yaml:"savings"`

	configPath string
}

// Default returns a Config holding built-in defaults only.
func Default() *Config {
	return &Config{
		Output:  OutputConfig{DefaultFormat: FormatTable},
		Logging: LoggingConfig{Level: "info", Format: logging.FormatConsole},
		Engine:  EngineConfig{SyncGuardWindow: units.DefaultGuardWindow},
		Savings: SavingsConfig{
			Years:        DefaultSavingsYears,
			WorkingHours: DefaultWorkingHours,
			EnergyUnit:   engine.KWh.String(),
		},
	}
}

// New returns defaults overlaid with the global config file, when present,
// and the environment. An unreadable config file leaves defaults in place.
func New() *Config {
	cfg := Default()
	if path, err := GlobalConfigPath(); err == nil {
		cfg.configPath = path
		if _, statErr := os.Stat(path); statErr == nil {
			_ = cfg.loadFile(path)
		}
	}
	cfg.ApplyEnv()
	return cfg
}

// Load reads path over the defaults and applies the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.configPath = path
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv applies BAGHOUSE_* overrides.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = v
	}
}

// ConfigPath returns where Save writes.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes where Save writes.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Save writes the config as YAML, creating the parent directory.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), configDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, configFilePerm); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Validate checks every section and joins all problems.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains([]string{FormatTable, FormatJSON}, c.Output.DefaultFormat) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidOutputFormat, c.Output.DefaultFormat))
	}
	if !slices.Contains([]string{logging.FormatConsole, logging.FormatJSON}, c.Logging.Format) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format))
	}
	if !validLogLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level))
	}
	if c.Engine.SyncGuardWindow < 0 {
		errs = append(errs, ErrNegativeGuardWindow)
	}
	if c.Savings.Years <= 0 || c.Savings.WorkingHours <= 0 {
		errs = append(errs, ErrInvalidSavings)
	}
	if _, err := engine.ParseEnergyUnit(c.Savings.EnergyUnit); err != nil {
		errs = append(errs, fmt.Errorf("savings.energy_unit: %w", err))
	}
	return errors.Join(errs...)
}

func validLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
		return true
	default:
		return false
	}
}

// Get returns the value at a dotted key such as "engine.sync_guard_window".
func (c *Config) Get(key string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	case "logging.file":
		return c.Logging.File, nil
	case "engine.sync_guard_window":
		return c.Engine.SyncGuardWindow.String(), nil
	case "savings.years":
		return strconv.FormatFloat(c.Savings.Years, 'f', -1, 64), nil
	case "savings.working_hours":
		return strconv.FormatFloat(c.Savings.WorkingHours, 'f', -1, 64), nil
	case "savings.energy_unit":
		return c.Savings.EnergyUnit, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownConfigKey, key)
	}
}

// GetConfigDir returns $BAGHOUSE_HOME or ~/.baghouse.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName), nil
}

// GlobalConfigPath returns the global config file path.
func GlobalConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
