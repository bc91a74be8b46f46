// Package logging configures zerolog for the CLI and carries loggers and
// trace IDs through a context.Context.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// logFilePerm is the permission used when creating log files.
const logFilePerm = 0o600

// logDirPerm is the permission used when creating the log directory.
const logDirPerm = 0o700

// Config selects level, format and destination.
type Config struct {
	Level  string
	Format string
	// File, when set, receives log output instead of stderr.
	File string
	// Output overrides stderr for console logging. Used by tests.
	Output io.Writer
}

// LogPathResult is the logger plus where its output went.
type LogPathResult struct {
	Logger         zerolog.Logger
	FilePath       string
	UsingFile      bool
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close releases the log file, if one was opened.
func (r *LogPathResult) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ParseLevel parses level, defaulting to info for empty or unknown text.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// NewLogger builds a logger from cfg, ignoring where the output went.
func NewLogger(cfg Config) zerolog.Logger {
	return NewLoggerWithPath(cfg).Logger
}

// NewLoggerWithPath builds a logger from cfg. When cfg.File cannot be opened,
// output falls back to stderr and the result records why.
func NewLoggerWithPath(cfg Config) LogPathResult {
	var res LogPathResult

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	if cfg.File != "" {
		f, err := openLogFile(cfg.File)
		if err != nil {
			res.FallbackUsed = true
			res.FallbackReason = err.Error()
		} else {
			res.file = f
			res.FilePath = cfg.File
			res.UsingFile = true
			out = f
		}
	}

	var w io.Writer = out
	if cfg.Format != FormatJSON && !res.UsingFile {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	res.Logger = zerolog.New(w).
		Level(ParseLevel(cfg.Level)).
		Hook(TracingHook{}).
		With().
		Timestamp().
		Logger()
	return res
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), logDirPerm); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFilePerm)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// ComponentLogger returns a child logger tagged with component.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger attached to ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		l := zerolog.Nop()
		return &l
	}
	return zerolog.Ctx(ctx)
}

// PrintLogPathMessage tells the user where logs are being written.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user the log file could not be used.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: log file unavailable, logging to stderr: %s\n", reason)
}
