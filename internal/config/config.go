// Package config loads the checker's optional TOML configuration file.
// Every setting has a default that reproduces the checker's behaviour without
// a configuration file; command-line flags override file values.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/isseis/go-debuginfo-check/internal/debugcheck"
)

// LogLevel represents the logging level for the application.
// Valid values: debug, info, warn, error
type LogLevel string

const (
	// LogLevelDebug enables debug-level logging, including every tool invocation
	LogLevelDebug LogLevel = "debug"

	// LogLevelInfo adds the run summary
	LogLevelInfo LogLevel = "info"

	// LogLevelWarn reports skipped directories only (default)
	LogLevelWarn LogLevel = "warn"

	// LogLevelError enables error-level logging only
	LogLevelError LogLevel = "error"
)

// DefaultLogLevel keeps stderr quiet on a normal run.
const DefaultLogLevel = LogLevelWarn

// ParseLogLevel validates s. The empty string selects DefaultLogLevel.
func ParseLogLevel(s string) (LogLevel, error) {
	switch level := LogLevel(strings.ToLower(strings.TrimSpace(s))); level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return level, nil
	case "":
		return DefaultLogLevel, nil
	default:
		return "", fmt.Errorf("%w: %q (must be one of: debug, info, warn, error)", ErrInvalidLogLevel, s)
	}
}

// ToSlogLevel converts LogLevel to slog.Level for use with the slog package.
func (l LogLevel) ToSlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// String returns the string representation of LogLevel.
func (l LogLevel) String() string {
	return string(l)
}

// Config is the root of the configuration file.
type Config struct {
	Tools ToolsSpec `toml:"tools"`
	Scan  ScanSpec  `toml:"scan"`
	Log   LogSpec   `toml:"log"`
}

// ToolsSpec names the external tools.
type ToolsSpec struct {
	FileType string `toml:"file_type"` // file-type identifier (default "file")
	Readelf  string `toml:"readelf"`   // section/symbol lister (default "eu-readelf")
	Timeout  *int32 `toml:"timeout"`   // per-invocation timeout in seconds (nil or 0 = unlimited)
}

// ScanSpec controls the directory walk.
type ScanSpec struct {
	Exclude   []string `toml:"exclude"`   // glob patterns for paths to skip
	Prefilter bool     `toml:"prefilter"` // skip file(1) for files without an ELF header
}

// LogSpec controls diagnostics on stderr and the optional JSON log file.
type LogSpec struct {
	Level LogLevel `toml:"level"`
	File  string   `toml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Tools.FileType == "" {
		cfg.Tools.FileType = debugcheck.DefaultFileTypeTool
	}
	if cfg.Tools.Readelf == "" {
		cfg.Tools.Readelf = debugcheck.DefaultReadelfTool
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}

// DebugTools returns the tool names for the debugcheck package.
func (c *Config) DebugTools() debugcheck.Tools {
	return debugcheck.Tools{
		FileType: c.Tools.FileType,
		Readelf:  c.Tools.Readelf,
	}
}

// ToolTimeout returns the per-invocation timeout; zero means unlimited.
func (c *Config) ToolTimeout() time.Duration {
	if c.Tools.Timeout == nil {
		return 0
	}
	return time.Duration(*c.Tools.Timeout) * time.Second
}

// PrefilterEnabled reports whether the magic-byte prefilter is on. It is off
// by default so that every file reaches the file-type tool and a broken tool
// fails the run.
func (c *Config) PrefilterEnabled() bool {
	return c.Scan.Prefilter
}
