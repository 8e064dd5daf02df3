package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/isseis/go-debuginfo-check/internal/debugcheck"
	"github.com/pelletier/go-toml/v2"
)

// Configuration errors
var (
	// ErrInvalidConfig is returned when the file cannot be decoded
	ErrInvalidConfig = errors.New("invalid config")

	// ErrInvalidLogLevel is returned when an invalid log level is provided
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrNegativeTimeout is returned when tools.timeout is below zero
	ErrNegativeTimeout = errors.New("timeout must not be negative")
)

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	// #nosec G304 - the path is given by the user on the command line
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML content. Unknown keys are rejected so that typos do not
// silently fall back to defaults.
func Parse(content []byte) (*Config, error) {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(content)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, strictErr.String())
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that TOML decoding cannot and normalises the log level.
func Validate(cfg *Config) error {
	level, err := ParseLogLevel(string(cfg.Log.Level))
	if err != nil {
		return err
	}
	cfg.Log.Level = level

	if cfg.Tools.Timeout != nil && *cfg.Tools.Timeout < 0 {
		return fmt.Errorf("%w: tools.timeout = %d", ErrNegativeTimeout, *cfg.Tools.Timeout)
	}
	if _, err := debugcheck.NewExcluder(cfg.Scan.Exclude); err != nil {
		return err
	}
	return nil
}
