package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/isseis/go-debuginfo-check/internal/terminal"
	"github.com/oklog/ulid/v2"
)

// schemaVersion is bumped when JSON log attributes change meaning.
const schemaVersion = 1

// Options configures Setup.
type Options struct {
	Level slog.Level

	// Console receives human-oriented diagnostics, normally stderr.
	Console io.Writer

	// Capabilities of Console.
	Capabilities terminal.Capabilities

	// FilePath, if set, adds a JSON handler writing to that file.
	FilePath string

	// RunID tags every JSON record. NewRunID is used when empty.
	RunID string
}

// NewRunID returns a new ULID string identifying one invocation.
func NewRunID() string {
	return ulid.Make().String()
}

// getHostname returns the hostname, or "unknown" when it cannot be read.
func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}

// Setup builds the logger. The returned close function flushes and closes
// the log file, if any; it is always non-nil.
func Setup(opts Options) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	handlers := []slog.Handler{NewConsoleHandler(console, opts.Capabilities, opts.Level)}

	closeFn := noop
	runID := opts.RunID
	if runID == "" {
		runID = NewRunID()
	}

	if opts.FilePath != "" {
		f, err := OpenLogFile(opts.FilePath)
		if err != nil {
			return nil, noop, err
		}
		closeFn = func() error {
			if err := f.Sync(); err != nil {
				_ = f.Close()
				return fmt.Errorf("failed to flush log file: %w", err)
			}
			return f.Close()
		}

		jsonHandler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level})
		handlers = append(handlers, jsonHandler.WithAttrs([]slog.Attr{
			slog.String("hostname", getHostname()),
			slog.Int("pid", os.Getpid()),
			slog.Int("schema_version", schemaVersion),
			slog.String("run_id", runID),
		}))
	}

	var handler slog.Handler = handlers[0]
	if len(handlers) > 1 {
		handler = NewMultiHandler(handlers...)
	}
	logger := slog.New(handler)

	logger.Debug("Logger initialized",
		"log_level", opts.Level.String(),
		"log_file", opts.FilePath,
		"run_id", runID,
		"interactive_mode", opts.Capabilities.Interactive,
		"color_support", opts.Capabilities.Color)

	return logger, closeFn, nil
}
