// Package toolexec runs the external binutils-style tools the checker relies on
// (the file-type identifier and the ELF section/symbol lister) and captures
// their output. Every failure to run a tool to a zero exit status is reported
// as a *SubprocessError so callers can abort the whole run.
package toolexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ExitCodeUnknown is used when the process never produced an exit status
// (the tool could not be found or started).
const ExitCodeUnknown = -1

// killWaitDelay bounds how long Run waits for output pipes after the tool
// has been killed on cancellation.
const killWaitDelay = 2 * time.Second

// Error definitions
var (
	ErrEmptyTool       = errors.New("tool name cannot be empty")
	ErrInvalidToolPath = errors.New("invalid tool path")
)

// Runner runs an external tool and returns its captured output.
type Runner interface {
	// Run executes tool with args. A non-nil error is always a *SubprocessError.
	Run(ctx context.Context, tool string, args ...string) (*Result, error)
}

// Result contains the captured output of a tool invocation
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// DefaultRunner runs tools with os/exec.
type DefaultRunner struct {
	// Timeout bounds a single invocation. Zero means no timeout.
	Timeout time.Duration

	// Logger receives a debug record per invocation. Nil uses slog.Default().
	Logger *slog.Logger

	lookPath func(string) (string, error)
}

// NewDefaultRunner creates a runner with the given per-invocation timeout.
func NewDefaultRunner(timeout time.Duration, logger *slog.Logger) *DefaultRunner {
	return &DefaultRunner{
		Timeout:  timeout,
		Logger:   logger,
		lookPath: exec.LookPath,
	}
}

// Run implements Runner.
func (r *DefaultRunner) Run(ctx context.Context, tool string, args ...string) (*Result, error) {
	if err := validateTool(tool); err != nil {
		return nil, &SubprocessError{Tool: tool, Args: args, ExitCode: ExitCodeUnknown, Err: err}
	}

	lookPath := r.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath(tool)
	if err != nil {
		return nil, &SubprocessError{
			Tool:     tool,
			Args:     args,
			ExitCode: ExitCodeUnknown,
			Err:      fmt.Errorf("failed to find tool %q: %w", tool, err),
		}
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	// #nosec G204 - the tool comes from the checker's own configuration
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = toolEnvironment(os.Environ())
	cmd.WaitDelay = killWaitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()

	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	} else {
		result.ExitCode = ExitCodeUnknown
	}

	r.logger().Debug("Tool invocation finished",
		"tool", tool,
		"args", args,
		"exit_code", result.ExitCode,
		"duration_ms", time.Since(start).Milliseconds())

	if runErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			runErr = fmt.Errorf("%w: %w", ctxErr, runErr)
		}
		return result, &SubprocessError{
			Tool:     tool,
			Args:     args,
			ExitCode: result.ExitCode,
			Stderr:   strings.TrimSpace(result.Stderr),
			Err:      runErr,
		}
	}

	return result, nil
}

func (r *DefaultRunner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// validateTool rejects tool names that are empty or carry relative path components.
func validateTool(tool string) error {
	if tool == "" {
		return ErrEmptyTool
	}
	if !filepath.IsLocal(tool) && !filepath.IsAbs(tool) {
		return fmt.Errorf("%w: tool path must be local or absolute: %s", ErrInvalidToolPath, tool)
	}
	if filepath.Clean(tool) != tool {
		return fmt.Errorf("%w: tool path contains relative path components ('.' or '..'): %s", ErrInvalidToolPath, tool)
	}
	return nil
}

// toolEnvironment returns env with the locale pinned to C so that tool
// output is parsed in a stable, untranslated form.
func toolEnvironment(env []string) []string {
	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		if strings.HasPrefix(kv, "LC_ALL=") {
			continue
		}
		out = append(out, kv)
	}
	return append(out, "LC_ALL=C")
}
