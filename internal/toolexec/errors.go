package toolexec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSubprocessFailure matches every *SubprocessError via errors.Is.
var ErrSubprocessFailure = errors.New("subprocess failure")

// SubprocessError reports a tool that could not be run or exited non-zero.
type SubprocessError struct {
	Tool     string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *SubprocessError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s failed", e.commandLine())
	if e.ExitCode != ExitCodeUnknown {
		fmt.Fprintf(&sb, " with exit code %d", e.ExitCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	if e.Stderr != "" {
		fmt.Fprintf(&sb, " (stderr: %s)", e.Stderr)
	}
	return sb.String()
}

// Unwrap returns the underlying error.
func (e *SubprocessError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrSubprocessFailure.
func (e *SubprocessError) Is(target error) bool {
	return target == ErrSubprocessFailure
}

func (e *SubprocessError) commandLine() string {
	if len(e.Args) == 0 {
		return e.Tool
	}
	return e.Tool + " " + strings.Join(e.Args, " ")
}
