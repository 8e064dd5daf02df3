package testing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/isseis/go-debuginfo-check/internal/toolexec"
)

// ErrUnexpectedInvocation is wrapped in the SubprocessError returned for a
// command line that has no canned response.
var ErrUnexpectedInvocation = errors.New("unexpected tool invocation")

// Response is the canned outcome of one command line.
type Response struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// FakeRunner answers tool invocations from a table of canned responses keyed
// by the full command line ("tool arg1 arg2"). A response with a non-zero
// ExitCode is reported as a *toolexec.SubprocessError, like DefaultRunner.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]Response
	calls     []string
}

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string]Response)}
}

// On registers the response for tool invoked with args.
func (f *FakeRunner) On(resp Response, tool string, args ...string) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[commandLine(tool, args)] = resp
	return f
}

// Run implements toolexec.Runner.
func (f *FakeRunner) Run(_ context.Context, tool string, args ...string) (*toolexec.Result, error) {
	key := commandLine(tool, args)

	f.mu.Lock()
	f.calls = append(f.calls, key)
	resp, ok := f.responses[key]
	f.mu.Unlock()

	if !ok {
		return nil, &toolexec.SubprocessError{
			Tool:     tool,
			Args:     args,
			ExitCode: toolexec.ExitCodeUnknown,
			Err:      ErrUnexpectedInvocation,
		}
	}

	result := &toolexec.Result{ExitCode: resp.ExitCode, Stdout: resp.Stdout, Stderr: resp.Stderr}
	if resp.ExitCode != 0 {
		return result, &toolexec.SubprocessError{
			Tool:     tool,
			Args:     args,
			ExitCode: resp.ExitCode,
			Stderr:   resp.Stderr,
			Err:      fmt.Errorf("exit status %d", resp.ExitCode),
		}
	}
	return result, nil
}

// Calls returns the command lines invoked so far, in order.
func (f *FakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many times tool was invoked with any arguments.
func (f *FakeRunner) CallCount(tool string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == tool || strings.HasPrefix(c, tool+" ") {
			n++
		}
	}
	return n
}

func commandLine(tool string, args []string) string {
	if len(args) == 0 {
		return tool
	}
	return tool + " " + strings.Join(args, " ")
}
