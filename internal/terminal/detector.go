// Package terminal decides how diagnostics on stderr are presented: whether
// the stream is an interactive terminal (progress spinner, coloured levels)
// and whether ANSI colour may be written to it.
package terminal

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ciEnvVars contains common CI environment variables
var ciEnvVars = []string{
	"CI",                     // Generic CI indicator
	"CONTINUOUS_INTEGRATION", // Generic CI indicator
	"GITHUB_ACTIONS",         // GitHub Actions
	"TRAVIS",                 // Travis CI
	"CIRCLECI",               // Circle CI
	"JENKINS_URL",            // Jenkins
	"BUILD_NUMBER",           // Jenkins/TeamCity/etc
	"GITLAB_CI",              // GitLab CI
	"BUILDKITE",              // Buildkite
	"TF_BUILD",               // Azure DevOps
}

// LookupEnvFunc has the signature of os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

// Detector inspects the environment and a writer's file descriptor.
type Detector struct {
	lookupEnv  LookupEnvFunc
	isTerminal func(fd int) bool
}

// NewDetector returns a Detector backed by the process environment.
func NewDetector() *Detector {
	return &Detector{
		lookupEnv:  os.LookupEnv,
		isTerminal: term.IsTerminal,
	}
}

// fdWriter is implemented by *os.File.
type fdWriter interface {
	Fd() uintptr
}

// getenv treats an empty value as unset.
func (d *Detector) getenv(key string) string {
	v, _ := d.lookupEnv(key)
	return v
}

// IsTerminal reports whether w is a file connected to a terminal. Writers
// without a file descriptor, such as buffers, never are.
func (d *Detector) IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return d.isTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}

// IsCIEnvironment checks if the current environment is a CI/CD system
func (d *Detector) IsCIEnvironment() bool {
	for _, envVar := range ciEnvVars {
		value := d.getenv(envVar)
		if value == "" {
			continue
		}
		// CI=false is an explicit opt-out; other variables count by presence
		if envVar == "CI" {
			return isCITruthy(value)
		}
		return true
	}
	return false
}

// IsInteractive reports whether w is a terminal outside CI.
func (d *Detector) IsInteractive(w io.Writer) bool {
	return !d.IsCIEnvironment() && d.IsTerminal(w)
}

// isCITruthy checks if a CI environment variable value should be considered "true"
// CI=false or CI=0 should not be considered a CI environment
func isCITruthy(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	return lower != "false" && lower != "0" && lower != "no"
}
