package debugcheck

import (
	"context"
	"regexp"

	"github.com/isseis/go-debuginfo-check/internal/toolexec"
)

// elfDescription matches file(1) output for 64-bit little-endian PIE
// executables and shared objects.
var elfDescription = regexp.MustCompile(`ELF 64-bit LSB pie (?:executable|shared object)`)

// Classifier implements ELFClassifier with the external file-type identifier.
type Classifier struct {
	runner    toolexec.Runner
	tool      string
	prefilter HeaderSniffer
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithPrefilter makes the classifier consult sniffer before spawning the
// file-type identifier. A nil sniffer disables the prefilter.
func WithPrefilter(sniffer HeaderSniffer) ClassifierOption {
	return func(c *Classifier) {
		c.prefilter = sniffer
	}
}

// NewClassifier creates a classifier that runs tool (normally "file").
func NewClassifier(runner toolexec.Runner, tool string, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		runner: runner,
		tool:   tool,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsELF reports whether path is a 64-bit LSB position-independent ELF
// executable or shared object. A failing file-type identifier is returned
// as a *toolexec.SubprocessError.
func (c *Classifier) IsELF(ctx context.Context, path string) (bool, error) {
	if c.prefilter != nil && c.prefilter.Sniff(path) == HeaderNotELF {
		return false, nil
	}

	result, err := c.runner.Run(ctx, c.tool, path)
	if err != nil {
		return false, err
	}
	return IsELFDescription(result.Stdout), nil
}

// IsELFDescription reports whether a file-type description names a 64-bit
// LSB PIE executable or shared object.
func IsELFDescription(description string) bool {
	return elfDescription.MatchString(description)
}
