package debugcheck

import (
	"errors"
	"fmt"

	"github.com/gobwas/glob"
)

// ErrInvalidExcludePattern indicates an exclusion glob that does not compile.
var ErrInvalidExcludePattern = errors.New("invalid exclude pattern")

// Excluder matches absolute paths against exclusion globs. "*" stays within
// one path component, "**" crosses components.
type Excluder struct {
	patterns []string
	globs    []glob.Glob
}

// NewExcluder compiles patterns. An empty list excludes nothing.
func NewExcluder(patterns []string) (*Excluder, error) {
	e := &Excluder{
		patterns: make([]string, 0, len(patterns)),
		globs:    make([]glob.Glob, 0, len(patterns)),
	}
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidExcludePattern, p, err)
		}
		e.patterns = append(e.patterns, p)
		e.globs = append(e.globs, g)
	}
	return e, nil
}

// Match returns the first pattern matching path, if any.
func (e *Excluder) Match(path string) (string, bool) {
	if e == nil {
		return "", false
	}
	for i, g := range e.globs {
		if g.Match(path) {
			return e.patterns[i], true
		}
	}
	return "", false
}

// Patterns returns the source patterns in order.
func (e *Excluder) Patterns() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.patterns))
	copy(out, e.patterns)
	return out
}
