package logging

// Go 1.21 stand-ins for testing.T.Context and testing.T.Chdir (added in Go 1.24).

import (
	"context"
	"testing"
)

// testContext returns a context that is canceled when the test finishes.
func testContext(t testing.TB) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
