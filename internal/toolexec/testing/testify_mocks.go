// Package testing provides test doubles for toolexec.Runner.
package testing

import (
	"context"

	"github.com/isseis/go-debuginfo-check/internal/toolexec"
	"github.com/stretchr/testify/mock"
)

// MockRunner provides a testify mock implementation of toolexec.Runner.
type MockRunner struct {
	mock.Mock
}

// NewMockRunner creates a new MockRunner instance.
func NewMockRunner() *MockRunner {
	return &MockRunner{}
}

// Run implements toolexec.Runner with safe nil handling.
func (m *MockRunner) Run(ctx context.Context, tool string, args ...string) (*toolexec.Result, error) {
	callArgs := m.Called(ctx, tool, args)
	if callArgs.Get(0) == nil {
		return nil, callArgs.Error(1)
	}
	return callArgs.Get(0).(*toolexec.Result), callArgs.Error(1)
}
