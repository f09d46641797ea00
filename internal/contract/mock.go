package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockExtractor is a mock implementation of Extractor for testing.
type MockExtractor struct {
	mock.Mock
}

var _ Extractor = &MockExtractor{} // Compile-time check

// Extract implements the Extractor interface.
func (m *MockExtractor) Extract(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

// MockReporter is a mock implementation of Reporter for testing.
type MockReporter struct {
	mock.Mock
}

var _ Reporter = &MockReporter{} // Compile-time check

// Report implements the Reporter interface.
func (m *MockReporter) Report(outputPath string, tasksAssigned, solutionsCompleted int) error {
	args := m.Called(outputPath, tasksAssigned, solutionsCompleted)
	return args.Error(0)
}
