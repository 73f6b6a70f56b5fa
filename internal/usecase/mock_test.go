package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/FreePeak/db-view-server/internal/domain"
)

// MockConfigRepository is a mock implementation of domain.ConfigRepository
type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) Lookup(ctx context.Context, document, identifier string) (domain.ConfigEntry, bool, error) {
	args := m.Called(ctx, document, identifier)
	return args.Get(0).(domain.ConfigEntry), args.Bool(1), args.Error(2)
}

// MockFileRepository is a mock implementation of domain.FileRepository
type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) Exists(path string) bool {
	args := m.Called(path)
	return args.Bool(0)
}

func (m *MockFileRepository) ReadFile(path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}

func (m *MockFileRepository) ReadConnection(path string) (domain.ConnectionConfig, error) {
	args := m.Called(path)
	return args.Get(0).(domain.ConnectionConfig), args.Error(1)
}

// MockSQLExecutor is a mock implementation of domain.SQLExecutor
type MockSQLExecutor struct {
	mock.Mock
}

func (m *MockSQLExecutor) Execute(ctx context.Context, conn domain.ConnectionConfig, statement string, mode domain.ExecutionMode) (domain.ExecResult, error) {
	args := m.Called(ctx, conn, statement, mode)
	return args.Get(0).(domain.ExecResult), args.Error(1)
}
