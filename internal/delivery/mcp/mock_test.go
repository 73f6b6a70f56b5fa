package mcp

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/FreePeak/db-view-server/internal/domain"
)

// MockResolver is a mock implementation of domain.Resolver
type MockResolver struct {
	mock.Mock
}

// Resolve mocks the Resolve method
func (m *MockResolver) Resolve(ctx context.Context, req domain.Request) domain.Outcome {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.Outcome)
}

// MockToolServer records registered tools and their handlers
type MockToolServer struct {
	mock.Mock
	handlers map[string]ToolHandler
}

// AddTool mocks the AddTool method
func (m *MockToolServer) AddTool(ctx context.Context, tool interface{}, handler ToolHandler) error {
	args := m.Called(ctx, tool)
	if m.handlers == nil {
		m.handlers = make(map[string]ToolHandler)
	}
	m.handlers[toolName(tool)] = handler
	return args.Error(0)
}
