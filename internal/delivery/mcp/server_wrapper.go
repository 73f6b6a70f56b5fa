package mcp

import (
	"context"

	"github.com/FreePeak/cortex/pkg/server"
	"github.com/FreePeak/cortex/pkg/types"

	"github.com/FreePeak/db-view-server/internal/logger"
)

// ToolCallRequest is the request of one tool call
type ToolCallRequest = server.ToolCallRequest

// ToolHandler handles one tool call
type ToolHandler func(ctx context.Context, request ToolCallRequest) (interface{}, error)

// ToolServer is where tools get registered
type ToolServer interface {
	AddTool(ctx context.Context, tool interface{}, handler ToolHandler) error
}

// ServerWrapper adapts server.MCPServer to ToolServer
type ServerWrapper struct {
	mcpServer *server.MCPServer
}

// NewServerWrapper creates a new ServerWrapper
func NewServerWrapper(mcpServer *server.MCPServer) *ServerWrapper {
	return &ServerWrapper{
		mcpServer: mcpServer,
	}
}

// AddTool adds a tool to the server
func (sw *ServerWrapper) AddTool(ctx context.Context, tool interface{}, handler ToolHandler) error {
	logger.Debug("Adding tool: %T", tool)

	typedTool, ok := tool.(*types.Tool)
	if !ok {
		logger.Warn("Tool is not of type *types.Tool: %T", tool)
		return nil
	}

	return sw.mcpServer.AddTool(ctx, typedTool, func(ctx context.Context, request server.ToolCallRequest) (interface{}, error) {
		return handler(ctx, request)
	})
}
