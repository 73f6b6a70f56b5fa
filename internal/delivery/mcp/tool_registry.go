package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/FreePeak/db-view-server/internal/domain"
	"github.com/FreePeak/db-view-server/internal/logger"
)

// ToolRegistry registers the view tools with an MCP server
type ToolRegistry struct {
	server   ToolServer
	resolver domain.Resolver
	types    []ToolType
}

// NewToolRegistry creates a new tool registry
func NewToolRegistry(srv ToolServer, resolver domain.Resolver) *ToolRegistry {
	return &ToolRegistry{
		server:   srv,
		resolver: resolver,
		types:    []ToolType{NewResolveViewTool()},
	}
}

// RegisterAllTools registers every tool type under its base name, plus an
// alias under MCP_TOOL_PREFIX when that variable is set.
func (tr *ToolRegistry) RegisterAllTools(ctx context.Context) error {
	prefix := getToolNamePrefix()

	for _, toolType := range tr.types {
		names := []string{toolType.GetName()}
		if prefix != "" {
			names = append(names, prefix+toolType.GetName())
		}
		for _, name := range names {
			if err := tr.registerTool(ctx, toolType, name); err != nil {
				return fmt.Errorf("failed to register tool %s: %w", name, err)
			}
		}
	}
	return nil
}

// registerTool registers a tool with the server
func (tr *ToolRegistry) registerTool(ctx context.Context, toolType ToolType, name string) error {
	logger.Info("Registering tool '%s'", name)

	tool := toolType.CreateTool(name)
	return tr.server.AddTool(ctx, tool, func(ctx context.Context, request ToolCallRequest) (interface{}, error) {
		response, err := toolType.HandleRequest(ctx, request, tr.resolver)
		return FormatResponse(response, err)
	})
}

// getToolNamePrefix returns the optional prefix for tool aliases
func getToolNamePrefix() string {
	return os.Getenv("MCP_TOOL_PREFIX")
}
