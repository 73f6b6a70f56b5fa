package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/FreePeak/cortex/pkg/server"
	"github.com/FreePeak/cortex/pkg/tools"

	"github.com/FreePeak/db-view-server/internal/domain"
)

// Parameter names of the resolve_view tool
const (
	ParamIdentifier = "identifier"
	ParamParams     = "params"
	ParamWrite      = "write"
)

// ToolType describes one tool exposed over MCP
type ToolType interface {
	// GetName returns the base name of the tool
	GetName() string

	// GetDescription returns a description for this tool
	GetDescription() string

	// CreateTool creates a tool with the specified name. The returned tool
	// must be compatible with server.MCPServer.AddTool's first parameter.
	CreateTool(name string) interface{}

	// HandleRequest handles tool requests for this tool type
	HandleRequest(ctx context.Context, request server.ToolCallRequest, resolver domain.Resolver) (interface{}, error)
}

// BaseToolType provides common functionality for tool types
type BaseToolType struct {
	name        string
	description string
}

// GetName returns the name of the tool type
func (b *BaseToolType) GetName() string {
	return b.name
}

// GetDescription returns a description for the tool type
func (b *BaseToolType) GetDescription() string {
	return b.description
}

// ResolveViewTool resolves an identifier to a view, running its SQL if configured
type ResolveViewTool struct {
	BaseToolType
}

// NewResolveViewTool creates a new resolve_view tool type
func NewResolveViewTool() *ResolveViewTool {
	return &ResolveViewTool{
		BaseToolType: BaseToolType{
			name:        "resolve_view",
			description: "Resolve a configured identifier to its view, running the bound SQL template when one is configured",
		},
	}
}

// CreateTool creates the resolve_view tool
func (t *ResolveViewTool) CreateTool(name string) interface{} {
	return tools.NewTool(
		name,
		tools.WithDescription(t.GetDescription()),
		tools.WithString(ParamIdentifier,
			tools.Description("Identifier of the configuration entry"),
			tools.Required(),
		),
		tools.WithArray(ParamParams,
			tools.Description("Placeholder values as key=value strings"),
			tools.Items(map[string]interface{}{"type": "string"}),
		),
		tools.WithBoolean(ParamWrite,
			tools.Description("Run the SQL as a write statement instead of a query"),
		),
	)
}

// HandleRequest handles resolve_view requests. Fatal outcomes are returned as
// tool errors; error views are returned as regular responses.
func (t *ResolveViewTool) HandleRequest(ctx context.Context, request server.ToolCallRequest, resolver domain.Resolver) (interface{}, error) {
	identifier, ok := request.Parameters[ParamIdentifier].(string)
	if !ok || strings.TrimSpace(identifier) == "" {
		return nil, fmt.Errorf("%s parameter must be a non-empty string", ParamIdentifier)
	}

	params, err := parseParams(request.Parameters[ParamParams])
	if err != nil {
		return nil, err
	}

	mode := domain.Read
	if write, ok := request.Parameters[ParamWrite].(bool); ok && write {
		mode = domain.Write
	}

	outcome := resolver.Resolve(ctx, domain.Request{
		Identifier: identifier,
		Params:     params,
		Mode:       mode,
	})
	if outcome.Kind == domain.OutcomeFatal {
		return nil, outcome.Err
	}
	return FromOutcome(outcome)
}

// parseParams accepts a list of key=value strings or a flat object
func parseParams(raw interface{}) (domain.ParameterMap, error) {
	params := domain.ParameterMap{}
	switch v := raw.(type) {
	case nil:
	case []interface{}:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s items must be key=value strings, got %T", ParamParams, item)
			}
			if err := addParam(params, s); err != nil {
				return nil, err
			}
		}
	case []string:
		for _, s := range v {
			if err := addParam(params, s); err != nil {
				return nil, err
			}
		}
	case map[string]interface{}:
		for k, val := range v {
			params[k] = fmt.Sprintf("%v", val)
		}
	default:
		return nil, fmt.Errorf("%s parameter must be an array of key=value strings", ParamParams)
	}
	return params, nil
}

// addParam stores one key=value pair; the first occurrence of a key wins
func addParam(params domain.ParameterMap, pair string) error {
	key, value, ok := strings.Cut(pair, "=")
	if !ok || key == "" {
		return fmt.Errorf("invalid parameter %q, expected key=value", pair)
	}
	if _, exists := params[key]; !exists {
		params[key] = value
	}
	return nil
}
