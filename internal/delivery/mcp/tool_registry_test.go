package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FreePeak/db-view-server/internal/domain"
)

func TestRegisterAllTools(t *testing.T) {
	t.Setenv("MCP_TOOL_PREFIX", "")

	srv := new(MockToolServer)
	srv.On("AddTool", mock.Anything, mock.Anything).Return(nil)
	resolver := new(MockResolver)
	resolver.On("Resolve", mock.Anything, mock.Anything).Return(domain.Ok(domain.ViewResult{View: "/demo.view"}))

	registry := NewToolRegistry(srv, resolver)
	require.NoError(t, registry.RegisterAllTools(context.Background()))

	srv.AssertNumberOfCalls(t, "AddTool", 1)
	handler, ok := srv.handlers["resolve_view"]
	require.True(t, ok)

	resp, err := handler(context.Background(), ToolCallRequest{
		Name:       "resolve_view",
		Parameters: map[string]interface{}{"identifier": "demo_get"},
	})
	require.NoError(t, err)
	response, ok := resp.(*Response)
	require.True(t, ok)
	assert.JSONEq(t, `{"view":"/demo.view"}`, response.Content[0].Text)
}

func TestRegisterAllToolsWithPrefix(t *testing.T) {
	t.Setenv("MCP_TOOL_PREFIX", "views_")

	srv := new(MockToolServer)
	srv.On("AddTool", mock.Anything, mock.Anything).Return(nil)

	registry := NewToolRegistry(srv, new(MockResolver))
	require.NoError(t, registry.RegisterAllTools(context.Background()))

	srv.AssertNumberOfCalls(t, "AddTool", 2)
	assert.Contains(t, srv.handlers, "resolve_view")
	assert.Contains(t, srv.handlers, "views_resolve_view")
}

func TestRegisterAllToolsFailure(t *testing.T) {
	t.Setenv("MCP_TOOL_PREFIX", "")

	srv := new(MockToolServer)
	srv.On("AddTool", mock.Anything, mock.Anything).Return(errors.New("duplicate tool"))

	err := NewToolRegistry(srv, new(MockResolver)).RegisterAllTools(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve_view")
}

func TestRegisteredHandlerReturnsFatalAsError(t *testing.T) {
	t.Setenv("MCP_TOOL_PREFIX", "")

	srv := new(MockToolServer)
	srv.On("AddTool", mock.Anything, mock.Anything).Return(nil)
	resolver := new(MockResolver)
	resolver.On("Resolve", mock.Anything, mock.Anything).
		Return(domain.Fatal(&domain.SystemError{Err: errors.New("boom")}))

	require.NoError(t, NewToolRegistry(srv, resolver).RegisterAllTools(context.Background()))

	resp, err := srv.handlers["resolve_view"](context.Background(), ToolCallRequest{
		Parameters: map[string]interface{}{"identifier": "demo_get"},
	})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrSystem)
}
