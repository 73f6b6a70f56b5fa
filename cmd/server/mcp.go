package main

import (
	"context"
	"fmt"
	"log"

	"github.com/FreePeak/cortex/pkg/server"
	"github.com/spf13/cobra"

	"github.com/FreePeak/db-view-server/internal/config"
	"github.com/FreePeak/db-view-server/internal/delivery/mcp"
	"github.com/FreePeak/db-view-server/internal/logger"
	"github.com/FreePeak/db-view-server/pkg/core"
)

func newMCPCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Expose the resolve_view tool over the MCP stdio transport",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP(cmd.Context(), opts.cfg)
		},
	}
}

func runMCP(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// stdout carries the protocol, so server logs go through the logger on stderr
	mcpServer := server.NewMCPServer(core.Name(), core.Version(), log.New(logger.Writer(), "", 0))

	registry := mcp.NewToolRegistry(mcp.NewServerWrapper(mcpServer), newResolver(cfg))
	if err := registry.RegisterAllTools(ctx); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}

	logger.Info("Serving MCP over stdio (settings %s)", cfg.SettingPath())
	if err := mcpServer.ServeStdio(); err != nil {
		return fmt.Errorf("stdio server error: %w", err)
	}
	return nil
}
