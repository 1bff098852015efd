package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "scribble/internal/adapters/mcp"
	"scribble/internal/adapters/storage"
	"scribble/internal/config"
)

func main() {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		log.Fatalf("scribble-mcp: %v", err)
	}
	dataDir := flag.String("data-dir", cfg.DataDir, "notebook data directory")
	flag.Parse()

	store, err := storage.NewStore(*dataDir)
	if err != nil {
		log.Fatalf("scribble-mcp: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"scribble-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store)
	mcpadapter.RegisterWriteTools(mcpServer, store)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("scribble-mcp: %v", err)
	}
}
