// Package mcpserver exposes the roleplay engine as MCP tools so agent hosts
// can run training turns and demo conversations.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/kandasoft/salesdojo/internal/engine"
	"github.com/kandasoft/salesdojo/internal/model"
)

// Config holds server configuration.
type Config struct {
	Backend string // model backend: bedrock, haiku, sonnet
}

// DefaultConfig returns a Config populated from environment variables.
func DefaultConfig() Config {
	return Config{
		Backend: envOr("SALESDOJO_MODEL_BACKEND", "bedrock"),
	}
}

// Server is the MCP server for roleplay generation.
type Server struct {
	cfg      Config
	mcp      *server.MCPServer
	handlers *Handlers
	log      *slog.Logger
}

// New creates and configures the MCP server.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Server, error) {
	inv, err := model.NewInvoker(ctx, cfg.Backend, engine.ConfigFromEnv())
	if err != nil {
		return nil, fmt.Errorf("create model invoker: %w", err)
	}

	orch := engine.NewOrchestrator(inv, logger)
	handlers := NewHandlers(orch, engine.NewSimulator(orch), logger)

	mcpServer := server.NewMCPServer(
		"salesdojo",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tools := ToolDefs()
	mcpServer.AddTool(tools[0], handlers.HandleGenerateTurn)
	mcpServer.AddTool(tools[1], handlers.HandleSimulateConversation)

	return &Server{
		cfg:      cfg,
		mcp:      mcpServer,
		handlers: handlers,
		log:      logger,
	}, nil
}

// Start serves MCP over stdio until the client disconnects.
func (s *Server) Start() error {
	s.log.Info("Starting MCP server", "backend", s.cfg.Backend)
	return server.ServeStdio(s.mcp)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
