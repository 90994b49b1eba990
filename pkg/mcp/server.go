// Package mcp exposes the generation runs as MCP tools.
package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/mcp/tools"
)

// ServerName is reported to MCP clients during initialization.
const ServerName = "ekaya-scaffold"

const instructions = "Generates a layered Java project (configuration, persistence model, " +
	"mapper, mapper XML, controller, service) from live database tables. " +
	"Every tool call carries its own database descriptor."

// Server wraps the mcp-go MCPServer with the scaffold tools registered.
type Server struct {
	mcp    *server.MCPServer
	logger *zap.Logger
}

// NewServer creates an MCP server exposing the health and scaffold tools.
// databases lists the database types the build can introspect.
func NewServer(version string, deps *tools.ScaffoldToolDeps, databases func() []string, logger *zap.Logger) *Server {
	logger = logger.Named("mcp")
	mcpServer := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(toolTimer(logger)),
	)

	tools.RegisterHealthTool(mcpServer, version, databases)
	if deps != nil {
		tools.RegisterScaffoldTools(mcpServer, deps)
	}

	return &Server{
		mcp:    mcpServer,
		logger: logger,
	}
}

// MCP returns the underlying MCPServer.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// NewStreamableHTTPServer creates an HTTP transport server wrapping this MCP server.
// The HTTP mux handles routing to /mcp, so no endpoint path is configured here.
func (s *Server) NewStreamableHTTPServer() *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(
		s.mcp,
		server.WithStateLess(true),
	)
}

// NewStdioServer creates a stdio transport for local clients.
func (s *Server) NewStdioServer() *server.StdioServer {
	return server.NewStdioServer(s.mcp)
}

func toolTimer(logger *zap.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			result, err := next(ctx, req)
			logger.Debug("Tool call finished",
				zap.String("tool", req.Params.Name),
				zap.Bool("tool_error", result != nil && result.IsError),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err))
			return result, err
		}
	}
}
