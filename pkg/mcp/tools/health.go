package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type healthResult struct {
	Status    string   `json:"status"`
	Version   string   `json:"version"`
	Databases []string `json:"databases"`
}

// RegisterHealthTool adds a health check tool to the MCP server.
// The tool returns the server status, version and the database types the
// build can introspect.
func RegisterHealthTool(s *server.MCPServer, version string, databases func() []string) {
	tool := mcp.NewTool(
		"health",
		mcp.WithDescription("Returns server health status, version and supported databases"),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := healthResult{Status: "ok", Version: version, Databases: []string{}}
		if databases != nil {
			result.Databases = databases()
		}
		return mcp.NewToolResultJSON(result)
	})
}
