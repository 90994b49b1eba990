package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/mcp"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/middleware"
)

// MCPPath is where the streamable HTTP transport is mounted.
const MCPPath = "/mcp"

// MCPHandler exposes the scaffold MCP server over streamable HTTP.
// The transport is stateless, so every POST carries a complete JSON-RPC call.
type MCPHandler struct {
	next   http.Handler
	logger *zap.Logger
}

// NewMCPHandler wraps the streamable HTTP transport of mcpServer with tool-call logging.
func NewMCPHandler(mcpServer *mcp.Server, logger *zap.Logger) *MCPHandler {
	logger = logger.Named("mcp-http")
	return &MCPHandler{
		next:   middleware.MCPRequestLogger(logger)(mcpServer.NewStreamableHTTPServer()),
		logger: logger,
	}
}

// RegisterRoutes mounts the handler at MCPPath.
func (h *MCPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle(MCPPath, h)
}

// ServeHTTP rejects anything but POST with 405 and an Allow header.
func (h *MCPHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.logger.Debug("Rejected MCP request", zap.String("method", r.Method))
		w.Header().Set("Allow", http.MethodPost)
		if err := ErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "MCP requests must use POST"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}
	h.next.ServeHTTP(w, r)
}
