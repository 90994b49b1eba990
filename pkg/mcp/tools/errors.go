package tools

import (
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/apperrors"
)

// Error codes reported in tool results.
const (
	CodeInvalidArguments = "invalid_arguments"
	CodeGenerationFailed = "generation_failed"
	CodeConnectionFailed = "connection_failed"
)

// ErrorResponse represents a structured error in tool results.
// Errors are returned as successful tool results so the client sees the
// details instead of a bare protocol failure.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// NewErrorResult creates a tool result containing a structured error.
func NewErrorResult(code, message string) *mcp.CallToolResult {
	return NewErrorResultWithDetails(code, message, nil)
}

// NewErrorResultWithDetails creates an error result with additional context.
func NewErrorResultWithDetails(code, message string, details any) *mcp.CallToolResult {
	resp := ErrorResponse{
		Error:   true,
		Code:    code,
		Message: message,
		Details: details,
	}
	jsonBytes, _ := json.Marshal(resp)
	result := mcp.NewToolResultText(string(jsonBytes))
	result.IsError = true
	return result
}

// GenerationErrorDetails carries what is known about a failed run.
type GenerationErrorDetails struct {
	Table    string   `json:"table,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Template string   `json:"template,omitempty"`
	Target   string   `json:"target,omitempty"`
	SQLState string   `json:"sql_state,omitempty"`
}

// NewGenerationErrorResult reports a failed run under CodeGenerationFailed,
// with details extracted from the wrapped failure.
func NewGenerationErrorResult(err error) *mcp.CallToolResult {
	var (
		details GenerationErrorDetails
		found   bool
	)

	var schemaErr *apperrors.SchemaGenerationError
	if errors.As(err, &schemaErr) {
		details.Table = schemaErr.Table
		details.Warnings = schemaErr.Warnings
		found = true
	}
	var renderErr *apperrors.RenderError
	if errors.As(err, &renderErr) {
		details.Template = renderErr.TemplateID
		details.Target = renderErr.TargetFile
		found = true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		details.SQLState = pgErr.Code
		found = true
	}

	if !found {
		return NewErrorResult(CodeGenerationFailed, err.Error())
	}
	return NewErrorResultWithDetails(CodeGenerationFailed, err.Error(), details)
}
