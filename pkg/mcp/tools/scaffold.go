package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/services"
)

// ScaffoldToolDeps contains the dependencies of the scaffold tools.
type ScaffoldToolDeps struct {
	GenerationService services.GenerationService
	DatasourceService services.DatasourceService
	Logger            *zap.Logger

	// Now fixes the generation date; time.Now when nil.
	Now func() time.Time
}

func (d *ScaffoldToolDeps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// scaffoldArgs are the arguments shared by every scaffold tool.
// The database descriptor travels with each call; nothing is kept between calls.
type scaffoldArgs struct {
	models.CodeDefinitionRequest
	Database *models.DBDefinition `json:"database"`
	Table    string               `json:"table"`
}

var databaseSchema = map[string]any{
	"driver_class": map[string]any{"type": "string", "description": "JDBC driver class, e.g. com.mysql.cj.jdbc.Driver"},
	"url":          map[string]any{"type": "string", "description": "JDBC URL, e.g. jdbc:mysql://localhost:3306/shop"},
	"username":     map[string]any{"type": "string"},
	"password":     map[string]any{"type": "string"},
}

func databaseOption() mcp.ToolOption {
	return mcp.WithObject("database",
		mcp.Required(),
		mcp.Description("Connection to the database whose tables are scaffolded"),
		mcp.Properties(databaseSchema),
	)
}

func codeDefinitionOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("project_path", mcp.Required(), mcp.Description("Directory the project is generated into")),
		mcp.WithString("group_id", mcp.Description("Maven group id")),
		mcp.WithString("artifact_id", mcp.Required(), mcp.Description("Maven artifact id; split-module layouts prefix module directories with it")),
		mcp.WithString("author", mcp.Description("Author written into file headers")),
		mcp.WithString("base_package", mcp.Required(), mcp.Description("Base Java package, e.g. com.acme.shop")),
		mcp.WithArray("table_list", mcp.WithStringItems(), mcp.Description("Tables to generate, in order")),
		mcp.WithObject("model_names", mcp.Description("Optional model name per table, e.g. {\"t_user_detail\": \"User\"}")),
	}
}

// RegisterScaffoldTools adds the generation tools to the MCP server.
func RegisterScaffoldTools(s *server.MCPServer, deps *ScaffoldToolDeps) {
	registerGenerateTool(s, deps, "scaffold_generate_config", models.PhaseConfig,
		"Writes the environment configuration files and the persistence configuration class")
	registerGenerateTool(s, deps, "scaffold_generate_code", models.PhaseCode,
		"Writes model, mapper, mapper XML, controller, service and service implementation for every table, stopping at the first failing table")
	registerGenerateTool(s, deps, "scaffold_generate", models.PhaseAll,
		"Runs the config phase then the code phase")
	registerPreviewNamesTool(s, deps)
	registerTestConnectionTool(s, deps)
}

func registerGenerateTool(s *server.MCPServer, deps *ScaffoldToolDeps, name, phase, description string) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription(description),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	}, codeDefinitionOptions()...)
	opts = append(opts, databaseOption())
	tool := mcp.NewTool(name, opts...)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, errResult := bindScaffoldArgs(req, phase)
		if errResult != nil {
			return errResult, nil
		}

		report, err := deps.GenerationService.Generate(ctx, args.Detail(deps.now()), args.Database, phase)
		if err != nil {
			deps.Logger.Info("Generation tool failed", zap.String("tool", name), zap.Error(err))
			return NewGenerationErrorResult(err), nil
		}
		return mcp.NewToolResultJSON(report)
	})
}

func registerPreviewNamesTool(s *server.MCPServer, deps *ScaffoldToolDeps) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Returns the model name, request mapping and file paths a table would be generated under"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("table", mcp.Required(), mcp.Description("Table name, e.g. t_user_detail")),
	}, codeDefinitionOptions()...)
	tool := mcp.NewTool("scaffold_preview_names", opts...)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		// A preview names one table and needs no table_list.
		args, errResult := bindScaffoldArgs(req, models.PhaseConfig)
		if errResult != nil {
			return errResult, nil
		}
		if strings.TrimSpace(args.Table) == "" {
			return NewErrorResult(CodeInvalidArguments, "table is required"), nil
		}

		preview, err := deps.GenerationService.PreviewNames(args.Detail(deps.now()), args.Table)
		if err != nil {
			return NewErrorResult(CodeInvalidArguments, err.Error()), nil
		}
		return mcp.NewToolResultJSON(preview)
	})
}

func registerTestConnectionTool(s *server.MCPServer, deps *ScaffoldToolDeps) {
	tool := mcp.NewTool("scaffold_test_connection",
		mcp.WithDescription("Opens the database, pings it and closes it"),
		mcp.WithReadOnlyHintAnnotation(true),
		databaseOption(),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args scaffoldArgs
		if err := req.BindArguments(&args); err != nil {
			return NewErrorResult(CodeInvalidArguments, fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if err := deps.DatasourceService.TestConnection(ctx, args.Database); err != nil {
			return NewErrorResult(CodeConnectionFailed, err.Error()), nil
		}
		return mcp.NewToolResultJSON(map[string]any{"success": true, "dialect": args.Database.Dialect()})
	})
}

func bindScaffoldArgs(req mcp.CallToolRequest, phase string) (*scaffoldArgs, *mcp.CallToolResult) {
	var args scaffoldArgs
	if err := req.BindArguments(&args); err != nil {
		return nil, NewErrorResult(CodeInvalidArguments, fmt.Sprintf("invalid arguments: %v", err))
	}
	if err := args.ValidateFor(phase); err != nil {
		return nil, NewErrorResult(CodeInvalidArguments, err.Error())
	}
	return &args, nil
}
