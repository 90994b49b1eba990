package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	_ "github.com/ekaya-inc/ekaya-scaffold/pkg/adapters/datasource/mssql"
	_ "github.com/ekaya-inc/ekaya-scaffold/pkg/adapters/datasource/mysql"
	_ "github.com/ekaya-inc/ekaya-scaffold/pkg/adapters/datasource/postgres"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/config"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

type cli struct {
	Config  string           `help:"Path to the configuration file." default:"config.yaml" type:"path"`
	EnvFile string           `name:"env-file" help:"Path to a .env file loaded before the configuration." type:"path"`
	Version kong.VersionFlag `help:"Show version and exit."`

	Serve    serveCmd    `cmd:"" default:"1" help:"Run the HTTP API and the MCP endpoint."`
	Generate generateCmd `cmd:"" help:"Run a generation from a request file."`
	MCP      mcpCmd      `cmd:"" name:"mcp" help:"Serve MCP over stdio."`
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("ekaya-scaffold"),
		kong.Description("Generates a layered Java project from live database tables."),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	)

	if c.EnvFile != "" {
		if err := godotenv.Load(c.EnvFile); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load env file %s: %v\n", c.EnvFile, err)
			os.Exit(1)
		}
	}

	cfg, err := config.Load(c.Config, Version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	app, err := newApplication(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}

	if err := ctx.Run(app); err != nil {
		logger.Error("Command failed", zap.String("command", ctx.Command()), zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
