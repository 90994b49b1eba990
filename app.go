package main

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/config"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/handlers"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/layout"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/mcp"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/mcp/tools"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/middleware"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/naming"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/render"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/schemagen"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/services"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/session"
)

const shutdownTimeout = 10 * time.Second

// application holds the services shared by every command.
type application struct {
	cfg               *config.Config
	logger            *zap.Logger
	generationService services.GenerationService
	datasourceService services.DatasourceService
}

func newApplication(cfg *config.Config, logger *zap.Logger) (*application, error) {
	factory := datasource.NewDatasourceAdapterFactory(logger)
	converter := naming.NewConverter(cfg.Project.TablePrefixes, cfg.Project.Singularize)

	templates, err := render.DefaultTemplates(cfg.Project.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	engine, err := schemagen.NewEngine(factory, converter, logger)
	if err != nil {
		return nil, err
	}

	overwrite := cfg.Project.Overwrite()
	schemaGenerator := services.NewSchemaCodeGenerator(engine, overwrite, logger)
	generationService := services.NewGenerationService(
		schemaGenerator,
		render.NewRenderer(templates, overwrite, logger),
		layout.NewResolver(cfg.Project.SplitModule),
		converter,
		logger,
	)

	return &application{
		cfg:               cfg,
		logger:            logger,
		generationService: generationService,
		datasourceService: services.NewDatasourceService(factory, logger),
	}, nil
}

func (a *application) databases() []string {
	var types []string
	for _, info := range a.datasourceService.ListTypes() {
		types = append(types, info.Type)
	}
	return types
}

func (a *application) mcpServer() *mcp.Server {
	return mcp.NewServer(a.cfg.Version, &tools.ScaffoldToolDeps{
		GenerationService: a.generationService,
		DatasourceService: a.datasourceService,
		Logger:            a.logger,
	}, a.databases, a.logger)
}

type serveCmd struct{}

func (c *serveCmd) Run(app *application) error {
	cfg, logger := app.cfg, app.logger

	secret := cfg.Session.Secret
	if secret == "" {
		secret = rand.Text()
		logger.Warn("SESSION_SECRET is not set; sessions will not survive a restart")
	}
	store, err := session.NewStore(secret, session.Options{
		Name:   cfg.Session.Name,
		MaxAge: cfg.Session.MaxAge,
		Secure: cfg.Session.Secure,
	})
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, app.databases, logger).RegisterRoutes(mux)
	handlers.NewDatasourcesHandler(app.datasourceService, store, logger).RegisterRoutes(mux)
	handlers.NewGenerateHandler(app.generationService, store, logger).RegisterRoutes(mux)
	handlers.NewMCPHandler(app.mcpServer(), logger).RegisterRoutes(mux)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.BindAddr, cfg.Port),
		Handler:           middleware.RequestLogger(logger)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting ekaya-scaffold",
			zap.String("addr", srv.Addr),
			zap.String("base_url", cfg.BaseURL),
			zap.String("version", cfg.Version),
			zap.Bool("split_module", cfg.Project.SplitModule),
			zap.Strings("databases", app.databases()))
		if cfg.TLSCertPath != "" {
			errCh <- srv.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type generateCmd struct {
	Request string `short:"r" required:"" type:"existingfile" help:"YAML request file (code definition plus database)."`
	Phase   string `short:"p" default:"all" enum:"config,code,all" help:"Phase to run: config, code or all."`
}

func (c *generateCmd) Run(app *application) error {
	req, err := config.LoadRequest(c.Request)
	if err != nil {
		return err
	}
	if err := req.ValidateFor(c.Phase); err != nil {
		return fmt.Errorf("invalid request %s: %w", c.Request, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := app.generationService.Generate(ctx, req.Detail(time.Now()), req.Database, c.Phase)
	if report != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(report); encErr != nil {
			app.logger.Error("Failed to write report", zap.Error(encErr))
		}
	}
	return err
}

type mcpCmd struct{}

func (c *mcpCmd) Run(app *application) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.logger.Info("Serving MCP over stdio", zap.String("version", app.cfg.Version))
	return app.mcpServer().NewStdioServer().Listen(ctx, os.Stdin, os.Stdout)
}
