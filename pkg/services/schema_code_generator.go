package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/layout"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/schemagen"
	sqlcheck "github.com/ekaya-inc/ekaya-scaffold/pkg/sql"
)

// SchemaEngine runs one schema-driven generation. *schemagen.Engine implements it.
type SchemaEngine interface {
	Generate(ctx context.Context, cfg schemagen.Config) *schemagen.Result
}

// SchemaCodeGenerator produces the persistence object, mapper interface and
// mapper XML of a table from its live structure.
type SchemaCodeGenerator interface {
	// NewContext builds the table-independent generation settings shared by
	// every table of one run. daoRoot is the project root of the dao module.
	NewContext(detail *models.CodeDefinitionDetail, db *models.DBDefinition, daoRoot string) (schemagen.ContextConfig, error)

	// Generate runs the generation for one table. modelOverride replaces the
	// derived model name when non-empty.
	Generate(ctx context.Context, cc schemagen.ContextConfig, table, modelOverride string) (*schemagen.Result, error)
}

type schemaCodeGenerator struct {
	engine    SchemaEngine
	overwrite bool
	logger    *zap.Logger
}

// NewSchemaCodeGenerator creates a SchemaCodeGenerator backed by engine.
func NewSchemaCodeGenerator(engine SchemaEngine, overwrite bool, logger *zap.Logger) SchemaCodeGenerator {
	return &schemaCodeGenerator{
		engine:    engine,
		overwrite: overwrite,
		logger:    logger.Named("schema-code-generator"),
	}
}

func (g *schemaCodeGenerator) NewContext(detail *models.CodeDefinitionDetail, db *models.DBDefinition, daoRoot string) (schemagen.ContextConfig, error) {
	if err := db.Validate(); err != nil {
		return schemagen.ContextConfig{}, err
	}
	begin, end := schemagen.Delimiters(db.Dialect())
	javaRoot := layout.JavaRoot(daoRoot)
	return schemagen.ContextConfig{
		Context: schemagen.Context{
			ID:                 schemagen.ContextID,
			TargetRuntime:      schemagen.TargetRuntime,
			BeginningDelimiter: begin,
			EndingDelimiter:    end,
		},
		Connection: schemagen.Connection{
			DriverClass: db.DriverClass,
			URL:         db.URL,
			UserID:      db.Username,
			Password:    db.Password,
		},
		Plugins: []schemagen.Plugin{{
			Type:       schemagen.PluginTypeMapper,
			Properties: map[string]string{schemagen.PluginPropertyMapper: detail.MapperInterfaceReference},
		}},
		Model:  schemagen.Target{Project: javaRoot, Package: detail.ModulePackage},
		SQLMap: schemagen.Target{Project: layout.ResourcesRoot(daoRoot), Package: schemagen.SQLMapPackage},
		Client: schemagen.ClientTarget{
			Target: schemagen.Target{Project: javaRoot, Package: detail.MapperPackage},
			Type:   schemagen.ClientTypeXMLMapper,
		},
		Overwrite: g.overwrite,
	}, nil
}

func (g *schemaCodeGenerator) Generate(ctx context.Context, cc schemagen.ContextConfig, table, modelOverride string) (*schemagen.Result, error) {
	if err := sqlcheck.ValidateTableName(table); err != nil {
		return nil, &apperrors.SchemaGenerationError{Table: table, Err: err}
	}

	dialect := cc.Connection.DBDefinition().Dialect()
	cfg := cc.ForTable(schemagen.Table{
		Name:             table,
		DomainObjectName: modelOverride,
		GeneratedKey: &schemagen.GeneratedKey{
			Column:   schemagen.GeneratedKeyColumn,
			Dialect:  schemagen.KeyDialect(dialect),
			Identity: true,
		},
	})

	result := g.engine.Generate(ctx, cfg)
	for _, w := range result.Warnings {
		g.logger.Warn("Schema generation warning", zap.String("table", table), zap.String("warning", w))
	}
	if result.Err != nil {
		return result, &apperrors.SchemaGenerationError{Table: table, Warnings: result.Warnings, Err: result.Err}
	}
	if !result.Complete() {
		return result, &apperrors.SchemaGenerationError{Table: table, Warnings: result.Warnings}
	}

	g.logger.Debug("Schema generation complete",
		zap.String("table", table),
		zap.String("model", result.DomainName),
		zap.Int("artifacts", len(result.Artifacts())))
	return result, nil
}

var _ SchemaCodeGenerator = (*schemaCodeGenerator)(nil)
