package schemagen

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/bindings"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/layout"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/naming"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/render"
)

// Template identifiers of the generated persistence artifacts.
const (
	TemplateModel     = "model"
	TemplateMapper    = "mapper"
	TemplateMapperXML = "mapper-xml"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// IntrospectorOpener opens a connection able to describe tables.
// datasource.DatasourceAdapterFactory satisfies it.
type IntrospectorOpener interface {
	NewIntrospector(ctx context.Context, db *models.DBDefinition) (datasource.Introspector, error)
}

// Engine runs schema-driven generations. It holds no per-run state.
type Engine struct {
	opener    IntrospectorOpener
	templates *render.TemplateSet
	converter *naming.Converter
	logger    *zap.Logger
}

// NewEngine creates an Engine. Model names are derived with converter when a
// table carries no explicit DomainObjectName.
func NewEngine(opener IntrospectorOpener, converter *naming.Converter, logger *zap.Logger) (*Engine, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("open schema templates: %w", err)
	}
	return &Engine{
		opener:    opener,
		templates: render.NewTemplateSet(sub),
		converter: converter,
		logger:    logger.Named("schemagen"),
	}, nil
}

// field is one column as seen by the templates.
type field struct {
	Column   string
	Property string
	Accessor string
	JavaType string
	JDBCType string
	Comment  string
	ID       bool
	Identity bool
}

// Generate introspects cfg.Table and writes its model, mapper interface and
// mapper XML. Errors are reported through Result.Err; a missing table is only a
// warning.
func (e *Engine) Generate(ctx context.Context, cfg Config) *Result {
	result := &Result{Table: cfg.Table.Name}
	if err := cfg.Validate(); err != nil {
		result.Err = fmt.Errorf("invalid configuration: %w", err)
		return result
	}

	introspector, err := e.opener.NewIntrospector(ctx, cfg.Connection.DBDefinition())
	if err != nil {
		result.Err = fmt.Errorf("open connection: %w", err)
		return result
	}
	defer func() {
		if err := introspector.Close(); err != nil {
			e.logger.Warn("Failed to close introspector", zap.Error(err))
		}
	}()

	schemaName, tableName := splitQualified(cfg.Table.Name)
	table, err := introspector.DescribeTable(ctx, schemaName, tableName)
	if errors.Is(err, datasource.ErrTableNotFound) {
		result.warn(fmt.Sprintf("Table configuration with catalog null, schema %s, and table %s did not resolve to any tables",
			orNull(schemaName), tableName))
		return result
	}
	if err != nil {
		result.Err = fmt.Errorf("introspect table %s: %w", cfg.Table.Name, err)
		return result
	}

	domain := cfg.Table.DomainObjectName
	if domain == "" {
		domain, err = e.converter.TableToUpperCamel(cfg.Table.Name)
		if err != nil {
			result.Err = err
			return result
		}
	}
	result.DomainName = domain

	fields, imports := e.fields(cfg, table, result)
	data := e.templateData(cfg, table, domain, fields, imports)

	renderer := render.NewRenderer(e.templates, cfg.Overwrite, e.logger)
	steps := []struct {
		id   string
		path string
		add  func(Artifact)
		name string
	}{
		{TemplateModel, filepath.Join(layout.PackageDir(cfg.Model.Project, cfg.Model.Package), domain+".java"),
			func(a Artifact) { result.Models = append(result.Models, a) }, domain},
		{TemplateMapper, filepath.Join(layout.PackageDir(cfg.Client.Project, cfg.Client.Package), domain+"Mapper.java"),
			func(a Artifact) { result.Clients = append(result.Clients, a) }, domain + "Mapper"},
		{TemplateMapperXML, filepath.Join(layout.PackageDir(cfg.SQLMap.Project, cfg.SQLMap.Package), domain+"Mapper.xml"),
			func(a Artifact) { result.SQLMaps = append(result.SQLMaps, a) }, domain + "Mapper.xml"},
	}
	for _, step := range steps {
		if err := renderer.Render(data, step.path, step.id); err != nil {
			result.Err = err
			return result
		}
		step.add(Artifact{Name: step.name, Path: step.path})
	}

	e.logger.Info("Generated persistence artifacts",
		zap.String("table", cfg.Table.Name),
		zap.String("model", domain),
		zap.Int("columns", len(table.Columns)),
		zap.Int("warnings", len(result.Warnings)))
	return result
}

func (e *Engine) fields(cfg Config, table *datasource.TableSchema, result *Result) ([]field, []string) {
	key := cfg.Table.GeneratedKey
	if key != nil && table.Column(key.Column) == nil {
		msg := fmt.Sprintf("Generated key column %s does not exist in table %s", key.Column, cfg.Table.Name)
		if pk := table.PrimaryKey(); pk != nil {
			msg += fmt.Sprintf(" (primary key is %s)", pk.ColumnName)
		}
		result.warn(msg)
		key = nil
	}

	var (
		fields  []field
		imports []string
	)
	for _, c := range table.Columns {
		jt, ok := resolveJavaType(c.DataType)
		if !ok {
			result.warn(fmt.Sprintf("Unsupported data type %s for column %s in table %s, mapped to Object",
				c.DataType, c.ColumnName, cfg.Table.Name))
		}
		if jt.Import != "" && !slices.Contains(imports, jt.Import) {
			imports = append(imports, jt.Import)
		}
		property := naming.ColumnToProperty(c.ColumnName)
		isKey := key != nil && c.ColumnName == key.Column
		fields = append(fields, field{
			Column:   c.ColumnName,
			Property: property,
			Accessor: naming.UpperFirst(property),
			JavaType: jt.Name,
			JDBCType: jt.JDBCType,
			Comment:  c.Comment,
			ID:       c.IsPrimaryKey || isKey,
			Identity: isKey && key.Identity,
		})
	}
	slices.Sort(imports)
	return fields, imports
}

func (e *Engine) templateData(cfg Config, table *datasource.TableSchema, domain string, fields []field, imports []string) bindings.Bindings {
	mappers := cfg.MapperReference()
	var mapperImports []string
	for _, m := range strings.Split(mappers, ",") {
		if m = strings.TrimSpace(m); m != "" {
			mapperImports = append(mapperImports, m)
		}
	}
	return bindings.Bindings{
		"domainName":         domain,
		"tableName":          table.TableName,
		"delimitedTableName": cfg.Context.BeginningDelimiter + table.TableName + cfg.Context.EndingDelimiter,
		"tableComment":       table.Comment,
		"modelPackage":       cfg.Model.Package,
		"clientPackage":      cfg.Client.Package,
		"mappers":            mapperImports,
		"imports":            imports,
		"fields":             fields,
		"targetRuntime":      cfg.Context.TargetRuntime,
	}
}

// splitQualified splits "schema.table" into its parts; schema is "" when absent.
func splitQualified(name string) (string, string) {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

func orNull(s string) string {
	if s == "" {
		return "null"
	}
	return s
}
