// Package schemagen generates persistence objects, mapper interfaces and mapper
// XML from live table structure. A generation is described by one immutable
// Config and produces a Result; nothing is shared between runs.
package schemagen

import (
	"errors"
	"fmt"
	"maps"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/naming"
)

// Settings applied by the scaffolder.
const (
	ContextID            = "Potato"
	TargetRuntime        = "MyBatis3Simple"
	ClientTypeXMLMapper  = "XMLMAPPER"
	PluginTypeMapper     = "mapper"
	PluginPropertyMapper = "mappers"
	SQLMapPackage        = "mapper"
	GeneratedKeyColumn   = "id"
)

// Context holds generator-wide settings.
type Context struct {
	ID                 string
	TargetRuntime      string
	BeginningDelimiter string
	EndingDelimiter    string
}

// Connection is the JDBC descriptor of the database to introspect.
type Connection struct {
	DriverClass string
	URL         string
	UserID      string
	Password    string
}

// DBDefinition returns the connection as a models.DBDefinition.
func (c Connection) DBDefinition() *models.DBDefinition {
	return &models.DBDefinition{
		DriverClass: c.DriverClass,
		URL:         c.URL,
		Username:    c.UserID,
		Password:    c.Password,
	}
}

// Plugin adds behaviour to generated artifacts. The mapper plugin makes every
// generated mapper interface extend the types listed in its "mappers" property.
type Plugin struct {
	Type       string
	Properties map[string]string
}

// Target is where one kind of artifact is written: Project is a source root,
// Package the package below it.
type Target struct {
	Project string
	Package string
}

// ClientTarget is the Target of mapper interfaces plus the client style.
type ClientTarget struct {
	Target
	Type string
}

// GeneratedKey describes how the primary key value is produced on insert.
type GeneratedKey struct {
	Column   string
	Dialect  string
	Identity bool
}

// Table selects the table to generate for.
type Table struct {
	// Name may be schema-qualified.
	Name string
	// DomainObjectName overrides the derived model name when set.
	DomainObjectName string
	GeneratedKey     *GeneratedKey
}

// Config fully describes one generation. Build it with a ContextConfig and
// ForTable; a Config is not modified after that.
type Config struct {
	Context    Context
	Connection Connection
	Plugins    []Plugin
	Model      Target
	SQLMap     Target
	Client     ClientTarget
	Table      Table
	Overwrite  bool
}

// ContextConfig is the table-independent part of a Config, built once per run
// and shared by every table of that run.
type ContextConfig struct {
	Context    Context
	Connection Connection
	Plugins    []Plugin
	Model      Target
	SQLMap     Target
	Client     ClientTarget
	Overwrite  bool
}

// ForTable returns a Config for table. The receiver is not modified and the
// returned Config shares no mutable state with it.
func (c ContextConfig) ForTable(table Table) Config {
	plugins := make([]Plugin, len(c.Plugins))
	for i, p := range c.Plugins {
		plugins[i] = Plugin{Type: p.Type, Properties: maps.Clone(p.Properties)}
	}
	if table.GeneratedKey != nil {
		key := *table.GeneratedKey
		table.GeneratedKey = &key
	}
	return Config{
		Context:    c.Context,
		Connection: c.Connection,
		Plugins:    plugins,
		Model:      c.Model,
		SQLMap:     c.SQLMap,
		Client:     c.Client,
		Table:      table,
		Overwrite:  c.Overwrite,
	}
}

// MapperReference returns the "mappers" property of the mapper plugin, or "".
func (c Config) MapperReference() string {
	for _, p := range c.Plugins {
		if p.Type == PluginTypeMapper {
			return p.Properties[PluginPropertyMapper]
		}
	}
	return ""
}

// Validate reports every missing setting.
func (c Config) Validate() error {
	var errs []error
	require := func(value, name string) {
		if value == "" {
			errs = append(errs, fmt.Errorf("%s is required", name))
		}
	}
	require(c.Context.ID, "context id")
	require(c.Context.TargetRuntime, "target runtime")
	require(c.Connection.DriverClass, "connection driver class")
	require(c.Connection.URL, "connection url")
	require(c.Connection.UserID, "connection user")
	require(c.Model.Project, "model target project")
	require(c.Model.Package, "model target package")
	require(c.SQLMap.Project, "sql map target project")
	require(c.SQLMap.Package, "sql map target package")
	require(c.Client.Project, "client target project")
	require(c.Client.Package, "client target package")
	require(c.Table.Name, "table name")
	if c.Client.Type != ClientTypeXMLMapper {
		errs = append(errs, fmt.Errorf("unsupported client type %q", c.Client.Type))
	}
	for _, p := range c.Plugins {
		if p.Type == PluginTypeMapper && p.Properties[PluginPropertyMapper] == "" {
			errs = append(errs, errors.New("mapper plugin requires the mappers property"))
		}
	}
	if name := c.Table.DomainObjectName; name != "" {
		if err := naming.ValidateModelName(name); err != nil {
			errs = append(errs, err)
		}
	}
	if k := c.Table.GeneratedKey; k != nil && k.Column == "" {
		errs = append(errs, errors.New("generated key column is required"))
	}
	return errors.Join(errs...)
}

// Delimiters returns the identifier quote pair for a dialect.
func Delimiters(dialect string) (begin, end string) {
	switch dialect {
	case models.DialectPostgres:
		return `"`, `"`
	case models.DialectSQLServer:
		return "[", "]"
	default:
		return "`", "`"
	}
}

// KeyDialect returns the generated-key dialect name for a database dialect.
func KeyDialect(dialect string) string {
	switch dialect {
	case models.DialectPostgres:
		return "Postgres"
	case models.DialectSQLServer:
		return "SqlServer"
	default:
		return "Mysql"
	}
}
