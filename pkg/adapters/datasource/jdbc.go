package datasource

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
)

// ConnectionConfig is a JDBC URL broken into the parts the Go drivers need.
type ConnectionConfig struct {
	Dialect  string
	Host     string
	Port     int
	Database string
	User     string
	Password string
	// Params holds URL query parameters (mysql, postgres) or ";key=value"
	// properties (sqlserver). Keys keep their original case.
	Params map[string]string
}

// Param returns the value of key, matched case-insensitively.
func (c *ConnectionConfig) Param(key string) (string, bool) {
	for k, v := range c.Params {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// ParseConnection converts a DBDefinition into a ConnectionConfig.
func ParseConnection(db *models.DBDefinition) (*ConnectionConfig, error) {
	if err := db.Validate(); err != nil {
		return nil, err
	}
	cfg, err := ParseJDBCURL(db.URL)
	if err != nil {
		return nil, err
	}
	cfg.User = db.Username
	cfg.Password = db.Password
	return cfg, nil
}

// ParseJDBCURL parses the JDBC URL forms accepted by the generated projects:
//
//	jdbc:mysql://host:3306/db?useSSL=false
//	jdbc:postgresql://host:5432/db?sslmode=disable
//	jdbc:sqlserver://host:1433;databaseName=db;encrypt=false
func ParseJDBCURL(raw string) (*ConnectionConfig, error) {
	def := &models.DBDefinition{URL: raw}
	dialect := def.Dialect()
	if dialect == "" {
		return nil, fmt.Errorf("unsupported jdbc url %q", raw)
	}

	rest := strings.TrimPrefix(strings.TrimSpace(raw), "jdbc:")
	if dialect == models.DialectSQLServer {
		return parseSQLServer(rest)
	}

	u, err := url.Parse(rest)
	if err != nil {
		return nil, fmt.Errorf("parse jdbc url: %w", err)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("jdbc url %q has no host", raw)
	}
	cfg := &ConnectionConfig{
		Dialect:  dialect,
		Host:     u.Hostname(),
		Port:     defaultPort(dialect),
		Database: strings.TrimPrefix(u.Path, "/"),
		Params:   map[string]string{},
	}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid port %q in jdbc url", p)
		}
		cfg.Port = port
	}
	for key, values := range u.Query() {
		if len(values) > 0 {
			cfg.Params[key] = values[0]
		}
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("jdbc url %q names no database", raw)
	}
	return cfg, nil
}

func parseSQLServer(rest string) (*ConnectionConfig, error) {
	// sqlserver://host[\instance][:port][;prop=value]*
	body := strings.TrimPrefix(rest, "sqlserver://")
	parts := strings.Split(body, ";")
	hostPort := parts[0]

	cfg := &ConnectionConfig{
		Dialect: models.DialectSQLServer,
		Port:    defaultPort(models.DialectSQLServer),
		Params:  map[string]string{},
	}
	host, port, found := strings.Cut(hostPort, ":")
	cfg.Host = host
	if found {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid port %q in jdbc url", port)
		}
		cfg.Port = p
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("jdbc url %q has no host", rest)
	}

	for _, prop := range parts[1:] {
		if prop == "" {
			continue
		}
		key, value, _ := strings.Cut(prop, "=")
		cfg.Params[key] = value
	}
	if db, ok := cfg.Param("databaseName"); ok {
		cfg.Database = db
	} else if db, ok := cfg.Param("database"); ok {
		cfg.Database = db
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("jdbc url %q names no database", rest)
	}
	return cfg, nil
}

func defaultPort(dialect string) int {
	switch dialect {
	case models.DialectPostgres:
		return 5432
	case models.DialectSQLServer:
		return 1433
	default:
		return 3306
	}
}
