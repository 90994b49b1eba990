package postgres

import (
	"fmt"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/adapters/datasource"
)

// Config contains PostgreSQL-specific connection options.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	Schema   string // default schema for unqualified tables
	SSLMode  string // "disable", "require", "verify-ca", "verify-full"
}

// DefaultPort returns the default PostgreSQL port.
func DefaultPort() int {
	return 5432
}

// DefaultSSLMode returns the default SSL mode.
func DefaultSSLMode() string {
	return "require"
}

// DefaultSchema returns the schema used for unqualified table names.
func DefaultSchema() string {
	return "public"
}

// FromConnection creates a Config from a parsed JDBC connection.
// Recognised parameters: sslmode, ssl=false, currentSchema.
func FromConnection(cc *datasource.ConnectionConfig) (*Config, error) {
	cfg := &Config{
		Host:     cc.Host,
		Port:     cc.Port,
		User:     cc.User,
		Password: cc.Password,
		Database: cc.Database,
		Schema:   DefaultSchema(),
		SSLMode:  DefaultSSLMode(),
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort()
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("host is required")
	}
	if cfg.User == "" {
		return nil, fmt.Errorf("user is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("database is required")
	}

	if mode, ok := cc.Param("sslmode"); ok && mode != "" {
		cfg.SSLMode = mode
	} else if ssl, ok := cc.Param("ssl"); ok && ssl == "false" {
		cfg.SSLMode = "disable"
	}
	if schema, ok := cc.Param("currentSchema"); ok && schema != "" {
		cfg.Schema = schema
	}
	return cfg, nil
}
