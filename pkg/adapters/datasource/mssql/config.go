package mssql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/adapters/datasource"
)

// Config contains SQL Server-specific connection options.
// Only SQL authentication is supported; credentials come from the JDBC descriptor.
type Config struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string

	Encrypt                bool
	TrustServerCertificate bool
	ConnectionTimeout      int
}

// DefaultPort returns the default SQL Server port.
func DefaultPort() int {
	return 1433
}

// DefaultConnectionTimeout returns the default connection timeout in seconds.
func DefaultConnectionTimeout() int {
	return 30
}

// FromConnection creates a Config from a parsed JDBC connection. Recognised
// properties: encrypt, trustServerCertificate, loginTimeout.
func FromConnection(cc *datasource.ConnectionConfig) (*Config, error) {
	cfg := &Config{
		Host:              cc.Host,
		Port:              cc.Port,
		Database:          cc.Database,
		Username:          cc.User,
		Password:          cc.Password,
		Encrypt:           true,
		ConnectionTimeout: DefaultConnectionTimeout(),
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort()
	}

	if encrypt, ok := cc.Param("encrypt"); ok {
		// "true", "false", "strict"
		cfg.Encrypt = strings.EqualFold(encrypt, "true") || strings.EqualFold(encrypt, "strict")
	}
	if trust, ok := cc.Param("trustServerCertificate"); ok {
		cfg.TrustServerCertificate = strings.EqualFold(trust, "true")
	}
	if timeout, ok := cc.Param("loginTimeout"); ok {
		seconds, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid loginTimeout %q", timeout)
		}
		cfg.ConnectionTimeout = seconds
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the config has every required field.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Database == "" {
		return fmt.Errorf("database is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Username == "" {
		return fmt.Errorf("username is required for SQL authentication")
	}
	return nil
}
