package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/apperrors"
)

// Dialect identifiers derived from a JDBC URL.
const (
	DialectMySQL     = "mysql"
	DialectPostgres  = "postgres"
	DialectSQLServer = "sqlserver"
)

// DBDefinition describes the database whose tables are scaffolded.
// The URL is JDBC style because it is also written verbatim into the generated
// application configuration.
type DBDefinition struct {
	DriverClass string `json:"driver_class" yaml:"driver_class"`
	URL         string `json:"url" yaml:"url"`
	Username    string `json:"username" yaml:"username"`
	Password    string `json:"password" yaml:"password"`
}

// Validate reports every missing connection field. No field has a default.
func (d *DBDefinition) Validate() error {
	if d == nil {
		return apperrors.ErrMissingDatabaseDefinition
	}
	var errs []error
	if strings.TrimSpace(d.DriverClass) == "" {
		errs = append(errs, errors.New("driver_class is required"))
	}
	if strings.TrimSpace(d.URL) == "" {
		errs = append(errs, errors.New("url is required"))
	}
	if strings.TrimSpace(d.Username) == "" {
		errs = append(errs, errors.New("username is required"))
	}
	if d.Password == "" {
		errs = append(errs, errors.New("password is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", apperrors.ErrMissingDatabaseDefinition, errors.Join(errs...))
	}
	return nil
}

// Dialect returns the database family named by the JDBC URL, or "" when unknown.
func (d *DBDefinition) Dialect() string {
	url := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(d.URL), "jdbc:"))
	switch {
	case strings.HasPrefix(url, "mysql:"), strings.HasPrefix(url, "mariadb:"):
		return DialectMySQL
	case strings.HasPrefix(url, "postgresql:"), strings.HasPrefix(url, "postgres:"):
		return DialectPostgres
	case strings.HasPrefix(url, "sqlserver:"):
		return DialectSQLServer
	default:
		return ""
	}
}

// Masked returns a copy safe to echo back to clients.
func (d DBDefinition) Masked() DBDefinition {
	if d.Password != "" {
		d.Password = "********"
	}
	return d
}
