package datasource

import (
	"context"
	"errors"
)

// ErrTableNotFound is returned by DescribeTable when the table does not exist
// or is not visible to the connecting user.
var ErrTableNotFound = errors.New("table not found")

// ConnectionTester tests database connectivity.
// Each implementation owns its connection and must be closed when done.
type ConnectionTester interface {
	// TestConnection verifies the database is reachable with valid credentials.
	TestConnection(ctx context.Context) error

	// Close releases the database connection.
	Close() error
}

// Introspector reads the structure of a single table for code generation.
type Introspector interface {
	ConnectionTester

	// DescribeTable returns the columns of schemaName.tableName in ordinal order.
	// An empty schemaName means the connection's default schema.
	// Returns ErrTableNotFound when the table has no visible columns.
	DescribeTable(ctx context.Context, schemaName, tableName string) (*TableSchema, error)
}
