package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/adapters/datasource"
)

// DescribeTable returns the columns of a table in ordinal order. In MySQL the
// schema is the database, so an empty schemaName means the connected database.
func (a *Adapter) DescribeTable(ctx context.Context, schemaName, tableName string) (*datasource.TableSchema, error) {
	if schemaName == "" {
		schemaName = a.config.Database
	}

	const query = `
		SELECT
			column_name,
			data_type,
			is_nullable = 'YES',
			column_key = 'PRI',
			extra LIKE '%auto_increment%',
			ordinal_position,
			column_default,
			column_comment
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?
		ORDER BY ordinal_position
	`

	rows, err := a.db.QueryContext(ctx, query, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	schema := &datasource.TableSchema{SchemaName: schemaName, TableName: tableName}
	for rows.Next() {
		var (
			c            datasource.ColumnMetadata
			defaultValue sql.NullString
		)
		if err := rows.Scan(&c.ColumnName, &c.DataType, &c.IsNullable, &c.IsPrimaryKey,
			&c.IsAutoIncrement, &c.OrdinalPosition, &defaultValue, &c.Comment); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		c.DataType = strings.ToLower(c.DataType)
		if defaultValue.Valid {
			c.DefaultValue = &defaultValue.String
		}
		schema.Columns = append(schema.Columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}

	if len(schema.Columns) == 0 {
		return nil, fmt.Errorf("%s.%s: %w", schemaName, tableName, datasource.ErrTableNotFound)
	}

	const commentQuery = `
		SELECT table_comment FROM information_schema.tables
		WHERE table_schema = ? AND table_name = ?
	`
	var comment string
	err = a.db.QueryRowContext(ctx, commentQuery, schemaName, tableName).Scan(&comment)
	switch {
	case err == nil:
		schema.Comment = comment
	case !errors.Is(err, sql.ErrNoRows):
		a.logger.Warn("Failed to read table comment",
			zap.String("table", schemaName+"."+tableName),
			zap.Error(err))
	}

	return schema, nil
}
