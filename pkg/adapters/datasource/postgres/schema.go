package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/adapters/datasource"
)

// qualifiedTableName returns a properly quoted table reference.
// If schemaName is empty, returns just the quoted table name.
func qualifiedTableName(schemaName, tableName string) string {
	quotedTable := pgx.Identifier{tableName}.Sanitize()
	if schemaName == "" {
		return quotedTable
	}
	quotedSchema := pgx.Identifier{schemaName}.Sanitize()
	return quotedSchema + "." + quotedTable
}

// DescribeTable returns the columns of a table in ordinal order.
// Uses pg_index for primary key detection, which also catches keys created as
// unique indexes by ORMs. Identity columns and serial defaults count as auto-increment.
func (a *Adapter) DescribeTable(ctx context.Context, schemaName, tableName string) (*datasource.TableSchema, error) {
	if schemaName == "" {
		schemaName = a.config.Schema
	}

	const query = `
		SELECT
			c.column_name,
			c.data_type,
			c.is_nullable = 'YES' as is_nullable,
			COALESCE(pk.is_pk, false) as is_primary_key,
			(c.is_identity = 'YES' OR COALESCE(c.column_default, '') LIKE 'nextval(%') as is_auto_increment,
			c.ordinal_position,
			c.column_default,
			COALESCE(col_description(to_regclass($3)::oid, c.ordinal_position::int), '') as comment
		FROM information_schema.columns c
		LEFT JOIN (
			SELECT a.attname as column_name, true as is_pk
			FROM pg_index ix
			JOIN pg_class t ON t.oid = ix.indrelid
			JOIN pg_namespace n ON n.oid = t.relnamespace
			JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)
			WHERE ix.indisprimary = true
			  AND n.nspname = $1
			  AND t.relname = $2
		) pk ON c.column_name = pk.column_name
		WHERE c.table_schema = $1 AND c.table_name = $2
		ORDER BY c.ordinal_position
	`

	qualified := qualifiedTableName(schemaName, tableName)
	rows, err := a.pool.Query(ctx, query, schemaName, tableName, qualified)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	schema := &datasource.TableSchema{SchemaName: schemaName, TableName: tableName}
	for rows.Next() {
		var c datasource.ColumnMetadata
		if err := rows.Scan(&c.ColumnName, &c.DataType, &c.IsNullable, &c.IsPrimaryKey,
			&c.IsAutoIncrement, &c.OrdinalPosition, &c.DefaultValue, &c.Comment); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		schema.Columns = append(schema.Columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}

	if len(schema.Columns) == 0 {
		return nil, fmt.Errorf("%s: %w", qualified, datasource.ErrTableNotFound)
	}

	var comment *string
	if err := a.pool.QueryRow(ctx, "SELECT obj_description(to_regclass($1)::oid, 'pg_class')", qualified).Scan(&comment); err != nil {
		a.logger.Warn("Failed to read table comment",
			zap.String("table", qualified),
			zap.Error(err))
	} else if comment != nil {
		schema.Comment = *comment
	}

	return schema, nil
}
