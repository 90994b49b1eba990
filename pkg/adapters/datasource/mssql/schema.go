package mssql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/adapters/datasource"
)

// DescribeTable returns the columns of a table in ordinal order. An empty
// schemaName falls back to the schema in the table name, then "dbo".
func (a *Adapter) DescribeTable(ctx context.Context, schemaName, tableName string) (*datasource.TableSchema, error) {
	table := resolveTable(schemaName, tableName)
	schemaName, tableName = table.Schema, table.Name
	qualified := table.String()

	query := `
	SET NOCOUNT ON;
	SELECT
	    c.COLUMN_NAME,
	    c.DATA_TYPE,
	    CASE WHEN c.IS_NULLABLE = 'YES' THEN 1 ELSE 0 END AS is_nullable,
	    CASE WHEN pk.COLUMN_NAME IS NOT NULL THEN 1 ELSE 0 END AS is_primary_key,
	    COALESCE(COLUMNPROPERTY(OBJECT_ID(@p3), c.COLUMN_NAME, 'IsIdentity'), 0) AS is_identity,
	    c.ORDINAL_POSITION,
	    c.COLUMN_DEFAULT,
	    COALESCE(CAST(ep.value AS NVARCHAR(4000)), '') AS comment
	FROM INFORMATION_SCHEMA.COLUMNS c
	LEFT JOIN (
	    SELECT ku.COLUMN_NAME
	    FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
	    JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE ku
	        ON tc.CONSTRAINT_NAME = ku.CONSTRAINT_NAME
	        AND tc.TABLE_SCHEMA = ku.TABLE_SCHEMA
	    WHERE tc.CONSTRAINT_TYPE = 'PRIMARY KEY'
	      AND tc.TABLE_SCHEMA = @p1
	      AND tc.TABLE_NAME = @p2
	) pk ON pk.COLUMN_NAME = c.COLUMN_NAME
	LEFT JOIN sys.extended_properties ep
	    ON ep.major_id = OBJECT_ID(@p3)
	    AND ep.minor_id = COLUMNPROPERTY(OBJECT_ID(@p3), c.COLUMN_NAME, 'ColumnId')
	    AND ep.name = 'MS_Description'
	WHERE c.TABLE_SCHEMA = @p1 AND c.TABLE_NAME = @p2
	ORDER BY c.ORDINAL_POSITION
	`

	rows, err := a.db.QueryContext(ctx, query, schemaName, tableName, qualified)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	schema := &datasource.TableSchema{SchemaName: schemaName, TableName: tableName}
	for rows.Next() {
		var (
			c                               datasource.ColumnMetadata
			nullable, primaryKey, identity int
			defaultValue                    sql.NullString
		)
		if err := rows.Scan(&c.ColumnName, &c.DataType, &nullable, &primaryKey, &identity,
			&c.OrdinalPosition, &defaultValue, &c.Comment); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		c.IsNullable = nullable == 1
		c.IsPrimaryKey = primaryKey == 1
		c.IsAutoIncrement = identity == 1
		if defaultValue.Valid {
			c.DefaultValue = &defaultValue.String
		}
		schema.Columns = append(schema.Columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}

	if len(schema.Columns) == 0 {
		return nil, fmt.Errorf("%s: %w", qualified, datasource.ErrTableNotFound)
	}

	const commentQuery = `
	SELECT CAST(value AS NVARCHAR(4000))
	FROM sys.extended_properties
	WHERE major_id = OBJECT_ID(@p1) AND minor_id = 0 AND name = 'MS_Description'
	`
	var comment string
	err = a.db.QueryRowContext(ctx, commentQuery, qualified).Scan(&comment)
	switch {
	case err == nil:
		schema.Comment = comment
	case !errors.Is(err, sql.ErrNoRows):
		a.logger.Warn("Failed to read table comment",
			zap.String("table", qualified),
			zap.Error(err))
	}

	return schema, nil
}
