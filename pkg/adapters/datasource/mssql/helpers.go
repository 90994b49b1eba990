package mssql

import "strings"

const defaultSchema = "dbo"

// qualifiedTable is a table name resolved against a SQL Server schema.
type qualifiedTable struct {
	Schema string
	Name   string
}

// resolveTable returns schemaName.tableName when a schema is given. Otherwise it
// reads the schema from "schema.table" or "[schema].[table]", falling back to dbo.
// For a three-part name the database part is ignored.
func resolveTable(schemaName, tableName string) qualifiedTable {
	if schemaName != "" {
		return qualifiedTable{Schema: schemaName, Name: tableName}
	}
	parts := strings.Split(strings.NewReplacer("[", "", "]", "").Replace(tableName), ".")
	if n := len(parts); n >= 2 {
		return qualifiedTable{Schema: parts[n-2], Name: parts[n-1]}
	}
	return qualifiedTable{Schema: defaultSchema, Name: parts[0]}
}

// String renders the name the way QUOTENAME would: [schema].[table] with ]
// doubled inside each part.
func (q qualifiedTable) String() string {
	return bracket(q.Schema) + "." + bracket(q.Name)
}

func bracket(identifier string) string {
	return "[" + strings.ReplaceAll(identifier, "]", "]]") + "]"
}
