package datasource

// TableSchema is the introspected shape of one table.
type TableSchema struct {
	SchemaName string
	TableName  string
	Comment    string
	Columns    []ColumnMetadata
}

// ColumnMetadata represents a discovered database column.
type ColumnMetadata struct {
	ColumnName      string
	DataType        string
	IsNullable      bool
	IsPrimaryKey    bool
	IsAutoIncrement bool
	OrdinalPosition int
	DefaultValue    *string
	Comment         string
}

// PrimaryKey returns the first primary key column, or nil.
func (t *TableSchema) PrimaryKey() *ColumnMetadata {
	for i := range t.Columns {
		if t.Columns[i].IsPrimaryKey {
			return &t.Columns[i]
		}
	}
	return nil
}

// Column returns the column named name, or nil.
func (t *TableSchema) Column(name string) *ColumnMetadata {
	for i := range t.Columns {
		if t.Columns[i].ColumnName == name {
			return &t.Columns[i]
		}
	}
	return nil
}
