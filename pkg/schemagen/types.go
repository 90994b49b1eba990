package schemagen

import "strings"

// javaType is the Java property type and JDBC type of a column.
type javaType struct {
	Name     string // simple name used in the source
	Import   string // fully qualified import, "" for java.lang types
	JDBCType string
}

var (
	javaString     = javaType{Name: "String", JDBCType: "VARCHAR"}
	javaLongString = javaType{Name: "String", JDBCType: "LONGVARCHAR"}
	javaDate       = javaType{Name: "Date", Import: "java.util.Date", JDBCType: "TIMESTAMP"}
	javaDecimal    = javaType{Name: "BigDecimal", Import: "java.math.BigDecimal", JDBCType: "DECIMAL"}
	javaBytes      = javaType{Name: "byte[]", JDBCType: "LONGVARBINARY"}
	javaObject     = javaType{Name: "Object", JDBCType: "OTHER"}
)

// sqlTypes maps the lower-case data type reported by information_schema in
// MySQL, PostgreSQL and SQL Server to a Java type.
var sqlTypes = map[string]javaType{
	"tinyint":   {Name: "Byte", JDBCType: "TINYINT"},
	"smallint":  {Name: "Short", JDBCType: "SMALLINT"},
	"int2":      {Name: "Short", JDBCType: "SMALLINT"},
	"mediumint": {Name: "Integer", JDBCType: "INTEGER"},
	"int":       {Name: "Integer", JDBCType: "INTEGER"},
	"integer":   {Name: "Integer", JDBCType: "INTEGER"},
	"int4":      {Name: "Integer", JDBCType: "INTEGER"},
	"bigint":    {Name: "Long", JDBCType: "BIGINT"},
	"int8":      {Name: "Long", JDBCType: "BIGINT"},

	"decimal":    javaDecimal,
	"numeric":    javaDecimal,
	"money":      javaDecimal,
	"smallmoney": javaDecimal,

	"float":            {Name: "Double", JDBCType: "DOUBLE"},
	"double":           {Name: "Double", JDBCType: "DOUBLE"},
	"double precision": {Name: "Double", JDBCType: "DOUBLE"},
	"float8":           {Name: "Double", JDBCType: "DOUBLE"},
	"real":             {Name: "Float", JDBCType: "REAL"},
	"float4":           {Name: "Float", JDBCType: "REAL"},

	"bit":     {Name: "Boolean", JDBCType: "BIT"},
	"bool":    {Name: "Boolean", JDBCType: "BOOLEAN"},
	"boolean": {Name: "Boolean", JDBCType: "BOOLEAN"},

	"char":              {Name: "String", JDBCType: "CHAR"},
	"character":         {Name: "String", JDBCType: "CHAR"},
	"nchar":             {Name: "String", JDBCType: "NCHAR"},
	"varchar":           javaString,
	"character varying": javaString,
	"nvarchar":          {Name: "String", JDBCType: "NVARCHAR"},
	"enum":              javaString,
	"set":               javaString,
	"uuid":              {Name: "String", JDBCType: "OTHER"},
	"uniqueidentifier":  {Name: "String", JDBCType: "CHAR"},
	"tinytext":          javaLongString,
	"text":              javaLongString,
	"mediumtext":        javaLongString,
	"longtext":          javaLongString,
	"ntext":             {Name: "String", JDBCType: "LONGNVARCHAR"},
	"json":              javaLongString,
	"jsonb":             {Name: "String", JDBCType: "OTHER"},
	"xml":               javaLongString,

	"date":                        {Name: "Date", Import: "java.util.Date", JDBCType: "DATE"},
	"time":                        {Name: "Date", Import: "java.util.Date", JDBCType: "TIME"},
	"time without time zone":      {Name: "Date", Import: "java.util.Date", JDBCType: "TIME"},
	"year":                        {Name: "Date", Import: "java.util.Date", JDBCType: "DATE"},
	"datetime":                    javaDate,
	"datetime2":                   javaDate,
	"smalldatetime":               javaDate,
	"datetimeoffset":              javaDate,
	"timestamp":                   javaDate,
	"timestamp without time zone": javaDate,
	"timestamp with time zone":    javaDate,

	"binary":     {Name: "byte[]", JDBCType: "BINARY"},
	"varbinary":  {Name: "byte[]", JDBCType: "VARBINARY"},
	"tinyblob":   javaBytes,
	"blob":       javaBytes,
	"mediumblob": javaBytes,
	"longblob":   javaBytes,
	"bytea":      javaBytes,
	"image":      javaBytes,
}

// resolveJavaType maps a column data type. ok is false for unknown types, which
// fall back to Object.
func resolveJavaType(dataType string) (javaType, bool) {
	t := strings.ToLower(strings.TrimSpace(dataType))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	t = strings.TrimSuffix(t, " unsigned")
	if jt, ok := sqlTypes[t]; ok {
		return jt, true
	}
	return javaObject, false
}
