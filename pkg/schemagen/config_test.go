package schemagen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
)

func TestContextConfig_ForTableDoesNotShareState(t *testing.T) {
	ctxCfg := ContextConfig{
		Plugins: []Plugin{{Type: PluginTypeMapper, Properties: map[string]string{PluginPropertyMapper: "a.Mapper"}}},
	}
	key := &GeneratedKey{Column: "id"}

	first := ctxCfg.ForTable(Table{Name: "t_a", GeneratedKey: key})
	first.Plugins[0].Properties[PluginPropertyMapper] = "changed"
	first.Table.GeneratedKey.Column = "other"

	second := ctxCfg.ForTable(Table{Name: "t_b", GeneratedKey: key})
	assert.Equal(t, "a.Mapper", second.MapperReference())
	assert.Equal(t, "id", key.Column)
	assert.Equal(t, "t_b", second.Table.Name)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, testConfig(t).Validate())

	cfg := testConfig(t)
	cfg.Connection.URL = ""
	cfg.Model.Package = ""
	cfg.Plugins[0].Properties = map[string]string{}
	cfg.Table.GeneratedKey.Column = ""
	err := cfg.Validate()
	assert.ErrorContains(t, err, "connection url is required")
	assert.ErrorContains(t, err, "model target package is required")
	assert.ErrorContains(t, err, "mapper plugin requires the mappers property")
	assert.ErrorContains(t, err, "generated key column is required")
}

func TestConfig_ValidateRejectsUnsafeDomainObjectName(t *testing.T) {
	cfg := testConfig(t)
	cfg.Table.DomainObjectName = "../../escaped/Evil"

	err := cfg.Validate()
	assert.ErrorIs(t, err, apperrors.ErrInvalidIdentifier)

	cfg.Table.DomainObjectName = "Member"
	assert.NoError(t, cfg.Validate())
}

func TestDelimitersAndKeyDialect(t *testing.T) {
	tests := []struct {
		dialect    string
		begin, end string
		key        string
	}{
		{models.DialectMySQL, "`", "`", "Mysql"},
		{models.DialectPostgres, `"`, `"`, "Postgres"},
		{models.DialectSQLServer, "[", "]", "SqlServer"},
		{"", "`", "`", "Mysql"},
	}
	for _, tt := range tests {
		begin, end := Delimiters(tt.dialect)
		assert.Equal(t, tt.begin, begin, tt.dialect)
		assert.Equal(t, tt.end, end, tt.dialect)
		assert.Equal(t, tt.key, KeyDialect(tt.dialect), tt.dialect)
	}
}

func TestResolveJavaType(t *testing.T) {
	tests := []struct {
		in   string
		name string
		jdbc string
		ok   bool
	}{
		{"VARCHAR(64)", "String", "VARCHAR", true},
		{"int unsigned", "Integer", "INTEGER", true},
		{"bigint", "Long", "BIGINT", true},
		{"character varying", "String", "VARCHAR", true},
		{"numeric(10,2)", "BigDecimal", "DECIMAL", true},
		{"timestamp without time zone", "Date", "TIMESTAMP", true},
		{"bytea", "byte[]", "LONGVARBINARY", true},
		{"geometry", "Object", "OTHER", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			jt, ok := resolveJavaType(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, jt.Name)
			assert.Equal(t, tt.jdbc, jt.JDBCType)
		})
	}
}
