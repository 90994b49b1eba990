package datasource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
)

func TestParseJDBCURL_MySQL(t *testing.T) {
	cfg, err := ParseJDBCURL("jdbc:mysql://db.internal:3307/shop?useSSL=false&characterEncoding=utf8")
	require.NoError(t, err)

	assert.Equal(t, models.DialectMySQL, cfg.Dialect)
	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 3307, cfg.Port)
	assert.Equal(t, "shop", cfg.Database)
	assert.Equal(t, "false", cfg.Params["useSSL"])

	v, ok := cfg.Param("CHARACTERENCODING")
	assert.True(t, ok)
	assert.Equal(t, "utf8", v)
}

func TestParseJDBCURL_DefaultPorts(t *testing.T) {
	tests := []struct {
		url  string
		port int
	}{
		{"jdbc:mysql://localhost/shop", 3306},
		{"jdbc:postgresql://localhost/shop", 5432},
		{"jdbc:sqlserver://localhost;databaseName=shop", 1433},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			cfg, err := ParseJDBCURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.port, cfg.Port)
		})
	}
}

func TestParseJDBCURL_Postgres(t *testing.T) {
	cfg, err := ParseJDBCURL("jdbc:postgresql://localhost:5433/shop?sslmode=disable")
	require.NoError(t, err)

	assert.Equal(t, models.DialectPostgres, cfg.Dialect)
	assert.Equal(t, 5433, cfg.Port)
	assert.Equal(t, "shop", cfg.Database)
	assert.Equal(t, "disable", cfg.Params["sslmode"])
}

func TestParseJDBCURL_SQLServer(t *testing.T) {
	cfg, err := ParseJDBCURL("jdbc:sqlserver://sql.example.com:1444;databaseName=shop;encrypt=false;trustServerCertificate=true")
	require.NoError(t, err)

	assert.Equal(t, models.DialectSQLServer, cfg.Dialect)
	assert.Equal(t, "sql.example.com", cfg.Host)
	assert.Equal(t, 1444, cfg.Port)
	assert.Equal(t, "shop", cfg.Database)
	v, ok := cfg.Param("encrypt")
	assert.True(t, ok)
	assert.Equal(t, "false", v)
}

func TestParseJDBCURL_Errors(t *testing.T) {
	for _, url := range []string{
		"",
		"jdbc:oracle:thin:@localhost:1521:xe",
		"jdbc:mysql://localhost:3306/",
		"jdbc:mysql://localhost:abc/shop",
		"jdbc:sqlserver://localhost:1433",
		"jdbc:sqlserver://;databaseName=shop",
	} {
		t.Run(url, func(t *testing.T) {
			_, err := ParseJDBCURL(url)
			assert.Error(t, err)
		})
	}
}

func TestParseConnection(t *testing.T) {
	cfg, err := ParseConnection(&models.DBDefinition{
		DriverClass: "org.postgresql.Driver",
		URL:         "jdbc:postgresql://localhost:5432/shop",
		Username:    "scaffold",
		Password:    "p@ss",
	})
	require.NoError(t, err)
	assert.Equal(t, "scaffold", cfg.User)
	assert.Equal(t, "p@ss", cfg.Password)

	_, err = ParseConnection(nil)
	assert.ErrorIs(t, err, apperrors.ErrMissingDatabaseDefinition)
}

func TestTableSchema_Lookups(t *testing.T) {
	schema := &TableSchema{Columns: []ColumnMetadata{
		{ColumnName: "name"},
		{ColumnName: "id", IsPrimaryKey: true},
	}}

	require.NotNil(t, schema.PrimaryKey())
	assert.Equal(t, "id", schema.PrimaryKey().ColumnName)
	assert.NotNil(t, schema.Column("name"))
	assert.Nil(t, schema.Column("missing"))
	assert.Nil(t, (&TableSchema{}).PrimaryKey())
}
