//go:build integration

package testhelpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestDB_SeededTables(t *testing.T) {
	testDB := GetTestDB(t)

	rows, err := testDB.Pool.Query(context.Background(), `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name LIKE 't\_%'
		ORDER BY table_name`)
	require.NoError(t, err)
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		tables = append(tables, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"t_order_item", "t_user_detail"}, tables)
}

func TestTestDB_DBDefinition(t *testing.T) {
	def := GetTestDB(t).DBDefinition()

	require.NoError(t, def.Validate())
	assert.Equal(t, "postgres", def.Dialect())
	assert.Contains(t, def.URL, TestDBName)
}
