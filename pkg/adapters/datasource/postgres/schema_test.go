//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/testhelpers"
)

func setupAdapter(t *testing.T) *Adapter {
	t.Helper()

	testDB := testhelpers.GetTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := &Config{
		Host:     testDB.Host,
		Port:     testDB.Port,
		User:     testhelpers.TestDBUser,
		Password: testhelpers.TestDBPassword,
		Database: testhelpers.TestDBName,
		Schema:   DefaultSchema(),
		SSLMode:  "disable",
	}

	adapter, err := NewAdapter(ctx, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}
	t.Cleanup(func() {
		adapter.Close()
	})
	return adapter
}

func TestAdapter_TestConnection(t *testing.T) {
	adapter := setupAdapter(t)

	if err := adapter.TestConnection(context.Background()); err != nil {
		t.Fatalf("expected healthy connection, got %v", err)
	}
}

func TestAdapter_DescribeTable(t *testing.T) {
	adapter := setupAdapter(t)

	schema, err := adapter.DescribeTable(context.Background(), "", "t_user_detail")
	if err != nil {
		t.Fatalf("describe table: %v", err)
	}

	if schema.SchemaName != "public" {
		t.Errorf("expected schema public, got %s", schema.SchemaName)
	}
	if schema.Comment != "user profile details" {
		t.Errorf("unexpected table comment %q", schema.Comment)
	}

	pk := schema.PrimaryKey()
	if pk == nil || pk.ColumnName != "id" {
		t.Fatalf("expected primary key id, got %+v", pk)
	}
	if !pk.IsAutoIncrement {
		t.Error("expected id to be auto-increment")
	}

	nickname := schema.Column("nick_name")
	if nickname == nil {
		t.Fatal("expected nick_name column")
	}
	if nickname.DataType != "character varying" {
		t.Errorf("unexpected data type %s", nickname.DataType)
	}
	if !nickname.IsNullable {
		t.Error("expected nick_name to be nullable")
	}
}

func TestAdapter_DescribeTable_Missing(t *testing.T) {
	adapter := setupAdapter(t)

	_, err := adapter.DescribeTable(context.Background(), "", "t_does_not_exist")
	if !errors.Is(err, datasource.ErrTableNotFound) {
		t.Fatalf("expected ErrTableNotFound, got %v", err)
	}
}
