// Package testhelpers provides utilities for testing ekaya-scaffold components.
package testhelpers

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
)

// Connection settings of the shared test database.
const (
	TestDBImage    = "postgres:16-alpine"
	TestDBName     = "scaffold_test"
	TestDBUser     = "scaffold"
	TestDBPassword = "test_password"
)

// SeedSchema is loaded into the test database once the container is up.
const SeedSchema = `
CREATE TABLE IF NOT EXISTS t_user_detail (
	id          BIGSERIAL PRIMARY KEY,
	user_name   VARCHAR(64) NOT NULL,
	nick_name   VARCHAR(64),
	age         INTEGER,
	balance     NUMERIC(12, 2),
	is_active   BOOLEAN NOT NULL DEFAULT true,
	created_at  TIMESTAMP NOT NULL DEFAULT now()
);
COMMENT ON TABLE t_user_detail IS 'user profile details';
COMMENT ON COLUMN t_user_detail.nick_name IS 'display name';

CREATE TABLE IF NOT EXISTS t_order_item (
	id          INTEGER GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	order_no    VARCHAR(32) NOT NULL,
	quantity    SMALLINT NOT NULL,
	price       DOUBLE PRECISION,
	payload     JSONB,
	ordered_on  DATE
);
`

// TestDB holds a shared test database container and connection pool.
type TestDB struct {
	Container testcontainers.Container
	Pool      *pgxpool.Pool
	ConnStr   string
	Host      string
	Port      int
}

var (
	sharedTestDB     *TestDB
	sharedTestDBOnce sync.Once
	sharedTestDBErr  error
)

// GetTestDB returns a shared PostgreSQL container for integration tests.
// The container is created once, seeded with SeedSchema and reused across all
// tests in the run.
func GetTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedTestDBOnce.Do(func() {
		sharedTestDB, sharedTestDBErr = setupTestDB()
	})

	if sharedTestDBErr != nil {
		t.Fatalf("Failed to setup test database: %v", sharedTestDBErr)
	}

	return sharedTestDB
}

// DBDefinition returns a descriptor pointing at the shared test database.
func (db *TestDB) DBDefinition() *models.DBDefinition {
	return &models.DBDefinition{
		DriverClass: "org.postgresql.Driver",
		URL:         fmt.Sprintf("jdbc:postgresql://%s:%d/%s?sslmode=disable", db.Host, db.Port, TestDBName),
		Username:    TestDBUser,
		Password:    TestDBPassword,
	}
}

func setupTestDB() (*TestDB, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        TestDBImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       TestDBName,
			"POSTGRES_USER":     TestDBUser,
			"POSTGRES_PASSWORD": TestDBPassword,
		},
		// The init process restarts the server once, so the ready line appears twice.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start test container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		TestDBUser, TestDBPassword, host, port.Port(), TestDBName)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection with retry
	for i := 0; i < 10; i++ {
		if err := pool.Ping(ctx); err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}

	if _, err := pool.Exec(ctx, SeedSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to seed test schema: %w", err)
	}

	return &TestDB{
		Container: container,
		Pool:      pool,
		ConnStr:   connStr,
		Host:      host,
		Port:      port.Int(),
	}, nil
}
