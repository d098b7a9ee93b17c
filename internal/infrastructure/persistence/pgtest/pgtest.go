// Package pgtest starts a throwaway PostgreSQL container with the schema
// migrations applied. Tests using it need a working Docker daemon.
package pgtest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"

	"github.com/salesreport/backend/internal/infrastructure/migration"
	"github.com/salesreport/backend/internal/infrastructure/persistence"
	"github.com/salesreport/backend/migrations"
)

const image = "postgres:16-alpine"

// New runs a fresh container, migrates it to the latest version and returns
// an open Database. The container is terminated on test cleanup.
func New(t *testing.T) *persistence.Database {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, image,
		tcpostgres.WithDatabase("salesreport_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	Migrate(t, dsn)

	db, err := persistence.Open(gormpostgres.Open(dsn))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Migrate applies the embedded migrations over a dedicated connection,
// since closing the migrator also closes its database handle.
func Migrate(t *testing.T, dsn string) {
	t.Helper()

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer sqlDB.Close()

	m, err := migration.NewFromFS(sqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err, "load migrations")
	defer m.Close()
	require.NoError(t, m.Up(), "apply migrations")
}
