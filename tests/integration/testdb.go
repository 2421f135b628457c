//go:build integration

// Package integration runs the API and the repositories against a real
// PostgreSQL started with testcontainers, using the embedded migrations.
package integration

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/printdesk/backend/internal/infrastructure/config"
	"github.com/printdesk/backend/internal/infrastructure/migration"
	"github.com/printdesk/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	postgresImage = "postgres:16-alpine"
	testDBName    = "printdesk_test"
	testDBUser    = "postgres"
	testDBPass    = "printdesk123"
)

var (
	sharedMu        sync.Mutex
	sharedContainer *tcpostgres.PostgresContainer
	sharedConfig    *config.DatabaseConfig
)

// TestDB is a connection to the shared, migrated test database
type TestDB struct {
	DB  *gorm.DB
	cfg *config.DatabaseConfig
	t   *testing.T
}

// NewTestDB connects to the shared PostgreSQL container, starting and
// migrating it on first use, and empties every table before returning.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	cfg := sharedDatabase(t)

	logLevel := logger.Silent
	if os.Getenv("TEST_DB_DEBUG") != "" {
		logLevel = logger.Info
	}
	database, err := persistence.Open(cfg, logger.Default.LogMode(logLevel))
	require.NoError(t, err, "Failed to connect to database")
	t.Cleanup(func() {
		_ = database.Close()
	})

	tdb := &TestDB{DB: database.DB, cfg: cfg, t: t}
	tdb.CleanTables()
	return tdb
}

func sharedDatabase(t *testing.T) *config.DatabaseConfig {
	t.Helper()

	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedConfig != nil {
		return sharedConfig
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		postgresImage,
		tcpostgres.WithDatabase(testDBName),
		tcpostgres.WithUsername(testDBUser),
		tcpostgres.WithPassword(testDBPass),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := &config.DatabaseConfig{
		Driver:       persistence.DriverPostgres,
		Host:         host,
		Port:         port.Int(),
		User:         testDBUser,
		Password:     testDBPass,
		DBName:       testDBName,
		SSLMode:      "disable",
		MaxOpenConns: 10,
		MaxIdleConns: 2,
	}
	runMigrations(t, cfg)

	sharedContainer = container
	sharedConfig = cfg
	return cfg
}

// runMigrations applies the embedded schema on its own connection, since
// closing a golang-migrate instance also closes the database it was given
func runMigrations(t *testing.T, cfg *config.DatabaseConfig) {
	t.Helper()

	database, err := persistence.Open(cfg, nil)
	require.NoError(t, err)
	sqlDB, err := database.DB.DB()
	require.NoError(t, err)

	m, err := migration.New(sqlDB, "", zap.NewNop())
	require.NoError(t, err, "Failed to create migrator")
	defer func() {
		_ = m.Close()
	}()

	require.NoError(t, m.Up(), "Failed to run migrations")
}

// CleanTables truncates every application table
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()

	var tables []string
	err := tdb.DB.Raw(`
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public'
		AND tablename != 'schema_migrations'
	`).Scan(&tables).Error
	require.NoError(tdb.t, err, "Failed to list tables")

	for _, table := range tables {
		require.NoError(tdb.t, tdb.DB.Exec("TRUNCATE TABLE "+table+" CASCADE").Error)
	}
}

// TerminateSharedContainer stops the shared container. Call it from TestMain.
func TerminateSharedContainer() {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedContainer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = sharedContainer.Terminate(ctx)
	sharedContainer = nil
	sharedConfig = nil
}
