package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/printdesk/backend/internal/infrastructure/persistence/models"
	"github.com/printdesk/backend/migrations"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrator runs the versioned PostgreSQL schema
type Migrator struct {
	m   *migrate.Migrate
	log *zap.Logger
}

// New opens a Migrator on db. With an empty dir the migrations compiled
// into the binary are used.
func New(db *sql.DB, dir string, log *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}
	src, name, err := openSource(dir)
	if err != nil {
		return nil, err
	}
	m, err := migrate.NewWithInstance(name, src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = migrateLogger{log: log.Sugar(), verbose: log.Core().Enabled(zap.DebugLevel)}
	return &Migrator{m: m, log: log}, nil
}

func openSource(dir string) (source.Driver, string, error) {
	if dir == "" {
		src, err := iofs.New(migrations.FS, ".")
		if err != nil {
			return nil, "", fmt.Errorf("failed to open embedded migrations: %w", err)
		}
		return src, "iofs", nil
	}
	src, err := (&file.File{}).Open("file://" + dir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open migrations in %s: %w", dir, err)
	}
	return src, "file", nil
}

// migrateLogger forwards golang-migrate's progress lines to zap
type migrateLogger struct {
	log     *zap.SugaredLogger
	verbose bool
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.log.Infof(strings.TrimRight(format, "\n"), v...)
}

func (l migrateLogger) Verbose() bool { return l.verbose }

func (m *Migrator) Up() error   { return m.apply("up", m.m.Up) }
func (m *Migrator) Down() error { return m.apply("down", m.m.Down) }

// Steps applies n migrations, rolling back when n is negative
func (m *Migrator) Steps(n int) error {
	return m.apply(fmt.Sprintf("step %d", n), func() error { return m.m.Steps(n) })
}

// GoTo migrates up or down to version
func (m *Migrator) GoTo(version uint) error {
	return m.apply(fmt.Sprintf("goto %d", version), func() error { return m.m.Migrate(version) })
}

// apply treats "no change" as success and logs the resulting version
func (m *Migrator) apply(op string, run func() error) error {
	err := run()
	if errors.Is(err, migrate.ErrNoChange) {
		m.log.Info("Schema already at target", zap.String("op", op))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", op, err)
	}
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.log.Info("Migration finished", zap.String("op", op), zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// Version is 0 when nothing was applied
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, dirty, nil
}

// Force records version as applied and clean without running anything.
// Used after a failed migration was repaired by hand.
func (m *Migrator) Force(version int) error {
	m.log.Warn("Forcing migration version", zap.Int("version", version))
	if err := m.m.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}
	return nil
}

// Drop removes every table, including the version table
func (m *Migrator) Drop() error {
	m.log.Warn("Dropping every table")
	if err := m.m.Drop(); err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	return nil
}

// Close also closes the *sql.DB given to New
func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	return errors.Join(srcErr, dbErr)
}

// AutoMigrate builds the schema from the gorm models. SQLite deployments
// use it in place of the versioned migrations.
func AutoMigrate(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	log.Info("Synchronizing schema from models", zap.String("dialect", db.Dialector.Name()))
	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}
