package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/printdesk/backend/internal/infrastructure/config"
	"github.com/printdesk/backend/internal/infrastructure/logger"
	"github.com/printdesk/backend/internal/infrastructure/migration"
	"github.com/printdesk/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

// schemaCommand runs against a live PostgreSQL schema
type schemaCommand struct {
	usage    string
	needsArg bool
	run      func(m *migration.Migrator, log *zap.Logger, args []string) error
}

var schemaCommands = map[string]schemaCommand{
	"up":   {"up", false, func(m *migration.Migrator, _ *zap.Logger, _ []string) error { return m.Up() }},
	"down": {"down", false, func(m *migration.Migrator, _ *zap.Logger, _ []string) error { return m.Down() }},
	"step": {"step <n>", true, func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		return m.Steps(n)
	}},
	"goto": {"goto <version>", true, func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		v, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return m.GoTo(uint(v))
	}},
	"force": {"force <version>", true, func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return m.Force(v)
	}},
	"version": {"version", false, func(m *migration.Migrator, log *zap.Logger, _ []string) error {
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		log.Info("Current migration version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		return nil
	}},
	"drop": {"drop -confirm", false, func(m *migration.Migrator, _ *zap.Logger, args []string) error {
		if !slices.Contains(args, "-confirm") && !slices.Contains(args, "--confirm") {
			return errors.New("drop needs -confirm")
		}
		return m.Drop()
	}},
}

func main() {
	dir := flag.String("path", "", "Read migrations from this directory instead of the embedded set")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(2)
	}
	command, rest := args[0], args[1:]

	logCfg := logger.DefaultConfig()
	logCfg.Level = *logLevel
	logCfg.TimeFormat = "2006-01-02 15:04:05"
	log, err := logger.New(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if *dir != "" {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			log.Fatal("Failed to resolve migrations path", zap.Error(err))
		}
		*dir = abs
	}

	// create and list only touch files
	switch command {
	case "create":
		runCreate(log, dirOrDefault(*dir), rest)
		return
	case "list":
		runList(log, dirOrDefault(*dir))
		return
	}

	cmd, ok := schemaCommands[command]
	if !ok {
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.Database.Driver == persistence.DriverSQLite {
		runSQLite(log, cfg, command)
		return
	}

	if err := runSchema(log, cfg, *dir, cmd, rest); err != nil {
		log.Fatal("Migration command failed", zap.String("command", command), zap.Error(err))
	}
}

func runSchema(log *zap.Logger, cfg *config.Config, dir string, cmd schemaCommand, args []string) error {
	if cmd.needsArg && len(args) == 0 {
		return fmt.Errorf("usage: migrate %s", cmd.usage)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	m, err := migration.New(db, dir, log)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer m.Close()

	return cmd.run(m, log, args)
}

// runSQLite handles the single file deployment, whose schema follows the models
func runSQLite(log *zap.Logger, cfg *config.Config, command string) {
	if command != "up" {
		log.Fatal("Only 'up' is supported for the sqlite driver", zap.String("command", command))
	}
	db, err := persistence.Open(&cfg.Database, nil)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.AutoMigrate(context.Background(), db.DB, log); err != nil {
		log.Fatal("Schema synchronization failed", zap.Error(err))
	}
	log.Info("SQLite schema synchronized", zap.String("path", cfg.Database.SQLitePath))
}

func runCreate(log *zap.Logger, dir string, args []string) {
	if len(args) == 0 {
		log.Fatal("Usage: migrate create <name> [description]")
	}
	var description string
	if len(args) > 1 {
		description = args[1]
	}
	mf, err := migration.CreateMigration(dir, args[0], description)
	if err != nil {
		log.Fatal("Failed to create migration", zap.Error(err))
	}
	log.Info("Migration created",
		zap.String("version", mf.Version),
		zap.String("up_file", mf.UpPath),
		zap.String("down_file", mf.DownPath))
}

func runList(log *zap.Logger, dir string) {
	list, err := migration.ListMigrations(dir)
	if err != nil {
		log.Fatal("Failed to list migrations", zap.Error(err))
	}
	log.Info("Migrations", zap.String("dir", dir), zap.Int("count", len(list)))
	for _, m := range list {
		if m.HasDown {
			fmt.Printf("  %s\n", m)
		} else {
			fmt.Printf("  %s (no rollback)\n", m)
		}
	}
}

func dirOrDefault(path string) string {
	if path != "" {
		return path
	}
	return defaultMigrationsDir
}

func printUsage() {
	fmt.Fprint(os.Stderr, `PrintDesk schema migrations

Usage: migrate [-path dir] [-log-level level] <command> [args]

PostgreSQL:
  up                    apply pending migrations
  down                  roll back every migration
  step <n>              apply n migrations, negative rolls back
  goto <version>        move to version
  version               print the applied version
  force <version>       mark version applied without running it
  drop -confirm         drop every table

Files:
  create <name> [desc]  write the next numbered up/down pair
  list                  list the migration files

Without -path the migrations built into the binary are used; create and
list default to ./migrations. With PRINTDESK_DATABASE_DRIVER=sqlite only
'up' is available and builds the schema from the models.

Connection settings come from the PRINTDESK_DATABASE_* variables or a .env file.
`)
}
