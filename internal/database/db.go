// Package database provides the optional event journal: a single-connection
// SQLite database, its embedded schema migrations, and the Store on top.
package database

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"github.com/edgard/phrasebot/migrations"

	_ "modernc.org/sqlite" //revive:disable:blank-imports
)

// busyTimeout bounds how long a journal write waits on a locked file.
const busyTimeout = 5 * time.Second

// timestampNow is the clock used for created_at columns.
var timestampNow = func() time.Time { return time.Now().UTC() }

// Open opens the journal at path and brings its schema up to date. The pool
// holds exactly one connection, which keeps the session pragmas alive and
// serializes writes.
func Open(path string, logger *slog.Logger) (*sqlx.DB, error) {
	if path == "" {
		return nil, errors.New("journal path cannot be empty")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log := logger.With("component", "journal", "path", path)

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragma := fmt.Sprintf("PRAGMA busy_timeout = %d;", busyTimeout.Milliseconds())
	if _, err := db.Exec(pragma); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure journal: %w", err)
	}

	version, err := migrateUp(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info("Journal opened", "schema_version", version)
	return db, nil
}

// migrateUp applies the embedded migrations and returns the resulting
// schema version.
func migrateUp(db *sqlx.DB) (uint, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return 0, fmt.Errorf("failed to load journal migrations: %w", err)
	}
	driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{DatabaseName: "journal"})
	if err != nil {
		return 0, fmt.Errorf("failed to create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return 0, fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("failed to migrate journal: %w", err)
	}

	version, _, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("failed to read journal schema version: %w", err)
	}
	return version, nil
}

// Close closes the journal, logging rather than returning a failure since it
// only runs on shutdown.
func Close(db *sqlx.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := db.Close(); err != nil {
		logger.Error("Failed to close journal", "error", err)
	}
}
