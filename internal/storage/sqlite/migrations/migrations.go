// Package migrations holds the SQLite schema of the schedule store and applies it
// using golang-migrate with the SQL files embedded in the binary.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/slok/fourd/internal/log"
)

//go:embed sql/*.sql
var schemaFS embed.FS

const (
	sourceName = "schedules-schema"
	dbName     = "sqlite3"
)

// Migrator keeps the schedule store schema up to date.
type Migrator struct {
	db     *sql.DB
	logger log.Logger
}

// NewMigrator returns a migrator for the schedule store database.
func NewMigrator(db *sql.DB, logger log.Logger) (*Migrator, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	if logger == nil {
		logger = log.Noop
	}

	return &Migrator{
		db:     db,
		logger: logger.WithValues(log.Kv{"svc": "migrations.Migrator"}),
	}, nil
}

// Up applies the pending schema versions. An already up to date schema is not an error.
func (m *Migrator) Up(ctx context.Context) error {
	return m.run(ctx, "apply", func(mg *migrate.Migrate) error { return mg.Up() })
}

// Down drops every schema version, used by tests and store resets.
func (m *Migrator) Down(ctx context.Context) error {
	return m.run(ctx, "revert", func(mg *migrate.Migrate) error { return mg.Down() })
}

// Version returns the applied schema version, 0 when nothing has been applied.
func (m *Migrator) Version(ctx context.Context) (uint, error) {
	var version uint
	err := m.run(ctx, "read version", func(mg *migrate.Migrate) error {
		v, dirty, err := mg.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		if err != nil {
			return err
		}
		if dirty {
			return fmt.Errorf("schema version %d is dirty", v)
		}
		version = v
		return nil
	})

	return version, err
}

func (m *Migrator) run(ctx context.Context, action string, fn func(*migrate.Migrate) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	driver, err := sqlite3.WithInstance(m.db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("could not create sqlite migration driver: %w", err)
	}

	src, err := iofs.New(schemaFS, "sql")
	if err != nil {
		return fmt.Errorf("could not load embedded schema: %w", err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			m.logger.Warningf("Could not close embedded schema source: %s", err)
		}
	}()

	mg, err := migrate.NewWithInstance(sourceName, src, dbName, driver)
	if err != nil {
		return fmt.Errorf("could not prepare schema migrations: %w", err)
	}

	err = fn(mg)
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		m.logger.Debugf("Schema already up to date")
		return nil
	case err != nil:
		return fmt.Errorf("could not %s schema migrations: %w", action, err)
	}

	m.logger.Debugf("Schema migrations %s done", action)
	return nil
}
