package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"exerciseTracker/internal/config"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Store is the process-wide database handle together with the driver it was opened with.
// Queries are written with `?` placeholders; call Rebind before executing them.
type Store struct {
	*sql.DB
	driver string
}

// New wraps an already opened handle. Mostly useful with sqlmock in tests.
func New(d *sql.DB, driver string) *Store {
	return &Store{DB: d, driver: driver}
}

// Driver reports the database/sql driver name ("sqlite3" or "pgx").
func (s *Store) Driver() string { return s.driver }

// Open opens (or creates) a local SQLite database file and ensures the schema exists.
func Open(path string) (*Store, error) {
	return OpenConfig(config.DatabaseConfig{Driver: config.DriverSQLite, Path: path, MaxOpenConns: 10})
}

// OpenConfig opens the configured store, applies driver pragmas and ensures the
// users and exercises tables exist. There is no schema versioning: tables are
// created if missing and otherwise left alone.
func OpenConfig(cfg config.DatabaseConfig) (*Store, error) {
	path := cfg.Path
	if path == "" && cfg.Driver == config.DriverSQLite {
		path = "exercise.db"
	}
	switch cfg.Driver {
	case config.DriverSQLite:
		path = withSQLiteParams(path)
	case config.DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}

	d, err := sql.Open(cfg.Driver, path)
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		d.SetMaxOpenConns(cfg.MaxOpenConns)
		d.SetMaxIdleConns(cfg.MaxOpenConns)
	}
	if cfg.Driver == config.DriverPostgres {
		// SQLite shared-cache memory databases vanish with their last connection,
		// so only recycle connections for the server driver.
		d.SetConnMaxLifetime(3 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.PingContext(ctx); err != nil {
		_ = d.Close()
		return nil, err
	}

	s := New(d, cfg.Driver)
	if cfg.Driver == config.DriverSQLite {
		// journal_mode may not be supported in some contexts (e.g., in-memory). Ignore errors.
		_, _ = d.ExecContext(ctx, `PRAGMA journal_mode=WAL`)
	}
	if err := EnsureSchema(ctx, s); err != nil {
		_ = d.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the tables for the store's driver if they do not exist.
// Running it repeatedly is a no-op.
func EnsureSchema(ctx context.Context, s *Store) error {
	if s == nil || s.DB == nil {
		return errors.New("nil db")
	}
	name := "schema/sqlite.sql"
	if s.driver == config.DriverPostgres {
		name = "schema/postgres.sql"
	}
	text, err := schemaFS.ReadFile(name)
	if err != nil {
		return err
	}
	if _, err := s.ExecContext(ctx, string(text)); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Rebind rewrites `?` placeholders into the driver's native form.
// SQLite queries are returned unchanged; Postgres gets $1, $2, ...
func (s *Store) Rebind(query string) string {
	return sqlx.Rebind(sqlx.BindType(s.driver), query)
}

// withSQLiteParams enables foreign keys and a busy timeout on every pooled
// connection, not only the first one.
func withSQLiteParams(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}
