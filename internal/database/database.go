package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/lijeuki/PM-dashboard/internal/config"
	_ "modernc.org/sqlite"
)

// Admin is the read-write store handle. Repositories that mutate data take
// an Admin; nothing else should.
type Admin struct {
	*sql.DB
}

// ReadOnly is a capability-restricted store handle backed by a separate
// connection with the query_only pragma set. Aggregation sources, the
// usage builder, and diagnostics take a ReadOnly so a bug in report code
// can never write.
type ReadOnly struct {
	*sql.DB
}

// Open opens the SQLite database twice: once read-write and once
// query-only. The write connection is limited to a single open connection
// so concurrent request handlers serialize on it instead of hitting
// SQLITE_BUSY.
func Open(cfg config.Database) (Admin, ReadOnly, error) {
	dsn := sqliteDSN(cfg.Path)

	rw, err := sql.Open("sqlite", dsn)
	if err != nil {
		return Admin{}, ReadOnly{}, fmt.Errorf("failed to open database: %w", err)
	}
	rw.SetMaxOpenConns(1)
	if err := rw.Ping(); err != nil {
		return Admin{}, ReadOnly{}, fmt.Errorf("failed to ping database: %w", err)
	}

	ro, err := sql.Open("sqlite", dsn+"&_pragma=query_only(1)")
	if err != nil {
		rw.Close()
		return Admin{}, ReadOnly{}, fmt.Errorf("failed to open read-only database: %w", err)
	}
	if err := ro.Ping(); err != nil {
		rw.Close()
		return Admin{}, ReadOnly{}, fmt.Errorf("failed to ping read-only database: %w", err)
	}

	return Admin{rw}, ReadOnly{ro}, nil
}

// sqliteDSN builds the DSN both store handles and the migration runner
// open, so they always agree on the pragma set.
func sqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
}

// Migrate runs database migrations using golang-migrate against the configured DB.
// The database is opened directly and handed to the driver instead of going
// through a sqlite:// URL, which cannot represent paths containing slashes.
func Migrate(cfg config.Database) error {
	migrationsPath, err := findMigrationsPath()
	if err != nil {
		return fmt.Errorf("failed to locate migrations directory: %w", err)
	}

	db, err := sql.Open("sqlite", sqliteDSN(cfg.Path))
	if err != nil {
		return fmt.Errorf("failed to open database for migration: %w", err)
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "sqlite", driver)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}

	return nil
}

// findMigrationsPath searches upward from the current working directory for a "migrations" directory
// and returns its absolute path. This makes migrations resolution robust in tests where the working
// directory can be different from the project root.
func findMigrationsPath() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, "migrations")
		info, err := os.Stat(candidate)
		if err == nil && info.IsDir() {
			abs, err := filepath.Abs(candidate)
			if err != nil {
				return "", err
			}
			return abs, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("migrations directory not found")
}
