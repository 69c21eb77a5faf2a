package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"github.com/jengzang/chokepoint-planner/internal/logging"
)

// Migrations holds the schema migrations shipped with the binary, named
// NNN_name.up.sql and NNN_name.down.sql.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrateUp applies every pending migration from the migrations directory of
// fsys. A database already at the latest version is not an error.
func MigrateUp(db *sql.DB, fsys fs.FS, logger *zap.Logger) error {
	m, err := newMigrate(db, fsys, logger)
	if err != nil {
		return err
	}
	// m is not closed: that would close db.

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// MigrateVersion returns the current schema version and dirty state. A
// database without applied migrations reports 0, false.
func MigrateVersion(db *sql.DB, fsys fs.FS) (version uint, dirty bool, err error) {
	m, err := newMigrate(db, fsys, nil)
	if err != nil {
		return 0, false, err
	}

	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func newMigrate(db *sql.DB, fsys fs.FS, logger *zap.Logger) (*migrate.Migrate, error) {
	src, err := iofs.New(fsys, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = &migrateLogger{logger: logging.OrNop(logger).Sugar()}
	return m, nil
}

// migrateLogger implements migrate.Logger on zap.
type migrateLogger struct {
	logger *zap.SugaredLogger
}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Infof(strings.TrimSuffix(format, "\n"), v...)
}

func (l *migrateLogger) Verbose() bool {
	return false
}
