package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationResult describes the schema state after Migrate.
type MigrationResult struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
	Changed bool `json:"changed"`
}

// Migrate applies every pending embedded migration. It opens its own
// connection from dsn (a postgres:// URL) so the application pool is left
// untouched. Running it on an up-to-date schema is not an error.
func Migrate(dsn string) (MigrationResult, error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return MigrationResult{}, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return MigrationResult{}, fmt.Errorf("failed to initialise migrator: %w", err)
	}
	defer m.Close()

	var result MigrationResult
	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
	case err != nil:
		return MigrationResult{}, fmt.Errorf("failed to apply migrations: %w", err)
	default:
		result.Changed = true
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return MigrationResult{}, fmt.Errorf("failed to read schema version: %w", err)
	}
	result.Version = version
	result.Dirty = dirty
	return result, nil
}
