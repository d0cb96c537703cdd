// Package migrations embeds the goose SQL migrations for every supported
// database driver.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/moheuddin/itms/internal/config"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// For returns the migration files and goose dialect of driver.
func For(driver string) (fs.FS, goose.Dialect, error) {
	var (
		dir     string
		dialect goose.Dialect
	)
	switch driver {
	case config.DriverPostgres:
		dir, dialect = "postgres", goose.DialectPostgres
	case config.DriverSQLite:
		dir, dialect = "sqlite", goose.DialectSQLite3
	default:
		return nil, "", fmt.Errorf("migrations: unsupported driver %q", driver)
	}

	sub, err := fs.Sub(files, dir)
	if err != nil {
		return nil, "", fmt.Errorf("migrations: %w", err)
	}
	return sub, dialect, nil
}

// NewProvider returns a goose provider applying driver's migrations to db.
func NewProvider(db *sql.DB, driver string) (*goose.Provider, error) {
	fsys, dialect, err := For(driver)
	if err != nil {
		return nil, err
	}
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("goose new provider: %w", err)
	}
	return provider, nil
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, driver string) ([]*goose.MigrationResult, error) {
	provider, err := NewProvider(db, driver)
	if err != nil {
		return nil, err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return results, fmt.Errorf("goose up: %w", err)
	}
	return results, nil
}
