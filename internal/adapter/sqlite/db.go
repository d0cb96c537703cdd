// Package sqlite opens the SQLite article store shipped with desktop builds.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver

	"github.com/moheuddin/itms/internal/config"
)

// DB is a *sql.DB whose Ping takes a context, matching the pgx pool.
type DB struct {
	*sql.DB
}

// Open opens the database named by cfg.DSN (a file path or file: URI),
// applies the busy timeout and pings it before returning.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	db, err := sql.Open("sqlite3", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(int(cfg.MaxConns))
	}
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &DB{DB: db}, nil
}

// Ping verifies the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.PingContext(ctx)
}

// DSN appends the driver options derived from cfg to cfg.DSN.
func DSN(cfg config.DatabaseConfig) string {
	dsn := cfg.DSN
	if cfg.BusyTimeout <= 0 || strings.Contains(dsn, "_busy_timeout=") {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d", dsn, sep, cfg.BusyTimeout.Milliseconds())
}
