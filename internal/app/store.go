package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/moheuddin/itms/internal/adapter/postgres"
	pgarticle "github.com/moheuddin/itms/internal/adapter/postgres/article"
	"github.com/moheuddin/itms/internal/adapter/sqlite"
	sqlitearticle "github.com/moheuddin/itms/internal/adapter/sqlite/article"
	"github.com/moheuddin/itms/internal/config"
	"github.com/moheuddin/itms/internal/domain"
)

// ArticleStore is the article repository both drivers implement.
type ArticleStore interface {
	SuggestTitles(ctx context.Context, term string, limit int) ([]string, error)
	Sections(ctx context.Context, category string) ([]string, error)
	Titles(ctx context.Context, category string) ([]string, error)
	SectionFacets(ctx context.Context, section, category string) (domain.Facets, error)
	ListBySections(ctx context.Context, category string, sections []string) ([]domain.Article, error)
	CreateBatch(ctx context.Context, articles []domain.Article) (int, error)
}

var (
	_ ArticleStore = (*pgarticle.Repo)(nil)
	_ ArticleStore = (*sqlitearticle.Repo)(nil)
)

// Store is an open article store of the configured driver.
type Store struct {
	Driver   string
	Articles ArticleStore

	pool *pgxpool.Pool
	db   *sqlite.DB
}

// OpenStore connects to the store named by cfg.Driver.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(pool), nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// NewPostgresStore wraps an open pool. Close closes the pool.
func NewPostgresStore(pool *pgxpool.Pool) *Store {
	return &Store{Driver: config.DriverPostgres, Articles: pgarticle.New(pool), pool: pool}
}

// NewSQLiteStore wraps an open SQLite database. Close closes it.
func NewSQLiteStore(db *sqlite.DB) *Store {
	return &Store{Driver: config.DriverSQLite, Articles: sqlitearticle.New(db.DB), db: db}
}

// Ping verifies the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.pool != nil {
		return s.pool.Ping(ctx)
	}
	return s.db.Ping(ctx)
}

// SQLDB returns a database/sql handle on the store for goose. Closing it
// leaves a postgres pool open.
func (s *Store) SQLDB() *sql.DB {
	if s.pool != nil {
		return stdlib.OpenDBFromPool(s.pool)
	}
	return s.db.DB
}

// Close releases the store's connections.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
		return
	}
	_ = s.db.Close()
}
