// Package article implements the read-only article repository used by search,
// plus the bulk insert used by the seeder, on PostgreSQL.
package article

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/moheuddin/itms/internal/adapter/articlesql"
	postgres "github.com/moheuddin/itms/internal/adapter/postgres"
	"github.com/moheuddin/itms/internal/domain"
)

// Repo provides article persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Pool
	tx   *postgres.TxManager
	sql  articlesql.Builder
}

// New creates a new article repository.
func New(pool postgres.Pool) *Repo {
	return &Repo{
		pool: pool,
		tx:   postgres.NewTxManager(pool),
		sql:  articlesql.Postgres(),
	}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// SuggestTitles returns up to limit titles containing term as a substring.
func (r *Repo) SuggestTitles(ctx context.Context, term string, limit int) ([]string, error) {
	query, args, err := r.sql.SuggestTitles(term, limit)
	if err != nil {
		return nil, fmt.Errorf("build suggest query: %w", err)
	}
	return r.strings(ctx, "suggest titles", query, args)
}

// Sections returns the distinct sections of category in ascending order.
func (r *Repo) Sections(ctx context.Context, category string) ([]string, error) {
	query, args, err := r.sql.DistinctSections(category)
	if err != nil {
		return nil, fmt.Errorf("build sections query: %w", err)
	}
	return r.strings(ctx, "list sections", query, args)
}

// Titles returns the distinct titles of category in ascending order.
func (r *Repo) Titles(ctx context.Context, category string) ([]string, error) {
	query, args, err := r.sql.DistinctTitles(category)
	if err != nil {
		return nil, fmt.Errorf("build titles query: %w", err)
	}
	return r.strings(ctx, "list titles", query, args)
}

// SectionFacets returns the years and titles filed under section, matching
// the current or the former section number.
func (r *Repo) SectionFacets(ctx context.Context, section, category string) (domain.Facets, error) {
	yearsSQL, yearsArgs, err := r.sql.SectionYears(section, category)
	if err != nil {
		return domain.Facets{}, fmt.Errorf("build years query: %w", err)
	}
	titlesSQL, titlesArgs, err := r.sql.SectionTitles(section, category)
	if err != nil {
		return domain.Facets{}, fmt.Errorf("build titles query: %w", err)
	}

	years, err := r.strings(ctx, "list section years", yearsSQL, yearsArgs)
	if err != nil {
		return domain.Facets{}, err
	}
	titles, err := r.strings(ctx, "list section titles", titlesSQL, titlesArgs)
	if err != nil {
		return domain.Facets{}, err
	}

	return domain.Facets{Years: years, Titles: titles}, nil
}

// ListBySections returns the articles of category whose section is one of
// sections, or every article of category when sections is empty.
func (r *Repo) ListBySections(ctx context.Context, category string, sections []string) ([]domain.Article, error) {
	query, args, err := r.sql.ArticlesBySections(category, sections)
	if err != nil {
		return nil, fmt.Errorf("build articles query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "list articles")
	}

	articles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Article, error) {
		return articlesql.ScanArticle(row)
	})
	if err != nil {
		return nil, postgres.MapError(err, "list articles")
	}

	return articles, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreateBatch inserts articles in one transaction and returns the number of
// rows written.
func (r *Repo) CreateBatch(ctx context.Context, articles []domain.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	query, args, err := r.sql.InsertArticles(articles)
	if err != nil {
		return 0, fmt.Errorf("build insert query: %w", err)
	}

	var inserted int
	err = r.tx.RunInTx(ctx, func(ctx context.Context) error {
		tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
		if err != nil {
			return postgres.MapError(err, "insert articles")
		}
		inserted = int(tag.RowsAffected())
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// strings runs a single-column query. The result is never nil.
func (r *Repo) strings(ctx context.Context, op, query string, args []any) ([]string, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, op)
	}

	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, postgres.MapError(err, op)
	}
	if values == nil {
		values = []string{}
	}

	return values, nil
}
