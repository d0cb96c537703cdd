// Package article implements the article repository on SQLite.
package article

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/moheuddin/itms/internal/adapter/articlesql"
	"github.com/moheuddin/itms/internal/domain"
)

// Repo provides article persistence backed by SQLite.
type Repo struct {
	db  *sql.DB
	sql articlesql.Builder
}

// New creates a new article repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db, sql: articlesql.SQLite()}
}

// SuggestTitles returns up to limit titles containing term as a substring.
// SQLite LIKE is case-insensitive for ASCII only.
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

// SectionFacets returns the years and titles filed under section.
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

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	articles := []domain.Article{}
	for rows.Next() {
		a, err := articlesql.ScanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("list articles: scan: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	return articles, nil
}

// CreateBatch inserts articles in one transaction and returns the number of
// rows written.
func (r *Repo) CreateBatch(ctx context.Context, articles []domain.Article) (n int, err error) {
	if len(articles) == 0 {
		return 0, nil
	}

	query, args, err := r.sql.InsertArticles(articles)
	if err != nil {
		return 0, fmt.Errorf("build insert query: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert articles: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("insert articles: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return int(affected), nil
}

func (r *Repo) strings(ctx context.Context, op, query string, args []any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return values, nil
}
