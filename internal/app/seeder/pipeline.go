package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/moheuddin/itms/internal/domain"
)

// Result holds the outcome of a seeding run.
type Result struct {
	Parsed   int
	Inserted int
	Skipped  int
	Invalid  int
	Duration time.Duration
}

// Pipeline validates fixture rows and inserts them in batches.
type Pipeline struct {
	log  *slog.Logger
	repo ArticleBulkRepo
	cfg  Config
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, repo ArticleBulkRepo, cfg Config) *Pipeline {
	return &Pipeline{
		log:  log.With("component", "seeder"),
		repo: repo,
		cfg:  cfg,
	}
}

// Run inserts every valid row of fx. Invalid rows are logged and counted,
// not inserted. In dry-run mode nothing is written and valid rows count as
// skipped.
func (p *Pipeline) Run(ctx context.Context, fx *Fixture) (Result, error) {
	start := time.Now()
	result := Result{Parsed: len(fx.Articles)}

	articles := make([]domain.Article, 0, len(fx.Articles))
	for i, row := range fx.Articles {
		a, err := row.ToArticle()
		if err != nil {
			result.Invalid++
			p.log.Warn("invalid fixture row",
				slog.Int("index", i),
				slog.String("title", row.Title),
				slog.String("error", err.Error()),
			)
			continue
		}
		articles = append(articles, a)
	}

	if p.cfg.DryRun {
		result.Skipped = len(articles)
		result.Duration = time.Since(start)
		p.log.Info("dry run", slog.Int("valid", len(articles)), slog.Int("invalid", result.Invalid))
		return result, nil
	}

	inserted, err := batchProcess(articles, p.cfg.BatchSize, func(batch []domain.Article) (int, error) {
		return p.repo.CreateBatch(ctx, batch)
	})
	result.Inserted = inserted
	result.Duration = time.Since(start)
	if err != nil {
		return result, fmt.Errorf("insert articles: %w", err)
	}

	p.log.Info("seeding completed",
		slog.Int("parsed", result.Parsed),
		slog.Int("inserted", result.Inserted),
		slog.Int("invalid", result.Invalid),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

// batchProcess calls fn on consecutive chunks of at most batchSize items and
// sums the counts. It stops at the first error.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
