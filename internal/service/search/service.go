// Package search implements the article lookups behind the suggestion
// endpoint, the articles API and the search pages.
package search

import (
	"context"
	"log/slog"

	"github.com/moheuddin/itms/internal/domain"
)

type articleRepo interface {
	SuggestTitles(ctx context.Context, term string, limit int) ([]string, error)
	Sections(ctx context.Context, category string) ([]string, error)
	Titles(ctx context.Context, category string) ([]string, error)
	SectionFacets(ctx context.Context, section, category string) (domain.Facets, error)
	ListBySections(ctx context.Context, category string, sections []string) ([]domain.Article, error)
}

const (
	// MaxSuggestions caps every suggestion list.
	MaxSuggestions = 10
)

// Service provides read-only article search operations.
type Service struct {
	articles     articleRepo
	suggestLimit int
	log          *slog.Logger
}

// NewService creates a new search service. suggestLimit is clamped to
// [1, MaxSuggestions].
func NewService(log *slog.Logger, articles articleRepo, suggestLimit int) *Service {
	return &Service{
		articles:     articles,
		suggestLimit: clampLimit(suggestLimit),
		log:          log.With("service", "search"),
	}
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxSuggestions {
		return MaxSuggestions
	}
	return limit
}
