package search

import (
	"context"
	"fmt"
	"strings"
)

// Suggest returns up to the configured limit of titles containing term.
// A blank term yields an empty list without touching storage. The result
// is never nil.
func (s *Service) Suggest(ctx context.Context, term string) ([]string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []string{}, nil
	}

	titles, err := s.articles.SuggestTitles(ctx, term, s.suggestLimit)
	if err != nil {
		return []string{}, fmt.Errorf("suggest titles: %w", err)
	}

	if titles == nil {
		return []string{}, nil
	}
	if len(titles) > s.suggestLimit {
		titles = titles[:s.suggestLimit]
	}

	return titles, nil
}
