package search

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/moheuddin/itms/internal/domain"
)

// Search returns the articles matching q, newest assessment year first.
//
// Articles of q.Category under q.Section (every section when empty) are
// loaded together with the articles now filed under any former section
// those rows reference. The union is then filtered by exact year, exact
// title and case-insensitive content substring. Rows with equal year keys
// keep their load order.
func (s *Service) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Article, error) {
	q = q.Normalize()

	var sections []string
	if q.Section != "" {
		sections = []string{q.Section}
	}

	rows, err := s.articles.ListBySections(ctx, q.Category, sections)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	if old := oldSections(rows); len(old) > 0 {
		extra, err := s.articles.ListBySections(ctx, q.Category, old)
		if err != nil {
			return nil, fmt.Errorf("list articles by old section: %w", err)
		}
		rows = append(rows, extra...)
	}

	results := filter(dedupe(rows), q)
	slices.SortStableFunc(results, func(a, b domain.Article) int {
		return domain.AssessmentYearKey(b.AssessmentYear) - domain.AssessmentYearKey(a.AssessmentYear)
	})

	s.log.DebugContext(ctx, "search",
		"category", q.Category,
		"section", q.Section,
		"loaded", len(rows),
		"results", len(results),
	)

	return results, nil
}

// oldSections returns the distinct non-blank OldSection values of rows in
// first-seen order.
func oldSections(rows []domain.Article) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range rows {
		old := strings.TrimSpace(r.OldSection)
		if old == "" {
			continue
		}
		if _, ok := seen[old]; ok {
			continue
		}
		seen[old] = struct{}{}
		out = append(out, old)
	}
	return out
}

func dedupe(rows []domain.Article) []domain.Article {
	seen := make(map[int64]struct{}, len(rows))
	out := make([]domain.Article, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

func filter(rows []domain.Article, q domain.SearchQuery) []domain.Article {
	content := strings.ToLower(q.Content)
	out := rows[:0]
	for _, r := range rows {
		if q.Year != "" && r.AssessmentYear != q.Year {
			continue
		}
		if q.Title != "" && r.Title != q.Title {
			continue
		}
		if content != "" && !strings.Contains(strings.ToLower(r.Content), content) {
			continue
		}
		out = append(out, r)
	}
	return out
}
