package search

import (
	"context"
	"fmt"

	"github.com/moheuddin/itms/internal/domain"
)

// Sections returns the sections of category in ascending order.
func (s *Service) Sections(ctx context.Context, category string) ([]string, error) {
	sections, err := s.articles.Sections(ctx, domain.NormalizeField(category))
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return nonNil(sections), nil
}

// Titles returns every title of category in ascending order.
func (s *Service) Titles(ctx context.Context, category string) ([]string, error) {
	titles, err := s.articles.Titles(ctx, domain.NormalizeField(category))
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	return nonNil(titles), nil
}

// Facets returns the years and titles available under section, matching
// articles filed under it now or formerly.
func (s *Service) Facets(ctx context.Context, section, category string) (domain.Facets, error) {
	section = domain.NormalizeField(section)
	if section == "" {
		return domain.Facets{}, domain.NewValidationError("section", "required")
	}

	facets, err := s.articles.SectionFacets(ctx, section, domain.NormalizeField(category))
	if err != nil {
		return domain.Facets{}, fmt.Errorf("section facets: %w", err)
	}

	return domain.Facets{
		Years:  nonNil(facets.Years),
		Titles: nonNil(facets.Titles),
	}, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
