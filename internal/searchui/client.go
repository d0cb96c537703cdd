// Package searchui holds the state machine behind the article search pages:
// three cascading facet widgets (section, year, title), a free-text field,
// and the rendered result panels.
package searchui

import (
	"context"

	"github.com/moheuddin/itms/internal/domain"
)

// Config is the page-level configuration a Controller is built with.
type Config struct {
	// Category scopes every request the controller issues.
	Category string
	// APIURL is the articles API endpoint. Controllers backed by an
	// in-process client ignore it.
	APIURL string
}

// Client fetches facet choices and search results. *search.Service
// satisfies it in-process and APIClient over HTTP.
type Client interface {
	Titles(ctx context.Context, category string) ([]string, error)
	Facets(ctx context.Context, section, category string) (domain.Facets, error)
	Search(ctx context.Context, q domain.SearchQuery) ([]domain.Article, error)
}
