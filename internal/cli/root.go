// Package cli implements itmsctl, the operator CLI for the article store.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/moheuddin/itms/internal/app"
	"github.com/moheuddin/itms/internal/config"
	"github.com/moheuddin/itms/internal/domain"
	"github.com/moheuddin/itms/internal/searchui"
	"github.com/moheuddin/itms/internal/service/search"
)

// Backend answers the CLI's queries. *search.Service and
// *searchui.APIClient both satisfy it.
type Backend interface {
	Suggest(ctx context.Context, term string) ([]string, error)
	Sections(ctx context.Context, category string) ([]string, error)
	Titles(ctx context.Context, category string) ([]string, error)
	Facets(ctx context.Context, section, category string) (domain.Facets, error)
	Search(ctx context.Context, q domain.SearchQuery) ([]domain.Article, error)
}

var (
	_ Backend = (*search.Service)(nil)
	_ Backend = (*searchui.APIClient)(nil)
)

// Opener returns the Backend for one command run and a func releasing it.
// apiURL is the --api flag value.
type Opener func(ctx context.Context, apiURL string) (Backend, func(), error)

type options struct {
	apiURL   string
	category string
	jsonOut  bool
	timeout  time.Duration
	open     Opener
}

// NewRootCmd builds the itmsctl command tree over open.
func NewRootCmd(open Opener) *cobra.Command {
	opts := &options{open: open}

	root := &cobra.Command{
		Use:   "itmsctl",
		Short: "Query the ITMS article store",
		Long: `itmsctl queries the article store directly (using the server's
configuration) or a running server with --api.

Example usage:
  itmsctl suggest "tax"                         # Title suggestions
  itmsctl sections --category TDS               # Sections of a category
  itmsctl facets 30                             # Years and titles under section 30
  itmsctl search --section 30 --content income  # Composite search
  itmsctl search --api http://localhost:8000/api/articles --content income`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !domain.IsKnownCategory(opts.category) {
				return fmt.Errorf("unknown category %q", opts.category)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.apiURL, "api", "", "articles API URL of a running server (default: open the store directly)")
	root.PersistentFlags().StringVarP(&opts.category, "category", "c", domain.CategoryITA, "article category")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "output as JSON")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall timeout")

	root.AddCommand(
		newSuggestCmd(opts),
		newSectionsCmd(opts),
		newTitlesCmd(opts),
		newFacetsCmd(opts),
		newSearchCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs itmsctl with the default Opener.
func Execute() error {
	return NewRootCmd(DefaultOpener).Execute()
}

// DefaultOpener talks to the server at apiURL when set, otherwise opens the
// configured article store and serves queries in-process.
func DefaultOpener(ctx context.Context, apiURL string) (Backend, func(), error) {
	if apiURL != "" {
		client, err := searchui.NewAPIClient(apiURL, &http.Client{Timeout: 30 * time.Second})
		if err != nil {
			return nil, nil, err
		}
		return client, func() {}, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logger := app.NewLogger(cfg.Log)

	store, err := app.OpenStore(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return search.NewService(logger, store.Articles, cfg.Search.SuggestLimit), store.Close, nil
}

// run opens the backend, calls fn with it and releases it.
func (o *options) run(cmd *cobra.Command, fn func(ctx context.Context, b Backend) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout)
	defer cancel()

	b, release, err := o.open(ctx, o.apiURL)
	if err != nil {
		return err
	}
	defer release()

	return fn(ctx, b)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// writeList prints one value per line, or a JSON array.
func (o *options) writeList(w io.Writer, values []string) error {
	if o.jsonOut {
		if values == nil {
			values = []string{}
		}
		return writeJSON(w, values)
	}
	for _, v := range values {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return nil
}
