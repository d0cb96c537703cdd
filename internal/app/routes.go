package app

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/moheuddin/itms/internal/config"
	"github.com/moheuddin/itms/internal/metrics"
	"github.com/moheuddin/itms/internal/searchui"
	"github.com/moheuddin/itms/internal/service/search"
	"github.com/moheuddin/itms/internal/transport/middleware"
	"github.com/moheuddin/itms/internal/transport/rest"
	"github.com/moheuddin/itms/internal/transport/web"
	assets "github.com/moheuddin/itms/web"
)

// NewHandler builds the service graph over store and returns the routed,
// middleware-wrapped HTTP handler.
func NewHandler(cfg *config.Config, logger *slog.Logger, store *Store) (http.Handler, error) {
	searchService := search.NewService(logger, store.Articles, cfg.Search.SuggestLimit)

	pageClient, err := newPageClient(cfg, searchService)
	if err != nil {
		return nil, err
	}

	articleHandler := rest.NewArticleHandler(searchService, logger)
	healthHandler := rest.NewHealthHandler(store, store.Driver, Version)
	pageHandler := web.NewPageHandler(searchService, pageClient, cfg.UI, logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/suggest", articleHandler.Suggest)
	mux.HandleFunc("GET /api/articles", articleHandler.Articles)
	mux.HandleFunc("GET /api/sections", articleHandler.Sections)

	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("GET /{$}", pageHandler.Index)
	mux.HandleFunc("GET /search/{category}", pageHandler.Page)
	mux.Handle("GET /static/", web.StaticHandler(assets.Static()))

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(),
	)

	return chain(mux), nil
}

// newPageClient returns the client the search pages fetch through: the
// articles API when ui.api_url is absolute, the service in-process otherwise.
func newPageClient(cfg *config.Config, svc *search.Service) (searchui.Client, error) {
	u, err := url.Parse(cfg.UI.APIURL)
	if err != nil || !u.IsAbs() {
		return svc, nil
	}
	return searchui.NewAPIClient(cfg.UI.APIURL, &http.Client{Timeout: cfg.Server.ReadTimeout})
}
