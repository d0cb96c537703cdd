//go:build e2e

package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/moheuddin/itms/internal/adapter/postgres/testhelper"
	"github.com/moheuddin/itms/internal/app"
	"github.com/moheuddin/itms/internal/config"
	"github.com/moheuddin/itms/internal/domain"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	Store  *app.Store
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	store := app.NewPostgresStore(pool)

	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverPostgres},
		Search:   config.SearchConfig{SuggestLimit: 10},
		UI:       config.UIConfig{APIURL: "/api/articles", ProtectEnabled: true, DefaultCategory: domain.CategoryITA},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,OPTIONS",
			AllowedHeaders: "Content-Type,X-Request-Id",
			MaxAge:         86400,
		},
	}

	handler, err := app.NewHandler(cfg, logger, store)
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		Store:  store,
	}
}

// seed inserts articles and fails the test on error.
func (ts *testServer) seed(t *testing.T, articles ...domain.Article) {
	t.Helper()
	n, err := ts.Store.Articles.CreateBatch(context.Background(), articles)
	require.NoError(t, err)
	require.Equal(t, len(articles), n)
}

// getJSON issues a GET and decodes the JSON body into out.
func (ts *testServer) getJSON(t *testing.T, path string, out any) int {
	t.Helper()

	resp, err := ts.Client.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}
