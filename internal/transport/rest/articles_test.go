package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moheuddin/itms/internal/domain"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockSearchService struct {
	SuggestFunc  func(ctx context.Context, term string) ([]string, error)
	SectionsFunc func(ctx context.Context, category string) ([]string, error)
	TitlesFunc   func(ctx context.Context, category string) ([]string, error)
	FacetsFunc   func(ctx context.Context, section, category string) (domain.Facets, error)
	SearchFunc   func(ctx context.Context, q domain.SearchQuery) ([]domain.Article, error)
}

func (m *mockSearchService) Suggest(ctx context.Context, term string) ([]string, error) {
	return m.SuggestFunc(ctx, term)
}

func (m *mockSearchService) Sections(ctx context.Context, category string) ([]string, error) {
	return m.SectionsFunc(ctx, category)
}

func (m *mockSearchService) Titles(ctx context.Context, category string) ([]string, error) {
	return m.TitlesFunc(ctx, category)
}

func (m *mockSearchService) Facets(ctx context.Context, section, category string) (domain.Facets, error) {
	return m.FacetsFunc(ctx, section, category)
}

func (m *mockSearchService) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Article, error) {
	return m.SearchFunc(ctx, q)
}

func newTestArticleHandler(svc *mockSearchService) *ArticleHandler {
	return NewArticleHandler(svc, slog.Default())
}

func serve(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

// ---------------------------------------------------------------------------
// Suggest
// ---------------------------------------------------------------------------

func TestSuggest_ReturnsArray(t *testing.T) {
	t.Parallel()

	var gotTerm string
	h := newTestArticleHandler(&mockSearchService{
		SuggestFunc: func(_ context.Context, term string) ([]string, error) {
			gotTerm = term
			return []string{"Income tax", "Tax rebate"}, nil
		},
	})

	rec := serve(h.Suggest, "/api/suggest?term=tax")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tax", gotTerm)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `["Income tax","Tax rebate"]`, rec.Body.String())
}

func TestSuggest_MissingTerm(t *testing.T) {
	t.Parallel()

	h := newTestArticleHandler(&mockSearchService{
		SuggestFunc: func(_ context.Context, term string) ([]string, error) {
			assert.Empty(t, term)
			return []string{}, nil
		},
	})

	rec := serve(h.Suggest, "/api/suggest")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestSuggest_StorageFailure(t *testing.T) {
	t.Parallel()

	h := newTestArticleHandler(&mockSearchService{
		SuggestFunc: func(context.Context, string) ([]string, error) {
			return []string{}, errors.New(`pq: relation "article" does not exist`)
		},
	})

	rec := serve(h.Suggest, "/api/suggest?term=tax")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "relation")
}

// ---------------------------------------------------------------------------
// Articles
// ---------------------------------------------------------------------------

func TestArticles_Titles(t *testing.T) {
	t.Parallel()

	h := newTestArticleHandler(&mockSearchService{
		TitlesFunc: func(_ context.Context, category string) ([]string, error) {
			assert.Equal(t, "ITA", category)
			return []string{"A", "B"}, nil
		},
	})

	rec := serve(h.Articles, "/api/articles?mode=getTitle&category=ITA")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"titles":["A","B"]}`, rec.Body.String())
}

func TestArticles_Years(t *testing.T) {
	t.Parallel()

	h := newTestArticleHandler(&mockSearchService{
		FacetsFunc: func(_ context.Context, section, category string) (domain.Facets, error) {
			assert.Equal(t, "30", section)
			assert.Equal(t, "ITA", category)
			return domain.Facets{Years: []string{"2020-21"}, Titles: []string{"A"}}, nil
		},
	})

	rec := serve(h.Articles, "/api/articles?mode=years&section=30&category=ITA")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"years":["2020-21"],"titles":["A"]}`, rec.Body.String())
}

func TestArticles_YearsWithoutSection(t *testing.T) {
	t.Parallel()

	h := newTestArticleHandler(&mockSearchService{
		FacetsFunc: func(context.Context, string, string) (domain.Facets, error) {
			return domain.Facets{}, domain.NewValidationError("section", "required")
		},
	})

	rec := serve(h.Articles, "/api/articles?mode=years&category=ITA")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body.Error, "section")
}

func TestArticles_Search(t *testing.T) {
	t.Parallel()

	var got domain.SearchQuery
	h := newTestArticleHandler(&mockSearchService{
		SearchFunc: func(_ context.Context, q domain.SearchQuery) ([]domain.Article, error) {
			got = q
			return []domain.Article{{
				ID: 3, Category: "ITA", Section: "30", AssessmentYear: "2020-21",
				Title: "Deduction", Content: "<p>text</p>",
			}}, nil
		},
	})

	rec := serve(h.Articles, "/api/articles?mode=search&category=ITA&section=30&year=2020-21&title=Deduction&content=tax+free")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.SearchQuery{
		Category: "ITA", Section: "30", Year: "2020-21", Title: "Deduction", Content: "tax free",
	}, got)

	var body SearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "Deduction", body.Results[0].Title)
	assert.Equal(t, "2020-21", body.Results[0].AssessmentYear)
}

func TestArticles_SearchEmptyResults(t *testing.T) {
	t.Parallel()

	h := newTestArticleHandler(&mockSearchService{
		SearchFunc: func(context.Context, domain.SearchQuery) ([]domain.Article, error) {
			return nil, nil
		},
	})

	rec := serve(h.Articles, "/api/articles?mode=search&category=ITA&content=none")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"results":[]}`, rec.Body.String())
}

func TestArticles_InvalidMode(t *testing.T) {
	t.Parallel()

	h := newTestArticleHandler(&mockSearchService{})

	for _, target := range []string{"/api/articles", "/api/articles?mode=delete"} {
		rec := serve(h.Articles, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.JSONEq(t, `{"error":"invalid mode"}`, rec.Body.String(), target)
	}
}

func TestArticles_StorageError(t *testing.T) {
	t.Parallel()

	h := newTestArticleHandler(&mockSearchService{
		TitlesFunc: func(context.Context, string) ([]string, error) {
			return nil, errors.New("dial tcp 10.0.0.5:5432: connection refused")
		},
	})

	rec := serve(h.Articles, "/api/articles?mode=getTitle&category=ITA")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.False(t, strings.Contains(rec.Body.String(), "10.0.0.5"))
}

// ---------------------------------------------------------------------------
// Sections
// ---------------------------------------------------------------------------

func TestSections(t *testing.T) {
	t.Parallel()

	h := newTestArticleHandler(&mockSearchService{
		SectionsFunc: func(_ context.Context, category string) ([]string, error) {
			assert.Equal(t, "TDS", category)
			return []string{"52", "53"}, nil
		},
	})

	rec := serve(h.Sections, "/api/sections?category=TDS")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sections":["52","53"]}`, rec.Body.String())
}

func TestSections_Error(t *testing.T) {
	t.Parallel()

	h := newTestArticleHandler(&mockSearchService{
		SectionsFunc: func(context.Context, string) ([]string, error) {
			return nil, errors.New("boom")
		},
	})

	rec := serve(h.Sections, "/api/sections?category=TDS")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestArticles_LogsErrorText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewArticleHandler(&mockSearchService{
		SuggestFunc: func(context.Context, string) ([]string, error) {
			return nil, errors.New("suggest: connection reset")
		},
		SectionsFunc: func(context.Context, string) ([]string, error) {
			return nil, errors.New("sections: connection reset")
		},
		TitlesFunc: func(context.Context, string) ([]string, error) {
			return nil, errors.New("titles: connection reset")
		},
	}, slog.New(slog.NewJSONHandler(&buf, nil)))

	serve(h.Suggest, "/api/suggest?term=tax")
	serve(h.Sections, "/api/sections?category=ITA")
	serve(h.Articles, "/api/articles?mode=getTitle&category=ITA")

	var errs []any
	dec := json.NewDecoder(&buf)
	for dec.More() {
		var entry map[string]any
		require.NoError(t, dec.Decode(&entry))
		errs = append(errs, entry["error"])
	}
	assert.Equal(t, []any{
		"suggest: connection reset",
		"sections: connection reset",
		"titles: connection reset",
	}, errs)
}
