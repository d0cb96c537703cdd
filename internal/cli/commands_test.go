package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moheuddin/itms/internal/domain"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockBackend struct {
	SuggestFunc  func(ctx context.Context, term string) ([]string, error)
	SectionsFunc func(ctx context.Context, category string) ([]string, error)
	TitlesFunc   func(ctx context.Context, category string) ([]string, error)
	FacetsFunc   func(ctx context.Context, section, category string) (domain.Facets, error)
	SearchFunc   func(ctx context.Context, q domain.SearchQuery) ([]domain.Article, error)
}

func (m *mockBackend) Suggest(ctx context.Context, term string) ([]string, error) {
	return m.SuggestFunc(ctx, term)
}

func (m *mockBackend) Sections(ctx context.Context, category string) ([]string, error) {
	return m.SectionsFunc(ctx, category)
}

func (m *mockBackend) Titles(ctx context.Context, category string) ([]string, error) {
	return m.TitlesFunc(ctx, category)
}

func (m *mockBackend) Facets(ctx context.Context, section, category string) (domain.Facets, error) {
	return m.FacetsFunc(ctx, section, category)
}

func (m *mockBackend) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Article, error) {
	return m.SearchFunc(ctx, q)
}

type opened struct {
	apiURL   string
	released bool
	calls    int
}

func execute(t *testing.T, b Backend, args ...string) (string, *opened, error) {
	t.Helper()

	state := &opened{}
	open := func(_ context.Context, apiURL string) (Backend, func(), error) {
		state.calls++
		state.apiURL = apiURL
		return b, func() { state.released = true }, nil
	}

	root := NewRootCmd(open)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), state, err
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestSuggestCmd(t *testing.T) {
	t.Parallel()

	b := &mockBackend{SuggestFunc: func(_ context.Context, term string) ([]string, error) {
		assert.Equal(t, "tax", term)
		return []string{"Tax day", "আয়কর tax"}, nil
	}}

	out, state, err := execute(t, b, "suggest", "tax")

	require.NoError(t, err)
	assert.Equal(t, "Tax day\nআয়কর tax\n", out)
	assert.True(t, state.released)
	assert.Empty(t, state.apiURL)
}

func TestSuggestCmd_JSONEmpty(t *testing.T) {
	t.Parallel()

	b := &mockBackend{SuggestFunc: func(context.Context, string) ([]string, error) { return nil, nil }}

	out, _, err := execute(t, b, "suggest", "zzz", "--json")

	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestSectionsCmd_CategoryAndAPI(t *testing.T) {
	t.Parallel()

	b := &mockBackend{SectionsFunc: func(_ context.Context, category string) ([]string, error) {
		assert.Equal(t, "TDS", category)
		return []string{"52", "53"}, nil
	}}

	out, state, err := execute(t, b, "sections", "-c", "TDS", "--api", "http://localhost:8000/api/articles")

	require.NoError(t, err)
	assert.Equal(t, "52\n53\n", out)
	assert.Equal(t, "http://localhost:8000/api/articles", state.apiURL)
}

func TestUnknownCategory(t *testing.T) {
	t.Parallel()

	_, state, err := execute(t, &mockBackend{}, "titles", "--category", "Nope")

	require.Error(t, err)
	assert.Equal(t, 0, state.calls)
}

func TestFacetsCmd(t *testing.T) {
	t.Parallel()

	b := &mockBackend{FacetsFunc: func(_ context.Context, section, category string) (domain.Facets, error) {
		assert.Equal(t, "30", section)
		assert.Equal(t, "ITA", category)
		return domain.Facets{Years: []string{"2020-21"}, Titles: []string{"Deductions"}}, nil
	}}

	out, _, err := execute(t, b, "facets", "30")

	require.NoError(t, err)
	assert.Equal(t, "KIND   VALUE\nyear   2020-21\ntitle  Deductions\n", out)
}

func TestSearchCmd(t *testing.T) {
	t.Parallel()

	b := &mockBackend{SearchFunc: func(_ context.Context, q domain.SearchQuery) ([]domain.Article, error) {
		assert.Equal(t, domain.SearchQuery{Category: "ITA", Section: "30", Content: "net   income"}, q)
		return []domain.Article{{ID: 7, Section: "30", OldSection: "82C", AssessmentYear: "2020-21", Title: "Deductions"}}, nil
	}}

	out, _, err := execute(t, b, "search", "--section", " 30 ", "--content", "net   income")

	require.NoError(t, err)
	assert.Equal(t, "ID  SECTION  OLD  YEAR     TITLE\n7   30       82C  2020-21  Deductions\n", out)
}

func TestSearchCmd_JSON(t *testing.T) {
	t.Parallel()

	b := &mockBackend{SearchFunc: func(context.Context, domain.SearchQuery) ([]domain.Article, error) {
		return []domain.Article{{ID: 1, Section: "5", Title: "X", Content: "<p>a & b</p>"}}, nil
	}}

	out, _, err := execute(t, b, "search", "--title", "X", "--json")

	require.NoError(t, err)
	var got []resultJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "<p>a & b</p>", got[0].Content)
	assert.Contains(t, out, "<p>a & b</p>")
}

func TestSearchCmd_NoResults(t *testing.T) {
	t.Parallel()

	b := &mockBackend{SearchFunc: func(context.Context, domain.SearchQuery) ([]domain.Article, error) {
		return nil, nil
	}}

	out, _, err := execute(t, b, "search", "--year", "2020-21")

	require.NoError(t, err)
	assert.Equal(t, "No articles found.\n", out)
}

func TestSearchCmd_NoFilters(t *testing.T) {
	t.Parallel()

	_, state, err := execute(t, &mockBackend{}, "search", "--content", "   ")

	require.Error(t, err)
	assert.Equal(t, 0, state.calls)
}

func TestSearchCmd_BackendError(t *testing.T) {
	t.Parallel()

	b := &mockBackend{SearchFunc: func(context.Context, domain.SearchQuery) ([]domain.Article, error) {
		return nil, errors.New("connection refused")
	}}

	_, state, err := execute(t, b, "search", "--section", "1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, state.released)
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	out, state, err := execute(t, &mockBackend{}, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "commit:")
	assert.Equal(t, 0, state.calls)
}
