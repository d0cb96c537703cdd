package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/moheuddin/itms/internal/domain"
	"github.com/moheuddin/itms/internal/metrics"
)

type searchService interface {
	Suggest(ctx context.Context, term string) ([]string, error)
	Sections(ctx context.Context, category string) ([]string, error)
	Titles(ctx context.Context, category string) ([]string, error)
	Facets(ctx context.Context, section, category string) (domain.Facets, error)
	Search(ctx context.Context, q domain.SearchQuery) ([]domain.Article, error)
}

// Article API modes.
const (
	ModeTitles = "getTitle"
	ModeYears  = "years"
	ModeSearch = "search"
)

const msgInternal = "internal server error"

// ArticleHandler serves the suggestion, articles and sections endpoints.
type ArticleHandler struct {
	search searchService
	log    *slog.Logger
}

// NewArticleHandler creates an ArticleHandler.
func NewArticleHandler(search searchService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{
		search: search,
		log:    logger.With("handler", "article"),
	}
}

// ArticleResponse is one search result row.
type ArticleResponse struct {
	ID             int64  `json:"id"`
	Category       string `json:"category"`
	Section        string `json:"section"`
	OldSection     string `json:"old_section"`
	AssessmentYear string `json:"assessment_year"`
	Title          string `json:"title"`
	Content        string `json:"content"`
}

// TitlesResponse answers mode=getTitle.
type TitlesResponse struct {
	Titles []string `json:"titles"`
}

// FacetsResponse answers mode=years.
type FacetsResponse struct {
	Years  []string `json:"years"`
	Titles []string `json:"titles"`
}

// SearchResponse answers mode=search.
type SearchResponse struct {
	Results []ArticleResponse `json:"results"`
}

// SectionsResponse answers GET /api/sections.
type SectionsResponse struct {
	Sections []string `json:"sections"`
}

// Suggest handles GET /api/suggest?term=. The body is always a JSON array;
// on failure it is empty and the status is 500.
func (h *ArticleHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")

	titles, err := h.search.Suggest(r.Context(), term)
	if err != nil {
		h.log.ErrorContext(r.Context(), "suggest failed", slog.String("term", term), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, []string{})
		return
	}

	metrics.RecordSuggestions(len(titles))
	writeJSON(w, http.StatusOK, titles)
}

// Articles handles GET /api/articles?mode=...
func (h *ArticleHandler) Articles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := strings.TrimSpace(q.Get("mode"))
	category := strings.TrimSpace(q.Get("category"))

	var (
		body any
		err  error
	)
	switch mode {
	case ModeTitles:
		var titles []string
		titles, err = h.search.Titles(r.Context(), category)
		body = TitlesResponse{Titles: titles}
	case ModeYears:
		var facets domain.Facets
		facets, err = h.search.Facets(r.Context(), q.Get("section"), category)
		body = FacetsResponse{Years: facets.Years, Titles: facets.Titles}
	case ModeSearch:
		var articles []domain.Article
		articles, err = h.search.Search(r.Context(), domain.SearchQuery{
			Category: category,
			Section:  q.Get("section"),
			Year:     q.Get("year"),
			Title:    q.Get("title"),
			Content:  q.Get("content"),
		})
		body = SearchResponse{Results: toArticleResponses(articles)}
	default:
		metrics.RecordSearch("invalid", metrics.OutcomeInvalid)
		writeError(w, http.StatusBadRequest, "invalid mode")
		return
	}

	if err != nil {
		h.handleError(w, r, mode, err)
		return
	}

	metrics.RecordSearch(mode, metrics.OutcomeOK)
	writeJSON(w, http.StatusOK, body)
}

// Sections handles GET /api/sections?category=.
func (h *ArticleHandler) Sections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.search.Sections(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.log.ErrorContext(r.Context(), "list sections failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	writeJSON(w, http.StatusOK, SectionsResponse{Sections: sections})
}

func (h *ArticleHandler) handleError(w http.ResponseWriter, r *http.Request, mode string, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		metrics.RecordSearch(mode, metrics.OutcomeInvalid)
		writeError(w, http.StatusBadRequest, ve.Error())
		return
	}

	metrics.RecordSearch(mode, metrics.OutcomeError)
	h.log.ErrorContext(r.Context(), "articles request failed",
		slog.String("mode", mode),
		slog.String("error", err.Error()),
	)
	writeError(w, http.StatusInternalServerError, msgInternal)
}

func toArticleResponses(articles []domain.Article) []ArticleResponse {
	out := make([]ArticleResponse, len(articles))
	for i, a := range articles {
		out[i] = ArticleResponse{
			ID:             a.ID,
			Category:       a.Category,
			Section:        a.Section,
			OldSection:     a.OldSection,
			AssessmentYear: a.AssessmentYear,
			Title:          a.Title,
			Content:        a.Content,
		}
	}
	return out
}
