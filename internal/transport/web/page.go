// Package web serves the server-rendered article search pages.
package web

import (
	"context"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/moheuddin/itms/internal/config"
	"github.com/moheuddin/itms/internal/domain"
	"github.com/moheuddin/itms/internal/metrics"
	"github.com/moheuddin/itms/internal/searchui"
)

// ModePage labels searches issued from the page in the search metrics.
const ModePage = "page"

type sectionLister interface {
	Sections(ctx context.Context, category string) ([]string, error)
}

// PageHandler renders GET /search/{category}. Every request drives its own
// searchui.Controller from the query string.
type PageHandler struct {
	sections sectionLister
	client   searchui.Client
	render   *searchui.Renderer
	ui       config.UIConfig
	log      *slog.Logger
}

// NewPageHandler creates a PageHandler. Sections always come from sections;
// titles, facets and results come from client.
func NewPageHandler(sections sectionLister, client searchui.Client, ui config.UIConfig, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		sections: sections,
		client:   client,
		render:   searchui.NewRenderer(),
		ui:       ui,
		log:      logger.With("handler", "page"),
	}
}

type pageData struct {
	searchui.View
	Categories []string
	Protect    bool
}

// Index redirects / to the default category's page.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	category := h.ui.DefaultCategory
	if category == "" {
		category = domain.CategoryITA
	}
	http.Redirect(w, r, "/search/"+url.PathEscape(category), http.StatusFound)
}

// Page handles GET /search/{category}?section=&year=&title=&content=&action=.
func (h *PageHandler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	category := r.PathValue("category")
	if !domain.IsKnownCategory(category) {
		http.NotFound(w, r)
		return
	}

	sections, err := h.sections.Sections(ctx, category)
	if err != nil {
		h.log.ErrorContext(ctx, "list sections",
			slog.String("category", category),
			slog.String("error", err.Error()),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ctrl := searchui.NewController(searchui.Config{Category: category, APIURL: h.ui.APIURL}, h.client, h.render)
	ctrl.SetSections(sections)

	q := r.URL.Query()
	if section := q.Get("section"); section != "" {
		if err := ctrl.SelectSection(ctx, section); err != nil {
			h.log.WarnContext(ctx, "load facets", slog.String("section", section), slog.String("error", err.Error()))
		}
	} else if err := ctrl.Load(ctx); err != nil {
		h.log.WarnContext(ctx, "load titles", slog.String("category", category), slog.String("error", err.Error()))
	}
	ctrl.SelectYear(q.Get("year"))
	ctrl.SelectTitle(q.Get("title"))
	ctrl.SetContent(q.Get("content"))

	if q.Get("action") == "search" {
		h.runSearch(ctx, ctrl)
	}

	data := pageData{
		View:       ctrl.View(),
		Categories: domain.Categories,
		Protect:    h.ui.ProtectEnabled,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		h.log.ErrorContext(ctx, "render page", slog.String("error", err.Error()))
	}
}

func (h *PageHandler) runSearch(ctx context.Context, ctrl *searchui.Controller) {
	err := ctrl.Search(ctx)
	switch {
	case err == nil:
		metrics.RecordSearch(ModePage, metrics.OutcomeOK)
	case errors.Is(err, searchui.ErrNoFilters):
		metrics.RecordSearch(ModePage, metrics.OutcomeInvalid)
	default:
		metrics.RecordSearch(ModePage, metrics.OutcomeError)
		h.log.ErrorContext(ctx, "search", slog.String("error", err.Error()))
	}
}

// StaticHandler serves assets under /static/.
func StaticHandler(assets fs.FS) http.Handler {
	return http.StripPrefix("/static/", http.FileServerFS(assets))
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Category}} search</title>
{{- if .Protect}}
<script src="/static/protect.js" defer></script>
{{- end}}
</head>
<body data-api-url="{{.APIURL}}">
<nav class="categories">
{{- range .Categories}}
<a href="/search/{{.}}"{{if eq . $.Category}} class="active"{{end}}>{{.}}</a>
{{- end}}
</nav>
<form id="search-form" method="get" action="/search/{{.Category}}">
<select id="section" name="section" onchange="this.form.submit()">
<option value="">Section</option>
{{- range .Section.Options}}
<option value="{{.}}"{{if eq . $.Section.Selected}} selected{{end}}>{{.}}</option>
{{- end}}
</select>
<select id="year" name="year">
<option value="">Assessment year</option>
{{- range .Year.Options}}
<option value="{{.}}"{{if eq . $.Year.Selected}} selected{{end}}>{{.}}</option>
{{- end}}
</select>
<select id="title" name="title">
<option value="">Title</option>
{{- range .Title.Options}}
<option value="{{.}}"{{if eq . $.Title.Selected}} selected{{end}}>{{.}}</option>
{{- end}}
</select>
<input id="content" type="text" name="content" value="{{.Content}}" placeholder="Search content">
<button type="submit" name="action" value="search">Search</button>
</form>
{{- with .Status}}
{{- if eq .Kind "warning"}}
<div class="alert alert-warning" role="alert">{{.Message}}</div>
{{- else if eq .Kind "error"}}
<div class="alert alert-danger" role="alert">{{.Message}}</div>
{{- end}}
{{- end}}
{{- if .Searched}}
<div id="primary">{{.Panels.Primary}}</div>
<div id="related">{{.Panels.Related}}</div>
{{- end}}
</body>
</html>
`))
