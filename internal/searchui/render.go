package searchui

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"

	"github.com/moheuddin/itms/internal/domain"
)

// Placeholder texts of the two panels when a search finds nothing.
const (
	MsgNoArticles = "No articles found."
	MsgNoRelated  = "No related assessment content found."
)

// Panels is the rendered result area: the primary card and the related
// table.
type Panels struct {
	Primary template.HTML
	Related template.HTML
}

var panelTemplates = template.Must(template.New("panels").Parse(`
{{- define "primary" -}}
{{- if . -}}
<div class="card mb-3"><div class="card-body"><h4 class="card-title">{{.Section}} — {{.Title}}</h4></div></div>
{{- else -}}
<p class="text-muted">` + MsgNoArticles + `</p>
{{- end -}}
{{- end -}}

{{- define "related" -}}
{{- if . -}}
<table class="table table-bordered table-striped"><thead><tr><th>ধারা</th><th style="width:80px;text-align:center;">করবর্ষ</th><th>বর্ণনা</th></tr></thead><tbody>
{{- range . -}}
<tr><td><span class="text-danger">{{.Section}}</span></td><td style="text-align:center;"><span class="text-danger">{{.AssessmentYear}}</span></td><td>{{.Content}}</td></tr>
{{- end -}}
</tbody></table>
{{- else -}}
<p class="text-muted">` + MsgNoRelated + `</p>
{{- end -}}
{{- end -}}
`))

// Renderer turns search results into Panels. Section, title and year are
// escaped; content is curator HTML and is sanitized instead.
type Renderer struct {
	policy *bluemonday.Policy
}

// NewRenderer creates a Renderer with the UGC sanitizing policy.
func NewRenderer() *Renderer {
	return &Renderer{policy: bluemonday.UGCPolicy()}
}

type relatedRow struct {
	Section        string
	AssessmentYear string
	Content        template.HTML
}

// Render builds both panels. When term is not empty every case-insensitive
// literal occurrence of it in the related panel's text is highlighted.
func (r *Renderer) Render(results []domain.Article, term string) (Panels, error) {
	var primary *domain.Article
	if len(results) > 0 {
		primary = &results[0]
	}

	rows := make([]relatedRow, len(results))
	for i, a := range results {
		rows[i] = relatedRow{
			Section:        a.Section,
			AssessmentYear: a.AssessmentYear,
			Content:        template.HTML(r.policy.Sanitize(a.Content)), //nolint:gosec
		}
	}

	var p, rel bytes.Buffer
	if err := panelTemplates.ExecuteTemplate(&p, "primary", primary); err != nil {
		return Panels{}, fmt.Errorf("render primary panel: %w", err)
	}
	if err := panelTemplates.ExecuteTemplate(&rel, "related", rows); err != nil {
		return Panels{}, fmt.Errorf("render related panel: %w", err)
	}

	related := rel.String()
	if len(results) > 0 && term != "" {
		var err error
		related, err = Highlight(related, term)
		if err != nil {
			return Panels{}, err
		}
	}

	return Panels{
		Primary: template.HTML(p.String()), //nolint:gosec
		Related: template.HTML(related),    //nolint:gosec
	}, nil
}
