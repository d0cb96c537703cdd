package searchui

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moheuddin/itms/internal/domain"
)

func parse(t *testing.T, fragment string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	require.NoError(t, err)
	return doc
}

func TestRender_PrimaryAndRelated(t *testing.T) {
	t.Parallel()

	panels, err := NewRenderer().Render([]domain.Article{
		{Section: "5", Title: "X", Content: "foo bar", AssessmentYear: "2020"},
	}, "bar")
	require.NoError(t, err)

	primary := parse(t, string(panels.Primary))
	assert.Equal(t, "5 — X", primary.Find("h4.card-title").Text())

	related := parse(t, string(panels.Related))
	assert.Equal(t, 1, related.Find("tbody tr").Length())
	assert.Equal(t, []string{"bar"}, highlighted(t, string(panels.Related)))
	assert.Equal(t, 0, primary.Find("span."+HighlightClass).Length())

	headers := related.Find("thead th").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"ধারা", "করবর্ষ", "বর্ণনা"}, headers)
}

func TestRender_EveryResultIsARelatedRow(t *testing.T) {
	t.Parallel()

	panels, err := NewRenderer().Render([]domain.Article{
		{Section: "30", Title: "First", AssessmentYear: "২০২২-২৩"},
		{Section: "82", Title: "Second", AssessmentYear: "2021-22"},
		{Section: "30", Title: "Third", AssessmentYear: "2019-20"},
	}, "")
	require.NoError(t, err)

	primary := parse(t, string(panels.Primary))
	assert.Equal(t, "30 — First", primary.Find("h4").Text())

	related := parse(t, string(panels.Related))
	years := related.Find("tbody tr td:nth-child(2)").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	assert.Equal(t, []string{"২০২২-২৩", "2021-22", "2019-20"}, years)
	assert.Equal(t, 0, related.Find("span."+HighlightClass).Length())
}

func TestRender_Empty(t *testing.T) {
	t.Parallel()

	panels, err := NewRenderer().Render(nil, "bar")
	require.NoError(t, err)

	assert.Equal(t, MsgNoArticles, parse(t, string(panels.Primary)).Find("p.text-muted").Text())
	assert.Equal(t, MsgNoRelated, parse(t, string(panels.Related)).Find("p.text-muted").Text())
	assert.NotContains(t, string(panels.Related), HighlightClass)
}

func TestRender_EscapesAndSanitizes(t *testing.T) {
	t.Parallel()

	panels, err := NewRenderer().Render([]domain.Article{{
		Section: `<img src=x onerror=alert(1)>`,
		Title:   `<script>alert("t")</script>`,
		Content: `<p>Rule <b>one</b></p><script>alert("c")</script><a href="javascript:alert(1)">x</a>`,
	}}, "")
	require.NoError(t, err)

	primary := parse(t, string(panels.Primary))
	assert.Equal(t, 0, primary.Find("script").Length())
	assert.Equal(t, 0, primary.Find("img").Length())
	assert.Contains(t, primary.Find("h4").Text(), `<script>alert("t")</script>`)

	related := parse(t, string(panels.Related))
	assert.Equal(t, 0, related.Find("script").Length())
	assert.Equal(t, 0, related.Find("img").Length())
	assert.Equal(t, "one", related.Find("td b").Text())
	href, _ := related.Find("td a").Attr("href")
	assert.NotContains(t, href, "javascript:")
}
