package searchui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/moheuddin/itms/internal/domain"
)

// APIError is a non-2xx answer from the articles API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("articles api: status %d", e.Status)
	}
	return fmt.Sprintf("articles api: status %d: %s", e.Status, e.Message)
}

// APIClient talks to the articles API over HTTP.
type APIClient struct {
	endpoint *url.URL
	http     *http.Client
}

// NewAPIClient returns a client for the absolute endpoint URL. A nil
// httpClient means http.DefaultClient.
func NewAPIClient(endpoint string, httpClient *http.Client) (*APIClient, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("api url %q must be absolute", endpoint)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &APIClient{endpoint: u, http: httpClient}, nil
}

type titlesBody struct {
	Titles []string `json:"titles"`
}

type facetsBody struct {
	Years  []string `json:"years"`
	Titles []string `json:"titles"`
}

type searchBody struct {
	Results []struct {
		ID             int64  `json:"id"`
		Category       string `json:"category"`
		Section        string `json:"section"`
		OldSection     string `json:"old_section"`
		AssessmentYear string `json:"assessment_year"`
		Title          string `json:"title"`
		Content        string `json:"content"`
	} `json:"results"`
}

// Suggest fetches title suggestions from the suggest endpoint next to the
// articles endpoint.
func (c *APIClient) Suggest(ctx context.Context, term string) ([]string, error) {
	var titles []string
	if err := c.getAt(ctx, "suggest", url.Values{"term": {term}}, &titles); err != nil {
		return nil, err
	}
	return titles, nil
}

// Sections fetches the sections endpoint next to the articles endpoint.
func (c *APIClient) Sections(ctx context.Context, category string) ([]string, error) {
	var body struct {
		Sections []string `json:"sections"`
	}
	if err := c.getAt(ctx, "sections", url.Values{"category": {category}}, &body); err != nil {
		return nil, err
	}
	return body.Sections, nil
}

// Titles fetches mode=getTitle.
func (c *APIClient) Titles(ctx context.Context, category string) ([]string, error) {
	var body titlesBody
	err := c.get(ctx, url.Values{"mode": {"getTitle"}, "category": {category}}, &body)
	if err != nil {
		return nil, err
	}
	return body.Titles, nil
}

// Facets fetches mode=years.
func (c *APIClient) Facets(ctx context.Context, section, category string) (domain.Facets, error) {
	var body facetsBody
	err := c.get(ctx, url.Values{
		"mode":     {"years"},
		"section":  {section},
		"category": {category},
	}, &body)
	if err != nil {
		return domain.Facets{}, err
	}
	return domain.Facets{Years: body.Years, Titles: body.Titles}, nil
}

// Search fetches mode=search.
func (c *APIClient) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Article, error) {
	var body searchBody
	err := c.get(ctx, url.Values{
		"mode":     {"search"},
		"category": {q.Category},
		"section":  {q.Section},
		"year":     {q.Year},
		"title":    {q.Title},
		"content":  {q.Content},
	}, &body)
	if err != nil {
		return nil, err
	}

	articles := make([]domain.Article, len(body.Results))
	for i, r := range body.Results {
		articles[i] = domain.Article{
			ID:             r.ID,
			Category:       r.Category,
			Section:        r.Section,
			OldSection:     r.OldSection,
			AssessmentYear: r.AssessmentYear,
			Title:          r.Title,
			Content:        r.Content,
		}
	}
	return articles, nil
}

func (c *APIClient) get(ctx context.Context, params url.Values, out any) error {
	return c.fetch(ctx, *c.endpoint, params, out)
}

// getAt resolves ref against the articles endpoint, so "suggest" next to
// /api/articles is /api/suggest.
func (c *APIClient) getAt(ctx context.Context, ref string, params url.Values, out any) error {
	return c.fetch(ctx, *c.endpoint.ResolveReference(&url.URL{Path: ref}), params, out)
}

func (c *APIClient) fetch(ctx context.Context, u url.URL, params url.Values, out any) error {
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("articles api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var body struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&body) == nil {
			apiErr.Message = body.Error
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("articles api: decode: %w", err)
	}
	return nil
}
