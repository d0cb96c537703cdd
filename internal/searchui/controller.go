package searchui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/moheuddin/itms/internal/domain"
)

var (
	// ErrNoFilters is returned by Search when section, year, title and
	// free text are all empty. No request is issued.
	ErrNoFilters = errors.New("searchui: no filters selected")

	// ErrStale is returned when a response arrives after a newer request of
	// the same kind was issued. The response is discarded.
	ErrStale = errors.New("searchui: stale response")
)

// User-visible status messages.
const (
	MsgNoFilters    = "Please type something or select filters to search."
	MsgTitlesFailed = "Could not load titles. Please try again."
	MsgFacetsFailed = "Could not load years and titles for this section. Please try again."
	MsgSearchFailed = "Search failed. Please try again."
)

// StatusKind classifies the banner shown above the results.
type StatusKind string

const (
	StatusIdle    StatusKind = "idle"
	StatusWarning StatusKind = "warning"
	StatusError   StatusKind = "error"
)

// Status is the current banner.
type Status struct {
	Kind    StatusKind
	Message string
}

type op int

const (
	opTitles op = iota
	opFacets
	opSearch
	opCount
)

// Controller drives one search page. It is safe for concurrent use; each
// fetch carries a sequence token and only the latest response of each kind
// is applied.
type Controller struct {
	cfg    Config
	client Client
	render *Renderer

	mu       sync.Mutex
	section  Choices
	year     Choices
	title    Choices
	content  string
	panels   Panels
	searched bool
	status   Status
	seq      [opCount]uint64
}

// NewController creates a Controller for cfg.Category.
func NewController(cfg Config, client Client, render *Renderer) *Controller {
	return &Controller{
		cfg:    cfg,
		client: client,
		render: render,
		status: Status{Kind: StatusIdle},
	}
}

// SetSections populates the section widget. Sections come with the page,
// not from the articles API.
func (c *Controller) SetSections(sections []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.section.Set(sections)
}

// SelectYear sets the year widget's selection. A year that is not one of
// the options is ignored; an empty year clears the selection.
func (c *Controller) SelectYear(year string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.year.Select(year)
}

// SelectTitle sets the title widget's selection, with the same rules as
// SelectYear.
func (c *Controller) SelectTitle(title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.title.Select(title)
}

// SetContent sets the free-text field.
func (c *Controller) SetContent(content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content = content
}

// Load fetches every title of the category into the title widget.
func (c *Controller) Load(ctx context.Context) error {
	token := c.begin(opTitles)

	titles, err := c.client.Titles(ctx, c.cfg.Category)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq[opTitles] != token {
		return ErrStale
	}
	if err != nil {
		c.status = Status{Kind: StatusError, Message: MsgTitlesFailed}
		return fmt.Errorf("load titles: %w", err)
	}

	c.title.Set(titles)
	c.status = Status{Kind: StatusIdle}
	return nil
}

// SelectSection selects section and, when it is not empty, replaces the
// year and title widgets with the choices under it. It supersedes any
// pending Load since both write the title widget.
func (c *Controller) SelectSection(ctx context.Context, section string) error {
	section = strings.TrimSpace(section)

	c.mu.Lock()
	c.section.Selected = section
	if section == "" {
		c.mu.Unlock()
		return nil
	}
	c.seq[opTitles]++
	c.seq[opFacets]++
	token := c.seq[opFacets]
	c.mu.Unlock()

	facets, err := c.client.Facets(ctx, section, c.cfg.Category)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq[opFacets] != token {
		return ErrStale
	}
	if err != nil {
		c.status = Status{Kind: StatusError, Message: MsgFacetsFailed}
		return fmt.Errorf("load facets: %w", err)
	}

	c.year.Clear()
	c.title.Clear()
	c.year.Set(facets.Years)
	c.title.Set(facets.Titles)
	c.status = Status{Kind: StatusIdle}
	return nil
}

// Search runs the composite search and replaces both panels with the
// rendering. With every filter empty it sets a warning and returns
// ErrNoFilters without a request.
func (c *Controller) Search(ctx context.Context) error {
	c.mu.Lock()
	q := domain.SearchQuery{
		Category: c.cfg.Category,
		Section:  c.section.Selected,
		Year:     c.year.Selected,
		Title:    c.title.Selected,
		Content:  strings.TrimSpace(c.content),
	}
	if q.IsEmpty() {
		c.status = Status{Kind: StatusWarning, Message: MsgNoFilters}
		c.mu.Unlock()
		return ErrNoFilters
	}
	c.seq[opSearch]++
	token := c.seq[opSearch]
	c.mu.Unlock()

	results, err := c.client.Search(ctx, q)
	var panels Panels
	if err == nil {
		panels, err = c.render.Render(results, q.Content)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq[opSearch] != token {
		return ErrStale
	}
	if err != nil {
		c.status = Status{Kind: StatusError, Message: MsgSearchFailed}
		return fmt.Errorf("search: %w", err)
	}

	c.panels = panels
	c.searched = true
	c.status = Status{Kind: StatusIdle}
	return nil
}

// View is a snapshot of the controller state for rendering.
type View struct {
	Category string
	APIURL   string
	Section  Choices
	Year     Choices
	Title    Choices
	Content  string
	Panels   Panels
	Searched bool
	Status   Status
}

// View returns a copy of the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		Category: c.cfg.Category,
		APIURL:   c.cfg.APIURL,
		Section:  c.section.clone(),
		Year:     c.year.clone(),
		Title:    c.title.clone(),
		Content:  c.content,
		Panels:   c.panels,
		Searched: c.searched,
		Status:   c.status,
	}
}

func (c *Controller) begin(o op) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq[o]++
	return c.seq[o]
}
