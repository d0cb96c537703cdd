package domain

import "strings"

// SearchQuery is the composite search request assembled from the facet
// widgets and the free-text field. Category scopes the search and does not
// count as a filter.
type SearchQuery struct {
	Category string
	Section  string
	Year     string
	Title    string
	Content  string
}

// Normalize returns a trimmed copy. Category and Section also have inner
// runs of spaces compressed. Year, Title and Content are matched against
// stored text as given, so only their outer whitespace is removed.
func (q SearchQuery) Normalize() SearchQuery {
	return SearchQuery{
		Category: NormalizeField(q.Category),
		Section:  NormalizeField(q.Section),
		Year:     strings.TrimSpace(q.Year),
		Title:    strings.TrimSpace(q.Title),
		Content:  strings.TrimSpace(q.Content),
	}
}

// IsEmpty reports whether section, year, title and content are all blank.
func (q SearchQuery) IsEmpty() bool {
	return strings.TrimSpace(q.Section) == "" &&
		strings.TrimSpace(q.Year) == "" &&
		strings.TrimSpace(q.Title) == "" &&
		strings.TrimSpace(q.Content) == ""
}
