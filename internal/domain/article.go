package domain

// Article is one row of the article table: a titled piece of tax content
// filed under a section of a category for an assessment year.
// The search subsystem never mutates articles.
type Article struct {
	ID             int64
	Category       string
	Section        string
	OldSection     string
	AssessmentYear string
	Title          string
	Content        string
}

// Facets holds the dependent choices available under one section.
type Facets struct {
	Years  []string
	Titles []string
}

// Category identifiers used to scope which articles a page searches.
const (
	CategoryITA        = "ITA"
	CategoryITR        = "ITR"
	CategoryTDS        = "TDS"
	CategoryADR        = "ADR"
	CategorySRO        = "SRO"
	CategoryParipatra  = "Paripatra"
	CategoryCircular   = "Circular"
	CategoryFinanceAct = "Finance-Act"
	CategoryAssessment = "Assessment"
)

// Categories lists every known category identifier.
var Categories = []string{
	CategoryITA,
	CategoryITR,
	CategoryTDS,
	CategoryADR,
	CategorySRO,
	CategoryParipatra,
	CategoryCircular,
	CategoryFinanceAct,
	CategoryAssessment,
}

// IsKnownCategory reports whether c is one of Categories.
func IsKnownCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}
