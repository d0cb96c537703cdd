package seeder

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/moheuddin/itms/internal/domain"
)

// Fixture is the YAML document the seeder loads:
//
//	articles:
//	  - category: ITA
//	    section: "30"
//	    old_section: "82C"
//	    assessment_year: "2020-21"
//	    title: Deductions not admissible
//	    content: <p>...</p>
type Fixture struct {
	Articles []FixtureArticle `yaml:"articles"`
}

// FixtureArticle is one article row of a fixture.
type FixtureArticle struct {
	Category       string `yaml:"category"`
	Section        string `yaml:"section"`
	OldSection     string `yaml:"old_section"`
	AssessmentYear string `yaml:"assessment_year"`
	Title          string `yaml:"title"`
	Content        string `yaml:"content"`
}

// LoadFixture reads and decodes the fixture at path.
func LoadFixture(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	return DecodeFixture(f)
}

// DecodeFixture decodes a fixture, rejecting unknown keys.
func DecodeFixture(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fx Fixture
	if err := dec.Decode(&fx); err != nil {
		if errors.Is(err, io.EOF) {
			return &fx, nil
		}
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &fx, nil
}

// ToArticle trims the row and checks it can be stored.
func (a FixtureArticle) ToArticle() (domain.Article, error) {
	out := domain.Article{
		Category:       strings.TrimSpace(a.Category),
		Section:        strings.TrimSpace(a.Section),
		OldSection:     strings.TrimSpace(a.OldSection),
		AssessmentYear: strings.TrimSpace(a.AssessmentYear),
		Title:          strings.TrimSpace(a.Title),
		Content:        a.Content,
	}

	var ve domain.ValidationError
	if !domain.IsKnownCategory(out.Category) {
		ve.Errors = append(ve.Errors, domain.FieldError{Field: "category", Message: "unknown"})
	}
	if out.Section == "" {
		ve.Errors = append(ve.Errors, domain.FieldError{Field: "section", Message: "required"})
	}
	if out.Title == "" {
		ve.Errors = append(ve.Errors, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(ve.Errors) > 0 {
		return domain.Article{}, &ve
	}
	return out, nil
}
