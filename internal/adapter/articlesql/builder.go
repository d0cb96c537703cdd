// Package articlesql builds the SQL statements run against the article
// table. Statements are shared by the postgres and sqlite adapters and
// differ only in placeholder format.
package articlesql

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/moheuddin/itms/internal/domain"
)

// Table is the article table name.
const Table = "article"

// Columns lists the article columns in scan order. Nullable text columns
// are coalesced so rows scan into plain strings.
var Columns = []string{
	"id",
	"category",
	"section",
	"COALESCE(old_section, '')",
	"COALESCE(assessment_year, '')",
	"title",
	"COALESCE(content, '')",
}

var insertColumns = []string{"category", "section", "old_section", "assessment_year", "title", "content"}

// Builder produces article statements for one placeholder format.
type Builder struct {
	sb sq.StatementBuilderType
}

// New returns a Builder using the given placeholder format.
func New(format sq.PlaceholderFormat) Builder {
	return Builder{sb: sq.StatementBuilder.PlaceholderFormat(format)}
}

// Postgres returns a Builder emitting $n placeholders.
func Postgres() Builder { return New(sq.Dollar) }

// SQLite returns a Builder emitting ? placeholders.
func SQLite() Builder { return New(sq.Question) }

// SuggestTitles selects up to limit titles containing term. No ORDER BY:
// the store decides the order.
func (b Builder) SuggestTitles(term string, limit int) (string, []any, error) {
	return b.sb.
		Select("title").
		From(Table).
		Where(sq.Expr(`title LIKE ? ESCAPE '\'`, ContainsPattern(term))).
		Limit(uint64(limit)).
		ToSql()
}

// DistinctSections selects the sections of a category in ascending order.
// An empty category selects the sections of every category.
func (b Builder) DistinctSections(category string) (string, []any, error) {
	q := b.sb.Select("section").Distinct().From(Table)
	if category != "" {
		q = q.Where(sq.Eq{"category": category})
	}
	return q.OrderBy("section ASC").ToSql()
}

// DistinctTitles selects the titles of a category in ascending order.
func (b Builder) DistinctTitles(category string) (string, []any, error) {
	return b.sb.
		Select("title").
		Distinct().
		From(Table).
		Where(sq.Eq{"category": category}).
		OrderBy("title ASC").
		ToSql()
}

// SectionYears selects the assessment years filed under section, matching
// either the current or the former section number, newest label first.
// Rows without a year are skipped.
func (b Builder) SectionYears(section, category string) (string, []any, error) {
	return b.sb.
		Select("assessment_year").
		Distinct().
		From(Table).
		Where(sectionOrOld(section)).
		Where(sq.Eq{"category": category}).
		Where("COALESCE(assessment_year, '') <> ''").
		OrderBy("assessment_year DESC").
		ToSql()
}

// SectionTitles selects the titles filed under section (current or former).
func (b Builder) SectionTitles(section, category string) (string, []any, error) {
	return b.sb.
		Select("title").
		Distinct().
		From(Table).
		Where(sectionOrOld(section)).
		Where(sq.Eq{"category": category}).
		OrderBy("title ASC").
		ToSql()
}

// ArticlesBySections selects full articles of a category whose section is
// one of sections. No sections means every article of the category.
func (b Builder) ArticlesBySections(category string, sections []string) (string, []any, error) {
	q := b.sb.
		Select(Columns...).
		From(Table).
		Where(sq.Eq{"category": category})

	switch len(sections) {
	case 0:
	case 1:
		q = q.Where(sq.Eq{"section": sections[0]})
	default:
		q = q.Where(sq.Eq{"section": sections})
	}

	return q.OrderBy("id ASC").ToSql()
}

// InsertArticles builds one multi-row INSERT for articles.
func (b Builder) InsertArticles(articles []domain.Article) (string, []any, error) {
	q := b.sb.Insert(Table).Columns(insertColumns...)
	for _, a := range articles {
		q = q.Values(a.Category, a.Section, a.OldSection, a.AssessmentYear, a.Title, a.Content)
	}
	return q.ToSql()
}

func sectionOrOld(section string) sq.Or {
	return sq.Or{
		sq.Eq{"section": section},
		sq.Eq{"old_section": section},
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so s matches literally under ESCAPE '\'.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern returns the LIKE pattern matching any value containing s.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}
