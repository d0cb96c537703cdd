package articlesql

import "github.com/moheuddin/itms/internal/domain"

// Scanner is implemented by pgx.Row, pgx.CollectableRow, *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanArticle reads one row selected with Columns.
func ScanArticle(s Scanner) (domain.Article, error) {
	var a domain.Article
	err := s.Scan(
		&a.ID,
		&a.Category,
		&a.Section,
		&a.OldSection,
		&a.AssessmentYear,
		&a.Title,
		&a.Content,
	)
	return a, err
}
