// Package seeder loads article fixtures into the article store.
package seeder

import (
	"context"

	"github.com/moheuddin/itms/internal/domain"
)

// ArticleBulkRepo is the write contract the seeder consumes.
// Implemented by both article repositories.
type ArticleBulkRepo interface {
	CreateBatch(ctx context.Context, articles []domain.Article) (int, error)
}
