package out

import (
	"context"

	"qurtas/internal/modules/search/domain"
)

// CatalogClient queries an external book catalog.
type CatalogClient interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error)
}
