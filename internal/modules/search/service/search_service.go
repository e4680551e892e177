package service

import (
	"context"
	"strings"

	"qurtas/internal/modules/search/domain"
	"qurtas/internal/modules/search/port/out"
)

const (
	defaultLimit = 20
	maxLimit     = 40
)

// SearchService fronts the catalog client with query hygiene. A blank
// query short-circuits without a network round trip.
type SearchService struct {
	catalog out.CatalogClient
}

func NewSearchService(catalog out.CatalogClient) *SearchService {
	return &SearchService{catalog: catalog}
}

func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return s.catalog.Search(ctx, query, limit)
}

// ByISBN looks up a single volume by its ISBN.
func (s *SearchService) ByISBN(ctx context.Context, isbn string) (domain.Candidate, bool, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return domain.Candidate{}, false, nil
	}
	candidates, err := s.catalog.Search(ctx, "isbn:"+isbn, 1)
	if err != nil {
		return domain.Candidate{}, false, err
	}
	if len(candidates) == 0 {
		return domain.Candidate{}, false, nil
	}
	return candidates[0], true, nil
}
