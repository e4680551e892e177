package service_test

import (
	"context"
	"testing"

	"qurtas/internal/modules/search/domain"
	"qurtas/internal/modules/search/service"
)

type fakeCatalog struct {
	calls   int
	query   string
	limit   int
	results []domain.Candidate
}

func (f *fakeCatalog) Search(_ context.Context, query string, limit int) ([]domain.Candidate, error) {
	f.calls++
	f.query = query
	f.limit = limit
	return f.results, nil
}

func TestSearchBlankQueryShortCircuits(t *testing.T) {
	t.Parallel()
	catalog := &fakeCatalog{}
	svc := service.NewSearchService(catalog)

	results, err := svc.Search(context.Background(), "   ", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if results != nil {
		t.Fatalf("blank query returns nothing, got %v", results)
	}
	if catalog.calls != 0 {
		t.Fatalf("blank query must not reach the catalog, got %d calls", catalog.calls)
	}
}

func TestSearchClampsLimit(t *testing.T) {
	t.Parallel()
	catalog := &fakeCatalog{}
	svc := service.NewSearchService(catalog)
	ctx := context.Background()

	if _, err := svc.Search(ctx, "dune", 0); err != nil {
		t.Fatalf("search: %v", err)
	}
	if catalog.limit != 20 {
		t.Fatalf("zero limit falls back to the default, got %d", catalog.limit)
	}

	if _, err := svc.Search(ctx, "dune", 500); err != nil {
		t.Fatalf("search: %v", err)
	}
	if catalog.limit != 40 {
		t.Fatalf("limit caps at 40, got %d", catalog.limit)
	}
	if catalog.query != "dune" {
		t.Fatalf("query = %q, want dune", catalog.query)
	}
}

func TestByISBN(t *testing.T) {
	t.Parallel()
	catalog := &fakeCatalog{results: []domain.Candidate{{SourceID: "vol-1", ISBN: "9780441013593"}}}
	svc := service.NewSearchService(catalog)
	ctx := context.Background()

	candidate, found, err := svc.ByISBN(ctx, " 9780441013593 ")
	if err != nil {
		t.Fatalf("by isbn: %v", err)
	}
	if !found || candidate.SourceID != "vol-1" {
		t.Fatalf("unexpected result: %+v found=%v", candidate, found)
	}
	if catalog.query != "isbn:9780441013593" || catalog.limit != 1 {
		t.Fatalf("unexpected catalog call: %q limit %d", catalog.query, catalog.limit)
	}

	if _, found, err := svc.ByISBN(ctx, ""); err != nil || found {
		t.Fatalf("blank isbn returns nothing, got found=%v err=%v", found, err)
	}

	catalog.results = nil
	if _, found, err := svc.ByISBN(ctx, "0000000000"); err != nil || found {
		t.Fatalf("no match reports not found, got found=%v err=%v", found, err)
	}
}
