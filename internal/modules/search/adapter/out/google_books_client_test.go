package out_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"qurtas/internal/modules/search/adapter/out"
)

const volumesFixture = `{
  "items": [
    {
      "id": "vol-1",
      "volumeInfo": {
        "title": "Dune",
        "authors": ["Frank Herbert"],
        "pageCount": 412,
        "publisher": "Chilton Books",
        "publishedDate": "1965",
        "industryIdentifiers": [
          {"type": "ISBN_10", "identifier": "0441013597"},
          {"type": "ISBN_13", "identifier": "9780441013593"}
        ],
        "imageLinks": {"thumbnail": "http://books.google.com/covers/dune.jpg"}
      }
    },
    {
      "id": "vol-2",
      "volumeInfo": {
        "industryIdentifiers": [
          {"type": "ISBN_10", "identifier": "0123456789"}
        ],
        "imageLinks": {"smallThumbnail": "https://books.google.com/covers/small.jpg"}
      }
    }
  ]
}`

func TestSearchNormalizesVolumes(t *testing.T) {
	t.Parallel()
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(volumesFixture)); err != nil {
			t.Errorf("write fixture: %v", err)
		}
	}))
	defer server.Close()

	client := out.NewGoogleBooksClient(server.Client(), server.URL, "test-key")
	candidates, err := client.Search(context.Background(), "dune", 20)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if gotQuery.Get("q") != "dune" {
		t.Fatalf("q = %q, want dune", gotQuery.Get("q"))
	}
	if gotQuery.Get("maxResults") != "20" {
		t.Fatalf("maxResults = %q, want 20", gotQuery.Get("maxResults"))
	}
	if gotQuery.Get("key") != "test-key" {
		t.Fatalf("key = %q, want test-key", gotQuery.Get("key"))
	}

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}

	first := candidates[0]
	if first.SourceID != "vol-1" || first.Title != "Dune" || first.Author != "Frank Herbert" {
		t.Fatalf("unexpected first candidate: %+v", first)
	}
	if first.TotalPages != 412 {
		t.Fatalf("total pages = %d, want 412", first.TotalPages)
	}
	if first.ISBN != "9780441013593" {
		t.Fatalf("isbn-13 is preferred, got %s", first.ISBN)
	}
	if first.CoverURL != "https://books.google.com/covers/dune.jpg" {
		t.Fatalf("cover url should be upgraded to https, got %s", first.CoverURL)
	}

	second := candidates[1]
	if second.Title != "Unknown Title" || second.Author != "Unknown Author" {
		t.Fatalf("missing fields should fall back, got %+v", second)
	}
	if second.ISBN != "0123456789" {
		t.Fatalf("isbn-10 is the fallback, got %s", second.ISBN)
	}
	if second.CoverURL != "https://books.google.com/covers/small.jpg" {
		t.Fatalf("small thumbnail is the cover fallback, got %s", second.CoverURL)
	}
}

func TestSearchOmitsKeyWhenUnset(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.URL.Query()["key"]; ok {
			t.Errorf("key param must be omitted without an api key")
		}
		w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	client := out.NewGoogleBooksClient(server.Client(), server.URL, "")
	candidates, err := client.Search(context.Background(), "dune", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates, got %d", len(candidates))
	}
}

func TestSearchSurfacesUpstreamErrors(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := out.NewGoogleBooksClient(server.Client(), server.URL, "")
	if _, err := client.Search(context.Background(), "dune", 5); err == nil {
		t.Fatalf("expected an error for a non-200 response")
	}
}
