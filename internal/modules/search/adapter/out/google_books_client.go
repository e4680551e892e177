package out

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"qurtas/internal/modules/search/domain"
	searchout "qurtas/internal/modules/search/port/out"
)

const DefaultBaseURL = "https://www.googleapis.com/books/v1/volumes"

// GoogleBooksClient implements the catalog port against the Google Books
// volumes endpoint. The API key is optional; without one the public quota
// applies.
type GoogleBooksClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

var _ searchout.CatalogClient = (*GoogleBooksClient)(nil)

func NewGoogleBooksClient(httpClient *http.Client, baseURL, apiKey string) *GoogleBooksClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GoogleBooksClient{httpClient: httpClient, baseURL: baseURL, apiKey: apiKey}
}

type volumeList struct {
	Items []volume `json:"items"`
}

type volume struct {
	ID   string     `json:"id"`
	Info volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title               string       `json:"title"`
	Authors             []string     `json:"authors"`
	PageCount           int          `json:"pageCount"`
	Publisher           string       `json:"publisher"`
	PublishedDate       string       `json:"publishedDate"`
	Description         string       `json:"description"`
	IndustryIdentifiers []identifier `json:"industryIdentifiers"`
	ImageLinks          *imageLinks  `json:"imageLinks"`
}

type identifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type imageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

func (c *GoogleBooksClient) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(limit))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}
	var list volumeList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	candidates := make([]domain.Candidate, 0, len(list.Items))
	for _, item := range list.Items {
		candidates = append(candidates, normalize(item))
	}
	return candidates, nil
}

func normalize(item volume) domain.Candidate {
	info := item.Info
	candidate := domain.Candidate{
		SourceID:      item.ID,
		Title:         info.Title,
		Author:        strings.Join(info.Authors, ", "),
		TotalPages:    info.PageCount,
		ISBN:          pickISBN(info.IndustryIdentifiers),
		Publisher:     info.Publisher,
		PublishedDate: info.PublishedDate,
		Description:   info.Description,
	}
	if candidate.Title == "" {
		candidate.Title = "Unknown Title"
	}
	if candidate.Author == "" {
		candidate.Author = "Unknown Author"
	}
	if info.ImageLinks != nil {
		cover := info.ImageLinks.Thumbnail
		if cover == "" {
			cover = info.ImageLinks.SmallThumbnail
		}
		candidate.CoverURL = strings.Replace(cover, "http://", "https://", 1)
	}
	return candidate
}

// pickISBN prefers ISBN-13 over ISBN-10.
func pickISBN(ids []identifier) string {
	isbn10 := ""
	for _, id := range ids {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			isbn10 = id.Identifier
		}
	}
	return isbn10
}
