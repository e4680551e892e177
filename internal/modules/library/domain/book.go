package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ConclusionNotes is the debrief captured when a book leaves the reading
// state for good. Takeaway/Advice are filled on completion, the remaining
// fields on a drop.
type ConclusionNotes struct {
	Takeaway    string
	Advice      string
	Reason      string
	Gains       string
	ReturnLater bool
}

type Book struct {
	ID          string
	Title       string
	Author      string
	TotalPages  int
	CurrentPage int
	Status      Status
	DateAdded   time.Time
	// DateCompleted is stamped exactly once, when the book first reaches
	// the completed state.
	DateCompleted *time.Time
	CoverURL      string
	ISBN          string
	Publisher     string
	PublishedDate string
	Description   string
	Conclusion    *ConclusionNotes
}

// Progress is the rounded percentage of pages read.
func (b Book) Progress() int {
	if b.TotalPages == 0 {
		return 0
	}
	return int(math.Round(float64(b.CurrentPage) / float64(b.TotalPages) * 100))
}

func (b Book) PagesRemaining() int {
	if remaining := b.TotalPages - b.CurrentPage; remaining > 0 {
		return remaining
	}
	return 0
}

func (b Book) IsCompleted() bool {
	return b.Status == StatusCompleted || b.CurrentPage >= b.TotalPages
}

// UpdateProgress moves the bookmark, clamping to [0, TotalPages]. Reaching
// the last page completes the book; re-invoking at the last page keeps the
// original completion date.
func (b *Book) UpdateProgress(endPage int, now time.Time) {
	page := endPage
	if page > b.TotalPages {
		page = b.TotalPages
	}
	if page < 0 {
		page = 0
	}
	b.CurrentPage = page
	if b.CurrentPage >= b.TotalPages && b.Status != StatusCompleted {
		b.Status = StatusCompleted
		stamp := now
		b.DateCompleted = &stamp
	}
}

// MarkCompleted pins the bookmark to the last page and stamps the
// completion date if the book was not completed before.
func (b *Book) MarkCompleted(now time.Time) {
	b.CurrentPage = b.TotalPages
	if b.Status != StatusCompleted {
		b.Status = StatusCompleted
		stamp := now
		b.DateCompleted = &stamp
	}
}

// MetadataPatch updates only the fields that were supplied; nil fields
// keep their prior values.
type MetadataPatch struct {
	Title         *string
	Author        *string
	TotalPages    *int
	CoverURL      *string
	ISBN          *string
	Publisher     *string
	PublishedDate *string
	Description   *string
}

// ApplyMetadata merges the patch. Shrinking the page count clamps the
// bookmark to the new length.
func (b *Book) ApplyMetadata(patch MetadataPatch) {
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Author != nil {
		b.Author = *patch.Author
	}
	if patch.TotalPages != nil {
		b.TotalPages = *patch.TotalPages
		if b.CurrentPage > b.TotalPages {
			b.CurrentPage = b.TotalPages
		}
	}
	if patch.CoverURL != nil {
		b.CoverURL = *patch.CoverURL
	}
	if patch.ISBN != nil {
		b.ISBN = *patch.ISBN
	}
	if patch.Publisher != nil {
		b.Publisher = *patch.Publisher
	}
	if patch.PublishedDate != nil {
		b.PublishedDate = *patch.PublishedDate
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
}

// ValidateBook checks structural rules and reports every violation at once.
func ValidateBook(b Book) []string {
	var reasons []string
	if strings.TrimSpace(b.Title) == "" {
		reasons = append(reasons, "title is required")
	}
	if strings.TrimSpace(b.Author) == "" {
		reasons = append(reasons, "author is required")
	}
	if b.TotalPages <= 0 {
		reasons = append(reasons, "total pages must be a positive number")
	}
	if b.CurrentPage < 0 || (b.TotalPages > 0 && b.CurrentPage > b.TotalPages) {
		reasons = append(reasons, fmt.Sprintf("current page must stay within 0..%d", b.TotalPages))
	}
	return reasons
}
