package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"qurtas/internal/modules/session/domain"
	sessionout "qurtas/internal/modules/session/port/out"
	"qurtas/internal/platform/markdown"
	"qurtas/internal/platform/slug"
)

// MarkdownReviewStore renders each completed session into a review note
// under <data>/reviews/YYYY/MM, so reflections stay readable outside the
// tracker.
type MarkdownReviewStore struct {
	dataDir string
}

func NewMarkdownReviewStore(dataDir string) sessionout.ReviewStore {
	return &MarkdownReviewStore{dataDir: dataDir}
}

func (s *MarkdownReviewStore) Save(_ context.Context, session domain.Session, bookTitle string) (string, error) {
	if session.EndTime == nil {
		return "", fmt.Errorf("cannot render review for an active session")
	}
	start := session.StartTime
	dir := filepath.Join(s.dataDir, "reviews", start.Format("2006"), start.Format("01"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create review dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", start.Format("02-150405"), slug.Make(bookTitle))
	path := filepath.Join(dir, name)

	end := *session.EndTime
	meta := map[string]any{
		"id":               session.ID,
		"book_id":          session.BookID,
		"book_title":       bookTitle,
		"started_at":       start.Format("2006-01-02T15:04:05Z07:00"),
		"ended_at":         end.Format("2006-01-02T15:04:05Z07:00"),
		"duration_minutes": session.DurationAt(end),
		"start_page":       session.StartPage,
		"pages_read":       session.PagesRead(),
		"pages_per_hour":   session.ReadingSpeedAt(end),
	}
	if session.EndPage != nil {
		meta["end_page"] = *session.EndPage
	}

	body := fmt.Sprintf(
		"# %s\n\n- Pages: %d-%s (%d read)\n- Duration: %d minutes\n\n## What stood out\n\n%s\n\n## Key ideas\n\n%s\n\n## Questions raised\n\n%s\n",
		bookTitle,
		session.StartPage,
		endPageLabel(session),
		session.PagesRead(),
		session.DurationAt(end),
		session.Notes.WhatStoodOut,
		session.Notes.KeyIdeas,
		session.Notes.QuestionsRaised,
	)
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write review note: %w", err)
	}
	return path, nil
}

func endPageLabel(session domain.Session) string {
	if session.EndPage == nil {
		return "?"
	}
	return fmt.Sprintf("%d", *session.EndPage)
}
