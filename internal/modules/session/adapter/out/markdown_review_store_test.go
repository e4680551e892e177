package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"qurtas/internal/modules/session/adapter/out"
	"qurtas/internal/modules/session/domain"
)

func TestReviewStoreWritesNote(t *testing.T) {
	t.Parallel()
	dataDir := t.TempDir()
	store := out.NewMarkdownReviewStore(dataDir)

	start := time.Date(2024, time.March, 6, 9, 30, 15, 0, time.UTC)
	end := start.Add(45 * time.Minute)
	page := 120
	session := domain.Session{
		ID:        "s-1",
		BookID:    "b-1",
		StartTime: start,
		EndTime:   &end,
		StartPage: 75,
		EndPage:   &page,
		Notes: domain.Notes{
			WhatStoodOut: "the sandworm reveal",
			KeyIdeas:     "ecology as politics",
		},
	}

	path, err := store.Save(context.Background(), session, "Dune: Part One!")
	if err != nil {
		t.Fatalf("save review: %v", err)
	}
	want := filepath.Join(dataDir, "reviews", "2024", "03", "06-093015-dune-part-one.md")
	if path != want {
		t.Fatalf("path = %s, want %s", path, want)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read review: %v", err)
	}
	text := string(content)
	if !strings.HasPrefix(text, "---\n") {
		t.Fatalf("review should open with frontmatter, got %q", text[:10])
	}
	for _, want := range []string{
		"id: s-1",
		"book_title: 'Dune: Part One!'",
		"duration_minutes: 45",
		"pages_read: 45",
		"pages_per_hour: 60",
		"end_page: 120",
		"# Dune: Part One!",
		"- Pages: 75-120 (45 read)",
		"## What stood out",
		"the sandworm reveal",
		"## Key ideas",
		"ecology as politics",
		"## Questions raised",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("review missing %q:\n%s", want, text)
		}
	}
}

func TestReviewStoreRejectsActiveSession(t *testing.T) {
	t.Parallel()
	store := out.NewMarkdownReviewStore(t.TempDir())
	session := domain.Session{
		ID:        "s-1",
		BookID:    "b-1",
		StartTime: time.Now().UTC(),
		StartPage: 10,
	}
	if _, err := store.Save(context.Background(), session, "Dune"); err == nil {
		t.Fatalf("expected an error for an active session")
	}
}
