package domain

import (
	"fmt"
	"math"
	"time"
)

// Notes is the structured reflection captured during or after a session.
// All fields are free text and optional.
type Notes struct {
	WhatStoodOut    string
	KeyIdeas        string
	QuestionsRaised string
}

// NotesPatch updates only the fields that were supplied; nil fields keep
// their prior values.
type NotesPatch struct {
	WhatStoodOut    *string
	KeyIdeas        *string
	QuestionsRaised *string
}

// Session is one timed reading sitting. A nil EndTime means the session is
// still active; at most one active session exists per book.
type Session struct {
	ID        string
	BookID    string
	StartTime time.Time
	EndTime   *time.Time
	StartPage int
	EndPage   *int
	Notes     Notes
}

// BookRef is the slice of book state the session workflow needs: where the
// bookmark sits and how many pages the page bound allows.
type BookRef struct {
	ID          string
	Title       string
	CurrentPage int
	TotalPages  int
}

func (s Session) IsActive() bool {
	return s.EndTime == nil
}

func (s Session) PagesRead() int {
	if s.EndPage == nil {
		return 0
	}
	if read := *s.EndPage - s.StartPage; read > 0 {
		return read
	}
	return 0
}

// DurationAt returns the session length in whole minutes, measured against
// now while the session is still running.
func (s Session) DurationAt(now time.Time) int {
	end := now
	if s.EndTime != nil {
		end = *s.EndTime
	}
	return int(math.Round(end.Sub(s.StartTime).Minutes()))
}

func (s Session) HasNotes() bool {
	return s.Notes.WhatStoodOut != "" || s.Notes.KeyIdeas != "" || s.Notes.QuestionsRaised != ""
}

// ReadingSpeedAt is the pace in pages per hour, zero when either the
// duration or the page count is zero.
func (s Session) ReadingSpeedAt(now time.Time) int {
	duration := s.DurationAt(now)
	pages := s.PagesRead()
	if duration == 0 || pages == 0 {
		return 0
	}
	return int(math.Round(float64(pages) / float64(duration) * 60))
}

// End closes the session at now, recording the final page and merging any
// notes taken along the way.
func (s *Session) End(endPage int, notes NotesPatch, now time.Time) {
	stamp := now
	s.EndTime = &stamp
	page := endPage
	s.EndPage = &page
	s.MergeNotes(notes)
}

func (s *Session) MergeNotes(patch NotesPatch) {
	if patch.WhatStoodOut != nil {
		s.Notes.WhatStoodOut = *patch.WhatStoodOut
	}
	if patch.KeyIdeas != nil {
		s.Notes.KeyIdeas = *patch.KeyIdeas
	}
	if patch.QuestionsRaised != nil {
		s.Notes.QuestionsRaised = *patch.QuestionsRaised
	}
}

// Validate checks structural rules and reports every violation at once.
func Validate(s Session) []string {
	var reasons []string
	if s.BookID == "" {
		reasons = append(reasons, "book id is required")
	}
	if s.StartPage < 0 {
		reasons = append(reasons, "start page must be 0 or greater")
	}
	if s.EndPage != nil && *s.EndPage < s.StartPage {
		reasons = append(reasons, "end page must be greater than or equal to start page")
	}
	return reasons
}

// ValidateForBook adds the owning book's page bound to the structural rules.
func ValidateForBook(s Session, book BookRef) []string {
	reasons := Validate(s)
	if s.EndPage != nil && *s.EndPage > book.TotalPages {
		reasons = append(reasons, fmt.Sprintf("end page (%d) exceeds total book pages (%d)", *s.EndPage, book.TotalPages))
	}
	return reasons
}
