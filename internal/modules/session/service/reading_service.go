package service

import (
	"context"
	"math"

	"qurtas/internal/modules/session/domain"
	sessionout "qurtas/internal/modules/session/port/out"
	"qurtas/internal/platform/clock"
	apperrors "qurtas/internal/platform/errors"
	"qurtas/internal/platform/id"
	"qurtas/internal/platform/week"
)

type ReadingService struct {
	clock   clock.Clock
	idGen   id.Generator
	repo    sessionout.SessionRepository
	reviews sessionout.ReviewStore
}

func NewReadingService(clk clock.Clock, idGen id.Generator, repo sessionout.SessionRepository, reviews sessionout.ReviewStore) *ReadingService {
	return &ReadingService{clock: clk, idGen: idGen, repo: repo, reviews: reviews}
}

// Start opens a session at the book's current bookmark. The caller checks
// for an already-active session first; Start itself only constructs,
// validates, and persists.
func (s *ReadingService) Start(ctx context.Context, book domain.BookRef) (domain.Session, error) {
	session := domain.Session{
		ID:        s.idGen.New(),
		BookID:    book.ID,
		StartTime: s.clock.Now(),
		StartPage: book.CurrentPage,
	}
	if err := apperrors.Validation(domain.ValidateForBook(session, book)); err != nil {
		return domain.Session{}, err
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

// Complete closes an active session against its book's page bound. On
// validation failure nothing is persisted; the caller must not assume
// partial writes. The review note is best effort and never fails the
// completion.
func (s *ReadingService) Complete(ctx context.Context, session domain.Session, book domain.BookRef, endPage int, notes domain.NotesPatch) (domain.Session, string, error) {
	if !session.IsActive() {
		return domain.Session{}, "", apperrors.ErrSessionClosed
	}
	session.End(endPage, notes, s.clock.Now())
	if err := apperrors.Validation(domain.ValidateForBook(session, book)); err != nil {
		return domain.Session{}, "", err
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return domain.Session{}, "", err
	}
	reviewPath, _ := s.reviews.Save(ctx, session, book.Title)
	return session, reviewPath, nil
}

// SaveNotes merges a partial notes update into a session; unspecified
// fields keep their prior values. Book state is untouched.
func (s *ReadingService) SaveNotes(ctx context.Context, sessionID string, notes domain.NotesPatch) (domain.Session, error) {
	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return domain.Session{}, err
	}
	session.MergeNotes(notes)
	if err := s.repo.Save(ctx, session); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

// Discard hard-deletes a session that never finished. Completed sessions
// are history and cannot be discarded.
func (s *ReadingService) Discard(ctx context.Context, sessionID string) error {
	session, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if !session.IsActive() {
		return apperrors.ErrSessionClosed
	}
	_, err = s.repo.Delete(ctx, sessionID)
	return err
}

func (s *ReadingService) Get(ctx context.Context, sessionID string) (domain.Session, error) {
	return s.repo.GetByID(ctx, sessionID)
}

func (s *ReadingService) Active(ctx context.Context, bookID string) (domain.Session, error) {
	return s.repo.GetActive(ctx, bookID)
}

func (s *ReadingService) List(ctx context.Context, bookID string) ([]domain.Session, error) {
	return s.repo.GetAll(ctx, bookID)
}

// BookStats aggregates every session of one book.
type BookStats struct {
	TotalPages             int
	TotalDurationMin       int
	SessionCount           int
	AveragePagesPerSession int
	AverageSpeed           int
}

func (s *ReadingService) BookStats(ctx context.Context, bookID string) (BookStats, error) {
	sessions, err := s.repo.GetAll(ctx, bookID)
	if err != nil {
		return BookStats{}, err
	}
	now := s.clock.Now()
	stats := BookStats{SessionCount: len(sessions)}
	for _, session := range sessions {
		stats.TotalPages += session.PagesRead()
		stats.TotalDurationMin += session.DurationAt(now)
	}
	if stats.SessionCount > 0 {
		stats.AveragePagesPerSession = int(math.Round(float64(stats.TotalPages) / float64(stats.SessionCount)))
	}
	if stats.TotalDurationMin > 0 {
		stats.AverageSpeed = int(math.Round(float64(stats.TotalPages) / float64(stats.TotalDurationMin) * 60))
	}
	return stats, nil
}

// SessionTotals aggregates across every session; the week window is the
// canonical Monday-start week containing now.
type SessionTotals struct {
	TotalSessions     int
	WeekSessions      int
	TotalPagesRead    int
	WeeklyPagesRead   int
	TotalReadingMin   int
	AverageSessionMin int
}

func (s *ReadingService) Totals(ctx context.Context) (SessionTotals, error) {
	sessions, err := s.repo.GetAll(ctx, "")
	if err != nil {
		return SessionTotals{}, err
	}
	now := s.clock.Now()
	weekStart := week.Start(now)
	totals := SessionTotals{TotalSessions: len(sessions)}
	for _, session := range sessions {
		pages := session.PagesRead()
		totals.TotalPagesRead += pages
		totals.TotalReadingMin += session.DurationAt(now)
		if week.Contains(weekStart, session.StartTime) {
			totals.WeekSessions++
			totals.WeeklyPagesRead += pages
		}
	}
	if totals.TotalSessions > 0 {
		totals.AverageSessionMin = int(math.Round(float64(totals.TotalReadingMin) / float64(totals.TotalSessions)))
	}
	return totals, nil
}
