package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	librarydto "qurtas/internal/modules/library/dto"
	libraryin "qurtas/internal/modules/library/port/in"
	"qurtas/internal/modules/session/domain"
	"qurtas/internal/modules/session/dto"
	sessionin "qurtas/internal/modules/session/port/in"
	"qurtas/internal/modules/session/service"
	"qurtas/internal/platform/clock"
	apperrors "qurtas/internal/platform/errors"
	"qurtas/internal/platform/tx"
)

// Interactor drives the reading workflow: it loads books through the
// library port, applies session rules through the service, and persists
// both sides. Start and Complete take a per-book lock so the
// one-active-session invariant holds even with concurrent callers.
type Interactor struct {
	svc     *service.ReadingService
	library libraryin.Usecase
	clock   clock.Clock
	tx      tx.Manager

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewInteractor(svc *service.ReadingService, library libraryin.Usecase, clk clock.Clock, txm tx.Manager) sessionin.Usecase {
	return &Interactor{
		svc:     svc,
		library: library,
		clock:   clk,
		tx:      txm,
		locks:   map[string]*sync.Mutex{},
	}
}

func (i *Interactor) lockBook(bookID string) func() {
	i.mu.Lock()
	lock, ok := i.locks[bookID]
	if !ok {
		lock = &sync.Mutex{}
		i.locks[bookID] = lock
	}
	i.mu.Unlock()
	lock.Lock()
	return lock.Unlock
}

// Start opens a session for a book, capturing the current bookmark as the
// start page. Starting twice without completing returns the existing
// active session unchanged.
func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.SessionOutput, error) {
	book, err := i.library.Get(ctx, input.BookID)
	if err != nil {
		return dto.SessionOutput{}, fmt.Errorf("load book %s: %w", input.BookID, err)
	}

	unlock := i.lockBook(book.ID)
	defer unlock()

	active, err := i.svc.Active(ctx, book.ID)
	if err == nil {
		return i.toOutput(active), nil
	}
	if !errors.Is(err, apperrors.ErrNoActiveSession) {
		return dto.SessionOutput{}, err
	}

	session, err := i.svc.Start(ctx, domain.BookRef{
		ID:          book.ID,
		Title:       book.Title,
		CurrentPage: book.CurrentPage,
		TotalPages:  book.TotalPages,
	})
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return i.toOutput(session), nil
}

// Complete ends a session and advances the book's bookmark. A session whose
// book has vanished is a broken cascade and surfaces as a consistency
// error. On validation failure neither the session nor the book is
// persisted.
func (i *Interactor) Complete(ctx context.Context, input dto.CompleteInput) (dto.SessionOutput, error) {
	session, err := i.svc.Get(ctx, input.SessionID)
	if err != nil {
		return dto.SessionOutput{}, fmt.Errorf("load session %s: %w", input.SessionID, err)
	}

	unlock := i.lockBook(session.BookID)
	defer unlock()

	// The first load only resolved the book id; a concurrent completion may
	// have closed the session before the lock was taken.
	session, err = i.svc.Get(ctx, input.SessionID)
	if err != nil {
		return dto.SessionOutput{}, fmt.Errorf("load session %s: %w", input.SessionID, err)
	}

	book, err := i.library.Get(ctx, session.BookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return dto.SessionOutput{}, &apperrors.ConsistencyError{
				Detail: fmt.Sprintf("session %s references missing book %s", session.ID, session.BookID),
			}
		}
		return dto.SessionOutput{}, err
	}

	ref := domain.BookRef{ID: book.ID, Title: book.Title, CurrentPage: book.CurrentPage, TotalPages: book.TotalPages}
	var completed domain.Session
	var reviewPath string
	err = i.tx.Within(ctx, func(ctx context.Context) error {
		var innerErr error
		completed, reviewPath, innerErr = i.svc.Complete(ctx, session, ref, input.EndPage, toPatch(input.Notes))
		if innerErr != nil {
			return innerErr
		}
		_, innerErr = i.library.UpdateProgress(ctx, librarydto.UpdateProgressInput{BookID: book.ID, Page: input.EndPage})
		return innerErr
	})
	if err != nil {
		return dto.SessionOutput{}, err
	}

	out := i.toOutput(completed)
	out.ReviewPath = reviewPath
	return out, nil
}

func (i *Interactor) SaveNotes(ctx context.Context, input dto.SaveNotesInput) (dto.SessionOutput, error) {
	session, err := i.svc.SaveNotes(ctx, input.SessionID, toPatch(input.Notes))
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return i.toOutput(session), nil
}

func (i *Interactor) Discard(ctx context.Context, sessionID string) error {
	return i.svc.Discard(ctx, sessionID)
}

func (i *Interactor) Active(ctx context.Context, bookID string) (dto.SessionOutput, error) {
	session, err := i.svc.Active(ctx, bookID)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return i.toOutput(session), nil
}

func (i *Interactor) List(ctx context.Context, bookID string) ([]dto.SessionOutput, error) {
	sessions, err := i.svc.List(ctx, bookID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionOutput, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, i.toOutput(session))
	}
	return out, nil
}

func (i *Interactor) BookStats(ctx context.Context, bookID string) (dto.BookStatsOutput, error) {
	stats, err := i.svc.BookStats(ctx, bookID)
	if err != nil {
		return dto.BookStatsOutput{}, err
	}
	return dto.BookStatsOutput{
		TotalPages:             stats.TotalPages,
		TotalDurationMin:       stats.TotalDurationMin,
		SessionCount:           stats.SessionCount,
		AveragePagesPerSession: stats.AveragePagesPerSession,
		AverageSpeed:           stats.AverageSpeed,
	}, nil
}

func (i *Interactor) GlobalStats(ctx context.Context) (dto.GlobalStatsOutput, error) {
	totals, err := i.svc.Totals(ctx)
	if err != nil {
		return dto.GlobalStatsOutput{}, err
	}
	books, err := i.library.List(ctx, "")
	if err != nil {
		return dto.GlobalStatsOutput{}, err
	}
	out := dto.GlobalStatsOutput{
		TotalBooks:        len(books),
		TotalSessions:     totals.TotalSessions,
		WeekSessions:      totals.WeekSessions,
		TotalPagesRead:    totals.TotalPagesRead,
		WeeklyPagesRead:   totals.WeeklyPagesRead,
		TotalReadingMin:   totals.TotalReadingMin,
		AverageSessionMin: totals.AverageSessionMin,
	}
	for _, book := range books {
		switch book.Status {
		case "reading":
			out.BooksReading++
		case "completed":
			out.BooksCompleted++
		}
	}
	return out, nil
}

func (i *Interactor) toOutput(session domain.Session) dto.SessionOutput {
	now := i.clock.Now()
	return dto.SessionOutput{
		ID:           session.ID,
		BookID:       session.BookID,
		StartTime:    session.StartTime,
		EndTime:      session.EndTime,
		StartPage:    session.StartPage,
		EndPage:      session.EndPage,
		PagesRead:    session.PagesRead(),
		DurationMin:  session.DurationAt(now),
		ReadingSpeed: session.ReadingSpeedAt(now),
		Active:       session.IsActive(),
		HasNotes:     session.HasNotes(),
		Notes: dto.NotesOutput{
			WhatStoodOut:    session.Notes.WhatStoodOut,
			KeyIdeas:        session.Notes.KeyIdeas,
			QuestionsRaised: session.Notes.QuestionsRaised,
		},
	}
}

func toPatch(notes dto.NotesInput) domain.NotesPatch {
	return domain.NotesPatch{
		WhatStoodOut:    notes.WhatStoodOut,
		KeyIdeas:        notes.KeyIdeas,
		QuestionsRaised: notes.QuestionsRaised,
	}
}
