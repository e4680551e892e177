package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	libraryout "qurtas/internal/modules/library/adapter/out"
	librarydomain "qurtas/internal/modules/library/domain"
	librarydto "qurtas/internal/modules/library/dto"
	libraryin "qurtas/internal/modules/library/port/in"
	libraryservice "qurtas/internal/modules/library/service"
	libraryusecase "qurtas/internal/modules/library/usecase"
	sessionout "qurtas/internal/modules/session/adapter/out"
	sessiondomain "qurtas/internal/modules/session/domain"
	"qurtas/internal/modules/session/dto"
	sessionin "qurtas/internal/modules/session/port/in"
	sessionport "qurtas/internal/modules/session/port/out"
	"qurtas/internal/modules/session/service"
	"qurtas/internal/modules/session/usecase"
	apperrors "qurtas/internal/platform/errors"
	"qurtas/internal/platform/storage"
	"qurtas/internal/platform/tx"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeID struct {
	next int
}

func (f *fakeID) New() string {
	f.next++
	return fmt.Sprintf("id-%d", f.next)
}

type fakeIndex struct{}

func (fakeIndex) Upsert(context.Context, librarydomain.Book) error { return nil }
func (fakeIndex) Delete(context.Context, string) error             { return nil }
func (fakeIndex) Reset(context.Context) error                      { return nil }
func (fakeIndex) List(context.Context, librarydomain.Status) ([]librarydomain.Book, error) {
	return nil, nil
}

type fakeReviews struct {
	saved int
}

func (f *fakeReviews) Save(_ context.Context, session sessiondomain.Session, _ string) (string, error) {
	f.saved++
	return "reviews/" + session.ID + ".md", nil
}

type fixture struct {
	clock    *fakeClock
	reviews  *fakeReviews
	store    *sessionout.JSONSessionStore
	library  libraryin.Usecase
	sessions sessionin.Usecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := storage.NewMemStore()
	clk := &fakeClock{now: time.Date(2024, time.March, 6, 9, 0, 0, 0, time.UTC)}
	ids := &fakeID{}

	sessionStore := sessionout.NewJSONSessionStore(store)
	library := libraryusecase.NewInteractor(libraryservice.NewBookService(
		clk, ids, libraryout.NewJSONBookStore(store), sessionStore, fakeIndex{}, tx.NoopManager{},
	))
	reviews := &fakeReviews{}
	svc := service.NewReadingService(clk, ids, sessionStore, reviews)
	sessions := usecase.NewInteractor(svc, library, clk, tx.NoopManager{})

	return &fixture{clock: clk, reviews: reviews, store: sessionStore, library: library, sessions: sessions}
}

func (f *fixture) addBook(t *testing.T, title string, pages int) librarydto.BookOutput {
	t.Helper()
	book, err := f.library.Add(context.Background(), librarydto.AddBookInput{
		Title: title, Author: "Test Author", TotalPages: pages,
	})
	if err != nil {
		t.Fatalf("add book: %v", err)
	}
	return book
}

func TestStartIsIdempotentWhileActive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	book := f.addBook(t, "Dune", 412)

	first, err := f.sessions.Start(ctx, dto.StartInput{BookID: book.ID})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !first.Active || first.StartPage != 0 {
		t.Fatalf("unexpected first session: %+v", first)
	}

	f.clock.advance(10 * time.Minute)
	second, err := f.sessions.Start(ctx, dto.StartInput{BookID: book.ID})
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("starting twice must return the existing session, got %s and %s", first.ID, second.ID)
	}
	if !second.StartTime.Equal(first.StartTime) {
		t.Fatalf("existing session must be unchanged")
	}
}

func TestCompleteAdvancesBookmarkAcrossSessions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	book := f.addBook(t, "Dune", 300)

	first, err := f.sessions.Start(ctx, dto.StartInput{BookID: book.ID})
	if err != nil {
		t.Fatalf("start first: %v", err)
	}
	f.clock.advance(30 * time.Minute)
	stood := "the spice must flow"
	done, err := f.sessions.Complete(ctx, dto.CompleteInput{
		SessionID: first.ID,
		EndPage:   50,
		Notes:     dto.NotesInput{WhatStoodOut: &stood},
	})
	if err != nil {
		t.Fatalf("complete first: %v", err)
	}
	if done.PagesRead != 50 || done.DurationMin != 30 || done.ReadingSpeed != 100 {
		t.Fatalf("unexpected completed session: %+v", done)
	}
	if done.ReviewPath == "" || f.reviews.saved != 1 {
		t.Fatalf("completion should render a review note, got %+v", done)
	}

	detail, err := f.library.Get(ctx, book.ID)
	if err != nil {
		t.Fatalf("get book: %v", err)
	}
	if detail.CurrentPage != 50 || detail.Status != "reading" {
		t.Fatalf("bookmark should advance without completing, got %+v", detail)
	}

	second, err := f.sessions.Start(ctx, dto.StartInput{BookID: book.ID})
	if err != nil {
		t.Fatalf("start second: %v", err)
	}
	if second.StartPage != 50 {
		t.Fatalf("second session should pick up the bookmark, got %d", second.StartPage)
	}
	f.clock.advance(2 * time.Hour)
	if _, err := f.sessions.Complete(ctx, dto.CompleteInput{SessionID: second.ID, EndPage: 300}); err != nil {
		t.Fatalf("complete second: %v", err)
	}

	detail, err = f.library.Get(ctx, book.ID)
	if err != nil {
		t.Fatalf("get finished book: %v", err)
	}
	if detail.Status != "completed" || detail.DateCompleted == nil {
		t.Fatalf("reaching the last page completes the book, got %+v", detail)
	}
}

func TestCompleteRejectsPageBeyondBook(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	book := f.addBook(t, "Dune", 100)

	started, err := f.sessions.Start(ctx, dto.StartInput{BookID: book.ID})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	f.clock.advance(15 * time.Minute)

	_, err = f.sessions.Complete(ctx, dto.CompleteInput{SessionID: started.ID, EndPage: 150})
	if !apperrors.IsValidation(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}

	active, err := f.sessions.Active(ctx, book.ID)
	if err != nil {
		t.Fatalf("session must stay active after a failed completion: %v", err)
	}
	if active.ID != started.ID {
		t.Fatalf("unexpected active session %s", active.ID)
	}
	detail, err := f.library.Get(ctx, book.ID)
	if err != nil {
		t.Fatalf("get book: %v", err)
	}
	if detail.CurrentPage != 0 {
		t.Fatalf("bookmark must not move on a failed completion, got %d", detail.CurrentPage)
	}
}

// gatedSessionStore holds the first two GetByID calls at a barrier until
// both have read, forcing two concurrent completions to observe the same
// still-active session before either takes the per-book lock.
type gatedSessionStore struct {
	sessionport.SessionRepository

	mu    sync.Mutex
	reads int
	both  chan struct{}
}

func (g *gatedSessionStore) GetByID(ctx context.Context, id string) (sessiondomain.Session, error) {
	session, err := g.SessionRepository.GetByID(ctx, id)
	g.mu.Lock()
	g.reads++
	if g.reads == 2 {
		close(g.both)
	}
	gate := g.reads <= 2
	g.mu.Unlock()
	if gate {
		<-g.both
	}
	return session, err
}

func TestConcurrentCompleteKeepsSessionTerminal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := storage.NewMemStore()
	clk := &fakeClock{now: time.Date(2024, time.March, 6, 9, 0, 0, 0, time.UTC)}
	ids := &fakeID{}

	sessionStore := sessionout.NewJSONSessionStore(store)
	library := libraryusecase.NewInteractor(libraryservice.NewBookService(
		clk, ids, libraryout.NewJSONBookStore(store), sessionStore, fakeIndex{}, tx.NoopManager{},
	))
	gated := &gatedSessionStore{SessionRepository: sessionStore, both: make(chan struct{})}
	svc := service.NewReadingService(clk, ids, gated, &fakeReviews{})
	sessions := usecase.NewInteractor(svc, library, clk, tx.NoopManager{})

	book, err := library.Add(ctx, librarydto.AddBookInput{Title: "Dune", Author: "Frank Herbert", TotalPages: 300})
	if err != nil {
		t.Fatalf("add book: %v", err)
	}
	started, err := sessions.Start(ctx, dto.StartInput{BookID: book.ID})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.advance(30 * time.Minute)

	errs := make(chan error, 2)
	for _, page := range []int{40, 60} {
		go func(page int) {
			_, err := sessions.Complete(ctx, dto.CompleteInput{SessionID: started.ID, EndPage: page})
			errs <- err
		}(page)
	}

	succeeded, refused := 0, 0
	for i := 0; i < 2; i++ {
		switch err := <-errs; {
		case err == nil:
			succeeded++
		case errors.Is(err, apperrors.ErrSessionClosed):
			refused++
		default:
			t.Fatalf("unexpected completion error: %v", err)
		}
	}
	if succeeded != 1 || refused != 1 {
		t.Fatalf("exactly one concurrent completion must win, got %d wins and %d refusals", succeeded, refused)
	}

	final, err := sessions.List(ctx, book.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(final) != 1 || final[0].Active {
		t.Fatalf("expected a single closed session, got %+v", final)
	}
}

func TestCompleteTwiceReturnsSessionClosed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	book := f.addBook(t, "Dune", 200)

	started, err := f.sessions.Start(ctx, dto.StartInput{BookID: book.ID})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	f.clock.advance(20 * time.Minute)
	if _, err := f.sessions.Complete(ctx, dto.CompleteInput{SessionID: started.ID, EndPage: 40}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := f.sessions.Complete(ctx, dto.CompleteInput{SessionID: started.ID, EndPage: 60}); !errors.Is(err, apperrors.ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}

func TestCompleteWithMissingBookIsConsistencyError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	book := f.addBook(t, "Dune", 200)

	started, err := f.sessions.Start(ctx, dto.StartInput{BookID: book.ID})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := f.library.Delete(ctx, book.ID); err != nil {
		t.Fatalf("delete book: %v", err)
	}
	// The cascade removed the session too; restore it to simulate a broken
	// cascade.
	if err := f.store.Save(ctx, sessiondomain.Session{
		ID:        started.ID,
		BookID:    book.ID,
		StartTime: started.StartTime,
		StartPage: started.StartPage,
	}); err != nil {
		t.Fatalf("restore session: %v", err)
	}

	_, err = f.sessions.Complete(ctx, dto.CompleteInput{SessionID: started.ID, EndPage: 40})
	var cerr *apperrors.ConsistencyError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected a consistency error, got %v", err)
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	book := f.addBook(t, "Dune", 200)

	started, err := f.sessions.Start(ctx, dto.StartInput{BookID: book.ID})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := f.sessions.Discard(ctx, started.ID); err != nil {
		t.Fatalf("discard active session: %v", err)
	}
	if _, err := f.sessions.Active(ctx, book.ID); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("discarded session must not remain active, got %v", err)
	}

	again, err := f.sessions.Start(ctx, dto.StartInput{BookID: book.ID})
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	f.clock.advance(10 * time.Minute)
	if _, err := f.sessions.Complete(ctx, dto.CompleteInput{SessionID: again.ID, EndPage: 30}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := f.sessions.Discard(ctx, again.ID); !errors.Is(err, apperrors.ErrSessionClosed) {
		t.Fatalf("completed sessions are history, got %v", err)
	}
}

func TestSaveNotesMergesPartially(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	book := f.addBook(t, "Dune", 200)

	started, err := f.sessions.Start(ctx, dto.StartInput{BookID: book.ID})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	ideas := "sandworms as ecology"
	if _, err := f.sessions.SaveNotes(ctx, dto.SaveNotesInput{SessionID: started.ID, Notes: dto.NotesInput{KeyIdeas: &ideas}}); err != nil {
		t.Fatalf("save notes: %v", err)
	}
	questions := "who are the Bene Gesserit really"
	updated, err := f.sessions.SaveNotes(ctx, dto.SaveNotesInput{SessionID: started.ID, Notes: dto.NotesInput{QuestionsRaised: &questions}})
	if err != nil {
		t.Fatalf("save second note: %v", err)
	}
	if updated.Notes.KeyIdeas != ideas || updated.Notes.QuestionsRaised != questions {
		t.Fatalf("patches must merge, got %+v", updated.Notes)
	}
	if !updated.HasNotes {
		t.Fatalf("session with notes should report HasNotes")
	}
}

func TestGlobalStats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	first := f.addBook(t, "Dune", 300)
	f.addBook(t, "Hyperion", 482)

	started, err := f.sessions.Start(ctx, dto.StartInput{BookID: first.ID})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	f.clock.advance(30 * time.Minute)
	if _, err := f.sessions.Complete(ctx, dto.CompleteInput{SessionID: started.ID, EndPage: 60}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	stats, err := f.sessions.GlobalStats(ctx)
	if err != nil {
		t.Fatalf("global stats: %v", err)
	}
	if stats.TotalBooks != 2 || stats.BooksReading != 2 || stats.BooksCompleted != 0 {
		t.Fatalf("unexpected book counts: %+v", stats)
	}
	if stats.TotalSessions != 1 || stats.WeekSessions != 1 {
		t.Fatalf("unexpected session counts: %+v", stats)
	}
	if stats.TotalPagesRead != 60 || stats.WeeklyPagesRead != 60 {
		t.Fatalf("unexpected page totals: %+v", stats)
	}
	if stats.TotalReadingMin != 30 || stats.AverageSessionMin != 30 {
		t.Fatalf("unexpected durations: %+v", stats)
	}
}

func TestBookStats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	book := f.addBook(t, "Dune", 300)

	for _, end := range []int{40, 100} {
		started, err := f.sessions.Start(ctx, dto.StartInput{BookID: book.ID})
		if err != nil {
			t.Fatalf("start: %v", err)
		}
		f.clock.advance(30 * time.Minute)
		if _, err := f.sessions.Complete(ctx, dto.CompleteInput{SessionID: started.ID, EndPage: end}); err != nil {
			t.Fatalf("complete: %v", err)
		}
	}

	stats, err := f.sessions.BookStats(ctx, book.ID)
	if err != nil {
		t.Fatalf("book stats: %v", err)
	}
	if stats.SessionCount != 2 || stats.TotalPages != 100 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.TotalDurationMin != 60 || stats.AveragePagesPerSession != 50 || stats.AverageSpeed != 100 {
		t.Fatalf("unexpected averages: %+v", stats)
	}
}
