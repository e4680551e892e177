package usecase_test

import (
	"context"
	"testing"
	"time"

	goalout "qurtas/internal/modules/goal/adapter/out"
	"qurtas/internal/modules/goal/dto"
	"qurtas/internal/modules/goal/service"
	"qurtas/internal/modules/goal/usecase"
	sessiondto "qurtas/internal/modules/session/dto"
	"qurtas/internal/platform/storage"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeSessions struct {
	sessions []sessiondto.SessionOutput
}

func (f *fakeSessions) Start(context.Context, sessiondto.StartInput) (sessiondto.SessionOutput, error) {
	return sessiondto.SessionOutput{}, nil
}

func (f *fakeSessions) Complete(context.Context, sessiondto.CompleteInput) (sessiondto.SessionOutput, error) {
	return sessiondto.SessionOutput{}, nil
}

func (f *fakeSessions) SaveNotes(context.Context, sessiondto.SaveNotesInput) (sessiondto.SessionOutput, error) {
	return sessiondto.SessionOutput{}, nil
}

func (f *fakeSessions) Discard(context.Context, string) error { return nil }

func (f *fakeSessions) Active(context.Context, string) (sessiondto.SessionOutput, error) {
	return sessiondto.SessionOutput{}, nil
}

func (f *fakeSessions) List(context.Context, string) ([]sessiondto.SessionOutput, error) {
	return f.sessions, nil
}

func (f *fakeSessions) BookStats(context.Context, string) (sessiondto.BookStatsOutput, error) {
	return sessiondto.BookStatsOutput{}, nil
}

func (f *fakeSessions) GlobalStats(context.Context) (sessiondto.GlobalStatsOutput, error) {
	return sessiondto.GlobalStatsOutput{}, nil
}

func TestProgressCountsInProgressSessions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	wednesday := time.Date(2024, time.March, 6, 15, 0, 0, 0, time.UTC)
	clk := &fakeClock{now: wednesday}
	store := goalout.NewJSONGoalStore(storage.NewMemStore())

	sessions := &fakeSessions{sessions: []sessiondto.SessionOutput{
		{StartTime: wednesday.Add(-48 * time.Hour), PagesRead: 40},
		{StartTime: wednesday.Add(-24 * time.Hour), PagesRead: 60},
		// Still running: counts as a session, contributes no pages yet.
		{StartTime: wednesday.Add(-time.Hour), PagesRead: 0, Active: true},
		// Last week, outside the window.
		{StartTime: wednesday.Add(-8 * 24 * time.Hour), PagesRead: 500},
	}}
	uc := usecase.NewInteractor(service.NewGoalService(clk, store, store), sessions)

	if _, err := uc.SetGoal(ctx, dto.SetGoalInput{PagesTarget: 200, SessionsTarget: 4}); err != nil {
		t.Fatalf("set goal: %v", err)
	}

	progress, err := uc.Progress(ctx)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if progress.Pages.Current != 100 {
		t.Fatalf("pages = %d, want 100", progress.Pages.Current)
	}
	if progress.Sessions.Current != 3 {
		t.Fatalf("an in-progress session counts toward the axis, got %d", progress.Sessions.Current)
	}
	if progress.Pages.Percentage != 50 || progress.Sessions.Percentage != 75 {
		t.Fatalf("unexpected percentages: %+v", progress)
	}
}
