package service_test

import (
	"context"
	"testing"
	"time"

	goalout "qurtas/internal/modules/goal/adapter/out"
	"qurtas/internal/modules/goal/domain"
	"qurtas/internal/modules/goal/service"
	apperrors "qurtas/internal/platform/errors"
	"qurtas/internal/platform/storage"
	"qurtas/internal/platform/week"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

// wednesday falls in the week starting Monday 2024-03-04.
var wednesday = time.Date(2024, time.March, 6, 15, 0, 0, 0, time.UTC)

func newService(clk *fakeClock) *service.GoalService {
	store := goalout.NewJSONGoalStore(storage.NewMemStore())
	return service.NewGoalService(clk, store, store)
}

func TestCurrentGoalWithoutRecord(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: wednesday}
	svc := newService(clk)

	goal, err := svc.CurrentGoal(context.Background())
	if err != nil {
		t.Fatalf("current goal: %v", err)
	}
	if !goal.WeekStart.Equal(week.Start(wednesday)) {
		t.Fatalf("week start = %v, want %v", goal.WeekStart, week.Start(wednesday))
	}
	if goal.PagesTarget != 0 || goal.SessionsTarget != 0 {
		t.Fatalf("a missing goal has zero targets, got %+v", goal)
	}
}

func TestSetGoalNormalizesWeekStart(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: wednesday}
	svc := newService(clk)

	saved, err := svc.SetGoal(ctx, domain.WeeklyGoal{
		WeekStart:      wednesday, // deliberately not a Monday
		PagesTarget:    200,
		SessionsTarget: 5,
		WeeklyTheme:    "science fiction",
	})
	if err != nil {
		t.Fatalf("set goal: %v", err)
	}
	if !saved.WeekStart.Equal(week.Start(wednesday)) {
		t.Fatalf("week start must normalize to monday, got %v", saved.WeekStart)
	}

	loaded, err := svc.CurrentGoal(ctx)
	if err != nil {
		t.Fatalf("current goal: %v", err)
	}
	if loaded.PagesTarget != 200 || loaded.SessionsTarget != 5 || loaded.WeeklyTheme != "science fiction" {
		t.Fatalf("unexpected stored goal: %+v", loaded)
	}
}

func TestSetGoalRejectsNegativeTargets(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: wednesday}
	svc := newService(clk)

	_, err := svc.SetGoal(context.Background(), domain.WeeklyGoal{PagesTarget: -10})
	if !apperrors.IsValidation(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestStaleGoalDoesNotCarryOver(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: wednesday}
	svc := newService(clk)

	if _, err := svc.SetGoal(ctx, domain.WeeklyGoal{PagesTarget: 300, SessionsTarget: 6}); err != nil {
		t.Fatalf("set goal: %v", err)
	}

	clk.now = wednesday.Add(7 * 24 * time.Hour)
	goal, err := svc.CurrentGoal(ctx)
	if err != nil {
		t.Fatalf("current goal next week: %v", err)
	}
	if goal.PagesTarget != 0 || goal.SessionsTarget != 0 {
		t.Fatalf("last week's targets must not carry over, got %+v", goal)
	}
	if !goal.WeekStart.Equal(week.Start(clk.now)) {
		t.Fatalf("week start = %v, want %v", goal.WeekStart, week.Start(clk.now))
	}
}

func TestProgressReport(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: wednesday}
	svc := newService(clk)

	if _, err := svc.SetGoal(ctx, domain.WeeklyGoal{PagesTarget: 100, SessionsTarget: 2}); err != nil {
		t.Fatalf("set goal: %v", err)
	}

	report, err := svc.Progress(ctx, []domain.SessionSample{
		{StartedAt: wednesday.Add(-24 * time.Hour), PagesRead: 50},
		{StartedAt: wednesday.Add(-30 * 24 * time.Hour), PagesRead: 999},
	})
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if report.Progress.Pages.Current != 50 || report.Progress.Sessions.Current != 1 {
		t.Fatalf("unexpected tallies: %+v", report.Progress)
	}
	// Wednesday afternoon leaves five days counting Wednesday itself.
	if report.DaysRemaining != 5 {
		t.Fatalf("days remaining = %d, want 5", report.DaysRemaining)
	}
	if report.Pace == nil || report.Pace.PagesPerDay != 10 || report.Pace.SessionsPerDay != 1 {
		t.Fatalf("unexpected pace: %+v", report.Pace)
	}
}

func TestSettingsDefaultsAndPatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := &fakeClock{now: wednesday}
	svc := newService(clk)

	settings, err := svc.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if settings != domain.DefaultSettings() {
		t.Fatalf("unsaved settings fall back to defaults, got %+v", settings)
	}

	theme := "light"
	updated, err := svc.UpdateSettings(ctx, domain.SettingsPatch{Theme: &theme})
	if err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if updated.Theme != "light" || updated.DefaultSessionMinutes != 30 {
		t.Fatalf("patch should merge over defaults, got %+v", updated)
	}

	reloaded, err := svc.Settings(ctx)
	if err != nil {
		t.Fatalf("reload settings: %v", err)
	}
	if reloaded != updated {
		t.Fatalf("settings should persist, got %+v", reloaded)
	}
}
