package domain_test

import (
	"testing"
	"time"

	"qurtas/internal/modules/goal/domain"
)

// monday is the start of the test week, 2024-03-04.
var monday = time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

func TestProgressTalliesCurrentWeekOnly(t *testing.T) {
	t.Parallel()
	goal := domain.WeeklyGoal{WeekStart: monday, PagesTarget: 200, SessionsTarget: 4}

	samples := []domain.SessionSample{
		{StartedAt: monday.Add(10 * time.Hour), PagesRead: 60},
		{StartedAt: monday.Add(2 * 24 * time.Hour), PagesRead: 40},
		{StartedAt: monday.Add(-time.Hour), PagesRead: 500},
		{StartedAt: monday.Add(7 * 24 * time.Hour), PagesRead: 500},
	}

	progress := goal.Progress(samples)
	if progress.Pages.Current != 100 || progress.Sessions.Current != 2 {
		t.Fatalf("only in-week samples count, got %+v", progress)
	}
	if progress.Pages.Percentage != 50 || progress.Sessions.Percentage != 50 {
		t.Fatalf("unexpected percentages: %+v", progress)
	}
	if progress.Pages.Remaining != 100 || progress.Sessions.Remaining != 2 {
		t.Fatalf("unexpected remaining: %+v", progress)
	}
	if progress.Overall.Percentage != 50 || progress.Overall.AllAchieved {
		t.Fatalf("unexpected overall: %+v", progress.Overall)
	}
}

func TestAxisPercentageCapsAtHundred(t *testing.T) {
	t.Parallel()
	goal := domain.WeeklyGoal{WeekStart: monday, PagesTarget: 50, SessionsTarget: 1}
	progress := goal.Progress([]domain.SessionSample{
		{StartedAt: monday, PagesRead: 120},
	})
	if progress.Pages.Percentage != 100 {
		t.Fatalf("percentage caps at 100, got %d", progress.Pages.Percentage)
	}
	if !progress.Pages.Achieved || progress.Pages.Remaining != 0 {
		t.Fatalf("unexpected pages axis: %+v", progress.Pages)
	}
	if !progress.Overall.AllAchieved {
		t.Fatalf("both axes met should mark the week achieved")
	}
}

func TestZeroTargetAxis(t *testing.T) {
	t.Parallel()
	goal := domain.WeeklyGoal{WeekStart: monday, PagesTarget: 0, SessionsTarget: 3}
	progress := goal.Progress([]domain.SessionSample{
		{StartedAt: monday, PagesRead: 80},
	})
	if progress.Pages.Percentage != 0 {
		t.Fatalf("a zero target has no bar to fill, got %d", progress.Pages.Percentage)
	}
	if !progress.Pages.Achieved {
		t.Fatalf("a zero target is trivially met")
	}
	if progress.Sessions.Percentage != 33 {
		t.Fatalf("sessions percentage = %d, want 33", progress.Sessions.Percentage)
	}
	if progress.Overall.Percentage != 17 {
		t.Fatalf("overall = %d, want 17", progress.Overall.Percentage)
	}
}

func TestSuggestedPace(t *testing.T) {
	t.Parallel()
	goal := domain.WeeklyGoal{WeekStart: monday, PagesTarget: 150, SessionsTarget: 5}
	progress := goal.Progress(nil)

	// Thursday noon leaves four days counting Thursday itself.
	pace := goal.SuggestedPace(progress, monday.Add(3*24*time.Hour+12*time.Hour))
	if pace == nil {
		t.Fatalf("expected a pace while the week is open")
	}
	if pace.PagesPerDay != 38 || pace.SessionsPerDay != 2 {
		t.Fatalf("unexpected pace: %+v", pace)
	}

	if pace := goal.SuggestedPace(progress, monday.Add(7*24*time.Hour)); pace != nil {
		t.Fatalf("no pace once the week is over, got %+v", pace)
	}

	met := goal.Progress([]domain.SessionSample{
		{StartedAt: monday, PagesRead: 150},
		{StartedAt: monday, PagesRead: 0}, {StartedAt: monday, PagesRead: 0},
		{StartedAt: monday, PagesRead: 0}, {StartedAt: monday, PagesRead: 0},
	})
	pace = goal.SuggestedPace(met, monday.Add(24*time.Hour))
	if pace == nil || pace.PagesPerDay != 0 || pace.SessionsPerDay != 0 {
		t.Fatalf("a met goal needs no further pace, got %+v", pace)
	}
}

func TestIsCurrentWeek(t *testing.T) {
	t.Parallel()
	goal := domain.WeeklyGoal{WeekStart: monday}
	if !goal.IsCurrentWeek(monday.Add(6 * 24 * time.Hour)) {
		t.Fatalf("sunday of the same week is current")
	}
	if goal.IsCurrentWeek(monday.Add(7 * 24 * time.Hour)) {
		t.Fatalf("next monday belongs to the next week")
	}
}

func TestValidateGoal(t *testing.T) {
	t.Parallel()
	reasons := domain.ValidateGoal(domain.WeeklyGoal{PagesTarget: -1, SessionsTarget: -2})
	if len(reasons) != 2 {
		t.Fatalf("expected 2 reasons, got %v", reasons)
	}
	if reasons := domain.ValidateGoal(domain.WeeklyGoal{PagesTarget: 0, SessionsTarget: 0}); reasons != nil {
		t.Fatalf("zero targets are allowed, got %v", reasons)
	}
}

func TestSettingsApply(t *testing.T) {
	t.Parallel()
	settings := domain.DefaultSettings()
	theme := "light"
	minutes := 45
	settings.Apply(domain.SettingsPatch{Theme: &theme, DefaultSessionMinutes: &minutes})
	if settings.Theme != "light" || settings.DefaultSessionMinutes != 45 {
		t.Fatalf("patched fields missing: %+v", settings)
	}
	if !settings.Notifications {
		t.Fatalf("unpatched fields keep their values: %+v", settings)
	}
}
