package domain

import (
	"fmt"
	"math"
	"time"

	"qurtas/internal/platform/week"
)

// WeeklyGoal is the page and session target for one reading week. WeekStart
// is always normalized to the Monday of its week.
type WeeklyGoal struct {
	WeekStart      time.Time
	PagesTarget    int
	SessionsTarget int
	ElectiveBooks  []string
	WeeklyTheme    string
}

// SessionSample is the slice of a session the goal math needs.
type SessionSample struct {
	StartedAt time.Time
	PagesRead int
}

// AxisProgress tracks one goal axis (pages or sessions). A zero target
// reports percentage 0 (there is nothing to fill a bar against), while
// Achieved keeps the plain current>=target rule, so an unset goal counts as
// trivially met. The same rule applies everywhere.
type AxisProgress struct {
	Current    int
	Target     int
	Percentage int
	Remaining  int
	Achieved   bool
}

type OverallProgress struct {
	Percentage  int
	AllAchieved bool
}

type Progress struct {
	Pages    AxisProgress
	Sessions AxisProgress
	Overall  OverallProgress
}

// Pace is the daily rate still required to reach the targets.
type Pace struct {
	PagesPerDay    int
	SessionsPerDay int
}

func (g WeeklyGoal) IsCurrentWeek(now time.Time) bool {
	return g.WeekStart.Equal(week.Start(now))
}

// Progress tallies the samples that fall inside this goal's week.
func (g WeeklyGoal) Progress(samples []SessionSample) Progress {
	pages := 0
	sessions := 0
	for _, sample := range samples {
		if !week.Contains(g.WeekStart, sample.StartedAt) {
			continue
		}
		pages += sample.PagesRead
		sessions++
	}
	pagesAxis := axis(pages, g.PagesTarget)
	sessionsAxis := axis(sessions, g.SessionsTarget)
	return Progress{
		Pages:    pagesAxis,
		Sessions: sessionsAxis,
		Overall: OverallProgress{
			Percentage:  int(math.Round(float64(pagesAxis.Percentage+sessionsAxis.Percentage) / 2)),
			AllAchieved: pagesAxis.Achieved && sessionsAxis.Achieved,
		},
	}
}

func (g WeeklyGoal) DaysRemaining(now time.Time) int {
	return week.DaysRemaining(g.WeekStart, now)
}

// SuggestedPace projects the daily rate needed to close the remaining gap.
// It is nil once the week is over.
func (g WeeklyGoal) SuggestedPace(progress Progress, now time.Time) *Pace {
	days := g.DaysRemaining(now)
	if days == 0 {
		return nil
	}
	return &Pace{
		PagesPerDay:    ceilDiv(progress.Pages.Remaining, days),
		SessionsPerDay: ceilDiv(progress.Sessions.Remaining, days),
	}
}

// ValidateGoal reports every target violation at once.
func ValidateGoal(g WeeklyGoal) []string {
	var reasons []string
	if g.PagesTarget < 0 {
		reasons = append(reasons, fmt.Sprintf("pages target must be 0 or greater, got %d", g.PagesTarget))
	}
	if g.SessionsTarget < 0 {
		reasons = append(reasons, fmt.Sprintf("sessions target must be 0 or greater, got %d", g.SessionsTarget))
	}
	return reasons
}

func axis(current, target int) AxisProgress {
	percentage := 0
	if target > 0 {
		percentage = int(math.Round(float64(current) / float64(target) * 100))
		if percentage > 100 {
			percentage = 100
		}
	}
	remaining := target - current
	if remaining < 0 {
		remaining = 0
	}
	return AxisProgress{
		Current:    current,
		Target:     target,
		Percentage: percentage,
		Remaining:  remaining,
		Achieved:   current >= target,
	}
}

func ceilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}
