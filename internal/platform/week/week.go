// Package week defines the canonical reading week: Monday 00:00 UTC through
// the following Monday, exclusive. Goal progress and weekly statistics use
// the same boundary.
package week

import "time"

const Length = 7 * 24 * time.Hour

// Start returns the Monday 00:00 UTC that begins t's week.
func Start(t time.Time) time.Time {
	t = t.UTC()
	day := int(t.Weekday())
	if day == 0 {
		day = 7 // Sunday belongs to the week that started six days earlier
	}
	monday := t.AddDate(0, 0, 1-day)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

// Contains reports whether t falls in [weekStart, weekStart+7d).
func Contains(weekStart, t time.Time) bool {
	t = t.UTC()
	return !t.Before(weekStart) && t.Before(weekStart.Add(Length))
}

// DaysRemaining counts the days left in the week, rounding partial days up.
// It is zero once the week has ended.
func DaysRemaining(weekStart, now time.Time) int {
	left := weekStart.Add(Length).Sub(now.UTC())
	if left <= 0 {
		return 0
	}
	days := int(left / (24 * time.Hour))
	if left%(24*time.Hour) != 0 {
		days++
	}
	return days
}
