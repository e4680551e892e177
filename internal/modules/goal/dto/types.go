package dto

import "time"

type SetGoalInput struct {
	PagesTarget    int
	SessionsTarget int
	ElectiveBooks  []string
	WeeklyTheme    string
}

type GoalOutput struct {
	WeekStart      time.Time
	PagesTarget    int
	SessionsTarget int
	ElectiveBooks  []string
	WeeklyTheme    string
}

type AxisOutput struct {
	Current    int
	Target     int
	Percentage int
	Remaining  int
	Achieved   bool
}

type PaceOutput struct {
	PagesPerDay    int
	SessionsPerDay int
}

type ProgressOutput struct {
	Goal              GoalOutput
	Pages             AxisOutput
	Sessions          AxisOutput
	OverallPercentage int
	AllAchieved       bool
	DaysRemaining     int
	SuggestedPace     *PaceOutput
}

type SettingsOutput struct {
	Theme                 string
	Notifications         bool
	DefaultSessionMinutes int
}

type UpdateSettingsInput struct {
	Theme                 *string
	Notifications         *bool
	DefaultSessionMinutes *int
}
