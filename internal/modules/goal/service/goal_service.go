package service

import (
	"context"
	"errors"
	"fmt"

	"qurtas/internal/modules/goal/domain"
	"qurtas/internal/modules/goal/port/out"
	"qurtas/internal/platform/clock"
	apperrors "qurtas/internal/platform/errors"
	"qurtas/internal/platform/week"
)

// Report bundles a goal with its computed progress for the current moment.
type Report struct {
	Goal          domain.WeeklyGoal
	Progress      domain.Progress
	DaysRemaining int
	Pace          *domain.Pace
}

// GoalService owns the weekly goal record and app settings.
type GoalService struct {
	clock    clock.Clock
	repo     out.GoalRepository
	settings out.SettingsRepository
}

func NewGoalService(clk clock.Clock, repo out.GoalRepository, settings out.SettingsRepository) *GoalService {
	return &GoalService{clock: clk, repo: repo, settings: settings}
}

// SetGoal validates and stores a goal for the current week. The week start
// is always normalized to the current Monday, regardless of input.
func (s *GoalService) SetGoal(ctx context.Context, goal domain.WeeklyGoal) (domain.WeeklyGoal, error) {
	goal.WeekStart = week.Start(s.clock.Now())
	if err := apperrors.Validation(domain.ValidateGoal(goal)); err != nil {
		return domain.WeeklyGoal{}, err
	}
	if err := s.repo.SetGoal(ctx, goal); err != nil {
		return domain.WeeklyGoal{}, fmt.Errorf("save goal: %w", err)
	}
	return goal, nil
}

// CurrentGoal returns the stored goal when it belongs to the current week.
// A stale or missing record yields a zero-target goal for this week; targets
// never carry over on their own.
func (s *GoalService) CurrentGoal(ctx context.Context) (domain.WeeklyGoal, error) {
	now := s.clock.Now()
	goal, err := s.repo.GetGoal(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.WeeklyGoal{WeekStart: week.Start(now)}, nil
	}
	if err != nil {
		return domain.WeeklyGoal{}, fmt.Errorf("load goal: %w", err)
	}
	if !goal.IsCurrentWeek(now) {
		return domain.WeeklyGoal{WeekStart: week.Start(now)}, nil
	}
	return goal, nil
}

// Progress evaluates the current goal against the given session samples.
func (s *GoalService) Progress(ctx context.Context, samples []domain.SessionSample) (Report, error) {
	goal, err := s.CurrentGoal(ctx)
	if err != nil {
		return Report{}, err
	}
	now := s.clock.Now()
	progress := goal.Progress(samples)
	return Report{
		Goal:          goal,
		Progress:      progress,
		DaysRemaining: goal.DaysRemaining(now),
		Pace:          goal.SuggestedPace(progress, now),
	}, nil
}

// Settings returns the stored settings, falling back to defaults when
// nothing was ever saved.
func (s *GoalService) Settings(ctx context.Context) (domain.Settings, error) {
	settings, err := s.settings.GetSettings(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings merges the patch over the stored record and persists it.
func (s *GoalService) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	settings.Apply(patch)
	if err := s.settings.SaveSettings(ctx, settings); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}
