package out

import (
	"context"

	"qurtas/internal/modules/goal/domain"
)

// GoalRepository holds the single weekly goal record. GetGoal returns
// apperrors.ErrNotFound when no goal was ever saved.
type GoalRepository interface {
	GetGoal(ctx context.Context) (domain.WeeklyGoal, error)
	SetGoal(ctx context.Context, goal domain.WeeklyGoal) error
}

// SettingsRepository holds the single settings record.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (domain.Settings, error)
	SaveSettings(ctx context.Context, settings domain.Settings) error
}
