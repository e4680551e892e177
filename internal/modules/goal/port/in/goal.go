package in

import (
	"context"

	"qurtas/internal/modules/goal/dto"
)

// Usecase is the goal module's inbound port.
type Usecase interface {
	SetGoal(ctx context.Context, input dto.SetGoalInput) (dto.GoalOutput, error)
	CurrentGoal(ctx context.Context) (dto.GoalOutput, error)
	Progress(ctx context.Context) (dto.ProgressOutput, error)
	Settings(ctx context.Context) (dto.SettingsOutput, error)
	UpdateSettings(ctx context.Context, input dto.UpdateSettingsInput) (dto.SettingsOutput, error)
}
