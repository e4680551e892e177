package in

import (
	"context"

	"qurtas/internal/modules/goal/dto"
	goalin "qurtas/internal/modules/goal/port/in"
)

type CLIHandler struct {
	usecase goalin.Usecase
}

func NewCLIHandler(usecase goalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) SetGoal(ctx context.Context, input dto.SetGoalInput) (dto.GoalOutput, error) {
	return h.usecase.SetGoal(ctx, input)
}

func (h CLIHandler) CurrentGoal(ctx context.Context) (dto.GoalOutput, error) {
	return h.usecase.CurrentGoal(ctx)
}

func (h CLIHandler) Progress(ctx context.Context) (dto.ProgressOutput, error) {
	return h.usecase.Progress(ctx)
}

func (h CLIHandler) Settings(ctx context.Context) (dto.SettingsOutput, error) {
	return h.usecase.Settings(ctx)
}

func (h CLIHandler) UpdateSettings(ctx context.Context, input dto.UpdateSettingsInput) (dto.SettingsOutput, error) {
	return h.usecase.UpdateSettings(ctx, input)
}
