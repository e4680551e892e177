package usecase

import (
	"context"

	"qurtas/internal/modules/goal/domain"
	"qurtas/internal/modules/goal/dto"
	goalin "qurtas/internal/modules/goal/port/in"
	"qurtas/internal/modules/goal/service"
	sessionin "qurtas/internal/modules/session/port/in"
)

// Interactor implements the goal inbound port. Progress pulls session
// history through the session module's inbound port; every session started
// in the week counts toward the sessions axis, an in-progress one with
// zero pages until it completes.
type Interactor struct {
	svc      *service.GoalService
	sessions sessionin.Usecase
}

func NewInteractor(svc *service.GoalService, sessions sessionin.Usecase) goalin.Usecase {
	return &Interactor{svc: svc, sessions: sessions}
}

func (i *Interactor) SetGoal(ctx context.Context, input dto.SetGoalInput) (dto.GoalOutput, error) {
	goal, err := i.svc.SetGoal(ctx, domain.WeeklyGoal{
		PagesTarget:    input.PagesTarget,
		SessionsTarget: input.SessionsTarget,
		ElectiveBooks:  input.ElectiveBooks,
		WeeklyTheme:    input.WeeklyTheme,
	})
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoalOutput(goal), nil
}

func (i *Interactor) CurrentGoal(ctx context.Context) (dto.GoalOutput, error) {
	goal, err := i.svc.CurrentGoal(ctx)
	if err != nil {
		return dto.GoalOutput{}, err
	}
	return toGoalOutput(goal), nil
}

func (i *Interactor) Progress(ctx context.Context) (dto.ProgressOutput, error) {
	sessions, err := i.sessions.List(ctx, "")
	if err != nil {
		return dto.ProgressOutput{}, err
	}
	samples := make([]domain.SessionSample, 0, len(sessions))
	for _, session := range sessions {
		samples = append(samples, domain.SessionSample{
			StartedAt: session.StartTime,
			PagesRead: session.PagesRead,
		})
	}
	report, err := i.svc.Progress(ctx, samples)
	if err != nil {
		return dto.ProgressOutput{}, err
	}
	out := dto.ProgressOutput{
		Goal:              toGoalOutput(report.Goal),
		Pages:             toAxisOutput(report.Progress.Pages),
		Sessions:          toAxisOutput(report.Progress.Sessions),
		OverallPercentage: report.Progress.Overall.Percentage,
		AllAchieved:       report.Progress.Overall.AllAchieved,
		DaysRemaining:     report.DaysRemaining,
	}
	if report.Pace != nil {
		out.SuggestedPace = &dto.PaceOutput{
			PagesPerDay:    report.Pace.PagesPerDay,
			SessionsPerDay: report.Pace.SessionsPerDay,
		}
	}
	return out, nil
}

func (i *Interactor) Settings(ctx context.Context) (dto.SettingsOutput, error) {
	settings, err := i.svc.Settings(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toSettingsOutput(settings), nil
}

func (i *Interactor) UpdateSettings(ctx context.Context, input dto.UpdateSettingsInput) (dto.SettingsOutput, error) {
	settings, err := i.svc.UpdateSettings(ctx, domain.SettingsPatch{
		Theme:                 input.Theme,
		Notifications:         input.Notifications,
		DefaultSessionMinutes: input.DefaultSessionMinutes,
	})
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toSettingsOutput(settings), nil
}

func toGoalOutput(goal domain.WeeklyGoal) dto.GoalOutput {
	return dto.GoalOutput{
		WeekStart:      goal.WeekStart,
		PagesTarget:    goal.PagesTarget,
		SessionsTarget: goal.SessionsTarget,
		ElectiveBooks:  goal.ElectiveBooks,
		WeeklyTheme:    goal.WeeklyTheme,
	}
}

func toAxisOutput(axis domain.AxisProgress) dto.AxisOutput {
	return dto.AxisOutput{
		Current:    axis.Current,
		Target:     axis.Target,
		Percentage: axis.Percentage,
		Remaining:  axis.Remaining,
		Achieved:   axis.Achieved,
	}
}

func toSettingsOutput(settings domain.Settings) dto.SettingsOutput {
	return dto.SettingsOutput{
		Theme:                 settings.Theme,
		Notifications:         settings.Notifications,
		DefaultSessionMinutes: settings.DefaultSessionMinutes,
	}
}
