package out

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"qurtas/internal/modules/goal/domain"
	goalout "qurtas/internal/modules/goal/port/out"
	apperrors "qurtas/internal/platform/errors"
	"qurtas/internal/platform/storage"
)

const (
	goalsCollection    = "goals"
	settingsCollection = "settings"
)

type goalRecord struct {
	WeekStart      time.Time `json:"weekStart"`
	PagesTarget    int       `json:"pagesTarget"`
	SessionsTarget int       `json:"sessionsTarget"`
	ElectiveBooks  []string  `json:"electiveBooks,omitempty"`
	WeeklyTheme    string    `json:"weeklyTheme,omitempty"`
}

type settingsRecord struct {
	Theme                 string `json:"theme"`
	Notifications         bool   `json:"notifications"`
	DefaultSessionMinutes int    `json:"defaultSessionMinutes"`
}

// JSONGoalStore keeps a single goal record and a single settings record,
// one collection each.
type JSONGoalStore struct {
	store storage.Store
}

func NewJSONGoalStore(store storage.Store) *JSONGoalStore {
	return &JSONGoalStore{store: store}
}

var (
	_ goalout.GoalRepository     = (*JSONGoalStore)(nil)
	_ goalout.SettingsRepository = (*JSONGoalStore)(nil)
)

func (s *JSONGoalStore) GetGoal(ctx context.Context) (domain.WeeklyGoal, error) {
	payload, err := s.store.Read(ctx, goalsCollection)
	if err != nil {
		return domain.WeeklyGoal{}, err
	}
	if len(payload) == 0 {
		return domain.WeeklyGoal{}, apperrors.ErrNotFound
	}
	var record goalRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return domain.WeeklyGoal{}, fmt.Errorf("decode goals collection: %w", err)
	}
	return domain.WeeklyGoal{
		WeekStart:      record.WeekStart,
		PagesTarget:    record.PagesTarget,
		SessionsTarget: record.SessionsTarget,
		ElectiveBooks:  record.ElectiveBooks,
		WeeklyTheme:    record.WeeklyTheme,
	}, nil
}

func (s *JSONGoalStore) SetGoal(ctx context.Context, goal domain.WeeklyGoal) error {
	payload, err := json.MarshalIndent(goalRecord{
		WeekStart:      goal.WeekStart,
		PagesTarget:    goal.PagesTarget,
		SessionsTarget: goal.SessionsTarget,
		ElectiveBooks:  goal.ElectiveBooks,
		WeeklyTheme:    goal.WeeklyTheme,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode goals collection: %w", err)
	}
	return s.store.Write(ctx, goalsCollection, payload)
}

func (s *JSONGoalStore) GetSettings(ctx context.Context) (domain.Settings, error) {
	payload, err := s.store.Read(ctx, settingsCollection)
	if err != nil {
		return domain.Settings{}, err
	}
	if len(payload) == 0 {
		return domain.Settings{}, apperrors.ErrNotFound
	}
	var record settingsRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return domain.Settings{}, fmt.Errorf("decode settings collection: %w", err)
	}
	return domain.Settings{
		Theme:                 record.Theme,
		Notifications:         record.Notifications,
		DefaultSessionMinutes: record.DefaultSessionMinutes,
	}, nil
}

func (s *JSONGoalStore) SaveSettings(ctx context.Context, settings domain.Settings) error {
	payload, err := json.MarshalIndent(settingsRecord{
		Theme:                 settings.Theme,
		Notifications:         settings.Notifications,
		DefaultSessionMinutes: settings.DefaultSessionMinutes,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings collection: %w", err)
	}
	return s.store.Write(ctx, settingsCollection, payload)
}
