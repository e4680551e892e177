package domain

// Settings are app-wide preferences. Updates merge shallowly over the
// stored record.
type Settings struct {
	Theme                 string
	Notifications         bool
	DefaultSessionMinutes int
}

// SettingsPatch carries only the fields the caller wants to change.
type SettingsPatch struct {
	Theme                 *string
	Notifications         *bool
	DefaultSessionMinutes *int
}

func DefaultSettings() Settings {
	return Settings{
		Theme:                 "dark",
		Notifications:         true,
		DefaultSessionMinutes: 30,
	}
}

func (s *Settings) Apply(patch SettingsPatch) {
	if patch.Theme != nil {
		s.Theme = *patch.Theme
	}
	if patch.Notifications != nil {
		s.Notifications = *patch.Notifications
	}
	if patch.DefaultSessionMinutes != nil {
		s.DefaultSessionMinutes = *patch.DefaultSessionMinutes
	}
}
