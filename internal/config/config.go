// Package config is responsible for the program settings derived from the
// config file and command-line arguments.
package config

import (
	"time"

	"github.com/burhanahmeed/tempo/internal/models"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Settings Settings
		Display  DisplayConfig
		System   SystemConfig
	}

	// Settings is the flat user configuration record consumed by the
	// session engine and the playback controller. It trusts its input:
	// out-of-range values are clamped or defaulted at the edges before
	// they reach this struct.
	Settings struct {
		SessionCmd   string
		WorkMinutes  int
		BreakMinutes int
		MusicVolume  float64
		Notify       bool
		MusicOn      bool
	}

	// SettingsPatch is a merge-style update applied to Settings. Nil
	// fields leave the current value unchanged.
	SettingsPatch struct {
		WorkMinutes  *int
		BreakMinutes *int
		Notify       *bool
		MusicOn      *bool
		MusicVolume  *float64
		SessionCmd   *string
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme bool
	}

	// SystemConfig holds system-related paths.
	SystemConfig struct {
		ConfigPath string
		DBPath     string
		TracksDir  string
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.1"

const (
	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5
	DefaultMusicVolume  = 0.5
)

// Merge applies a patch to the settings, ignoring nil fields.
func (s *Settings) Merge(p SettingsPatch) {
	if p.WorkMinutes != nil {
		s.WorkMinutes = *p.WorkMinutes
	}

	if p.BreakMinutes != nil {
		s.BreakMinutes = *p.BreakMinutes
	}

	if p.Notify != nil {
		s.Notify = *p.Notify
	}

	if p.MusicOn != nil {
		s.MusicOn = *p.MusicOn
	}

	if p.MusicVolume != nil {
		s.MusicVolume = *p.MusicVolume
	}

	if p.SessionCmd != nil {
		s.SessionCmd = *p.SessionCmd
	}
}

// WorkDuration returns the configured focus session length.
func (s *Settings) WorkDuration() time.Duration {
	return time.Duration(s.WorkMinutes) * time.Minute
}

// BreakDuration returns the configured break session length.
func (s *Settings) BreakDuration() time.Duration {
	return time.Duration(s.BreakMinutes) * time.Minute
}

// ToModel converts the settings to their persisted form.
func (s *Settings) ToModel() models.Settings {
	return models.Settings{
		WorkMinutes:  s.WorkMinutes,
		BreakMinutes: s.BreakMinutes,
		Notify:       s.Notify,
		MusicOn:      s.MusicOn,
		MusicVolume:  s.MusicVolume,
		SessionCmd:   s.SessionCmd,
	}
}

// FromModel restores settings from their persisted form.
func (s *Settings) FromModel(m models.Settings) {
	s.WorkMinutes = m.WorkMinutes
	s.BreakMinutes = m.BreakMinutes
	s.Notify = m.Notify
	s.MusicOn = m.MusicOn
	s.MusicVolume = m.MusicVolume
	s.SessionCmd = m.SessionCmd
}

// Defaults returns the built-in settings used when no persisted record
// exists.
func Defaults() Settings {
	return Settings{
		WorkMinutes:  DefaultWorkMinutes,
		BreakMinutes: DefaultBreakMinutes,
		Notify:       true,
		MusicOn:      false,
		MusicVolume:  DefaultMusicVolume,
	}
}

// New creates a new Config with default values and applies options.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{
		Settings: Defaults(),
		Display:  DisplayConfig{DarkTheme: true},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}
