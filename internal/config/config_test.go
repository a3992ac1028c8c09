package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burhanahmeed/tempo/internal/config"
)

func TestViperWriteConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, config.Defaults(), cfg.Settings)
	assert.True(t, cfg.Display.DarkTheme)

	// the file is created with the defaults on first run
	_, err = os.Stat(configPath)
	assert.NoError(t, err)
}

func TestViperReadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	contents := `work:
    minutes: 50
break:
    minutes: 10
notifications:
    enabled: false
music:
    enabled: true
    volume: 0.8
settings:
    cmd: notify-send done
display:
    dark_theme: false
`

	require.NoError(t, os.WriteFile(configPath, []byte(contents), 0o644))

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, config.Settings{
		WorkMinutes:  50,
		BreakMinutes: 10,
		Notify:       false,
		MusicOn:      true,
		MusicVolume:  0.8,
		SessionCmd:   "notify-send done",
	}, cfg.Settings)
	assert.False(t, cfg.Display.DarkTheme)
}

func TestNewRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{
			name: "work minutes too small",
			mutate: func(c *config.Config) {
				c.Settings.WorkMinutes = 0
			},
		},
		{
			name: "work minutes too large",
			mutate: func(c *config.Config) {
				c.Settings.WorkMinutes = 721
			},
		},
		{
			name: "break minutes too small",
			mutate: func(c *config.Config) {
				c.Settings.BreakMinutes = -1
			},
		},
		{
			name: "volume above one",
			mutate: func(c *config.Config) {
				c.Settings.MusicVolume = 1.1
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.New(func(c *config.Config) error {
				tc.mutate(c)
				return nil
			})
			assert.Error(t, err)
		})
	}
}

func TestMergeIgnoresNilFields(t *testing.T) {
	s := config.Defaults()

	work := 50
	music := true

	s.Merge(config.SettingsPatch{
		WorkMinutes: &work,
		MusicOn:     &music,
	})

	assert.Equal(t, 50, s.WorkMinutes)
	assert.True(t, s.MusicOn)
	assert.Equal(t, config.DefaultBreakMinutes, s.BreakMinutes)
	assert.Equal(t, config.DefaultMusicVolume, s.MusicVolume)
}

func TestSettingsModelRoundTrip(t *testing.T) {
	s := config.Settings{
		WorkMinutes:  50,
		BreakMinutes: 10,
		Notify:       true,
		MusicOn:      true,
		MusicVolume:  0.8,
		SessionCmd:   "notify-send done",
	}

	var restored config.Settings

	restored.FromModel(s.ToModel())

	assert.Equal(t, s, restored)
}

func TestDurations(t *testing.T) {
	s := config.Defaults()

	assert.Equal(t, "25m0s", s.WorkDuration().String())
	assert.Equal(t, "5m0s", s.BreakDuration().String())
}
