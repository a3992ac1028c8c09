package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper
// counterparts.
const (
	keyWorkMinutes  = "work.minutes"
	keyBreakMinutes = "break.minutes"
	keyNotify       = "notifications.enabled"
	keyMusicOn      = "music.enabled"
	keyMusicVolume  = "music.volume"
	keySessionCmd   = "settings.cmd"
	keyDarkTheme    = "display.dark_theme"
)

// WithViperConfig returns an Option that loads configuration from the yaml
// config file, creating it with defaults when missing.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setViperDefaults(v, c)

		err := v.ReadInConfig()
		if err == nil {
			loadViperConfig(v, c)
			return nil
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		loadViperConfig(v, c)

		return nil
	}
}

// setViperDefaults seeds Viper from the config so first-run prompt
// answers end up in the file WriteConfig creates.
func setViperDefaults(v *viper.Viper, c *Config) {
	v.SetDefault(keyWorkMinutes, c.Settings.WorkMinutes)
	v.SetDefault(keyBreakMinutes, c.Settings.BreakMinutes)
	v.SetDefault(keyNotify, c.Settings.Notify)
	v.SetDefault(keyMusicOn, c.Settings.MusicOn)
	v.SetDefault(keyMusicVolume, c.Settings.MusicVolume)
	v.SetDefault(keySessionCmd, c.Settings.SessionCmd)
	v.SetDefault(keyDarkTheme, c.Display.DarkTheme)
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) {
	c.Settings.WorkMinutes = v.GetInt(keyWorkMinutes)
	c.Settings.BreakMinutes = v.GetInt(keyBreakMinutes)
	c.Settings.Notify = v.GetBool(keyNotify)
	c.Settings.MusicOn = v.GetBool(keyMusicOn)
	c.Settings.MusicVolume = v.GetFloat64(keyMusicVolume)
	c.Settings.SessionCmd = v.GetString(keySessionCmd)
	c.Display.DarkTheme = v.GetBool(keyDarkTheme)
}
