package config

const (
	minSessionMinutes = 1
	maxSessionMinutes = 720 // 12 hours
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := validateMinutes(c.Settings.WorkMinutes, "work"); err != nil {
		return err
	}

	if err := validateMinutes(c.Settings.BreakMinutes, "break"); err != nil {
		return err
	}

	if c.Settings.MusicVolume < 0 || c.Settings.MusicVolume > 1 {
		return errInvalidVolume.Fmt(c.Settings.MusicVolume)
	}

	return nil
}

func validateMinutes(mins int, sessionType string) error {
	if mins < minSessionMinutes || mins > maxSessionMinutes {
		return errInvalidMinutes.Fmt(
			sessionType,
			minSessionMinutes,
			maxSessionMinutes,
		)
	}

	return nil
}
