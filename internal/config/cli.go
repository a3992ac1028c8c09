package config

import (
	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	SessionCmd    string
	Work          uint
	Break         uint
	MusicVolume   float64
	DisableNotify bool
	Music         bool
	NoMusic       bool
	VolumeSet     bool
}

// WithCLIConfig returns an Option that overrides configuration from CLI
// flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Work:          ctx.Uint("work"),
			Break:         ctx.Uint("break"),
			DisableNotify: ctx.Bool("disable-notification"),
			Music:         ctx.Bool("music"),
			NoMusic:       ctx.Bool("no-music"),
			MusicVolume:   ctx.Float64("volume"),
			VolumeSet:     ctx.IsSet("volume"),
			SessionCmd:    ctx.String("session-cmd"),
		}

		applyCLIOptions(c, opts)

		return nil
	}
}

// applyCLIOptions applies CLI options to the config. Values are clamped
// here so the settings record itself can trust its input.
func applyCLIOptions(c *Config, opts CLIOptions) {
	if opts.Work > 0 {
		c.Settings.WorkMinutes = int(opts.Work)
	}

	if opts.Break > 0 {
		c.Settings.BreakMinutes = int(opts.Break)
	}

	if opts.DisableNotify {
		c.Settings.Notify = false
	}

	if opts.Music {
		c.Settings.MusicOn = true
	}

	if opts.NoMusic {
		c.Settings.MusicOn = false
	}

	if opts.VolumeSet {
		c.Settings.MusicVolume = clampVolume(opts.MusicVolume)
	}

	if opts.SessionCmd != "" {
		c.Settings.SessionCmd = opts.SessionCmd
	}
}

func clampVolume(vol float64) float64 {
	if vol < 0 {
		return 0
	}

	if vol > 1 {
		return 1
	}

	return vol
}
