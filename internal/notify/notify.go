// Package notify delivers desktop notifications for session boundaries.
package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"

	"github.com/burhanahmeed/tempo/internal/config"
)

// Notifier sends fire-and-forget desktop notifications, guarded by the
// notifications setting. Delivery failures are logged, never surfaced.
type Notifier struct {
	settings *config.Settings
	iconPath string
}

// New creates a notifier reading the live settings record.
func New(settings *config.Settings, iconPath string) *Notifier {
	return &Notifier{
		settings: settings,
		iconPath: iconPath,
	}
}

// Notify displays a desktop notification if notifications are enabled.
func (n *Notifier) Notify(title, body string) {
	if n.settings != nil && !n.settings.Notify {
		return
	}

	if err := beeep.Notify(title, body, n.iconPath); err != nil {
		slog.Error("unable to display notification", "error", err)
	}
}
