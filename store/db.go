package store

import "github.com/burhanahmeed/tempo/internal/models"

// DB is the datastore interface. Each aggregate occupies its own slot:
// loading one slot never touches the others, and a corrupt slot falls
// back to its zero value independently.
type DB interface {
	// LoadTasks returns the persisted task list, or (nil, false) when no
	// usable snapshot exists.
	LoadTasks() ([]models.Task, bool)
	SaveTasks(tasks []models.Task) error

	// LoadSettings returns the persisted settings record.
	LoadSettings() (models.Settings, bool)
	SaveSettings(s models.Settings) error

	// LoadSession returns the persisted session snapshot.
	LoadSession() (models.Session, bool)
	SaveSession(s models.Session) error

	// LoadPlaylist returns the persisted playlist.
	LoadPlaylist() (models.Playlist, bool)
	SavePlaylist(p models.Playlist) error

	// Close ends the database connection
	Close() error
}
