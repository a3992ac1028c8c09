// Package store connects to the data store and persists the application
// aggregates as independent snapshots.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/burhanahmeed/tempo/internal/models"
)

const stateBucket = "state"

// Slot keys within the state bucket. Each aggregate is serialised into
// its own slot.
const (
	keyTasks    = "tasks"
	keySettings = "settings"
	keySession  = "session"
	keyPlaylist = "playlist"
)

var errAlreadyRunning = errors.New(
	"is Tempo already running? Only one instance can be active at a time",
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

func (c *Client) LoadTasks() ([]models.Task, bool) {
	var tasks []models.Task
	if !c.load(keyTasks, &tasks) {
		return nil, false
	}

	return tasks, true
}

func (c *Client) SaveTasks(tasks []models.Task) error {
	return c.save(keyTasks, tasks)
}

func (c *Client) LoadSettings() (models.Settings, bool) {
	var s models.Settings
	if !c.load(keySettings, &s) {
		return models.Settings{}, false
	}

	return s, true
}

func (c *Client) SaveSettings(s models.Settings) error {
	return c.save(keySettings, s)
}

func (c *Client) LoadSession() (models.Session, bool) {
	var s models.Session
	if !c.load(keySession, &s) {
		return models.Session{}, false
	}

	// an interrupted countdown is never resumed automatically
	s.Running = false

	return s, true
}

func (c *Client) SaveSession(s models.Session) error {
	return c.save(keySession, s)
}

func (c *Client) LoadPlaylist() (models.Playlist, bool) {
	var p models.Playlist
	if !c.load(keyPlaylist, &p) {
		return models.Playlist{}, false
	}

	return p, true
}

func (c *Client) SavePlaylist(p models.Playlist) error {
	return c.save(keyPlaylist, p)
}

// load reads and decodes one slot. A missing slot returns false; a
// malformed slot is logged and treated as missing so the aggregate
// resets to its default without affecting the other slots.
func (c *Client) load(key string, v any) bool {
	var raw []byte

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(stateBucket)).Get([]byte(key))
		if b != nil {
			raw = make([]byte, len(b))
			copy(raw, b)
		}

		return nil
	})
	if err != nil {
		slog.Error("unable to read snapshot", "slot", key, "error", err)
		return false
	}

	if len(raw) == 0 {
		return false
	}

	if err := json.Unmarshal(raw, v); err != nil {
		slog.Warn(
			"discarding malformed snapshot",
			"slot", key,
			"error", err,
		)

		return false
	}

	return true
}

func (c *Client) save(key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(stateBucket)).Put([]byte(key), value)
	})
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		// another process holds the file lock, so the open timed out
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(stateBucket))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
