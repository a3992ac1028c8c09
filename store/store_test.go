package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/burhanahmeed/tempo/internal/models"
	"github.com/burhanahmeed/tempo/store"
)

func newClient(t *testing.T) (*store.Client, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "tempo.db")

	client, err := store.NewClient(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Close() })

	return client, dbPath
}

// corruptSlot overwrites one slot with bytes that do not decode.
func corruptSlot(t *testing.T, client *store.Client, key string) {
	t.Helper()

	err := client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte("state")).Put([]byte(key), []byte("{not json"))
	})
	require.NoError(t, err)
}

func TestMissingSlotsReportAbsent(t *testing.T) {
	client, _ := newClient(t)

	_, ok := client.LoadTasks()
	assert.False(t, ok)

	_, ok = client.LoadSettings()
	assert.False(t, ok)

	_, ok = client.LoadSession()
	assert.False(t, ok)

	_, ok = client.LoadPlaylist()
	assert.False(t, ok)
}

func TestTasksSurviveReopen(t *testing.T) {
	client, dbPath := newClient(t)

	tasks := []models.Task{
		{ID: "1", Title: "write report", EstimatedCount: 2, CompletedCount: 1},
		{ID: "2", Title: "water plants", EstimatedCount: 1, Done: true},
	}

	require.NoError(t, client.SaveTasks(tasks))
	require.NoError(t, client.Close())

	reopened, err := store.NewClient(dbPath)
	require.NoError(t, err)

	defer reopened.Close()

	got, ok := reopened.LoadTasks()
	assert.True(t, ok)
	assert.Equal(t, tasks, got)
}

func TestSessionNeverResumesRunning(t *testing.T) {
	client, _ := newClient(t)

	require.NoError(t, client.SaveSession(models.Session{
		Kind:             "focus",
		RemainingMinutes: 12,
		RemainingSeconds: 30,
		Running:          true,
	}))

	got, ok := client.LoadSession()
	assert.True(t, ok)
	assert.False(t, got.Running)
	assert.Equal(t, 12, got.RemainingMinutes)
	assert.Equal(t, 30, got.RemainingSeconds)
}

func TestCorruptSlotDoesNotAffectOthers(t *testing.T) {
	client, _ := newClient(t)

	require.NoError(t, client.SaveTasks([]models.Task{{ID: "1", Title: "one"}}))
	require.NoError(t, client.SaveSettings(models.Settings{WorkMinutes: 25}))

	corruptSlot(t, client, "tasks")

	_, ok := client.LoadTasks()
	assert.False(t, ok, "the corrupt slot should read as missing")

	settings, ok := client.LoadSettings()
	assert.True(t, ok, "other slots must be unaffected")
	assert.Equal(t, 25, settings.WorkMinutes)
}

func TestSaveOverwritesSlot(t *testing.T) {
	client, _ := newClient(t)

	require.NoError(t, client.SavePlaylist(models.Playlist{
		Tracks:       []models.Track{{ID: "1", VideoID: "one"}},
		CurrentIndex: 0,
	}))
	require.NoError(t, client.SavePlaylist(models.Playlist{
		Tracks: []models.Track{
			{ID: "1", VideoID: "one"},
			{ID: "2", VideoID: "two"},
		},
		CurrentIndex: 1,
	}))

	got, ok := client.LoadPlaylist()
	assert.True(t, ok)
	assert.Len(t, got.Tracks, 2)
	assert.Equal(t, 1, got.CurrentIndex)
}

func TestSecondOpenIsRejected(t *testing.T) {
	_, dbPath := newClient(t)

	_, err := store.NewClient(dbPath)
	require.Error(t, err)
	assert.ErrorContains(t, err, "already running")
}
