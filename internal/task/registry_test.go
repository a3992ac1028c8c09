package task_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/burhanahmeed/tempo/internal/models"
	"github.com/burhanahmeed/tempo/internal/task"
)

func TestCreateRejectsBlankTitles(t *testing.T) {
	registry := task.New(nil)

	for _, title := range []string{"", "   ", "\t\n"} {
		_, ok := registry.Create(title, 1)
		assert.False(t, ok, "title %q should be rejected", title)
	}

	assert.Zero(t, registry.Len())
}

func TestCreateDefaultsEstimate(t *testing.T) {
	registry := task.New(nil)

	tsk, ok := registry.Create("write report", 0)
	assert.True(t, ok)
	assert.Equal(t, 1, tsk.EstimatedCount)
	assert.NotEmpty(t, tsk.ID)
}

func TestCreateTrimsTitle(t *testing.T) {
	registry := task.New(nil)

	tsk, _ := registry.Create("  write report  ", 1)
	assert.Equal(t, "write report", tsk.Title)
}

func TestUpdateKeepsFieldsWhenUnset(t *testing.T) {
	registry := task.New(nil)

	tsk, _ := registry.Create("write report", 3)

	assert.True(t, registry.Update(tsk.ID, "", 0))

	got, _ := registry.Get(tsk.ID)
	assert.Equal(t, "write report", got.Title)
	assert.Equal(t, 3, got.EstimatedCount)

	assert.True(t, registry.Update(tsk.ID, "edit report", 5))

	got, _ = registry.Get(tsk.ID)
	assert.Equal(t, "edit report", got.Title)
	assert.Equal(t, 5, got.EstimatedCount)
}

func TestToggleDone(t *testing.T) {
	registry := task.New(nil)

	tsk, _ := registry.Create("write report", 1)

	registry.ToggleDone(tsk.ID)
	got, _ := registry.Get(tsk.ID)
	assert.True(t, got.Done)

	registry.ToggleDone(tsk.ID)
	got, _ = registry.Get(tsk.ID)
	assert.False(t, got.Done)
}

func TestDeleteFiresRemovalHook(t *testing.T) {
	registry := task.New(nil)

	var removed []string

	registry.OnRemove(func(id string) {
		removed = append(removed, id)
	})

	tsk, _ := registry.Create("write report", 1)

	assert.True(t, registry.Delete(tsk.ID))
	assert.False(t, registry.Delete(tsk.ID))
	assert.Equal(t, []string{tsk.ID}, removed)
}

func TestClearAllRespectsConfirmation(t *testing.T) {
	registry := task.New(nil)

	registry.Create("one", 1)
	registry.Create("two", 1)

	assert.False(t, registry.ClearAll(func() bool { return false }))
	assert.Equal(t, 2, registry.Len())

	var removed int

	registry.OnRemove(func(string) { removed++ })

	assert.True(t, registry.ClearAll(func() bool { return true }))
	assert.Zero(t, registry.Len())
	assert.Equal(t, 2, removed)
}

func TestIncrementCompletedNeverDecrements(t *testing.T) {
	registry := task.New(nil)

	tsk, _ := registry.Create("write report", 1)

	assert.True(t, registry.IncrementCompleted(tsk.ID))
	assert.True(t, registry.IncrementCompleted(tsk.ID))

	got, _ := registry.Get(tsk.ID)
	assert.Equal(t, 2, got.CompletedCount)

	assert.False(t, registry.IncrementCompleted("missing"))
}

func TestSinkReceivesSnapshotAfterEveryMutation(t *testing.T) {
	var snapshots [][]models.Task

	registry := task.New(func(tasks []models.Task) {
		snapshots = append(snapshots, tasks)
	})

	tsk, _ := registry.Create("write report", 1)
	registry.ToggleDone(tsk.ID)
	registry.Delete(tsk.ID)

	assert.Len(t, snapshots, 3)
	assert.Empty(t, snapshots[2])
}

func TestRestoreRoundTrip(t *testing.T) {
	registry := task.New(nil)

	registry.Create("one", 2)
	registry.Create("two", 1)

	restored := task.New(nil)
	restored.Restore(registry.Snapshot())

	if diff := cmp.Diff(registry.Snapshot(), restored.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}
