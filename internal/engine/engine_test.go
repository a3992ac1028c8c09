package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/burhanahmeed/tempo/internal/config"
	"github.com/burhanahmeed/tempo/internal/engine"
	"github.com/burhanahmeed/tempo/internal/models"
	"github.com/burhanahmeed/tempo/internal/task"
)

type spyNotifier struct {
	titles []string
}

func (n *spyNotifier) Notify(title, _ string) {
	n.titles = append(n.titles, title)
}

func testSettings() *config.Settings {
	return &config.Settings{
		WorkMinutes:  25,
		BreakMinutes: 5,
		Notify:       true,
	}
}

func newEngine(
	t *testing.T,
	settings *config.Settings,
	opts ...engine.Option,
) (*engine.Engine, *task.Registry) {
	t.Helper()

	registry := task.New(nil)

	return engine.New(settings, registry, opts...), registry
}

// drain ticks the engine for a full session worth of seconds.
func drain(e *engine.Engine, minutes int) {
	for i := 0; i < minutes*60; i++ {
		e.Tick()
	}
}

func TestStartBeginsRunningFocusSession(t *testing.T) {
	e, registry := newEngine(t, testSettings())

	tsk, ok := registry.Create("write report", 2)
	assert.True(t, ok)

	e.Start(tsk.ID)

	sess := e.Session()
	assert.Equal(t, engine.Focus, sess.Kind)
	assert.Equal(t, tsk.ID, sess.ActiveTaskID)
	assert.Equal(t, 25, sess.RemainingMinutes)
	assert.Equal(t, 0, sess.RemainingSeconds)
	assert.True(t, sess.Running)
}

func TestTickBorrowsFromMinutes(t *testing.T) {
	e, _ := newEngine(t, testSettings())

	e.Start("")
	e.Tick()

	sess := e.Session()
	assert.Equal(t, 24, sess.RemainingMinutes)
	assert.Equal(t, 59, sess.RemainingSeconds)
}

func TestTickIsNoOpWhilePaused(t *testing.T) {
	e, _ := newEngine(t, testSettings())

	e.Start("")
	e.ToggleRun()

	before := e.Session()
	e.Tick()

	assert.Equal(t, before, e.Session())
}

func TestFocusCompletionIncrementsTaskExactlyOnce(t *testing.T) {
	settings := testSettings()
	settings.WorkMinutes = 1

	notifier := &spyNotifier{}

	e, registry := newEngine(t, settings, engine.WithNotifier(notifier))

	tsk, _ := registry.Create("write report", 2)

	e.Start(tsk.ID)
	drain(e, 1)

	got, _ := registry.Get(tsk.ID)
	assert.Equal(t, 1, got.CompletedCount)
	assert.Equal(t, []string{"Focus complete"}, notifier.titles)

	sess := e.Session()
	assert.Equal(t, engine.Break, sess.Kind)
	assert.Equal(t, 5, sess.RemainingMinutes)
	assert.Equal(t, 0, sess.RemainingSeconds)
	assert.False(t, sess.Running, "the engine should pause at the boundary")

	// further ticks at the boundary must not complete again
	e.Tick()

	got, _ = registry.Get(tsk.ID)
	assert.Equal(t, 1, got.CompletedCount)
	assert.Len(t, notifier.titles, 1)
}

func TestFocusCompletionWithoutTask(t *testing.T) {
	settings := testSettings()
	settings.WorkMinutes = 1

	notifier := &spyNotifier{}

	e, _ := newEngine(t, settings, engine.WithNotifier(notifier))

	e.Start("")
	drain(e, 1)

	assert.Empty(t, notifier.titles)
	assert.Equal(t, engine.Break, e.Session().Kind)
}

func TestBreakCompletionNotifies(t *testing.T) {
	settings := testSettings()
	settings.BreakMinutes = 1

	notifier := &spyNotifier{}

	e, _ := newEngine(t, settings, engine.WithNotifier(notifier))

	e.SwitchKind()
	e.ToggleRun()
	drain(e, 1)

	assert.Equal(t, []string{"Break over"}, notifier.titles)

	sess := e.Session()
	assert.Equal(t, engine.Focus, sess.Kind)
	assert.Equal(t, 25, sess.RemainingMinutes)
	assert.False(t, sess.Running)
}

func TestCompletedCountMayExceedEstimate(t *testing.T) {
	settings := testSettings()
	settings.WorkMinutes = 1

	e, registry := newEngine(t, settings)

	tsk, _ := registry.Create("write report", 1)

	for i := 0; i < 3; i++ {
		e.Start(tsk.ID)
		drain(e, 1)
	}

	got, _ := registry.Get(tsk.ID)
	assert.Equal(t, 3, got.CompletedCount)
}

func TestSwitchKindRejectedWhileRunning(t *testing.T) {
	e, _ := newEngine(t, testSettings())

	e.Start("")

	before := e.Session()
	e.SwitchKind()

	assert.Equal(t, before, e.Session())
}

func TestSwitchKindReleasesTask(t *testing.T) {
	e, registry := newEngine(t, testSettings())

	tsk, _ := registry.Create("write report", 1)

	e.Start(tsk.ID)
	e.ToggleRun()
	e.SwitchKind()

	sess := e.Session()
	assert.Equal(t, engine.Break, sess.Kind)
	assert.Empty(t, sess.ActiveTaskID)
	assert.Equal(t, 5, sess.RemainingMinutes)
}

func TestResetPreservesKindAndTask(t *testing.T) {
	e, registry := newEngine(t, testSettings())

	tsk, _ := registry.Create("write report", 1)

	e.Start(tsk.ID)
	e.Tick()
	e.Reset()

	sess := e.Session()
	assert.Equal(t, engine.Focus, sess.Kind)
	assert.Equal(t, tsk.ID, sess.ActiveTaskID)
	assert.Equal(t, 25, sess.RemainingMinutes)
	assert.Equal(t, 0, sess.RemainingSeconds)
	assert.False(t, sess.Running)
}

func TestDeletingActiveTaskReleasesReference(t *testing.T) {
	e, registry := newEngine(t, testSettings())

	tsk, _ := registry.Create("write report", 1)

	e.Start(tsk.ID)
	registry.Delete(tsk.ID)

	sess := e.Session()
	assert.Empty(t, sess.ActiveTaskID)
	assert.False(t, sess.Running)
}

func TestDeletingOtherTaskKeepsSessionRunning(t *testing.T) {
	e, registry := newEngine(t, testSettings())

	active, _ := registry.Create("write report", 1)
	other, _ := registry.Create("water plants", 1)

	e.Start(active.ID)
	registry.Delete(other.ID)

	sess := e.Session()
	assert.Equal(t, active.ID, sess.ActiveTaskID)
	assert.True(t, sess.Running)
}

func TestApplySettingsResizesPausedSessionOnly(t *testing.T) {
	settings := testSettings()

	e, _ := newEngine(t, settings)

	settings.WorkMinutes = 50
	e.ApplySettings()
	assert.Equal(t, 50, e.Session().RemainingMinutes)

	e.Start("")
	settings.WorkMinutes = 10
	e.ApplySettings()
	assert.Equal(t, 50, e.Session().RemainingMinutes)
}

func TestRestoreForcesPause(t *testing.T) {
	e, _ := newEngine(t, testSettings())

	e.Restore(models.Session{
		Kind:             "focus",
		RemainingMinutes: 12,
		RemainingSeconds: 30,
		Running:          true,
	})

	sess := e.Session()
	assert.False(t, sess.Running)
	assert.Equal(t, 12, sess.RemainingMinutes)
	assert.Equal(t, 30, sess.RemainingSeconds)
}

func TestRestoreDropsStaleTaskReference(t *testing.T) {
	e, _ := newEngine(t, testSettings())

	e.Restore(models.Session{
		Kind:             "focus",
		ActiveTaskID:     "deadbeef",
		RemainingMinutes: 12,
	})

	assert.Empty(t, e.Session().ActiveTaskID)
}

func TestRestoreNormalizesCorruptSnapshot(t *testing.T) {
	e, _ := newEngine(t, testSettings())

	e.Restore(models.Session{Kind: "bogus"})

	sess := e.Session()
	assert.Equal(t, engine.Focus, sess.Kind)
	assert.Equal(t, 25, sess.RemainingMinutes)
}

func TestSinkReceivesSnapshots(t *testing.T) {
	var snapshots []models.Session

	e, _ := newEngine(
		t,
		testSettings(),
		engine.WithSink(func(s models.Session) {
			snapshots = append(snapshots, s)
		}),
	)

	e.Start("")
	e.Tick()
	e.ToggleRun()

	assert.Len(t, snapshots, 3)
	assert.False(t, snapshots[2].Running)
}
