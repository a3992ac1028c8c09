// Package engine operates the countdown state machine that alternates
// between focus and break sessions.
package engine

import (
	"log/slog"
	"os/exec"

	"github.com/kballard/go-shellquote"

	"github.com/burhanahmeed/tempo/internal/config"
	"github.com/burhanahmeed/tempo/internal/models"
	"github.com/burhanahmeed/tempo/internal/task"
)

// Kind distinguishes focus sessions from breaks.
type Kind string

const (
	Focus Kind = "focus"
	Break Kind = "break"
)

// Session is the countdown state. Exactly one exists per engine.
type Session struct {
	Kind             Kind
	ActiveTaskID     string
	RemainingMinutes int
	RemainingSeconds int
	Running          bool
}

// Notifier delivers fire-and-forget desktop notifications.
type Notifier interface {
	Notify(title, body string)
}

// Engine owns the session and drives transitions on tick, start/pause,
// manual kind switch, and natural expiry. All methods must be called from
// a single goroutine.
type Engine struct {
	sess      Session
	settings  *config.Settings
	registry  *task.Registry
	notifier  Notifier
	sink      func(models.Session)
	recompute func()
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier sets the notification collaborator.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithSink sets the write-through persistence hook, invoked with a session
// snapshot after every state change.
func WithSink(sink func(models.Session)) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithRecompute sets a hook invoked after every state change so the
// playback controller can re-evaluate its autoplay policy.
func WithRecompute(hook func()) Option {
	return func(e *Engine) { e.recompute = hook }
}

// New creates an engine in the idle focus state with the full work
// duration on the clock. The registry's removal hook is wired so deleting
// the active task releases the reference and pauses the countdown.
func New(
	settings *config.Settings,
	registry *task.Registry,
	opts ...Option,
) *Engine {
	e := &Engine{
		settings: settings,
		registry: registry,
		sess: Session{
			Kind:             Focus,
			RemainingMinutes: settings.WorkMinutes,
		},
	}

	for _, opt := range opts {
		opt(e)
	}

	registry.OnRemove(e.handleTaskRemoved)

	return e
}

// Session returns a copy of the current session state.
func (e *Engine) Session() Session {
	return e.sess
}

// Start begins a fresh focus session, overwriting any session in progress.
// An empty taskID starts an unassociated session. The engine does not
// check whether the task is already marked done.
func (e *Engine) Start(taskID string) {
	e.sess = Session{
		Kind:             Focus,
		ActiveTaskID:     taskID,
		RemainingMinutes: e.settings.WorkMinutes,
		Running:          true,
	}

	e.changed()
}

// ToggleRun flips the running flag without touching the remaining time.
func (e *Engine) ToggleRun() {
	e.sess.Running = !e.sess.Running
	e.changed()
}

// Reset restores the full duration for the current kind and pauses. The
// kind and the active task reference are preserved.
func (e *Engine) Reset() {
	e.sess.RemainingMinutes = e.duration(e.sess.Kind)
	e.sess.RemainingSeconds = 0
	e.sess.Running = false

	e.changed()
}

// SwitchKind flips between focus and break while paused. It is rejected
// as a no-op while the countdown is running. Switching into a break
// releases the active task: breaks have no associated task.
func (e *Engine) SwitchKind() {
	if e.sess.Running {
		return
	}

	e.sess.Kind = e.flipped()
	e.sess.RemainingMinutes = e.duration(e.sess.Kind)
	e.sess.RemainingSeconds = 0
	e.sess.Running = false

	if e.sess.Kind == Break {
		e.sess.ActiveTaskID = ""
	}

	e.changed()
}

// Tick advances the countdown by one second of wall-clock time. It is a
// no-op unless the session is running. Reaching 0:00 completes the
// session: at most one completion fires per tick, after which the engine
// flips kind, reloads the new duration, and pauses at the boundary rather
// than auto-chaining into the next session.
func (e *Engine) Tick() {
	if !e.sess.Running {
		return
	}

	switch {
	case e.sess.RemainingSeconds > 0:
		e.sess.RemainingSeconds--
	case e.sess.RemainingMinutes > 0:
		e.sess.RemainingMinutes--
		e.sess.RemainingSeconds = 59
	}

	if e.sess.RemainingMinutes == 0 && e.sess.RemainingSeconds == 0 {
		e.complete()
		return
	}

	e.changed()
}

// ApplySettings resizes the remaining time after a duration change. The
// countdown display only follows the new duration while the session is
// paused; a running session keeps its remaining time.
func (e *Engine) ApplySettings() {
	if e.sess.Running {
		return
	}

	e.sess.RemainingMinutes = e.duration(e.sess.Kind)
	e.sess.RemainingSeconds = 0

	e.changed()
}

// Snapshot returns the persisted form of the session.
func (e *Engine) Snapshot() models.Session {
	return models.Session{
		Kind:             string(e.sess.Kind),
		ActiveTaskID:     e.sess.ActiveTaskID,
		RemainingMinutes: e.sess.RemainingMinutes,
		RemainingSeconds: e.sess.RemainingSeconds,
		Running:          e.sess.Running,
	}
}

// Restore loads a persisted snapshot. The running flag is always forced
// off: an interrupted countdown never resumes on its own. A stale task
// reference is dropped.
func (e *Engine) Restore(m models.Session) {
	kind := Kind(m.Kind)
	if kind != Focus && kind != Break {
		kind = Focus
	}

	e.sess = Session{
		Kind:             kind,
		ActiveTaskID:     m.ActiveTaskID,
		RemainingMinutes: m.RemainingMinutes,
		RemainingSeconds: m.RemainingSeconds,
		Running:          false,
	}

	if e.sess.RemainingMinutes <= 0 && e.sess.RemainingSeconds <= 0 {
		e.sess.RemainingMinutes = e.duration(kind)
		e.sess.RemainingSeconds = 0
	}

	if e.sess.ActiveTaskID != "" {
		if _, ok := e.registry.Get(e.sess.ActiveTaskID); !ok {
			e.sess.ActiveTaskID = ""
		}
	}
}

// complete handles natural expiry of the current session.
func (e *Engine) complete() {
	if e.sess.Kind == Focus {
		if e.sess.ActiveTaskID != "" {
			if e.registry.IncrementCompleted(e.sess.ActiveTaskID) {
				e.notify(
					"Focus complete",
					"The focus session is finished. Time for a break!",
				)
			} else {
				// the task was deleted out from under the session
				e.sess.ActiveTaskID = ""
			}
		}
	} else {
		e.notify("Break over", "The break is finished. Back to work!")
	}

	e.sess.Kind = e.flipped()
	e.sess.RemainingMinutes = e.duration(e.sess.Kind)
	e.sess.RemainingSeconds = 0
	e.sess.Running = false

	e.runSessionCmd()
	e.changed()
}

// handleTaskRemoved drops the active task reference when the registry
// deletes the task it points at, pausing the countdown.
func (e *Engine) handleTaskRemoved(taskID string) {
	if e.sess.ActiveTaskID != taskID {
		return
	}

	e.sess.ActiveTaskID = ""
	e.sess.Running = false

	e.changed()
}

func (e *Engine) flipped() Kind {
	if e.sess.Kind == Focus {
		return Break
	}

	return Focus
}

func (e *Engine) duration(kind Kind) int {
	if kind == Break {
		return e.settings.BreakMinutes
	}

	return e.settings.WorkMinutes
}

func (e *Engine) notify(title, body string) {
	if e.notifier == nil {
		return
	}

	e.notifier.Notify(title, body)
}

// runSessionCmd executes the user's post-session hook, if configured.
func (e *Engine) runSessionCmd() {
	sessionCmd := e.settings.SessionCmd
	if sessionCmd == "" {
		return
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		slog.Error("unable to parse session cmd", "error", err)
		return
	}

	if len(cmdSlice) == 0 {
		return
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	go func() {
		if err := exec.Command(name, args...).Run(); err != nil {
			slog.Error("session cmd failed", "cmd", sessionCmd, "error", err)
		}
	}()
}

// changed runs the write-through and recompute hooks.
func (e *Engine) changed() {
	if e.sink != nil {
		e.sink(e.Snapshot())
	}

	if e.recompute != nil {
		e.recompute()
	}
}
