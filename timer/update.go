package timer

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/davecgh/go-spew/spew"

	"github.com/burhanahmeed/tempo/internal/playback"
)

// handleTick advances the engine by one second and reschedules the tick
// while the countdown keeps running. Ticks from a superseded generation
// are dropped, so a tick in flight across a pause or resume cannot
// start a second cycle. A session that completes on this tick pauses at
// the boundary, which also stops the cycle.
func (t *Timer) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != t.tickGen {
		return t, nil
	}

	if !t.engine.Session().Running {
		return t, nil
	}

	t.engine.Tick()

	_ = t.writeStatusFile()

	if t.engine.Session().Running {
		return t, t.tick()
	}

	return t, nil
}

// handlePlayerEvent passes player events to the controller and keeps
// listening.
func (t *Timer) handlePlayerEvent(ev playback.Event) (tea.Model, tea.Cmd) {
	slog.Debug("player event", "event", spew.Sdump(ev))

	t.controller.HandleEvent(ev)

	if ev.Kind == playback.EventReady {
		t.controller.SetVolume(t.Opts.Settings.MusicVolume)
		t.recompute()
	}

	return t, t.listenPlayer()
}

func (t *Timer) handleConfirmMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := t.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.confirm = f
	}

	if t.confirm.State != huh.StateCompleted {
		return t, cmd
	}

	confirmed := t.confirm.GetBool(confirmKey)
	t.confirm = nil

	if confirmed {
		t.registry.ClearAll(func() bool { return true })
		t.recompute()
	}

	return t, cmd
}

func (t *Timer) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.togglePlay):
		t.engine.ToggleRun()
		t.tickGen++

		if t.engine.Session().Running {
			return t, t.tick()
		}

		return t, nil

	case key.Matches(msg, defaultKeymap.switchKind):
		t.engine.SwitchKind()
		return t, nil

	case key.Matches(msg, defaultKeymap.reset):
		t.engine.Reset()
		return t, nil

	case key.Matches(msg, defaultKeymap.nextTask):
		return t, t.cycleTask()

	case key.Matches(msg, defaultKeymap.nextTrack):
		t.controller.Advance()
		return t, nil

	case key.Matches(msg, defaultKeymap.prevTrack):
		t.controller.Retreat()
		return t, nil

	case key.Matches(msg, defaultKeymap.music):
		t.Opts.Settings.MusicOn = !t.Opts.Settings.MusicOn
		t.persistSettings()
		t.recompute()

		return t, nil

	case key.Matches(msg, defaultKeymap.volumeUp):
		t.adjustVolume(volumeStep)
		return t, nil

	case key.Matches(msg, defaultKeymap.volumeDown):
		t.adjustVolume(-volumeStep)
		return t, nil

	case key.Matches(msg, defaultKeymap.clearTasks):
		if t.registry.Len() > 0 {
			t.confirm = clearAllForm(new(bool))
			return t, t.confirm.Init()
		}

		return t, nil

	case key.Matches(msg, defaultKeymap.quit):
		t.quitting = true

		return t, tea.Batch(tea.ClearScreen, tea.Quit)
	}

	return t, nil
}

const volumeStep = 0.1

func (t *Timer) adjustVolume(delta float64) {
	vol := t.Opts.Settings.MusicVolume + delta

	if vol < 0 {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}

	t.Opts.Settings.MusicVolume = vol
	t.persistSettings()
	t.controller.SetVolume(vol)
}

func (t *Timer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if t.confirm != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok &&
			keyMsg.String() == "ctrl+c" {
			t.quitting = true
			return t, tea.Batch(tea.ClearScreen, tea.Quit)
		}

		return t.handleConfirmMsg(msg)
	}

	switch msg := msg.(type) {
	case tickMsg:
		return t.handleTick(msg)

	case playerEventMsg:
		return t.handlePlayerEvent(playback.Event(msg))

	case playerGoneMsg:
		// the player failed to initialise; music stays off
		return t, nil

	case tea.KeyMsg:
		return t.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.progress.Width = msg.Width - padding*2 - 4

		if t.progress.Width > maxWidth {
			t.progress.Width = maxWidth
		}

		return t, nil

	// FrameMsg is sent when the progress bar wants to animate itself
	case progress.FrameMsg:
		var cmd tea.Cmd

		progressModel, cmd := t.progress.Update(msg)
		t.progress, _ = progressModel.(progress.Model)

		return t, cmd
	}

	return t, nil
}
