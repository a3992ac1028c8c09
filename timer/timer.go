// Package timer renders the countdown TUI and connects user input to the
// session engine, the task registry, and the playback controller.
package timer

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	bolt "go.etcd.io/bbolt"

	"github.com/burhanahmeed/tempo/internal/config"
	"github.com/burhanahmeed/tempo/internal/engine"
	"github.com/burhanahmeed/tempo/internal/pathutil"
	"github.com/burhanahmeed/tempo/internal/playback"
	"github.com/burhanahmeed/tempo/internal/task"
	"github.com/burhanahmeed/tempo/internal/timeutil"
	"github.com/burhanahmeed/tempo/store"
)

const (
	padding  = 2
	maxWidth = 80
)

// tickMsg drives the engine once per second of wall-clock time. The
// generation lets Update drop ticks scheduled before a pause or resume,
// so only one cycle is ever live.
type tickMsg struct {
	gen int
}

// playerEventMsg wraps an event from the external player.
type playerEventMsg playback.Event

// playerGoneMsg indicates the player's event channel closed.
type playerGoneMsg struct{}

// Timer is the bubbletea model for the countdown UI.
type Timer struct {
	Opts       *config.Config
	engine     *engine.Engine
	registry   *task.Registry
	controller *playback.Controller
	player     playback.Player
	db         store.DB

	style    config.Style
	progress progress.Model
	help     help.Model
	confirm  *huh.Form

	width    int
	tickGen  int
	quitting bool
}

// New creates the timer model.
func New(
	cfg *config.Config,
	eng *engine.Engine,
	registry *task.Registry,
	controller *playback.Controller,
	player playback.Player,
	db store.DB,
) *Timer {
	return &Timer{
		Opts:       cfg,
		engine:     eng,
		registry:   registry,
		controller: controller,
		player:     player,
		db:         db,
		style:      config.DefaultStyle(),
		progress:   progress.New(progress.WithDefaultGradient()),
		help:       help.New(),
	}
}

// Init schedules the player event listener. The countdown tick is only
// scheduled while the session is running.
func (t *Timer) Init() tea.Cmd {
	cmds := []tea.Cmd{t.listenPlayer()}

	if t.engine.Session().Running {
		cmds = append(cmds, t.tick())
	}

	return tea.Batch(cmds...)
}

// tick emits one tickMsg after a second, stamped with the current
// generation. It is rescheduled from Update only while the countdown is
// running, so pausing cancels the cycle.
func (t *Timer) tick() tea.Cmd {
	gen := t.tickGen

	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// listenPlayer waits for the next event from the external player.
func (t *Timer) listenPlayer() tea.Cmd {
	if t.player == nil {
		return nil
	}

	ch := t.player.Events()

	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return playerGoneMsg{}
		}

		return playerEventMsg(ev)
	}
}

// recompute reapplies the autoplay policy from the current state.
func (t *Timer) recompute() {
	sess := t.engine.Session()

	t.controller.Recompute(
		t.Opts.Settings.MusicOn,
		sess.Running,
		sess.Kind == engine.Focus,
	)
}

// cycleTask starts a fresh focus session with the next unfinished task,
// wrapping around the task list. Starting always begins a running
// countdown, so the generation is bumped and a new tick scheduled.
func (t *Timer) cycleTask() tea.Cmd {
	tasks := t.registry.All()
	if len(tasks) == 0 {
		return nil
	}

	next := 0

	active := t.engine.Session().ActiveTaskID
	for i := range tasks {
		if tasks[i].ID == active {
			next = i + 1
			break
		}
	}

	for i := range tasks {
		tsk := tasks[(next+i)%len(tasks)]
		if tsk.Done {
			continue
		}

		t.engine.Start(tsk.ID)
		t.tickGen++

		return t.tick()
	}

	return nil
}

// activeTaskTitle resolves the active task reference, if any.
func (t *Timer) activeTaskTitle() string {
	sess := t.engine.Session()
	if sess.ActiveTaskID == "" {
		return ""
	}

	tsk, ok := t.registry.Get(sess.ActiveTaskID)
	if !ok {
		return ""
	}

	return tsk.Title
}

// Status is the external status report for a running timer.
type Status struct {
	Kind      string `json:"kind"`
	Task      string `json:"task,omitempty"`
	Remaining string `json:"remaining"`
	Running   bool   `json:"running"`
}

// writeStatusFile records the countdown state for the status command.
func (t *Timer) writeStatusFile() error {
	sess := t.engine.Session()

	s := Status{
		Kind: string(sess.Kind),
		Task: t.activeTaskTitle(),
		Remaining: timeutil.FormatMinsAndSecs(
			sess.RemainingMinutes,
			sess.RemainingSeconds,
		),
		Running: sess.Running,
	}

	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	statusFile, err := os.Create(pathutil.StatusFilePath())
	if err != nil {
		return err
	}

	defer func() {
		ferr := statusFile.Close()
		if ferr != nil {
			err = ferr
		}
	}()

	writer := bufio.NewWriter(statusFile)

	_, err = writer.Write(b)
	if err != nil {
		return err
	}

	return writer.Flush()
}

// ReportStatus prints the status of a timer running in another process.
func ReportStatus() error {
	dbFilePath := pathutil.DBFilePath()
	statusFilePath := pathutil.StatusFilePath()

	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(dbFilePath, fileMode, &bolt.Options{
		Timeout: 100 * time.Millisecond,
	})
	// no lock contention means no timer is running, so nothing to report
	if err == nil {
		_ = db.Close()
		return nil
	}

	if !errors.Is(err, bolt.ErrTimeout) {
		return err
	}

	fileBytes, err := os.ReadFile(statusFilePath)
	if err != nil {
		// missing file should not return an error
		return nil
	}

	var s Status

	err = json.Unmarshal(fileBytes, &s)
	if err != nil {
		return err
	}

	label := "[Focus]"
	if s.Kind == string(engine.Break) {
		label = "[Break]"
	}

	state := "paused"
	if s.Running {
		state = "running"
	}

	if s.Task != "" {
		label = fmt.Sprintf("%s %s", label, s.Task)
	}

	pterm.Printfln("%s: %s (%s)", label, s.Remaining, state)

	return nil
}

// persistSettings writes the settings slot through to the store.
func (t *Timer) persistSettings() {
	if t.db == nil {
		return
	}

	if err := t.db.SaveSettings(t.Opts.Settings.ToModel()); err != nil {
		pterm.Error.Printfln("unable to save settings: %v", err)
	}
}

const confirmKey = "confirm"

// clearAllForm builds the confirmation prompt guarding clear-all.
func clearAllForm(confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key(confirmKey).
				Title("Delete all tasks?").
				Description("This removes every task and stops the countdown.").
				Affirmative("Delete").
				Negative("Keep").
				Value(confirmed),
		),
	)
}

// Run starts the timer program.
func Run(t *Timer) error {
	_, err := tea.NewProgram(t).Run()

	_ = os.Remove(pathutil.StatusFilePath())

	return err
}
