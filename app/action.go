package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/burhanahmeed/tempo/internal/config"
	"github.com/burhanahmeed/tempo/internal/engine"
	"github.com/burhanahmeed/tempo/internal/models"
	"github.com/burhanahmeed/tempo/internal/notify"
	"github.com/burhanahmeed/tempo/internal/pathutil"
	"github.com/burhanahmeed/tempo/internal/playback"
	"github.com/burhanahmeed/tempo/internal/sandbox"
	"github.com/burhanahmeed/tempo/internal/task"
	"github.com/burhanahmeed/tempo/internal/ui"
	"github.com/burhanahmeed/tempo/store"
	"github.com/burhanahmeed/tempo/timer"
)

const (
	envNoColor      = "NO_COLOR"
	envTempoNoColor = "TEMPO_NO_COLOR"
	envDebug        = "TEMPO_DEBUG"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// initLogging routes slog output to a rotated log file so the TUI screen
// stays clean.
func initLogging() {
	level := slog.LevelInfo
	if _, found := os.LookupEnv(envDebug); found {
		level = slog.LevelDebug
	}

	w := &lumberjack.Logger{
		Filename:   pathutil.LogFilePath(),
		MaxSize:    5, // megabytes
		MaxBackups: 2,
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
	)
}

// withStoreSettings layers the persisted settings slot over the file
// config. Only the fields mutable from inside the timer carry over so
// that config file edits are not shadowed by stale snapshots.
func withStoreSettings(db store.DB) config.Option {
	return func(c *config.Config) error {
		m, ok := db.LoadSettings()
		if !ok {
			return nil
		}

		c.Settings.MusicOn = m.MusicOn
		c.Settings.MusicVolume = m.MusicVolume

		return nil
	}
}

func persistTasks(db store.DB) func([]models.Task) {
	return func(tasks []models.Task) {
		if err := db.SaveTasks(tasks); err != nil {
			slog.Error("unable to persist tasks", slog.Any("error", err))
		}
	}
}

func persistSession(db store.DB) func(models.Session) {
	return func(s models.Session) {
		if err := db.SaveSession(s); err != nil {
			slog.Error("unable to persist session", slog.Any("error", err))
		}
	}
}

func persistPlaylist(db store.DB) func(models.Playlist) {
	return func(p models.Playlist) {
		if err := db.SavePlaylist(p); err != nil {
			slog.Error("unable to persist playlist", slog.Any("error", err))
		}
	}
}

// startTask resolves the --task flag to a task ID, creating the task if
// no open task matches by title or ID prefix.
func startTask(registry *task.Registry, name string) (string, error) {
	for _, t := range registry.All() {
		if t.Title == name || strings.HasPrefix(t.ID, name) {
			return t.ID, nil
		}
	}

	t, ok := registry.Create(name, 0)
	if !ok {
		return "", fmt.Errorf("invalid task title: %q", name)
	}

	return t.ID, nil
}

// defaultAction starts the timer TUI.
func defaultAction(ctx *cli.Context) error {
	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	cfg, err := config.New(
		config.WithPromptConfig(pathutil.ConfigFilePath()),
		config.WithViperConfig(pathutil.ConfigFilePath()),
		withStoreSettings(db),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	registry := task.New(persistTasks(db))
	if tasks, ok := db.LoadTasks(); ok {
		registry.Restore(tasks)
	}

	player := playback.NewSpeakerPlayer(pathutil.TracksDirPath())
	defer player.Close()

	controller := playback.NewController(
		player,
		playback.WithSink(persistPlaylist(db)),
	)

	if playlist, ok := db.LoadPlaylist(); ok {
		controller.Restore(playlist)
	}

	var eng *engine.Engine

	eng = engine.New(
		&cfg.Settings,
		registry,
		engine.WithNotifier(notify.New(&cfg.Settings, "")),
		engine.WithSink(persistSession(db)),
		engine.WithRecompute(func() {
			sess := eng.Session()
			controller.Recompute(
				cfg.Settings.MusicOn,
				sess.Running,
				sess.Kind == engine.Focus,
			)
		}),
	)

	if sess, ok := db.LoadSession(); ok {
		eng.Restore(sess)
	}

	if name := ctx.String("task"); name != "" {
		taskID, err := startTask(registry, name)
		if err != nil {
			return err
		}

		eng.Start(taskID)
	}

	return timer.Run(timer.New(cfg, eng, registry, controller, player, db))
}

// evalAction runs a date/time script and prints its result.
func evalAction(ctx *cli.Context) error {
	var script string

	switch file := ctx.String("file"); {
	case file == "-":
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}

		script = string(b)
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return err
		}

		script = string(b)
	default:
		if ctx.Args().Len() == 0 {
			return fmt.Errorf("no script provided")
		}

		script = strings.Join(ctx.Args().Slice(), " ")
	}

	res := sandbox.NewExecutor().Execute(ctx.Context, script)

	for _, line := range res.Logs {
		pterm.Println(line)
	}

	if res.Err != nil {
		return res.Err
	}

	if res.Value != "" {
		pterm.Println(res.Value)
	}

	return nil
}

// editConfigAction opens the config file in the user's text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// statusAction prints the status of the currently running timer.
func statusAction(_ *cli.Context) error {
	return timer.ReportStatus()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if TEMPO_NO_COLOR is set
	if _, exists := os.LookupEnv(envTempoNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	if err := pathutil.Initialize(); err != nil {
		return err
	}

	initLogging()

	return nil
}
