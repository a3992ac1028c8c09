// Package app defines the tempo command-line interface.
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/burhanahmeed/tempo/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the tempo app instance.
func Get() *cli.App {
	tempoApp := &cli.App{
		Name: "tempo",
		Authors: []*cli.Author{
			{
				Name:  "Burhan Ahmed",
				Email: "burhan@hey.com",
			},
		},
		Usage: `
		Tempo is a Pomodoro timer for the command-line that keeps a task list
		alongside the countdown and plays music from a personal playlist while
		you focus.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:  "task",
				Usage: "Manage the task list",
				Subcommands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Add a new task",
						UsageText: "tempo task add [OPTIONS] <title>",
						Flags:     []cli.Flag{estimateFlag},
						Action:    taskAddAction,
					},
					{
						Name:   "list",
						Usage:  "List all tasks",
						Flags:  []cli.Flag{jsonFlag},
						Action: taskListAction,
					},
					{
						Name:      "edit",
						Usage:     "Edit a task's title or estimate",
						UsageText: "tempo task edit [OPTIONS] <id> [new title]",
						Flags:     []cli.Flag{estimateFlag},
						Action:    taskEditAction,
					},
					{
						Name:      "done",
						Usage:     "Toggle a task's completion status",
						UsageText: "tempo task done <id>",
						Action:    taskDoneAction,
					},
					{
						Name:      "delete",
						Usage:     "Delete a task",
						UsageText: "tempo task delete <id>",
						Action:    taskDeleteAction,
					},
					{
						Name:   "clear",
						Usage:  "Delete all tasks",
						Flags:  []cli.Flag{forceFlag},
						Action: taskClearAction,
					},
				},
			},
			{
				Name:  "playlist",
				Usage: "Manage the focus music playlist",
				Subcommands: []*cli.Command{
					{
						Name:      "add",
						Usage:     "Add a YouTube video to the playlist",
						UsageText: "tempo playlist add <url>",
						Action:    playlistAddAction,
					},
					{
						Name:   "list",
						Usage:  "List all playlist tracks",
						Flags:  []cli.Flag{jsonFlag},
						Action: playlistListAction,
					},
					{
						Name:      "remove",
						Usage:     "Remove a track from the playlist",
						UsageText: "tempo playlist remove <id>",
						Action:    playlistRemoveAction,
					},
				},
			},
			{
				Name:      "eval",
				Usage:     "Evaluate a date/time script",
				UsageText: "tempo eval [OPTIONS] [script]",
				Flags:     []cli.Flag{fileFlag},
				Action:    evalAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the timer",
				Action: statusAction,
			},
		},
		Flags: []cli.Flag{
			workFlag,
			breakFlag,
			taskFlag,
			disableNotificationFlag,
			musicFlag,
			noMusicFlag,
			volumeFlag,
			sessionCmdFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
	}

	return tempoApp
}
