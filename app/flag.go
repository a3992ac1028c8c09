package app

import "github.com/urfave/cli/v2"

var (
	workFlag = &cli.UintFlag{
		Name:    "work",
		Aliases: []string{"w"},
		Usage:   "Focus session duration in minutes (default: 25)",
	}

	breakFlag = &cli.UintFlag{
		Name:    "break",
		Aliases: []string{"b"},
		Usage:   "Break duration in minutes (default: 5)",
	}

	taskFlag = &cli.StringFlag{
		Name:    "task",
		Aliases: []string{"t"},
		Usage:   "Start the focus session with the named task active. Creates the task if it does not exist",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a session is completed",
	}

	musicFlag = &cli.BoolFlag{
		Name:  "music",
		Usage: "Play playlist music during focus sessions",
	}

	noMusicFlag = &cli.BoolFlag{
		Name:  "no-music",
		Usage: "Disable playlist music for this run",
	}

	volumeFlag = &cli.Float64Flag{
		Name:  "volume",
		Usage: "Music volume between 0.0 and 1.0 (default: 0.5)",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each session",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	estimateFlag = &cli.UintFlag{
		Name:    "estimate",
		Aliases: []string{"e"},
		Usage:   "Estimated number of focus sessions the task will take (default: 1)",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output in JSON format",
	}

	forceFlag = &cli.BoolFlag{
		Name:    "force",
		Aliases: []string{"f"},
		Usage:   "Skip the confirmation prompt",
	}

	fileFlag = &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "Read the script from a file instead of the command line ('-' for stdin)",
	}
)
