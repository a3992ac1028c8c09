package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/burhanahmeed/tempo/internal/pathutil"
	"github.com/burhanahmeed/tempo/internal/task"
	"github.com/burhanahmeed/tempo/internal/ui"
	"github.com/burhanahmeed/tempo/store"
)

const noTasksMsg = "No tasks yet. Add one with 'tempo task add'"

const shortIDLen = 8

// registryHelper opens the datastore and restores the task registry with
// write-through persistence. The caller must close the returned DB.
func registryHelper() (*task.Registry, store.DB, error) {
	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return nil, nil, err
	}

	registry := task.New(persistTasks(db))

	if tasks, ok := db.LoadTasks(); ok {
		registry.Restore(tasks)
	}

	return registry, db, nil
}

// resolveTaskID matches the argument against full IDs, unique ID
// prefixes, and exact titles.
func resolveTaskID(registry *task.Registry, arg string) (string, error) {
	var matches []string

	for _, t := range registry.All() {
		if t.ID == arg || t.Title == arg {
			return t.ID, nil
		}

		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no task matches %q", arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q is ambiguous: %d tasks match", arg, len(matches))
	}
}

// printTasksTable prints the task table to the command-line.
func printTasksTable(w io.Writer, tasks []task.Task) {
	tableBody := make([][]string, len(tasks))

	for i := range tasks {
		t := tasks[i]

		statusText := ui.Magenta("open")
		if t.Done {
			statusText = ui.Green("done")
		}

		row := []string{
			fmt.Sprintf("%d", i+1),
			t.ID[:shortIDLen],
			t.Title,
			fmt.Sprintf("%d/%d", t.CompletedCount, t.EstimatedCount),
			statusText,
		}

		tableBody[i] = row
	}

	tableBody = append([][]string{
		{"#", "ID", "TITLE", "SESSIONS", "STATUS"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// taskAddAction handles the task add command.
func taskAddAction(ctx *cli.Context) error {
	if ctx.Args().Len() == 0 {
		return fmt.Errorf("a task title is required")
	}

	registry, db, err := registryHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	title := strings.Join(ctx.Args().Slice(), " ")

	t, ok := registry.Create(title, int(ctx.Uint("estimate")))
	if !ok {
		return fmt.Errorf("invalid task title: %q", title)
	}

	pterm.Success.Printfln("Added task %s: %s", t.ID[:shortIDLen], t.Title)

	return nil
}

// taskListAction prints a table of all tasks.
func taskListAction(ctx *cli.Context) error {
	registry, db, err := registryHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	if ctx.Bool("json") {
		b, err := json.Marshal(registry.Snapshot())
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	tasks := registry.All()
	if len(tasks) == 0 {
		pterm.Info.Println(noTasksMsg)
		return nil
	}

	printTasksTable(os.Stdout, tasks)

	return nil
}

// taskEditAction updates a task's title or estimate.
func taskEditAction(ctx *cli.Context) error {
	if ctx.Args().Len() == 0 {
		return fmt.Errorf("a task ID is required")
	}

	registry, db, err := registryHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	id, err := resolveTaskID(registry, ctx.Args().First())
	if err != nil {
		return err
	}

	title := strings.Join(ctx.Args().Tail(), " ")
	estimate := int(ctx.Uint("estimate"))

	if title == "" && estimate == 0 {
		return fmt.Errorf("nothing to change: provide a new title or --estimate")
	}

	registry.Update(id, title, estimate)

	pterm.Success.Printfln("Updated task %s", id[:shortIDLen])

	return nil
}

// taskDoneAction toggles a task's completion status.
func taskDoneAction(ctx *cli.Context) error {
	if ctx.Args().Len() == 0 {
		return fmt.Errorf("a task ID is required")
	}

	registry, db, err := registryHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	id, err := resolveTaskID(registry, ctx.Args().First())
	if err != nil {
		return err
	}

	registry.ToggleDone(id)

	t, _ := registry.Get(id)

	state := "open"
	if t.Done {
		state = "done"
	}

	pterm.Success.Printfln("Task %s is now %s", id[:shortIDLen], state)

	return nil
}

// taskDeleteAction deletes a single task.
func taskDeleteAction(ctx *cli.Context) error {
	if ctx.Args().Len() == 0 {
		return fmt.Errorf("a task ID is required")
	}

	registry, db, err := registryHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	id, err := resolveTaskID(registry, ctx.Args().First())
	if err != nil {
		return err
	}

	registry.Delete(id)

	pterm.Success.Printfln("Deleted task %s", id[:shortIDLen])

	return nil
}

// taskClearAction deletes all tasks after confirmation.
func taskClearAction(ctx *cli.Context) error {
	registry, db, err := registryHelper()
	if err != nil {
		return err
	}

	defer db.Close()

	if registry.Len() == 0 {
		pterm.Info.Println(noTasksMsg)
		return nil
	}

	cleared := registry.ClearAll(func() bool {
		if ctx.Bool("force") {
			return true
		}

		var confirmed bool

		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete all %d tasks?", registry.Len())).
			Affirmative("Delete").
			Negative("Keep").
			Value(&confirmed).
			Run()
		if err != nil {
			return false
		}

		return confirmed
	})

	if !cleared {
		pterm.Info.Println("No tasks were deleted")
		return nil
	}

	pterm.Success.Println("All tasks deleted")

	return nil
}
