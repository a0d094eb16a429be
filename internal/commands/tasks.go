package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <task-name>",
	Short: "Add a new task",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		name := args[0]
		existing := len(app.Tasks.List())

		task, err := app.Tasks.Upsert(name)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if len(app.Tasks.List()) == existing {
			fmt.Printf("Task %q already exists\n", task.Name)
			return
		}
		fmt.Printf("✅ Added task %q\n", task.Name)
	}),
}

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		tasks := app.Tasks.List()
		if len(tasks) == 0 {
			fmt.Println("No tasks found. Use 'tempo add \"task name\"' to create your first task.")
			return
		}

		fmt.Printf("%-40s %-12s %s\n", "TASK", "TRACKED", "CREATED")
		fmt.Println(strings.Repeat("-", 72))

		for _, task := range tasks {
			name := task.Name
			if len(name) > 38 {
				name = name[:35] + "..."
			}
			fmt.Printf("%-40s %-12s %s\n",
				name,
				formatSeconds(task.TotalTrackedSeconds),
				task.CreatedAt.Format("2006-01-02"))
		}
	}),
}

var removeCmd = &cobra.Command{
	Use:     "rm <task-name>",
	Aliases: []string{"remove"},
	Short:   "Remove a task and its sessions",
	Args:    cobra.ExactArgs(1),
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		name := args[0]

		if active, _, ok := app.Tracker.Current(); ok && active == name {
			fmt.Printf("Error: %q is currently being tracked. Stop it first with 'tempo stop'\n", name)
			return
		}

		if err := app.Tasks.Remove(name); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		removed, err := app.Sessions.RemoveTask(name)
		if err != nil {
			fmt.Printf("Error: task removed but its sessions were not: %v\n", err)
			return
		}

		fmt.Printf("🗑️  Removed task %q and %d session(s)\n", name, removed)
	}),
}

// formatSeconds renders a tracked total in a human-readable way
func formatSeconds(seconds float64) string {
	if seconds >= 3600 {
		return fmt.Sprintf("%.1fh", seconds/3600)
	} else if seconds >= 60 {
		return fmt.Sprintf("%.0fm", seconds/60)
	}
	return fmt.Sprintf("%.0fs", seconds)
}
