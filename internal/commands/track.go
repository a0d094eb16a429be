package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tempo/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start <task-name>",
	Short: "Start tracking time on a task",
	Long: `Start tracking time on a task, creating it on first use.
Opens the interactive timer by default; use --no-ui for a simple start.

Examples:
  tempo start "Writing"         # Start timer with interactive UI
  tempo start "Writing" --no-ui # Start timer and return to the shell`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		if err := app.Tracker.Start(args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		taskName, startTime, _ := app.Tracker.Current()

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			fmt.Printf("⏱️  Started tracking %q\n", taskName)
			fmt.Printf("Started at: %s\n", startTime.Format("15:04:05"))
			return
		}

		stopped, err := tui.RunTrackingTimer(app.Tracker)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if !stopped {
			fmt.Printf("⏱️  Still tracking %q. Stop it with 'tempo stop'\n", taskName)
			return
		}

		session, err := app.Tracker.Stop()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("⏹️  Stopped tracking %q\n", session.TaskName)
		fmt.Printf("Session duration: %s\n", formatDuration(session.Duration()))
	}),
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the active tracking session",
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		session, err := app.Tracker.Stop()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("⏹️  Stopped tracking %q\n", session.TaskName)
		fmt.Printf("Session duration: %s\n", formatDuration(session.Duration()))
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current tracking status",
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		taskName, startTime, ok := app.Tracker.Current()
		if !ok {
			fmt.Println("No active tracking session")
			return
		}

		fmt.Printf("⏱️  Currently tracking %q\n", taskName)
		fmt.Printf("Started at: %s\n", startTime.Format("15:04:05"))
		fmt.Printf("Elapsed time: %s\n", formatDuration(app.Tracker.Elapsed()))
	}),
}

func init() {
	startCmd.Flags().Bool("no-ui", false, "Start tracking without the interactive timer")
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	return fmt.Sprintf("%.0fs", d.Seconds())
}
