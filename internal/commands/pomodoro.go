package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tempo/internal/pomodoro"
	"tempo/internal/tui"
)

var pomodoroCmd = &cobra.Command{
	Use:     "pomodoro",
	Aliases: []string{"pomo"},
	Short:   "Run the pomodoro timer",
	Long: `Run the interactive pomodoro timer using the configured durations.
Adjust them with 'tempo settings set pomodoro.work_minutes 50' etc.`,
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		timer := pomodoro.NewTimer(app.Config.Pomodoro)
		if err := tui.RunPomodoro(timer); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}
