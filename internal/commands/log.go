package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tempo/internal/parser"
	"tempo/internal/store"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show sealed tracking sessions",
	Long: `Show sealed tracking sessions, optionally filtered by task and date.

Examples:
  tempo log
  tempo log --task "Writing"
  tempo log --from "7 days ago" --to today`,
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		opts := store.QueryOptions{}
		now := time.Now()

		opts.TaskName, _ = cmd.Flags().GetString("task")

		if from, _ := cmd.Flags().GetString("from"); from != "" {
			t, err := parser.ParseDate(from, now)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			opts.From = t
		}
		if to, _ := cmd.Flags().GetString("to"); to != "" {
			t, err := parser.ParseDate(to, now)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			opts.To = parser.EndOfDay(t)
		}

		sessions, skipped, err := app.Sessions.Query(opts)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
		} else {
			fmt.Printf("%-30s %-17s %-17s %s\n", "TASK", "START", "END", "DURATION")
			fmt.Println(strings.Repeat("-", 78))

			for _, s := range sessions {
				name := s.TaskName
				if len(name) > 28 {
					name = name[:25] + "..."
				}
				fmt.Printf("%-30s %-17s %-17s %s\n",
					name,
					s.StartTime.Format("2006-01-02 15:04"),
					s.EndTime.Format("2006-01-02 15:04"),
					formatDuration(s.Duration()))
			}
		}

		if skipped > 0 {
			fmt.Printf("\n⚠️  Skipped %d corrupt row(s) in the session log\n", skipped)
		}
	}),
}

func init() {
	logCmd.Flags().StringP("task", "t", "", "Filter by task name")
	logCmd.Flags().String("from", "", "Earliest session date (yyyy-mm-dd, today, X days ago)")
	logCmd.Flags().String("to", "", "Latest session date (yyyy-mm-dd, today, X days ago)")
}
