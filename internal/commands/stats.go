package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"tempo/internal/analytics"
	"tempo/internal/store"
	"tempo/internal/tui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show productivity statistics",
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		sessions, skipped, err := app.Sessions.Query(store.QueryOptions{})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(sessions) == 0 {
			fmt.Println("No tracked sessions yet. Start one with 'tempo start \"task name\"'.")
			return
		}

		now := time.Now()
		summary := analytics.Summarize(sessions, now)

		headerStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(tui.ColorAccentMain)).
			Bold(true)

		fmt.Println(headerStyle.Render("Overview"))
		fmt.Printf("  Total tracked:   %s across %d sessions on %d tasks\n",
			formatSeconds(summary.TotalSeconds), summary.TotalSessions, summary.UniqueTasks)
		fmt.Printf("  Average session: %s\n", formatSeconds(summary.AverageSeconds))
		fmt.Printf("  Today:           %s (%d sessions)\n",
			formatSeconds(summary.TodaySeconds), summary.TodaySessions)
		fmt.Printf("  Last 7 days:     %s (%d sessions)\n",
			formatSeconds(summary.WeekSeconds), summary.WeekSessions)
		fmt.Printf("  Last 30 days:    %s\n", formatSeconds(summary.MonthSeconds))
		if summary.HasMostProductive {
			fmt.Printf("  Best day/hour:   %s / %02d:00\n",
				summary.MostProductiveDay, summary.MostProductiveHour)
		}

		fmt.Println()
		fmt.Println(headerStyle.Render("By task"))
		for _, task := range summary.Tasks {
			name := task.TaskName
			if len(name) > 28 {
				name = name[:25] + "..."
			}
			fmt.Printf("  %-30s %-10s %3d sessions  avg %-8s %d day(s)\n",
				name,
				formatSeconds(task.TotalSeconds),
				task.Sessions,
				formatSeconds(task.AverageSeconds),
				task.Days)
		}

		fmt.Println()
		fmt.Println(headerStyle.Render("Last 14 days"))
		renderDailyChart(analytics.DailyTotals(sessions, 14, now))

		if skipped > 0 {
			fmt.Printf("\n⚠️  Skipped %d corrupt row(s) in the session log\n", skipped)
		}
	}),
}

// renderDailyChart prints a horizontal bar per day, scaled to the
// busiest day in the window
func renderDailyChart(days []analytics.DayTotal) {
	const maxBar = 40

	peak := 0.0
	for _, d := range days {
		if d.Seconds > peak {
			peak = d.Seconds
		}
	}
	if peak == 0 {
		fmt.Println("  (no sessions in this window)")
		return
	}

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorAccentBright))
	for _, d := range days {
		width := int(d.Seconds / peak * maxBar)
		bar := barStyle.Render(strings.Repeat("█", width))
		padding := strings.Repeat(" ", maxBar-width)
		fmt.Printf("  %s %s%s %s\n",
			d.Date.Format("Jan 02"),
			bar, padding,
			formatSeconds(d.Seconds))
	}
}
