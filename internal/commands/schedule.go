package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tempo/internal/parser"
)

var scheduleCmd = &cobra.Command{
	Use:     "schedule",
	Aliases: []string{"sched"},
	Short:   "Plan schedule blocks for your day",
	Long: `Plan schedule blocks for your day. Blocks on the same day must not
overlap; a conflicting block is rejected.

Examples:
  tempo schedule add "Writing" --from 09:00 --to 10:30
  tempo schedule add "Standup" --date 2026-08-27 --from 10:30 --to 11:00 --type meeting
  tempo schedule ls --date today
  tempo schedule done "Writing" --from 09:00
  tempo schedule rm "Standup" --date 2026-08-27 --from 10:30`,
}

var scheduleAddCmd = &cobra.Command{
	Use:   "add <task-name>",
	Short: "Plan a schedule block",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		day, err := scheduleDay(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		blockType, _ := cmd.Flags().GetString("type")
		notes, _ := cmd.Flags().GetString("notes")

		block, err := app.Schedule.Add(day, from, to, args[0], blockType, notes)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("📅 Planned %q on %s, %s-%s\n",
			block.TaskName,
			block.Date.Format("2006-01-02"),
			block.Start.Format("15:04"),
			block.End.Format("15:04"))
	}),
}

var scheduleListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List schedule blocks",
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		day := time.Time{}
		if date, _ := cmd.Flags().GetString("date"); date != "" {
			d, err := parser.ParseDate(date, time.Now())
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			day = d
		}

		blocks := app.Schedule.List(day)
		if len(blocks) == 0 {
			fmt.Println("No schedule blocks found. Plan one with 'tempo schedule add'.")
			return
		}

		fmt.Printf("%-12s %-13s %-30s %-10s %-3s %s\n", "DATE", "TIME", "TASK", "TYPE", "", "NOTES")
		fmt.Println(strings.Repeat("-", 80))

		for _, b := range blocks {
			done := ""
			if b.Completed {
				done = "✓"
			}
			name := b.TaskName
			if len(name) > 28 {
				name = name[:25] + "..."
			}
			fmt.Printf("%-12s %s-%s   %-30s %-10s %-3s %s\n",
				b.Date.Format("2006-01-02"),
				b.Start.Format("15:04"),
				b.End.Format("15:04"),
				name,
				b.BlockType,
				done,
				b.Notes)
		}
	}),
}

var scheduleDoneCmd = &cobra.Command{
	Use:   "done <task-name>",
	Short: "Mark a schedule block as completed",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		day, err := scheduleDay(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		from, _ := cmd.Flags().GetString("from")

		if err := app.Schedule.Complete(day, from, args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Completed %q at %s\n", args[0], from)
	}),
}

var scheduleRmCmd = &cobra.Command{
	Use:     "rm <task-name>",
	Aliases: []string{"remove"},
	Short:   "Remove a schedule block",
	Args:    cobra.ExactArgs(1),
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		day, err := scheduleDay(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		from, _ := cmd.Flags().GetString("from")

		if err := app.Schedule.Remove(day, from, args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Removed schedule block %q at %s\n", args[0], from)
	}),
}

// scheduleDay resolves the --date flag, defaulting to today
func scheduleDay(cmd *cobra.Command) (time.Time, error) {
	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = "today"
	}
	return parser.ParseDate(date, time.Now())
}

func init() {
	for _, cmd := range []*cobra.Command{scheduleAddCmd, scheduleDoneCmd, scheduleRmCmd} {
		cmd.Flags().String("date", "", "Day of the block (yyyy-mm-dd, today, ...; default today)")
		cmd.Flags().String("from", "", "Start time (HH:MM)")
		cmd.MarkFlagRequired("from")
	}
	scheduleAddCmd.Flags().String("to", "", "End time (HH:MM)")
	scheduleAddCmd.MarkFlagRequired("to")
	scheduleAddCmd.Flags().String("type", "work", "Block type (work, break, meeting, ...)")
	scheduleAddCmd.Flags().String("notes", "", "Free-form notes")
	scheduleListCmd.Flags().String("date", "", "Only blocks on this day (yyyy-mm-dd, today, ...)")

	scheduleCmd.AddCommand(scheduleAddCmd)
	scheduleCmd.AddCommand(scheduleListCmd)
	scheduleCmd.AddCommand(scheduleDoneCmd)
	scheduleCmd.AddCommand(scheduleRmCmd)
}
