package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up the data files now",
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		id, err := app.Backups.Backup(time.Now())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("💾 Backup %s created\n", id)
	}),
}

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List existing backups",
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		backups, err := app.Backups.List()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(backups) == 0 {
			fmt.Println("No backups yet. Create one with 'tempo backup'.")
			return
		}

		fmt.Printf("%-18s %s\n", "ID", "TAKEN")
		fmt.Println(strings.Repeat("-", 40))
		for _, b := range backups {
			fmt.Printf("%-18s %s\n", b.ID, b.Time.Format("2006-01-02 15:04:05"))
		}
	}),
}

var restoreCmd = &cobra.Command{
	Use:   "restore <backup-id>",
	Short: "Restore the data files from a backup",
	Long: `Restore the data files from a backup taken earlier.
The current files are overwritten; consider running 'tempo backup' first.`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		if _, _, ok := app.Tracker.Current(); ok {
			fmt.Println("Error: a tracking session is active. Stop it first with 'tempo stop'")
			return
		}

		if err := app.Backups.Restore(args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("♻️  Restored backup %s\n", args[0])
	}),
}
