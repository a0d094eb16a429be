package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tempo/internal/export"
	"tempo/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export <file-or-dir>",
	Short: "Export all data",
	Long: `Export all data: tasks, sessions, schedule blocks, and settings.

The default JSON format writes one archive file that 'tempo import' can
read back. The csv format copies the raw data files into a directory.

Examples:
  tempo export backup.json
  tempo export --format csv ./exported`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")

		switch format {
		case "csv":
			if err := export.WriteCSVDir(args[0], app.DataDir); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("📦 Exported data files to %s\n", args[0])

		case "json":
			sessions, skipped, err := app.Sessions.Query(store.QueryOptions{})
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			archive := export.Archive{
				ExportedAt: time.Now(),
				Version:    version,
				Tasks:      app.Tasks.List(),
				Sessions:   sessions,
				Blocks:     app.Schedule.List(time.Time{}),
				Settings:   app.Config,
			}
			if err := export.WriteArchive(args[0], archive); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("📦 Exported %d task(s), %d session(s), %d schedule block(s) to %s\n",
				len(archive.Tasks), len(archive.Sessions), len(archive.Blocks), args[0])
			if skipped > 0 {
				fmt.Printf("⚠️  Skipped %d corrupt row(s) in the session log\n", skipped)
			}

		default:
			fmt.Printf("Error: unknown format %q (use json or csv)\n", format)
		}
	}),
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import data from a JSON archive",
	Long: `Import data from an archive written by 'tempo export'. The current
data is backed up first, then replaced by the archive's contents.`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		if _, _, ok := app.Tracker.Current(); ok {
			fmt.Println("Error: a tracking session is active. Stop it first with 'tempo stop'")
			return
		}

		archive, err := export.ReadArchive(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		// Safety net: snapshot the current data before overwriting it
		backupID, err := app.Backups.Backup(time.Now())
		if err != nil {
			fmt.Printf("Error: pre-import backup failed: %v\n", err)
			return
		}

		if err := store.SaveTasks(store.TasksPath(app.DataDir), archive.Tasks); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := store.SaveSessions(store.SessionsPath(app.DataDir), archive.Sessions); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := store.SaveBlocks(store.SchedulePath(app.DataDir), archive.Blocks); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := archive.Settings.Save(store.SettingsPath(app.DataDir)); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("📥 Imported %d task(s), %d session(s), %d schedule block(s)\n",
			len(archive.Tasks), len(archive.Sessions), len(archive.Blocks))
		fmt.Printf("Previous data saved as backup %s\n", backupID)
	}),
}

func init() {
	exportCmd.Flags().String("format", "json", "Export format: json or csv")
}
