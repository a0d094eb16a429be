package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tempo/internal/store"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the current settings",
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		out, err := yaml.Marshal(app.Config)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Print(string(out))
	}),
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting by its dotted key and persist it.

Examples:
  tempo settings set pomodoro.work_minutes 50
  tempo settings set backup.frequency_hours 12
  tempo settings set notifications.sound false`,
	Args: cobra.ExactArgs(2),
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		key, value := args[0], args[1]

		if err := app.Config.Set(key, value); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := app.Config.Save(store.SettingsPath(app.DataDir)); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ %s = %s\n", key, value)
	}),
}

func init() {
	settingsCmd.AddCommand(settingsSetCmd)
}
