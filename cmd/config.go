package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sunshineyour/AI-IDE-Chat-Export-Tool/internal"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage persisted path overrides",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the configured path overrides",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := internal.LoadSettings(configPath)
		for _, spec := range internal.Hosts {
			value := settings.PathFor(spec.ID)
			if value == "" {
				value = "(default)"
			}
			fmt.Printf("%-8s %s\n", spec.ID, value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <source> <path>",
	Short: "Override the storage path for one source",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, path := args[0], args[1]
		spec, ok := internal.HostByID(source)
		if !ok {
			return fmt.Errorf("unknown source: %s (supported: vscode, cursor, idea, pycharm)", source)
		}

		// Validation is feedback, not a gate: a path may be prepared later.
		result := internal.ValidatePath(spec, path)
		if !result.Valid {
			internal.PrintWarning(fmt.Sprintf("path saved but looks wrong: %s", result.Reason))
		}

		settings := internal.LoadSettings(configPath)
		if err := settings.SetPath(spec.ID, path); err != nil {
			return err
		}
		internal.PrintSuccess(fmt.Sprintf("%s path set to %s", source, path))
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every path override",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := internal.LoadSettings(configPath)
		if err := settings.Reset(); err != nil {
			return err
		}
		internal.PrintSuccess("All path overrides cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configResetCmd)
}
