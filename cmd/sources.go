package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sunshineyour/AI-IDE-Chat-Export-Tool/internal"
)

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Show detected store containers per host",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt := internal.NewRuntime(verbose)
		settings := internal.LoadSettings(configPath)
		locator := internal.NewLocator(rt, settings)

		for _, spec := range internal.Hosts {
			internal.PrintHeader(fmt.Sprintf("%s (%s)", spec.Name, spec.ID))

			if override := settings.PathFor(spec.ID); override != "" {
				result := internal.ValidatePath(spec, override)
				status := "ok"
				if !result.Valid {
					status = result.Reason
				}
				fmt.Printf("  override: %s (%s)\n", override, status)
			}

			containers := locator.Containers(spec)
			if len(containers) == 0 {
				fmt.Println("  no containers found")
				continue
			}
			for _, container := range containers {
				fmt.Printf("  %s  %s\n", container.ID, container.Path)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
