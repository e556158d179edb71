package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sunshineyour/AI-IDE-Chat-Export-Tool/internal"
)

var listSource string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations found across all hosts",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, extractor := newExtractor()

		conversations, err := extractFrom(extractor, listSource)
		if err != nil {
			return err
		}
		if len(conversations) == 0 {
			internal.PrintWarning("No conversations found")
			return nil
		}

		internal.PrintHeader(fmt.Sprintf("%-10s %-8s %-20s %6s  %s", "ID", "SOURCE", "LAST INTERACTION", "MSGS", "FLAGS"))
		for _, conv := range conversations {
			flags := ""
			if conv.IsPinned {
				flags += "pinned "
			}
			if conv.IsShareable {
				flags += "shareable"
			}
			fmt.Printf("%-10s %-8s %-20s %6d  %s\n",
				truncateID(conv.ID, 10),
				conv.Source,
				conv.LastInteractedAt.Format("2006-01-02 15:04:05"),
				len(conv.Messages),
				flags)
		}

		internal.PrintSuccess(fmt.Sprintf("%d conversation(s)", len(conversations)))
		return nil
	},
}

func truncateID(id string, n int) string {
	if len(id) > n {
		return id[:n-2] + ".."
	}
	return id
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listSource, "source", "", "Only this source (vscode, cursor, idea, pycharm)")
}
