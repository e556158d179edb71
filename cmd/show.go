package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sunshineyour/AI-IDE-Chat-Export-Tool/internal/export"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <conversation-id>",
	Short: "Print one conversation as Markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		_, extractor := newExtractor()

		// Id prefixes are accepted so that list output can be pasted.
		for _, conv := range extractor.ExtractAll() {
			if conv.ID == id || strings.HasPrefix(conv.ID, id) {
				exporter := &export.MarkdownExporter{}
				return exporter.Export(&conv, os.Stdout)
			}
		}
		return fmt.Errorf("conversation not found: %s (use 'aichat-export list' to see available ids)", id)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
