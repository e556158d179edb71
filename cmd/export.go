package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sunshineyour/AI-IDE-Chat-Export-Tool/internal"
	"github.com/sunshineyour/AI-IDE-Chat-Export-Tool/internal/export"
)

var (
	exportFormat string
	exportOut    string
	exportSource string
	exportID     string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export conversations to files",
	Long: `Export conversations to various formats (json, md, html, yaml).

You can export everything, filter by source, or export a single
conversation by id. Use 'aichat-export list' to see available ids.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		rt, extractor := newExtractor()

		var conversations []internal.Conversation
		steps := []internal.ProgressStep{
			{
				Message: "Extracting conversations from host stores",
				Fn: func() error {
					var extractErr error
					conversations, extractErr = extractFrom(extractor, exportSource)
					return extractErr
				},
			},
		}
		if err := internal.RunSteps(context.Background(), steps); err != nil {
			return err
		}

		if exportID != "" {
			filtered := conversations[:0]
			for _, conv := range conversations {
				if conv.ID == exportID || strings.HasPrefix(conv.ID, exportID) {
					filtered = append(filtered, conv)
					break
				}
			}
			if len(filtered) == 0 {
				return fmt.Errorf("conversation not found: %s", exportID)
			}
			conversations = filtered
		}
		if len(conversations) == 0 {
			internal.PrintWarning("No conversations found, nothing to export")
			return nil
		}

		if err := os.MkdirAll(exportOut, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		exported := 0
		for i := range conversations {
			conv := &conversations[i]
			name := fmt.Sprintf("conversation_%s_%s.%s", conv.Source, shortID(conv.ID), exporter.Extension())
			path := filepath.Join(exportOut, name)

			if err := writeExport(exporter, conv, path); err != nil {
				rt.Log.Error("export failed", "conversation", conv.ID, "error", err)
				continue
			}
			exported++
		}

		internal.PrintSuccess(fmt.Sprintf("Export complete: %d conversation(s) written to %s", exported, exportOut))
		return nil
	},
}

func writeExport(exporter export.Exporter, conv *internal.Conversation, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	if err := exporter.Export(conv, file); err != nil {
		_ = file.Close()
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	return file.Close()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format (json, md, html, yaml)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "./exports", "Output directory")
	exportCmd.Flags().StringVar(&exportSource, "source", "", "Only this source (vscode, cursor, idea, pycharm)")
	exportCmd.Flags().StringVar(&exportID, "id", "", "Export a single conversation by id")
}
