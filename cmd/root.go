package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/sunshineyour/AI-IDE-Chat-Export-Tool/internal"
)

var (
	verbose    bool
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aichat-export",
	Short: "Extract and export AI assistant chat history from IDE stores",
	Long: `A CLI tool that recovers AI assistant chat history from the embedded
stores of four desktop applications — VS Code, Cursor, IntelliJ IDEA and
PyCharm — and exports it in various formats (JSON, Markdown, HTML, YAML).

Every extraction is a full, read-only re-read of the host stores; nothing
is written back and nothing is cached between runs.

Quick Start:
  aichat-export list                     # List conversations across all hosts
  aichat-export show <conversation-id>   # View one conversation
  aichat-export export --format md       # Export everything as Markdown
  aichat-export sources                  # Show detected store containers`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", internal.DefaultSettingsPath(), "Path to the settings file")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	// Register the default --help/--version flags up front so Find's flag
	// stripping knows they take no value when other flags follow them.
	rootCmd.InitDefaultHelpFlag()
	rootCmd.InitDefaultVersionFlag()
}

// newExtractor builds the run-scoped runtime, settings and extractor shared
// by the data-reading commands.
func newExtractor() (*internal.Runtime, *internal.Extractor) {
	rt := internal.NewRuntime(verbose)
	settings := internal.LoadSettings(configPath)
	return rt, internal.NewExtractor(rt, settings)
}

// extractFrom extracts from one named source, or every source when name is
// empty.
func extractFrom(extractor *internal.Extractor, name string) ([]internal.Conversation, error) {
	if name == "" {
		return extractor.ExtractAll(), nil
	}
	spec, ok := internal.HostByID(name)
	if !ok {
		return nil, fmt.Errorf("unknown source: %s (supported: vscode, cursor, idea, pycharm)", name)
	}
	return extractor.ExtractHost(spec), nil
}
