package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sunshineyour/AI-IDE-Chat-Export-Tool/internal"
)

// JSONExporter exports a conversation as a JSON document with an export
// envelope.
type JSONExporter struct{}

type jsonDocument struct {
	ExportInfo   jsonExportInfo         `json:"export_info"`
	Conversation *internal.Conversation `json:"conversation"`
}

type jsonExportInfo struct {
	ExportedAt    string `json:"exported_at"`
	FormatVersion string `json:"format_version"`
	Source        string `json:"source"`
}

// Export writes the conversation as indented JSON.
func (e *JSONExporter) Export(conv *internal.Conversation, w io.Writer) error {
	doc := jsonDocument{
		ExportInfo: jsonExportInfo{
			ExportedAt:    time.Now().Format(time.RFC3339),
			FormatVersion: "1.0",
			Source:        conv.Source,
		},
		Conversation: conv,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
