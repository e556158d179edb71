package export

import (
	"io"

	"github.com/sunshineyour/AI-IDE-Chat-Export-Tool/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports a conversation in YAML format.
type YAMLExporter struct{}

// Export writes the conversation as a YAML document.
func (e *YAMLExporter) Export(conv *internal.Conversation, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(conv)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
