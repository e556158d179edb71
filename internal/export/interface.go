package export

import (
	"fmt"
	"io"

	"github.com/sunshineyour/AI-IDE-Chat-Export-Tool/internal"
)

// Exporter renders one canonical conversation. Exporters perform no
// normalization: the model arrives final.
type Exporter interface {
	Export(conv *internal.Conversation, w io.Writer) error
	Extension() string
}

// NewExporter creates an exporter for a format name.
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "json":
		return &JSONExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "html":
		return &HTMLExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, md, html, yaml)", format)
	}
}
