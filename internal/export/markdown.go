package export

import (
	"fmt"
	"io"

	"github.com/sunshineyour/AI-IDE-Chat-Export-Tool/internal"
)

const timeLayout = "2006-01-02 15:04:05"

// MarkdownExporter exports a conversation as a Markdown document.
type MarkdownExporter struct{}

// Export writes the conversation with a metadata header and one section
// per message.
func (e *MarkdownExporter) Export(conv *internal.Conversation, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Conversation %s\n\n", shortID(conv.ID))

	_, _ = fmt.Fprintf(w, "- **ID**: `%s`\n", conv.ID)
	_, _ = fmt.Fprintf(w, "- **Source**: %s\n", conv.Source)
	if conv.WorkspaceID != "" {
		_, _ = fmt.Fprintf(w, "- **Container**: %s\n", conv.WorkspaceID)
	}
	_, _ = fmt.Fprintf(w, "- **Created**: %s\n", conv.CreatedAt.Format(timeLayout))
	_, _ = fmt.Fprintf(w, "- **Last interaction**: %s\n", conv.LastInteractedAt.Format(timeLayout))
	_, _ = fmt.Fprintf(w, "- **Messages**: %d\n", len(conv.Messages))
	if conv.IsPinned {
		_, _ = fmt.Fprintf(w, "- **Pinned**: yes\n")
	}
	_, _ = fmt.Fprintf(w, "\n---\n\n")

	for i, msg := range conv.Messages {
		label := "Assistant"
		if msg.Role == internal.RoleUser {
			label = "User"
		}
		_, _ = fmt.Fprintf(w, "## %s — %s\n\n", label, msg.Timestamp.Format(timeLayout))
		_, _ = fmt.Fprintf(w, "%s\n\n", msg.Content)

		if len(msg.WorkspaceFiles) > 0 {
			_, _ = fmt.Fprintf(w, "**Referenced files:**\n\n")
			for _, f := range msg.WorkspaceFiles {
				_, _ = fmt.Fprintf(w, "- `%s`\n", f)
			}
			_, _ = fmt.Fprintf(w, "\n")
		}

		if len(msg.ToolUses) > 0 {
			_, _ = fmt.Fprintf(w, "**Tool uses:**\n\n")
			for _, tool := range msg.ToolUses {
				_, _ = fmt.Fprintf(w, "- **%s**", tool.ToolName)
				if tool.IsError {
					_, _ = fmt.Fprintf(w, " (error)")
				}
				_, _ = fmt.Fprintf(w, "\n")
				if tool.Result != "" {
					_, _ = fmt.Fprintf(w, "  - result: %s\n", truncate(tool.Result, 100))
				}
			}
			_, _ = fmt.Fprintf(w, "\n")
		}

		if i < len(conv.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
