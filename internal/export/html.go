package export

import (
	"html/template"
	"io"

	"github.com/sunshineyour/AI-IDE-Chat-Export-Tool/internal"
)

// HTMLExporter exports a conversation as a single self-contained HTML page.
type HTMLExporter struct{}

var htmlPage = template.Must(template.New("conversation").Funcs(template.FuncMap{
	"fmtTime": func(t interface{ Format(string) string }) string {
		return t.Format("2006-01-02 15:04:05")
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Conversation {{.ID}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 900px; margin: 2rem auto; padding: 0 1rem; color: #1f2328; }
header { border-bottom: 1px solid #d0d7de; padding-bottom: 1rem; margin-bottom: 1.5rem; }
header p { color: #57606a; margin: 0.25rem 0; }
.message { border: 1px solid #d0d7de; border-radius: 8px; margin-bottom: 1rem; overflow: hidden; }
.message .meta { padding: 0.5rem 1rem; font-weight: 600; font-size: 0.85rem; }
.message.user .meta { background: #ddf4ff; }
.message.assistant .meta { background: #f6f8fa; }
.message .content { padding: 1rem; white-space: pre-wrap; word-break: break-word; }
.files, .tools { padding: 0 1rem 1rem; font-size: 0.85rem; color: #57606a; }
</style>
</head>
<body>
<header>
<h1>Conversation {{.ID}}</h1>
<p>Source: {{.Source}}{{if .WorkspaceID}} · Container: {{.WorkspaceID}}{{end}}</p>
<p>Created {{fmtTime .CreatedAt}} · Last interaction {{fmtTime .LastInteractedAt}} · {{len .Messages}} messages</p>
</header>
{{range .Messages}}<div class="message {{.Role}}">
<div class="meta">{{.Role}} · {{fmtTime .Timestamp}}</div>
<div class="content">{{.Content}}</div>
{{if .WorkspaceFiles}}<div class="files">Files: {{range .WorkspaceFiles}}<code>{{.}}</code> {{end}}</div>{{end}}
{{if .ToolUses}}<div class="tools">Tools: {{range .ToolUses}}{{.ToolName}} {{end}}</div>{{end}}
</div>
{{else}}<p>No messages found in this conversation.</p>
{{end}}</body>
</html>
`))

// Export writes the standalone page. Content is escaped by the template.
func (e *HTMLExporter) Export(conv *internal.Conversation, w io.Writer) error {
	return htmlPage.Execute(w, conv)
}

// Extension returns the file extension for this format
func (e *HTMLExporter) Extension() string {
	return "html"
}
