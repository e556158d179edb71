package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sunshineyour/AI-IDE-Chat-Export-Tool/internal"
	"gopkg.in/yaml.v3"
)

func sampleConversation() *internal.Conversation {
	return &internal.Conversation{
		ID:               "abcdef1234567890",
		Source:           "vscode",
		WorkspaceID:      "ws-1",
		CreatedAt:        time.Date(2025, 6, 27, 10, 0, 0, 0, time.UTC),
		LastInteractedAt: time.Date(2025, 6, 27, 10, 30, 0, 0, time.UTC),
		IsPinned:         true,
		Messages: []internal.Message{
			{
				Role:           internal.RoleUser,
				Content:        "analyze this project",
				Timestamp:      time.Date(2025, 6, 27, 10, 5, 0, 0, time.UTC),
				WorkspaceFiles: []string{"src/main.go"},
			},
			{
				Role:      internal.RoleAssistant,
				Content:   "Here is the analysis with <script>alert(1)</script> inline.",
				Timestamp: time.Date(2025, 6, 27, 10, 6, 0, 0, time.UTC),
				ToolUses: []internal.ToolUse{
					{ToolName: "read-file", ToolUseID: "t1", InputJSON: "{}", Result: "ok"},
				},
			},
		},
	}
}

func TestNewExporter(t *testing.T) {
	tests := []struct {
		format  string
		ext     string
		wantErr bool
	}{
		{format: "json", ext: "json"},
		{format: "md", ext: "md"},
		{format: "markdown", ext: "md"},
		{format: "html", ext: "html"},
		{format: "yaml", ext: "yaml"},
		{format: "pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			exporter, err := NewExporter(tt.format)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewExporter failed: %v", err)
			}
			if exporter.Extension() != tt.ext {
				t.Errorf("extension = %q, want %q", exporter.Extension(), tt.ext)
			}
		})
	}
}

func TestJSONExport(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(sampleConversation(), &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var doc struct {
		ExportInfo struct {
			FormatVersion string `json:"format_version"`
			Source        string `json:"source"`
		} `json:"export_info"`
		Conversation struct {
			ID           string `json:"id"`
			CreatedAt    int64  `json:"created_at"`
			MessageCount int    `json:"message_count"`
		} `json:"conversation"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.ExportInfo.FormatVersion != "1.0" || doc.ExportInfo.Source != "vscode" {
		t.Errorf("export info = %+v", doc.ExportInfo)
	}
	if doc.Conversation.ID != "abcdef1234567890" || doc.Conversation.MessageCount != 2 {
		t.Errorf("conversation envelope = %+v", doc.Conversation)
	}
	if doc.Conversation.CreatedAt != sampleConversation().CreatedAt.Unix() {
		t.Errorf("created_at = %d, want epoch seconds", doc.Conversation.CreatedAt)
	}
}

func TestMarkdownExport(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(sampleConversation(), &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Conversation abcdef12",
		"- **Source**: vscode",
		"- **Pinned**: yes",
		"## User — 2025-06-27 10:05:00",
		"analyze this project",
		"## Assistant — 2025-06-27 10:06:00",
		"**Referenced files:**",
		"- `src/main.go`",
		"**Tool uses:**",
		"- **read-file**",
		"  - result: ok",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestHTMLExportEscapesContent(t *testing.T) {
	var buf bytes.Buffer
	if err := (&HTMLExporter{}).Export(sampleConversation(), &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "<script>alert(1)</script>") {
		t.Error("message content reached the page unescaped")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Error("escaped content not found in the page")
	}
	if !strings.Contains(out, `class="message user"`) || !strings.Contains(out, `class="message assistant"`) {
		t.Error("role classes missing")
	}
}

func TestHTMLExportNoMessages(t *testing.T) {
	conv := sampleConversation()
	conv.Messages = nil

	var buf bytes.Buffer
	if err := (&HTMLExporter{}).Export(conv, &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No messages found") {
		t.Error("empty conversation placeholder missing")
	}
}

func TestYAMLExport(t *testing.T) {
	var buf bytes.Buffer
	if err := (&YAMLExporter{}).Export(sampleConversation(), &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var decoded struct {
		ID       string `yaml:"id"`
		Source   string `yaml:"source"`
		Messages []struct {
			Role    string `yaml:"role"`
			Content string `yaml:"content"`
		} `yaml:"messages"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.ID != "abcdef1234567890" || decoded.Source != "vscode" {
		t.Errorf("decoded = %+v", decoded)
	}
	if len(decoded.Messages) != 2 || decoded.Messages[0].Role != "user" {
		t.Errorf("messages = %+v", decoded.Messages)
	}
}
