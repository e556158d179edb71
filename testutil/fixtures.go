package testutil

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// SampleChatState is a minimal chat-state document with one two-message
// conversation.
const SampleChatState = `{
  "conversations": {
    "conv-1": {
      "createdAtIso": "2025-06-27T10:00:00.000Z",
      "lastInteractedAtIso": "2025-06-27T10:30:00.000Z",
      "isPinned": false,
      "isShareable": true,
      "chatHistory": [
        {
          "request_id": "req-1",
          "timestamp": "2025-06-27T10:05:00.000Z",
          "request_message": "analyze this project",
          "response_text": "Here is the analysis.",
          "structured_output_nodes": [
            {"id": 1, "type": 0, "content": "Here is the analysis."}
          ]
        }
      ]
    }
  }
}`

// WrapWebviewState wraps a chat-state document the way the table-backed
// stores do: an outer JSON object whose webviewState field is the document
// JSON-encoded as a string.
func WrapWebviewState(t *testing.T, state string) string {
	t.Helper()
	outer := map[string]string{"webviewState": state}
	data, err := json.Marshal(outer)
	if err != nil {
		t.Fatalf("Failed to wrap webview state: %v", err)
	}
	return string(data)
}

// WriteProjectStateStore writes a JetBrains project directory containing
// .idea/AugmentWebviewStateStore.xml with the chat state stored under the
// CHAT_STATE entry, and returns the project path.
func WriteProjectStateStore(t *testing.T, dir, name, state string) string {
	t.Helper()
	project := filepath.Join(dir, name)
	ideaDir := filepath.Join(project, ".idea")
	if err := os.MkdirAll(ideaDir, 0o755); err != nil {
		t.Fatalf("Failed to create project dir: %v", err)
	}

	var escaped bytes.Buffer
	if err := xml.EscapeText(&escaped, []byte(state)); err != nil {
		t.Fatalf("Failed to escape state: %v", err)
	}

	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<project version="4">
  <component name="AugmentWebviewStateStore">
    <option name="stateMap">
      <map>
        <entry key="CHAT_STATE" value="%s" />
      </map>
    </option>
  </component>
</project>
`, escaped.String())

	path := filepath.Join(ideaDir, "AugmentWebviewStateStore.xml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write state store: %v", err)
	}
	return project
}

// WriteRecentProjects writes a product config directory with an
// options/recentProjects.xml listing the given project paths, and returns
// the config dir.
func WriteRecentProjects(t *testing.T, dir, product string, projects []string) string {
	t.Helper()
	configDir := filepath.Join(dir, product)
	optionsDir := filepath.Join(configDir, "options")
	if err := os.MkdirAll(optionsDir, 0o755); err != nil {
		t.Fatalf("Failed to create options dir: %v", err)
	}

	var entries bytes.Buffer
	for _, project := range projects {
		var escaped bytes.Buffer
		if err := xml.EscapeText(&escaped, []byte(project)); err != nil {
			t.Fatalf("Failed to escape project path: %v", err)
		}
		fmt.Fprintf(&entries, `        <entry key="%s" />`+"\n", escaped.String())
	}

	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<application>
  <component name="RecentProjectsManager">
    <option name="additionalInfo">
      <map>
%s      </map>
    </option>
  </component>
</application>
`, entries.String())

	path := filepath.Join(optionsDir, "recentProjects.xml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write recent projects: %v", err)
	}
	return configDir
}
