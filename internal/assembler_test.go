package internal

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"
)

func turnJSON(id, request, response string) string {
	return fmt.Sprintf(`{
		"request_id": %q,
		"timestamp": "2025-06-27T10:05:00.000Z",
		"request_message": %q,
		"response_text": %q
	}`, id, request, response)
}

func TestAssembleConversationsRecordIsolation(t *testing.T) {
	state := fmt.Sprintf(`{"conversations": {
		"good-1": {"lastInteractedAtIso": "2025-06-27T10:00:00.000Z", "chatHistory": [%s]},
		"broken": {"chatHistory": "not an array"},
		"good-2": {"lastInteractedAtIso": "2025-06-28T10:00:00.000Z", "chatHistory": [%s]}
	}}`, turnJSON("r1", "hello", "hi"), turnJSON("r2", "again", "yes"))

	asm := NewAssembler(testRuntime())
	conversations := asm.AssembleConversations(json.RawMessage(state), "ws-1", "vscode")
	if len(conversations) != 2 {
		t.Fatalf("got %d conversations, want 2 despite one malformed record", len(conversations))
	}
	// Newest interaction first.
	if conversations[0].ID != "good-2" || conversations[1].ID != "good-1" {
		t.Errorf("order = [%s, %s], want newest first", conversations[0].ID, conversations[1].ID)
	}
}

func TestAssembleConversationsRejectsEmpty(t *testing.T) {
	state := `{"conversations": {
		"no-history": {"createdAtIso": "2025-06-27T10:00:00.000Z", "chatHistory": []},
		"blank-turns": {"chatHistory": [{"request_id": "r1", "request_message": "", "response_text": "  "}]}
	}}`

	asm := NewAssembler(testRuntime())
	if got := asm.AssembleConversations(json.RawMessage(state), "ws-1", "vscode"); len(got) != 0 {
		t.Errorf("got %d conversations, want messageless conversations dropped", len(got))
	}
}

func TestAssembleConversationsNotADocument(t *testing.T) {
	asm := NewAssembler(testRuntime())
	if got := asm.AssembleConversations(json.RawMessage(`[1,2]`), "ws-1", "vscode"); got != nil {
		t.Errorf("got %v, want nil for a non-document value", got)
	}
}

func TestAssembleOneMessageOrdering(t *testing.T) {
	state := fmt.Sprintf(`{"conversations": {"c1": {
		"lastInteractedAtIso": "2025-06-27T11:00:00.000Z",
		"chatHistory": [%s, %s]
	}}}`, turnJSON("r1", "first question", "first answer"),
		turnJSON("r2", "second question", "second answer"))

	asm := NewAssembler(testRuntime())
	conversations := asm.AssembleConversations(json.RawMessage(state), "ws-1", "cursor")
	if len(conversations) != 1 {
		t.Fatalf("got %d conversations, want 1", len(conversations))
	}

	msgs := conversations[0].Messages
	wantContent := []string{"first question", "first answer", "second question", "second answer"}
	wantRole := []Role{RoleUser, RoleAssistant, RoleUser, RoleAssistant}
	if len(msgs) != len(wantContent) {
		t.Fatalf("got %d messages, want %d", len(msgs), len(wantContent))
	}
	for i := range msgs {
		if msgs[i].Content != wantContent[i] || msgs[i].Role != wantRole[i] {
			t.Errorf("message %d = %s %q, want %s %q",
				i, msgs[i].Role, msgs[i].Content, wantRole[i], wantContent[i])
		}
	}
}

func TestAssembleStringEncodedRecords(t *testing.T) {
	record := fmt.Sprintf(`{"lastInteractedAtIso": "2025-06-27T10:00:00.000Z", "chatHistory": [%s]}`,
		turnJSON("r1", "ping", "pong"))
	encoded, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("Failed to encode record: %v", err)
	}
	state := fmt.Sprintf(`{"conversations": {"c1": %s}}`, encoded)

	asm := NewAssembler(testRuntime())
	conversations := asm.AssembleConversations(json.RawMessage(state), "project-a", "idea")
	if len(conversations) != 1 {
		t.Fatalf("got %d conversations, want string-encoded record decoded", len(conversations))
	}
	if len(conversations[0].Messages) != 2 {
		t.Errorf("got %d messages, want 2", len(conversations[0].Messages))
	}
}

func TestAssembleConversationMetadata(t *testing.T) {
	state := fmt.Sprintf(`{"conversations": {"c1": {
		"createdAtIso": "2025-06-27T10:00:00.000Z",
		"lastInteractedAtIso": "2025-06-27T10:30:00.000Z",
		"isPinned": true,
		"chatHistory": [%s]
	}}}`, turnJSON("r1", "hello", "hi"))

	asm := NewAssembler(testRuntime())
	conversations := asm.AssembleConversations(json.RawMessage(state), "ws-9", "pycharm")
	if len(conversations) != 1 {
		t.Fatalf("got %d conversations, want 1", len(conversations))
	}

	conv := conversations[0]
	if conv.Source != "pycharm" || conv.WorkspaceID != "ws-9" {
		t.Errorf("source/workspace = %s/%s", conv.Source, conv.WorkspaceID)
	}
	if !conv.IsPinned {
		t.Error("isPinned not carried over")
	}
	if conv.IsShareable {
		t.Error("isShareable must default to false when absent")
	}
	wantCreated := time.Date(2025, 6, 27, 10, 0, 0, 0, time.UTC)
	if !conv.CreatedAt.Equal(wantCreated) {
		t.Errorf("createdAt = %v, want %v", conv.CreatedAt, wantCreated)
	}
}

func TestParseTimestamp(t *testing.T) {
	fixed := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	asm := NewAssembler(testRuntime())
	asm.now = func() time.Time { return fixed }

	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"zulu suffix", "2025-06-27T10:00:00.000Z", time.Date(2025, 6, 27, 10, 0, 0, 0, time.UTC)},
		{"explicit offset", "2025-06-27T12:00:00+02:00", time.Date(2025, 6, 27, 10, 0, 0, 0, time.UTC)},
		{"empty falls back to now", "", fixed},
		{"garbage falls back to now", "yesterday", fixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := asm.parseTimestamp(tt.value); !got.Equal(tt.want) {
				t.Errorf("parseTimestamp(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
