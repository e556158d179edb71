package internal

import (
	"encoding/json"
	"time"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ToolUse records one tool invocation made by the assistant and, when the
// outcome side-table had a matching entry, its result.
type ToolUse struct {
	ToolName  string `json:"tool_name" yaml:"tool_name"`
	ToolUseID string `json:"tool_use_id" yaml:"tool_use_id"`
	InputJSON string `json:"input_json" yaml:"input_json"`
	Result    string `json:"result,omitempty" yaml:"result,omitempty"`
	IsError   bool   `json:"is_error" yaml:"is_error"`
}

// Message is one normalized message. Content is non-empty by construction:
// the merger never emits a message whose trimmed content is empty.
type Message struct {
	Role           Role            `yaml:"role"`
	Content        string          `yaml:"content"`
	Timestamp      time.Time       `yaml:"timestamp"`
	RequestID      string          `yaml:"request_id,omitempty"`
	ToolUses       []ToolUse       `yaml:"tool_uses,omitempty"`
	WorkspaceFiles []string        `yaml:"workspace_files,omitempty"`
	RichText       json.RawMessage `yaml:"-"`
}

// Conversation is the canonical conversation all host schemas converge on.
// It is rebuilt from the stores on every extraction and never mutated.
type Conversation struct {
	ID               string    `yaml:"id"`
	Source           string    `yaml:"source"`
	WorkspaceID      string    `yaml:"workspace_id,omitempty"`
	CreatedAt        time.Time `yaml:"created_at"`
	LastInteractedAt time.Time `yaml:"last_interacted_at"`
	Messages         []Message `yaml:"messages"`
	IsPinned         bool      `yaml:"is_pinned"`
	IsShareable      bool      `yaml:"is_shareable"`
}

// MarshalJSON renders timestamps as numeric epoch seconds, the shape the
// presentation layer consumes.
func (m Message) MarshalJSON() ([]byte, error) {
	type alias struct {
		Role           Role            `json:"role"`
		Content        string          `json:"content"`
		Timestamp      int64           `json:"timestamp"`
		RequestID      string          `json:"request_id,omitempty"`
		ToolUses       []ToolUse       `json:"tool_uses,omitempty"`
		WorkspaceFiles []string        `json:"workspace_files,omitempty"`
		RichText       json.RawMessage `json:"rich_text,omitempty"`
	}
	return json.Marshal(alias{
		Role:           m.Role,
		Content:        m.Content,
		Timestamp:      m.Timestamp.Unix(),
		RequestID:      m.RequestID,
		ToolUses:       m.ToolUses,
		WorkspaceFiles: m.WorkspaceFiles,
		RichText:       m.RichText,
	})
}

// MarshalJSON renders timestamps as numeric epoch seconds.
func (c Conversation) MarshalJSON() ([]byte, error) {
	type alias struct {
		ID               string    `json:"id"`
		Source           string    `json:"source"`
		WorkspaceID      string    `json:"workspace_id,omitempty"`
		CreatedAt        int64     `json:"created_at"`
		LastInteractedAt int64     `json:"last_interacted_at"`
		MessageCount     int       `json:"message_count"`
		Messages         []Message `json:"messages"`
		IsPinned         bool      `json:"is_pinned"`
		IsShareable      bool      `json:"is_shareable"`
	}
	return json.Marshal(alias{
		ID:               c.ID,
		Source:           c.Source,
		WorkspaceID:      c.WorkspaceID,
		CreatedAt:        c.CreatedAt.Unix(),
		LastInteractedAt: c.LastInteractedAt.Unix(),
		MessageCount:     len(c.Messages),
		Messages:         c.Messages,
		IsPinned:         c.IsPinned,
		IsShareable:      c.IsShareable,
	})
}
