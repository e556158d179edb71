package internal

import "encoding/json"

// Wire types for the decoded chat-state document. All four host schemas
// converge on this shape once the store indirection is unwrapped.

// chatState is the top-level document: conversations keyed by id. Records
// are kept raw because one host stores each record as a JSON-encoded
// string.
type chatState struct {
	Conversations map[string]json.RawMessage `json:"conversations"`
}

// conversationRecord is one conversation's header plus its turn list.
type conversationRecord struct {
	CreatedAtIso        string            `json:"createdAtIso"`
	LastInteractedAtIso string            `json:"lastInteractedAtIso"`
	IsPinned            bool              `json:"isPinned"`
	IsShareable         bool              `json:"isShareable"`
	ChatHistory         []json.RawMessage `json:"chatHistory"`
}

// chatTurn is one exchange unit: the plain request/response pair, the
// ordered structured fragments, the request-side fragments, and the
// tool-outcome side-table keyed "requestId;toolUseId".
type chatTurn struct {
	RequestID              string                  `json:"request_id"`
	Timestamp              string                  `json:"timestamp"`
	RequestMessage         string                  `json:"request_message"`
	ResponseText           string                  `json:"response_text"`
	RichTextJSONRepr       json.RawMessage         `json:"rich_text_json_repr"`
	StructuredOutputNodes  []outputNode            `json:"structured_output_nodes"`
	StructuredRequestNodes []requestNode           `json:"structured_request_nodes"`
	WorkspaceFileChunks    []workspaceFileChunk    `json:"workspace_file_chunks"`
	ToolUseStates          map[string]toolUseState `json:"toolUseStates"`
}

// outputNode is one structured fragment of the assistant turn, tagged with
// a position id and an integer type.
type outputNode struct {
	ID      int          `json:"id"`
	Type    int          `json:"type"`
	Content flexString   `json:"content"`
	ToolUse *toolUseNode `json:"tool_use"`
}

type toolUseNode struct {
	ToolName  string `json:"tool_name"`
	ToolUseID string `json:"tool_use_id"`
	InputJSON string `json:"input_json"`
}

// requestNode is one request-side fragment; only tool-result nodes matter
// here.
type requestNode struct {
	Type           int             `json:"type"`
	ToolResultNode *toolResultNode `json:"tool_result_node"`
}

type toolResultNode struct {
	Content flexString `json:"content"`
}

type workspaceFileChunk struct {
	File struct {
		PathName string `json:"pathName"`
	} `json:"file"`
}

type toolUseState struct {
	Result struct {
		Text    string `json:"text"`
		IsError bool   `json:"isError"`
	} `json:"result"`
}

// Fragment type tags as stored. Presence of a tag is never trusted
// implicitly: unrecognized tags fall back to plain-text treatment.
const (
	outputTagText        = 0
	outputTagToolUse     = 5
	requestTagToolResult = 1
)

// nodeKind is the closed enumeration the integer tags decode to.
type nodeKind int

const (
	nodeKindText nodeKind = iota
	nodeKindToolUse
	nodeKindOther
)

func outputNodeKind(tag int) nodeKind {
	switch tag {
	case outputTagText:
		return nodeKindText
	case outputTagToolUse:
		return nodeKindToolUse
	default:
		return nodeKindOther
	}
}

// flexString tolerates fragment content that is not a JSON string: any
// other JSON value is kept as its raw text instead of failing the record.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	*f = flexString(data)
	return nil
}

func (f flexString) String() string {
	return string(f)
}
