package internal

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	renderDiagramTool  = "render-mermaid"
	diagramPayloadType = "mermaid_diagram"
)

// diagramPayload is a JSON-described diagram embedded in fragment text or
// tool input.
type diagramPayload struct {
	Type              string `json:"type"`
	DiagramDefinition string `json:"diagram_definition"`
	Title             string `json:"title"`
}

// Merger reconciles one raw chat turn's three overlapping channels (plain
// response text, ordered structured fragments, tool-result side fragments)
// into final user and assistant messages.
type Merger struct {
	log *log.Logger
}

// NewMerger creates a Merger scoped to one extraction run.
func NewMerger(rt *Runtime) *Merger {
	return &Merger{log: rt.Log}
}

// MergeTurn produces the turn's user and assistant messages. Either may be
// nil: a message is emitted only when its trimmed content is non-empty.
func (m *Merger) MergeTurn(turn *chatTurn, ts time.Time) (user, assistant *Message) {
	if text := strings.TrimSpace(turn.RequestMessage); text != "" {
		user = &Message{
			Role:           RoleUser,
			Content:        text,
			Timestamp:      ts,
			RequestID:      turn.RequestID,
			WorkspaceFiles: workspaceFiles(turn),
			RichText:       turn.RichTextJSONRepr,
		}
	}

	structured := m.assembleStructuredContent(turn)
	content := MergeChannels(turn.ResponseText, structured)
	if content != "" {
		assistant = &Message{
			Role:      RoleAssistant,
			Content:   content,
			Timestamp: ts,
			RequestID: turn.RequestID,
			ToolUses:  extractToolUses(turn),
		}
	}

	return user, assistant
}

// assembleStructuredContent walks the structured fragments in position-id
// order and builds the structured side of the assistant content. Fragments
// may arrive in any order; the id decides display order.
func (m *Merger) assembleStructuredContent(turn *chatTurn) string {
	nodes := make([]outputNode, len(turn.StructuredOutputNodes))
	copy(nodes, turn.StructuredOutputNodes)
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	var parts []string
	for _, node := range nodes {
		switch outputNodeKind(node.Type) {
		case nodeKindToolUse:
			// Tool invocations stay out of the transcript, except the
			// diagram renderer whose input is the diagram itself.
			if node.ToolUse == nil || node.ToolUse.ToolName != renderDiagramTool {
				continue
			}
			if block, ok := renderDiagramInput(node.ToolUse.InputJSON); ok {
				parts = append(parts, block)
			} else {
				m.log.Debug("undecodable render-mermaid input", "request_id", turn.RequestID)
			}
		default:
			// Text fragments and unrecognized tags both pass through the
			// diagram check before falling back to plain text.
			content := strings.TrimSpace(node.Content.String())
			if content == "" {
				continue
			}
			if block, ok := renderDiagramJSON(content); ok {
				parts = append(parts, block)
				continue
			}
			parts = append(parts, content)
		}
	}

	// Request-side tool results: only diagram payloads are injected. Raw
	// tool output would flood the transcript.
	for _, rn := range turn.StructuredRequestNodes {
		if rn.Type != requestTagToolResult || rn.ToolResultNode == nil {
			continue
		}
		if block, ok := renderDiagramJSON(strings.TrimSpace(rn.ToolResultNode.Content.String())); ok {
			parts = append(parts, block)
		}
	}

	return strings.Join(parts, "\n\n")
}

// MergeChannels combines the plain response text with the structured
// content string. If either side is empty the other wins; full substring
// containment in either direction drops the contained side. Partial
// overlaps concatenate both — a known limitation, kept to match the stored
// data's behavior.
func MergeChannels(plain, structured string) string {
	plain = strings.TrimSpace(plain)
	structured = strings.TrimSpace(structured)

	if plain == "" {
		return structured
	}
	if structured == "" {
		return plain
	}
	if strings.Contains(structured, plain) {
		return structured
	}
	if strings.Contains(plain, structured) {
		return plain
	}
	return plain + "\n\n" + structured
}

// extractToolUses collects every tool-invocation fragment and correlates it
// with the turn's outcome side-table via "requestId;toolUseId". A missing
// entry leaves the result empty; it is not an error.
func extractToolUses(turn *chatTurn) []ToolUse {
	var uses []ToolUse
	for _, node := range turn.StructuredOutputNodes {
		if outputNodeKind(node.Type) != nodeKindToolUse || node.ToolUse == nil {
			continue
		}
		use := ToolUse{
			ToolName:  node.ToolUse.ToolName,
			ToolUseID: node.ToolUse.ToolUseID,
			InputJSON: node.ToolUse.InputJSON,
		}
		key := turn.RequestID + ";" + use.ToolUseID
		if state, ok := turn.ToolUseStates[key]; ok {
			use.Result = state.Result.Text
			use.IsError = state.Result.IsError
		}
		uses = append(uses, use)
	}
	return uses
}

func workspaceFiles(turn *chatTurn) []string {
	var files []string
	for _, chunk := range turn.WorkspaceFileChunks {
		if chunk.File.PathName != "" {
			files = append(files, chunk.File.PathName)
		}
	}
	return files
}

// renderDiagramJSON detects a JSON-described diagram payload in fragment
// text and renders it as a titled fenced block.
func renderDiagramJSON(s string) (string, bool) {
	if !strings.HasPrefix(s, "{") {
		return "", false
	}
	var payload diagramPayload
	if err := json.Unmarshal([]byte(s), &payload); err != nil {
		return "", false
	}
	if payload.Type != diagramPayloadType {
		return "", false
	}
	return renderDiagram(payload)
}

// renderDiagramInput renders the render-mermaid tool's structured input.
// Tool input carries no type tag; the definition field is the signal.
func renderDiagramInput(inputJSON string) (string, bool) {
	var payload diagramPayload
	if err := json.Unmarshal([]byte(inputJSON), &payload); err != nil {
		return "", false
	}
	return renderDiagram(payload)
}

func renderDiagram(payload diagramPayload) (string, bool) {
	if payload.DiagramDefinition == "" {
		return "", false
	}
	block := "```mermaid\n" + payload.DiagramDefinition + "\n```"
	if payload.Title != "" {
		return "**" + payload.Title + "**\n\n" + block, true
	}
	return block, true
}
