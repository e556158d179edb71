package internal

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Assembler turns a decoded chat-state document into canonical
// conversations. One assembler serves all four host schemas: the variants
// differ only in store indirection, which the decoder has already removed,
// and in records that are themselves JSON-encoded strings, which are
// detected by value type rather than host identity.
type Assembler struct {
	log    *log.Logger
	merger *Merger
	now    func() time.Time
}

// NewAssembler creates an Assembler scoped to one extraction run.
func NewAssembler(rt *Runtime) *Assembler {
	return &Assembler{
		log:    rt.Log,
		merger: NewMerger(rt),
		now:    time.Now,
	}
}

// AssembleConversations parses every conversation record in the chat-state
// document. One malformed record never stops its siblings: it is logged and
// skipped. Conversations are retained only when merging left at least one
// message, and are returned ordered by last interaction, newest first.
func (a *Assembler) AssembleConversations(state json.RawMessage, container, source string) []Conversation {
	var doc chatState
	if err := json.Unmarshal(state, &doc); err != nil {
		a.log.Warn("chat state is not a conversations document",
			"container", container, "error", err)
		return nil
	}

	conversations := make([]Conversation, 0, len(doc.Conversations))
	for id, raw := range doc.Conversations {
		conv, err := a.assembleOne(id, raw, container, source)
		if err != nil {
			a.log.Warn("skipping malformed conversation record",
				"container", container, "record", id, "error", err)
			continue
		}
		if len(conv.Messages) == 0 {
			a.log.Debug("rejecting conversation with no messages",
				"container", container, "record", id)
			continue
		}
		conversations = append(conversations, conv)
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].LastInteractedAt.After(conversations[j].LastInteractedAt)
	})
	return conversations
}

func (a *Assembler) assembleOne(id string, raw json.RawMessage, container, source string) (Conversation, error) {
	// One host schema stores the record as a JSON-encoded string.
	raw = decodeIfString(raw)

	var record conversationRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return Conversation{}, &RecordError{Container: container, RecordID: id, Err: err}
	}

	conv := Conversation{
		ID:               id,
		Source:           source,
		WorkspaceID:      container,
		CreatedAt:        a.parseTimestamp(record.CreatedAtIso),
		LastInteractedAt: a.parseTimestamp(record.LastInteractedAtIso),
		IsPinned:         record.IsPinned,
		IsShareable:      record.IsShareable,
	}

	// Stored order is emission order.
	for i, rawTurn := range record.ChatHistory {
		rawTurn = decodeIfString(rawTurn)

		var turn chatTurn
		if err := json.Unmarshal(rawTurn, &turn); err != nil {
			a.log.Warn("skipping malformed turn",
				"container", container, "record", id, "turn", i, "error", err)
			continue
		}

		ts := a.parseTimestamp(turn.Timestamp)
		user, assistant := a.merger.MergeTurn(&turn, ts)
		if user != nil {
			conv.Messages = append(conv.Messages, *user)
		}
		if assistant != nil {
			conv.Messages = append(conv.Messages, *assistant)
		}
	}

	return conv, nil
}

// parseTimestamp parses an ISO-8601 timestamp, normalizing a trailing "Z"
// to an explicit UTC offset first. Missing or unparsable values fall back
// to the current time: a deliberate lossy default, not a failure.
func (a *Assembler) parseTimestamp(value string) time.Time {
	if value == "" {
		return a.now()
	}
	if strings.HasSuffix(value, "Z") {
		value = strings.TrimSuffix(value, "Z") + "+00:00"
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		a.log.Debug("unparsable timestamp", "value", value)
		return a.now()
	}
	return t
}
