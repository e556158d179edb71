package internal

import (
	"encoding/json"
	"unicode/utf8"
)

// innerStateField is the one field the decoder is allowed to re-decode when
// it holds a JSON-encoded string. The table-backed stores wrap the chat
// state in {"webviewState": "<json>"}; nothing else is nested.
const innerStateField = "webviewState"

// UnwrapChatState peels a stored value down to the chat-state document.
//
// The value is decoded once; if the result carries a string-typed
// webviewState field, that field alone is decoded a second time and used as
// the document. A value without the indirection (the XML stores) is the
// document itself. Undecodable bytes or JSON degrade to "no data".
func UnwrapChatState(raw []byte) (json.RawMessage, bool) {
	if len(raw) == 0 || !utf8.Valid(raw) {
		return nil, false
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, false
	}

	inner, ok := top[innerStateField]
	if !ok {
		return json.RawMessage(raw), true
	}

	// The inner state is usually a JSON-encoded string; some builds store
	// it as a plain object.
	var encoded string
	if err := json.Unmarshal(inner, &encoded); err != nil {
		return inner, true
	}
	if !json.Valid([]byte(encoded)) {
		// Failed layer: keep the outer document rather than aborting.
		return json.RawMessage(raw), true
	}
	return json.RawMessage(encoded), true
}

// decodeIfString resolves a record that was stored as a JSON-encoded
// string. Non-string input and failed decodes come back unchanged.
func decodeIfString(raw json.RawMessage) json.RawMessage {
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return raw
	}
	if !json.Valid([]byte(encoded)) {
		return raw
	}
	return json.RawMessage(encoded)
}
