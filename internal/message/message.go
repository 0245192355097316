// Package message defines the wlclip IPC protocol spoken between the CLI
// tools and a running daemon.
//
// All messages are newline-delimited JSON. Payloads are always base64-encoded
// so that binary content (images, etc.) is safe to embed in JSON strings.
// Each message is exactly one line: <json>\n
package message

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Type identifies the kind of message.
type Type string

const (
	// TypeClipboard carries clipboard contents: CLI → daemon to set the
	// selection, daemon → watcher on every change.
	TypeClipboard Type = "CLIPBOARD"
	// TypePaste asks the daemon for the current contents.
	TypePaste         Type = "PASTE"
	TypePasteResponse Type = "PASTE_RESPONSE"
	// TypeTargets asks for the MIME types the current selection offers.
	TypeTargets         Type = "TARGETS"
	TypeTargetsResponse Type = "TARGETS_RESPONSE"
	// TypeWatch subscribes the connection to clipboard updates.
	TypeWatch Type = "WATCH"
	// TypeAuth authenticates a connection when the daemon requires a token.
	TypeAuth           Type = "AUTH"
	TypeStatus         Type = "STATUS"
	TypeStatusResponse Type = "STATUS_RESPONSE"
	TypeError          Type = "ERROR"
)

// Item is a single clipboard representation with a MIME type.
// Data is always base64-encoded.
type Item struct {
	MIME string `json:"mime"`
	Data string `json:"data"` // base64-encoded
}

// NewTextItem creates a text/plain Item from a plain string.
func NewTextItem(text string) Item {
	return Item{
		MIME: "text/plain",
		Data: base64.StdEncoding.EncodeToString([]byte(text)),
	}
}

// NewBinaryItem creates an Item from raw bytes with the given MIME type.
func NewBinaryItem(mime string, data []byte) Item {
	return Item{
		MIME: mime,
		Data: base64.StdEncoding.EncodeToString(data),
	}
}

// Decode returns the raw bytes of the item payload.
func (it Item) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(it.Data)
}

// Status carries daemon state in STATUS_RESPONSE messages.
type Status struct {
	Backend  string   `json:"backend"`
	Watchers int      `json:"watchers"`
	Targets  []string `json:"targets,omitempty"`
	Source   string   `json:"source,omitempty"`
}

// Message is the top-level wire envelope.
type Message struct {
	// Always present
	Type   Type   `json:"type"`
	Source string `json:"source,omitempty"`

	// CLIPBOARD, PASTE_RESPONSE — one item per MIME type
	Items []Item `json:"items,omitempty"`

	// PASTE — preferred MIME types; empty means all
	Accept []string `json:"accept,omitempty"`

	// AUTH — token is base64-encoded
	Payload string `json:"payload,omitempty"`

	// TARGETS_RESPONSE
	Targets []string `json:"targets,omitempty"`

	// STATUS_RESPONSE
	Status *Status `json:"status,omitempty"`

	// ERROR
	Error string `json:"error,omitempty"`
}

// Encode serialises the message to JSON without a trailing newline.
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode deserialises a message from raw JSON bytes.
func Decode(b []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("message decode: %w", err)
	}
	return &m, nil
}

// TextPayload returns the decoded content of the first text/plain item, or "".
func (m *Message) TextPayload() string {
	for _, it := range m.Items {
		if it.MIME == "text/plain" {
			b, err := it.Decode()
			if err != nil {
				return ""
			}
			return string(b)
		}
	}
	return ""
}

// FilterItems returns only the items whose MIME type appears in accepted.
// If accepted is empty all items are returned unchanged.
func FilterItems(items []Item, accepted []string) []Item {
	if len(accepted) == 0 {
		return items
	}
	set := make(map[string]struct{}, len(accepted))
	for _, a := range accepted {
		set[a] = struct{}{}
	}
	var out []Item
	for _, it := range items {
		if _, ok := set[it.MIME]; ok {
			out = append(out, it)
		}
	}
	return out
}
