package message

import (
	"encoding/json"
	"strings"
	"time"
)

// InboundMessage represents a message received from a channel.
// Exactly one of Text and Callback is expected to be meaningful: plain
// messages and commands carry Text, keyboard presses carry Callback.
type InboundMessage struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Channel   string          `json:"channel"`
	Sender    Sender          `json:"sender"`
	Chat      Chat            `json:"chat"`
	Text      string          `json:"text,omitempty"`
	Callback  *Callback       `json:"callback,omitempty"`
	ReplyToID string          `json:"reply_to_id,omitempty"`
	Raw       json.RawMessage `json:"raw,omitempty"`
}

// IsCommand reports whether the message text is a bot command ("/start").
func (m *InboundMessage) IsCommand() bool {
	return strings.HasPrefix(m.Text, "/")
}

// Command returns the command name without the leading slash or a trailing
// "@botname" suffix, lowercased. Returns "" for non-command messages.
func (m *InboundMessage) Command() string {
	if !m.IsCommand() {
		return ""
	}
	cmd := strings.TrimPrefix(m.Text, "/")
	if i := strings.IndexAny(cmd, " \n"); i >= 0 {
		cmd = cmd[:i]
	}
	if i := strings.Index(cmd, "@"); i >= 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd)
}

// CommandArgs returns the text following the command name, trimmed.
func (m *InboundMessage) CommandArgs() string {
	if !m.IsCommand() {
		return ""
	}
	if i := strings.IndexAny(m.Text, " \n"); i >= 0 {
		return strings.TrimSpace(m.Text[i+1:])
	}
	return ""
}

// IsGroup reports whether the message was sent in a group chat.
func (m *InboundMessage) IsGroup() bool {
	return m.Chat.IsGroup()
}

// IsDirectMessage reports whether the message is a direct message.
func (m *InboundMessage) IsDirectMessage() bool {
	return m.Chat.IsDirectMessage()
}
