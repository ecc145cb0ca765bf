// Package message defines the platform-agnostic data contract between
// channels and the translator engine. It covers plain text, bot commands,
// inline-keyboard callbacks, and outbound replies.
package message

// ChatType indicates the kind of conversation.
type ChatType string

const (
	// ChatDM is a direct (one-to-one) conversation.
	ChatDM ChatType = "dm"
	// ChatGroup is a multi-participant group conversation.
	ChatGroup ChatType = "group"
	// ChatBroadcast is a one-to-many broadcast channel.
	ChatBroadcast ChatType = "broadcast"
)

// Sender identifies the author of an inbound message.
type Sender struct {
	ID          string `json:"id"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// Chat identifies the conversation a message belongs to.
type Chat struct {
	ID    string   `json:"id"`
	Type  ChatType `json:"type"`
	Title string   `json:"title,omitempty"`
}

// IsGroup reports whether the chat is a group conversation.
func (c Chat) IsGroup() bool {
	return c.Type == ChatGroup
}

// IsDirectMessage reports whether the chat is a direct message.
func (c Chat) IsDirectMessage() bool {
	return c.Type == ChatDM
}

// Keyboard is a platform-agnostic inline keyboard: rows of buttons that
// deliver their Data payload back as a Callback when pressed.
type Keyboard struct {
	Rows [][]Button `json:"rows"`
}

// Button is a single inline-keyboard button.
type Button struct {
	Label string `json:"label"`
	Data  string `json:"data"`
}

// Callback carries the payload of a pressed inline-keyboard button.
type Callback struct {
	// ID identifies the callback for acknowledgement on the platform.
	ID string `json:"id"`
	// Data is the payload the button was created with (e.g. "setlang|fr").
	Data string `json:"data"`
	// MessageID is the message carrying the keyboard; used to edit the
	// menu in place after the selection is applied.
	MessageID string `json:"message_id,omitempty"`
}
