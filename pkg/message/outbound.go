package message

// OutboundMessage represents a message to be sent through a channel.
// When EditMessageID is set, channels that support it replace the text of
// that message instead of sending a new one.
type OutboundMessage struct {
	Channel       string         `json:"channel"`
	Chat          Chat           `json:"chat"`
	Text          string         `json:"text"`
	ReplyToID     string         `json:"reply_to_id,omitempty"`
	EditMessageID string         `json:"edit_message_id,omitempty"`
	Keyboard      *Keyboard      `json:"keyboard,omitempty"`
	Hints         *OutboundHints `json:"hints,omitempty"`
}

// OutboundHints carries optional delivery hints for channels.
// Zero value means no hints are set.
type OutboundHints struct {
	DisablePreview      bool   `json:"disable_preview,omitempty"`
	DisableNotification bool   `json:"disable_notification,omitempty"`
	ParseMode           string `json:"parse_mode,omitempty"`
}

// NewTextMessage creates an outbound message with plain text for the given
// channel and chat.
func NewTextMessage(channel string, chat Chat, text string) OutboundMessage {
	return OutboundMessage{
		Channel: channel,
		Chat:    chat,
		Text:    text,
	}
}

// NewMenuMessage creates an outbound message carrying an inline keyboard.
func NewMenuMessage(channel string, chat Chat, text string, kb *Keyboard) OutboundMessage {
	return OutboundMessage{
		Channel:  channel,
		Chat:     chat,
		Text:     text,
		Keyboard: kb,
	}
}

// NewEdit creates an outbound message that replaces the text of a
// previously sent message.
func NewEdit(channel string, chat Chat, messageID, text string) OutboundMessage {
	return OutboundMessage{
		Channel:       channel,
		Chat:          chat,
		EditMessageID: messageID,
		Text:          text,
	}
}
