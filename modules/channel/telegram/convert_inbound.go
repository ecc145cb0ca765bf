package telegram

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/tolkabot/tolka/pkg/message"
)

// convertInbound transforms a Telegram Update into a platform-agnostic
// InboundMessage. Updates without a text message or callback query are
// rejected with an error so callers can skip them.
func convertInbound(update *Update, channelName string) (message.InboundMessage, error) {
	if update.CallbackQuery != nil {
		return convertCallback(update, channelName)
	}

	msg := extractMessage(update)
	if msg == nil {
		return message.InboundMessage{}, fmt.Errorf("telegram: update %d contains no message", update.UpdateID)
	}
	if msg.Text == "" {
		return message.InboundMessage{}, fmt.Errorf("telegram: update %d carries no text", update.UpdateID)
	}

	raw, err := json.Marshal(update)
	if err != nil {
		return message.InboundMessage{}, fmt.Errorf("telegram: marshal update: %w", err)
	}

	inbound := message.InboundMessage{
		ID:        strconv.Itoa(msg.MessageID),
		Timestamp: time.Unix(int64(msg.Date), 0),
		Channel:   channelName,
		Sender:    convertSender(msg.From),
		Chat:      convertChat(msg.Chat),
		Text:      msg.Text,
		Raw:       raw,
	}

	if msg.ReplyToMessage != nil {
		inbound.ReplyToID = strconv.Itoa(msg.ReplyToMessage.MessageID)
	}

	return inbound, nil
}

// convertCallback maps a callback query to an InboundMessage carrying a
// Callback payload. The chat comes from the message the keyboard was
// attached to, so the confirmation edit lands in the right conversation.
func convertCallback(update *Update, channelName string) (message.InboundMessage, error) {
	cb := update.CallbackQuery
	if cb.Message == nil {
		return message.InboundMessage{}, fmt.Errorf("telegram: callback %s has no originating message", cb.ID)
	}

	raw, err := json.Marshal(update)
	if err != nil {
		return message.InboundMessage{}, fmt.Errorf("telegram: marshal update: %w", err)
	}

	return message.InboundMessage{
		ID:        strconv.Itoa(cb.Message.MessageID),
		Timestamp: time.Unix(int64(cb.Message.Date), 0),
		Channel:   channelName,
		Sender:    convertSender(&cb.From),
		Chat:      convertChat(cb.Message.Chat),
		Callback: &message.Callback{
			ID:        cb.ID,
			Data:      cb.Data,
			MessageID: strconv.Itoa(cb.Message.MessageID),
		},
		Raw: raw,
	}, nil
}

// extractMessage returns the actual message from an Update, checking
// Message and EditedMessage in order.
func extractMessage(update *Update) *Message {
	if update.Message != nil {
		return update.Message
	}
	return update.EditedMessage
}

// convertSender maps a Telegram User to a platform-agnostic Sender.
func convertSender(user *User) message.Sender {
	if user == nil {
		return message.Sender{}
	}
	displayName := user.FirstName
	if user.LastName != "" {
		displayName += " " + user.LastName
	}
	return message.Sender{
		ID:          strconv.FormatInt(user.ID, 10),
		Username:    user.Username,
		DisplayName: displayName,
	}
}

// convertChat maps a Telegram Chat to a platform-agnostic Chat.
func convertChat(chat Chat) message.Chat {
	return message.Chat{
		ID:    strconv.FormatInt(chat.ID, 10),
		Type:  mapChatType(chat.Type),
		Title: chat.Title,
	}
}

// mapChatType converts Telegram chat type strings to message.ChatType.
func mapChatType(tgType string) message.ChatType {
	switch tgType {
	case "private":
		return message.ChatDM
	case "group", "supergroup":
		return message.ChatGroup
	case "channel":
		return message.ChatBroadcast
	default:
		return message.ChatGroup
	}
}
