package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tolkabot/tolka/pkg/message"
)

// maxMessageLength is the Bot API limit for a single message text.
const maxMessageLength = 4096

// sendOutbound sends an OutboundMessage through the Telegram API. Edits
// go to editMessageText; plain messages are split at the API length limit
// and sent as consecutive sendMessage calls.
func (t *Telegram) sendOutbound(ctx context.Context, msg message.OutboundMessage) error {
	chatID, err := strconv.ParseInt(msg.Chat.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("telegram: invalid chat ID %q: %w", msg.Chat.ID, err)
	}

	if msg.EditMessageID != "" {
		messageID, err := strconv.Atoi(msg.EditMessageID)
		if err != nil {
			return fmt.Errorf("telegram: invalid message ID %q: %w", msg.EditMessageID, err)
		}
		_, err = t.client.EditMessageText(ctx, EditMessageTextRequest{
			ChatID:      chatID,
			MessageID:   messageID,
			Text:        msg.Text,
			ParseMode:   resolveParseMode(msg.Hints),
			ReplyMarkup: convertKeyboard(msg.Keyboard),
		})
		if err != nil {
			return fmt.Errorf("telegram: edit message: %w", err)
		}
		return nil
	}

	replyToID := parseOptionalInt(msg.ReplyToID, t.logger)
	disablePreview := false
	disableNotification := false
	if msg.Hints != nil {
		disablePreview = msg.Hints.DisablePreview
		disableNotification = msg.Hints.DisableNotification
	}

	chunks := splitText(msg.Text, maxMessageLength)
	for i, chunk := range chunks {
		req := SendMessageRequest{
			ChatID:                chatID,
			Text:                  chunk,
			ParseMode:             resolveParseMode(msg.Hints),
			DisableWebPagePreview: disablePreview,
			DisableNotification:   disableNotification,
		}
		// Only the first chunk quotes the original and only the last
		// carries the keyboard.
		if i == 0 {
			req.ReplyToMessageID = replyToID
		}
		if i == len(chunks)-1 {
			req.ReplyMarkup = convertKeyboard(msg.Keyboard)
		}
		if _, err := t.client.SendMessage(ctx, req); err != nil {
			return fmt.Errorf("telegram: send message: %w", err)
		}
	}

	return nil
}

// convertKeyboard maps the platform-agnostic keyboard to the Bot API
// inline-keyboard markup. Returns nil for a nil or empty keyboard.
func convertKeyboard(kb *message.Keyboard) *InlineKeyboardMarkup {
	if kb == nil || len(kb.Rows) == 0 {
		return nil
	}
	markup := &InlineKeyboardMarkup{
		InlineKeyboard: make([][]InlineKeyboardButton, 0, len(kb.Rows)),
	}
	for _, row := range kb.Rows {
		buttons := make([]InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, InlineKeyboardButton{
				Text:         b.Label,
				CallbackData: b.Data,
			})
		}
		markup.InlineKeyboard = append(markup.InlineKeyboard, buttons)
	}
	return markup
}

// splitText splits text into chunks of at most limit runes, preferring to
// break at the last newline within the limit.
func splitText(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(runes) > limit {
		cut := limit
		for i := limit - 1; i > limit/2; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}

// resolveParseMode returns the parse mode from hints. Empty means plain
// text, which is what translations are sent as.
func resolveParseMode(hints *message.OutboundHints) string {
	if hints != nil && hints.ParseMode != "" {
		return hints.ParseMode
	}
	return ""
}

// parseOptionalInt converts a string to int, returning 0 for empty strings.
// Logs a warning if the string is non-empty but not a valid integer.
func parseOptionalInt(s string, logger *slog.Logger) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		logger.Warn("parseOptionalInt: invalid integer value",
			"value", s,
			"error", err,
		)
		return 0
	}
	return v
}
