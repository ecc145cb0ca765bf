package telegram

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/tolkabot/tolka/internal/channel"
	"github.com/tolkabot/tolka/pkg/message"
)

// secretHeader carries the secret_token configured via setWebhook.
const secretHeader = "X-Telegram-Bot-Api-Secret-Token"

// WebhookReceiver processes incoming Telegram webhook payloads.
// It implements gateway.WebhookHandler.
type WebhookReceiver struct {
	inbox       func(message.InboundMessage) error
	allowList   *channel.AllowList
	logger      *slog.Logger
	channelName string
	secret      string
}

// NewWebhookReceiver creates a new WebhookReceiver.
func NewWebhookReceiver(inbox func(message.InboundMessage) error, allowList *channel.AllowList, logger *slog.Logger, channelName, secret string) *WebhookReceiver {
	return &WebhookReceiver{
		inbox:       inbox,
		allowList:   allowList,
		logger:      logger,
		channelName: channelName,
		secret:      secret,
	}
}

// HandleWebhook processes a webhook payload from the gateway dispatcher.
// It validates Telegram's secret token header, parses the update, checks
// the allow list, and pushes the message to the inbox. A secret mismatch
// returns channel.ErrUnauthorized, which the gateway maps to 401 so
// Telegram stops delivering to a misconfigured endpoint.
func (w *WebhookReceiver) HandleWebhook(_ context.Context, _ string, body []byte, headers http.Header) error {
	if w.secret != "" {
		token := headers.Get(secretHeader)
		if subtle.ConstantTimeCompare([]byte(w.secret), []byte(token)) != 1 {
			return fmt.Errorf("telegram: webhook secret mismatch: %w", channel.ErrUnauthorized)
		}
	}

	var update Update
	if err := json.Unmarshal(body, &update); err != nil {
		return errors.New("telegram: invalid update JSON: " + err.Error())
	}

	msg, err := convertInbound(&update, w.channelName)
	if err != nil {
		w.logger.Debug("skipping webhook update", "update_id", update.UpdateID, "reason", err)
		return nil
	}

	if !w.allowList.IsAllowed(msg) {
		w.logger.Debug("webhook update denied by allow list",
			"update_id", update.UpdateID,
			"sender", msg.Sender.ID,
			"chat", msg.Chat.ID,
		)
		return nil
	}

	return w.inbox(msg)
}
