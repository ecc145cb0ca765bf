package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tolkabot/tolka/internal/channel"
	"github.com/tolkabot/tolka/internal/prefs"
	"github.com/tolkabot/tolka/internal/provider"
	"github.com/tolkabot/tolka/pkg/message"
)

const (
	greetingText = "👋 Hello! I'm your AI translation assistant.\n\n" +
		"Send any message in any language, and I'll translate it for you!\n\n" +
		"You can /language to set your preferred target language for translations."

	languageMenuText = "Please select your preferred language for translations:"

	emptyCompletionReply = "❌ Sorry, I couldn't generate a response."
	errorReply           = "❌ Sorry, something went wrong while translating. Please try again."

	callbackPrefix = "setlang|"
)

func (e *Engine) handle(ctx context.Context, msg message.InboundMessage) {
	switch {
	case msg.Callback != nil:
		e.handleCallback(ctx, msg)
	case msg.IsCommand():
		e.handleCommand(ctx, msg)
	case strings.TrimSpace(msg.Text) != "":
		e.handleTranslation(ctx, msg)
	}
}

func (e *Engine) handleCommand(ctx context.Context, msg message.InboundMessage) {
	switch msg.Command() {
	case "start":
		e.reply(ctx, message.NewTextMessage(msg.Channel, msg.Chat, greetingText))
	case "language":
		menu := message.NewMenuMessage(msg.Channel, msg.Chat, languageMenuText, languageKeyboard())
		e.reply(ctx, menu)
	default:
		e.logger.Debug("ignoring unknown command", "command", msg.Command())
	}
}

// handleCallback processes a press on the language menu. The callback is
// answered first so the client stops showing a spinner, then the preference
// is stored and the menu message edited into a confirmation.
func (e *Engine) handleCallback(ctx context.Context, msg message.InboundMessage) {
	cb := msg.Callback

	if ch, ok := e.dispatcher.Get(msg.Channel); ok {
		if answerer, ok := ch.(channel.CallbackAnswerer); ok {
			if err := answerer.AnswerCallback(ctx, cb.ID, ""); err != nil {
				e.logger.Warn("answering callback failed", "error", err)
			}
		}
	}

	if !strings.HasPrefix(cb.Data, callbackPrefix) {
		e.logger.Debug("ignoring unknown callback", "data", cb.Data)
		return
	}
	code := strings.TrimPrefix(cb.Data, callbackPrefix)
	lang, ok := LookupLanguage(code)
	if !ok {
		e.logger.Warn("callback carried unsupported language", "code", code)
		return
	}

	if err := e.store.SetLanguage(ctx, msg.Sender.ID, code); err != nil {
		e.logger.Error("storing language preference failed", "error", err, "user", msg.Sender.ID)
		e.reply(ctx, message.NewTextMessage(msg.Channel, msg.Chat, errorReply))
		return
	}

	confirmation := fmt.Sprintf("Your preferred language has been set to: %s %s (%s)",
		lang.Flag, lang.Name, lang.NativeName)
	e.reply(ctx, message.NewEdit(msg.Channel, msg.Chat, cb.MessageID, confirmation))
}

func (e *Engine) handleTranslation(ctx context.Context, msg message.InboundMessage) {
	ctx, span := e.tracer.Start(ctx, "translator.translate",
		trace.WithAttributes(
			attribute.String("channel", msg.Channel),
			attribute.String("chat.type", string(msg.Chat.Type)),
		))
	defer span.End()

	if ch, ok := e.dispatcher.Get(msg.Channel); ok {
		if tc, ok := ch.(channel.TypingChannel); ok {
			if err := tc.SendTyping(ctx, msg.Chat); err != nil {
				e.logger.Debug("typing indicator failed", "error", err)
			}
		}
	}

	target := e.targetLanguage(ctx, msg.Sender.ID)
	span.SetAttributes(attribute.String("target_language", target))

	req := provider.CompletionRequest{
		Messages:  buildPrompt(target, msg.Text),
		MaxTokens: e.config.MaxTokens,
	}
	if e.config.Temperature > 0 {
		temp := e.config.Temperature
		req.Temperature = &temp
	}

	started := time.Now()
	resp, err := e.provider.Complete(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		e.metrics.RecordError()
		e.logger.Error("translation failed",
			"error", err,
			"retryable", provider.IsRetryable(err),
			"user", msg.Sender.ID)
		out := message.NewTextMessage(msg.Channel, msg.Chat, errorReply)
		out.ReplyToID = msg.ID
		e.reply(ctx, out)
		return
	}
	e.metrics.RecordTranslation(time.Since(started))

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		text = emptyCompletionReply
	}
	out := message.NewTextMessage(msg.Channel, msg.Chat, text)
	out.ReplyToID = msg.ID
	e.reply(ctx, out)
}

// targetLanguage resolves the user's stored preference, falling back to the
// configured default when none is stored or the store is unavailable.
func (e *Engine) targetLanguage(ctx context.Context, userID string) string {
	code, err := e.store.Language(ctx, userID)
	if err != nil {
		if !errors.Is(err, prefs.ErrNotFound) {
			e.logger.Warn("reading language preference failed", "error", err, "user", userID)
		}
		return e.config.DefaultLanguage
	}
	if _, ok := LookupLanguage(code); !ok {
		return e.config.DefaultLanguage
	}
	return code
}

func (e *Engine) reply(ctx context.Context, msg message.OutboundMessage) {
	if err := e.dispatcher.Send(ctx, msg); err != nil {
		e.logger.Error("sending reply failed", "error", err, "channel", msg.Channel)
	}
}

// languageKeyboard builds the language menu, two buttons per row.
func languageKeyboard() *message.Keyboard {
	kb := &message.Keyboard{}
	var row []message.Button
	for _, l := range languages {
		row = append(row, message.Button{
			Label: l.Flag + " " + l.Name,
			Data:  callbackPrefix + l.Code,
		})
		if len(row) == 2 {
			kb.Rows = append(kb.Rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		kb.Rows = append(kb.Rows, row)
	}
	return kb
}
