package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/tolkabot/tolka/internal/channel"
	"github.com/tolkabot/tolka/pkg/message"
)

func textUpdateBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(Update{
		UpdateID: 1,
		Message: &Message{
			MessageID: 42,
			From:      &User{ID: 123, FirstName: "Alice", Username: "alice"},
			Chat:      Chat{ID: 456, Type: "private"},
			Date:      1700000000,
			Text:      "hello",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func TestWebhookValidSecret(t *testing.T) {
	var received []message.InboundMessage
	wh := NewWebhookReceiver(func(msg message.InboundMessage) error {
		received = append(received, msg)
		return nil
	}, channel.NewAllowList(nil, nil), discardLogger(), "channel.telegram", "my-secret")

	headers := http.Header{}
	headers.Set(secretHeader, "my-secret")

	if err := wh.HandleWebhook(context.TODO(), "telegram", textUpdateBody(t), headers); err != nil {
		t.Fatalf("HandleWebhook() error: %v", err)
	}
	if len(received) != 1 {
		t.Fatalf("received %d messages, want 1", len(received))
	}
	if received[0].Sender.ID != "123" {
		t.Errorf("Sender.ID = %q, want %q", received[0].Sender.ID, "123")
	}
	if received[0].Text != "hello" {
		t.Errorf("Text = %q, want %q", received[0].Text, "hello")
	}
}

func TestWebhookInvalidSecret(t *testing.T) {
	wh := NewWebhookReceiver(func(_ message.InboundMessage) error {
		t.Error("inbox should not be called for invalid secret")
		return nil
	}, channel.NewAllowList(nil, nil), discardLogger(), "channel.telegram", "my-secret")

	headers := http.Header{}
	headers.Set(secretHeader, "wrong")

	err := wh.HandleWebhook(context.TODO(), "telegram", textUpdateBody(t), headers)
	if !errors.Is(err, channel.ErrUnauthorized) {
		t.Fatalf("HandleWebhook() error = %v, want ErrUnauthorized", err)
	}
}

func TestWebhookMissingSecretHeader(t *testing.T) {
	wh := NewWebhookReceiver(func(_ message.InboundMessage) error {
		t.Error("inbox should not be called")
		return nil
	}, channel.NewAllowList(nil, nil), discardLogger(), "channel.telegram", "my-secret")

	err := wh.HandleWebhook(context.TODO(), "telegram", textUpdateBody(t), http.Header{})
	if !errors.Is(err, channel.ErrUnauthorized) {
		t.Fatalf("HandleWebhook() error = %v, want ErrUnauthorized", err)
	}
}

func TestWebhookNoSecretConfigured(t *testing.T) {
	var received int
	wh := NewWebhookReceiver(func(_ message.InboundMessage) error {
		received++
		return nil
	}, channel.NewAllowList(nil, nil), discardLogger(), "channel.telegram", "")

	if err := wh.HandleWebhook(context.TODO(), "telegram", textUpdateBody(t), http.Header{}); err != nil {
		t.Fatalf("HandleWebhook() error: %v", err)
	}
	if received != 1 {
		t.Errorf("received = %d, want 1", received)
	}
}

func TestWebhookAllowListDeny(t *testing.T) {
	wh := NewWebhookReceiver(func(_ message.InboundMessage) error {
		t.Error("inbox should not be called for denied sender")
		return nil
	}, channel.NewAllowList([]string{"999"}, nil), discardLogger(), "channel.telegram", "")

	// Denied updates are dropped silently so Telegram still gets a 200.
	if err := wh.HandleWebhook(context.TODO(), "telegram", textUpdateBody(t), http.Header{}); err != nil {
		t.Fatalf("HandleWebhook() error: %v", err)
	}
}

func TestWebhookInvalidJSON(t *testing.T) {
	wh := NewWebhookReceiver(func(_ message.InboundMessage) error {
		return nil
	}, channel.NewAllowList(nil, nil), discardLogger(), "channel.telegram", "")

	if err := wh.HandleWebhook(context.TODO(), "telegram", []byte("{not json"), http.Header{}); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestWebhookCallbackQuery(t *testing.T) {
	var received []message.InboundMessage
	wh := NewWebhookReceiver(func(msg message.InboundMessage) error {
		received = append(received, msg)
		return nil
	}, channel.NewAllowList(nil, nil), discardLogger(), "channel.telegram", "")

	body, _ := json.Marshal(Update{
		UpdateID: 2,
		CallbackQuery: &CallbackQuery{
			ID:   "cb9",
			From: User{ID: 123, FirstName: "Alice"},
			Message: &Message{
				MessageID: 77,
				Chat:      Chat{ID: 456, Type: "private"},
				Date:      1700000000,
			},
			Data: "setlang|de",
		},
	})

	if err := wh.HandleWebhook(context.TODO(), "telegram", body, http.Header{}); err != nil {
		t.Fatalf("HandleWebhook() error: %v", err)
	}
	if len(received) != 1 {
		t.Fatalf("received %d messages, want 1", len(received))
	}
	cb := received[0].Callback
	if cb == nil {
		t.Fatal("Callback is nil")
	}
	if cb.ID != "cb9" || cb.Data != "setlang|de" || cb.MessageID != "77" {
		t.Errorf("Callback = %+v", cb)
	}
}
