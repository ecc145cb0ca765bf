package channel

import (
	"context"
	"errors"
	"testing"

	"github.com/tolkabot/tolka/internal/core"
	"github.com/tolkabot/tolka/pkg/message"
)

// mockChannel records sent messages.
type mockChannel struct {
	sent []message.OutboundMessage
	err  error
}

func (m *mockChannel) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{ID: "channel.mock", New: func() core.Module { return &mockChannel{} }}
}

func (m *mockChannel) Send(_ context.Context, msg message.OutboundMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *mockChannel) SetInbox(_ func(msg message.InboundMessage) error) {}

func TestDispatcherSend(t *testing.T) {
	d := NewDispatcher()
	ch := &mockChannel{}
	if err := d.Register("telegram", ch); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	msg := message.NewTextMessage("telegram", message.Chat{ID: "1"}, "hello")
	if err := d.Send(context.TODO(), msg); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if len(ch.sent) != 1 || ch.sent[0].Text != "hello" {
		t.Errorf("channel received %v", ch.sent)
	}
}

func TestDispatcherUnknownChannel(t *testing.T) {
	d := NewDispatcher()
	msg := message.NewTextMessage("discord", message.Chat{ID: "1"}, "hello")
	err := d.Send(context.TODO(), msg)
	if !errors.Is(err, ErrNoChannel) {
		t.Errorf("Send() error = %v, want ErrNoChannel", err)
	}
}

func TestDispatcherDuplicateRegistration(t *testing.T) {
	d := NewDispatcher()
	if err := d.Register("telegram", &mockChannel{}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	err := d.Register("telegram", &mockChannel{})
	if !errors.Is(err, ErrDuplicateChannel) {
		t.Errorf("Register() error = %v, want ErrDuplicateChannel", err)
	}
}

func TestDispatcherChannels(t *testing.T) {
	d := NewDispatcher()
	_ = d.Register("telegram", &mockChannel{})

	names := d.Channels()
	if len(names) != 1 || names[0] != "telegram" {
		t.Errorf("Channels() = %v, want [telegram]", names)
	}
}
