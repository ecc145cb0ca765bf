// Package channel defines the bridge between messaging platforms and the
// translator engine. It provides the Channel interface, outbound dispatch,
// and allow-list filtering.
package channel

import (
	"context"

	"github.com/tolkabot/tolka/internal/core"
	"github.com/tolkabot/tolka/pkg/message"
)

// Channel is the bridge between a messaging platform and the engine.
// Every concrete channel (Telegram, etc.) must implement this interface.
//
// A channel receives updates from its platform, checks the allow-list, and
// pushes them to the engine via the inbox callback. It also receives
// outbound messages from the engine via Send().
type Channel interface {
	core.Module

	// Send delivers an outbound message to the platform.
	Send(ctx context.Context, msg message.OutboundMessage) error

	// SetInbox gives the channel a function to push inbound messages to
	// the engine. The engine calls this during wiring, before Start().
	SetInbox(fn func(msg message.InboundMessage) error)
}

// TypingChannel is implemented by channels that can show a typing
// indicator while a translation is in flight.
type TypingChannel interface {
	SendTyping(ctx context.Context, chat message.Chat) error
}

// CallbackAnswerer is implemented by channels whose platform requires
// inline-keyboard callbacks to be acknowledged (Telegram shows a spinner
// on the button until answerCallbackQuery is called).
type CallbackAnswerer interface {
	AnswerCallback(ctx context.Context, callbackID, text string) error
}
