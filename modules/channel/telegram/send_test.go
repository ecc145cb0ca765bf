package telegram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tolkabot/tolka/pkg/message"
)

func testTelegram(t *testing.T, handler http.HandlerFunc) (*Telegram, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Telegram{
		client: NewClient("TOKEN", srv.URL),
		logger: discardLogger(),
	}, srv
}

func TestSendOutboundText(t *testing.T) {
	var got SendMessageRequest
	tg, _ := testTelegram(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/sendMessage") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatal(err)
		}
		writeJSON(t, w, APIResponse[Message]{OK: true, Result: Message{MessageID: 1}})
	})

	out := message.NewTextMessage("channel.telegram", message.Chat{ID: "42", Type: message.ChatDM}, "bonjour")
	out.ReplyToID = "7"
	if err := tg.Send(context.Background(), out); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if got.ChatID != 42 || got.Text != "bonjour" {
		t.Errorf("request = %+v", got)
	}
	if got.ReplyToMessageID != 7 {
		t.Errorf("ReplyToMessageID = %d, want 7", got.ReplyToMessageID)
	}
}

func TestSendOutboundKeyboard(t *testing.T) {
	var got SendMessageRequest
	tg, _ := testTelegram(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatal(err)
		}
		writeJSON(t, w, APIResponse[Message]{OK: true, Result: Message{MessageID: 1}})
	})

	kb := &message.Keyboard{Rows: [][]message.Button{
		{{Label: "🇫🇷 French", Data: "setlang|fr"}, {Label: "🇩🇪 German", Data: "setlang|de"}},
	}}
	out := message.NewMenuMessage("channel.telegram", message.Chat{ID: "42"}, "pick", kb)
	if err := tg.Send(context.Background(), out); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if got.ReplyMarkup == nil {
		t.Fatal("ReplyMarkup not sent")
	}
	row := got.ReplyMarkup.InlineKeyboard[0]
	if len(row) != 2 || row[1].CallbackData != "setlang|de" {
		t.Errorf("keyboard row = %+v", row)
	}
}

func TestSendOutboundEdit(t *testing.T) {
	var got EditMessageTextRequest
	tg, _ := testTelegram(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/editMessageText") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatal(err)
		}
		writeJSON(t, w, APIResponse[Message]{OK: true, Result: Message{MessageID: 77}})
	})

	out := message.NewEdit("channel.telegram", message.Chat{ID: "42"}, "77", "confirmed")
	if err := tg.Send(context.Background(), out); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if got.MessageID != 77 || got.Text != "confirmed" {
		t.Errorf("request = %+v", got)
	}
}

func TestSendOutboundSplitsLongText(t *testing.T) {
	var texts []string
	tg, _ := testTelegram(t, func(w http.ResponseWriter, r *http.Request) {
		var req SendMessageRequest
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatal(err)
		}
		texts = append(texts, req.Text)
		writeJSON(t, w, APIResponse[Message]{OK: true, Result: Message{MessageID: 1}})
	})

	long := strings.Repeat("a", maxMessageLength+10)
	out := message.NewTextMessage("channel.telegram", message.Chat{ID: "42"}, long)
	if err := tg.Send(context.Background(), out); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if len(texts) != 2 {
		t.Fatalf("sent %d messages, want 2", len(texts))
	}
	if len([]rune(texts[0])) != maxMessageLength {
		t.Errorf("first chunk length = %d", len([]rune(texts[0])))
	}
}

func TestSendOutboundBadChatID(t *testing.T) {
	tg := &Telegram{client: NewClient("TOKEN", "http://127.0.0.1:0"), logger: discardLogger()}
	out := message.NewTextMessage("channel.telegram", message.Chat{ID: "not-a-number"}, "hi")
	if err := tg.Send(context.Background(), out); err == nil {
		t.Fatal("expected error for invalid chat ID")
	}
}

func TestSplitTextPrefersNewline(t *testing.T) {
	text := strings.Repeat("x", 30) + "\n" + strings.Repeat("y", 30)
	chunks := splitText(text, 40)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], "\n") {
		t.Errorf("first chunk should end at the newline, got %q", chunks[0])
	}
	if chunks[1] != strings.Repeat("y", 30) {
		t.Errorf("second chunk = %q", chunks[1])
	}
}
