package telegram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWatchdogNoDrift(t *testing.T) {
	var setWebhookCalled bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getWebhookInfo"):
			writeJSON(t, w, APIResponse[WebhookInfo]{
				OK:     true,
				Result: WebhookInfo{URL: "https://bot.example.com/webhooks/telegram"},
			})
		case strings.HasSuffix(r.URL.Path, "/setWebhook"):
			setWebhookCalled = true
			writeJSON(t, w, APIResponse[bool]{OK: true, Result: true})
		}
	}))
	defer srv.Close()

	job := newWatchdogJob(NewClient("TOKEN", srv.URL), Config{
		WebhookURL:       "https://bot.example.com/webhooks/telegram",
		WatchdogSchedule: "*/5 * * * *",
	}, discardLogger())

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if setWebhookCalled {
		t.Error("setWebhook should not be called when the URL matches")
	}
}

func TestWatchdogReRegistersOnDrift(t *testing.T) {
	var got SetWebhookRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getWebhookInfo"):
			writeJSON(t, w, APIResponse[WebhookInfo]{
				OK:     true,
				Result: WebhookInfo{URL: "https://stale.example.com/webhooks/telegram"},
			})
		case strings.HasSuffix(r.URL.Path, "/setWebhook"):
			body, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatal(err)
			}
			writeJSON(t, w, APIResponse[bool]{OK: true, Result: true})
		}
	}))
	defer srv.Close()

	job := newWatchdogJob(NewClient("TOKEN", srv.URL), Config{
		WebhookURL:       "https://bot.example.com/webhooks/telegram",
		WebhookSecret:    "s3cret",
		WatchdogSchedule: "*/5 * * * *",
	}, discardLogger())

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got.URL != "https://bot.example.com/webhooks/telegram" {
		t.Errorf("setWebhook URL = %q", got.URL)
	}
	if got.SecretToken != "s3cret" {
		t.Errorf("SecretToken = %q", got.SecretToken)
	}
}

func TestWatchdogJobMetadata(t *testing.T) {
	job := newWatchdogJob(nil, Config{WatchdogSchedule: "*/10 * * * *"}, discardLogger())
	if job.Name() == "" {
		t.Error("job name is empty")
	}
	if job.Schedule() != "*/10 * * * *" {
		t.Errorf("Schedule() = %q", job.Schedule())
	}
}
