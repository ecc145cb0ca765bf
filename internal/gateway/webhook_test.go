package gateway

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/tolkabot/tolka/internal/channel"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubHandler returns a fixed error and records the received body.
type stubHandler struct {
	err  error
	body []byte
}

func (s *stubHandler) HandleWebhook(_ context.Context, _ string, body []byte, _ http.Header) error {
	s.body = body
	return s.err
}

// dispatchRequest routes a request through a chi router so URL params resolve.
func dispatchRequest(d *WebhookDispatcher, method, path, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Handle("/webhooks/{source}", d)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestDispatcherDeliversToHandler(t *testing.T) {
	d := NewWebhookDispatcher(discardLogger(), NewMetrics(), 1<<20)
	h := &stubHandler{}
	d.Register("telegram", h)

	rec := dispatchRequest(d, http.MethodPost, "/webhooks/telegram", `{"update_id":1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if string(h.body) != `{"update_id":1}` {
		t.Errorf("handler received %q", h.body)
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Errorf("body = %q, want ok ack", rec.Body.String())
	}
}

func TestDispatcherUnauthorizedMapsTo401(t *testing.T) {
	d := NewWebhookDispatcher(discardLogger(), NewMetrics(), 1<<20)
	d.Register("telegram", &stubHandler{err: channel.ErrUnauthorized})

	rec := dispatchRequest(d, http.MethodPost, "/webhooks/telegram", `{}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestDispatcherHandlerErrorMapsTo500(t *testing.T) {
	d := NewWebhookDispatcher(discardLogger(), NewMetrics(), 1<<20)
	d.Register("telegram", &stubHandler{err: errors.New("boom")})

	rec := dispatchRequest(d, http.MethodPost, "/webhooks/telegram", `{}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestDispatcherUnknownSourceAcks(t *testing.T) {
	// Unknown sources are acknowledged with 200 so the platform stops
	// retrying a webhook nobody will ever handle.
	d := NewWebhookDispatcher(discardLogger(), NewMetrics(), 1<<20)

	rec := dispatchRequest(d, http.MethodPost, "/webhooks/unknown", `{}`)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "no handler registered") {
		t.Errorf("body = %q, want warning", rec.Body.String())
	}
}

func TestDispatcherRejectsNonPost(t *testing.T) {
	d := NewWebhookDispatcher(discardLogger(), NewMetrics(), 1<<20)
	d.Register("telegram", &stubHandler{})

	req := httptest.NewRequest(http.MethodGet, "/webhooks/telegram", nil)
	rec := httptest.NewRecorder()
	d.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestDispatcherMetrics(t *testing.T) {
	m := NewMetrics()
	d := NewWebhookDispatcher(discardLogger(), m, 1<<20)
	d.Register("telegram", &stubHandler{})

	dispatchRequest(d, http.MethodPost, "/webhooks/telegram", `{}`)
	dispatchRequest(d, http.MethodPost, "/webhooks/telegram", `{}`)

	snap := m.Snapshot()
	if snap.Updates != 2 {
		t.Errorf("Updates = %d, want 2", snap.Updates)
	}

	d.Register("secure", &stubHandler{err: channel.ErrUnauthorized})
	dispatchRequest(d, http.MethodPost, "/webhooks/secure", `{}`)

	snap = m.Snapshot()
	if snap.Rejected != 1 {
		t.Errorf("Rejected = %d, want 1", snap.Rejected)
	}
}
