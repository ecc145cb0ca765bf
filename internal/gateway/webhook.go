package gateway

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/tolkabot/tolka/internal/channel"
)

// WebhookHandler processes a webhook payload for one source. The handler
// owns platform-specific authentication (Telegram validates its
// X-Telegram-Bot-Api-Secret-Token header itself) and returns
// channel.ErrUnauthorized when it fails, which the dispatcher maps to 401.
type WebhookHandler interface {
	HandleWebhook(ctx context.Context, source string, body []byte, headers http.Header) error
}

// WebhookDispatcher routes incoming webhooks to registered handlers.
type WebhookDispatcher struct {
	mu       sync.RWMutex
	handlers map[string]WebhookHandler
	metrics  *Metrics
	logger   *slog.Logger
	maxBody  int64
}

// NewWebhookDispatcher creates a ready-to-use dispatcher.
func NewWebhookDispatcher(logger *slog.Logger, metrics *Metrics, maxBody int64) *WebhookDispatcher {
	return &WebhookDispatcher{
		handlers: make(map[string]WebhookHandler),
		metrics:  metrics,
		logger:   logger,
		maxBody:  maxBody,
	}
}

// Register adds a handler for the given source.
func (d *WebhookDispatcher) Register(source string, h WebhookHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[source] = h
}

// Sources returns the names of all registered webhook sources.
func (d *WebhookDispatcher) Sources() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	sources := make([]string, 0, len(d.handlers))
	for s := range d.handlers {
		sources = append(sources, s)
	}
	return sources
}

// ServeHTTP implements http.Handler. It extracts the source from the chi
// URL param and dispatches to the registered handler.
//
// Response codes follow webhook-reliability convention: once a payload is
// accepted by a handler the dispatcher answers 200 even if downstream
// delivery later fails, so the platform does not re-send the update.
// Authentication failures answer 401 without processing.
func (d *WebhookDispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	source := chi.URLParam(r, "source")
	if source == "" {
		http.Error(w, "missing source", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, d.maxBody))
	if err != nil {
		d.metrics.RecordRejected(source, "read_error")
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	d.mu.RLock()
	handler, ok := d.handlers[source]
	d.mu.RUnlock()

	if !ok {
		d.logger.Warn("webhook received for unregistered source", "source", source)
		d.metrics.RecordRejected(source, "unknown_source")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true,"warning":"no handler registered"}`))
		return
	}

	if err := handler.HandleWebhook(r.Context(), source, body, r.Header); err != nil {
		if errors.Is(err, channel.ErrUnauthorized) {
			d.logger.Warn("webhook rejected: invalid secret", "source", source)
			d.metrics.RecordRejected(source, "unauthorized")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		d.logger.Error("webhook handler failed", "source", source, "error", err)
		d.metrics.RecordRejected(source, "handler_error")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	d.metrics.RecordUpdate(source)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"ok":true}`))
}
