package gateway

import (
	"encoding/json"
	"net/http"
	"time"
)

// StatusResponse is the JSON response for GET /status.
type StatusResponse struct {
	Uptime   time.Duration   `json:"uptime_seconds"`
	Metrics  MetricsSnapshot `json:"metrics"`
	Channels []string        `json:"channels,omitempty"`
	Provider string          `json:"provider,omitempty"`
}

// handleStatus returns an http.HandlerFunc for GET /status.
func (g *Gateway) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := StatusResponse{
			Uptime:  time.Since(g.startedAt).Truncate(time.Second),
			Metrics: g.metrics.Snapshot(),
		}

		if g.dispatcher != nil {
			resp.Channels = g.dispatcher.Sources()
		}
		if g.provider != nil {
			resp.Provider = g.provider.ModelName()
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
