package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/tolkabot/tolka/internal/provider"
)

// healthProbeTimeout bounds the provider probe on GET /health?probe=1.
const healthProbeTimeout = 10 * time.Second

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status   string   `json:"status"` // "ok" or "degraded"
	Channels []string `json:"channels,omitempty"`
	Provider string   `json:"provider,omitempty"`
}

// handleHealth returns an http.HandlerFunc for GET /health.
// Without parameters it reports liveness. With ?probe=1 and a
// health-checkable provider it also exercises the completion API and
// returns 503 when the probe fails.
func (g *Gateway) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{Status: "ok"}

		if g.dispatcher != nil {
			resp.Channels = g.dispatcher.Sources()
		}

		if g.provider != nil {
			resp.Provider = g.provider.ModelName()

			if r.URL.Query().Get("probe") != "" {
				if hc, ok := g.provider.(provider.HealthChecker); ok {
					ctx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
					defer cancel()
					if err := hc.HealthCheck(ctx); err != nil {
						resp.Status = "degraded"
					}
				}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if resp.Status == "degraded" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
