// Package provider defines the contract between the translator engine and
// the completion API backing it. Concrete implementations live in separate
// packages (e.g. provider.openai) and also implement core.Module for
// lifecycle management.
package provider

import "context"

// Provider is the interface for communicating with a completion API.
// The translation pipeline is strictly request/response, so only
// non-streaming completions are supported.
type Provider interface {
	// Complete sends a completion request and returns the full response.
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)

	// ModelName returns the identifier of the underlying model.
	ModelName() string
}

// HealthChecker is an optional interface that providers may implement to
// support active health probing from the gateway's health endpoint.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
