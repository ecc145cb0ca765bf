package provider

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limit", ErrRateLimit, true},
		{"wrapped rate limit", fmt.Errorf("openai: %w", ErrRateLimit), true},
		{"provider down", ErrProviderDown, true},
		{"auth failure", ErrAuth, false},
		{"context length", ErrContextLength, false},
		{"empty completion", ErrEmptyCompletion, false},
		{"unrelated", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryable(tc.err); got != tc.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
