// Package prefs defines the per-user preference store used by the
// translator engine to remember each user's target language. Persistent
// implementations live under modules/prefs; the in-memory store here is the
// fallback when no store module is configured.
package prefs

import (
	"context"
	"errors"
)

// ErrNotFound indicates no preference is stored for the user.
var ErrNotFound = errors.New("prefs: not found")

// Store persists per-user language preferences keyed by the
// platform-agnostic sender ID.
type Store interface {
	// Language returns the stored target language code for the user.
	// Returns ErrNotFound when the user has never set one.
	Language(ctx context.Context, userID string) (string, error)

	// SetLanguage stores the target language code for the user,
	// overwriting any previous value.
	SetLanguage(ctx context.Context, userID, code string) error
}
