package prefs

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.TODO()

	if _, err := s.Language(ctx, "123"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Language() on empty store = %v, want ErrNotFound", err)
	}

	if err := s.SetLanguage(ctx, "123", "fr"); err != nil {
		t.Fatalf("SetLanguage() error: %v", err)
	}

	code, err := s.Language(ctx, "123")
	if err != nil {
		t.Fatalf("Language() error: %v", err)
	}
	if code != "fr" {
		t.Errorf("Language() = %q, want %q", code, "fr")
	}

	// Overwrite.
	if err := s.SetLanguage(ctx, "123", "de"); err != nil {
		t.Fatalf("SetLanguage() error: %v", err)
	}
	code, _ = s.Language(ctx, "123")
	if code != "de" {
		t.Errorf("Language() after overwrite = %q, want %q", code, "de")
	}
}
