package prefs

import (
	"context"
	"sync"
)

// MemoryStore is a process-local Store. Preferences are lost on restart;
// it exists so the engine works without a persistence module configured.
type MemoryStore struct {
	mu    sync.RWMutex
	langs map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{langs: make(map[string]string)}
}

// Language implements Store.
func (s *MemoryStore) Language(_ context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	code, ok := s.langs[userID]
	if !ok {
		return "", ErrNotFound
	}
	return code, nil
}

// SetLanguage implements Store.
func (s *MemoryStore) SetLanguage(_ context.Context, userID, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.langs[userID] = code
	return nil
}
