package pinmeto

import (
	"context"
	"sync"
)

// MemoryTokenStore is the default TokenStore: in-memory, scoped to the
// client instance that owns it. Safe for concurrent use.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token *TokenState
}

// NewMemoryTokenStore creates an empty in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Get returns the stored token, or nil when none has been set.
func (s *MemoryTokenStore) Get(ctx context.Context) (*TokenState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == nil {
		return nil, nil
	}

	// Copy so callers cannot mutate the cached state.
	token := *s.token

	return &token, nil
}

// Set stores the token, replacing any previous one.
func (s *MemoryTokenStore) Set(ctx context.Context, token *TokenState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == nil {
		s.token = nil

		return nil
	}

	copied := *token
	s.token = &copied

	return nil
}

// Clear removes the stored token.
func (s *MemoryTokenStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil

	return nil
}
