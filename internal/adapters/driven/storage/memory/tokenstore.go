// Package memory provides in-memory implementations of driven port interfaces.
package memory

import (
	"context"
	"sync"

	"github.com/hagraph/hagraph/internal/core/domain"
	"github.com/hagraph/hagraph/internal/core/ports/driven"
)

// Ensure TokenStore implements the interface.
var _ driven.TokenStore = (*TokenStore)(nil)

// TokenStore is an in-memory implementation of driven.TokenStore.
// Used when no persistent store is wanted, and in tests.
type TokenStore struct {
	mu     sync.RWMutex
	tokens map[string]domain.OAuthToken
}

// NewTokenStore creates a new in-memory token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{
		tokens: make(map[string]domain.OAuthToken),
	}
}

// Save stores or replaces the token for a client id.
func (s *TokenStore) Save(_ context.Context, clientID string, tok domain.OAuthToken) error {
	if clientID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[clientID] = tok
	return nil
}

// Load retrieves the token for a client id.
func (s *TokenStore) Load(_ context.Context, clientID string) (*domain.OAuthToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tok, ok := s.tokens[clientID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tok, nil
}

// Delete removes the token for a client id.
func (s *TokenStore) Delete(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, clientID)
	return nil
}
