package token

import (
	"context"
	"sync"

	"golang.org/x/oauth2"
)

// MemoryStore is an in-memory Store for tests and ephemeral runs.
type MemoryStore struct {
	mu    sync.RWMutex
	token *oauth2.Token
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token(_ context.Context) (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == nil {
		return nil, ErrNoToken
	}
	copied := *s.token
	return &copied, nil
}

func (s *MemoryStore) AccessToken(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == nil {
		return "", nil
	}
	return s.token.AccessToken, nil
}

func (s *MemoryStore) RefreshToken(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == nil {
		return "", nil
	}
	return s.token.RefreshToken, nil
}

func (s *MemoryStore) SetToken(_ context.Context, token *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *token
	s.token = &copied
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
	return nil
}

func (s *MemoryStore) Authenticated(_ context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token != nil && s.token.AccessToken != "", nil
}
