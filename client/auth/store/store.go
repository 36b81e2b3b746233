// Package store provides the pluggable persistence layer for OAuth2
// tokens acquired by authorization strategies. The in-memory default is
// fine for CLI tools; the file store survives process restarts.
package store

import (
	"sync"

	"golang.org/x/oauth2"
)

// TokenKey identifies a cached token by the issuing endpoint and the scope
// set it was granted for.
type TokenKey struct {
	Issuer string
	Scopes string
}

// Store is a pluggable persistence layer for tokens.
type Store interface {
	AddToken(key TokenKey, token *oauth2.Token) error
	LookupToken(key TokenKey) (*oauth2.Token, bool)
	DeleteToken(key TokenKey) error
}

type memoryStore struct {
	mu     sync.RWMutex
	tokens map[TokenKey]*oauth2.Token
}

func (m *memoryStore) LookupToken(key TokenKey) (*oauth2.Token, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.tokens != nil {
		if token, ok := m.tokens[key]; ok {
			return token, true
		}
	}
	return nil, false
}

func (m *memoryStore) AddToken(key TokenKey, token *oauth2.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens == nil {
		m.tokens = map[TokenKey]*oauth2.Token{}
	}
	m.tokens[key] = token
	return nil
}

func (m *memoryStore) DeleteToken(key TokenKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, key)
	return nil
}

func NewMemoryStore() Store {
	return &memoryStore{tokens: map[TokenKey]*oauth2.Token{}}
}
