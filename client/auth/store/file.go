package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/oauth2"
)

// FileStore persists tokens to a JSON file. It is a lightweight way to
// survive process restarts in CLI or single-host services.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	tokens map[TokenKey]*oauth2.Token
}

// NewFileStore creates a Store that persists tokens at the given path.
func NewFileStore(path string) Store {
	fs := &FileStore{
		path:   path,
		tokens: map[TokenKey]*oauth2.Token{},
	}
	_ = fs.load()
	return fs
}

func (f *FileStore) LookupToken(key TokenKey) (*oauth2.Token, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if t, ok := f.tokens[key]; ok {
		return t, true
	}
	return nil, false
}

func (f *FileStore) AddToken(key TokenKey, token *oauth2.Token) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tokens == nil {
		f.tokens = map[TokenKey]*oauth2.Token{}
	}
	f.tokens[key] = token
	return f.save()
}

func (f *FileStore) DeleteToken(key TokenKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, key)
	return f.save()
}

// ---- persistence ----

type fileSnapshot struct {
	Tokens map[string]*oauth2.Token `json:"tokens"`
}

func keyString(k TokenKey) string { return k.Issuer + "|" + k.Scopes }

func (f *FileStore) save() error {
	snap := fileSnapshot{Tokens: map[string]*oauth2.Token{}}
	for k, v := range f.tokens {
		snap.Tokens[keyString(k)] = v
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f.tokens = map[TokenKey]*oauth2.Token{}
			return nil
		}
		return err
	}
	var snap fileSnapshot
	if err = json.Unmarshal(data, &snap); err != nil {
		return err
	}
	f.tokens = map[TokenKey]*oauth2.Token{}
	for k, v := range snap.Tokens {
		parts := strings.SplitN(k, "|", 2)
		if len(parts) != 2 {
			continue
		}
		f.tokens[TokenKey{Issuer: parts[0], Scopes: parts[1]}] = v
	}
	return nil
}
