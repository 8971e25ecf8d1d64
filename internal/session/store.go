// internal/session/store.go
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
)

// Credentials is the persisted shape of an authenticated session.
type Credentials struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Store persists credentials across runs. Implementations must treat a
// missing or unreadable record as "no session" rather than an error, since
// the caller's fallback is simply the Anonymous state.
type Store interface {
	Load() (Credentials, bool)
	Save(Credentials) error
	Clear() error
}

// FileStore keeps credentials as a JSON file with owner-only permissions.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads persisted credentials. A missing, unreadable, or corrupt file
// reads as no session.
func (s *FileStore) Load() (Credentials, bool) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return Credentials{}, false
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil || creds.Token == "" {
		return Credentials{}, false
	}
	return creds, true
}

// Save writes credentials, creating the parent directory if needed.
func (s *FileStore) Save(creds Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create credentials dir: %w", err)
	}

	raw, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}

// Clear removes the persisted credentials. Removing a file that is already
// gone is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

// MemoryStore is an in-process Store for tests.
type MemoryStore struct {
	creds Credentials
	saved bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (Credentials, bool) {
	return s.creds, s.saved
}

func (s *MemoryStore) Save(creds Credentials) error {
	s.creds = creds
	s.saved = true
	return nil
}

func (s *MemoryStore) Clear() error {
	s.creds = Credentials{}
	s.saved = false
	return nil
}
