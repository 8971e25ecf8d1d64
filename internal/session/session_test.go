package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
)

func TestSessionStateMachine(t *testing.T) {
	s := New()

	if s.State() != Anonymous {
		t.Fatalf("new session state = %v, want anonymous", s.State())
	}
	if _, ok := s.Token(); ok {
		t.Error("anonymous session must not expose a token")
	}
	if _, ok := s.User(); ok {
		t.Error("anonymous session must not expose a user")
	}

	s.Authenticate("tok-123", domain.User{ID: 1, Username: "admin"})
	if s.State() != Authenticated {
		t.Fatalf("state after Authenticate = %v, want authenticated", s.State())
	}
	if tok, ok := s.Token(); !ok || tok != "tok-123" {
		t.Errorf("Token() = %q, %v", tok, ok)
	}
	if u, ok := s.User(); !ok || u.Username != "admin" {
		t.Errorf("User() = %+v, %v", u, ok)
	}

	s.Clear()
	if s.State() != Anonymous {
		t.Fatalf("state after Clear = %v, want anonymous", s.State())
	}
	if _, ok := s.Token(); ok {
		t.Error("cleared session must not expose a token")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	if _, ok := store.Load(); ok {
		t.Fatal("empty store should load as no session")
	}

	creds := Credentials{Token: "abc", User: domain.User{ID: 2, Username: "kasir"}}
	if err := store.Save(creds); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, ok := store.Load()
	if !ok {
		t.Fatal("expected saved credentials to load")
	}
	if loaded.Token != "abc" || loaded.User.Username != "kasir" {
		t.Errorf("loaded = %+v", loaded)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := store.Load(); ok {
		t.Error("cleared store should load as no session")
	}
	// clearing twice is fine
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, ok := NewFileStore(path).Load(); ok {
		t.Error("corrupt file should load as no session")
	}
}
