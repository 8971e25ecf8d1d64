package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/acippicacipa/orchid-erp-sub001/internal/config"
	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
	"github.com/acippicacipa/orchid-erp-sub001/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	c := New(config.APIConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, store)
	return c, store
}

func loginHandler(valid map[string]string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /accounts/login/", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if valid[req.Username] != req.Password {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid username or password"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-" + req.Username,
			"user":  domain.User{ID: 1, Username: req.Username, Role: "ADMIN"},
		})
	})
	return mux
}

func TestLoginSuccess(t *testing.T) {
	c, store := newTestClient(t, loginHandler(map[string]string{"admin": "secret"}))

	user, err := c.Login(context.Background(), "admin", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Username != "admin" {
		t.Errorf("user = %+v", user)
	}
	if c.Session().State() != session.Authenticated {
		t.Error("session should be authenticated after login")
	}
	if creds, ok := store.Load(); !ok || creds.Token != "tok-admin" {
		t.Errorf("persisted credentials = %+v, %v", creds, ok)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	c, store := newTestClient(t, loginHandler(map[string]string{"admin": "secret"}))

	_, err := c.Login(context.Background(), "admin", "wrong")
	if err == nil {
		t.Fatal("expected error for invalid credentials")
	}
	if err.Error() == "" {
		t.Error("login error must carry a message")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Detail != "Invalid username or password" {
		t.Errorf("detail = %q", apiErr.Detail)
	}

	if c.Session().State() != session.Anonymous {
		t.Error("session must stay anonymous after failed login")
	}
	if _, ok := store.Load(); ok {
		t.Error("nothing should be persisted after failed login")
	}
}

func TestUnauthorizedDropsSession(t *testing.T) {
	// Every authenticated endpoint answers 401; the path should not matter.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid token."})
	})
	c, store := newTestClient(t, handler)

	c.Session().Authenticate("stale-token", domain.User{Username: "admin"})
	_ = store.Save(session.Credentials{Token: "stale-token"})

	var out map[string]any
	err := c.Get(context.Background(), "/inventory/products/", &out)
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}
	if c.Session().State() != session.Anonymous {
		t.Error("session must be anonymous after a 401")
	}
	if _, ok := store.Load(); ok {
		t.Error("persisted token must be cleared after a 401")
	}

	// Follow-up calls fail fast without hitting the network.
	if err := c.Get(context.Background(), "/sales/customers/", &out); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("follow-up err = %v, want ErrNotAuthenticated", err)
	}
}

func TestRestoreInvalidToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	c, store := newTestClient(t, handler)
	_ = store.Save(session.Credentials{Token: "expired", User: domain.User{Username: "admin"}})

	if _, ok := c.Restore(context.Background()); ok {
		t.Fatal("restore with an invalid token must fail")
	}
	if c.Session().State() != session.Anonymous {
		t.Error("session must be anonymous after failed restore")
	}
	if _, ok := store.Load(); ok {
		t.Error("store must be cleared after failed restore")
	}
}

func TestRestoreValidToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /accounts/profile/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Token good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(domain.User{ID: 4, Username: "gudang", Role: "WAREHOUSE"})
	})
	c, store := newTestClient(t, mux)
	_ = store.Save(session.Credentials{Token: "good"})

	user, ok := c.Restore(context.Background())
	if !ok {
		t.Fatal("restore with a valid token must succeed")
	}
	if user.Username != "gudang" {
		t.Errorf("user = %+v", user)
	}
	if c.Session().State() != session.Authenticated {
		t.Error("session should be authenticated after restore")
	}
}

func TestLogoutAlwaysClearsLocally(t *testing.T) {
	// Server-side logout blows up; local state must still be cleared.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c, store := newTestClient(t, handler)

	c.Session().Authenticate("tok", domain.User{Username: "admin"})
	_ = store.Save(session.Credentials{Token: "tok"})

	c.Logout(context.Background())

	if c.Session().State() != session.Anonymous {
		t.Error("session must be anonymous after logout")
	}
	if _, ok := store.Load(); ok {
		t.Error("store must be cleared after logout")
	}
}

func TestAPIErrorDetailExtraction(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "quantity must be positive"})
	})
	c, _ := newTestClient(t, handler)
	c.Session().Authenticate("tok", domain.User{})

	err := c.Post(context.Background(), "/inventory/stock-movements/", map[string]any{}, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Detail != "quantity must be positive" || !IsValidation(err) {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestGetPage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"count":   2,
			"results": []domain.Location{{ID: 1, Code: "WH1"}, {ID: 2, Code: "WH2"}},
		})
	})
	c, _ := newTestClient(t, handler)
	c.Session().Authenticate("tok", domain.User{})

	page, err := GetPage[domain.Location](context.Background(), c, "/inventory/locations/")
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if page.Count != 2 || len(page.Results) != 2 || page.Results[1].Code != "WH2" {
		t.Errorf("page = %+v", page)
	}
}
