// Package client implements the authenticated HTTP client for the ERP
// backend. It owns the session lifecycle: login, profile restore on startup,
// best-effort logout, and the hard rule that any 401 drops the session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/acippicacipa/orchid-erp-sub001/internal/config"
	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
	"github.com/acippicacipa/orchid-erp-sub001/internal/session"
	"github.com/rs/zerolog/log"
)

// Client talks to the ERP backend. All requests flow through Do, which merges
// the Authorization header and enforces the 401 logout rule.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Session
	store   session.Store
}

// New creates a client with an Anonymous session. Call Restore to pick up a
// persisted token.
func New(cfg config.APIConfig, store session.Store) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		session: session.New(),
		store:   store,
	}
}

// Session exposes the session state for callers that only need to inspect it.
func (c *Client) Session() *session.Session {
	return c.session
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Login exchanges credentials for a token and transitions the session to
// Authenticated. Invalid credentials come back as *APIError with a non-empty
// detail; transport failures are wrapped generically. The session stays
// Anonymous on any failure.
func (c *Client) Login(ctx context.Context, username, password string) (domain.User, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/accounts/login/", loginRequest{Username: username, Password: password}, &resp, false)
	if err != nil {
		return domain.User{}, err
	}

	c.session.Authenticate(resp.Token, resp.User)
	if saveErr := c.store.Save(session.Credentials{Token: resp.Token, User: resp.User}); saveErr != nil {
		log.Warn().Err(saveErr).Msg("failed to persist session")
	}

	return resp.User, nil
}

// Restore hydrates the session from the persisted token by fetching the
// profile. Any failure (expired token, network down, corrupt store) clears
// the persisted state and leaves the session Anonymous.
func (c *Client) Restore(ctx context.Context) (domain.User, bool) {
	creds, ok := c.store.Load()
	if !ok {
		return domain.User{}, false
	}

	c.session.Authenticate(creds.Token, creds.User)

	var user domain.User
	if err := c.Get(ctx, "/accounts/profile/", &user); err != nil {
		log.Debug().Err(err).Msg("stored session is no longer valid")
		c.forceLogout()
		return domain.User{}, false
	}

	c.session.Authenticate(creds.Token, user)
	return user, true
}

// Logout invalidates the server-side token on a best-effort basis, then
// unconditionally clears the local session. It never fails.
func (c *Client) Logout(ctx context.Context) {
	if _, ok := c.session.Token(); ok {
		if err := c.do(ctx, http.MethodPost, "/accounts/logout/", nil, nil, true); err != nil {
			log.Warn().Err(err).Msg("server-side logout failed, clearing local session anyway")
		}
	}
	c.forceLogout()
}

// forceLogout drops the session and persisted credentials.
func (c *Client) forceLogout() {
	c.session.Clear()
	if err := c.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to clear persisted session")
	}
}

// Get issues an authenticated GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, true)
}

// Post issues an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, true)
}

// Put issues an authenticated PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out, true)
}

// Delete issues an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, true)
}

// Page is the paginated list envelope returned by the backend.
type Page[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
	Results  []T    `json:"results"`
}

// GetPage fetches one page of a paginated listing.
func GetPage[T any](ctx context.Context, c *Client, path string) (Page[T], error) {
	var page Page[T]
	if err := c.Get(ctx, path, &page); err != nil {
		return Page[T]{}, err
	}
	return page, nil
}

// Upload issues an authenticated multipart POST, streaming r as the file
// field, with extra form fields alongside.
func (c *Client) Upload(ctx context.Context, path, field, filename string, r io.Reader, extra map[string]string, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("failed to read upload payload: %w", err)
	}
	for k, v := range extra {
		if err := writer.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to build upload form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, out, true)
}

// do builds a JSON request and sends it. authed controls whether the
// Authorization header is attached and the 401 rule applies; the login
// endpoint is the one caller that opts out.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out, authed)
}

func (c *Client) send(req *http.Request, out any, authed bool) error {
	if authed {
		token, ok := c.session.Token()
		if !ok {
			return ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Token "+token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if authed && resp.StatusCode == http.StatusUnauthorized {
		// A 401 anywhere means the token is dead. Drop the session so every
		// subsequent call fails fast with ErrNotAuthenticated.
		log.Info().Str("path", req.URL.Path).Msg("received 401, dropping session")
		c.forceLogout()
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, ErrSessionExpired)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Detail: extractDetail(raw)}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// extractDetail pulls the human-readable message out of a backend error body.
// The backend is inconsistent about the field name, so both spellings are
// checked before falling back to the raw body.
func extractDetail(raw []byte) string {
	var body struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
