// Package session holds the client's authentication state. A session is
// either Anonymous or Authenticated; the token is only reachable through an
// Authenticated state, so code paths that need one cannot observe a half-built
// session.
package session

import (
	"sync"

	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
)

// State identifies which side of the session sum type is active.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Session is the mutable session holder shared by the client and its callers.
// All access goes through methods; the zero value is a usable Anonymous session.
type Session struct {
	mu    sync.RWMutex
	state State
	token string
	user  domain.User
}

// New returns an Anonymous session.
func New() *Session {
	return &Session{}
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token returns the bearer token and whether the session is authenticated.
// The token is never exposed for an Anonymous session.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != Authenticated {
		return "", false
	}
	return s.token, true
}

// User returns the authenticated user and whether the session is authenticated.
func (s *Session) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != Authenticated {
		return domain.User{}, false
	}
	return s.user, true
}

// Authenticate transitions the session to Authenticated with the given
// token and user profile.
func (s *Session) Authenticate(token string, user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Authenticated
	s.token = token
	s.user = user
}

// Clear transitions the session back to Anonymous and forgets the token.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Anonymous
	s.token = ""
	s.user = domain.User{}
}
