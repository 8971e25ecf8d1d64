// internal/client/errors.go
package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired is returned when the backend answers 401 on an
// authenticated call. The client has already dropped the local session by the
// time callers see it, so the only recovery is a fresh login.
var ErrSessionExpired = errors.New("session expired")

// ErrNotAuthenticated is returned when an operation needs a token but the
// session is Anonymous.
var ErrNotAuthenticated = errors.New("not authenticated")

// APIError is a non-2xx response from the backend. Detail carries the
// backend-provided message from the `detail` or `error` field when present.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsValidation reports whether err is a backend 400.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest
}
