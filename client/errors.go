package client

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned for a request whose retry path hit a
// terminal refresh failure. The local session is already cleared when a
// caller sees this error; the only recovery is a fresh login.
var ErrSessionExpired = errors.New("session expired")

// ErrNoPendingTwoFactor is returned by ConfirmTwoFactor when no partial
// session with a temporary auth token exists.
var ErrNoPendingTwoFactor = errors.New("no two-factor confirmation pending")

// ErrorResponse is the backend's JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}
