package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable marks transport-level failures: no HTTP response was
	// received at all (connection refused, timeout, DNS failure).
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized matches any 401 response via errors.Is.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoRefreshToken is returned by Refresh when the store holds no
	// credentials to exchange.
	ErrNoRefreshToken = errors.New("no refresh token")

	errMissingData = errors.New("missing data field")
)

// Error is an HTTP error response from the server. Message carries the
// server-provided text when the error envelope could be parsed, otherwise
// the generic HTTP status.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// DecodeError reports a response body that did not match the expected
// envelope or payload shape. The pipeline never guesses at alternative
// shapes; a mismatch is a loud failure.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("api: decoding %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
