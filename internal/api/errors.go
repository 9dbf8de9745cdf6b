package api

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError is a transport-level failure: the request never produced
// an HTTP response (DNS, dial, timeout). Always retryable.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response. Message carries the backend's
// human-readable error field when one was returned.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("server error: status %d: %s", e.StatusCode, e.Message)
}

// IsAuthFailure reports whether err is a 401/403 response, meaning the
// stored credentials are no longer accepted.
func IsAuthFailure(err error) bool {
	var se *ServerError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden
	}
	return false
}

// IsRetryable reports whether the failure is worth re-attempting with
// the same request: transport failures and 5xx responses.
func IsRetryable(err error) bool {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return true
	}
	var se *ServerError
	if errors.As(err, &se) {
		return se.StatusCode >= http.StatusInternalServerError
	}
	return false
}
