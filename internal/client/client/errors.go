package client

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthFailed is returned by Login when the credentials were rejected
	// or the response carried no token.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRequestFailed covers any non-2xx response and any transport error.
	ErrRequestFailed = errors.New("request failed")
)

// StatusError describes a non-2xx response. It matches ErrRequestFailed.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the server's "error" field, if it sent one.
	Message   string
	RequestID string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrRequestFailed
}

// StatusCode extracts the HTTP status from err, or 0 if it carries none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
