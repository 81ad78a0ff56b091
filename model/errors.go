package model

import (
	"errors"
	"fmt"
	"time"
)

// RateLimitError signals the provider rejected a call due to throttling.
// It is the transient failure class: callers wrapped in retry may call again
// after a delay.
type RateLimitError struct {
	Provider   string
	RetryAfter time.Duration
	Err        error
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited: %v", e.Provider, e.Err)
}

// Unwrap exposes the underlying provider error.
func (e *RateLimitError) Unwrap() error { return e.Err }

// Temporary marks the error as retryable.
func (e *RateLimitError) Temporary() bool { return true }

// RequestError signals a non-retryable provider failure (bad request, auth,
// content policy, server fault). Retrying without changing the request will
// not help.
type RequestError struct {
	Provider   string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("%s request failed (status %d): %v", e.Provider, e.StatusCode, e.Err)
}

// Unwrap exposes the underlying provider error.
func (e *RequestError) Unwrap() error { return e.Err }

// Temporary marks the error as not retryable.
func (e *RequestError) Temporary() bool { return false }

// IsTransient reports whether err (or anything it wraps) is a recoverable
// failure worth retrying.
func IsTransient(err error) bool {
	var t interface{ Temporary() bool }
	return errors.As(err, &t) && t.Temporary()
}
