// Package apierr provides shared error sentinels and retry infrastructure
// for the chat completion client. HTTP-level failures are classified into
// these sentinels at the client boundary.
//
// The client maps status codes to sentinels using fmt.Errorf("%s: %w", msg, sentinel).
// Callers check with errors.Is(err, apierr.ErrAuthFailed) etc. Classification
// affects reporting and exit codes only; the retry loop treats every failure
// the same way (see Retry).
package apierr

import (
	"errors"
	"fmt"
)

// Sentinel errors for API interaction failures.
var (
	// ErrRateLimit indicates the API rate limit was exceeded.
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrTimeout indicates a request timed out.
	ErrTimeout = errors.New("request timeout")

	// ErrAuthFailed indicates API authentication failed (invalid key).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrBadRequest indicates a client error (4xx) that is not otherwise classified.
	ErrBadRequest = errors.New("bad request")

	// ErrServer indicates a server-side error (5xx).
	ErrServer = errors.New("server error")
)

// RetryError reports that a call failed after exhausting all attempts.
// It wraps the error from the final attempt.
type RetryError struct {
	Attempts int
	Err      error
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("all %d attempts failed: %v", e.Attempts, e.Err)
}

func (e *RetryError) Unwrap() error {
	return e.Err
}
