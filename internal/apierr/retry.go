package apierr

import (
	"context"
	"time"
)

// RetryConfig holds retry parameters for fixed-delay retries.
//
// Invalid values are normalized:
//   - MaxAttempts < 1 becomes 1 (single attempt)
//   - Delay <= 0 becomes 1ms
type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
}

// normalize ensures all RetryConfig fields have valid values.
func (c *RetryConfig) normalize() {
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 1
	}
	if c.Delay <= 0 {
		c.Delay = time.Millisecond
	}
}

// Retry executes fn up to cfg.MaxAttempts times with a fixed delay between
// failed attempts. The delay never grows and carries no jitter; every error
// kind is retried identically until attempts run out. fn receives the 1-based
// attempt number, which callers typically use for diagnostics.
//
// The delay is context-aware: cancellation during a wait aborts immediately
// with ctx.Err(). After the final attempt fails, the last error is returned
// wrapped in a *RetryError carrying the attempt count.
//
// Invalid RetryConfig values are normalized (see RetryConfig documentation).
func Retry[T any](ctx context.Context, cfg RetryConfig, fn func(attempt int) (T, error)) (T, error) {
	cfg.normalize()

	var zero T
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			timer := time.NewTimer(cfg.Delay)
			select {
			case <-ctx.Done():
				if !timer.Stop() {
					<-timer.C
				}
				return zero, ctx.Err()
			case <-timer.C:
			}
		}

		result, err := fn(attempt)
		if err == nil {
			return result, nil
		}
		lastErr = err

		// A canceled context cannot succeed on a later attempt.
		if ctx.Err() != nil {
			return zero, lastErr
		}
	}

	return zero, &RetryError{Attempts: cfg.MaxAttempts, Err: lastErr}
}
