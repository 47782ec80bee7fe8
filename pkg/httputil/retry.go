package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a failure worth another attempt (network error, 5xx,
// 429). [Retry] returns any other error immediately.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Policy controls [Retry]. Delay doubles after each failed attempt.
type Policy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultPolicy makes 3 attempts starting at 250ms. Logo fetches sit on the
// render path, so the delays stay short.
var DefaultPolicy = Policy{Attempts: 3, Delay: 250 * time.Millisecond}

// Retry runs fn until it succeeds, returns a non-retryable error, or the
// policy's attempts run out. It returns ctx.Err() if cancelled while waiting.
func Retry(ctx context.Context, p Policy, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// IsRetryable reports whether err carries a [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
