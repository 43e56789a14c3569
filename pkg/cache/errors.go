package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for cache backends.
var (
	// ErrCacheMiss signals that a notation or artifact is not cached.
	// Backends translate it into a (nil, false, nil) miss; it exists so
	// internal retry loops can tell a miss from a transport failure.
	ErrCacheMiss = errors.New("cache miss")

	// ErrNetwork marks transport failures against shared backends
	// (Redis timeouts, refused connections).
	ErrNetwork = errors.New("network error")
)

// Shared backends get a short retry budget: a notation lookup sits on the
// encode path, so total worst-case delay stays well under a second.
const (
	retryAttempts  = 3
	retryBaseDelay = 100 * time.Millisecond
)

// RetryableError marks an error as transient. Cache operations wrap
// transport failures with it; everything else fails fast.
type RetryableError struct{ Err error }

// Retryable wraps err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError anywhere in
// its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn, retrying transient failures with doubling
// delays up to retryAttempts total attempts. A cache miss or any other
// non-retryable error returns immediately, as does context cancellation
// between attempts.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryBaseDelay
	var lastErr error

	for i := 0; i < retryAttempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < retryAttempts-1 {
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
