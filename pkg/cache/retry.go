package cache

import (
	"context"
	"errors"
	"time"
)

// transientError marks a failure worth another attempt.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Retryable marks err as transient. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsRetryable reports whether err was marked with [Retryable].
func IsRetryable(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// Backoff controls how often and how patiently an operation is retried.
type Backoff struct {
	Attempts int
	Initial  time.Duration
	// Max caps the delay between two attempts; zero means uncapped.
	Max time.Duration
}

// DefaultBackoff tries three times, waiting 1s then 2s. It is meant for
// reaching a cache backend; insight requests are never retried.
var DefaultBackoff = Backoff{Attempts: 3, Initial: time.Second, Max: 4 * time.Second}

// Retry calls fn until it succeeds, returns an error not marked
// [Retryable], or the attempts run out. The delay doubles after each
// failure. Cancelling ctx aborts the wait.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Initial

	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if b.Max > 0 && delay > b.Max {
			delay = b.Max
		}
	}
	return err
}
