package pipeline

import (
	"errors"
	"io/fs"
	"math/rand/v2"
	"time"
)

// RetryableError marks a failure that may succeed on a later attempt, such
// as a source file that an editor is replacing.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// classify wraps transient source errors in RetryableError.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return &RetryableError{Err: err}
	}
	return err
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *RetryableError
	return errors.As(err, &retryErr)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * BaseBackoff
	if base > MaxBackoff {
		base = MaxBackoff
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

const (
	MaxRetries  = 3
	BaseBackoff = 100 * time.Millisecond
	MaxBackoff  = 2 * time.Second
)
