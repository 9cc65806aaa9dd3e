// Package resilience provides bounded retry with exponential backoff for
// the few network calls mdgate makes, such as the release version check.
package resilience

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// ErrPermanent marks an error that must not be retried. Wrap an error with
// Permanent to stop a retry loop early.
var ErrPermanent = errors.New("resilience: permanent error")

// Permanent wraps err so Retry gives up immediately.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

type permanentError struct {
	err error
}

func (e permanentError) Error() string { return e.err.Error() }

func (e permanentError) Unwrap() error { return e.err }

func (e permanentError) Is(target error) bool { return target == ErrPermanent }

// Policy defines the retry behavior for an operation.
type Policy struct {
	// MaxRetries is the number of retry attempts after the initial call.
	MaxRetries int
	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration
	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration
	// Jitter randomizes delays between 0.5x and 1.5x.
	Jitter bool
}

// Retry runs fn until it succeeds, the policy is exhausted, or the context
// is done. Errors wrapped with Permanent abort immediately; the error from
// the last attempt is returned.
func Retry(ctx context.Context, policy Policy, fn func() error) error {
	var lastErr error

	attempts := policy.MaxRetries + 1
	for attempt := range attempts {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if errors.Is(err, ErrPermanent) ||
			errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		if attempt < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(Backoff(attempt, policy)):
			}
		}
	}

	return lastErr
}

// Backoff computes the delay before retry number attempt (0-based):
// BaseDelay doubled per attempt, capped at MaxDelay.
func Backoff(attempt int, policy Policy) time.Duration {
	base := policy.BaseDelay
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	max := policy.MaxDelay
	if max <= 0 {
		max = 30 * time.Second
	}

	delay := base
	for range attempt {
		delay *= 2
		if delay > max {
			break
		}
	}
	if delay > max {
		delay = max
	}

	if policy.Jitter {
		delay = time.Duration(float64(delay) * (0.5 + rand.Float64()))
		if delay > max {
			delay = max
		}
	}

	return delay
}
