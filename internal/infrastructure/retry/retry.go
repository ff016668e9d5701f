package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ExhaustedError is returned when every attempt failed with a retryable
// error. A non-retryable failure is returned as-is, so callers can tell a
// single immediate failure from a run that used up its retries.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("exhausted %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// Policy describes how often and how fast an operation is retried.
//
// MaxRetries counts additional attempts, so an operation runs at most
// MaxRetries+1 times. Delay receives the zero-based attempt that just failed
// and its error, which lets a policy skip the wait for failures that are
// fixed by the retry itself (an expired token).
type Policy struct {
	MaxRetries  int
	ShouldRetry func(err error) bool
	Delay       func(attempt int, err error) time.Duration
	Sleep       func(ctx context.Context, d time.Duration) error
	OnRetry     func(attempt int, err error, wait time.Duration)
}

// Do runs op until it succeeds, returns a non-retryable error, runs out of
// retries or ctx is done.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context, attempt int) error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = SleepContext
	}

	var last error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		err := op(ctx, attempt)
		if err == nil {
			return nil
		}
		last = err

		if p.ShouldRetry == nil || !p.ShouldRetry(err) {
			return err
		}
		if attempt == p.MaxRetries {
			break
		}

		var wait time.Duration
		if p.Delay != nil {
			wait = p.Delay(attempt, err)
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, err, wait)
		}
		if err := sleep(ctx, wait); err != nil {
			return fmt.Errorf("retry aborted after attempt %d: %w", attempt+1, errors.Join(err, last))
		}
	}
	return &ExhaustedError{Attempts: p.MaxRetries + 1, Last: last}
}

// Exponential returns base * 2^attempt, capped at limit when limit > 0.
func Exponential(base, limit time.Duration) func(attempt int, err error) time.Duration {
	return func(attempt int, _ error) time.Duration {
		d := base
		for i := 0; i < attempt; i++ {
			d *= 2
			if limit > 0 && d >= limit {
				return limit
			}
		}
		if limit > 0 && d > limit {
			return limit
		}
		return d
	}
}

// SleepContext waits for d or until ctx is done.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
