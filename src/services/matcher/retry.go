package matcher

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Retrier re-runs an operation that failed with ErrMatcherUnavailable.
// Any other error is returned as-is on the first occurrence.
type Retrier struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
	Sleep       func(time.Duration) // swapped out in tests
}

// DefaultBackoff waits attempt × 2 seconds between attempts.
func DefaultBackoff(attempt int) time.Duration {
	return time.Duration(attempt) * 2 * time.Second
}

func NewRetrier() *Retrier {
	return &Retrier{
		MaxAttempts: 3,
		Backoff:     DefaultBackoff,
		Sleep:       time.Sleep,
	}
}

// Do runs fn up to MaxAttempts times. After exhaustion the last
// ErrMatcherUnavailable is surfaced so callers can errors.Is on it.
func (r *Retrier) Do(ctx context.Context, fn func() error) error {
	maxAttempts := r.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if !errors.Is(err, ErrMatcherUnavailable) {
			return err
		}
		if attempt == maxAttempts {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.sleep(r.backoff(attempt))
	}
	return fmt.Errorf("exhausted %d attempts: %w", maxAttempts, err)
}

func (r *Retrier) backoff(attempt int) time.Duration {
	if r.Backoff == nil {
		return DefaultBackoff(attempt)
	}
	return r.Backoff(attempt)
}

func (r *Retrier) sleep(d time.Duration) {
	if r.Sleep == nil {
		time.Sleep(d)
		return
	}
	r.Sleep(d)
}
