package matcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetrierSucceedsAfterTransientFailures(t *testing.T) {
	var slept []time.Duration
	r := &Retrier{
		MaxAttempts: 3,
		Backoff:     DefaultBackoff,
		Sleep:       func(d time.Duration) { slept = append(slept, d) },
	}

	calls := 0
	err := r.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return ErrMatcherUnavailable
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	// attempt × 2 seconds: 2s after the first failure, 4s after the second
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, slept)

	var total time.Duration
	for _, d := range slept {
		total += d
	}
	assert.Equal(t, 6*time.Second, total)
}

func TestRetrierExhaustsAttempts(t *testing.T) {
	r := &Retrier{MaxAttempts: 3, Sleep: func(time.Duration) {}}

	calls := 0
	err := r.Do(context.Background(), func() error {
		calls++
		return ErrMatcherUnavailable
	})

	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, ErrMatcherUnavailable)
}

func TestRetrierDoesNotRetryFatalErrors(t *testing.T) {
	r := &Retrier{MaxAttempts: 3, Sleep: func(time.Duration) {
		t.Fatal("should not sleep on a fatal error")
	}}

	fatal := &Error{Status: 400, Message: "bad request"}
	calls := 0
	err := r.Do(context.Background(), func() error {
		calls++
		return fatal
	})

	assert.Equal(t, 1, calls)
	var svcErr *Error
	assert.True(t, errors.As(err, &svcErr))
}

func TestRetrierStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Retrier{MaxAttempts: 3, Sleep: func(time.Duration) {}}

	calls := 0
	err := r.Do(ctx, func() error {
		calls++
		cancel()
		return ErrMatcherUnavailable
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
}
