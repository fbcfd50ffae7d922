package connector

import (
	"context"
	"time"

	dberrors "github.com/Konsultn-Engineering/dbconsole/errors"
)

// Retry calls fn until it succeeds, returns a non-retryable error, or
// opts.MaxRetries additional attempts have been made. It is a caller-side
// helper: the session layer itself never retries.
func Retry[T any](ctx context.Context, opts RetryConfig, fn func(context.Context) (T, error)) (T, error) {
	delay := opts.BaseDelay
	if delay == 0 {
		delay = time.Second
	}
	backoff := opts.Backoff
	if backoff < 1 {
		backoff = 2
	}

	var zero T
	for attempt := 0; ; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if attempt >= opts.MaxRetries || !dberrors.IsRetryable(err) {
			return zero, err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * backoff)
		if opts.MaxDelay > 0 && delay > opts.MaxDelay {
			delay = opts.MaxDelay
		}
	}
}
