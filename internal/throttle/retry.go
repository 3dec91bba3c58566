package throttle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Backoff schedule for retried failure classes.
const (
	// rateLimitBackoff is the fixed wait after a 429 response.
	rateLimitBackoff = 30 * time.Second
	// serverErrorBackoffStep scales the wait after a 5xx response:
	// (attempt+1) * step.
	serverErrorBackoffStep = 10 * time.Second
	// transportBackoffStep scales the wait after a network failure:
	// (attempt+1) * step.
	transportBackoffStep = 5 * time.Second
)

// Retrier bounds and paces retries of remote calls. The zero value is not
// usable; construct with NewRetrier.
type Retrier struct {
	maxRetries int

	sleep func(ctx context.Context, d time.Duration) error // overridable in tests
}

// NewRetrier returns a Retrier allowing maxRetries extra attempts after the
// first call (so maxRetries+1 calls in total).
func NewRetrier(maxRetries int) *Retrier {
	return &Retrier{
		maxRetries: maxRetries,
		sleep:      sleepContext,
	}
}

// Do invokes call and retries transient failures according to the failure
// class:
//
//   - 429 response: wait a fixed 30s, retry; once retries are exhausted the
//     terminal [ErrRateLimited] is returned.
//   - 5xx response: wait (attempt+1)*10s, retry; exhaustion returns the last
//     response error.
//   - any other HTTP response: returned immediately, client errors are not
//     retried.
//   - non-HTTP error (network failure): wait (attempt+1)*5s, retry;
//     exhaustion returns [ErrServiceUnavailable].
//
// op names the operation in wrapped errors. The context cancels waits between
// attempts but does not interrupt an in-flight call.
func Do[T any](ctx context.Context, r *Retrier, op string, call func() (T, error)) (T, error) {
	var zero T

	for attempt := 0; ; attempt++ {
		result, err := call()
		if err == nil {
			return result, nil
		}

		var httpErr *HTTPError
		switch {
		case errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests:
			if attempt >= r.maxRetries {
				return zero, fmt.Errorf("%s: %w", op, ErrRateLimited)
			}
			if werr := r.sleep(ctx, rateLimitBackoff); werr != nil {
				return zero, fmt.Errorf("%s: %w", op, werr)
			}

		case errors.As(err, &httpErr) && httpErr.StatusCode >= http.StatusInternalServerError:
			if attempt >= r.maxRetries {
				return zero, fmt.Errorf("%s: %w", op, err)
			}
			if werr := r.sleep(ctx, time.Duration(attempt+1)*serverErrorBackoffStep); werr != nil {
				return zero, fmt.Errorf("%s: %w", op, werr)
			}

		case errors.As(err, &httpErr):
			return zero, fmt.Errorf("%s: %w", op, err)

		default:
			if attempt >= r.maxRetries {
				return zero, fmt.Errorf("%s: %w", op, ErrServiceUnavailable)
			}
			if werr := r.sleep(ctx, time.Duration(attempt+1)*transportBackoffStep); werr != nil {
				return zero, fmt.Errorf("%s: %w", op, werr)
			}
		}
	}
}

// sleepContext waits for d or until the context is done, whichever comes
// first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
