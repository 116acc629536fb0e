package http

import (
	"context"
	"time"

	"github.com/fwojciec/jdoc2md"
)

// withRetry calls fn until it succeeds, waiting the given delays between
// attempts. Application errors such as ENOTFOUND are not retried.
func withRetry(ctx context.Context, delays []time.Duration, fn func() ([]byte, error)) ([]byte, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := fn()
		if err == nil {
			return body, nil
		}
		lastErr = err

		if jdoc2md.ErrorCode(err) != jdoc2md.EINTERNAL {
			return nil, err
		}

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
