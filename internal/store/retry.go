package store

import (
	"context"
	"errors"
	"math"
	"time"
)

// RetryConfig controls the retry-with-backoff policy for store calls.
type RetryConfig struct {
	// MaxAttempts is the total number of tries, first call included.
	MaxAttempts int

	// Cooldown is the base delay in seconds before the first retry.
	Cooldown float64

	// Exponent grows the delay per attempt: delay = Cooldown * Exponent^n.
	Exponent float64
}

// DefaultRetryConfig returns the policy used when settings carry none:
// five attempts with delays growing from half a second.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 5,
		Cooldown:    0.5,
		Exponent:    2.0,
	}
}

// Retry runs op until it succeeds, the attempts are exhausted, the error
// is terminal, or ctx is done. The last error is returned.
//
// A StatusError in the 4xx range aborts immediately: a request the store
// rejects as malformed or unauthorized will not become valid by repeating
// it. Everything else (transport errors, 5xx, timeouts) is considered
// transient and retried.
func Retry(ctx context.Context, cfg RetryConfig, op func(context.Context) error) error {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for tries := 0; tries < attempts; tries++ {
		if tries > 0 {
			if waitErr := waitForRetry(ctx, cfg, tries-1); waitErr != nil {
				return err
			}
		}

		err = op(ctx)
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
	}
	return err
}

// retryable reports whether the error is worth another attempt.
func retryable(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// waitForRetry sleeps the exponentially growing cooldown, honoring ctx.
func waitForRetry(ctx context.Context, cfg RetryConfig, tries int) error {
	cooldown := cfg.Cooldown * math.Pow(cfg.Exponent, float64(tries))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
		return nil
	}
}
