// Package resilience provides the retry loop used to wait for local
// services, such as the config inspector, to come up.
package resilience

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy defines the retry behavior for operations.
type RetryPolicy struct {
	// Attempts is the total number of calls, including the first one.
	Attempts int

	// Interval separates consecutive calls.
	Interval time.Duration

	// RetryableErrors restricts retries to errors matching one of these.
	// If empty, every error is retried.
	RetryableErrors []error
}

// FixedPolicy returns a policy that makes attempts calls spaced by interval.
func FixedPolicy(attempts int, interval time.Duration, retryable ...error) RetryPolicy {
	return RetryPolicy{
		Attempts:        max(attempts, 1),
		Interval:        interval,
		RetryableErrors: retryable,
	}
}

// Retry executes fn until it succeeds, returns a non-retryable error, the
// attempts run out or ctx is done. Only ctx ends the loop early; errors
// returned by fn, deadline errors included, count as failed attempts.
// It returns the error from the last attempt when all attempts fail.
func Retry(ctx context.Context, policy RetryPolicy, fn func() error) error {
	var lastErr error
	attempts := max(policy.Attempts, 1)

	for attempt := range attempts {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		lastErr = err

		if !isRetryable(err, policy.RetryableErrors) {
			return err
		}

		if attempt < attempts-1 {
			timer := time.NewTimer(policy.Interval)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	return lastErr
}

func isRetryable(err error, retryable []error) bool {
	if len(retryable) == 0 {
		return true
	}
	for _, target := range retryable {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
