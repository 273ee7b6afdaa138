package api

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/tilinna/clock"
)

// RetryPolicy configures retry behavior for failed HTTP requests.
//
// Delays are constant: every retry waits Delay. Waiting uses the clock attached
// to the request context (see github.com/tilinna/clock), which lets tests drive
// retries with a mock clock.
type RetryPolicy struct {
	// MaxRetries is the number of attempts allowed after the first one.
	MaxRetries int
	// Delay is the wait between consecutive attempts.
	Delay time.Duration
	// RetryableOn determines if a status code should trigger a retry.
	RetryableOn func(statusCode int) bool
}

// NewRetryPolicy returns a constant-delay policy retrying 5xx and 429 responses.
func NewRetryPolicy(maxRetries int, delay time.Duration) *RetryPolicy {
	return &RetryPolicy{
		MaxRetries:  maxRetries,
		Delay:       delay,
		RetryableOn: IsRetryableStatus,
	}
}

// DefaultRetryPolicy returns the default retry policy.
func DefaultRetryPolicy() *RetryPolicy {
	return NewRetryPolicy(DefaultRetryCount, DefaultRetryDelay)
}

// IsRetryableStatus reports whether a status code is a transient failure:
// 429 Too Many Requests or any 5xx.
func IsRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || (statusCode >= 500 && statusCode <= 599)
}

// ShouldRetry determines if a response status should be retried.
func (r *RetryPolicy) ShouldRetry(statusCode int) bool {
	if r.RetryableOn == nil {
		return IsRetryableStatus(statusCode)
	}
	return r.RetryableOn(statusCode)
}

// newBackOff returns a fresh schedule for one logical call. It yields Delay
// MaxRetries times and then backoff.Stop.
func (r *RetryPolicy) newBackOff() backoff.BackOff {
	// WithMaxRetries treats 0 as unlimited.
	if r.MaxRetries <= 0 {
		return &backoff.StopBackOff{}
	}
	return backoff.WithMaxRetries(backoff.NewConstantBackOff(r.Delay), uint64(r.MaxRetries))
}

// Wait blocks for d on the context's clock, or until ctx is done.
func (r *RetryPolicy) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := clock.NewTimer(ctx, d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
