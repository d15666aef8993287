package service

import (
	"context"
	"log"
	"time"
)

// RetryPolicy implements the two-tier backoff used for all provider
// calls. Rate-limit errors back off from a large floor because the
// provider's quota window resets on the order of a minute; starting at
// sub-second intervals would burn the retry budget before the window
// rolls over. Other transient errors use a short linear backoff.
type RetryPolicy struct {
	MaxRateLimitRetries int
	MaxTransientRetries int
	RateLimitFloor      time.Duration
	RateLimitStep       time.Duration // doubled per rate-limit retry
	TransientStep       time.Duration // multiplied by attempt number

	// Sleep is injected so tests can observe delays without waiting.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy returns the production policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRateLimitRetries: 5,
		MaxTransientRetries: 3,
		RateLimitFloor:      30 * time.Second,
		RateLimitStep:       5 * time.Second,
		TransientStep:       2 * time.Second,
		Sleep:               sleepContext,
	}
}

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

// Do runs op, retrying per the policy. Fatal errors and exhausted
// retry budgets surface the last error to the caller.
func (p RetryPolicy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	rateLimitRetries := 0
	transientRetries := 0
	for {
		err := op(ctx)
		if err == nil {
			return nil
		}

		switch ClassifyError(err) {
		case ErrKindRateLimited:
			if rateLimitRetries >= p.MaxRateLimitRetries {
				return err
			}
			rateLimitRetries++
			delay := p.RateLimitFloor + p.RateLimitStep<<(rateLimitRetries-1)
			log.Printf("Warning: rate limit hit, pausing %s before retry %d/%d", delay, rateLimitRetries, p.MaxRateLimitRetries)
			if serr := sleep(ctx, delay); serr != nil {
				return serr
			}
		case ErrKindTransient:
			if transientRetries >= p.MaxTransientRetries {
				return err
			}
			transientRetries++
			delay := p.TransientStep * time.Duration(transientRetries)
			log.Printf("Warning: transient error (%v), retrying in %s", err, delay)
			if serr := sleep(ctx, delay); serr != nil {
				return serr
			}
		default:
			return err
		}
	}
}
