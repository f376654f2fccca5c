// Package retry runs operations against remote services with exponential
// backoff, honouring server-suggested delays and context cancellation.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

// Config holds retry configuration.
type Config struct {
	MaxAttempts  int           // Maximum number of attempts (including initial attempt)
	InitialDelay time.Duration // Delay before the first retry
	MaxDelay     time.Duration // Upper bound for any single delay
	Multiplier   float64       // Growth factor between delays
	Jitter       float64       // Fraction of the delay randomised in both directions (0.25 = ±25%)
}

// DefaultConfig retries up to five times with ±25% jitter.
var DefaultConfig = Config{
	MaxAttempts:  5,
	InitialDelay: 100 * time.Millisecond,
	MaxDelay:     10 * time.Second,
	Multiplier:   2.0,
	Jitter:       0.25,
}

// IsRetryable determines if an error should trigger a retry.
type IsRetryable func(error) bool

// Delayer is implemented by errors that carry a server-suggested delay,
// such as a Retry-After header. A positive delay replaces the computed backoff.
type Delayer interface {
	RetryDelay() time.Duration
}

// Backoff returns the delay before retry number attempt (zero-based),
// without jitter: InitialDelay * Multiplier^attempt, capped at MaxDelay.
func (c Config) Backoff(attempt int) time.Duration {
	delay := float64(c.InitialDelay)
	for i := 0; i < attempt; i++ {
		delay *= c.Multiplier
		if c.MaxDelay > 0 && delay > float64(c.MaxDelay) {
			return c.MaxDelay
		}
	}
	if c.MaxDelay > 0 && delay > float64(c.MaxDelay) {
		return c.MaxDelay
	}
	return time.Duration(delay)
}

func (c Config) jittered(d time.Duration) time.Duration {
	if c.Jitter <= 0 || d <= 0 {
		return d
	}
	span := float64(d) * c.Jitter
	out := time.Duration(float64(d) + (rand.Float64()*2-1)*span)
	if out <= 0 {
		return c.InitialDelay
	}
	return out
}

// WithRetry executes fn until it succeeds, returns a non-retryable error,
// exhausts MaxAttempts or ctx is done.
func WithRetry[T any](
	ctx context.Context,
	config Config,
	isRetryable IsRetryable,
	fn func(ctx context.Context) (T, error),
) (T, error) {
	var zero T
	var lastErr error

	attempts := config.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, fmt.Errorf("context cancelled: %w", err)
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return zero, err
		}
		if attempt == attempts-1 {
			break
		}

		delay := config.jittered(config.Backoff(attempt))
		var d Delayer
		if errors.As(err, &d) && d.RetryDelay() > 0 {
			delay = d.RetryDelay()
		}

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		}
	}

	return zero, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// WithSimpleRetry uses DefaultConfig.
func WithSimpleRetry[T any](
	ctx context.Context,
	fn func(ctx context.Context) (T, error),
	isRetryable IsRetryable,
) (T, error) {
	return WithRetry(ctx, DefaultConfig, isRetryable, fn)
}
