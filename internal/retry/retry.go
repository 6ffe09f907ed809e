// Package retry centralises the retry policy for remote AI calls.
package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultAttempts = 3
	defaultDelay    = 200 * time.Millisecond
	defaultMaxDelay = 3 * time.Second
)

// Config holds retry tuning for one class of remote call.
type Config struct {
	// Attempts is the total number of tries, including the first.
	Attempts uint

	// Delay is the initial backoff delay.
	Delay time.Duration

	// MaxDelay caps the backoff delay.
	MaxDelay time.Duration
}

// DefaultConfig returns the policy used for AI endpoints.
func DefaultConfig() Config {
	return Config{
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		MaxDelay: defaultMaxDelay,
	}
}

// Options expands the config into retry-go options bound to ctx.
// Cancellation stops further attempts.
func (c Config) Options(ctx context.Context) []retry.Option {
	return []retry.Option{
		retry.Attempts(c.Attempts),
		retry.Delay(c.Delay),
		retry.MaxDelay(c.MaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	}
}

// Do runs fn under the default policy.
func Do(ctx context.Context, fn retry.RetryableFunc) error {
	return retry.Do(fn, DefaultConfig().Options(ctx)...)
}
