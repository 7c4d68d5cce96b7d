package http

import (
	"context"
	"time"
)

// DefaultBackoffStep is the base delay of the linear backoff.
const DefaultBackoffStep = 150 * time.Millisecond

// WaitFunc blocks for d or until ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

// BackoffConfig controls how many times a request is attempted, how long each attempt may take
// and how long to wait between attempts. The wait after attempt n is Step * n; there is no wait
// after the last attempt.
type BackoffConfig struct {
	Attempts int
	Timeout  time.Duration
	Step     time.Duration
	Wait     WaitFunc
}

// NewBackoffConfig returns a config with the default step and a context aware sleep.
func NewBackoffConfig(attempts int, timeout time.Duration) *BackoffConfig {
	return &BackoffConfig{
		Attempts: attempts,
		Timeout:  timeout,
		Step:     DefaultBackoffStep,
		Wait:     SleepContext,
	}
}

// Delay returns the wait that follows the given (1-based) failed attempt.
func (b BackoffConfig) Delay(attempt int) time.Duration {
	return b.Step * time.Duration(attempt)
}

func (b *BackoffConfig) withDefaults() BackoffConfig {
	if b == nil {
		return BackoffConfig{Attempts: 1, Step: DefaultBackoffStep, Wait: SleepContext}
	}
	cfg := *b
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	if cfg.Step <= 0 {
		cfg.Step = DefaultBackoffStep
	}
	if cfg.Wait == nil {
		cfg.Wait = SleepContext
	}
	return cfg
}

// SleepContext waits for d, returning early with ctx.Err() when ctx is cancelled.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
