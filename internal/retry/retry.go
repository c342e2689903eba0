package retry

import (
	"context"
	"fmt"
	"time"
)

type Config struct {
	MaxAttempts int
	Delay       time.Duration
	MaxDelay    time.Duration // cap on the grown delay; 0 means uncapped
	Backoff     bool          // linear backoff: attempt * Delay
}

// Do runs fn up to MaxAttempts times, sleeping between attempts.
// The context cancels the wait between attempts, not fn itself.
func Do(ctx context.Context, config Config, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if err := fn(); err != nil {
			lastErr = err

			if attempt == config.MaxAttempts {
				return fmt.Errorf("failed after %d attempts: %w", config.MaxAttempts, err)
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(config.wait(attempt)):
				continue
			}
		}
		return nil
	}

	return lastErr
}

// wait returns the pause after the given failed attempt.
func (c Config) wait(attempt int) time.Duration {
	delay := c.Delay
	if c.Backoff {
		delay = time.Duration(attempt) * c.Delay
	}
	if c.MaxDelay > 0 && delay > c.MaxDelay {
		delay = c.MaxDelay
	}
	return delay
}
