package qverify

import (
	"context"
	"math"
	"time"
)

// RetryPolicy defines retry behavior
type RetryPolicy struct {
	MaxAttempts int
	Strategy    RetryStrategy
	Filter      func(error) bool
}

// RetryStrategy defines the interface for retry behavior
type RetryStrategy interface {
	NextDelay(attempt int) time.Duration
}

// ExponentialBackoff implements RetryStrategy
type ExponentialBackoff struct {
	Initial time.Duration
}

func (eb *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	return eb.Initial * time.Duration(math.Pow(2, float64(attempt-1)))
}

/*
Do calls fn until it succeeds, the attempts run out, Filter rejects the
error, or ctx is done. fn receives the zero-based attempt number. The last
error from fn is returned, or ctx.Err() if the wait was cut short.
*/
func (p *RetryPolicy) Do(ctx context.Context, fn func(attempt int) error) error {
	attempts := max(p.MaxAttempts, 1)

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 && p.Strategy != nil {
			timer := time.NewTimer(p.Strategy.NextDelay(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		if err = fn(attempt); err == nil {
			return nil
		}

		if ctx.Err() != nil {
			return err
		}

		if p.Filter != nil && !p.Filter(err) {
			break
		}
	}

	return err
}
