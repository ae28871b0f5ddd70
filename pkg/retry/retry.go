// Package retry provides a bounded retry policy with exponential backoff for
// units of work that can fail with transient conflict errors.
package retry

import (
	"context"
	"log/slog"
	"time"
)

// Classifier reports whether an error warrants another attempt.
type Classifier func(error) bool

// Policy re-executes a unit of work up to MaxAttempts times when it fails
// with a retryable error, sleeping an exponentially growing delay between
// attempts. Non-retryable errors propagate immediately; exhausting the
// attempt budget surfaces the last retryable error unchanged.
type Policy struct {
	// MaxAttempts is the total attempt budget, first attempt included.
	MaxAttempts int
	// InitialDelay is the wait before the second attempt.
	InitialDelay time.Duration
	// Multiplier scales the delay after every failed attempt.
	Multiplier int

	Logger *slog.Logger
}

// Default mirrors the tuning of the transfer path: 5 attempts with
// 100, 200, 400, 800 ms waits in between.
func Default(logger *slog.Logger) Policy {
	return Policy{
		MaxAttempts:  5,
		InitialDelay: 100 * time.Millisecond,
		Multiplier:   2,
		Logger:       logger,
	}
}

// Do executes op, retrying while retryable classifies the failure as
// transient. The wait between attempts respects ctx cancellation.
func (p Policy) Do(
	ctx context.Context,
	retryable Classifier,
	op func(ctx context.Context) error,
) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.InitialDelay
	var err error
	for attempt := 1; ; attempt++ {
		err = op(ctx)
		if err == nil || !retryable(err) {
			return err
		}
		if attempt >= attempts {
			if p.Logger != nil {
				p.Logger.Warn("retry budget exhausted",
					"attempts", attempt, "error", err)
			}
			return err
		}
		if p.Logger != nil {
			p.Logger.Debug("retrying after conflict",
				"attempt", attempt, "delay", delay, "error", err)
		}
		if waitErr := sleep(ctx, delay); waitErr != nil {
			return waitErr
		}
		delay *= time.Duration(p.Multiplier)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
