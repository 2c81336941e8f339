package tasks

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/sadanandam5592/orca/pkg/logger"
)

type RetryableTask[S any] interface {
	TryExecute(ctx context.Context, stage S) (TaskResult, error)
}

type RetryOptions struct {
	MaxRetries uint64
	Backoff    time.Duration
	MaxBackoff time.Duration
}

func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxRetries: 5,
		Backoff:    time.Second,
		MaxBackoff: 30 * time.Second,
	}
}

// Execute runs task until it succeeds, fails with an error not marked with
// Retryable, or runs out of retries. Failed runs report StatusTerminal.
func Execute[S any](ctx context.Context, task RetryableTask[S], stage S, opts RetryOptions) (TaskResult, error) {
	log := logger.FromContext(ctx)
	if opts.Backoff <= 0 {
		opts.Backoff = DefaultRetryOptions().Backoff
	}

	backoff := retry.NewExponential(opts.Backoff)
	if opts.MaxBackoff > 0 {
		backoff = retry.WithCappedDuration(opts.MaxBackoff, backoff)
	}
	backoff = retry.WithMaxRetries(opts.MaxRetries, backoff)

	var (
		result  TaskResult
		attempt int
	)
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		r, err := task.TryExecute(ctx, stage)
		if err != nil {
			if IsRetryable(err) {
				log.Warn("task attempt failed", "attempt", attempt, "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		log.Error("task failed", "attempts", attempt, "error", err)
		return TaskResult{
			Status:  StatusTerminal,
			Context: map[string]any{},
			Outputs: map[string]any{},
		}, err
	}
	return result, nil
}
