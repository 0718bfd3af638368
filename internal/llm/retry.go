package llm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/D-dracula/merchantlens/internal/common"
)

// retryClient decorates a provider client with the bounded retry policy:
// a fixed attempt count, wait-then-retry on rate limits honoring the
// provider's advertised delay, and fallback-model substitution once a
// transient error has been observed on the primary model.
type retryClient struct {
	inner         Client
	fallbackModel string
	opts          common.RetryOptions
}

func newRetryClient(inner Client, cfg Config) Client {
	opts := common.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if opts.MaxAttempts == 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialDelay == 0 {
		opts.InitialDelay = time.Second
	}

	return &retryClient{
		inner:         inner,
		fallbackModel: cfg.FallbackModel,
		opts:          opts,
	}
}

func (c *retryClient) Complete(ctx context.Context, req Request) (Response, error) {
	var resp Response
	attempt := 0

	err := common.WithRetry(ctx, func() error {
		attempt++
		// After the first transient failure, substitute the fallback
		// model for the remaining attempts.
		if attempt > 1 && c.fallbackModel != "" && req.Model != c.fallbackModel {
			slog.Debug("substituting fallback model",
				"attempt", attempt,
				"model", c.fallbackModel)
			req.Model = c.fallbackModel
		}

		var callErr error
		resp, callErr = c.inner.Complete(ctx, req)
		return callErr
	}, c.opts)

	if err != nil {
		// Surface the root cause, not the retry bookkeeping, for the
		// non-retryable taxonomy checks.
		var retryableErr *common.RetryableError
		if errors.As(err, &retryableErr) && !retryableErr.Retryable {
			return Response{}, retryableErr.Err
		}
		return Response{}, err
	}
	return resp, nil
}
