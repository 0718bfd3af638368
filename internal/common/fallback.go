package common

import (
	"context"
	"log/slog"
)

// Sourced wraps a value with its provenance: AI-derived or the deterministic
// fallback. Err is set only for fatal provider failures (credentials,
// quota), which must abort the request instead of degrading.
type Sourced[T any] struct {
	Value        T
	FromFallback bool
	Err          error
}

// WithFallback runs the primary (AI-backed) operation and substitutes the
// deterministic fallback on any recoverable error. Recoverable failures are
// logged, not raised; fatal provider errors pass through untouched.
func WithFallback[T any](ctx context.Context, logger *slog.Logger, step string, primary func(context.Context) (T, error), fallback func() T) Sourced[T] {
	value, err := primary(ctx)
	if err == nil {
		return Sourced[T]{Value: value}
	}
	if IsFatalProvider(err) {
		return Sourced[T]{Err: err}
	}

	logger.Warn("falling back to deterministic path",
		"step", step,
		"error", err)
	return Sourced[T]{Value: fallback(), FromFallback: true}
}
