package hosted

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/shopfront-dev/shopfront/internal/store"
)

// One retry with a short constant pause covers the transient blips worth
// retrying; anything longer-lived should surface as unavailability.
func fallbackBackoff() retry.Backoff {
	return retry.WithMaxRetries(1, retry.NewConstant(100*time.Millisecond))
}

// withFallback runs the hosted primary and, when it fails for transport or
// service reasons, retries the operation on the relational secondary.
// Terminal contract answers (not found, duplicates, validation failures)
// pass through untouched from either path: a definitive "no" from the hosted
// service is the answer, not a reason to ask the database. When both paths
// fail the error wraps store.ErrBackendUnavailable.
func withFallback[T any](ctx context.Context, log *slog.Logger, op string,
	primary, secondary func(context.Context) (T, error)) (T, error) {

	out, err := primary(ctx)
	if err == nil || store.IsTerminal(err) {
		return out, err
	}

	log.Warn("hosted operation failed, falling back to relational path",
		slog.String("op", op),
		slog.String("error", err.Error()))

	var zero T
	rErr := retry.Do(ctx, fallbackBackoff(), func(ctx context.Context) error {
		v, err := secondary(ctx)
		if err != nil {
			if store.IsTerminal(err) {
				return err
			}
			return retry.RetryableError(err)
		}
		out = v
		return nil
	})
	if rErr != nil {
		if store.IsTerminal(rErr) {
			return zero, rErr
		}
		log.Error("relational fallback exhausted",
			slog.String("op", op),
			slog.String("error", rErr.Error()))
		return zero, fmt.Errorf("%w: %s: %w", store.ErrBackendUnavailable, op, rErr)
	}
	return out, nil
}

// execFallback adapts withFallback for operations with no return value.
func execFallback(ctx context.Context, log *slog.Logger, op string,
	primary, secondary func(context.Context) error) error {

	_, err := withFallback(ctx, log, op,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, primary(ctx) },
		func(ctx context.Context) (struct{}, error) { return struct{}{}, secondary(ctx) })
	return err
}
