package scheduler

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.trai.ch/glean/internal/core/domain"
	"go.trai.ch/glean/internal/core/ports"
)

// generateWithRetry calls the generation client with bounded retries.
// Only the retryable error class is retried; terminal errors and context
// cancellation return immediately. Backoff doubles per attempt with
// jitter so concurrent retries don't stampede the provider.
func (s *Scheduler) generateWithRetry(
	ctx context.Context,
	req ports.GenerationRequest,
	opts Options,
) (domain.Artifact, error) {
	var lastErr error

	for attempt := 1; attempt <= opts.RetryAttempts; attempt++ {
		artifact, err := s.generator.Generate(ctx, req)
		if err == nil {
			return artifact, nil
		}
		lastErr = err

		if !errors.Is(err, domain.ErrGenerationRetryable) {
			return domain.Artifact{}, err
		}
		if attempt == opts.RetryAttempts {
			break
		}

		select {
		case <-time.After(backoffDelay(opts.RetryBaseDelay, attempt)):
		case <-ctx.Done():
			return domain.Artifact{}, ctx.Err()
		}
	}

	return domain.Artifact{}, lastErr
}

// backoffDelay returns base*2^(attempt-1) with up to 25% jitter.
func backoffDelay(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		base = 500 * time.Millisecond
	}
	delay := base << (attempt - 1)
	jitter := time.Duration(rand.Int64N(int64(delay)/4 + 1))
	return delay + jitter
}
