package scheduler

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/glean/internal/core/domain"
	"go.trai.ch/glean/internal/core/ports"
	"go.trai.ch/glean/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestGenerateWithRetry_TerminalErrorNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := mocks.NewMockGenerationClient(ctrl)
	gen.EXPECT().Generate(gomock.Any(), gomock.Any()).
		Return(domain.Artifact{}, domain.ErrGenerationTerminal).Times(1)

	s := NewScheduler(gen, nil, nil, nil, nil)
	_, err := s.generateWithRetry(context.Background(), ports.GenerationRequest{TaskID: "a"}, Options{
		RetryAttempts:  5,
		RetryBaseDelay: time.Millisecond,
	})
	assert.ErrorIs(t, err, domain.ErrGenerationTerminal)
}

func TestGenerateWithRetry_CancelledDuringBackoff(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		gen := mocks.NewMockGenerationClient(ctrl)
		gen.EXPECT().Generate(gomock.Any(), gomock.Any()).
			Return(domain.Artifact{}, domain.ErrGenerationRetryable).Times(1)

		ctx, cancel := context.WithCancel(context.Background())
		s := NewScheduler(gen, nil, nil, nil, nil)

		errCh := make(chan error)
		go func() {
			_, err := s.generateWithRetry(ctx, ports.GenerationRequest{TaskID: "a"}, Options{
				RetryAttempts:  3,
				RetryBaseDelay: time.Hour,
			})
			errCh <- err
		}()

		// The retry is parked in its backoff sleep once everything blocks.
		synctest.Wait()
		cancel()

		err := <-errCh
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBackoffDelay(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := 1; attempt <= 4; attempt++ {
		delay := backoffDelay(base, attempt)
		lower := base << (attempt - 1)
		upper := lower + lower/4
		assert.GreaterOrEqual(t, delay, lower, "attempt %d", attempt)
		assert.LessOrEqual(t, delay, upper, "attempt %d", attempt)
	}
}

func TestBackoffDelay_ZeroBase(t *testing.T) {
	delay := backoffDelay(0, 1)
	assert.GreaterOrEqual(t, delay, 500*time.Millisecond)
}
