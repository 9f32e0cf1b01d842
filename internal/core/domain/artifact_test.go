package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/glean/internal/core/domain"
)

func TestResult_Finalize(t *testing.T) {
	taskA := domain.NewInternedString("a")
	taskB := domain.NewInternedString("b")

	tests := []struct {
		name      string
		statuses  map[domain.InternedString]domain.TaskStatus
		cancelled bool
		want      domain.Outcome
	}{
		{
			name: "all succeeded",
			statuses: map[domain.InternedString]domain.TaskStatus{
				taskA: domain.StatusSucceeded,
				taskB: domain.StatusSucceeded,
			},
			want: domain.OutcomeSucceeded,
		},
		{
			name: "failure yields partial",
			statuses: map[domain.InternedString]domain.TaskStatus{
				taskA: domain.StatusSucceeded,
				taskB: domain.StatusFailed,
			},
			want: domain.OutcomePartial,
		},
		{
			name: "skip yields partial",
			statuses: map[domain.InternedString]domain.TaskStatus{
				taskA: domain.StatusSucceeded,
				taskB: domain.StatusSkipped,
			},
			want: domain.OutcomePartial,
		},
		{
			name: "cancellation wins",
			statuses: map[domain.InternedString]domain.TaskStatus{
				taskA: domain.StatusSucceeded,
				taskB: domain.StatusCancelled,
			},
			cancelled: true,
			want:      domain.OutcomeCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := domain.NewResult("req", "vid")
			for name, status := range tt.statuses {
				r.Statuses[name] = status
			}
			r.Finalize(tt.cancelled)
			assert.Equal(t, tt.want, r.Outcome)
		})
	}
}

func TestResult_FinalizeCollectsFailedAndSkipped(t *testing.T) {
	r := domain.NewResult("req", "vid")
	r.Statuses[domain.NewInternedString("a")] = domain.StatusFailed
	r.Statuses[domain.NewInternedString("b")] = domain.StatusSkipped
	r.Statuses[domain.NewInternedString("c")] = domain.StatusSucceeded

	r.Finalize(false)

	assert.Equal(t, []domain.InternedString{domain.NewInternedString("a")}, r.Failed)
	assert.Equal(t, []domain.InternedString{domain.NewInternedString("b")}, r.Skipped)
}
