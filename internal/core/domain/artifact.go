package domain

import "time"

// MissingInput is the sentinel value a task receives for an optional
// dependency that failed or was skipped. Prompt builders render it as an
// absent section rather than blocking the dependent task.
const MissingInput = "<missing>"

// Artifact is the opaque output of one generative task.
type Artifact struct {
	TaskName  string    `json:"task_name"`
	Content   string    `json:"content"`
	Model     string    `json:"model,omitzero"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Transcript is the raw input supplied by a TranscriptSource.
type Transcript struct {
	VideoID string
	Text    string
}

// Outcome classifies how an analysis run ended.
type Outcome string

const (
	// OutcomeSucceeded means every task succeeded.
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomePartial means at least one task failed or was skipped while others succeeded.
	OutcomePartial Outcome = "partially succeeded"
	// OutcomeCancelled means the run was cancelled before completion.
	OutcomeCancelled Outcome = "cancelled"
)

// Result holds the per-task outcome of one analysis run. Completed sibling
// work is always preserved, even when other branches failed.
type Result struct {
	RequestID string
	VideoID   string
	Statuses  map[InternedString]TaskStatus
	Artifacts map[InternedString]Artifact
	Failed    []InternedString
	Skipped   []InternedString
	Outcome   Outcome
}

// NewResult creates an empty Result for the given request and video.
func NewResult(requestID, videoID string) *Result {
	return &Result{
		RequestID: requestID,
		VideoID:   videoID,
		Statuses:  make(map[InternedString]TaskStatus),
		Artifacts: make(map[InternedString]Artifact),
	}
}

// Finalize derives Failed, Skipped and the overall Outcome from the
// recorded statuses. cancelled forces OutcomeCancelled regardless of how
// many tasks resolved before the signal.
func (r *Result) Finalize(cancelled bool) {
	r.Failed = r.Failed[:0]
	r.Skipped = r.Skipped[:0]
	for name, status := range r.Statuses {
		switch status {
		case StatusFailed:
			r.Failed = append(r.Failed, name)
		case StatusSkipped:
			r.Skipped = append(r.Skipped, name)
		}
	}

	switch {
	case cancelled:
		r.Outcome = OutcomeCancelled
	case len(r.Failed) > 0 || len(r.Skipped) > 0:
		r.Outcome = OutcomePartial
	default:
		r.Outcome = OutcomeSucceeded
	}
}
