// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/glean/internal/core/domain"
)

// GenerationRequest carries the fully-resolved inputs for one task's
// generation call. Inputs maps upstream task names to their artifact
// content; optional dependencies that did not succeed carry the
// domain.MissingInput marker.
type GenerationRequest struct {
	TaskID     string
	Transcript string
	Inputs     map[string]string
	Params     map[string]string
	Model      string
}

// GenerationClient executes one task's underlying generation request.
//
// Implementations must be safe for concurrent use, honor ctx cancellation
// and deadlines, and classify failures as domain.ErrGenerationRetryable or
// domain.ErrGenerationTerminal so the scheduler's retry policy only retries
// the transient class.
//
//go:generate go run go.uber.org/mock/mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks
type GenerationClient interface {
	Generate(ctx context.Context, req GenerationRequest) (domain.Artifact, error)
}
