package ports

import (
	"context"

	"go.trai.ch/glean/internal/core/domain"
)

// TranscriptSource supplies the raw transcript text and a stable video
// identifier for a video reference (a transcript file path, or "-" for stdin).
//
//go:generate go run go.uber.org/mock/mockgen -source=transcript.go -destination=mocks/mock_transcript.go -package=mocks
type TranscriptSource interface {
	Fetch(ctx context.Context, ref string) (domain.Transcript, error)
}
