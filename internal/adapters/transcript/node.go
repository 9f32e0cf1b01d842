package transcript

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/glean/internal/core/ports"
)

// NodeID is the unique identifier for the transcript source Graft node.
const NodeID graft.ID = "adapter.transcript_source"

func init() {
	graft.Register(graft.Node[ports.TranscriptSource]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.TranscriptSource, error) {
			return NewSource(os.Stdin), nil
		},
	})
}
