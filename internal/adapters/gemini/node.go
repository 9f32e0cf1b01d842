package gemini

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/glean/internal/adapters/logger"
	"go.trai.ch/glean/internal/core/ports"
)

// NodeID is the unique identifier for the generation client Graft node.
const NodeID graft.ID = "adapter.generation_client"

func init() {
	graft.Register(graft.Node[ports.GenerationClient]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.GenerationClient, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewClient(ctx, os.Getenv("GEMINI_API_KEY"), log)
		},
	})
}
