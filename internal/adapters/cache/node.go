package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/glean/internal/adapters/config"
	"go.trai.ch/glean/internal/core/ports"
)

// NodeID is the unique identifier for the result cache Graft node.
const NodeID graft.ID = "adapter.result_cache"

func init() {
	graft.Register(graft.Node[ports.ResultCache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.ResultCache, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			settings, err := loader.Load(".")
			if err != nil {
				return nil, err
			}

			return NewStore(settings.CacheDir, settings.CacheSizeBudget, clockwork.NewRealClock())
		},
	})
}
