package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/glean/internal/adapters/cache"      //nolint:depguard // Wired in app layer
	"go.trai.ch/glean/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/glean/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/glean/internal/adapters/transcript" //nolint:depguard // Wired in app layer
	"go.trai.ch/glean/internal/core/ports"
	"go.trai.ch/glean/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			transcript.NodeID,
			cache.NodeID,
			scheduler.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			transcripts, err := graft.Dep[ports.TranscriptSource](ctx)
			if err != nil {
				return nil, err
			}

			resultCache, err := graft.Dep[ports.ResultCache](ctx)
			if err != nil {
				return nil, err
			}

			sched, err := graft.Dep[*scheduler.Scheduler](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, transcripts, resultCache, sched, log), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
			cache.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	resultCache, err := graft.Dep[ports.ResultCache](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:          application,
		Logger:       log,
		ConfigLoader: loader,
		Cache:        resultCache,
	}, nil
}
