package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/glean/internal/adapters/cache"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/glean/internal/adapters/fingerprint" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/glean/internal/adapters/gemini"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/glean/internal/adapters/logger"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/glean/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/glean/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			gemini.NodeID,
			cache.NodeID,
			fingerprint.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			generator, err := graft.Dep[ports.GenerationClient](ctx)
			if err != nil {
				return nil, err
			}

			resultCache, err := graft.Dep[ports.ResultCache](ctx)
			if err != nil {
				return nil, err
			}

			fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(generator, resultCache, fingerprinter, tracer, log), nil
		},
	})
}
