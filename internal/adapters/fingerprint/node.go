package fingerprint

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/glean/internal/core/ports"
)

// NodeID is the unique identifier for the fingerprinter Graft node.
const NodeID graft.ID = "adapter.fingerprint"

func init() {
	graft.Register(graft.Node[ports.Fingerprinter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Fingerprinter, error) {
			return NewHasher(), nil
		},
	})
}
