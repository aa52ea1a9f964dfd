package toolkit

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/autobuild/internal/core/ports"
)

// NodeID is the unique identifier for the host toolkit Graft node.
const NodeID graft.ID = "adapter.toolkit"

func init() {
	graft.Register(graft.Node[ports.Toolkit]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Toolkit, error) {
			return New(), nil
		},
	})
}
