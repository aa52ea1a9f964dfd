package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/autobuild/internal/adapters/logger"
	"go.trai.ch/autobuild/internal/core/ports"
)

const (
	// RunnerNodeID is the unique identifier for the command runner Graft node.
	RunnerNodeID graft.ID = "adapter.runner"
	// InspectorNodeID is the unique identifier for the inspector Graft node.
	InspectorNodeID graft.ID = "adapter.inspector"
)

func init() {
	graft.Register(graft.Node[ports.CommandRunner]{
		ID:        RunnerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.CommandRunner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log), nil
		},
	})

	graft.Register(graft.Node[ports.Inspector]{
		ID:        InspectorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Inspector, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log), nil
		},
	})
}
