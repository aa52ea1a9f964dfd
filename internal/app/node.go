package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/autobuild/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/autobuild/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/autobuild/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/autobuild/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/autobuild/internal/core/ports"
	"go.trai.ch/autobuild/internal/engine/gnu"
	"go.trai.ch/autobuild/internal/engine/scheduler"
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
			scheduler.NodeID,
			gnu.NodeID,
			fs.HasherNodeID,
			telemetry.MetricsNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	factory, err := graft.Dep[ports.BuilderFactory](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	metrics, err := graft.Dep[*telemetry.Metrics](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, sched, factory, hasher, metrics, log), nil
}
