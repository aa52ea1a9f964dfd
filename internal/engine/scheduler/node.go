package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/autobuild/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/autobuild/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/autobuild/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/autobuild/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/autobuild/internal/core/ports"
	"go.trai.ch/autobuild/internal/engine/gnu"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			gnu.NodeID,
			cas.NodeID,
			fs.HasherNodeID,
			fs.VerifierNodeID,
			telemetry.TracerNodeID,
			telemetry.MetricsNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			factory, err := graft.Dep[ports.BuilderFactory](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.BuildInfoStore](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			verifier, err := graft.Dep[ports.Verifier](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
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

			return NewScheduler(factory, store, hasher, verifier, tracer, metrics, log), nil
		},
	})
}
