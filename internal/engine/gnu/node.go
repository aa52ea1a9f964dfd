package gnu

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/autobuild/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/autobuild/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/autobuild/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/autobuild/internal/adapters/toolkit"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/autobuild/internal/core/ports"
)

// NodeID is the unique identifier for the builder factory Graft node.
const NodeID graft.ID = "engine.gnu.factory"

func init() {
	graft.Register(graft.Node[ports.BuilderFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.RunnerNodeID,
			shell.InspectorNodeID,
			toolkit.NodeID,
			fs.GuardNodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (ports.BuilderFactory, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}

			inspector, err := graft.Dep[ports.Inspector](ctx)
			if err != nil {
				return nil, err
			}

			tk, err := graft.Dep[ports.Toolkit](ctx)
			if err != nil {
				return nil, err
			}

			guard, err := graft.Dep[ports.WriteGuard](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewFactory(runner, inspector, tk, guard, tracer), nil
		},
	})
}
