package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/autobuild/internal/core/ports"
)

const (
	// MetricsNodeID is the unique identifier for the Prometheus metrics Graft node.
	MetricsNodeID graft.ID = "adapter.metrics"
	// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
	TracerNodeID graft.ID = "adapter.telemetry"

	instrumentationName = "go.trai.ch/autobuild"
)

func init() {
	graft.Register(graft.Node[*Metrics]{
		ID:        MetricsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Metrics, error) {
			return NewMetrics(), nil
		},
	})

	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{MetricsNodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			metrics, err := graft.Dep[*Metrics](ctx)
			if err != nil {
				return nil, err
			}
			provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(NewBridge(metrics)))
			return NewOTelTracer(provider, instrumentationName), nil
		},
	})
}
