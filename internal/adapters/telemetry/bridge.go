package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// nodeAttribute is the span attribute naming the build node.
const nodeAttribute attribute.Key = "node"

// Bridge implements sdktrace.SpanProcessor to feed finished phase spans into Metrics.
type Bridge struct {
	metrics *Metrics
}

// NewBridge returns a new Bridge.
func NewBridge(metrics *Metrics) *Bridge {
	return &Bridge{
		metrics: metrics,
	}
}

// OnStart does nothing; phases are observed once they end.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd records the span duration under its name, for spans carrying a node attribute.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.metrics == nil || !s.SpanContext().IsValid() {
		return
	}

	var node string
	for _, kv := range s.Attributes() {
		if kv.Key == nodeAttribute {
			node = kv.Value.AsString()
			break
		}
	}
	if node == "" {
		return
	}

	b.metrics.ObservePhase(s.Name(), s.Status().Code == codes.Error, s.EndTime().Sub(s.StartTime()))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
