package ports

import (
	"context"
	"time"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span represents a unit of work.
type Span interface {
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// NodeOutcome is how a scheduled node finished.
type NodeOutcome string

const (
	// OutcomeBuilt means the node executed successfully.
	OutcomeBuilt NodeOutcome = "built"
	// OutcomeCached means the node was skipped because nothing changed.
	OutcomeCached NodeOutcome = "cached"
	// OutcomeFailed means the node execution failed.
	OutcomeFailed NodeOutcome = "failed"
)

// Metrics records scheduler counters.
type Metrics interface {
	// ObserveNode records the outcome and duration of one node.
	ObserveNode(node string, outcome NodeOutcome, d time.Duration)
}
