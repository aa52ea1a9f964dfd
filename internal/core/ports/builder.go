package ports

import (
	"context"

	"go.trai.ch/autobuild/internal/core/domain"
)

// Builder is one integration of an external build tool into the graph.
//
//go:generate go run go.uber.org/mock/mockgen -source=builder.go -destination=mocks/mock_builder.go -package=mocks
type Builder interface {
	// Name identifies the node the builder was created for.
	Name() string

	// Execute runs the wrapped build. A nil error means every step succeeded.
	Execute(ctx context.Context) error

	// Hash returns an opaque key that changes whenever the commands the
	// builder would issue change.
	Hash() string

	// Sources returns the files the build depends on.
	Sources() []string

	// Targets returns the files the build produces.
	Targets() []domain.Target
}

// BuilderFactory creates the builder for a graph node.
type BuilderFactory interface {
	New(node *domain.Node) (Builder, error)
}
