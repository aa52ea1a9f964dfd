package gnu

import (
	"os"
	"slices"

	"go.trai.ch/autobuild/internal/core/domain"
	"go.trai.ch/autobuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuilderFactory = (*Factory)(nil)

// Factory creates Builders that share one set of host adapters.
type Factory struct {
	runner    ports.CommandRunner
	inspector ports.Inspector
	toolkit   ports.Toolkit
	guard     ports.WriteGuard
	tracer    ports.Tracer
	environ   func() []string
}

// NewFactory creates a Factory.
func NewFactory(
	runner ports.CommandRunner,
	inspector ports.Inspector,
	toolkit ports.Toolkit,
	guard ports.WriteGuard,
	tracer ports.Tracer,
) *Factory {
	return &Factory{
		runner:    runner,
		inspector: inspector,
		toolkit:   toolkit,
		guard:     guard,
		tracer:    tracer,
		environ:   os.Environ,
	}
}

// WithEnviron replaces the source of the ambient environment.
// This is primarily used for testing.
func (f *Factory) WithEnviron(environ func() []string) *Factory {
	f.environ = environ
	return f
}

// New creates the Builder for node. A node without a make binary uses the
// one found on the host.
func (f *Factory) New(node *domain.Node) (ports.Builder, error) {
	opts := node.Options
	if opts.MakeBinary == "" {
		opts.MakeBinary = f.toolkit.MakeBinary()
	}

	cfg, err := domain.NewConfiguration(opts)
	if err != nil {
		return nil, zerr.With(err, "node", node.Name)
	}

	return &Builder{
		name:      node.Name,
		cfg:       cfg,
		composer:  NewComposer(cfg),
		relocator: NewRelocator(f.runner, f.inspector, f.toolkit, f.guard),
		runner:    f.runner,
		tracer:    f.tracer,
		environ:   f.environ,
		sources:   node.AllSources(),
		targets:   slices.Clone(node.Targets),
	}, nil
}
