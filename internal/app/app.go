// Package app implements the application layer for autobuild.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/autobuild/internal/core/domain"
	"go.trai.ch/autobuild/internal/core/ports"
	"go.trai.ch/autobuild/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// MetricsWriter persists the metrics collected during a run.
type MetricsWriter interface {
	WriteTextfile(path string) error
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	scheduler    *scheduler.Scheduler
	factory      ports.BuilderFactory
	hasher       ports.Hasher
	metrics      MetricsWriter
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	sched *scheduler.Scheduler,
	factory ports.BuilderFactory,
	hasher ports.Hasher,
	metrics MetricsWriter,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		scheduler:    sched,
		factory:      factory,
		hasher:       hasher,
		metrics:      metrics,
		logger:       log,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// NoCache executes every selected node regardless of its build record.
	NoCache bool
	// Jobs bounds concurrent node builds; zero or less means one per CPU.
	Jobs int
	// MetricsFile, when set, receives the run's metrics in text exposition format.
	MetricsFile string
}

// Run loads the buildfile at file and builds the named nodes.
func (a *App) Run(ctx context.Context, file string, targetNames []string, opts RunOptions) error {
	// 1. Validate targets
	if len(targetNames) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	// 2. Load the graph
	graph, err := a.configLoader.Load(file)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	// 3. Run the scheduler
	runErr := a.scheduler.Run(ctx, graph, targetNames, opts.Jobs, opts.NoCache)

	// 4. Persist metrics, also for failed runs
	if opts.MetricsFile != "" {
		if err := a.metrics.WriteTextfile(opts.MetricsFile); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}

	return runErr
}

// HashReport describes how autobuild identifies a node's current state.
type HashReport struct {
	Node        string `json:"node"`
	Fingerprint string `json:"fingerprint"`
	InputHash   string `json:"input_hash"`
}

// Hash computes the fingerprint and input digest of one node without building it.
func (a *App) Hash(_ context.Context, file, nodeName string) (HashReport, error) {
	graph, err := a.configLoader.Load(file)
	if err != nil {
		return HashReport{}, zerr.Wrap(err, "failed to load configuration")
	}

	node, ok := graph.GetNode(nodeName)
	if !ok {
		return HashReport{}, zerr.With(domain.ErrNodeNotFound, "node", nodeName)
	}

	builder, err := a.factory.New(&node)
	if err != nil {
		return HashReport{}, err
	}

	fingerprint := builder.Hash()
	inputHash, err := a.hasher.ComputeInputHash(fingerprint, builder.Sources())
	if err != nil {
		return HashReport{}, zerr.Wrap(err, domain.ErrInputHashComputationFailed.Error())
	}

	return HashReport{Node: nodeName, Fingerprint: fingerprint, InputHash: inputHash}, nil
}

// Clean removes the build records kept next to the buildfile, forcing the
// next run to rebuild every node.
func (a *App) Clean(_ context.Context, file string) error {
	graph, err := a.configLoader.Load(file)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	path := filepath.Join(graph.Root(), domain.DefaultStorePath())
	a.logger.Info(fmt.Sprintf("removing %s", path))
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove build info store"), "path", path)
	}
	return nil
}
