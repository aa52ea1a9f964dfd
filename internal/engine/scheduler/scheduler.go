// Package scheduler runs the wrapped builds of a graph in dependency order,
// skipping nodes whose recorded fingerprint and inputs are unchanged.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/autobuild/internal/core/domain"
	"go.trai.ch/autobuild/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// NodeStatus represents the status of a node within a run.
type NodeStatus string

const (
	// StatusPending indicates the node is waiting for its wave.
	StatusPending NodeStatus = "Pending"
	// StatusRunning indicates the node is currently executing.
	StatusRunning NodeStatus = "Running"
	// StatusCompleted indicates the node has been built successfully.
	StatusCompleted NodeStatus = "Completed"
	// StatusCached indicates the node was skipped because nothing changed.
	StatusCached NodeStatus = "Cached"
	// StatusFailed indicates the node execution failed.
	StatusFailed NodeStatus = "Failed"
)

// allNodes selects every node of the graph.
const allNodes = "all"

// Scheduler manages the execution of nodes in the dependency graph.
type Scheduler struct {
	factory  ports.BuilderFactory
	store    ports.BuildInfoStore
	hasher   ports.Hasher
	verifier ports.Verifier
	tracer   ports.Tracer
	metrics  ports.Metrics
	logger   ports.Logger

	lookupEnv func(string) (string, bool)
	now       func() time.Time

	mu         sync.RWMutex
	nodeStatus map[string]NodeStatus
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(
	factory ports.BuilderFactory,
	store ports.BuildInfoStore,
	hasher ports.Hasher,
	verifier ports.Verifier,
	tracer ports.Tracer,
	metrics ports.Metrics,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		factory:    factory,
		store:      store,
		hasher:     hasher,
		verifier:   verifier,
		tracer:     tracer,
		metrics:    metrics,
		logger:     logger,
		lookupEnv:  os.LookupEnv,
		now:        time.Now,
		nodeStatus: make(map[string]NodeStatus),
	}
}

// WithLookupEnv replaces the ambient environment lookup used for the bypass key.
func (s *Scheduler) WithLookupEnv(lookup func(string) (string, bool)) *Scheduler {
	s.lookupEnv = lookup
	return s
}

func (s *Scheduler) updateStatus(name string, status NodeStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodeStatus[name] = status
}

// Run builds the requested nodes and everything they depend on.
// If targetNames contains "all", every node in the graph is built.
// Nodes run in topological waves of at most parallelism concurrent builds;
// a wave starts only after the previous one succeeded completely.
// If noCache is true, every selected node is executed.
func (s *Scheduler) Run(
	ctx context.Context,
	graph *domain.Graph,
	targetNames []string,
	parallelism int,
	noCache bool,
) error {
	if len(targetNames) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	// Explicitly validate the graph to ensure the execution order is populated
	if err := graph.Validate(); err != nil {
		return err
	}

	selected, err := selectNodes(graph, targetNames)
	if err != nil {
		return err
	}

	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	runID := uuid.NewString()
	ctx, span := s.tracer.Start(ctx, "run")
	defer span.End()
	span.SetAttribute("run_id", runID)
	span.SetAttribute("nodes", len(selected))

	waves := planWaves(graph, selected)
	s.mu.Lock()
	for name := range selected {
		s.nodeStatus[name] = StatusPending
	}
	s.mu.Unlock()

	state := &runState{
		s:           s,
		root:        graph.Root(),
		runID:       runID,
		noCache:     noCache,
		parallelism: parallelism,
	}

	for _, wave := range waves {
		if err := ctx.Err(); err != nil {
			return errors.Join(domain.ErrBuildExecutionFailed, err)
		}
		if err := state.runWave(ctx, wave); err != nil {
			span.RecordError(err)
			return errors.Join(domain.ErrBuildExecutionFailed, err)
		}
	}

	return nil
}

// selectNodes returns the requested nodes plus their transitive dependencies.
func selectNodes(graph *domain.Graph, targetNames []string) (map[string]bool, error) {
	selected := make(map[string]bool)

	if slices.Contains(targetNames, allNodes) {
		for node := range graph.Walk() {
			selected[node.Name] = true
		}
		return selected, nil
	}

	queue := make([]string, 0, len(targetNames))
	for _, name := range targetNames {
		if _, ok := graph.GetNode(name); !ok {
			return nil, zerr.With(domain.ErrNodeNotFound, "node", name)
		}
		queue = append(queue, name)
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if selected[name] {
			continue
		}
		selected[name] = true

		node, _ := graph.GetNode(name)
		queue = append(queue, node.Dependencies...)
	}

	return selected, nil
}

// planWaves groups the selected nodes by depth: a node sits one wave after
// its deepest dependency. Within a wave nodes keep the graph's order.
func planWaves(graph *domain.Graph, selected map[string]bool) [][]domain.Node {
	depth := make(map[string]int, len(selected))
	var waves [][]domain.Node

	for node := range graph.Walk() {
		if !selected[node.Name] {
			continue
		}

		d := 0
		for _, dep := range node.Dependencies {
			d = max(d, depth[dep]+1)
		}
		depth[node.Name] = d

		for len(waves) <= d {
			waves = append(waves, nil)
		}
		waves[d] = append(waves[d], node)
	}

	return waves
}

type runState struct {
	s           *Scheduler
	root        string
	runID       string
	noCache     bool
	parallelism int
}

// runWave executes the nodes of one wave. Every node of the wave runs to
// completion; the failures are joined.
func (state *runState) runWave(ctx context.Context, wave []domain.Node) error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs error
	)
	g.SetLimit(state.parallelism)

	for _, node := range wave {
		g.Go(func() error {
			if err := state.runNode(ctx, node); err != nil {
				mu.Lock()
				errs = errors.Join(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return errs
}

func (state *runState) runNode(ctx context.Context, node domain.Node) error {
	s := state.s
	start := s.now()
	s.updateStatus(node.Name, StatusRunning)

	ctx, span := s.tracer.Start(ctx, node.Name)
	defer span.End()
	span.SetAttribute("run_id", state.runID)

	outcome, err := state.buildNode(ctx, &node)
	if err != nil {
		span.RecordError(err)
		s.updateStatus(node.Name, StatusFailed)
		s.metrics.ObserveNode(node.Name, ports.OutcomeFailed, s.now().Sub(start))
		return zerr.With(zerr.Wrap(err, domain.ErrNodeExecutionFailed.Error()), "node", node.Name)
	}

	span.SetAttribute("outcome", string(outcome))
	if outcome == ports.OutcomeCached {
		s.updateStatus(node.Name, StatusCached)
	} else {
		s.updateStatus(node.Name, StatusCompleted)
	}
	s.metrics.ObserveNode(node.Name, outcome, s.now().Sub(start))
	return nil
}

func (state *runState) buildNode(ctx context.Context, node *domain.Node) (ports.NodeOutcome, error) {
	s := state.s

	builder, err := s.factory.New(node)
	if err != nil {
		return ports.OutcomeFailed, err
	}

	fingerprint := builder.Hash()
	inputHash, err := s.hasher.ComputeInputHash(fingerprint, builder.Sources())
	if err != nil {
		return ports.OutcomeFailed, zerr.Wrap(err, domain.ErrInputHashComputationFailed.Error())
	}

	if !state.noCache && !state.bypassed(node) && state.upToDate(builder, fingerprint, inputHash) {
		s.logger.Info(fmt.Sprintf("%s is up to date", node.Name))
		return ports.OutcomeCached, nil
	}

	if err := builder.Execute(ctx); err != nil {
		return ports.OutcomeFailed, err
	}

	info := domain.BuildInfo{
		NodeName:    node.Name,
		Fingerprint: fingerprint,
		InputHash:   inputHash,
		Timestamp:   s.now(),
	}
	if err := s.store.Put(state.root, info); err != nil {
		return ports.OutcomeFailed, zerr.Wrap(err, domain.ErrBuildInfoUpdateFailed.Error())
	}

	return ports.OutcomeBuilt, nil
}

// bypassed reports whether the bypass key is set for the node or the process.
func (state *runState) bypassed(node *domain.Node) bool {
	if _, ok := node.Options.Env[domain.BypassEnvKey]; ok {
		return true
	}
	_, ok := state.s.lookupEnv(domain.BypassEnvKey)
	return ok
}

// upToDate reports whether the stored record matches and every target exists.
// An unreadable record counts as a miss.
func (state *runState) upToDate(builder ports.Builder, fingerprint, inputHash string) bool {
	s := state.s

	info, err := s.store.Get(state.root, builder.Name())
	if err != nil {
		s.logger.Warn(fmt.Sprintf("ignoring build record of %s: %v", builder.Name(), err))
		return false
	}
	if info == nil || info.Fingerprint != fingerprint || info.InputHash != inputHash {
		return false
	}

	paths := make([]string, 0, len(builder.Targets()))
	for _, t := range builder.Targets() {
		paths = append(paths, t.Path)
	}

	exists, err := s.verifier.TargetsExist(paths)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("cannot verify targets of %s: %v", builder.Name(), err))
		return false
	}
	return exists
}
