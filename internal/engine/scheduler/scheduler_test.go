package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/autobuild/internal/adapters/telemetry"
	"go.trai.ch/autobuild/internal/core/domain"
	"go.trai.ch/autobuild/internal/core/ports"
	"go.trai.ch/autobuild/internal/core/ports/mocks"
	"go.trai.ch/autobuild/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

const root = "/src"

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	ctrl     *gomock.Controller
	factory  *mocks.MockBuilderFactory
	store    *mocks.MockBuildInfoStore
	hasher   *mocks.MockHasher
	verifier *mocks.MockVerifier
	metrics  *mocks.MockMetrics
	logger   *mocks.MockLogger
	sched    *scheduler.Scheduler

	mu       sync.Mutex
	executed []string
	failing  map[string]error
	outcomes map[string]ports.NodeOutcome
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	h := &harness{
		ctrl:     ctrl,
		factory:  mocks.NewMockBuilderFactory(ctrl),
		store:    mocks.NewMockBuildInfoStore(ctrl),
		hasher:   mocks.NewMockHasher(ctrl),
		verifier: mocks.NewMockVerifier(ctrl),
		metrics:  mocks.NewMockMetrics(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		failing:  map[string]error{},
		outcomes: map[string]ports.NodeOutcome{},
	}
	h.sched = scheduler.NewScheduler(
		h.factory, h.store, h.hasher, h.verifier,
		telemetry.NewNoOpTracer(), h.metrics, h.logger,
	).WithLookupEnv(func(string) (string, bool) { return "", false }).
		WithClock(func() time.Time { return epoch })

	h.factory.EXPECT().New(gomock.Any()).DoAndReturn(h.newBuilder).AnyTimes()
	h.hasher.EXPECT().ComputeInputHash(gomock.Any(), gomock.Any()).DoAndReturn(
		func(fingerprint string, _ []string) (string, error) { return "in-" + fingerprint, nil },
	).AnyTimes()
	h.metrics.EXPECT().ObserveNode(gomock.Any(), gomock.Any(), gomock.Any()).Do(
		func(node string, outcome ports.NodeOutcome, _ time.Duration) {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.outcomes[node] = outcome
		},
	).AnyTimes()
	h.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	h.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return h
}

func (h *harness) newBuilder(node *domain.Node) (ports.Builder, error) {
	name := node.Name
	b := mocks.NewMockBuilder(h.ctrl)
	b.EXPECT().Name().Return(name).AnyTimes()
	b.EXPECT().Hash().Return("fp-" + name).AnyTimes()
	b.EXPECT().Sources().Return(node.AllSources()).AnyTimes()
	b.EXPECT().Targets().Return(node.Targets).AnyTimes()
	b.EXPECT().Execute(gomock.Any()).DoAndReturn(func(context.Context) error {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.executed = append(h.executed, name)
		return h.failing[name]
	}).AnyTimes()
	return b, nil
}

func (h *harness) executedNodes() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.executed...)
}

// chain builds zlib <- openssl <- curl, plus an independent libffi.
func chain(t *testing.T) *domain.Graph {
	t.Helper()
	g := domain.NewGraph()
	g.SetRoot(root)
	nodes := []domain.Node{
		{Name: "zlib", Targets: []domain.Target{{Path: "/src/zlib/lib/libz.so", Kind: domain.KindDynamicLibrary}}},
		{Name: "openssl", Dependencies: []string{"zlib"}},
		{Name: "curl", Dependencies: []string{"openssl"}},
		{Name: "libffi"},
	}
	for i := range nodes {
		require.NoError(t, g.AddNode(&nodes[i]))
	}
	return g
}

func TestScheduler_Run_BuildsInDependencyOrder(t *testing.T) {
	h := newHarness(t)
	h.store.EXPECT().Get(root, gomock.Any()).Return(nil, nil).Times(4)

	var stored []domain.BuildInfo
	h.store.EXPECT().Put(root, gomock.Any()).DoAndReturn(func(_ string, info domain.BuildInfo) error {
		h.mu.Lock()
		defer h.mu.Unlock()
		stored = append(stored, info)
		return nil
	}).Times(4)

	err := h.sched.Run(context.Background(), chain(t), []string{"all"}, 1, false)
	require.NoError(t, err)

	executed := h.executedNodes()
	require.Len(t, executed, 4)
	assert.Less(t, indexOf(executed, "zlib"), indexOf(executed, "openssl"))
	assert.Less(t, indexOf(executed, "openssl"), indexOf(executed, "curl"))

	assert.Contains(t, stored, domain.BuildInfo{
		NodeName:    "zlib",
		Fingerprint: "fp-zlib",
		InputHash:   "in-fp-zlib",
		Timestamp:   epoch,
	})

	status := h.sched.NodeStatusMap()
	for _, name := range []string{"zlib", "openssl", "curl", "libffi"} {
		assert.Equal(t, scheduler.StatusCompleted, status[name], name)
		assert.Equal(t, ports.OutcomeBuilt, h.outcomes[name], name)
	}
}

func TestScheduler_Run_SelectsTransitiveDependencies(t *testing.T) {
	h := newHarness(t)
	h.store.EXPECT().Get(root, gomock.Any()).Return(nil, nil).Times(2)
	h.store.EXPECT().Put(root, gomock.Any()).Return(nil).Times(2)

	err := h.sched.Run(context.Background(), chain(t), []string{"openssl"}, 4, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"zlib", "openssl"}, h.executedNodes())
}

func TestScheduler_Run_SkipsUpToDateNode(t *testing.T) {
	h := newHarness(t)
	h.store.EXPECT().Get(root, "zlib").Return(&domain.BuildInfo{
		NodeName:    "zlib",
		Fingerprint: "fp-zlib",
		InputHash:   "in-fp-zlib",
	}, nil)
	h.verifier.EXPECT().TargetsExist([]string{"/src/zlib/lib/libz.so"}).Return(true, nil)

	err := h.sched.Run(context.Background(), chain(t), []string{"zlib"}, 1, false)
	require.NoError(t, err)

	assert.Empty(t, h.executedNodes())
	assert.Equal(t, scheduler.StatusCached, h.sched.NodeStatusMap()["zlib"])
	assert.Equal(t, ports.OutcomeCached, h.outcomes["zlib"])
}

func TestScheduler_Run_RebuildsWhenRecordDiffers(t *testing.T) {
	tests := []struct {
		name    string
		info    *domain.BuildInfo
		getErr  error
		targets *bool
	}{
		{
			name: "no record",
			info: nil,
		},
		{
			name: "fingerprint changed",
			info: &domain.BuildInfo{NodeName: "zlib", Fingerprint: "old", InputHash: "in-fp-zlib"},
		},
		{
			name: "sources changed",
			info: &domain.BuildInfo{NodeName: "zlib", Fingerprint: "fp-zlib", InputHash: "old"},
		},
		{
			name:    "target missing",
			info:    &domain.BuildInfo{NodeName: "zlib", Fingerprint: "fp-zlib", InputHash: "in-fp-zlib"},
			targets: new(bool),
		},
		{
			name:   "unreadable record",
			getErr: errors.New("corrupt"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.store.EXPECT().Get(root, "zlib").Return(tt.info, tt.getErr)
			if tt.targets != nil {
				h.verifier.EXPECT().TargetsExist(gomock.Any()).Return(*tt.targets, nil)
			}
			h.store.EXPECT().Put(root, gomock.Any()).Return(nil)

			err := h.sched.Run(context.Background(), chain(t), []string{"zlib"}, 1, false)
			require.NoError(t, err)

			assert.Equal(t, []string{"zlib"}, h.executedNodes())
		})
	}
}

func TestScheduler_Run_NoCache(t *testing.T) {
	h := newHarness(t)
	h.store.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
	h.store.EXPECT().Put(root, gomock.Any()).Return(nil)

	err := h.sched.Run(context.Background(), chain(t), []string{"zlib"}, 1, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"zlib"}, h.executedNodes())
}

func TestScheduler_Run_BypassKeyInNodeEnv(t *testing.T) {
	h := newHarness(t)
	h.store.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
	h.store.EXPECT().Put(root, gomock.Any()).Return(nil)

	g := domain.NewGraph()
	g.SetRoot(root)
	require.NoError(t, g.AddNode(&domain.Node{
		Name:    "zlib",
		Options: domain.Options{Env: map[string]string{domain.BypassEnvKey: ""}},
	}))

	require.NoError(t, h.sched.Run(context.Background(), g, []string{"zlib"}, 1, false))
	assert.Equal(t, []string{"zlib"}, h.executedNodes())
}

func TestScheduler_Run_BypassKeyInAmbientEnv(t *testing.T) {
	h := newHarness(t)
	h.sched.WithLookupEnv(func(key string) (string, bool) {
		return "1", key == domain.BypassEnvKey
	})
	h.store.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
	h.store.EXPECT().Put(root, gomock.Any()).Return(nil)

	require.NoError(t, h.sched.Run(context.Background(), chain(t), []string{"zlib"}, 1, false))
	assert.Equal(t, []string{"zlib"}, h.executedNodes())
}

func TestScheduler_Run_FailureStopsDependents(t *testing.T) {
	h := newHarness(t)
	h.failing["openssl"] = errors.New("make: *** [install] Error 2")
	h.store.EXPECT().Get(root, gomock.Any()).Return(nil, nil).AnyTimes()
	h.store.EXPECT().Put(root, gomock.Any()).Return(nil).AnyTimes()

	err := h.sched.Run(context.Background(), chain(t), []string{"all"}, 2, false)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.ErrorContains(t, err, domain.ErrNodeExecutionFailed.Error())

	executed := h.executedNodes()
	assert.NotContains(t, executed, "curl")
	assert.Contains(t, executed, "libffi")

	status := h.sched.NodeStatusMap()
	assert.Equal(t, scheduler.StatusFailed, status["openssl"])
	assert.Equal(t, scheduler.StatusPending, status["curl"])
	assert.Equal(t, ports.OutcomeFailed, h.outcomes["openssl"])
}

func TestScheduler_Run_StoreFailure(t *testing.T) {
	h := newHarness(t)
	h.store.EXPECT().Get(root, "zlib").Return(nil, nil)
	h.store.EXPECT().Put(root, gomock.Any()).Return(errors.New("disk full"))

	err := h.sched.Run(context.Background(), chain(t), []string{"zlib"}, 1, false)
	require.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.ErrorContains(t, err, domain.ErrBuildInfoUpdateFailed.Error())
}

func TestScheduler_Run_HashFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory := mocks.NewMockBuilderFactory(ctrl)
	hasher := mocks.NewMockHasher(ctrl)
	metrics := mocks.NewMockMetrics(ctrl)
	builder := mocks.NewMockBuilder(ctrl)

	factory.EXPECT().New(gomock.Any()).Return(builder, nil)
	builder.EXPECT().Hash().Return("fp")
	builder.EXPECT().Sources().Return([]string{"/src/zlib/configure"})
	builder.EXPECT().Execute(gomock.Any()).Times(0)
	hasher.EXPECT().ComputeInputHash("fp", []string{"/src/zlib/configure"}).Return("", errors.New("source not found"))
	metrics.EXPECT().ObserveNode("zlib", ports.OutcomeFailed, gomock.Any())

	s := scheduler.NewScheduler(factory, mocks.NewMockBuildInfoStore(ctrl), hasher,
		mocks.NewMockVerifier(ctrl), telemetry.NewNoOpTracer(), metrics, mocks.NewMockLogger(ctrl))

	err := s.Run(context.Background(), chain(t), []string{"zlib"}, 1, false)
	assert.ErrorContains(t, err, domain.ErrInputHashComputationFailed.Error())
}

func TestScheduler_Run_FactoryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory := mocks.NewMockBuilderFactory(ctrl)
	metrics := mocks.NewMockMetrics(ctrl)

	factory.EXPECT().New(gomock.Any()).Return(nil, domain.ErrMakeBinaryNotFound)
	metrics.EXPECT().ObserveNode("zlib", ports.OutcomeFailed, gomock.Any())

	s := scheduler.NewScheduler(factory, mocks.NewMockBuildInfoStore(ctrl), mocks.NewMockHasher(ctrl),
		mocks.NewMockVerifier(ctrl), telemetry.NewNoOpTracer(), metrics, mocks.NewMockLogger(ctrl))

	err := s.Run(context.Background(), chain(t), []string{"zlib"}, 1, false)
	assert.ErrorContains(t, err, domain.ErrMakeBinaryNotFound.Error())
}

func TestScheduler_Run_InvalidRequests(t *testing.T) {
	cyclic := domain.NewGraph()
	require.NoError(t, cyclic.AddNode(&domain.Node{Name: "a", Dependencies: []string{"b"}}))
	require.NoError(t, cyclic.AddNode(&domain.Node{Name: "b", Dependencies: []string{"a"}}))

	tests := []struct {
		name    string
		graph   *domain.Graph
		targets []string
		wantErr error
	}{
		{name: "no targets", graph: chain(t), targets: nil, wantErr: domain.ErrNoTargetsSpecified},
		{name: "unknown node", graph: chain(t), targets: []string{"nope"}, wantErr: domain.ErrNodeNotFound},
		{name: "cycle", graph: cyclic, targets: []string{"all"}, wantErr: domain.ErrCycleDetected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)

			err := h.sched.Run(context.Background(), tt.graph, tt.targets, 1, false)
			require.ErrorContains(t, err, tt.wantErr.Error())
			assert.Empty(t, h.executedNodes())
		})
	}
}

func TestScheduler_Run_CancelledContext(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.sched.Run(ctx, chain(t), []string{"all"}, 1, false)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, h.executedNodes())
}

func TestScheduler_Run_WaveRunsConcurrently(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		factory := mocks.NewMockBuilderFactory(ctrl)
		hasher := mocks.NewMockHasher(ctrl)
		metrics := mocks.NewMockMetrics(ctrl)

		zlibStarted := make(chan struct{})
		ffiStarted := make(chan struct{})

		newBuilder := func(name string, own, other chan struct{}) ports.Builder {
			b := mocks.NewMockBuilder(ctrl)
			b.EXPECT().Hash().Return(name)
			b.EXPECT().Sources().Return(nil)
			b.EXPECT().Execute(gomock.Any()).DoAndReturn(func(context.Context) error {
				close(own)
				<-other
				return nil
			})
			return b
		}
		zlib := newBuilder("zlib", zlibStarted, ffiStarted)
		ffi := newBuilder("libffi", ffiStarted, zlibStarted)

		factory.EXPECT().New(gomock.Any()).DoAndReturn(func(node *domain.Node) (ports.Builder, error) {
			if node.Name == "zlib" {
				return zlib, nil
			}
			return ffi, nil
		}).Times(2)
		hasher.EXPECT().ComputeInputHash(gomock.Any(), gomock.Any()).Return("h", nil).Times(2)
		metrics.EXPECT().ObserveNode(gomock.Any(), ports.OutcomeBuilt, gomock.Any()).Times(2)
		store := mocks.NewMockBuildInfoStore(ctrl)
		store.EXPECT().Put(root, gomock.Any()).Return(nil).Times(2)

		g := domain.NewGraph()
		g.SetRoot(root)
		require.NoError(t, g.AddNode(&domain.Node{Name: "zlib"}))
		require.NoError(t, g.AddNode(&domain.Node{Name: "libffi"}))

		s := scheduler.NewScheduler(factory, store, hasher, mocks.NewMockVerifier(ctrl),
			telemetry.NewNoOpTracer(), metrics, mocks.NewMockLogger(ctrl))

		require.NoError(t, s.Run(context.Background(), g, []string{"all"}, 2, true))
	})
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
