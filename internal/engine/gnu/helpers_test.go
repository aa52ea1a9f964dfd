package gnu_test

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"go.trai.ch/autobuild/internal/core/domain"
	"go.trai.ch/autobuild/internal/core/ports"
	"go.trai.ch/autobuild/internal/core/ports/mocks"
	"go.trai.ch/autobuild/internal/engine/gnu"
	"go.uber.org/mock/gomock"
)

// argvMatcher matches a domain.Command by its argument vector only.
type argvMatcher struct {
	argv []string
}

func argvIs(argv ...string) gomock.Matcher {
	return argvMatcher{argv: argv}
}

func (m argvMatcher) Matches(x any) bool {
	cmd, ok := x.(domain.Command)
	return ok && slices.Equal(cmd.Argv, m.argv)
}

func (m argvMatcher) String() string {
	return fmt.Sprintf("command with argv %q", m.argv)
}

// argvPrefixMatcher matches an argument vector by its leading elements.
type argvPrefixMatcher struct {
	prefix []string
}

func argvPrefix(prefix ...string) gomock.Matcher {
	return argvPrefixMatcher{prefix: prefix}
}

func (m argvPrefixMatcher) Matches(x any) bool {
	argv, ok := x.([]string)
	return ok && len(argv) >= len(m.prefix) && slices.Equal(argv[:len(m.prefix)], m.prefix)
}

func (m argvPrefixMatcher) String() string {
	return fmt.Sprintf("argv starting with %q", m.prefix)
}

type harness struct {
	runner    *mocks.MockCommandRunner
	inspector *mocks.MockInspector
	toolkit   *mocks.MockToolkit
	guard     *mocks.MockWriteGuard
	factory   *gnu.Factory
	// guarded counts calls to the write guard.
	guarded int
}

func newHarness(t *testing.T, osKind domain.OS) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		runner:    mocks.NewMockCommandRunner(ctrl),
		inspector: mocks.NewMockInspector(ctrl),
		toolkit:   mocks.NewMockToolkit(ctrl),
		guard:     mocks.NewMockWriteGuard(ctrl),
	}

	h.toolkit.EXPECT().OS().Return(osKind).AnyTimes()
	h.toolkit.EXPECT().MakeBinary().Return("make").AnyTimes()
	h.toolkit.EXPECT().RpathSetCommand(gomock.Any(), gomock.Any()).DoAndReturn(
		func(binary, rpath string) []string {
			if osKind == domain.OSMacOS {
				return []string{"install_name_tool", "-add_rpath", "@loader_path/" + rpath, binary}
			}
			return []string{"patchelf", "--set-rpath", "$ORIGIN/" + rpath, binary}
		}).AnyTimes()
	h.toolkit.EXPECT().RpathClearCommand(gomock.Any(), gomock.Any()).DoAndReturn(
		func(binary, rpath string) []string {
			if osKind == domain.OSMacOS {
				return []string{"install_name_tool", "-delete_rpath", "@loader_path/" + rpath, binary}
			}
			return nil
		}).AnyTimes()
	h.guard.EXPECT().WithWritable(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ string, fn func() error) error {
			h.guarded++
			return fn()
		}).AnyTimes()

	h.factory = gnu.NewFactory(h.runner, h.inspector, h.toolkit, h.guard, noopTracer(ctrl)).
		WithEnviron(func() []string { return []string{"PATH=/usr/bin", "CFLAGS=-O0"} })
	return h
}

func (h *harness) builder(t *testing.T, node domain.Node) ports.Builder {
	t.Helper()
	b, err := h.factory.New(&node)
	if err != nil {
		t.Fatalf("unexpected error creating builder: %v", err)
	}
	return b
}

func noopTracer(ctrl *gomock.Controller) *mocks.MockTracer {
	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()
	return tracer
}
