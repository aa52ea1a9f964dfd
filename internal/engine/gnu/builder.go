package gnu

import (
	"context"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/autobuild/internal/core/domain"
	"go.trai.ch/autobuild/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	phaseConfigure = "configure"
	phaseBuild     = "build"
	phaseRelocate  = "relocate"
)

var _ ports.Builder = (*Builder)(nil)

// Builder runs one wrapped configure/make build: configure (when there is a
// script), make, then relocation of every declared shared library. The first
// failing step ends the run; nothing already done is rolled back.
type Builder struct {
	name      string
	cfg       *domain.Configuration
	composer  *Composer
	relocator *Relocator
	runner    ports.CommandRunner
	tracer    ports.Tracer
	environ   func() []string
	sources   []string
	targets   []domain.Target
}

// Name returns the node name.
func (b *Builder) Name() string {
	return b.name
}

// Sources returns the configure script, if any, followed by the declared sources.
func (b *Builder) Sources() []string {
	return slices.Clone(b.sources)
}

// Targets returns the declared targets.
func (b *Builder) Targets() []domain.Target {
	return slices.Clone(b.targets)
}

// Hash returns the fingerprint of the commands the builder issues.
func (b *Builder) Hash() string {
	return Fingerprint(b.composer, b.cfg.Env())
}

// Execute runs configure, build and relocation in order.
func (b *Builder) Execute(ctx context.Context) error {
	env := b.environment()
	dir := b.cfg.WorkingDir()

	if argv := b.composer.ConfigureCommand(); argv != nil {
		if err := b.phase(ctx, phaseConfigure, domain.Command{
			Label:       "Configure " + dir,
			Argv:        argv,
			Dir:         dir,
			Env:         env,
			LeaveStdout: b.cfg.LeaveStdout(),
		}); err != nil {
			return err
		}
	}

	if err := b.phase(ctx, phaseBuild, domain.Command{
		Label:       "Build " + dir,
		Argv:        b.composer.BuildCommand(),
		Dir:         dir,
		Env:         env,
		LeaveStdout: b.cfg.LeaveStdout(),
	}); err != nil {
		return err
	}

	return b.relocate(ctx)
}

func (b *Builder) phase(ctx context.Context, name string, cmd domain.Command) error {
	ctx, span := b.tracer.Start(ctx, name)
	defer span.End()
	span.SetAttribute("node", b.name)
	span.SetAttribute("argv", cmd.Argv)

	if err := runStep(ctx, b.runner, cmd); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (b *Builder) relocate(ctx context.Context) error {
	ctx, span := b.tracer.Start(ctx, phaseRelocate)
	defer span.End()
	span.SetAttribute("node", b.name)

	dir := b.cfg.WorkingDir()
	for _, target := range b.targets {
		if err := checkUnder(dir, target.Path); err != nil {
			span.RecordError(err)
			return err
		}
		if !target.IsDynamicLibrary() {
			continue
		}
		if err := b.relocator.Relocate(ctx, target, b.targets); err != nil {
			span.RecordError(err)
			return err
		}
	}
	return nil
}

// environment merges the configured variables over the ambient ones. The
// result is sorted so that identical inputs produce identical slices.
func (b *Builder) environment() []string {
	merged := make(map[string]string)
	for _, entry := range b.environ() {
		if k, v, ok := strings.Cut(entry, "="); ok {
			merged[k] = v
		}
	}
	maps.Copy(merged, b.cfg.Env())

	env := make([]string, 0, len(merged))
	for _, k := range slices.Sorted(maps.Keys(merged)) {
		env = append(env, k+"="+merged[k])
	}
	return env
}

// checkUnder fails when path cannot be expressed relative to dir.
func checkUnder(dir, path string) error {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return zerr.With(zerr.With(domain.ErrPathPrefixMismatch, "path", path), "working_dir", dir)
	}
	return nil
}
