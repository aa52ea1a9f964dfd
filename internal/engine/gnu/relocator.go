package gnu

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/autobuild/internal/core/domain"
	"go.trai.ch/autobuild/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// selfRpath makes a library look for its siblings next to itself.
	selfRpath = "."

	rpathPrefix = "@rpath/"

	installNameTool = "install_name_tool"
	otool           = "otool"
)

// Relocator rewrites the runtime search information of freshly built shared
// libraries so the install tree can be moved.
type Relocator struct {
	runner    ports.CommandRunner
	inspector ports.Inspector
	toolkit   ports.Toolkit
	guard     ports.WriteGuard
}

// NewRelocator creates a Relocator.
func NewRelocator(
	runner ports.CommandRunner,
	inspector ports.Inspector,
	toolkit ports.Toolkit,
	guard ports.WriteGuard,
) *Relocator {
	return &Relocator{
		runner:    runner,
		inspector: inspector,
		toolkit:   toolkit,
		guard:     guard,
	}
}

// Relocate sets a self-relative rpath on target. On macOS it also sets the
// library's install name to @rpath/<basename> and redirects every reference
// to a library of the same run to @rpath/<basename>. References to libraries
// outside of run are left alone.
func (r *Relocator) Relocate(ctx context.Context, target domain.Target, run []domain.Target) error {
	path := target.Path
	return r.guard.WithWritable(path, func() error {
		label := "Fix rpath for " + path
		// A rerun finds the entry from the previous pass. Failure means it is absent.
		if argv := r.toolkit.RpathClearCommand(path, selfRpath); len(argv) > 0 {
			_, _ = r.inspector.Output(ctx, argv)
		}
		// Platforms without rpath support yield no command.
		if argv := r.toolkit.RpathSetCommand(path, selfRpath); len(argv) > 0 {
			if err := runStep(ctx, r.runner, domain.Command{Label: label, Argv: argv}); err != nil {
				return err
			}
		}

		if r.toolkit.OS() != domain.OSMacOS {
			return nil
		}

		if err := runStep(ctx, r.runner, domain.Command{
			Label: label,
			Argv:  []string{installNameTool, "-id", rpathPrefix + filepath.Base(path), path},
		}); err != nil {
			return err
		}

		deps, err := r.dependencies(ctx, path)
		if err != nil {
			return err
		}

		produced := make(map[string]struct{}, len(run))
		for _, t := range run {
			produced[filepath.Base(t.Path)] = struct{}{}
		}

		for _, dep := range deps {
			base := filepath.Base(dep)
			if _, ok := produced[base]; !ok {
				continue
			}
			if err := runStep(ctx, r.runner, domain.Command{
				Label: "Fix dependency name for " + path,
				Argv:  []string{installNameTool, "-change", dep, rpathPrefix + base, path},
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// dependencies lists the libraries path links against, as recorded in its load commands.
func (r *Relocator) dependencies(ctx context.Context, path string) ([]string, error) {
	out, err := r.inspector.Output(ctx, []string{otool, "-L", path})
	if err != nil {
		return nil, zerr.With(
			zerr.Wrap(err, domain.ErrCommandExecutionFailed.Error()),
			"step", "List dependencies of "+path,
		)
	}
	return ParseDependencies(out), nil
}

// ParseDependencies extracts library paths from `otool -L` output. Every
// line starting with a tab names one library; the path is the first
// whitespace-delimited token, before the version annotation.
func ParseDependencies(out []byte) []string {
	var deps []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "\t") {
			continue
		}
		fields := strings.Fields(line[1:])
		if len(fields) == 0 {
			continue
		}
		deps = append(deps, fields[0])
	}
	return deps
}

// runStep runs cmd and tags a failure with the step label.
func runStep(ctx context.Context, runner ports.CommandRunner, cmd domain.Command) error {
	if err := runner.Run(ctx, cmd); err != nil {
		return zerr.With(
			zerr.Wrap(err, domain.ErrCommandExecutionFailed.Error()),
			"step", cmd.Label,
		)
	}
	return nil
}
