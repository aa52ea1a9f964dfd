// Package config provides the buildfile loader for autobuild.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/autobuild/internal/core/domain"
	"go.trai.ch/autobuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// allNodes is the selector for every node; no node may use it as a name.
const allNodes = "all"

// Loader implements ports.ConfigLoader for YAML and TOML buildfiles.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the buildfile at path. When path is a directory the buildfile
// is discovered in it, preferring autobuild.yaml over autobuild.toml.
// All paths in the returned graph are absolute or resolved against the root.
func (l *Loader) Load(path string) (*domain.Graph, error) {
	configPath, err := l.findBuildfile(path)
	if err != nil {
		return nil, err
	}

	buildfile, err := readBuildfile(configPath)
	if err != nil {
		return nil, zerr.With(err, "file", configPath)
	}

	g := domain.NewGraph()
	g.SetRoot(resolveRoot(configPath, buildfile.Root))

	for _, name := range slices.Sorted(maps.Keys(buildfile.Nodes)) {
		node, err := buildNode(g.Root(), name, buildfile.Nodes[name], buildfile.Nodes)
		if err != nil {
			return nil, err
		}
		if err := g.AddNode(node); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func (l *Loader) findBuildfile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(domain.ErrConfigNotFound, "path", path)
		}
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}
	if !info.IsDir() {
		return path, nil
	}

	var found []string
	for _, name := range []string{domain.BuildFileName, domain.BuildFileNameTOML} {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			found = append(found, candidate)
		}
	}

	switch len(found) {
	case 0:
		return "", zerr.With(domain.ErrConfigNotFound, "cwd", path)
	case 1:
	default:
		l.Logger.Warn(fmt.Sprintf("both %s and %s found, using %s",
			domain.BuildFileName, domain.BuildFileNameTOML, domain.BuildFileName))
	}
	return found[0], nil
}

func readBuildfile(configPath string) (*Buildfile, error) {
	// #nosec G304 -- configPath is provided by the user
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var buildfile Buildfile
	if strings.EqualFold(filepath.Ext(configPath), ".toml") {
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		err = decoder.Decode(&buildfile)
	} else {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		err = decoder.Decode(&buildfile)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	}
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	return &buildfile, nil
}

func buildNode(root, name string, dto NodeDTO, all map[string]NodeDTO) (*domain.Node, error) {
	if name == allNodes {
		return nil, zerr.With(domain.ErrReservedNodeName, "node", name)
	}

	for _, dep := range dto.DependsOn {
		if _, ok := all[dep]; !ok {
			err := zerr.With(domain.ErrMissingDependency, "missing_dependency", dep)
			return nil, zerr.With(err, "node", name)
		}
	}

	targets := make([]domain.Target, 0, len(dto.Targets))
	for _, t := range dto.Targets {
		kind, err := domain.ParseTargetKind(t.Kind)
		if err != nil {
			return nil, zerr.With(err, "node", name)
		}
		targets = append(targets, domain.Target{Path: resolvePath(root, t.Path), Kind: kind})
	}

	return &domain.Node{
		Name:         name,
		Dependencies: slices.Compact(slices.Sorted(slices.Values(dto.DependsOn))),
		Options: domain.Options{
			Configure:     resolvePath(root, dto.Configure),
			Interpreter:   dto.Interpreter,
			ConfigureArgs: dto.ConfigureArgs,
			WorkingDir:    resolvePath(root, dto.WorkingDir),
			MakeBinary:    dto.Make,
			Makefile:      dto.Makefile,
			BuildArgs:     dto.BuildArgs,
			Env:           dto.Env,
			LeaveStdout:   dto.LeaveStdout,
		},
		Sources: resolvePaths(root, dto.Sources),
		Targets: targets,
	}, nil
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		configDir = filepath.Dir(configPath)
	}
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	return resolvePath(configDir, configuredRoot)
}

// resolvePath anchors p at root. Empty stays empty.
func resolvePath(root, p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

func resolvePaths(root string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = resolvePath(root, p)
	}
	return out
}
