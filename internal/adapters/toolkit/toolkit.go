// Package toolkit describes the host platform's binary tooling: which
// make to run and how to set an rpath on a produced library.
package toolkit

import (
	"os/exec"
	"runtime"
	"sync"

	"go.trai.ch/autobuild/internal/core/domain"
	"go.trai.ch/autobuild/internal/core/ports"
)

var _ ports.Toolkit = (*Host)(nil)

const (
	originAnchor = "$ORIGIN/"
	loaderAnchor = "@loader_path/"
)

// makeCandidates are probed in order; the first found on PATH wins.
var makeCandidates = []string{"make", "gmake", "mingw32-make", "mingw64-make"}

// Host implements ports.Toolkit for the machine autobuild runs on.
type Host struct {
	os       domain.OS
	lookPath func(string) (string, error)
	make     func() string
}

// New creates a Host toolkit for runtime.GOOS.
func New() *Host {
	return NewFor(domain.ParseOS(runtime.GOOS), exec.LookPath)
}

// NewFor creates a toolkit for the given platform and executable lookup.
func NewFor(target domain.OS, lookPath func(string) (string, error)) *Host {
	h := &Host{os: target, lookPath: lookPath}
	h.make = sync.OnceValue(h.probeMake)
	return h
}

// OS returns the host platform.
func (h *Host) OS() domain.OS {
	return h.os
}

// RpathSetCommand returns the rpath command for binary, with rpath resolved
// relative to the binary itself. It returns nil on platforms without one.
// The anchor is joined verbatim: cleaning "$ORIGIN/../lib" would drop it.
func (h *Host) RpathSetCommand(binary, rpath string) []string {
	switch h.os {
	case domain.OSLinux:
		return []string{"patchelf", "--set-rpath", originAnchor + rpath, binary}
	case domain.OSMacOS:
		return []string{"install_name_tool", "-add_rpath", loaderAnchor + rpath, binary}
	default:
		return nil
	}
}

// RpathClearCommand returns the command removing the rpath entry that
// RpathSetCommand adds, or nil when setting already replaces it.
// install_name_tool refuses to add an rpath that is present.
func (h *Host) RpathClearCommand(binary, rpath string) []string {
	if h.os != domain.OSMacOS {
		return nil
	}
	return []string{"install_name_tool", "-delete_rpath", loaderAnchor + rpath, binary}
}

// MakeBinary returns the resolved path of the first make-compatible tool on
// PATH, or "".
// The lookup runs once per Host.
func (h *Host) MakeBinary() string {
	return h.make()
}

func (h *Host) probeMake() string {
	for _, candidate := range makeCandidates {
		if resolved, err := h.lookPath(candidate); err == nil {
			return resolved
		}
	}
	return ""
}
