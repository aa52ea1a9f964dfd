// Package gnu wraps autotools-style configure/make builds as graph nodes and
// makes the shared libraries they produce relocatable.
package gnu

import (
	"path/filepath"

	"go.trai.ch/autobuild/internal/core/domain"
)

// Composer builds the command lines of a wrapped build from its configuration.
type Composer struct {
	cfg *domain.Configuration
}

// NewComposer creates a Composer for cfg.
func NewComposer(cfg *domain.Configuration) *Composer {
	return &Composer{cfg: cfg}
}

// ConfigureCommand returns the configure invocation, or nil when the build
// has no configure script and the phase must be skipped.
func (c *Composer) ConfigureCommand() []string {
	script := c.cfg.Configure()
	if script == "" {
		return nil
	}

	base := filepath.Base(script)
	args := c.cfg.ConfigureArgs()
	cmd := make([]string, 0, len(args)+2)
	if interpreter := c.cfg.Interpreter(); interpreter != "" {
		cmd = append(cmd, interpreter, base)
	} else {
		cmd = append(cmd, "./"+base)
	}
	return append(cmd, args...)
}

// BuildCommand returns the make invocation.
//
// With a makefile override the install target is always requested before the
// build arguments; callers that pass their own targets must account for it.
func (c *Composer) BuildCommand() []string {
	args := c.cfg.BuildArgs()
	cmd := make([]string, 0, len(args)+4)
	cmd = append(cmd, c.cfg.MakeBinary())
	if makefile := c.cfg.Makefile(); makefile != "" {
		cmd = append(cmd, "-f", makefile, domain.DefaultBuildTarget)
	}
	return append(cmd, args...)
}
