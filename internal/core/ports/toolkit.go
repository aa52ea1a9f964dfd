package ports

import "go.trai.ch/autobuild/internal/core/domain"

// Toolkit describes the host's binary tooling.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolkit.go -destination=mocks/mock_toolkit.go -package=mocks
type Toolkit interface {
	// OS returns the platform the produced binaries target.
	OS() domain.OS

	// RpathSetCommand returns the command that sets the rpath of binary to
	// rpath, interpreted relative to the binary's own location.
	RpathSetCommand(binary, rpath string) []string

	// RpathClearCommand returns the command that removes the entry
	// RpathSetCommand adds, or nil when setting replaces existing entries.
	// Its failure means there was nothing to remove.
	RpathClearCommand(binary, rpath string) []string

	// MakeBinary returns the make-compatible tool found on the host, or "".
	MakeBinary() string
}

// WriteGuard grants temporary write access to a file.
type WriteGuard interface {
	// WithWritable makes path writable, runs fn, and restores the original
	// permissions whatever fn returns.
	WithWritable(path string, fn func() error) error
}
