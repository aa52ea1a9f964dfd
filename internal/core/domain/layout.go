package domain

import "path/filepath"

const (
	// AutobuildDirName is the name of the internal workspace directory.
	AutobuildDirName = ".autobuild"

	// StoreDirName is the name of the build info store directory.
	StoreDirName = "store"

	// BuildFileName is the default YAML buildfile.
	BuildFileName = "autobuild.yaml"

	// BuildFileNameTOML is the TOML spelling of the buildfile.
	BuildFileNameTOML = "autobuild.toml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStorePath returns the default path for the build info store.
// It joins .autobuild and store.
func DefaultStorePath() string {
	return filepath.Join(AutobuildDirName, StoreDirName)
}
