package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigurationUnresolvable is returned when a node's working directory cannot be deduced.
	ErrConfigurationUnresolvable = zerr.New("cannot deduce the working directory")

	// ErrMakeBinaryNotFound is returned when no make-compatible binary is configured or found on PATH.
	ErrMakeBinaryNotFound = zerr.New("no make binary available")

	// ErrCommandExecutionFailed is returned when configure, make or a relocation command exits non-zero.
	ErrCommandExecutionFailed = zerr.New("command execution failed")

	// ErrPathPrefixMismatch is returned when a declared target is not located under the working directory.
	ErrPathPrefixMismatch = zerr.New("target is not under the working directory")

	// ErrInvalidTargetKind is returned when a buildfile names an unknown target kind.
	ErrInvalidTargetKind = zerr.New("invalid target kind, expected 'dynlib' or 'other'")

	// ErrNodeAlreadyExists is returned when attempting to add a node with a name that already exists.
	ErrNodeAlreadyExists = zerr.New("node already exists")

	// ErrMissingDependency is returned when a node references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the node dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrNodeNotFound is returned when a requested node is not found in the graph.
	ErrNodeNotFound = zerr.New("node not found")

	// ErrReservedNodeName is returned when a node uses a reserved name (e.g., "all").
	ErrReservedNodeName = zerr.New("node name 'all' is reserved")

	// ErrNoTargetsSpecified is returned when no nodes are specified for the run command.
	ErrNoTargetsSpecified = zerr.New("no nodes specified")

	// ErrConfigNotFound is returned when no buildfile can be found.
	ErrConfigNotFound = zerr.New("could not find autobuild.yaml or autobuild.toml")

	// ErrConfigReadFailed is returned when the buildfile cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read buildfile")

	// ErrConfigParseFailed is returned when the buildfile cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse buildfile")

	// ErrStoreCreateFailed is returned when the build info store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create build info store directory")

	// ErrStoreReadFailed is returned when the build info cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build info")

	// ErrStoreUnmarshalFailed is returned when the build info cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build info")

	// ErrStoreMarshalFailed is returned when the build info cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build info")

	// ErrStoreWriteFailed is returned when the build info cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build info")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrPermissionChangeFailed is returned when a target's mode cannot be changed or restored.
	ErrPermissionChangeFailed = zerr.New("failed to change file permissions")

	// ErrBuildExecutionFailed is returned when the build execution fails.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrNodeExecutionFailed is returned when a node execution fails.
	ErrNodeExecutionFailed = zerr.New("node execution failed")

	// ErrInputHashComputationFailed is returned when input hash computation fails.
	ErrInputHashComputationFailed = zerr.New("failed to compute input hash")

	// ErrBuildInfoUpdateFailed is returned when updating the build info store fails.
	ErrBuildInfoUpdateFailed = zerr.New("failed to update build info store")

	// ErrMetricsWriteFailed is returned when the metrics textfile cannot be written.
	ErrMetricsWriteFailed = zerr.New("failed to write metrics file")
)
