package ports

import "go.trai.ch/autobuild/internal/core/domain"

// BuildInfoStore defines the interface for storing and retrieving build information.
// Records live under root, the directory holding the buildfile.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildInfoStore interface {
	// Get retrieves the build info for a given node name.
	// Returns nil, nil if not found.
	Get(root, nodeName string) (*domain.BuildInfo, error)

	// Put stores the build info.
	Put(root string, info domain.BuildInfo) error
}
