package ports

import "go.trai.ch/autobuild/internal/core/domain"

// ConfigLoader defines the interface for loading the build configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the buildfile at path, or discovers one when path is a
	// directory, and returns the node graph.
	Load(path string) (*domain.Graph, error)
}
