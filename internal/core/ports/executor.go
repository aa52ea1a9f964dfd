// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/autobuild/internal/core/domain"
)

// CommandRunner executes external commands on behalf of a build node.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type CommandRunner interface {
	// Run starts cmd and waits for it to exit.
	//
	// A non-zero exit status is reported as an error carrying the exit code.
	// Cancelling ctx terminates the command and every process it spawned.
	Run(ctx context.Context, cmd domain.Command) error
}

// Inspector runs a read-only tool and captures its standard output.
type Inspector interface {
	// Output runs argv and returns everything it wrote to stdout.
	Output(ctx context.Context, argv []string) ([]byte, error)
}
