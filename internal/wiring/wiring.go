// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/autobuild/internal/adapters/cas"
	_ "go.trai.ch/autobuild/internal/adapters/config"
	_ "go.trai.ch/autobuild/internal/adapters/fs"
	_ "go.trai.ch/autobuild/internal/adapters/logger"
	_ "go.trai.ch/autobuild/internal/adapters/shell"
	_ "go.trai.ch/autobuild/internal/adapters/telemetry"
	_ "go.trai.ch/autobuild/internal/adapters/toolkit"
	// Register app and engine nodes.
	_ "go.trai.ch/autobuild/internal/app"
	_ "go.trai.ch/autobuild/internal/engine/gnu"
	_ "go.trai.ch/autobuild/internal/engine/scheduler"
)
