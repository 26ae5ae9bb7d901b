// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/dmc/internal/adapters/config"
	_ "go.trai.ch/dmc/internal/adapters/fs"
	_ "go.trai.ch/dmc/internal/adapters/logger"
	_ "go.trai.ch/dmc/internal/adapters/metrics"
	_ "go.trai.ch/dmc/internal/adapters/shell"
	_ "go.trai.ch/dmc/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/dmc/internal/adapters/watcher"
	_ "go.trai.ch/dmc/internal/adapters/workspace"
	// Register app nodes.
	_ "go.trai.ch/dmc/internal/app"
)
