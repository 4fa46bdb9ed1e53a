// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/remotex/internal/adapters/config"
	_ "go.trai.ch/remotex/internal/adapters/logger"
	_ "go.trai.ch/remotex/internal/adapters/metrics"
	_ "go.trai.ch/remotex/internal/adapters/shell"
	_ "go.trai.ch/remotex/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/remotex/internal/app"
	_ "go.trai.ch/remotex/internal/engine/runner"
)
