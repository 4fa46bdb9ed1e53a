package app

import (
	"context"

	"go.trai.ch/remotex/internal/adapters/telemetry"
	"go.trai.ch/remotex/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry *telemetry.Provider
}

// Shutdown flushes telemetry.
func (c *Components) Shutdown(ctx context.Context) error {
	if c.Telemetry == nil {
		return nil
	}
	return c.Telemetry.Shutdown(ctx)
}
