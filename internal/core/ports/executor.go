// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/remotex/internal/core/domain"
)

// CommandRunner runs a command operation as an external process.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type CommandRunner interface {
	// Run spawns the program and blocks until it terminates.
	//
	// It returns an error wrapping domain.ErrSpawnFailed when the process
	// cannot be started and domain.ErrNonZeroExit when it exits unsuccessfully.
	Run(ctx context.Context, cmd domain.CommandOperation) error
}
