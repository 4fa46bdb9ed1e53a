package ports

import (
	"context"

	"go.trai.ch/remotex/internal/core/domain"
)

// ProjectExecutor runs the task list of a project.
//
//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks
type ProjectExecutor interface {
	// Execute runs every task of project in order and stops at the first failure.
	// A failure is reported as an error wrapping domain.ErrExecutionFailed.
	Execute(ctx context.Context, project domain.Project) error
}
