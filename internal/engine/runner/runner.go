// Package runner implements the sequential task execution engine.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/remotex/internal/core/domain"
	"go.trai.ch/remotex/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner executes the tasks of a project one after another, stopping at the first failure.
type Runner struct {
	commands    ports.CommandRunner
	tracer      ports.Tracer
	logger      ports.Logger
	taskTimeout time.Duration
	newID       func() string
}

// Option configures a Runner.
type Option func(*Runner)

// WithTaskTimeout bounds the wall time of every task. Zero disables the bound.
func WithTaskTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.taskTimeout = d
	}
}

// WithIDGenerator replaces the execution ID source.
func WithIDGenerator(fn func() string) Option {
	return func(r *Runner) {
		r.newID = fn
	}
}

// NewRunner creates a new Runner.
func NewRunner(commands ports.CommandRunner, tracer ports.Tracer, logger ports.Logger, opts ...Option) *Runner {
	r := &Runner{
		commands: commands,
		tracer:   tracer,
		logger:   logger,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Configure returns a copy of r that applies the execution settings.
func (r *Runner) Configure(settings domain.ExecutionSettings) *Runner {
	c := *r
	c.taskTimeout = settings.TaskTimeout
	return &c
}

// Execute runs every task of project in declared order.
//
// Tasks that were started always run to completion: cancellation of ctx is not
// propagated to them. The only bound is the optional task timeout.
// A failing task stops the execution; earlier tasks are not rolled back.
// The returned error wraps domain.ErrExecutionFailed and the task's cause.
func (r *Runner) Execute(ctx context.Context, project domain.Project) error {
	ctx = context.WithoutCancel(ctx)
	exec := domain.NewExecution(r.newID(), project)

	ctx, span := r.tracer.Start(ctx, domain.SpanProjectExecute,
		ports.WithAttribute(domain.AttrExecutionID, exec.ID),
		ports.WithAttribute(domain.AttrProject, project.Codename),
		ports.WithAttribute(domain.AttrTaskCount, exec.TaskCount),
	)
	defer span.End()

	r.logger.Info(fmt.Sprintf("execution %s: starting project %s (%d tasks)", exec.ID, project.Codename, exec.TaskCount))

	for exec.TaskIndex+1 < exec.TaskCount {
		if err := exec.Next(); err != nil {
			return err
		}

		task := project.Tasks[exec.TaskIndex]
		if err := r.runTask(ctx, exec, task); err != nil {
			failure := zerr.With(zerr.Wrap(err, "task failed"), "codename", project.Codename)
			failure = zerr.With(failure, "task", task.Name)
			failure = zerr.With(failure, "execution_id", exec.ID)
			_ = exec.Fail(failure)

			span.SetAttribute(domain.AttrState, string(exec.State))
			span.RecordError(failure)
			r.logger.Warn(fmt.Sprintf("execution %s: project %s stopped at %s", exec.ID, project.Codename, exec))
			return errors.Join(domain.ErrExecutionFailed, failure)
		}
	}

	if err := exec.Complete(); err != nil {
		return err
	}

	span.SetAttribute(domain.AttrState, string(exec.State))
	r.logger.Info(fmt.Sprintf("execution %s: project %s completed", exec.ID, project.Codename))
	return nil
}

func (r *Runner) runTask(ctx context.Context, exec *domain.Execution, task domain.Task) error {
	ctx, span := r.tracer.Start(ctx, domain.SpanTaskExecute,
		ports.WithAttribute(domain.AttrExecutionID, exec.ID),
		ports.WithAttribute(domain.AttrProject, exec.Codename),
		ports.WithAttribute(domain.AttrTask, task.Name),
		ports.WithAttribute(domain.AttrTaskIndex, exec.TaskIndex),
	)
	defer span.End()

	r.logger.Info(fmt.Sprintf("execution %s: task %s %q started", exec.ID, exec, task.Name))

	if r.taskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.taskTimeout)
		defer cancel()
	}

	start := time.Now()
	err := r.dispatch(ctx, task.Operation)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = errors.Join(domain.ErrTaskTimedOut, zerr.With(err, "timeout", r.taskTimeout.String()))
	}

	if err != nil {
		span.RecordError(err)
		r.logger.Error(err)
		return err
	}

	r.logger.Info(fmt.Sprintf("execution %s: task %s %q finished in %s",
		exec.ID, exec, task.Name, time.Since(start).Round(time.Millisecond)))
	return nil
}

func (r *Runner) dispatch(ctx context.Context, op domain.Operation) error {
	switch o := op.(type) {
	case domain.CommandOperation:
		return r.commands.Run(ctx, o)
	default:
		kind := "<nil>"
		if op != nil {
			kind = string(op.Kind())
		}
		return zerr.With(zerr.Wrap(domain.ErrUnsupportedOperation, "cannot dispatch task"), "kind", kind)
	}
}
