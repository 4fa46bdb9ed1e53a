package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

// ExecutionState is the state of a single execute request.
type ExecutionState string

const (
	// StatePending indicates no task has started yet.
	StatePending ExecutionState = "Pending"
	// StateRunning indicates the task at Execution.TaskIndex is running.
	StateRunning ExecutionState = "Running"
	// StateCompleted indicates every task finished successfully.
	StateCompleted ExecutionState = "Completed"
	// StateFailed indicates the task at Execution.TaskIndex failed.
	StateFailed ExecutionState = "Failed"
)

// Terminal reports whether no further transition is possible.
func (s ExecutionState) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// Execution tracks one run of a project's task list.
//
//	Pending -> Running(0) -> Running(i+1) | Failed(i) | Completed
//
// There is no retry transition.
type Execution struct {
	ID        string
	Codename  string
	State     ExecutionState
	TaskIndex int
	TaskCount int
	Err       error
}

// NewExecution returns a pending execution for project.
func NewExecution(id string, project Project) *Execution {
	return &Execution{
		ID:        id,
		Codename:  project.Codename,
		State:     StatePending,
		TaskIndex: -1,
		TaskCount: len(project.Tasks),
	}
}

// Next moves to the next task. It is valid from Pending and Running while tasks remain.
func (e *Execution) Next() error {
	if e.State != StatePending && e.State != StateRunning {
		return e.invalid(StateRunning)
	}
	if e.TaskIndex+1 >= e.TaskCount {
		return e.invalid(StateRunning)
	}
	e.TaskIndex++
	e.State = StateRunning
	return nil
}

// Fail marks the current task as failed.
func (e *Execution) Fail(err error) error {
	if e.State != StateRunning {
		return e.invalid(StateFailed)
	}
	e.State = StateFailed
	e.Err = err
	return nil
}

// Complete marks the execution as successful once no tasks remain.
func (e *Execution) Complete() error {
	if e.State.Terminal() || e.TaskIndex+1 < e.TaskCount {
		return e.invalid(StateCompleted)
	}
	e.State = StateCompleted
	return nil
}

// String renders the state with its task position.
func (e *Execution) String() string {
	switch e.State {
	case StateRunning, StateFailed:
		return fmt.Sprintf("%s(%d/%d)", e.State, e.TaskIndex+1, e.TaskCount)
	default:
		return string(e.State)
	}
}

func (e *Execution) invalid(to ExecutionState) error {
	err := zerr.With(zerr.Wrap(ErrInvalidTransition, "cannot transition execution"), "from", e.String())
	return zerr.With(err, "to", string(to))
}
